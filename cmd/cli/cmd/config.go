package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"cloudkitty-hashmap/core/ui"
	"cloudkitty-hashmap/internal/config"
)

// newConfigCmd manages configuration
func newConfigCmd(opts *options) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.Get()
			token := ""
			if cfg.Token != "" {
				token = "********"
			}
			ui.NewWriter(cmd.OutOrStdout(), cfg.Output.NoColor).PrintDict(map[string]string{
				"endpoint":        cfg.Endpoint,
				"token":           token,
				"region":          cfg.Region,
				"timeout_seconds": strconv.Itoa(cfg.TimeoutSeconds),
				"log_level":       cfg.Logging.Level,
			})
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.cfgFile
			if path == "" {
				path = config.DefaultPath()
			}
			if err := config.Get().Save(path); err != nil {
				return err
			}
			ui.NewWriter(cmd.OutOrStdout(), true).Println("Wrote %s", path)
			return nil
		},
	})

	return configCmd
}
