// Package cmd provides the CLI commands for cloudkitty-hashmap.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"cloudkitty-hashmap/core/hashmap"
	"cloudkitty-hashmap/core/ui"
	"cloudkitty-hashmap/internal/config"
	apperrors "cloudkitty-hashmap/internal/errors"
	"cloudkitty-hashmap/internal/logging"
)

const version = "0.1.0"

// options holds the persistent flags of one root command
type options struct {
	cfgFile  string
	verbose  bool
	endpoint string
	noColor  bool
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "cloudkitty-hashmap",
		Short: "Manage CloudKitty hashmap rating rules",
		Long: `cloudkitty-hashmap manages the rule hierarchy of the CloudKitty hashmap
rating module: services, their fields, groups, and the mappings that price them.

Configuration is loaded from (in order of precedence):
  1. Command-line flags
  2. CLOUDKITTY_* environment variables (and a local .env file)
  3. --config file, JSON or .hcl (default is $HOME/.cloudkitty-hashmap.json)

Examples:
  cloudkitty-hashmap hashmap-service-create --name compute
  cloudkitty-hashmap hashmap-field-create --name flavor --service-id <id>
  cloudkitty-hashmap hashmap-mapping-create --field-id <id> --value m1.tiny --cost 0.5
  cloudkitty-hashmap hashmap-mapping-list --field-id <id>`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.cloudkitty-hashmap.json)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "V", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.endpoint, "endpoint", "", "CloudKitty API endpoint (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	for _, spec := range hashmap.Commands() {
		rootCmd.AddCommand(newHashmapCmd(spec))
	}
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(opts))

	return rootCmd
}

// Execute runs the CLI
func Execute() error {
	return run(NewRootCmd(), os.Args[1:], os.Stderr)
}

func run(rootCmd *cobra.Command, args []string, stderr io.Writer) error {
	defer logging.Sync()

	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if err != nil {
		ui.NewWriter(stderr, config.Get().Output.NoColor).Error("%s", apperrors.UserMessage(err))
	}
	return err
}

func initConfig(opts *options) error {
	path := opts.cfgFile
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return err
	}

	if opts.endpoint != "" {
		cfg.Endpoint = opts.endpoint
	}
	if opts.noColor {
		cfg.Output.NoColor = true
	}
	if opts.verbose {
		cfg.Logging.Level = "debug"
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	return nil
}

// newVersionCmd prints version information
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cloudkitty-hashmap version %s\n", version)
		},
	}
}
