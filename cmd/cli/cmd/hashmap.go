package cmd

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cloudkitty-hashmap/core/hashmap"
	"cloudkitty-hashmap/internal/config"
	apperrors "cloudkitty-hashmap/internal/errors"
	"cloudkitty-hashmap/internal/logging"
)

// newHashmapCmd builds the cobra command for one hashmap entry point
func newHashmapCmd(spec hashmap.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   spec.Name,
		Short: spec.Short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args, err := collectArgs(cmd, spec.Flags)
			if err != nil {
				return err
			}

			cfg := config.Get()
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
			defer cancel()

			logging.Debug("running command",
				zap.String("command", spec.Name),
				zap.String("endpoint", cfg.Endpoint),
				zap.String("region", cfg.Region))

			container, err := buildContainer(cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			var runErr error
			if err := container.Invoke(func(env hashmap.Env) {
				runErr = spec.Run(ctx, env, args)
			}); err != nil {
				return apperrors.Internal("failed to wire command", err)
			}
			return runErr
		},
	}

	for _, f := range spec.Flags {
		switch f.Kind {
		case hashmap.FlagBool:
			def, _ := strconv.ParseBool(f.Default)
			cmd.Flags().BoolP(f.Name, f.Short, def, f.Help)
		default:
			cmd.Flags().StringP(f.Name, f.Short, f.Default, f.Help)
		}
		if f.Required {
			_ = cmd.MarkFlagRequired(f.Name)
		}
	}

	return cmd
}

// collectArgs records the flags the user actually passed
func collectArgs(cmd *cobra.Command, specs []hashmap.FlagSpec) (*hashmap.Args, error) {
	args := hashmap.NewArgs()
	for _, f := range specs {
		if !cmd.Flags().Changed(f.Name) {
			continue
		}
		switch f.Kind {
		case hashmap.FlagBool:
			v, err := cmd.Flags().GetBool(f.Name)
			if err != nil {
				return nil, apperrors.Wrapf(apperrors.TypeInput, err, "invalid --%s", f.Name)
			}
			args.SetBool(f.Name, v)
		default:
			v, err := cmd.Flags().GetString(f.Name)
			if err != nil {
				return nil, apperrors.Wrapf(apperrors.TypeInput, err, "invalid --%s", f.Name)
			}
			args.SetString(f.Name, v)
		}
	}
	return args, nil
}
