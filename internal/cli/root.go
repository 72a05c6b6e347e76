package cli

import (
	"context"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"artifex/internal/preflight"
	"artifex/internal/services"
)

// NewRoot builds the root command for tool with the persistent flags, the
// config loading hook, and the config and doctor sub-commands attached.
func NewRoot(tool preflight.Tool, short string) (*cobra.Command, *Context) {
	ctx := NewContext(tool)

	rootCmd := &cobra.Command{
		Use:           string(tool),
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			base := cmd.Context()
			if base == nil {
				base = context.Background()
			}
			base = services.WithCommand(base, cmd.Name())
			cmd.SetContext(services.WithRunID(base, uuid.NewString()))
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.EnsureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&ctx.logLevelFlag, "log-level", "", "Log level override (debug, info, warn, error)")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newDoctorCommand(ctx))

	return rootCmd, ctx
}
