// Package cli implements the catalogctl commands.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MisakSofoyan1/product-app/pkg/logger"
)

// NewRootCmd builds the catalogctl command tree.
func NewRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "catalogctl",
		Short: "Browse a product catalog API from the terminal",
		Long: `catalogctl drives the same page controller as the storefront service.

It can browse a catalog API with filters and paging, and run an in-memory
reference catalog API for local development.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			if !cmd.Flags().Changed("log-level") {
				logLevel = envOr("LOG_LEVEL", logLevel)
			}
			slog.SetDefault(logger.NewWithWriter("catalogctl", logLevel, os.Stderr))
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newBrowseCmd())
	cmd.AddCommand(newMockAPICmd())

	return cmd
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
