// Package cli implements the landing command line.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/wellandwilde/landing-be/internal/config"
	"github.com/wellandwilde/landing-be/internal/logger"
)

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "landing",
		Short:        "Well & Wilde landing page backend",
		SilenceUsage: true,
	}

	cmd.AddCommand(serveCmd(), migrateCmd(), adminCmd())
	return cmd
}

// loadConfig reads configuration and initialises the global logger from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.LogLevel, cfg.LogPretty)
	return cfg, nil
}
