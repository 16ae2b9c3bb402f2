package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wellandwilde/landing-be/internal/app"
	"github.com/wellandwilde/landing-be/internal/config"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations for the configured store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Store.Driver == config.DriverMemory {
				return fmt.Errorf("the %s store has no schema to migrate", cfg.Store.Driver)
			}

			// Opening a database store migrates it.
			stores, err := app.OpenStores(cmd.Context(), cfg.Store)
			if err != nil {
				return err
			}
			stores.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "%s store is up to date\n", cfg.Store.Driver)
			return nil
		},
	}
}
