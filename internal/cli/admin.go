package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wellandwilde/landing-be/internal/app"
	"github.com/wellandwilde/landing-be/internal/config"
	"github.com/wellandwilde/landing-be/internal/services"
)

func adminCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "admin",
		Short: "Manage administrator accounts",
	}
	c.AddCommand(adminCreateCmd())
	return c
}

func adminCreateCmd() *cobra.Command {
	var username string
	var password string

	c := &cobra.Command{
		Use:   "create",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Store.Driver == config.DriverMemory {
				return fmt.Errorf("accounts in the %s store do not outlive this command", cfg.Store.Driver)
			}

			ctx := cmd.Context()
			stores, err := app.OpenStores(ctx, cfg.Store)
			if err != nil {
				return err
			}
			defer stores.Close()

			user, err := services.NewUserService(stores.Users).CreateUser(ctx, username, password)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created admin %q (id %d)\n", user.Username, user.ID)
			return nil
		},
	}

	c.Flags().StringVarP(&username, "username", "u", "", "Admin username (required)")
	c.Flags().StringVarP(&password, "password", "p", "", "Admin password (required)")
	_ = c.MarkFlagRequired("username")
	_ = c.MarkFlagRequired("password")
	return c
}
