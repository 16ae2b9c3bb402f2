package cli

import (
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wellandwilde/landing-be/internal/app"
)

func serveCmd() *cobra.Command {
	var function bool

	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			var handler http.Handler
			if function {
				handler = a.FunctionHandler()
			} else {
				handler = a.Handler()
			}
			return a.Run(ctx, handler)
		},
	}

	c.Flags().BoolVar(&function, "function", false, "serve only the subscribe endpoint, on every path")
	return c
}
