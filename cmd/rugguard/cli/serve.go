package cli

import (
	"fmt"

	"RugGuard/internal/di"
	"RugGuard/pkg/config"

	"github.com/spf13/cobra"
)

// ServeCmd starts the dashboard server.
func ServeCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Starts the RugGuard dashboard server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadWithEnv(*cfgPath)
			if err != nil {
				return fmt.Errorf("config load failed: %w", err)
			}

			app, err := di.InitializeApp(cfg)
			if err != nil {
				return fmt.Errorf("app initialization failed: %w", err)
			}
			return app.Run(cmd.Context())
		},
	}
}
