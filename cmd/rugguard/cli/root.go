package cli

import (
	"context"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "config/config.yaml"

// NewRootCmd builds the rugguard command tree.
func NewRootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:           "rugguard",
		Short:         "RugGuard DeFi security dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath, "config file path")

	root.AddCommand(ServeCmd(&cfgPath))
	root.AddCommand(RoutesCmd())
	return root
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
