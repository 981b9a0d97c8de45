package cli

import (
	"fmt"

	"RugGuard/internal/web"

	"github.com/spf13/cobra"
)

// RoutesCmd prints the navigation routes as label<TAB>path lines.
func RoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Prints the declared navigation routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, l := range web.Navigation() {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", l.Label, l.Path); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
