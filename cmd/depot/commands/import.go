package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/depot/internal/app"
)

func (c *CLI) newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [refs...]",
		Short: "Import component versions with their dependency closures",
		Long: `Import materializes the given component versions into the local store,
including each version's flattened dependency closure. Refs take the
"scope/name@version" form; the version defaults to latest.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			allVersions, _ := cmd.Flags().GetBool("all-versions")
			deep, _ := cmd.Flags().GetBool("deep")

			closures, err := c.app.Import(cmd.Context(), args, app.ImportOptions{
				AllVersions: allVersions,
				Deep:        deep,
			})
			if err != nil {
				return err
			}

			for _, closure := range closures {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d runtime, %d dev, %d extension)\n",
					closure.Resolved.ID.String(),
					len(closure.Runtime), len(closure.Dev), len(closure.Extension))
			}
			return nil
		},
	}
	cmd.Flags().BoolP("all-versions", "a", false, "Import the full version history of each component")
	cmd.Flags().BoolP("deep", "d", false, "Extend the version history import to discovered dependencies")
	return cmd
}
