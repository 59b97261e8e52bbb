package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newObjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "objects --scope <scope> [hashes...]",
		Short: "Fetch raw objects by content hash",
		Long: `Objects bulk-fetches raw store objects from one owning scope. Hashes
already present in the local store are skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, _ := cmd.Flags().GetString("scope")
			if err := c.app.ImportObjects(cmd.Context(), scope, args); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d object(s) from %s\n", len(args), scope)
			return nil
		},
	}
	cmd.Flags().StringP("scope", "s", "", "Owning scope of the objects")
	_ = cmd.MarkFlagRequired("scope")
	return cmd
}
