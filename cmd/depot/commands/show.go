package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <ref>",
		Short: "Show the version history of a component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			localOnly, _ := cmd.Flags().GetBool("local")

			record, err := c.app.Show(cmd.Context(), args[0], localOnly)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, record.FullName())
			for _, v := range record.Versions {
				marker := " "
				if v.Tag == record.Head {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s %s\n", marker, v.Tag, v.Hash)
			}
			return nil
		},
	}
	cmd.Flags().BoolP("local", "l", false, "Serve from the local store only, never fetch")
	return cmd
}
