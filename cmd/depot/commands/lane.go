package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newLaneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lane",
		Short: "Synchronize and inspect remote lanes",
	}
	cmd.AddCommand(c.newLaneSyncCmd())
	cmd.AddCommand(c.newLaneListCmd())
	return cmd
}

func (c *CLI) newLaneSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync [lanes...]",
		Short: "Sync lane pointers from their owning scopes",
		Long: `Sync fetches the given lanes, "scope/lane" each, and merges them into
the local tracking table. With --materialize, every component version a
lane points at is imported as well.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}
			materialize, _ := cmd.Flags().GetBool("materialize")

			lanes, err := c.app.SyncLanes(cmd.Context(), args, materialize)
			if err != nil {
				return err
			}
			for i := range lanes {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d refs)\n", lanes[i].Ref().String(), len(lanes[i].Refs))
			}
			return nil
		},
	}
	cmd.Flags().BoolP("materialize", "m", false, "Import the component versions the lanes point at")
	return cmd
}

func (c *CLI) newLaneListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the lanes tracked in the local store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lanes, err := c.app.TrackedLanes(cmd.Context())
			if err != nil {
				return err
			}
			for i := range lanes {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d refs)\n", lanes[i].Ref().String(), len(lanes[i].Refs))
			}
			return nil
		},
	}
}
