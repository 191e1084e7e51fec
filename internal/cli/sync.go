package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSyncCmd() *cobra.Command {
	var (
		full  bool
		force bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Pull activities and gear from Strava",
		Long: `Pulls new activities from Strava into the local cache, refreshes gear
details and accrues distance on installed components.

Without --force the sync is gated: it runs at most once per day, inside
the configured night window, and only when Strava has activities we
haven't seen.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openOnline()
			if err != nil {
				return err
			}
			defer a.close()

			ctx := cmd.Context()
			if !force {
				need, err := a.monitor.NeedsSync(ctx)
				if err != nil {
					return err
				}
				if !need {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing to sync right now. Use --force to sync anyway.")
					return nil
				}
			}

			result, err := a.monitor.Sync(ctx, full)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Synced %d activities (%d gear refreshed).\n",
				result.ActivitiesStored, result.GearFetched)
			if result.ComponentsUpdated > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Updated mileage on %d components.\n", result.ComponentsUpdated)
			}
			for _, e := range result.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", e)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Refetch the whole activity history")
	cmd.Flags().BoolVar(&force, "force", false, "Skip the once-a-day night gate")

	return cmd
}
