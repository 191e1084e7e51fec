package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:       "clear <activities|maintenance|intervals|components|all>",
		Short:     "Delete local data",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"activities", "maintenance", "intervals", "components", "all"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear %s without --yes", args[0])
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			switch args[0] {
			case "activities":
				err = a.monitor.ClearActivities()
			case "maintenance":
				err = a.monitor.ClearMaintenance()
			case "intervals":
				err = a.monitor.ClearServiceIntervals()
			case "components":
				err = a.monitor.ClearComponents()
			case "all":
				for _, clear := range []func() error{
					a.monitor.ClearActivities,
					a.monitor.ClearMaintenance,
					a.monitor.ClearServiceIntervals,
					a.monitor.ClearComponents,
				} {
					if err = clear(); err != nil {
						break
					}
				}
			default:
				return fmt.Errorf("unknown target %q", args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s.\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm deletion")
	return cmd
}
