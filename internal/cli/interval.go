package cli

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"gearwear/internal/gear"
)

func newIntervalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interval",
		Short: "Manage service intervals",
	}
	cmd.AddCommand(newIntervalAddCmd())
	cmd.AddCommand(newIntervalListCmd())
	cmd.AddCommand(newIntervalDeleteCmd())
	return cmd
}

func newIntervalAddCmd() *cobra.Command {
	var action string

	cmd := &cobra.Command{
		Use:   "add <gear-id> <item> <time|distance> <value>",
		Short: "Add a service interval for an item",
		Long: `Adds a recurring service schedule. The item must already have at least
one maintenance record on the gear; the interval anchors to the latest
one. Time intervals are in weeks, distance intervals in kilometers.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				return fmt.Errorf("parsing value %q: %w", args[3], err)
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			interval, err := a.monitor.AddServiceInterval(args[0], args[1], args[2], value, action)
			if err != nil {
				return err
			}

			switch interval.Type {
			case gear.IntervalDistance:
				fmt.Fprintf(cmd.OutOrStdout(), "Added: %s on %s every %.0f km (next due at %.1f km).\n",
					interval.Item, interval.GearID, interval.Value, interval.NextDueKM())
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "Added: %s on %s every %.0f weeks (next due %s).\n",
					interval.Item, interval.GearID, interval.Value, interval.NextDueDate().Format("2006-01-02"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&action, "action", "", "What to do when the interval comes due, e.g. 'replace chain'")
	return cmd
}

func newIntervalListCmd() *cobra.Command {
	var gearID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List service intervals with due status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			statuses, err := a.monitor.ListServiceIntervals(gearID)
			if err != nil {
				return err
			}
			if len(statuses) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No service intervals.")
				return nil
			}

			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"ID", "Gear", "Item", "Action", "Every", "Next due", "Remaining", "Status"})
			for _, s := range statuses {
				var every, nextDue, remaining string
				if s.Interval.Type == gear.IntervalDistance {
					every = fmt.Sprintf("%.0f km", s.Interval.Value)
					nextDue = fmt.Sprintf("%.1f km", s.Interval.NextDueKM())
					remaining = fmt.Sprintf("%.1f km", s.Remaining)
				} else {
					every = fmt.Sprintf("%.0f weeks", s.Interval.Value)
					nextDue = s.Interval.NextDueDate().Format("2006-01-02")
					remaining = fmt.Sprintf("%.0f days", s.Remaining)
				}
				status := "ok"
				if s.Due {
					status = "DUE"
				}
				t.AppendRow(table.Row{s.Interval.ID, s.Interval.GearID, s.Interval.Item, s.Interval.Action, every, nextDue, remaining, status})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&gearID, "gear", "g", "", "Only intervals for this gear")
	return cmd
}

func newIntervalDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <interval-id>",
		Short: "Delete a service interval by its ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.monitor.DeleteServiceInterval(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
			return nil
		},
	}
}
