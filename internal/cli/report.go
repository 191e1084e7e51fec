package cli

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newBikesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bikes",
		Short: "List your gear with cached Strava details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			gears, err := a.db.ListGear()
			if err != nil {
				return err
			}
			if len(gears) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No gear cached yet. Run 'gearwear sync' first.")
				return nil
			}

			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"ID", "Name", "Brand", "Model", "Strava km", "Retired"})
			for _, g := range gears {
				retired := ""
				if g.Retired {
					retired = "yes"
				}
				t.AppendRow(table.Row{
					g.ID, g.Name, g.BrandName, g.ModelName,
					fmt.Sprintf("%.1f", g.Distance/1000), retired,
				})
			}
			t.Render()
			return nil
		},
	}
}

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show per-gear usage and maintenance summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			reports, err := a.monitor.GearReports()
			if err != nil {
				return err
			}
			if len(reports) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No usage yet. Run 'gearwear sync' first.")
				return nil
			}

			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Gear", "Activities", "Distance km", "First", "Last", "Maintenance"})
			for _, r := range reports {
				if r.Usage == nil {
					t.AppendRow(table.Row{r.Gear.Name, 0, "0.0", "", "", 0})
					continue
				}
				t.AppendRow(table.Row{
					r.Gear.Name,
					r.Usage.Activities,
					fmt.Sprintf("%.1f", r.Usage.TotalDistanceKM),
					formatDay(r.Usage.FirstActivity),
					formatDay(r.Usage.LastActivity),
					len(r.Usage.Maintenance),
				})
			}
			t.Render()
			return nil
		},
	}
}

func formatDay(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
