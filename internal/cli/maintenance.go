package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newMaintenanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "maintenance",
		Aliases: []string{"maint"},
		Short:   "Record and inspect maintenance work",
	}
	cmd.AddCommand(newMaintenanceRecordCmd())
	cmd.AddCommand(newMaintenanceListCmd())
	cmd.AddCommand(newMaintenanceDeleteCmd())
	cmd.AddCommand(newMaintenanceTypesCmd())
	return cmd
}

func newMaintenanceRecordCmd() *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "record <gear-id> <type>",
		Short: "Log maintenance on a piece of gear",
		Long: `Logs maintenance work. The record snapshots every activity the gear has
seen since the previous record of the same type, so each record tells
you how much riding that round of maintenance covered.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			record, err := a.monitor.RecordMaintenance(args[0], args[1], notes)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s on %s covering %d activities (%.1f km).\n",
				record.Type, record.GearID, len(record.Activities), record.Distance())
			return nil
		},
	}

	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Free-form notes")
	return cmd
}

func newMaintenanceListCmd() *cobra.Command {
	var gearID, typ string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List maintenance records, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			records, err := a.monitor.ListMaintenance(gearID, typ)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No maintenance records.")
				return nil
			}

			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"ID", "Gear", "Type", "Date", "Activities", "Distance km", "Notes"})
			// Records come back oldest first; show the newest on top.
			for i := len(records) - 1; i >= 0; i-- {
				r := records[i]
				t.AppendRow(table.Row{
					r.ID, r.GearID, r.Type,
					r.Date.Format("2006-01-02"),
					len(r.Activities),
					fmt.Sprintf("%.1f", r.Distance()),
					r.Notes,
				})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&gearID, "gear", "g", "", "Only records for this gear")
	cmd.Flags().StringVarP(&typ, "type", "t", "", "Only records of this maintenance type")
	return cmd
}

func newMaintenanceDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <record-id>",
		Short: "Delete a maintenance record by its ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.monitor.DeleteMaintenance(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
			return nil
		},
	}
}

func newMaintenanceTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List known maintenance types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Type", "Description"})
			catalog := a.monitor.Catalog()
			for _, key := range catalog.Keys() {
				desc, _ := catalog.Describe(key)
				t.AppendRow(table.Row{key, desc})
			}
			t.Render()
			fmt.Fprintln(cmd.OutOrStdout(), "\nAny other type key is accepted too; these are just the common ones.")
			return nil
		},
	}
}
