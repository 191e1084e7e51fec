package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"gearwear/internal/gear"
)

func newComponentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "component",
		Aliases: []string{"comp"},
		Short:   "Manage components (chains, cassettes, tires)",
	}
	cmd.AddCommand(newComponentInstallCmd())
	cmd.AddCommand(newComponentSwapCmd())
	cmd.AddCommand(newComponentListCmd())
	cmd.AddCommand(newComponentInventoryCmd())
	cmd.AddCommand(newComponentRetiredCmd())
	cmd.AddCommand(newComponentHistoryCmd())
	return cmd
}

func newComponentInstallCmd() *cobra.Command {
	var brand, model, notes string

	cmd := &cobra.Command{
		Use:   "install <gear-id> <name>",
		Short: "Install a new component on a piece of gear",
		Long: `Creates a new component directly in active state. The bike's cumulative
distance at install time is snapshotted so wear can be read off later as
the difference against the current mileage.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			c, err := a.monitor.InstallComponent(args[0], args[1], brand, model, notes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Installed %s on %s at %.1f km (id %s).\n",
				c.Name, c.GearID, c.MileageAtInstallKM, c.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&brand, "brand", "", "Component brand")
	cmd.Flags().StringVar(&model, "model", "", "Component model")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Free-form notes")
	return cmd
}

func newComponentSwapCmd() *cobra.Command {
	var newID, action string

	cmd := &cobra.Command{
		Use:   "swap <gear-id> <old-component-id>",
		Short: "Take a component off gear, optionally installing a replacement",
		Long: `Moves the old component to inventory (--action remove) or retires it
permanently (--action retire), stamping the bike's cumulative distance.
With --new, a component currently in inventory is installed in its place.
The whole swap commits in one transaction; if the replacement fails
validation, the removal does not happen either.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.monitor.SwapComponent(args[0], args[1], newID, action); err != nil {
				return err
			}
			if newID != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Swapped %s out for %s on %s.\n", args[1], newID, args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Took %s off %s (%s).\n", args[1], args[0], action)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&newID, "new", "", "Inventory component to install in its place")
	cmd.Flags().StringVar(&action, "action", gear.SwapRemove, "What happens to the old part: remove or retire")
	return cmd
}

func newComponentListCmd() *cobra.Command {
	var status, gearID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List components",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			return renderComponents(cmd, a, status, gearID)
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by status (active, in_inventory, retired)")
	cmd.Flags().StringVarP(&gearID, "gear", "g", "", "Filter by gear")
	return cmd
}

func newComponentInventoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inventory",
		Short: "List components currently in inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			return renderComponents(cmd, a, gear.StatusInInventory, "")
		},
	}
}

func newComponentRetiredCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "retired",
		Short: "List retired components",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			return renderComponents(cmd, a, gear.StatusRetired, "")
		},
	}
}

func renderComponents(cmd *cobra.Command, a *app, status, gearID string) error {
	components, err := a.monitor.ListComponents(status, gearID)
	if err != nil {
		return err
	}
	if len(components) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No components.")
		return nil
	}

	t := newTable(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"ID", "Name", "Brand", "Model", "Status", "Gear", "Wear km"})
	for _, c := range components {
		t.AppendRow(table.Row{
			c.ID, c.Name, c.Brand, c.Model, c.Status, c.GearID,
			fmt.Sprintf("%.1f", c.WearKM()),
		})
	}
	t.Render()
	return nil
}

func newComponentHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <component-id>",
		Short: "Show the swap log for a component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			swaps, err := a.monitor.ComponentHistory(args[0])
			if err != nil {
				return err
			}
			if len(swaps) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No history.")
				return nil
			}

			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Date", "Action", "Gear", "Replaced", "Bike km"})
			for _, s := range swaps {
				t.AppendRow(table.Row{
					s.Date.Format("2006-01-02"), s.Action, s.GearID,
					s.OldComponentID, fmt.Sprintf("%.1f", s.MileageKM),
				})
			}
			t.Render()
			return nil
		},
	}
}
