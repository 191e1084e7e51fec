package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	log     = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "gearwear",
	Short: "Track wear and maintenance on your cycling gear",
	Long: `gearwear reconciles your Strava ride history with locally kept
maintenance records, service intervals and component swaps, so you know
how many kilometers your chain has really seen and when the next service
is due.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		} else {
			log.SetLevel(logrus.WarnLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newBikesCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newMaintenanceCmd())
	rootCmd.AddCommand(newIntervalCmd())
	rootCmd.AddCommand(newComponentCmd())
	rootCmd.AddCommand(newClearCmd())
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
