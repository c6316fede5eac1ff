package cmd

import (
	"github.com/spf13/cobra"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display every notice that is due right now",
	Long: `Display every notice that is due right now.

USAGE:
    notice-tray show [OPTIONS]

OPTIONS:
    --local         Read the local notice file instead of fetching the latest
    -h, --help      Show this help

Fetches the latest notice file, filters it through the recurrence rules
and displays each eligible notice in chronological order. Already-seen
notices stay quiet until their recurrence window elapses.`,
	Run: runShow,
}

var showLocal bool

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().BoolVar(&showLocal, "local", false, "Read the local notice file instead of fetching the latest")
}

func runShow(cmd *cobra.Command, args []string) {
	manager, cleanup := newManager()
	defer cleanup()

	// Both operations are fail-soft; diagnostics were already logged.
	manager.Load(!showLocal)
	manager.ShowNotices()
}
