package cmd

import (
	"github.com/spf13/cobra"

	"github.com/camellia0204/notice-tray/internal/colors"
	"github.com/camellia0204/notice-tray/internal/tui"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse all notices interactively",
	Long: `Browse all notices interactively.

USAGE:
    notice-tray browse [OPTIONS]

OPTIONS:
    --remote        Fetch the latest notice file before browsing
    -h, --help      Show this help

Browsing is read-only and never touches recurrence state.`,
	Run: runBrowse,
}

var browseRemote bool

func init() {
	rootCmd.AddCommand(browseCmd)

	browseCmd.Flags().BoolVar(&browseRemote, "remote", false, "Fetch the latest notice file before browsing")
}

func runBrowse(cmd *cobra.Command, args []string) {
	manager, cleanup := newManager()
	defer cleanup()

	manager.Load(browseRemote)
	if err := tui.Run(manager.Notices()); err != nil {
		colors.Error("browser failed: " + err.Error())
	}
}
