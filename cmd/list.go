package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/camellia0204/notice-tray/internal/colors"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notices without displaying them",
	Long: `List all notices without displaying them.

USAGE:
    notice-tray list [OPTIONS]

OPTIONS:
    --remote        Fetch the latest notice file before listing
    -h, --help      Show this help

Listing never touches recurrence state: a notice listed here can still
be displayed by 'show' later.`,
	Run: runList,
}

var listRemote bool

var listOutputWriter io.Writer = os.Stdout

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listRemote, "remote", false, "Fetch the latest notice file before listing")
}

func runList(cmd *cobra.Command, args []string) {
	manager, cleanup := newManager()
	defer cleanup()

	manager.Load(listRemote)
	notices := manager.Notices()
	if len(notices) == 0 {
		colors.Info("No notices found")
		return
	}

	fmt.Fprintf(listOutputWriter, "%-19s  %-10s  %-19s  %s\n", "SEND AT", "TYPE", "EXPIRE AT", "TITLE")
	for _, n := range notices {
		fmt.Fprintf(listOutputWriter, "%-19s  %-10s  %-19s  %s\n", n.SendAt, n.ShowType, n.ExpireAt, n.Title)
	}
}
