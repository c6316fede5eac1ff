package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/camellia0204/notice-tray/internal/colors"
)

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Force a notice to display again",
	Long: `Force a notice to display again.

USAGE:
    notice-tray reset <title>

Clears the recurrence state for every notice with the given title and
strips its version ceiling, so the next 'show' displays it regardless of
how recently it was seen. Intended for testing and administration.`,
	Run: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		colors.Error("'reset' requires a notice title")
		cmd.PrintErrln("Usage: notice-tray reset <title>")
		return
	}
	title := strings.Join(args, " ")

	manager, cleanup := newManager()
	defer cleanup()

	manager.Load(false)
	if err := manager.ResetNotice(title); err != nil {
		colors.Error(err.Error())
		return
	}
	if manager.Save().Ok() {
		colors.Success("Notice reset: " + title)
	}
}
