package cmd

import (
	"github.com/spf13/cobra"

	"github.com/camellia0204/notice-tray/internal/colors"
)

// saveCmd represents the save command
var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Rewrite the local notice file in canonical form",
	Long: `Rewrite the local notice file in canonical form.

USAGE:
    notice-tray save

Reloads the local notice file, sorts it chronologically and writes it
back in the stable indented form, so diffs against the published file
stay small.`,
	Run: runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, args []string) {
	manager, cleanup := newManager()
	defer cleanup()

	manager.Load(false)
	if manager.Save().Ok() {
		colors.Success("Notice file saved")
	}
}
