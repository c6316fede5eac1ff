package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/camellia0204/notice-tray/internal/version"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		PrintVersion()
	},
}

var versionOutputWriter io.Writer = os.Stdout

func init() {
	rootCmd.AddCommand(versionCmd)
}

// PrintVersion prints the version string to the configured writer.
func PrintVersion() {
	fmt.Fprintf(versionOutputWriter, "notice-tray v%s\n", version.String())
}
