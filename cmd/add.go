package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/camellia0204/notice-tray/internal/colors"
	"github.com/camellia0204/notice-tray/internal/notice"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new notice to the local notice file",
	Long: `Add a new notice to the local notice file.

USAGE:
    notice-tray add [OPTIONS] --title <title> --message <message>

OPTIONS:
    --title <text>            Notice title (required)
    --message <text>          Notice body (required)
    --sender <name>           Sender name (default: configured sender)
    --send-at <timestamp>     Send time, "YYYY-MM-DD HH:MM:SS" (default: now)
    --show-type <type>        once, daily, weekly, monthly, always, deprecated (default: once)
    --open-url <url>          URL to open alongside the notice
    --valid-days <n>          Days until the notice expires (default: 7)
    --before-version <ver>    Only show while the running version is below this
    -h, --help                Show this help

The updated notice file is saved immediately. Remember to publish it to
the remote source afterwards.`,
	Run: runAdd,
}

var (
	addTitle         string
	addMessage       string
	addSender        string
	addSendAt        string
	addShowType      string
	addOpenURL       string
	addValidDays     int
	addBeforeVersion string
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addTitle, "title", "", "Notice title")
	addCmd.Flags().StringVar(&addMessage, "message", "", "Notice body")
	addCmd.Flags().StringVar(&addSender, "sender", "", "Sender name")
	addCmd.Flags().StringVar(&addSendAt, "send-at", "", "Send time, \"YYYY-MM-DD HH:MM:SS\"")
	addCmd.Flags().StringVar(&addShowType, "show-type", "once", "Recurrence class")
	addCmd.Flags().StringVar(&addOpenURL, "open-url", "", "URL to open alongside the notice")
	addCmd.Flags().IntVar(&addValidDays, "valid-days", 0, "Days until the notice expires")
	addCmd.Flags().StringVar(&addBeforeVersion, "before-version", "", "Only show while the running version is below this")
}

func runAdd(cmd *cobra.Command, args []string) {
	if addTitle == "" || addMessage == "" {
		colors.Error("'add' requires --title and --message")
		cmd.PrintErrln("Usage: notice-tray add [OPTIONS] --title <title> --message <message>")
		return
	}

	manager, cleanup := newManager()
	defer cleanup()

	manager.Load(false)

	err := manager.AddNotice(notice.AddParams{
		Title:                 addTitle,
		Message:               addMessage,
		Sender:                addSender,
		SendAt:                addSendAt,
		ShowType:              notice.ShowType(addShowType),
		OpenURL:               addOpenURL,
		ValidDuration:         time.Duration(addValidDays) * 24 * time.Hour,
		ShowOnlyBeforeVersion: addBeforeVersion,
	})
	if err != nil {
		// AddNotice already logged the reason.
		return
	}

	if manager.Save().Ok() {
		colors.Success("Notice added: " + addTitle)
	}
}
