// Package display presents notices to the user.
package display

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/browser"
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 2).
			Width(72)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	urlStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Underline(true)
)

// Console renders notices as framed boxes on a terminal and opens any
// attached URL in the default browser. It blocks only for rendering, not
// for user acknowledgement.
type Console struct {
	// Out is the destination writer; defaults to stdout.
	Out io.Writer
	// OpenURL opens a URL in the user's browser; overridable in tests.
	OpenURL func(url string) error
}

// NewConsole creates a console display writing to stdout.
func NewConsole() *Console {
	return &Console{
		Out:     os.Stdout,
		OpenURL: browser.OpenURL,
	}
}

// Show renders one notice. A non-empty openURL is printed beneath the
// body and opened in the browser; a browser failure fails the call.
func (c *Console) Show(message, title, openURL string) error {
	body := titleStyle.Render(title) + "\n\n" + message
	if openURL != "" {
		body += "\n\n" + urlStyle.Render(openURL)
	}
	if _, err := fmt.Fprintln(c.Out, boxStyle.Render(body)); err != nil {
		return fmt.Errorf("display: render notice: %w", err)
	}
	if openURL != "" && c.OpenURL != nil {
		if err := c.OpenURL(openURL); err != nil {
			return fmt.Errorf("display: open url %s: %w", openURL, err)
		}
	}
	return nil
}
