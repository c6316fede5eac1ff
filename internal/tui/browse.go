// Package tui provides an interactive browser for the notice collection.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/browser"

	"github.com/camellia0204/notice-tray/internal/notice"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))
	rowStyle      = lipgloss.NewStyle().PaddingLeft(2)
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	bodyStyle     = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true, false, false, false).PaddingTop(1)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).PaddingTop(1)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// keyMap defines the browser key bindings.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	OpenURL key.Binding
	Quit    key.Binding
}

var defaultKeyMap = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	OpenURL: key.NewBinding(key.WithKeys("enter", "o"), key.WithHelp("enter/o", "open url")),
	Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model is the bubbletea model for browsing notices. Browsing is
// read-only: it renders notice metadata without consulting the
// eligibility predicate, so no recurrence window is claimed.
type Model struct {
	notices []notice.Notice
	cursor  int
	status  string
	width   int

	// openURL opens a URL in the user's browser; overridable in tests.
	openURL func(url string) error
}

// NewModel creates a browser model over the given notices.
func NewModel(notices []notice.Notice) Model {
	return Model{
		notices: notices,
		openURL: browser.OpenURL,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, defaultKeyMap.Quit):
			return m, tea.Quit
		case key.Matches(msg, defaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			m.status = ""
			return m, nil
		case key.Matches(msg, defaultKeyMap.Down):
			if m.cursor < len(m.notices)-1 {
				m.cursor++
			}
			m.status = ""
			return m, nil
		case key.Matches(msg, defaultKeyMap.OpenURL):
			return m.handleOpenURL()
		}
	}
	return m, nil
}

func (m Model) handleOpenURL() (tea.Model, tea.Cmd) {
	if len(m.notices) == 0 {
		return m, nil
	}
	url := m.notices[m.cursor].OpenURL
	if url == "" {
		m.status = "no url attached to this notice"
		return m, nil
	}
	if err := m.openURL(url); err != nil {
		m.status = fmt.Sprintf("failed to open %s: %v", url, err)
		return m, nil
	}
	m.status = "opened " + url
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Notices (%d)", len(m.notices))))
	b.WriteString("\n\n")

	if len(m.notices) == 0 {
		b.WriteString(rowStyle.Render("no notices loaded"))
		b.WriteString("\n")
	}

	for i, n := range m.notices {
		line := fmt.Sprintf("%-19s  %-10s  %s", n.SendAt, n.ShowType, n.Title)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if len(m.notices) > 0 {
		b.WriteString(m.detailView())
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("↑/k up · ↓/j down · enter/o open url · q quit"))
	return b.String()
}

func (m Model) detailView() string {
	n := m.notices[m.cursor]
	var b strings.Builder
	b.WriteString(bodyStyle.Render(n.Message))
	b.WriteString("\n")
	meta := fmt.Sprintf("from %s · expires %s", n.Sender, n.ExpireAt)
	if n.ShowOnlyBeforeVersion != "" {
		meta += " · before v" + n.ShowOnlyBeforeVersion
	}
	if n.OpenURL != "" {
		meta += " · " + n.OpenURL
	}
	b.WriteString(metaStyle.Render(meta))
	return b.String()
}

// Run starts the interactive browser over the given notices.
func Run(notices []notice.Notice) error {
	_, err := tea.NewProgram(NewModel(notices), tea.WithAltScreen()).Run()
	return err
}
