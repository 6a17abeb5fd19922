package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/perch/internal/logtail"
)

// logTailLines is how many trailing log lines the view keeps.
const logTailLines = 500

// logState holds the log view's lines and follow mode.
type logState struct {
	lines  []string
	follow bool
	err    string
}

type logLinesMsg struct {
	lines []string
	err   error
}

func (m *Model) initLogViewport() {
	m.logViewport = viewport.New(max(m.width-2, 1), max(m.contentHeight()-2, 1))
}

// updateLogViewport resizes the viewport and reloads its content.
func (m *Model) updateLogViewport() {
	if !m.ready {
		return
	}
	m.logViewport.Width = max(m.width-2, 1)
	m.logViewport.Height = max(m.contentHeight()-2, 1)
	m.logViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	m.logViewport.SetContent(m.renderLogContent())
	if m.logState.follow {
		m.logViewport.GotoBottom()
	}
}

// refreshLogs reads the tail of the log file off the update loop.
func (m Model) refreshLogs() tea.Cmd {
	path := m.logPath
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		lines, err := logtail.Read(path, logTailLines)
		return logLinesMsg{lines: lines, err: err}
	}
}

func (m *Model) handleLogLines(msg logLinesMsg) {
	if msg.err != nil {
		m.logState.err = msg.err.Error()
	} else {
		m.logState.err = ""
		m.logState.lines = msg.lines
	}
	m.updateLogViewport()
}

// handleLogsKey toggles follow mode and scrolls the log viewport.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleFollow):
		m.logState.follow = !m.logState.follow
		if m.logState.follow {
			m.logViewport.GotoBottom()
			return m, m.refreshLogs()
		}
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.logState.follow = false
		m.logViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	if key.Matches(msg, m.keys.Up) {
		m.logState.follow = false
	}
	return m, cmd
}

// renderLogs renders the log view.
func (m Model) renderLogs() string {
	title := "Logs · " + truncateMiddle(m.logPath, max(m.width/2, 10))
	if m.logState.follow {
		title += " · following"
	} else {
		title += " · paused"
	}
	return m.renderTitledBox(title, m.logViewport.View(), m.width, m.contentHeight(), true)
}

func (m Model) renderLogContent() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)

	if m.logState.err != "" {
		return bg.Render("Unable to read log: "+m.logState.err, styles.DangerText)
	}
	if len(m.logState.lines) == 0 {
		if m.logPath == "" {
			return bg.Render("File logging is disabled.", styles.MutedText)
		}
		return bg.Render(fmt.Sprintf("No log lines yet in %s.", m.logPath), styles.MutedText)
	}

	width := max(m.logViewport.Width, 10)
	out := make([]string, len(m.logState.lines))
	for i, line := range m.logState.lines {
		out[i] = bg.Render(truncate(line, width), m.levelStyle(logtail.Level(line), styles))
	}
	return strings.Join(out, "\n")
}

// levelStyle returns the style for a log level.
func (m Model) levelStyle(level string, styles Styles) lipgloss.Style {
	switch level {
	case "ERROR":
		return styles.DangerText
	case "WARN":
		return styles.WarningText
	case "DEBUG":
		return styles.FaintText
	case "INFO":
		return styles.Text
	default:
		return styles.MutedText
	}
}
