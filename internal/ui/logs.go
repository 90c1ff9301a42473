package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/atlas/internal/logtail"
)

// initLogViewport initializes the log viewport.
func (m *Model) initLogViewport() {
	m.logViewport = viewport.New(max(1, m.width-4), max(1, m.height-5))
	m.logViewport.Style = lipgloss.NewStyle()
}

// resizeLogViewport fits the viewport to the box below the two header lines.
func (m *Model) resizeLogViewport() {
	m.logViewport.Width = max(1, m.width-4)
	m.logViewport.Height = max(1, m.height-5)
}

// updateLogViewport re-renders the log lines and follows the tail.
func (m *Model) updateLogViewport() {
	if m.logViewport.Width == 0 {
		m.initLogViewport()
	}
	atBottom := m.logViewport.AtBottom() || m.logViewport.TotalLineCount() == 0
	m.logViewport.SetContent(m.renderLogContent())
	if atBottom {
		m.logViewport.GotoBottom()
	}
}

// refreshLogs re-reads the tail of the log file.
func (m Model) refreshLogs() tea.Cmd {
	if m.config == nil || strings.TrimSpace(m.config.LogFile) == "" {
		return nil
	}
	return readLogCmd(m.config.LogFile, LogBufferLimit)
}

// handleLogsKey processes keyboard input for the logs view.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// renderLogContent colors each entry header by its level.
func (m Model) renderLogContent() string {
	styles := m.theme.Styles()
	if len(m.logEntries) == 0 {
		return styles.FaintText.Render("No log entries yet.")
	}

	var b strings.Builder
	for i, entry := range m.logEntries {
		header, rest, hasFields := strings.Cut(logtail.Format(entry), "\n")
		b.WriteString(levelStyle(entry.Level, styles).Render(header))
		if hasFields {
			b.WriteString("\n")
			b.WriteString(styles.FaintText.Render(rest))
		}
		if i < len(m.logEntries)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func levelStyle(level string, styles Styles) lipgloss.Style {
	switch level {
	case "ERROR", "DPANIC", "PANIC", "FATAL":
		return styles.DangerText
	case "WARN":
		return styles.WarningText
	case "DEBUG":
		return styles.FaintText
	default:
		return styles.Text
	}
}

// renderLogs renders the log view.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()

	title := "Log"
	if m.config != nil && m.config.LogFile != "" {
		title = truncate(m.config.LogFile, max(10, m.width-10))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Width(max(1, m.width-2)).
		Height(max(1, m.height-5))

	return " " + styles.AccentText.Render(title) + "\n" + box.Render(m.logViewport.View())
}
