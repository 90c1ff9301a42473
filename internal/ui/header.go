package ui

import (
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	appLogo    = "atlas"
	appTagline = "Where in the world?"
)

// renderHeader renders the status bar: logo, catalog state and active view.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render(appLogo, styles.Logo)}
	if !compact {
		parts = append(parts, bg.Render(appTagline, styles.MutedText))
	}

	if m.snapshot.Loaded {
		parts = append(parts, bg.Render(countLabel(len(m.snapshot.Countries)), styles.Text))
		if !m.snapshot.LoadedAt.IsZero() && !compact {
			parts = append(parts, bg.Render("loaded "+humanize.Time(m.snapshot.LoadedAt), styles.FaintText))
		}
	} else {
		parts = append(parts, bg.Render("Loading…", styles.WarningText.Bold(true)))
	}

	if advisory := m.snapshot.Advisory(); advisory != "" {
		limit := 80
		if compact {
			limit = 40
		}
		parts = append(parts, bg.Render(truncate(advisory, limit), styles.WarningText))
	}

	parts = append(parts, bg.Render(m.currentView.String(), styles.AccentText))

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderCommandBar renders the key hints for the active view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewDetail:
		commands = []cmd{
			{"s", "Save"},
			{"esc", "Back"},
			{"m", "Saved"},
			{"l", "Logs"},
			{"?", "More"},
		}
	case ViewSaved:
		if m.formFocus >= 0 {
			commands = []cmd{
				{"tab", "Next"},
				{"shift+tab", "Prev"},
				{"enter", "Submit"},
				{"esc", "Done"},
			}
		} else {
			commands = []cmd{
				{"r", "Refresh"},
				{"p", "Profile"},
				{"j/k", "Scroll"},
				{"c", "Countries"},
				{"?", "More"},
			}
		}
	case ViewLogs:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"g/G", "Top/Bottom"},
			{"c", "Countries"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Open"},
			{"m", "Saved"},
			{"l", "Logs"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}
