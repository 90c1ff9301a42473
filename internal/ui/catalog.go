package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/atlas/internal/country"
)

// handleCatalogKey processes keyboard input for the catalog list.
func (m Model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.snapshot.Countries)
	if count == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < count-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = count - 1
	case key.Matches(msg, m.keys.HalfPageDown):
		m.selectedRow = min(count-1, m.selectedRow+m.listHeight()/2)
	case key.Matches(msg, m.keys.HalfPageUp):
		m.selectedRow = max(0, m.selectedRow-m.listHeight()/2)
	case key.Matches(msg, m.keys.Open):
		return m.openDetail(m.snapshot.Countries[m.selectedRow].Key())
	}

	return m, nil
}

func (m *Model) clampSelection() {
	if n := len(m.snapshot.Countries); m.selectedRow >= n {
		m.selectedRow = max(0, n-1)
	}
}

// listHeight is the number of rows available below the headers.
func (m Model) listHeight() int {
	return max(1, m.height-4)
}

// renderCatalog renders the country list.
func (m Model) renderCatalog() string {
	styles := m.theme.Styles()

	if !m.snapshot.Loaded {
		return styles.MutedText.Render("  Loading countries...")
	}
	if len(m.snapshot.Countries) == 0 {
		return styles.MutedText.Render("  No countries available.")
	}

	cols := catalogColumns(m.width)
	var b strings.Builder
	b.WriteString(styles.FaintText.Render(cols.header()))
	b.WriteString("\n")

	height := m.listHeight()
	start := scrollStart(m.selectedRow, height, len(m.snapshot.Countries))
	end := min(len(m.snapshot.Countries), start+height)
	for i := start; i < end; i++ {
		line := cols.row(m.snapshot.Countries[i], styles, m.theme)
		if i == m.selectedRow {
			line = styles.Selected.Width(m.width).Render(cols.plainRow(m.snapshot.Countries[i]))
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// scrollStart keeps selected inside a window of height rows.
func scrollStart(selected, height, total int) int {
	if total <= height || selected < height/2 {
		return 0
	}
	start := selected - height/2
	if start+height > total {
		start = total - height
	}
	return start
}

type columns struct {
	name, code, population, capital int
	compact                         bool
}

func catalogColumns(width int) columns {
	c := columns{name: 28, code: 5, population: 15, capital: 20}
	if width < LayoutCompactWidth {
		c.compact = true
		c.name = max(12, width-c.population-c.code-4)
	}
	return c
}

func (c columns) header() string {
	parts := []string{
		padRight("NAME", c.name),
		padRight("CODE", c.code),
		padLeft("POPULATION", c.population),
	}
	if !c.compact {
		parts = append(parts, " "+padRight("CAPITAL", c.capital), "REGION")
	}
	return " " + strings.Join(parts, " ")
}

func (c columns) cells(rec country.Country) []string {
	parts := []string{
		padRight(truncate(rec.CommonName(), c.name), c.name),
		padRight(rec.Code, c.code),
		padLeft(rec.FormattedPopulation(), c.population),
	}
	if !c.compact {
		parts = append(parts, " "+padRight(truncate(rec.Capital(), c.capital), c.capital), rec.Region)
	}
	return parts
}

func (c columns) plainRow(rec country.Country) string {
	return " " + strings.Join(c.cells(rec), " ")
}

func (c columns) row(rec country.Country, styles Styles, theme Theme) string {
	cells := c.cells(rec)
	cells[0] = styles.Text.Render(cells[0])
	cells[1] = styles.FaintText.Render(cells[1])
	cells[2] = styles.MutedText.Render(cells[2])
	if !c.compact {
		cells[3] = styles.Text.Render(cells[3])
		cells[4] = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.RegionColor(rec.Region))).Render(cells[4])
	}
	return " " + strings.Join(cells, " ")
}

// countLabel renders "N countries" for the header.
func countLabel(n int) string {
	if n == 1 {
		return "1 country"
	}
	return fmt.Sprintf("%d countries", n)
}
