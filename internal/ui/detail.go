package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/atlas/internal/country"
)

// detailCountry resolves the open detail code against the loaded catalog.
func (m Model) detailCountry() (country.Country, bool) {
	c, lookup := m.snapshot.Resolve(m.detailCode)
	return c, lookup == country.LookupFound
}

// handleDetailKey processes keyboard input for the detail view.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Save) {
		c, found := m.detailCountry()
		if !found || m.saveAction == nil {
			return m, nil
		}
		m.saveNote = ""
		return m, saveCountryCmd(m.ctx, m.saveAction, m.detailVisit, c.CommonName())
	}
	return m, nil
}

// renderDetail renders the record for detailCode.
func (m Model) renderDetail() string {
	styles := m.theme.Styles()

	c, lookup := m.snapshot.Resolve(m.detailCode)
	switch lookup {
	case country.LookupLoading:
		return styles.MutedText.Render("  Loading...")
	case country.LookupNotFound:
		return styles.DangerText.Render(fmt.Sprintf("  Country %q not found", m.detailCode))
	}

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Muted)).
		Width(16)

	var b strings.Builder
	b.WriteString(" ")
	b.WriteString(styles.Text.Bold(true).Render(c.CommonName()))
	if c.Code != "" {
		b.WriteString("  ")
		b.WriteString(styles.FaintText.Render(c.Code))
	}
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(" ")
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	row("Official name", styles.Text.Render(c.Name.Official))
	row("Population", styles.Text.Render(c.FormattedPopulation()))
	row("Region", lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.RegionColor(c.Region))).Render(c.Region))
	row("Capital", styles.Text.Render(c.Capital()))
	row("Borders", m.renderBorders(c, styles))
	row("Flag", styles.Text.Render(c.FlagAlt()))
	if url := flagURL(c); url != "" {
		row("", styles.InfoText.Render(url))
	}

	if state := m.views.State(); state.Visible() && state.Code == c.Key() {
		row("Views", styles.AccentText.Render(fmt.Sprintf("%d", state.Count)))
	}

	if m.saveNote != "" {
		b.WriteString("\n ")
		b.WriteString(styles.SuccessText.Render(m.saveNote))
		b.WriteString("\n")
	}

	return b.String()
}

// renderBorders lists neighbour names, falling back to the raw code when a
// neighbour is not in the catalog.
func (m Model) renderBorders(c country.Country, styles Styles) string {
	if len(c.Borders) == 0 {
		return styles.FaintText.Render("None")
	}
	names := make([]string, 0, len(c.Borders))
	for _, code := range c.Borders {
		if n, ok := country.FindByCode(m.snapshot.Countries, code); ok {
			names = append(names, n.CommonName())
		} else {
			names = append(names, code)
		}
	}
	return styles.Text.Render(truncate(strings.Join(names, ", "), max(20, m.width-20)))
}

func flagURL(c country.Country) string {
	if c.Flags.PNG != "" {
		return c.Flags.PNG
	}
	return c.Flags.SVG
}
