package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/atlas/internal/profile"
	"github.com/five82/atlas/internal/saved"
)

var errNoServer = errors.New("no server configured")

// newFormInputs builds one text input per profile field, in form order.
func newFormInputs() [4]textinput.Model {
	var inputs [4]textinput.Model
	placeholders := map[profile.Field]string{
		profile.FullName: "Ada Lovelace",
		profile.Email:    "ada@example.com",
		profile.Country:  "United Kingdom",
		profile.Bio:      "A few words about you",
	}
	for i, f := range profile.Fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[f]
		ti.CharLimit = 200
		ti.Width = 40
		inputs[i] = ti
	}
	return inputs
}

func (m *Model) focusForm(i int) {
	for j := range m.formInputs {
		m.formInputs[j].Blur()
	}
	m.formFocus = i
	m.formInputs[i].Focus()
}

func (m *Model) blurForm() {
	for j := range m.formInputs {
		m.formInputs[j].Blur()
	}
	m.formFocus = -1
}

// handleFormKey routes input to the focused profile field.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	last := len(m.formInputs) - 1

	switch {
	case key.Matches(msg, m.keys.Interrupt):
		return m, tea.Quit
	case key.Matches(msg, m.keys.LeaveForm):
		m.blurForm()
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		m.focusForm((m.formFocus + 1) % len(m.formInputs))
		return m, textinput.Blink
	case key.Matches(msg, m.keys.PrevField):
		m.focusForm((m.formFocus + len(m.formInputs) - 1) % len(m.formInputs))
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Submit):
		if m.formFocus < last {
			m.focusForm(m.formFocus + 1)
			return m, textinput.Blink
		}
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
	return m, cmd
}

// submitForm copies the inputs into the draft and submits it. A valid draft
// clears the inputs at once; the server reply arrives later as profileSentMsg.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if m.form == nil {
		m.formErr = errNoServer
		return m, nil
	}
	for i, f := range profile.Fields {
		m.form.Set(f, m.formInputs[i].Value())
	}
	sub, err := m.form.Submit()
	if err != nil {
		m.formErr = err
		return m, nil
	}
	m.formErr = nil
	for i := range m.formInputs {
		m.formInputs[i].Reset()
	}
	m.focusForm(0)
	return m, sendProfileCmd(m.ctx, m.form, sub)
}

// handleSavedKey processes keyboard input for the saved page.
func (m Model) handleSavedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Refresh):
		cmd := m.refreshSaved()
		return m, cmd
	case key.Matches(msg, m.keys.EditForm):
		m.focusForm(0)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Down):
		if m.savedScroll < len(m.reconcileSaved().Countries)-1 {
			m.savedScroll++
		}
	case key.Matches(msg, m.keys.Up):
		if m.savedScroll > 0 {
			m.savedScroll--
		}
	case key.Matches(msg, m.keys.Top):
		m.savedScroll = 0
	}
	return m, nil
}

// refreshSaved starts a read of both server lists.
func (m *Model) refreshSaved() tea.Cmd {
	if m.savedStore == nil {
		return nil
	}
	m.savedBusy = true
	return refreshSavedCmd(m.ctx, m.savedStore)
}

// reconcileSaved projects the cached saved list onto the catalog.
func (m Model) reconcileSaved() saved.Reconciliation {
	return saved.Reconcile(m.savedSnap.Entries, m.snapshot.Countries)
}

// renderSaved renders the greeting, the saved cards and the profile form.
func (m Model) renderSaved() string {
	styles := m.theme.Styles()
	var b strings.Builder

	if u := m.savedSnap.Newest; u != nil && strings.TrimSpace(u.Name) != "" {
		b.WriteString(" ")
		b.WriteString(styles.AccentText.Bold(true).Render(fmt.Sprintf("Welcome, %s!", u.Name)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderSavedCards(styles))
	b.WriteString("\n\n")
	b.WriteString(m.renderProfileForm(styles))
	return b.String()
}

func (m Model) renderSavedCards(styles Styles) string {
	switch {
	case m.savedStore == nil:
		return styles.MutedText.Render(" " + errNoServer.Error())
	case !m.savedSnap.Loaded:
		return styles.MutedText.Render(" Loading saved countries...")
	}

	var b strings.Builder
	b.WriteString(" ")
	b.WriteString(styles.Text.Bold(true).Render("Saved countries"))
	if m.savedBusy {
		b.WriteString(styles.FaintText.Render("  refreshing..."))
	} else if m.savedSnap.Stale {
		b.WriteString(styles.WarningText.Render("  changed on server, press r"))
	}
	b.WriteString("\n")

	rec := m.reconcileSaved()
	if len(rec.Countries) == 0 {
		b.WriteString(styles.MutedText.Render(" No saved countries yet."))
		return b.String()
	}

	ambiguous := make(map[string]bool, len(rec.Ambiguous))
	for _, name := range rec.Ambiguous {
		ambiguous[name] = true
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Padding(0, 1).
		Width(30)

	perRow := max(1, m.width/34)
	start := min(m.savedScroll, len(rec.Countries)-1)
	visible := rec.Countries[start:]
	if limit := perRow * 2; len(visible) > limit {
		visible = visible[:limit]
	}

	var rows []string
	for i := 0; i < len(visible); i += perRow {
		end := min(len(visible), i+perRow)
		cards := make([]string, 0, end-i)
		for _, c := range visible[i:end] {
			title := styles.Text.Bold(true).Render(truncate(c.CommonName(), 24))
			if ambiguous[c.CommonName()] {
				title += styles.WarningText.Render(" *")
			}
			body := strings.Join([]string{
				title,
				styles.MutedText.Render("Population ") + styles.Text.Render(c.FormattedPopulation()),
				styles.MutedText.Render("Region     ") + lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.RegionColor(c.Region))).Render(c.Region),
				styles.MutedText.Render("Capital    ") + styles.Text.Render(truncate(c.Capital(), 16)),
			}, "\n")
			cards = append(cards, card.Render(body))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))

	if len(rec.Ambiguous) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render(" * more than one country has this name"))
	}
	return b.String()
}

func (m Model) renderProfileForm(styles Styles) string {
	var b strings.Builder
	b.WriteString(" ")
	b.WriteString(styles.Text.Bold(true).Render("Your profile"))
	if m.form != nil && m.form.Phase() == profile.Submitting {
		b.WriteString(styles.FaintText.Render("  sending..."))
	}
	b.WriteString("\n")

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Muted)).
		Width(12)
	for i, f := range profile.Fields {
		label := labelStyle.Render(titleCase(f.String()))
		if i == m.formFocus {
			label = labelStyle.Foreground(lipgloss.Color(m.theme.Accent)).Render(titleCase(f.String()))
		}
		b.WriteString(" ")
		b.WriteString(label)
		b.WriteString(m.formInputs[i].View())
		b.WriteString("\n")
	}

	if m.formErr != nil {
		for _, line := range strings.Split(m.formErr.Error(), "\n") {
			b.WriteString(" ")
			b.WriteString(styles.DangerText.Render(line))
			b.WriteString("\n")
		}
	}
	return b.String()
}
