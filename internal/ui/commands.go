package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/atlas/internal/logtail"
	"github.com/five82/atlas/internal/profile"
	"github.com/five82/atlas/internal/saved"
	"github.com/five82/atlas/internal/state"
	"github.com/five82/atlas/internal/viewcount"
)

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// viewCountMsg carries the ticket it was issued for so stale replies can be dropped.
type viewCountMsg struct {
	ticket viewcount.Ticket
	result viewcount.Result
}

// saveDoneMsg carries the detail visit the save was issued from.
type saveDoneMsg struct {
	visit   int
	name    string
	outcome saved.Outcome
}

type savedRefreshMsg saved.Snapshot

type profileSentMsg profile.Outcome

type logEntriesMsg []logtail.Entry

type logErrorMsg struct{ err error }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func fetchViewCountCmd(ctx context.Context, counter *viewcount.Counter, ticket viewcount.Ticket) tea.Cmd {
	return func() tea.Msg {
		return viewCountMsg{ticket: ticket, result: counter.Fetch(ctx, ticket)}
	}
}

func saveCountryCmd(ctx context.Context, action *saved.Action, visit int, name string) tea.Cmd {
	return func() tea.Msg {
		return saveDoneMsg{visit: visit, name: name, outcome: action.Save(ctx, name)}
	}
}

func refreshSavedCmd(ctx context.Context, store *saved.Store) tea.Cmd {
	return func() tea.Msg {
		return savedRefreshMsg(store.Refresh(ctx))
	}
}

func sendProfileCmd(ctx context.Context, form *profile.Form, sub profile.Submission) tea.Cmd {
	return func() tea.Msg {
		return profileSentMsg(form.Send(ctx, sub))
	}
}

func readLogCmd(path string, maxEntries int) tea.Cmd {
	return func() tea.Msg {
		entries, err := logtail.Tail(path, maxEntries)
		if err != nil {
			return logErrorMsg{err: err}
		}
		return logEntriesMsg(entries)
	}
}
