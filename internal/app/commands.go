package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/five82/atlas/internal/country"
	"github.com/five82/atlas/internal/server"
	"github.com/five82/atlas/internal/state"
	"github.com/five82/atlas/internal/viewcount"
)

// ErrCountryNotFound is returned by Show for an unknown code.
var ErrCountryNotFound = errors.New("country not found")

// List prints the sorted catalog. The degraded advisory goes to errOut.
func List(ctx context.Context, opts Options, out, errOut io.Writer) error {
	session, err := Open(opts)
	if err != nil {
		return err
	}
	defer session.Close()

	store := &state.Store{}
	load(ctx, store, session.Source, session.Prefs.CollationTag())
	snap := store.Snapshot()

	if advisory := snap.Advisory(); advisory != "" {
		fmt.Fprintln(errOut, advisory)
	}
	fmt.Fprintln(out, renderTable(snap.Countries))
	return nil
}

// Show prints one record and reports a view for it.
func Show(ctx context.Context, opts Options, code string, out, errOut io.Writer) error {
	session, err := Open(opts)
	if err != nil {
		return err
	}
	defer session.Close()

	store := &state.Store{}
	load(ctx, store, session.Source, session.Prefs.CollationTag())
	snap := store.Snapshot()

	if advisory := snap.Advisory(); advisory != "" {
		fmt.Fprintln(errOut, advisory)
	}

	c, lookup := snap.Resolve(code)
	if lookup != country.LookupFound {
		return fmt.Errorf("%w: %q", ErrCountryNotFound, strings.TrimSpace(code))
	}

	views := viewcount.New(session.Client, session.Logger.Named("viewcount")).
		Visit(ctx, c.Key(), c.CommonName())
	fmt.Fprint(out, renderDetail(c, views))
	return nil
}

// Serve runs the reference profile service until ctx is cancelled.
func Serve(ctx context.Context, opts Options) error {
	opts.LogToStderr = true
	session, err := Open(opts)
	if err != nil {
		return err
	}
	defer session.Close()

	db, err := server.OpenDB(session.Config.Server.Database)
	if err != nil {
		return err
	}
	return server.Run(ctx, session.Config.Server.Listen, db, session.Logger.Named("server"))
}

func renderTable(records []country.Country) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "CODE", "POPULATION", "CAPITAL", "REGION")
	for _, c := range records {
		t.Row(c.CommonName(), c.Code, c.FormattedPopulation(), c.Capital(), c.Region)
	}
	return t.String()
}

func renderDetail(c country.Country, views viewcount.State) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", c.CommonName(), c.Key())
	if official := strings.TrimSpace(c.Name.Official); official != "" && official != c.CommonName() {
		fmt.Fprintf(&b, "  Official:   %s\n", official)
	}
	fmt.Fprintf(&b, "  Population: %s\n", c.FormattedPopulation())
	fmt.Fprintf(&b, "  Region:     %s\n", c.Region)
	fmt.Fprintf(&b, "  Capital:    %s\n", c.Capital())
	if len(c.Borders) > 0 {
		fmt.Fprintf(&b, "  Borders:    %s\n", strings.Join(c.Borders, ", "))
	}
	fmt.Fprintf(&b, "  Flag:       %s\n", c.FlagAlt())
	if views.Visible() {
		fmt.Fprintf(&b, "  Views:      %d\n", views.Count)
	}
	return b.String()
}
