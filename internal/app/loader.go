package app

import (
	"context"

	"golang.org/x/text/language"

	"github.com/five82/atlas/internal/catalog"
	"github.com/five82/atlas/internal/state"
)

// Loader is the catalog source used by StartLoader. Implemented by *catalog.Source.
type Loader interface {
	Load(ctx context.Context) catalog.Dataset
}

// StartLoader launches the single catalog load of the session in the
// background. It returns immediately; the returned channel closes once the
// store has been updated.
func StartLoader(ctx context.Context, store *state.Store, source Loader, tag language.Tag) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		load(ctx, store, source, tag)
	}()
	return done
}

func load(ctx context.Context, store *state.Store, source Loader, tag language.Tag) catalog.Dataset {
	ds := source.Load(ctx)
	store.Update(ds, tag)
	return ds
}
