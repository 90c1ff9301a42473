package state

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/text/language"

	"github.com/five82/atlas/internal/catalog"
	"github.com/five82/atlas/internal/country"
)

// Snapshot represents the catalog session available to the UI.
type Snapshot struct {
	// Countries is the catalog in collated name order.
	Countries []country.Country
	Loaded    bool
	Degraded  bool
	// LastError is the remote failure behind a degraded load.
	LastError error
	LoadedAt  time.Time
}

// Advisory returns the degraded-mode notice, or "".
func (s Snapshot) Advisory() string {
	if !s.Degraded {
		return ""
	}
	return catalog.Advisory
}

// Resolve looks code up in the catalog, reporting Loading until the first load lands.
func (s Snapshot) Resolve(code string) (country.Country, country.Lookup) {
	return country.Resolve(s.Countries, s.Loaded, code)
}

// Store coordinates the one-shot catalog load with the UI.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the catalog with ds, sorted using the collation of tag.
func (s *Store) Update(ds catalog.Dataset, tag language.Tag) {
	sorted := country.SortedByName(ds.Countries, tag)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Countries = sorted
	s.snapshot.Loaded = true
	s.snapshot.Degraded = ds.Degraded
	s.snapshot.LastError = ds.Err
	s.snapshot.LoadedAt = ds.LoadedAt
	if s.snapshot.LoadedAt.IsZero() {
		s.snapshot.LoadedAt = time.Now()
	}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Countries = cloneCountries(s.snapshot.Countries)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneCountries(items []country.Country) []country.Country {
	if len(items) == 0 {
		return nil
	}
	dup := make([]country.Country, len(items))
	copy(dup, items)
	return dup
}
