package saved

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/atlas/internal/api"
)

// Outcome is the result of a fire-and-forget write.
type Outcome struct {
	Message string
	Err     error
}

// Saver is the write half used by Action. Implemented by *api.Client.
type Saver interface {
	SaveCountry(ctx context.Context, name string) (string, error)
}

// Reader is the read half used by Store. Implemented by *api.Client.
type Reader interface {
	SavedCountries(ctx context.Context) ([]api.SavedCountry, error)
	NewestUser(ctx context.Context) (*api.User, error)
}

// Action saves a country on the server. It never touches a Store.
type Action struct {
	backend Saver
	logger  *zap.Logger
}

// NewAction builds an Action.
func NewAction(backend Saver, logger *zap.Logger) *Action {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Action{backend: backend, logger: logger}
}

// Save posts name to the save endpoint. Failures are logged and returned on
// the outcome, never raised.
func (a *Action) Save(ctx context.Context, name string) Outcome {
	msg, err := a.backend.SaveCountry(ctx, name)
	if err != nil {
		fields := append([]zap.Field{zap.String("country_name", name), zap.Error(err)}, api.LogFields(err)...)
		a.logger.Warn("save country failed", fields...)
		return Outcome{Err: err}
	}
	a.logger.Info("country saved",
		zap.String("country_name", name),
		zap.String("response", msg))
	return Outcome{Message: msg}
}

// Snapshot is a point-in-time copy of the cached server lists.
type Snapshot struct {
	Entries []api.SavedCountry
	// Newest is nil when the server has no users or the read failed.
	Newest *api.User

	SavedErr error
	UserErr  error

	Loaded      bool
	Stale       bool
	RefreshedAt time.Time
}

// Store caches the saved-country list and the newest user. Refresh is the
// only operation that reads the server.
type Store struct {
	backend Reader
	logger  *zap.Logger
	now     func() time.Time

	mu   sync.RWMutex
	snap Snapshot
	// invalidations counts Invalidate calls; a Refresh that overlaps one
	// stores its result as already stale.
	invalidations uint64
}

// NewStore builds a Store.
func NewStore(backend Reader, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{backend: backend, logger: logger, now: time.Now}
}

// Refresh issues both reads concurrently and replaces the cache. A failed
// read is recorded on its own field and does not affect the other. If
// Invalidate ran while the reads were in flight, the stored snapshot stays
// Stale, since the lists may predate the write that invalidated them.
func (s *Store) Refresh(ctx context.Context) Snapshot {
	s.mu.RLock()
	startGen := s.invalidations
	s.mu.RUnlock()

	var (
		entries  []api.SavedCountry
		newest   *api.User
		savedErr error
		userErr  error
	)

	var g errgroup.Group
	g.Go(func() error {
		entries, savedErr = s.backend.SavedCountries(ctx)
		return nil
	})
	g.Go(func() error {
		newest, userErr = s.backend.NewestUser(ctx)
		return nil
	})
	_ = g.Wait()

	if savedErr != nil {
		s.logger.Warn("saved countries read failed", append([]zap.Field{zap.Error(savedErr)}, api.LogFields(savedErr)...)...)
	}
	if userErr != nil {
		s.logger.Warn("newest user read failed", append([]zap.Field{zap.Error(userErr)}, api.LogFields(userErr)...)...)
	}

	next := Snapshot{
		Entries:     entries,
		Newest:      newest,
		SavedErr:    savedErr,
		UserErr:     userErr,
		Loaded:      true,
		RefreshedAt: s.now(),
	}

	s.mu.Lock()
	if s.invalidations != startGen {
		next.Stale = true
	}
	s.snap = next
	s.mu.Unlock()
	return cloneSnapshot(next)
}

// Invalidate marks the cache stale. It does not read the server.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidations++
	if s.snap.Loaded {
		s.snap.Stale = true
	}
}

// Snapshot returns a copy of the cache.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSnapshot(s.snap)
}

func cloneSnapshot(in Snapshot) Snapshot {
	out := in
	if in.Entries != nil {
		out.Entries = append([]api.SavedCountry(nil), in.Entries...)
	}
	if in.Newest != nil {
		user := *in.Newest
		out.Newest = &user
	}
	return out
}
