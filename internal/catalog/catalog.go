package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/five82/atlas/internal/country"
)

// Advisory is the user-facing notice shown while the bundled snapshot is in use.
const Advisory = "Country service is unavailable, showing bundled backup data."

// ErrEmptyCatalog is returned when the remote catalog answers with no records.
var ErrEmptyCatalog = errors.New("remote catalog is empty")

// Fetcher retrieves the full remote catalog. Implemented by *Remote.
type Fetcher interface {
	FetchCatalog(ctx context.Context) ([]country.Country, error)
}

// Dataset is the result of a catalog load.
type Dataset struct {
	Countries []country.Country
	Degraded  bool
	// Err is the remote failure that caused the fallback, nil otherwise.
	Err      error
	LoadedAt time.Time
}

// Advisory returns the degraded-mode notice, or "" when the remote data is in use.
func (d Dataset) Advisory() string {
	if !d.Degraded {
		return ""
	}
	return Advisory
}

// Source loads the catalog once per session with fallback to the bundled snapshot.
type Source struct {
	remote Fetcher
	logger *zap.Logger
	now    func() time.Time
}

// NewSource builds a Source. A nil remote always yields the bundled snapshot.
func NewSource(remote Fetcher, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{remote: remote, logger: logger, now: time.Now}
}

// Load makes a single remote attempt and falls back to the bundled snapshot on
// any failure. It never returns an error; the cause is kept on Dataset.Err.
func (s *Source) Load(ctx context.Context) Dataset {
	records, err := s.fetch(ctx)
	if err == nil {
		s.logger.Info("catalog loaded", zap.Int("countries", len(records)))
		return Dataset{Countries: records, LoadedAt: s.now()}
	}

	fallback := Bundled()
	s.logger.Warn("catalog fetch failed, using bundled snapshot",
		zap.Error(err),
		zap.Int("countries", len(fallback)))
	return Dataset{
		Countries: fallback,
		Degraded:  true,
		Err:       err,
		LoadedAt:  s.now(),
	}
}

func (s *Source) fetch(ctx context.Context) ([]country.Country, error) {
	if s.remote == nil {
		return nil, fmt.Errorf("no remote catalog configured")
	}
	records, err := s.remote.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyCatalog
	}
	return country.Normalize(records), nil
}
