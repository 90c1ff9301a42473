// Package viewcount tracks the view counter of the detail record on screen.
//
// Each visit walks Idle -> Requesting -> Settled | Failed. Responses carry the
// Ticket they were issued for, and Settle ignores any ticket whose generation
// is no longer current, so a slow reply for a country the user already left
// cannot overwrite the count shown for the current one.
package viewcount

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/five82/atlas/internal/api"
)

var errNoBackend = errors.New("no view count backend configured")

// Phase is the lifecycle position of the current visit.
type Phase int

const (
	Idle Phase = iota
	Requesting
	Settled
	Failed
)

func (p Phase) String() string {
	switch p {
	case Requesting:
		return "requesting"
	case Settled:
		return "settled"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// State is the client-side cache of the server counter for one visit.
type State struct {
	Code  string
	Name  string
	Phase Phase
	Count int
}

// Visible reports whether the count row should be rendered.
func (s State) Visible() bool {
	return s.Phase == Settled
}

// Ticket identifies one request issued for a visit.
type Ticket struct {
	gen  uint64
	Code string
	Name string
}

// Result is the outcome of one increment request.
type Result struct {
	Count int
	Err   error
}

// Incrementer records a view and returns the new total. Implemented by *api.Client.
type Incrementer interface {
	UpdateCountryCount(ctx context.Context, name string) (int, error)
}

// Counter owns the view-count state of the detail view. Safe for concurrent use.
type Counter struct {
	backend Incrementer
	logger  *zap.Logger

	mu    sync.Mutex
	gen   uint64
	state State
}

// New builds a Counter.
func New(backend Incrementer, logger *zap.Logger) *Counter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Counter{backend: backend, logger: logger}
}

// Show starts a visit for code unless that code is already shown. The returned
// ticket must be passed to Fetch and Settle; ok is false when no request is needed.
func (c *Counter) Show(code, name string) (Ticket, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Phase != Idle && c.state.Code == code {
		return Ticket{}, false
	}
	c.gen++
	c.state = State{Code: code, Name: name, Phase: Requesting}
	return Ticket{gen: c.gen, Code: code, Name: name}, true
}

// Fetch performs the increment for t. It does not touch the counter state.
func (c *Counter) Fetch(ctx context.Context, t Ticket) Result {
	if c.backend == nil {
		return Result{Err: errNoBackend}
	}
	count, err := c.backend.UpdateCountryCount(ctx, t.Name)
	return Result{Count: count, Err: err}
}

// Settle applies r if t still belongs to the current visit and reports
// whether it did.
func (c *Counter) Settle(t Ticket, r Result) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t.gen != c.gen || c.state.Phase != Requesting {
		c.logger.Debug("dropping stale view count",
			zap.String("code", t.Code),
			zap.String("current", c.state.Code))
		return false
	}
	if r.Err != nil {
		fields := append([]zap.Field{
			zap.String("code", t.Code),
			zap.String("country_name", t.Name),
			zap.Error(r.Err),
		}, api.LogFields(r.Err)...)
		c.logger.Warn("view count update failed", fields...)
		c.state.Phase = Failed
		return true
	}
	c.state.Phase = Settled
	c.state.Count = r.Count
	return true
}

// Leave discards the current visit. Responses still in flight become stale.
func (c *Counter) Leave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.state = State{}
}

// State returns a copy of the current visit state.
func (c *Counter) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Visit runs Show, Fetch and Settle in sequence and returns the resulting state.
func (c *Counter) Visit(ctx context.Context, code, name string) State {
	t, ok := c.Show(code, name)
	if !ok {
		return c.State()
	}
	c.Settle(t, c.Fetch(ctx, t))
	return c.State()
}
