// Package profile holds the profile form draft and its submission.
//
// Submission is fire-and-forget: Submit validates and clears the draft at
// once, and Send delivers the snapshot afterwards. The form never waits for
// the server before accepting new input.
package profile

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/five82/atlas/internal/api"
)

// Field names a draft input.
type Field int

const (
	FullName Field = iota
	Email
	Country
	Bio
)

// Fields lists the inputs in form order.
var Fields = []Field{FullName, Email, Country, Bio}

func (f Field) String() string {
	switch f {
	case FullName:
		return "full name"
	case Email:
		return "email"
	case Country:
		return "country"
	case Bio:
		return "bio"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// Draft is the client-side profile being edited.
type Draft struct {
	FullName string
	Email    string
	Country  string
	Bio      string
}

// Get returns the value of f.
func (d Draft) Get(f Field) string {
	switch f {
	case FullName:
		return d.FullName
	case Email:
		return d.Email
	case Country:
		return d.Country
	case Bio:
		return d.Bio
	}
	return ""
}

// ErrRequired is wrapped by Validate for each empty field.
var ErrRequired = errors.New("required")

// Validate requires every field and an address-shaped email.
func (d Draft) Validate() error {
	var errs []error
	for _, f := range Fields {
		if strings.TrimSpace(d.Get(f)) == "" {
			errs = append(errs, fmt.Errorf("%s: %w", f, ErrRequired))
		}
	}
	if email := strings.TrimSpace(d.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			errs = append(errs, fmt.Errorf("email: invalid address %q", email))
		}
	}
	return errors.Join(errs...)
}

// Profile maps the draft to the wire shape of the add-user endpoint.
func (d Draft) Profile() api.User {
	return api.User{
		Name:        strings.TrimSpace(d.FullName),
		CountryName: strings.TrimSpace(d.Country),
		Email:       strings.TrimSpace(d.Email),
		Bio:         strings.TrimSpace(d.Bio),
	}
}

// Phase is the form lifecycle.
type Phase int

const (
	Editing Phase = iota
	Submitting
	Idle
)

func (p Phase) String() string {
	switch p {
	case Submitting:
		return "submitting"
	case Idle:
		return "idle"
	default:
		return "editing"
	}
}

// Submission is the draft captured at submit time.
type Submission struct {
	User api.User
}

// Outcome is the result of delivering a Submission.
type Outcome struct {
	Message string
	Err     error
}

// Creator creates a user. Implemented by *api.Client.
type Creator interface {
	AddUser(ctx context.Context, user api.User) (string, error)
}

// Form owns the draft for the lifetime of the saved page. Safe for concurrent use.
type Form struct {
	backend Creator
	logger  *zap.Logger

	mu    sync.Mutex
	draft Draft
	phase Phase
	last  Outcome
}

// NewForm builds an empty Form.
func NewForm(backend Creator, logger *zap.Logger) *Form {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Form{backend: backend, logger: logger}
}

// Set updates one field and puts the form back into Editing.
func (f *Form) Set(field Field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch field {
	case FullName:
		f.draft.FullName = value
	case Email:
		f.draft.Email = value
	case Country:
		f.draft.Country = value
	case Bio:
		f.draft.Bio = value
	}
	f.phase = Editing
}

// Draft returns the current draft.
func (f *Form) Draft() Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Phase returns the current phase.
func (f *Form) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// LastOutcome returns the outcome of the most recent Send.
func (f *Form) LastOutcome() Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

// Submit validates the draft. On success it returns the captured submission,
// clears every field and enters Submitting. On failure the draft is kept.
func (f *Form) Submit() (Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.draft.Validate(); err != nil {
		return Submission{}, err
	}
	sub := Submission{User: f.draft.Profile()}
	f.draft = Draft{}
	f.phase = Submitting
	return sub, nil
}

// Send delivers sub and moves the form to Idle whatever the result. The draft
// is not touched, so input typed meanwhile survives.
func (f *Form) Send(ctx context.Context, sub Submission) Outcome {
	var out Outcome
	if f.backend == nil {
		out.Err = errors.New("no profile backend configured")
	} else {
		out.Message, out.Err = f.backend.AddUser(ctx, sub.User)
	}

	if out.Err != nil {
		fields := append([]zap.Field{zap.String("name", sub.User.Name), zap.Error(out.Err)}, api.LogFields(out.Err)...)
		f.logger.Warn("profile submission failed", fields...)
	} else {
		f.logger.Info("profile submitted",
			zap.String("name", sub.User.Name),
			zap.String("response", out.Message))
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.phase == Submitting {
		f.phase = Idle
	}
	f.last = out
	return out
}
