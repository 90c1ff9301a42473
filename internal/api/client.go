package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Backend defines the calls atlas makes against the profile service.
// This interface is implemented by *Client and can be replaced in tests.
type Backend interface {
	SaveCountry(ctx context.Context, name string) (string, error)
	UpdateCountryCount(ctx context.Context, name string) (int, error)
	SavedCountries(ctx context.Context) ([]SavedCountry, error)
	NewestUser(ctx context.Context) (*User, error)
	AddUser(ctx context.Context, user User) (string, error)
}

// Ensure Client implements Backend at compile time.
var _ Backend = (*Client)(nil)

// Route paths of the profile service.
const (
	PathSaveCountry     = "/api/save-one-country"
	PathUpdateCount     = "/api/update-one-country-count"
	PathSavedCountries  = "/api/get-all-saved-countries"
	PathNewestUser      = "/api/get-newest-user"
	PathAddUser         = "/api/add-one-user"
	requestIDHeader     = "X-Request-ID"
	defaultAPIBind      = "127.0.0.1:8080"
	defaultUserAgent    = "atlas/0.1"
	maxTextResponseSize = 64 * 1024
)

// Options configure a Client.
type Options struct {
	// Timeout bounds each request. Zero means no bound.
	Timeout time.Duration
	Logger  *zap.Logger
}

// Client talks to the profile service HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	logger    *zap.Logger
	newID     func() string
}

// NewClient builds a Client using the provided apiBind host:port or URL value.
func NewClient(apiBind string, opts Options) (*Client, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: opts.Timeout,
		},
		userAgent: defaultUserAgent,
		logger:    logger,
		newID:     func() string { return uuid.NewString() },
	}, nil
}

// BaseURL returns the resolved service root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// CloseIdleConnections releases keep-alive connections held by the client.
func (c *Client) CloseIdleConnections() {
	if c != nil {
		c.http.CloseIdleConnections()
	}
}

// SaveCountry marks a country as saved by its common name and returns the
// service's status message.
func (c *Client) SaveCountry(ctx context.Context, name string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	return c.doText(ctx, http.MethodPost, PathSaveCountry, countryNameRequest{CountryName: name})
}

// UpdateCountryCount records one view of a country and returns the new total.
func (c *Client) UpdateCountryCount(ctx context.Context, name string) (int, error) {
	if c == nil {
		return 0, fmt.Errorf("client is nil")
	}
	var payload ViewCount
	if err := c.doJSON(ctx, http.MethodPost, PathUpdateCount, countryNameRequest{CountryName: name}, &payload); err != nil {
		return 0, err
	}
	if payload.Count < 0 {
		return 0, fmt.Errorf("api %s returned negative count %d", PathUpdateCount, payload.Count)
	}
	return payload.Count, nil
}

// SavedCountries lists saved country names in service order.
func (c *Client) SavedCountries(ctx context.Context) ([]SavedCountry, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []SavedCountry
	if err := c.doJSON(ctx, http.MethodGet, PathSavedCountries, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// NewestUser returns the most recently created user, or nil when there is none.
func (c *Client) NewestUser(ctx context.Context) (*User, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []User
	if err := c.doJSON(ctx, http.MethodGet, PathNewestUser, nil, &payload); err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, nil
	}
	user := payload[0]
	return &user, nil
}

// AddUser creates a user profile and returns the service's status message.
func (c *Client) AddUser(ctx context.Context, user User) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	return c.doText(ctx, http.MethodPost, PathAddUser, user)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, dest any) error {
	resp, requestID, err := c.send(ctx, method, path, body, "application/json")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &RequestError{Path: path, RequestID: requestID, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) doText(ctx context.Context, method, path string, body any) (string, error) {
	resp, requestID, err := c.send(ctx, method, path, body, "text/plain")
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxTextResponseSize))
	if err != nil {
		return "", &RequestError{Path: path, RequestID: requestID, Err: fmt.Errorf("read response: %w", err)}
	}
	return strings.TrimSpace(string(raw)), nil
}

// send executes the request and returns the response and its request id when
// the status is below 400. The caller owns the body.
func (c *Client) send(ctx context.Context, method, path string, body any, accept string) (*http.Response, string, error) {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	requestID := c.newID()
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.logger.With(
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID))

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug("request failed", zap.Error(err))
		return nil, requestID, &RequestError{Path: path, RequestID: requestID, Err: fmt.Errorf("execute request: %w", err)}
	}
	log.Debug("request done",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode >= 400 {
		_ = resp.Body.Close()
		return nil, requestID, &StatusError{Path: path, Status: resp.StatusCode, RequestID: requestID}
	}
	return resp, requestID, nil
}

// StatusError reports a response with a failing HTTP status.
type StatusError struct {
	Path      string
	Status    int
	RequestID string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Status)
}

// RequestError reports a request that failed in transport or while its
// response was read.
type RequestError struct {
	Path      string
	RequestID string
	Err       error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("api %s: %v", e.Path, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// LogFields returns the path and request id carried by err, so a failure
// logged by a caller can be matched to the X-Request-ID on the server side.
// Errors not tied to a request yield no fields.
func LogFields(err error) []zap.Field {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return []zap.Field{
			zap.String("path", statusErr.Path),
			zap.Int("status", statusErr.Status),
			zap.String("request_id", statusErr.RequestID),
		}
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return []zap.Field{
			zap.String("path", reqErr.Path),
			zap.String("request_id", reqErr.RequestID),
		}
	}
	return nil
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_bind %q: %w", apiBind, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
