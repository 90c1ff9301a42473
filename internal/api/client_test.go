package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultAPIBind {
		t.Fatalf("host = %q, want %q", u.Host, defaultAPIBind)
	}

	u, err = parseBaseURL("http://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

type recorded struct {
	method      string
	body        map[string]string
	contentType string
	userAgent   string
	requestID   string
}

func newContractServer(t *testing.T) (*httptest.Server, func(path string) recorded) {
	t.Helper()
	var mu sync.Mutex
	seen := map[string]recorded{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{
			method:      r.Method,
			contentType: r.Header.Get("Content-Type"),
			userAgent:   r.Header.Get("User-Agent"),
			requestID:   r.Header.Get(requestIDHeader),
		}
		if r.Body != nil {
			raw, _ := io.ReadAll(r.Body)
			if len(raw) > 0 {
				_ = json.Unmarshal(raw, &rec.body)
			}
		}
		mu.Lock()
		seen[r.URL.Path] = rec
		mu.Unlock()

		switch r.URL.Path {
		case PathSaveCountry:
			_, _ = w.Write([]byte("Success! Country saved.\n"))
		case PathUpdateCount:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(ViewCount{Count: 7})
		case PathSavedCountries:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode([]SavedCountry{{CountryName: "Canada"}, {CountryName: "Peru"}})
		case PathNewestUser:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode([]User{{Name: "Ada", CountryName: "Canada"}, {Name: "Older"}})
		case PathAddUser:
			_, _ = w.Write([]byte("Success! User added."))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	return server, func(path string) recorded {
		mu.Lock()
		defer mu.Unlock()
		return seen[path]
	}
}

func TestClient_SpeaksContract(t *testing.T) {
	t.Parallel()

	server, seen := newContractServer(t)
	c, err := NewClient(server.URL, Options{Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	msg, err := c.SaveCountry(ctx, "Canada")
	if err != nil {
		t.Fatalf("SaveCountry returned error: %v", err)
	}
	if msg != "Success! Country saved." {
		t.Fatalf("SaveCountry message = %q, want trimmed text", msg)
	}
	save := seen(PathSaveCountry)
	if save.method != http.MethodPost || save.body["country_name"] != "Canada" || save.contentType != "application/json" {
		t.Fatalf("save request = %+v, want POST {country_name: Canada}", save)
	}

	count, err := c.UpdateCountryCount(ctx, "Canada")
	if err != nil {
		t.Fatalf("UpdateCountryCount returned error: %v", err)
	}
	if count != 7 {
		t.Fatalf("count = %d, want 7", count)
	}
	if got := seen(PathUpdateCount); got.method != http.MethodPost || got.body["country_name"] != "Canada" {
		t.Fatalf("count request = %+v, want POST {country_name: Canada}", got)
	}

	saved, err := c.SavedCountries(ctx)
	if err != nil {
		t.Fatalf("SavedCountries returned error: %v", err)
	}
	if len(saved) != 2 || saved[0].CountryName != "Canada" || saved[1].CountryName != "Peru" {
		t.Fatalf("SavedCountries = %+v, want server order Canada, Peru", saved)
	}
	if got := seen(PathSavedCountries); got.method != http.MethodGet {
		t.Fatalf("saved list method = %q, want GET", got.method)
	}

	user, err := c.NewestUser(ctx)
	if err != nil {
		t.Fatalf("NewestUser returned error: %v", err)
	}
	if user == nil || user.Name != "Ada" {
		t.Fatalf("NewestUser = %+v, want index 0 (Ada)", user)
	}

	msg, err = c.AddUser(ctx, User{Name: "Ada", CountryName: "Canada", Email: "ada@example.com", Bio: "hi"})
	if err != nil {
		t.Fatalf("AddUser returned error: %v", err)
	}
	if msg != "Success! User added." {
		t.Fatalf("AddUser message = %q", msg)
	}
	add := seen(PathAddUser)
	if add.body["name"] != "Ada" || add.body["country_name"] != "Canada" || add.body["email"] != "ada@example.com" || add.body["bio"] != "hi" {
		t.Fatalf("add-user body = %v, want name/country_name/email/bio", add.body)
	}

	if !strings.HasPrefix(add.userAgent, "atlas/") {
		t.Fatalf("User-Agent = %q, want atlas/*", add.userAgent)
	}
	if add.requestID == "" || add.requestID == save.requestID {
		t.Fatalf("request ids = %q and %q, want distinct non-empty ids", save.requestID, add.requestID)
	}
}

func TestClient_NewestUserEmptyArray(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, Options{})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	user, err := c.NewestUser(context.Background())
	if err != nil {
		t.Fatalf("NewestUser returned error: %v", err)
	}
	if user != nil {
		t.Fatalf("NewestUser = %+v, want nil for empty array", user)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case PathUpdateCount:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case PathSaveCountry:
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, Options{})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.UpdateCountryCount(context.Background(), "Canada")
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("UpdateCountryCount error = %v, want decode response error", err)
	}

	_, err = c.SaveCountry(context.Background(), "Canada")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Status != http.StatusInternalServerError {
		t.Fatalf("SaveCountry error = %v, want *StatusError 500", err)
	}
	if !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("SaveCountry error = %q, want it to mention status 500", err.Error())
	}
}

func TestClient_TimeoutBoundsHungRequest(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	c, err := NewClient(server.URL, Options{Timeout: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.SavedCountries(context.Background()); err == nil {
		t.Fatalf("SavedCountries returned nil error, want timeout")
	}
}

func TestClient_NilReceiver(t *testing.T) {
	var c *Client
	if _, err := c.SaveCountry(context.Background(), "Canada"); err == nil {
		t.Fatalf("nil client SaveCountry returned nil error")
	}
}

func TestLogFields_CarryServerRequestID(t *testing.T) {
	t.Parallel()

	var (
		mu       sync.Mutex
		received string
	)
	seen := func() string {
		mu.Lock()
		defer mu.Unlock()
		return received
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		received = r.Header.Get(requestIDHeader)
		mu.Unlock()
		switch r.URL.Path {
		case PathSaveCountry:
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, Options{})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	fieldMap := func(err error) map[string]string {
		out := map[string]string{}
		for _, f := range LogFields(err) {
			out[f.Key] = f.String
		}
		return out
	}

	_, err = c.SaveCountry(context.Background(), "Canada")
	fields := fieldMap(err)
	if seen() == "" || fields["request_id"] != seen() {
		t.Fatalf("status error request_id = %q, server saw %q", fields["request_id"], seen())
	}
	if fields["path"] != PathSaveCountry {
		t.Fatalf("status error path = %q, want %q", fields["path"], PathSaveCountry)
	}

	_, err = c.UpdateCountryCount(context.Background(), "Canada")
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("UpdateCountryCount error = %v, want *RequestError", err)
	}
	if got := fieldMap(err)["request_id"]; got != seen() {
		t.Fatalf("decode error request_id = %q, server saw %q", got, seen())
	}

	if LogFields(errors.New("plain")) != nil {
		t.Fatalf("LogFields on a plain error should be nil")
	}
}
