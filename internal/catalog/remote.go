package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/five82/atlas/internal/country"
)

// DefaultURL is the public catalog restricted to the fields atlas renders.
const DefaultURL = "https://restcountries.com/v3.1/all?fields=name,flags,population,capital,region,cca3,borders"

const defaultUserAgent = "atlas/0.1"

// Remote fetches the catalog from an HTTP endpoint.
type Remote struct {
	url       string
	http      *http.Client
	userAgent string
}

var _ Fetcher = (*Remote)(nil)

// NewRemote builds a Remote for rawURL. A zero timeout leaves requests
// unbounded, so a hung endpoint keeps the catalog loading until ctx ends.
func NewRemote(rawURL string, timeout time.Duration) (*Remote, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		trimmed = DefaultURL
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse catalog url %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("catalog url %q must be http or https", rawURL)
	}
	return &Remote{
		url:       u.String(),
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}, nil
}

// FetchCatalog retrieves and decodes the full catalog.
func (r *Remote) FetchCatalog(ctx context.Context) ([]country.Country, error) {
	if r == nil {
		return nil, fmt.Errorf("remote is nil")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}
	var records []country.Country
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return records, nil
}
