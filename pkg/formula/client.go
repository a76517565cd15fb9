package formula

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/apl-pkg/aplreg/pkg/buildinfo"
	"github.com/apl-pkg/aplreg/pkg/errors"
)

const (
	httpTimeout = 10 * time.Second

	defaultBaseURL = "https://formulae.brew.sh/api/formula"
)

// Formula holds the subset of Homebrew formula metadata needed to build a
// registry definition.
//
// Zero values: License may legitimately be empty (some formulae carry
// none); every other string field is non-empty when Fetch succeeds.
type Formula struct {
	Name        string   // Formula name as published (e.g., "wget")
	Description string   // One-line description
	Homepage    string   // Upstream homepage URL
	License     string   // SPDX expression (may be empty)
	Version     string   // Stable version (e.g., "1.24.5")
	SourceURL   string   // Stable source archive URL
	Runtime     []string // Runtime dependencies (nil if none)
	Build       []string // Build-only dependencies (nil if none)
}

// Client provides access to the Homebrew formula API.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
}

// NewClient creates a formula client with the standard request timeout.
func NewClient() *Client {
	return NewClientWithBaseURL(defaultBaseURL)
}

// NewClientWithBaseURL creates a formula client pointed at an alternate
// API root, letting tests stand in for formulae.brew.sh with httptest.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		http:      &http.Client{Timeout: httpTimeout},
		baseURL:   baseURL,
		userAgent: "aplreg/" + buildinfo.Version,
	}
}

// Fetch retrieves metadata for a single formula.
//
// Returns:
//   - [errors.ErrCodePackageNotFound] if the formula does not exist
//   - [errors.ErrCodeNetwork] for HTTP failures (timeout, 5xx, etc.)
//   - [errors.ErrCodeInvalidFormat] when the formula has no stable
//     version or no stable source URL, or the payload is malformed
func (c *Client) Fetch(ctx context.Context, name string) (*Formula, error) {
	url := fmt.Sprintf("%s/%s.json", c.baseURL, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetching formula %s", name)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodePackageNotFound, "formula not found: %s", name)
	default:
		return nil, errors.New(errors.ErrCodeNetwork, "formula request for %s failed with status %d", name, resp.StatusCode)
	}

	var data apiFormula
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decoding formula %s", name)
	}

	if data.Versions.Stable == "" {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "formula %s has no stable version", name)
	}
	stable, ok := data.URLs["stable"]
	if !ok || stable.URL == "" {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "formula %s has no stable source URL", name)
	}

	return &Formula{
		Name:        data.Name,
		Description: data.Desc,
		Homepage:    data.Homepage,
		License:     data.License,
		Version:     data.Versions.Stable,
		SourceURL:   stable.URL,
		Runtime:     data.Dependencies,
		Build:       data.BuildDependencies,
	}, nil
}

// apiFormula matches the formula API schema, limited to the fields the
// importer consumes.
type apiFormula struct {
	Name     string `json:"name"`
	Desc     string `json:"desc"`
	Homepage string `json:"homepage"`
	License  string `json:"license"`
	Versions struct {
		Stable string `json:"stable"`
	} `json:"versions"`
	URLs map[string]struct {
		URL string `json:"url"`
	} `json:"urls"`
	Dependencies      []string `json:"dependencies"`
	BuildDependencies []string `json:"build_dependencies"`
}
