package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/apl-pkg/aplreg/pkg/buildinfo"
	"github.com/apl-pkg/aplreg/pkg/errors"
)

const (
	httpTimeout = 10 * time.Second

	defaultBaseURL = "https://formulae.brew.sh/api"

	// installWindow selects the analytics aggregation window.
	installWindow = "30d"
)

// Ranked is a single formula in the install ranking.
//
// Zero values: Formula is empty, Installs is 0. Entries returned by
// [Client.TopInstalls] always carry a parsed count, even when the upstream
// payload formatted it with comma separators.
type Ranked struct {
	Formula  string `json:"formula" yaml:"formula"`   // Formula name as published (e.g., "python@3.12")
	Installs int64  `json:"installs" yaml:"installs"` // Install events within the analytics window
}

// Client provides access to the Homebrew analytics API.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
}

// NewClient creates an analytics client with the standard request timeout.
func NewClient() *Client {
	return &Client{
		http:      &http.Client{Timeout: httpTimeout},
		baseURL:   defaultBaseURL,
		userAgent: "aplreg/" + buildinfo.Version,
	}
}

// TopInstalls fetches the install ranking and returns the top n formulae
// ordered by install count, most installed first. Ties keep their payload
// order. When the payload has fewer than n entries, the full ranking is
// returned; n < 0 disables truncation.
//
// Returns:
//   - [errors.ErrCodeNotFound] if the analytics endpoint is missing
//   - [errors.ErrCodeNetwork] for HTTP failures (timeout, 5xx, etc.)
//   - [errors.ErrCodeInvalidFormat] for malformed payloads or counts
func (c *Client) TopInstalls(ctx context.Context, n int) ([]Ranked, error) {
	url := fmt.Sprintf("%s/analytics/install/%s.json", c.baseURL, installWindow)

	entries, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	ranked := make([]Ranked, 0, len(entries))
	for _, e := range entries {
		installs, err := parseCount(e.Count)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid install count for %q", e.Formula)
		}
		ranked = append(ranked, Ranked{Formula: e.Formula, Installs: installs})
	}

	// The API serves entries pre-ranked; sort anyway so callers never
	// depend on upstream ordering.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Installs > ranked[j].Installs
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

// apiEntry matches one element of the analytics payload. The number and
// percent fields are decoded for completeness but ordering always derives
// from the parsed count.
type apiEntry struct {
	Number  int    `json:"number"`
	Formula string `json:"formula"`
	Count   string `json:"count"`
	Percent string `json:"percent"`
}

func (c *Client) fetch(ctx context.Context, url string) ([]apiEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetching analytics")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeNotFound, "analytics endpoint not found: %s", url)
	default:
		return nil, errors.New(errors.ErrCodeNetwork, "analytics request failed with status %d", resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decoding analytics payload")
	}
	return decodeEntries(raw)
}

// decodeEntries accepts both payload shapes served by the analytics API:
// a bare array of entries, or an object carrying the array under "items".
func decodeEntries(raw json.RawMessage) ([]apiEntry, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var entries []apiEntry
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decoding analytics entries")
		}
		return entries, nil
	}

	var wrapper struct {
		Items *[]apiEntry `json:"items"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decoding analytics entries")
	}
	if wrapper.Items == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "analytics payload is neither an entry array nor an items wrapper")
	}
	return *wrapper.Items, nil
}

// parseCount parses an install count, tolerating comma thousand-separators
// ("1,062,719") and surrounding whitespace.
func parseCount(s string) (int64, error) {
	return strconv.ParseInt(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 10, 64)
}
