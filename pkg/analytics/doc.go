// Package analytics provides an HTTP client for the Homebrew analytics API.
//
// # Overview
//
// This package fetches formula install statistics from formulae.brew.sh,
// Homebrew's public API. The 30-day install ranking is the popularity
// signal used to check registry coverage.
//
// # Usage
//
//	client := analytics.NewClient()
//
//	top, err := client.TopInstalls(ctx, 50)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, r := range top {
//	    fmt.Println(r.Formula, r.Installs)
//	}
//
// # Payload Shapes
//
// The analytics endpoint has served two payload shapes over time: a bare
// JSON array of entries, and an object wrapping the same array in an
// "items" field. Both are accepted and normalize to the same ranking.
//
// # Install Counts
//
// Counts arrive as strings with comma thousand-separators ("1,062,719").
// They are parsed to int64 before sorting; a count that fails to parse is
// an error rather than a silently skipped entry.
package analytics
