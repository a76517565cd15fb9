// Package coverage compares the install ranking against the local
// registry and reports which popular packages are missing.
package coverage

import (
	"strings"

	"github.com/apl-pkg/aplreg/pkg/analytics"
)

// Entry is one ranked package checked against the registry.
type Entry struct {
	Rank     int    `json:"rank" yaml:"rank"`               // 1-based position in the ranking
	Name     string `json:"name" yaml:"name"`               // Formula name as published
	Simple   string `json:"simple_name" yaml:"simple_name"` // Name with tap prefix and version suffix stripped
	Installs int64  `json:"installs" yaml:"installs"`       // Install events in the analytics window
	Present  bool   `json:"present" yaml:"present"`         // Whether the registry has a definition
}

// Report is the result of a coverage run. Entries keep ranking order;
// Missing lists the absent formula names in the same order.
type Report struct {
	Total     int      `json:"total" yaml:"total"`
	Present   int      `json:"present" yaml:"present"`
	Entries   []Entry  `json:"entries" yaml:"entries"`
	Missing   []string `json:"missing" yaml:"missing"`
	Suggested string   `json:"suggested_command,omitempty" yaml:"suggested_command,omitempty"`
}

// SimpleName reduces a formula name to its registry lookup form: the
// segment after the last "/" (dropping any tap prefix), truncated at the
// first "@" (dropping any version suffix).
//
//	"python@3.9"        -> "python"
//	"some/namespace/foo" -> "foo"
//	"plain"             -> "plain"
func SimpleName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "@"); i >= 0 {
		name = name[:i]
	}
	return name
}

// Compute checks each ranked package against the existing definition set.
// A package is present when the set contains either its raw name or its
// simple name. The suggested command embeds at most suggest missing names;
// it is empty when nothing is missing.
func Compute(ranked []analytics.Ranked, existing map[string]bool, suggest int) Report {
	report := Report{
		Total:   len(ranked),
		Entries: make([]Entry, 0, len(ranked)),
	}

	for i, r := range ranked {
		simple := SimpleName(r.Formula)
		present := existing[r.Formula] || existing[simple]
		if present {
			report.Present++
		} else {
			report.Missing = append(report.Missing, r.Formula)
		}
		report.Entries = append(report.Entries, Entry{
			Rank:     i + 1,
			Name:     r.Formula,
			Simple:   simple,
			Installs: r.Installs,
			Present:  present,
		})
	}

	report.Suggested = ImportCommand(report.Missing, suggest)
	return report
}

// ImportCommand builds the suggested import invocation for the first
// limit missing names. Returns "" when missing is empty; limit < 0 means
// no cap.
func ImportCommand(missing []string, limit int) string {
	if len(missing) == 0 {
		return ""
	}
	if limit >= 0 && len(missing) > limit {
		missing = missing[:limit]
	}
	if len(missing) == 0 {
		return ""
	}
	return "aplreg import --from homebrew " + strings.Join(missing, " ")
}
