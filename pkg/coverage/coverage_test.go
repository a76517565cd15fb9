package coverage

import (
	"reflect"
	"strings"
	"testing"

	"github.com/apl-pkg/aplreg/pkg/analytics"
)

func TestSimpleName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"python@3.9", "python"},
		{"some/namespace/foo", "foo"},
		{"plain", "plain"},
		{"postgresql@16", "postgresql"},
		{"hashicorp/tap/terraform", "terraform"},
		{"user/tap/tool@2", "tool"},
		{"lua@5.1", "lua"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SimpleName(tt.input); got != tt.expected {
				t.Errorf("SimpleName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCompute(t *testing.T) {
	ranked := []analytics.Ranked{
		{Formula: "python@3.9", Installs: 900},
		{Formula: "ffmpeg", Installs: 800},
		{Formula: "lua@5.1", Installs: 700},
	}
	existing := map[string]bool{"python": true, "lua": true}

	report := Compute(ranked, existing, 10)

	if report.Total != 3 {
		t.Errorf("Total = %d, want 3", report.Total)
	}
	if report.Present != 2 {
		t.Errorf("Present = %d, want 2", report.Present)
	}
	if !reflect.DeepEqual(report.Missing, []string{"ffmpeg"}) {
		t.Errorf("Missing = %v, want [ffmpeg]", report.Missing)
	}
	if !strings.Contains(report.Suggested, "ffmpeg") {
		t.Errorf("Suggested = %q, want it to mention ffmpeg", report.Suggested)
	}

	wantEntries := []Entry{
		{Rank: 1, Name: "python@3.9", Simple: "python", Installs: 900, Present: true},
		{Rank: 2, Name: "ffmpeg", Simple: "ffmpeg", Installs: 800, Present: false},
		{Rank: 3, Name: "lua@5.1", Simple: "lua", Installs: 700, Present: true},
	}
	if !reflect.DeepEqual(report.Entries, wantEntries) {
		t.Errorf("Entries = %+v, want %+v", report.Entries, wantEntries)
	}
}

func TestCompute_PresenceByRawOrSimpleName(t *testing.T) {
	ranked := []analytics.Ranked{
		{Formula: "python@3.9", Installs: 2},
		{Formula: "python", Installs: 1},
	}
	existing := map[string]bool{"python": true}

	report := Compute(ranked, existing, 10)

	for _, e := range report.Entries {
		if !e.Present {
			t.Errorf("entry %q not marked present", e.Name)
		}
	}
	if len(report.Missing) != 0 {
		t.Errorf("Missing = %v, want none", report.Missing)
	}
}

func TestCompute_RawNameMatch(t *testing.T) {
	// A registry may carry the versioned name itself.
	ranked := []analytics.Ranked{{Formula: "openssl@3", Installs: 5}}
	existing := map[string]bool{"openssl@3": true}

	report := Compute(ranked, existing, 10)
	if !report.Entries[0].Present {
		t.Error("openssl@3 not marked present despite exact registry match")
	}
}

func TestCompute_NothingMissing(t *testing.T) {
	ranked := []analytics.Ranked{{Formula: "wget", Installs: 1}}
	existing := map[string]bool{"wget": true}

	report := Compute(ranked, existing, 10)
	if report.Suggested != "" {
		t.Errorf("Suggested = %q, want empty when nothing is missing", report.Suggested)
	}
	if report.Missing != nil {
		t.Errorf("Missing = %v, want nil", report.Missing)
	}
}

func TestImportCommand(t *testing.T) {
	tests := []struct {
		name     string
		missing  []string
		limit    int
		expected string
	}{
		{
			name:     "caps at limit",
			missing:  []string{"a", "b", "c", "d"},
			limit:    2,
			expected: "aplreg import --from homebrew a b",
		},
		{
			name:     "fewer than limit",
			missing:  []string{"ffmpeg"},
			limit:    10,
			expected: "aplreg import --from homebrew ffmpeg",
		},
		{
			name:     "no cap",
			missing:  []string{"a", "b"},
			limit:    -1,
			expected: "aplreg import --from homebrew a b",
		},
		{
			name:     "empty missing",
			missing:  nil,
			limit:    10,
			expected: "",
		},
		{
			name:     "zero limit",
			missing:  []string{"a"},
			limit:    0,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ImportCommand(tt.missing, tt.limit); got != tt.expected {
				t.Errorf("ImportCommand() = %q, want %q", got, tt.expected)
			}
		})
	}
}
