package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePackageName validates a package name for safety and correctness.
// It rejects names that could be used for path traversal or injection attacks.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
//
// Registry-specific validation should be done separately (see ValidateFormulaName).
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidPackage, "package name too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// formulaNameRegex matches valid Homebrew formula names, including
// versioned formulae ("python@3.11") and tap-qualified names
// ("hashicorp/tap/terraform").
var formulaNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9@._+-]*(/[a-zA-Z0-9][a-zA-Z0-9@._+-]*)*$`)

// ValidateFormulaName validates a Homebrew formula name.
func ValidateFormulaName(name string) error {
	if err := ValidatePackageName(name); err != nil {
		return err
	}

	if !formulaNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPackage, "invalid formula name: %q", name)
	}

	return nil
}

// ValidateRegistryDir validates a registry directory path supplied by the
// user. Unlike repository-internal paths, registry directories may be
// absolute or relative (the default is "../apl-packages/packages"), so
// only clearly unsafe values are rejected.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateRegistryDir(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "registry path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "registry path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "registry path contains invalid characters")
		}
	}

	return nil
}
