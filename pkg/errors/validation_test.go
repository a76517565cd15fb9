package errors

import (
	"strings"
	"testing"
)

func TestValidatePackageName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "wget", false},
		{"valid with dash", "my-package", false},
		{"valid with underscore", "my_package", false},
		{"valid with dot", "my.package", false},
		{"valid versioned", "python@3.11", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"path traversal ..", "foo/../bar", true},
		{"path traversal //", "foo//bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"carriage return", "foo\rbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePackageName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePackageName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFormulaName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "wget", false},
		{"with dash", "pkg-config", false},
		{"with plus", "libstdc++", false},
		{"with underscore", "my_formula", false},
		{"versioned", "python@3.11", false},
		{"versioned postgres", "postgresql@16", false},
		{"tap qualified", "hashicorp/tap/terraform", false},
		{"with numbers", "lz4", false},

		{"empty", "", true},
		{"starts with dash", "-wget", true},
		{"starts with slash", "/wget", true},
		{"trailing slash", "wget/", true},
		{"spaces", "my formula", true},
		{"shell metachars", "wget;rm", true},
		{"path traversal", "../wget", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormulaName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormulaName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRegistryDir(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative default", "../apl-packages/packages", false},
		{"absolute", "/srv/registry/packages", false},
		{"bare name", "packages", false},
		{"with dot", "./packages", false},

		{"empty", "", true},
		{"null byte", "packages\x00", true},
		{"control char", "pack\x01ages", true},
		{"too long", strings.Repeat("a", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegistryDir(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRegistryDir(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
