package registry

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/apl-pkg/aplreg/pkg/errors"
)

const neovimTemplate = `
[package]
name = "neovim"
version = "0.10.0"
description = "Vim-fork focused on extensibility"
homepage = "https://neovim.io"
license = "Apache-2.0"

[source]
url = "https://github.com/neovim/neovim/archive/v0.10.0.tar.gz"
sha256 = "abc123def456"
format = "tar.gz"

[dependencies]
runtime = ["libuv", "msgpack", "tree-sitter"]
build = ["cmake", "ninja"]

[install]
bin = ["nvim"]

[hints]
post_install = "Run :checkhealth after upgrading"
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neovim.toml")
	if err := os.WriteFile(path, []byte(neovimTemplate), 0o644); err != nil {
		t.Fatal(err)
	}

	def, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if def.Package.Name != "neovim" {
		t.Errorf("Package.Name = %q, want neovim", def.Package.Name)
	}
	if def.Package.Version != "0.10.0" {
		t.Errorf("Package.Version = %q, want 0.10.0", def.Package.Version)
	}
	if def.Source.SHA256 != "abc123def456" {
		t.Errorf("Source.SHA256 = %q, want abc123def456", def.Source.SHA256)
	}
	if len(def.Dependencies.Runtime) != 3 {
		t.Errorf("Dependencies.Runtime = %v, want 3 entries", def.Dependencies.Runtime)
	}
	if !reflect.DeepEqual(def.Install.Bin, []string{"nvim"}) {
		t.Errorf("Install.Bin = %v, want [nvim]", def.Install.Bin)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("this is not valid toml {{{"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for malformed definition")
	}
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("expected INVALID_FORMAT, got %v", err)
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	def := &Definition{
		Package: PackageInfo{
			Name:        "wget",
			Version:     "1.24.5",
			Description: "Internet file retriever",
			Homepage:    "https://www.gnu.org/software/wget/",
			License:     "GPL-3.0-or-later",
			Tags:        []string{"imported", "homebrew"},
		},
		Source: Source{
			URL:             "https://ftp.gnu.org/gnu/wget/wget-1.24.5.tar.gz",
			Format:          "tar.gz",
			StripComponents: 1,
		},
		Dependencies: Dependencies{
			Runtime: []string{"libidn2", "openssl@3"},
			Build:   []string{"pkg-config"},
		},
		Install: Install{
			Bin: []string{"wget"},
		},
	}

	// Write into a sharded location whose parent does not exist yet.
	path := filepath.Join(t.TempDir(), "wg", "wget.toml")
	if err := Write(path, def); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(got, def) {
		t.Errorf("round-trip mismatch:\ngot  %+v\nwant %+v", got, def)
	}
}

func TestWrite_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jq.toml")

	first := &Definition{Package: PackageInfo{Name: "jq", Version: "1.6"}}
	if err := Write(path, first); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	second := &Definition{Package: PackageInfo{Name: "jq", Version: "1.7.1"}}
	if err := Write(path, second); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Package.Version != "1.7.1" {
		t.Errorf("Package.Version = %q, want 1.7.1", got.Package.Version)
	}
}
