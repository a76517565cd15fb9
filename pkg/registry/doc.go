// Package registry reads and writes the local package registry.
//
// # Overview
//
// The registry is a directory tree of TOML definition files, one per
// package. Two layouts exist in the wild:
//
//   - Sharded: registry/{prefix}/{name}.toml, where prefix is "1" for
//     single-character names and the lowercased first two characters
//     otherwise (registry/ab/abc.toml, registry/1/a.toml)
//   - Flat: registry/{name}.toml
//
// [TemplateFiles] and [IsSharded] understand both layouts; [DefinitionPath]
// computes the sharded location for a name.
//
// # Definitions
//
// A [Definition] mirrors the registry template format:
//
//	[package]
//	name = "neovim"
//	version = "0.10.0"
//	description = "Vim-fork focused on extensibility"
//	homepage = "https://neovim.io"
//	license = "Apache-2.0"
//
//	[source]
//	url = "https://github.com/neovim/neovim/archive/v0.10.0.tar.gz"
//	sha256 = "abc123def456"
//	format = "tar.gz"
//
//	[dependencies]
//	runtime = ["libuv", "msgpack", "tree-sitter"]
//	build = ["cmake", "ninja"]
//
//	[install]
//	bin = ["nvim"]
//
// [Load] and [Write] round-trip definitions through this format. Unknown
// keys in existing files are ignored on load, so definitions carrying
// fields this tool does not manage survive a scan untouched.
package registry
