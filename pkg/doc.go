// Package pkg provides the core libraries for aplreg registry maintenance.
//
// # Overview
//
// Aplreg compares the local package registry against Homebrew's install
// analytics and imports missing formulae as definition templates. The pkg
// directory is organized into five areas:
//
//  1. [analytics] - Homebrew install analytics client (30-day ranking)
//  2. [formula] - Homebrew formula metadata client
//  3. [registry] - Local registry layout, scanning, and TOML definitions
//  4. [coverage] - Ranking vs. registry comparison and report building
//  5. [errors] - Structured error codes and input validation
//
// # Architecture
//
// The typical data flow through aplreg:
//
//	formulae.brew.sh analytics
//	         ↓
//	    [analytics] package (rank formulae by installs)
//	         ↓
//	    [registry] package (scan existing definitions)
//	         ↓
//	    [coverage] package (mark present/missing, suggest imports)
//	         ↓
//	    text/JSON/YAML report
//
// # Quick Start
//
// Build a coverage report for the top 50 formulae:
//
//	import (
//	    "context"
//
//	    "github.com/apl-pkg/aplreg/pkg/analytics"
//	    "github.com/apl-pkg/aplreg/pkg/coverage"
//	    "github.com/apl-pkg/aplreg/pkg/registry"
//	)
//
//	// 1. Rank formulae by 30-day installs
//	ranked, _ := analytics.NewClient().TopInstalls(context.Background(), 50)
//
//	// 2. Scan the local registry
//	existing, _ := registry.Names("../apl-packages/packages")
//
//	// 3. Compare
//	report := coverage.Compute(ranked, existing, 10)
//
// # Main Packages
//
// [analytics] - Client for the formulae.brew.sh install analytics API.
// Parses the 30-day ranking, normalizes comma-grouped install counts, and
// returns formulae ordered by installs.
//
// [formula] - Client for the formulae.brew.sh formula metadata API. Fetches
// the stable version, source URL, license, and dependency lists for one
// formula.
//
// [registry] - Local registry access: flat and sharded layout detection,
// definition scanning, sharded path computation, and TOML definition
// load/write.
//
// [coverage] - Compares an install ranking against the registry contents
// and builds the report consumed by the CLI: per-formula presence, missing
// names, and a ready-to-run import command.
//
// [errors] - Structured errors with stable codes plus validation helpers
// for formula names and registry paths.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Common Workflows
//
// Import a formula as a definition template:
//
//	f, _ := formula.NewClient().Fetch(ctx, "wget")
//	path := registry.DefinitionPath(dir, f.Name)
//	def := &registry.Definition{ /* filled from f */ }
//	_ = registry.Write(path, def)
//
// Check whether a registry uses the sharded layout:
//
//	sharded, _ := registry.IsSharded(dir)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/registry/...     # Specific package
//
// [analytics]: https://pkg.go.dev/github.com/apl-pkg/aplreg/pkg/analytics
// [formula]: https://pkg.go.dev/github.com/apl-pkg/aplreg/pkg/formula
// [registry]: https://pkg.go.dev/github.com/apl-pkg/aplreg/pkg/registry
// [coverage]: https://pkg.go.dev/github.com/apl-pkg/aplreg/pkg/coverage
// [errors]: https://pkg.go.dev/github.com/apl-pkg/aplreg/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/apl-pkg/aplreg/pkg/buildinfo
package pkg
