// Package formula provides an HTTP client for the Homebrew formula API.
//
// # Overview
//
// This package fetches per-formula metadata from formulae.brew.sh. The
// import command uses it to turn a Homebrew formula into a registry
// definition.
//
// # Usage
//
//	client := formula.NewClient()
//
//	f, err := client.Fetch(ctx, "wget")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(f.Name, f.Version, f.SourceURL)
//
// # Fields
//
// [Client.Fetch] returns a [Formula] containing:
//
//   - Name, Version: formula identity (Version is the stable version)
//   - Description, Homepage, License: display metadata
//   - SourceURL: the stable source archive
//   - Runtime, Build: dependency lists
//
// A formula without a stable version or stable source URL cannot be
// turned into a definition and is reported as an error.
package formula
