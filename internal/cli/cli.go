// Package cli implements the aplreg command-line interface.
//
// This package provides commands for checking registry coverage against
// Homebrew's install analytics, importing formulae as registry
// definitions, and inspecting the registry itself. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - coverage: Compare the top installed formulae against the registry
//   - import: Fetch formula metadata and write registry definitions
//   - registry: List definitions and resolve sharded paths
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Status
// output goes to stdout; logs and the progress spinner go to stderr.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/apl-pkg/aplreg/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and suggestions.
	appName = "aplreg"

	// defaultRegistryDir is where the registry checkout lives relative to
	// the working tree.
	defaultRegistryDir = "../apl-packages/packages"

	// defaultTop is how many of the most installed formulae to check.
	defaultTop = 50

	// defaultSuggest caps how many missing names the suggested import
	// command embeds.
	defaultSuggest = 10
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Aplreg checks the package registry against Homebrew install analytics",
		Long:         `Aplreg is a registry maintenance tool. It fetches Homebrew's most installed formulae, reports which of them have no definition in the local package registry, and imports the missing ones as definition templates.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.coverageCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.registryCommand())
	root.AddCommand(c.completionCommand())

	return root
}
