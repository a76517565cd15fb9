package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/apl-pkg/aplreg/pkg/analytics"
	"github.com/apl-pkg/aplreg/pkg/coverage"
	"github.com/apl-pkg/aplreg/pkg/errors"
	"github.com/apl-pkg/aplreg/pkg/registry"
)

// coverageOptions carries the resolved coverage flags.
type coverageOptions struct {
	registryDir string
	top         int
	suggest     int
	format      Format
	interactive bool
}

// coverageCommand creates the coverage command.
func (c *CLI) coverageCommand() *cobra.Command {
	var (
		registryDir string
		top         int
		suggest     int
		formatStr   string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Check the registry against Homebrew's most installed formulae",
		Long: `Check the registry against Homebrew's most installed formulae.

The coverage command fetches the 30-day install analytics from
formulae.brew.sh, orders formulae by install count, and checks the top
of the ranking against the local registry. A formula counts as present
when a definition exists under either its full name or its simple name
(tap prefix and version suffix stripped).

The default output prints one line per formula plus a recommended import
command for the missing ones. Use --format json or yaml for
machine-readable reports, or --interactive to pick which missing
packages to import right away.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ParseFormat(formatStr)
			if err != nil {
				return err
			}
			if interactive && format != FormatText {
				return errors.New(errors.ErrCodeInvalidInput, "--interactive cannot be combined with --format %s", format)
			}
			if err := errors.ValidateRegistryDir(registryDir); err != nil {
				return err
			}
			if top < 0 {
				return errors.New(errors.ErrCodeInvalidInput, "--top must be zero or positive")
			}
			return c.runCoverage(cmd.Context(), coverageOptions{
				registryDir: registryDir,
				top:         top,
				suggest:     suggest,
				format:      format,
				interactive: interactive,
			})
		},
	}

	cmd.Flags().StringVarP(&registryDir, "registry", "r", defaultRegistryDir, "registry packages directory")
	cmd.Flags().IntVarP(&top, "top", "t", defaultTop, "how many of the most installed formulae to check")
	cmd.Flags().IntVar(&suggest, "suggest", defaultSuggest, "missing names to embed in the recommended import command")
	cmd.Flags().StringVarP(&formatStr, "format", "f", "text", "output format: text (default), json, yaml")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick missing packages and import them (text format only)")

	return cmd
}

// runCoverage fetches the ranking, scans the registry, and renders the report.
func (c *CLI) runCoverage(ctx context.Context, opts coverageOptions) error {
	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, fmt.Sprintf("Fetching top %d formulae...", opts.top))
	spinner.Start()

	ranked, err := analytics.NewClient().TopInstalls(ctx, opts.top)
	if err != nil {
		spinner.StopWithError("Analytics fetch failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Fetched %d formulae", len(ranked)))

	existing, err := c.scanRegistry(opts.registryDir)
	if err != nil {
		return err
	}

	report := coverage.Compute(ranked, existing, opts.suggest)

	if opts.interactive {
		return c.pickAndImport(ctx, report, opts.registryDir)
	}

	if opts.format != FormatText {
		return NewWriter(os.Stdout, opts.format).Write(report)
	}

	renderCoverage(report, opts.registryDir)
	return nil
}

// scanRegistry returns the set of existing definition names. A missing
// registry directory is a warning, not an error: every package then
// counts as missing.
func (c *CLI) scanRegistry(dir string) (map[string]bool, error) {
	existing, err := registry.Names(dir)
	if err != nil {
		if !errors.Is(err, errors.ErrCodeNotFound) {
			return nil, err
		}
		c.Logger.Warn("registry directory not found", "dir", dir)
		return map[string]bool{}, nil
	}
	c.Logger.Debug("scanned registry", "dir", dir, "definitions", len(existing))
	return existing, nil
}

// renderCoverage prints the human-readable report.
func renderCoverage(report coverage.Report, registryDir string) {
	fmt.Println(StyleTitle.Render(fmt.Sprintf("Scanning top %d Homebrew packages", report.Total)))
	printDetail("Registry: %s", registryDir)
	printNewline()

	for _, e := range report.Entries {
		fmt.Println(coverageLine(e))
	}

	printNewline()
	printStats(report.Total, report.Present, len(report.Missing))
	printNewline()

	if len(report.Missing) == 0 {
		printSuccess("All %d packages have registry definitions", report.Total)
		return
	}
	if report.Suggested != "" {
		printNextStep("Recommended import command", report.Suggested)
	}
}

// coverageLine renders one report entry. The "[x]"/"[ ]" markers and the
// "(exists)"/"(MISSING)" suffixes stay verbatim; color is decoration only.
func coverageLine(e coverage.Entry) string {
	if e.Present {
		return "  " + styleIconSuccess.Render("[x]") + " " + e.Name + " " + StyleDim.Render("(exists)")
	}
	return "  " + styleIconError.Render("[ ]") + " " + e.Name + " " + StyleWarning.Render("(MISSING)")
}
