package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/apl-pkg/aplreg/pkg/errors"
	"github.com/apl-pkg/aplreg/pkg/formula"
	"github.com/apl-pkg/aplreg/pkg/registry"
)

// importSource is the only ecosystem imports can come from.
const importSource = "homebrew"

// importCommand creates the import command.
func (c *CLI) importCommand() *cobra.Command {
	var (
		registryDir string
		source      string
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "import --from homebrew NAME...",
		Short: "Import formulae as registry definitions",
		Long: `Import formulae as registry definitions.

For every requested name, import fetches the formula metadata from
formulae.brew.sh and writes a definition template into the registry. The
source checksum stays empty for the registry update tooling to fill, and
the binary name defaults to the package name. Definitions land in the
layout the registry already uses: sharded registries get sharded paths,
flat registries get flat ones.

Existing definitions are skipped unless --force is given. A failed
package does not stop the remaining imports; the command exits non-zero
when any package failed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if source != importSource {
				return errors.New(errors.ErrCodeInvalidInput, "unsupported import source %q (only %q is supported)", source, importSource)
			}
			if err := errors.ValidateRegistryDir(registryDir); err != nil {
				return err
			}
			for _, name := range args {
				if err := errors.ValidateFormulaName(name); err != nil {
					return err
				}
			}
			return c.runImport(cmd.Context(), args, registryDir, force)
		},
	}

	cmd.Flags().StringVar(&source, "from", importSource, "source ecosystem to import from")
	cmd.Flags().StringVarP(&registryDir, "registry", "r", defaultRegistryDir, "registry packages directory")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing definitions")

	return cmd
}

// runImport imports each requested package in turn. Individual failures
// are reported and counted; they do not stop the loop.
func (c *CLI) runImport(ctx context.Context, names []string, registryDir string, force bool) error {
	sharded, err := registry.IsSharded(registryDir)
	if err != nil {
		if !errors.Is(err, errors.ErrCodeNotFound) {
			return err
		}
		c.Logger.Warn("registry directory not found, creating it", "dir", registryDir)
		sharded = true
	}

	prog := newProgress(c.Logger)
	client := formula.NewClient()
	failed := 0
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.importOne(ctx, client, name, registryDir, sharded, force); err != nil {
			printError("%s: %s", name, errors.UserMessage(err))
			c.Logger.Debug("import failed", "package", name, "err", err)
			failed++
		}
	}

	if failed > 0 {
		return errors.New(errors.ErrCodeInternal, "%d of %d imports failed", failed, len(names))
	}
	prog.done(fmt.Sprintf("Processed %d packages", len(names)))
	return nil
}

// importOne fetches one formula and writes its definition. The target
// path derives from the canonical formula name, which may differ from the
// requested one when Homebrew resolves an alias.
func (c *CLI) importOne(ctx context.Context, client *formula.Client, name, registryDir string, sharded, force bool) error {
	spinner := newSpinner(ctx, fmt.Sprintf("Importing %s from Homebrew...", name))
	spinner.Start()

	f, err := client.Fetch(ctx, name)
	if err != nil {
		spinner.Stop()
		return err
	}

	path := targetPath(registryDir, f.Name, sharded)
	if _, err := os.Stat(path); err == nil && !force {
		spinner.Stop()
		printWarning("%s already has a definition, skipping (use --force to overwrite)", f.Name)
		return nil
	}

	if err := registry.Write(path, definitionFromFormula(f)); err != nil {
		spinner.Stop()
		return err
	}

	spinner.StopWithSuccess(fmt.Sprintf("Imported %s %s", f.Name, f.Version))
	printFile(path)
	return nil
}

// targetPath places a definition according to the registry's layout.
func targetPath(dir, name string, sharded bool) string {
	if sharded {
		return registry.DefinitionPath(dir, name)
	}
	return filepath.Join(dir, name+".toml")
}

// definitionFromFormula builds a definition template from formula
// metadata. The checksum stays empty for the registry update tooling to
// fill on its next pass.
func definitionFromFormula(f *formula.Formula) *registry.Definition {
	return &registry.Definition{
		Package: registry.PackageInfo{
			Name:        f.Name,
			Version:     f.Version,
			Description: f.Description,
			Homepage:    f.Homepage,
			License:     f.License,
			Tags:        []string{"imported", "homebrew"},
		},
		Source: registry.Source{
			URL:             f.SourceURL,
			Format:          formatForURL(f.SourceURL),
			StripComponents: 1,
		},
		Dependencies: registry.Dependencies{
			Runtime: f.Runtime,
			Build:   f.Build,
		},
		Install: registry.Install{
			Bin: []string{f.Name},
		},
	}
}

// formatForURL infers the artifact format from the archive extension.
// Source archives default to tar.gz, which is what Homebrew serves for
// almost every formula.
func formatForURL(url string) string {
	u := strings.ToLower(url)
	switch {
	case strings.HasSuffix(u, ".tar.gz"), strings.HasSuffix(u, ".tgz"):
		return "tar.gz"
	case strings.HasSuffix(u, ".tar.zst"):
		return "tar.zst"
	case strings.HasSuffix(u, ".tar.xz"), strings.HasSuffix(u, ".tar.bz2"), strings.HasSuffix(u, ".tar"):
		return "tar"
	case strings.HasSuffix(u, ".zip"):
		return "zip"
	default:
		return "tar.gz"
	}
}
