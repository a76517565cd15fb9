package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/apl-pkg/aplreg/pkg/errors"
	"github.com/apl-pkg/aplreg/pkg/registry"
)

// registryCommand groups the registry inspection subcommands.
func (c *CLI) registryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect the local package registry",
	}

	cmd.AddCommand(c.registryListCommand())
	cmd.AddCommand(c.registryPathCommand())

	return cmd
}

// registryListCommand creates the "registry list" subcommand.
func (c *CLI) registryListCommand() *cobra.Command {
	var (
		registryDir string
		formatStr   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all definitions in the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ParseFormat(formatStr)
			if err != nil {
				return err
			}
			if err := errors.ValidateRegistryDir(registryDir); err != nil {
				return err
			}
			return c.runRegistryList(registryDir, format)
		},
	}

	cmd.Flags().StringVarP(&registryDir, "registry", "r", defaultRegistryDir, "registry packages directory")
	cmd.Flags().StringVarP(&formatStr, "format", "f", "text", "output format: text (default), json, yaml")

	return cmd
}

// runRegistryList loads every definition and renders the result.
// Unreadable files are logged and skipped so one bad definition doesn't
// hide the rest of the registry.
func (c *CLI) runRegistryList(dir string, format Format) error {
	files, err := registry.TemplateFiles(dir)
	if err != nil {
		return err
	}

	defs := make([]*registry.Definition, 0, len(files))
	for _, path := range files {
		def, err := registry.Load(path)
		if err != nil {
			c.Logger.Warn("skipping unreadable definition", "path", path, "err", err)
			continue
		}
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].Package.Name < defs[j].Package.Name
	})

	if format != FormatText {
		return NewWriter(os.Stdout, format).Write(defs)
	}

	renderDefinitionTable(defs)
	return nil
}

// renderDefinitionTable prints the definitions as a bordered table.
func renderDefinitionTable(defs []*registry.Definition) {
	if len(defs) == 0 {
		printInfo("Registry is empty")
		return
	}

	rows := make([][]string, 0, len(defs))
	for _, def := range defs {
		rows = append(rows, []string{def.Package.Name, def.Package.Version, def.Package.Description})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Package", "Version", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleValue
			}
			return StyleDim
		})

	fmt.Println(t.Render())
	printDetail("%d definitions", len(defs))
}

// registryPathCommand creates the "registry path" subcommand.
func (c *CLI) registryPathCommand() *cobra.Command {
	var registryDir string

	cmd := &cobra.Command{
		Use:   "path NAME",
		Short: "Print the sharded definition path for a package name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateFormulaName(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), registry.DefinitionPath(registryDir, args[0]))
			return nil
		},
	}

	cmd.Flags().StringVarP(&registryDir, "registry", "r", defaultRegistryDir, "registry packages directory")

	return cmd
}
