package registry

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/apl-pkg/aplreg/pkg/errors"
)

// Definition is a package definition template as stored in the registry.
type Definition struct {
	Package      PackageInfo  `toml:"package" json:"package" yaml:"package"`
	Source       Source       `toml:"source" json:"source" yaml:"source"`
	Dependencies Dependencies `toml:"dependencies" json:"dependencies" yaml:"dependencies"`
	Install      Install      `toml:"install" json:"install" yaml:"install"`
}

// PackageInfo is the [package] section of a definition.
type PackageInfo struct {
	Name        string   `toml:"name" json:"name" yaml:"name"`
	Version     string   `toml:"version" json:"version" yaml:"version"`
	Description string   `toml:"description" json:"description" yaml:"description"`
	Homepage    string   `toml:"homepage" json:"homepage" yaml:"homepage"`
	License     string   `toml:"license" json:"license" yaml:"license"`
	Tags        []string `toml:"tags,omitempty" json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Source is the [source] section: where the package is fetched from.
// SHA256 may be empty for freshly imported definitions; the registry
// update tooling fills it on the next pass.
type Source struct {
	URL             string `toml:"url" json:"url" yaml:"url"`
	SHA256          string `toml:"sha256" json:"sha256" yaml:"sha256"`
	Format          string `toml:"format" json:"format" yaml:"format"`
	StripComponents int    `toml:"strip_components,omitempty" json:"strip_components,omitempty" yaml:"strip_components,omitempty"`
}

// Dependencies is the [dependencies] section.
type Dependencies struct {
	Runtime  []string `toml:"runtime,omitempty" json:"runtime,omitempty" yaml:"runtime,omitempty"`
	Build    []string `toml:"build,omitempty" json:"build,omitempty" yaml:"build,omitempty"`
	Optional []string `toml:"optional,omitempty" json:"optional,omitempty" yaml:"optional,omitempty"`
}

// Install is the [install] section. Bin lists files linked into bin/;
// when empty it defaults to the package name at install time.
type Install struct {
	Bin []string `toml:"bin,omitempty" json:"bin,omitempty" yaml:"bin,omitempty"`
}

// Load parses a definition file. Unknown keys are ignored so files with
// fields this tool does not manage still load.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "reading definition %s", path)
	}

	var def Definition
	if err := toml.Unmarshal(data, &def); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parsing definition %s", path)
	}
	return &def, nil
}

// Write encodes a definition to path, creating parent directories as
// needed. An existing file is overwritten.
func Write(path string, def *Definition) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "creating registry shard for %s", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "creating definition %s", path)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(def); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encoding definition %s", path)
	}
	return nil
}
