package registry

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/apl-pkg/aplreg/pkg/errors"
)

// tomlExt is the extension every definition file carries.
const tomlExt = ".toml"

// singleShard holds definitions for single-character package names.
const singleShard = "1"

// Names walks the registry tree and returns the set of definition
// basenames with the ".toml" extension stripped. Every directory level is
// visited, so both flat and sharded layouts (and anything deeper) are
// covered.
//
// Returns [errors.ErrCodeNotFound] when dir does not exist; callers decide
// whether that is fatal.
func Names(dir string) (map[string]bool, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeNotFound, "registry directory not found: %s", dir)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "reading registry directory %s", dir)
	}

	names := make(map[string]bool)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), tomlExt) {
			return nil
		}
		names[strings.TrimSuffix(d.Name(), tomlExt)] = true
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "scanning registry directory %s", dir)
	}
	return names, nil
}

// TemplateFiles returns the paths of all definition files in the registry,
// handling both the sharded layout (registry/ab/abc.toml) and the flat
// layout (registry/abc.toml).
//
// Returns [errors.ErrCodeNotFound] when dir does not exist.
func TemplateFiles(dir string) ([]string, error) {
	sharded, err := IsSharded(dir)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "reading registry directory %s", dir)
	}

	var files []string
	for _, entry := range entries {
		if sharded {
			if !entry.IsDir() {
				continue
			}
			shard := filepath.Join(dir, entry.Name())
			subEntries, err := os.ReadDir(shard)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "reading registry shard %s", shard)
			}
			for _, sub := range subEntries {
				if !sub.IsDir() && strings.HasSuffix(sub.Name(), tomlExt) {
					files = append(files, filepath.Join(shard, sub.Name()))
				}
			}
		} else if !entry.IsDir() && strings.HasSuffix(entry.Name(), tomlExt) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

// IsSharded reports whether the registry uses the sharded layout. A
// registry is sharded when the single-character shard "1" exists or any
// two-character subdirectory does.
//
// Returns [errors.ErrCodeNotFound] when dir does not exist.
func IsSharded(dir string) (bool, error) {
	if info, err := os.Stat(filepath.Join(dir, singleShard)); err == nil && info.IsDir() {
		return true, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, errors.New(errors.ErrCodeNotFound, "registry directory not found: %s", dir)
		}
		return false, errors.Wrap(errors.ErrCodeInternal, err, "reading registry directory %s", dir)
	}
	for _, entry := range entries {
		if entry.IsDir() && len(entry.Name()) == 2 {
			return true, nil
		}
	}
	return false, nil
}

// DefinitionPath computes the sharded path for a package name:
// single-character names shard to "1/", all others to the lowercased
// first two characters.
func DefinitionPath(dir, name string) string {
	prefix := singleShard
	if len(name) > 1 {
		prefix = strings.ToLower(name[:2])
	}
	return filepath.Join(dir, prefix, name+tomlExt)
}
