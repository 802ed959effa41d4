// Package manifest reads the parts of a Cargo.toml that binding
// generation needs.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
)

// FileName is the Cargo manifest file name.
const FileName = "Cargo.toml"

// Manifest is a Cargo.toml.
type Manifest struct {
	Package      Package        `toml:"package"`
	Dependencies map[string]any `toml:"dependencies"`

	// Dir is the directory containing the Cargo.toml (set at load time).
	Dir string `toml:"-"`
}

// Package is the [package] table.
type Package struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Edition string `toml:"edition"`
}

// Load parses the Cargo.toml in dir.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	return m, nil
}

// Parse decodes manifest text. A missing package name is an error.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m.Package.Name == "" {
		return nil, fmt.Errorf("missing package.name")
	}
	return &m, nil
}

// DependencyNames returns the keys of [dependencies], sorted.
func (m *Manifest) DependencyNames() []string {
	names := make([]string, 0, len(m.Dependencies))
	for name := range m.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
