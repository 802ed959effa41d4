// Package output persists generated Java units.
package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("rnbindgen.output")

var (
	_ Sink = Dir{}
	_ Sink = Stream{}
)

// Sink receives the units of a successful generation run, keyed by
// qualified class name.
type Sink interface {
	Write(ctx context.Context, units map[string]string) error
}

// Dir writes each unit to Root/<package path>/<Class>.java.
type Dir struct {
	Root string
	// BasePackage, when set, names the package whose generated
	// subpackage is cleared before writing.
	BasePackage string
}

// Path returns the file a unit is written to.
func (d Dir) Path(name string) string {
	return filepath.Join(d.Root, filepath.FromSlash(strings.ReplaceAll(name, ".", "/"))+".java")
}

// GeneratedDir returns the directory cleared before every write, or "" when
// no base package is configured.
func (d Dir) GeneratedDir() string {
	if d.BasePackage == "" {
		return ""
	}
	return filepath.Join(d.Root, filepath.FromSlash(strings.ReplaceAll(d.BasePackage, ".", "/")), "generated")
}

func (d Dir) Write(ctx context.Context, units map[string]string) error {
	if d.Root == "" {
		return fmt.Errorf("output directory is not set")
	}
	if err := os.MkdirAll(d.Root, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if gen := d.GeneratedDir(); gen != "" {
		if err := os.RemoveAll(gen); err != nil {
			return fmt.Errorf("cleaning %s: %w", gen, err)
		}
		if err := os.MkdirAll(gen, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", gen, err)
		}
	}

	for _, name := range sortedNames(units) {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := d.Path(name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", name, err)
		}
		if err := os.WriteFile(path, []byte(units[name]), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		log.Infof("Successfully wrote class %s into %s", name, path)
	}
	return nil
}

// Stream writes every unit to W, sorted by name, each preceded by a
// comment naming its file.
type Stream struct {
	W io.Writer
}

func (s Stream) Write(ctx context.Context, units map[string]string) error {
	for i, name := range sortedNames(units) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i > 0 {
			if _, err := io.WriteString(s.W, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(s.W, "// %s.java\n%s", strings.ReplaceAll(name, ".", "/"), units[name]); err != nil {
			return err
		}
	}
	return nil
}

func sortedNames(units map[string]string) []string {
	names := make([]string, 0, len(units))
	for name := range units {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
