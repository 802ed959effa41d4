// Package config loads rnbindgen.toml and applies environment overrides.
//
// Precedence, lowest to highest: built-in defaults, rnbindgen.toml, the
// process environment (after loading a .env file next to the config), and
// finally CLI flags, which the cmd package applies on the returned value.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// FileName is the default config file name.
const FileName = "rnbindgen.toml"

// DefaultOutputDir is where generated Java sources go unless configured.
const DefaultOutputDir = "build/generated/source/react-native-rust/main/java"

// Environment variables consulted by Load.
const (
	EnvBasePackage = "RNBINDGEN_BASE_PACKAGE"
	EnvOutputDir   = "RNBINDGEN_OUTPUT_DIR"
	EnvStrict      = "RNBINDGEN_STRICT"
)

// Config is the rnbindgen.toml configuration.
type Config struct {
	Generator Generator `toml:"generator"`
	Rust      Rust      `toml:"rust"`
	React     React     `toml:"react"`

	// Dir is the directory relative paths are resolved against.
	Dir string `toml:"-"`
}

// Generator configures the generation run.
type Generator struct {
	BasePackage string `toml:"base_package"`
	OutputDir   string `toml:"output_dir"`
	Strict      bool   `toml:"strict"`
	StrictTypes bool   `toml:"strict_types"`
	Workers     int    `toml:"workers"`
}

// Rust locates the Cargo projects to analyze.
type Rust struct {
	BaseDir string   `toml:"base_dir"`
	Modules []string `toml:"modules"`
}

// React configures the generated bridge classes.
type React struct {
	ModuleSuffix    string `toml:"module_suffix"`
	ExportAttribute string `toml:"export_attribute"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Generator: Generator{
			OutputDir:   DefaultOutputDir,
			StrictTypes: true,
			Workers:     runtime.NumCPU(),
		},
		Rust: Rust{BaseDir: "."},
		React: React{
			ModuleSuffix:    "Module",
			ExportAttribute: "jni_export",
		},
		Dir: ".",
	}
}

// Load reads the config at path. An empty path means rnbindgen.toml in the
// working directory, which may be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = FileName
	}

	c := Default()
	c.Dir = filepath.Dir(path)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse error in %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	env := filepath.Join(c.Dir, ".env")
	if err := godotenv.Load(env); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("cannot read %s: %w", env, err)
	}
	if err := c.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return c, c.Validate()
}

// ApplyEnv overrides fields from the environment.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvBasePackage); ok && strings.TrimSpace(v) != "" {
		c.Generator.BasePackage = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvOutputDir); ok && strings.TrimSpace(v) != "" {
		c.Generator.OutputDir = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvStrict); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvStrict, err)
		}
		c.Generator.Strict = b
	}
	return nil
}

// Validate checks the values that have no sensible fallback.
func (c *Config) Validate() error {
	if c.Generator.Workers < 0 {
		return fmt.Errorf("generator.workers must not be negative")
	}
	if c.Generator.Workers == 0 {
		c.Generator.Workers = runtime.NumCPU()
	}
	if strings.TrimSpace(c.React.ExportAttribute) == "" {
		return fmt.Errorf("react.export_attribute must not be empty")
	}
	if strings.TrimSpace(c.React.ModuleSuffix) == "" {
		return fmt.Errorf("react.module_suffix must not be empty")
	}
	return nil
}

// ProjectDirs returns the configured Cargo project directories, resolved
// against the config directory.
func (c *Config) ProjectDirs() []string {
	base := c.resolve(c.Rust.BaseDir)
	dirs := make([]string, 0, len(c.Rust.Modules))
	for _, m := range c.Rust.Modules {
		if filepath.IsAbs(m) {
			dirs = append(dirs, m)
			continue
		}
		dirs = append(dirs, filepath.Join(base, m))
	}
	return dirs
}

// OutputPath returns the output directory resolved against the config
// directory.
func (c *Config) OutputPath() string { return c.resolve(c.Generator.OutputDir) }

func (c *Config) resolve(p string) string {
	if p == "" {
		p = "."
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}
