// Package bindgen runs the whole pipeline: it analyzes Cargo projects,
// canonicalizes their names and emits the Java data-wrapper and React
// Native bridge classes for every exported struct and function.
//
// A run either returns every generated unit or an error; nothing is handed
// out for a run that failed half way.
package bindgen

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/tliron/commonlog"

	"github.com/cacheoverflow/rnbindgen/analyzer"
	"github.com/cacheoverflow/rnbindgen/ast"
	"github.com/cacheoverflow/rnbindgen/codegen"
	"github.com/cacheoverflow/rnbindgen/config"
	"github.com/cacheoverflow/rnbindgen/diag"
	"github.com/cacheoverflow/rnbindgen/resolve"
	"github.com/cacheoverflow/rnbindgen/typemap"
)

var log = commonlog.GetLogger("rnbindgen.bindgen")

// Defaults used when a Config leaves the field empty.
const (
	DefaultExportAttribute = "jni_export"
	DefaultModuleSuffix    = "Module"
)

// ClassArg is the export attribute argument naming the Java class.
const ClassArg = "class"

// Config controls a Generator.
type Config struct {
	ExportAttribute string
	ModuleSuffix    string
	// Strict makes syntax errors in source files fatal.
	Strict bool
	// StrictTypes makes exported items referencing unresolved types fatal.
	StrictTypes bool
	Workers     int
	// Cache is shared by every run of the generator when set.
	Cache *analyzer.Cache
}

// FromConfig derives generator settings from a loaded rnbindgen.toml.
func FromConfig(c *config.Config) Config {
	return Config{
		ExportAttribute: c.React.ExportAttribute,
		ModuleSuffix:    c.React.ModuleSuffix,
		Strict:          c.Generator.Strict,
		StrictTypes:     c.Generator.StrictTypes,
		Workers:         c.Generator.Workers,
	}
}

// Generator produces Java bindings. Each Generate call uses its own type
// mapper, so runs never see each other's registrations.
type Generator struct {
	cfg Config
}

// New returns a generator.
func New(cfg Config) *Generator {
	if cfg.ExportAttribute == "" {
		cfg.ExportAttribute = DefaultExportAttribute
	}
	if cfg.ModuleSuffix == "" {
		cfg.ModuleSuffix = DefaultModuleSuffix
	}
	return &Generator{cfg: cfg}
}

// Result is the output of a successful run.
type Result struct {
	// Units maps qualified Java class names to their source.
	Units map[string]string
	// Models holds the class model behind each unit.
	Models   map[string]codegen.ClassModel
	Analysis *ast.Analysis
	Report   *resolve.Report
	Mapper   *typemap.Mapper
}

// Names returns the qualified class names of all units, sorted.
func (r *Result) Names() []string {
	names := make([]string, 0, len(r.Units))
	for name := range r.Units {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Analyze runs the analysis and canonicalization passes without emitting
// any code. The returned mapper holds only the built-in correspondences.
func (g *Generator) Analyze(ctx context.Context, dirs ...string) (*ast.Analysis, *resolve.Report, *typemap.Mapper, error) {
	if len(dirs) == 0 {
		return nil, nil, nil, errors.New("no project directories given")
	}

	log.Info("Analyzing all imported Rust modules")
	drv := analyzer.NewDriver(analyzer.Options{
		Workers: g.cfg.Workers,
		Strict:  g.cfg.Strict,
		Cache:   g.cfg.Cache,
	})
	a, err := drv.Analyze(ctx, dirs...)
	if err != nil {
		return nil, nil, nil, err
	}

	m := typemap.New()
	report, err := resolve.Run(a, m)
	if err != nil {
		return nil, nil, nil, err
	}
	return a, report, m, nil
}

// Generate analyzes the Cargo projects in dirs and emits their bindings.
func (g *Generator) Generate(ctx context.Context, dirs ...string) (*Result, error) {
	a, report, m, err := g.Analyze(ctx, dirs...)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r := &run{
		cfg:    g.cfg,
		a:      a,
		m:      m,
		report: report,
		res: &Result{
			Units:    make(map[string]string),
			Models:   make(map[string]codegen.ClassModel),
			Analysis: a,
			Report:   report,
			Mapper:   m,
		},
	}

	log.Info("Generating type mappings")
	if err := r.seed(); err != nil {
		return nil, err
	}

	log.Info("Generating Java classes from Rust structures")
	if err := r.wrappers(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Info("Generating React Native module classes from Rust functions")
	if err := r.bridges(); err != nil {
		return nil, err
	}
	return r.res, nil
}

// run is the state of one Generate call.
type run struct {
	cfg    Config
	a      *ast.Analysis
	m      *typemap.Mapper
	report *resolve.Report
	res    *Result
}

// exportClass returns the class named by the export attribute in attrs.
// exported is false when there is no export attribute.
func (r *run) exportClass(symbol string, attrs []ast.Attribute) (class string, exported bool, err error) {
	attr, ok := ast.FindAttribute(attrs, r.cfg.ExportAttribute)
	if !ok {
		return "", false, nil
	}
	class, ok = attr.Arg(ClassArg)
	if !ok || class == "" {
		return "", true, &diag.ConfigError{Symbol: symbol, Msg: "missing class name in definition"}
	}
	return class, true, nil
}

// seed registers one mapping per exported struct and validates the export
// attributes of every function before anything is emitted.
func (r *run) seed() error {
	for _, p := range r.a.Projects {
		for _, f := range p.Files {
			for _, s := range f.Structs {
				symbol := resolve.StructSymbol(p, s)
				class, exported, err := r.exportClass(symbol, s.Attributes)
				if err != nil {
					return err
				}
				if !exported {
					log.Warningf("Skipping %s because of missing %s attribute", symbol, r.cfg.ExportAttribute)
					continue
				}
				if r.m.RegisterIfAbsent(symbol, class, false) {
					log.Infof("Mapped %s to %s", symbol, class)
				} else {
					log.Warningf("Keeping existing mapping for %s", symbol)
				}
			}
			for _, fn := range f.Functions {
				if _, _, err := r.exportClass(resolve.FunctionSymbol(p, f, fn), fn.Attributes); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// checkTypes fails for exported items whose types had to be guessed.
func (r *run) checkTypes(symbol string) error {
	if !r.cfg.StrictTypes {
		return nil
	}
	if u := r.report.UnresolvedFor(symbol); len(u) > 0 {
		return &diag.UnresolvedTypeError{Symbol: symbol, Type: u[0].Type}
	}
	return nil
}

func (r *run) mapType(symbol, typ string) (string, error) {
	out, err := r.m.Map(typ)
	if err != nil {
		return "", fmt.Errorf("%s: %w", symbol, err)
	}
	return out, nil
}

// add stores a built class. Unit names are unique across wrappers and
// bridges.
func (r *run) add(c *codegen.ClassBuilder) error {
	name := c.Name()
	if _, ok := r.res.Units[name]; ok {
		return diag.Duplicate(name)
	}
	src, err := c.Build()
	if err != nil {
		return err
	}
	r.res.Units[name] = src
	r.res.Models[name] = c.Model()
	return nil
}
