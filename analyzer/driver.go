package analyzer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/cacheoverflow/rnbindgen/ast"
	"github.com/cacheoverflow/rnbindgen/diag"
	"github.com/cacheoverflow/rnbindgen/manifest"
	"github.com/cacheoverflow/rnbindgen/parser"
)

var log = commonlog.GetLogger("rnbindgen.analyzer")

// Options configures a Driver.
type Options struct {
	// Workers bounds the number of files analyzed in parallel.
	// Zero means runtime.NumCPU().
	Workers int
	// Strict makes syntax errors fatal instead of warnings.
	Strict bool
	// Cache, when set, is consulted before parsing a file.
	Cache *Cache
}

// Driver analyzes Cargo projects.
type Driver struct {
	opts Options
}

// NewDriver returns a driver.
func NewDriver(opts Options) *Driver {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return &Driver{opts: opts}
}

// Analyze analyzes every project directory in order.
func (d *Driver) Analyze(ctx context.Context, dirs ...string) (*ast.Analysis, error) {
	a := &ast.Analysis{}
	for _, dir := range dirs {
		p, err := d.AnalyzeProject(ctx, dir)
		if err != nil {
			return nil, err
		}
		a.Projects = append(a.Projects, p)
	}
	return a, nil
}

// AnalyzeProject validates dir as a Cargo project and analyzes every Rust
// file under its src directory.
func (d *Driver) AnalyzeProject(ctx context.Context, dir string) (*ast.Project, error) {
	manifestPath := filepath.Join(dir, manifest.FileName)
	if st, err := os.Stat(manifestPath); err != nil || !st.Mode().IsRegular() {
		return nil, &diag.ProjectError{Path: dir, Msg: "not a Cargo project (Cargo.toml is missing)"}
	}
	srcDir := filepath.Join(dir, "src")
	if st, err := os.Stat(srcDir); err != nil || !st.IsDir() {
		return nil, &diag.ProjectError{Path: dir, Msg: "not a Cargo project (src directory is missing)"}
	}

	m, err := manifest.Load(dir)
	if err != nil {
		return nil, &diag.ProjectError{Path: manifestPath, Msg: "invalid manifest", Err: err}
	}
	log.Infof("Analyzing project %s in %s", m.Package.Name, dir)

	paths, err := SourceFiles(srcDir)
	if err != nil {
		return nil, &diag.AnalysisError{Path: srcDir, Err: err}
	}

	files, err := d.analyzeFiles(ctx, srcDir, paths)
	if err != nil {
		return nil, err
	}
	log.Infof("Analyzed %d source files in %s", len(files), dir)

	return &ast.Project{
		Name:         m.Package.Name,
		Dir:          m.Dir,
		Files:        files,
		Dependencies: m.DependencyNames(),
	}, nil
}

// analyzeFiles parses paths in parallel. Every worker owns one parser and
// results land in the slot of their path, so the order is deterministic.
func (d *Driver) analyzeFiles(ctx context.Context, srcDir string, paths []string) ([]*ast.File, error) {
	workers := min(d.opts.Workers, len(paths))
	parsers := make(chan *parser.Parser, workers)
	defer func() {
		close(parsers)
		for p := range parsers {
			p.Close()
		}
	}()
	for range workers {
		p, err := parser.New()
		if err != nil {
			return nil, err
		}
		parsers <- p
	}

	files := make([]*ast.File, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			p := <-parsers
			defer func() { parsers <- p }()
			f, err := d.analyzeFile(ctx, p, srcDir, path)
			files[i] = f
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

func (d *Driver) analyzeFile(ctx context.Context, p *parser.Parser, srcDir, path string) (*ast.File, error) {
	rel, err := filepath.Rel(srcDir, path)
	if err != nil {
		return nil, &diag.AnalysisError{Path: path, Err: err}
	}
	mod := ModulePath(rel)

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &diag.AnalysisError{Path: path, Err: err}
	}

	f, diags, cached := d.lookup(path, src, mod)
	if !cached {
		f, diags, err = AnalyzeSource(ctx, p, path, src, mod)
		if err != nil {
			return nil, &diag.AnalysisError{Path: path, Err: err}
		}
		if d.opts.Cache != nil {
			d.opts.Cache.Add(src, mod, f, diags)
		}
	}
	log.Debugf("Module path of %s is %s (cached: %t)", path, mod, cached)

	if len(diags) > 0 {
		if d.opts.Strict {
			return nil, &diag.AnalysisError{Path: path, Err: fmt.Errorf("%d syntax error(s), first: %s", len(diags), diags[0])}
		}
		for _, dg := range diags {
			log.Warningf("Syntax error: %s", dg)
		}
	}
	return f, nil
}

func (d *Driver) lookup(path string, src []byte, mod ast.Path) (*ast.File, []parser.Diagnostic, bool) {
	if d.opts.Cache == nil {
		return nil, nil, false
	}
	return d.opts.Cache.Get(path, src, mod)
}
