// Package resolve rewrites struct names and type references of an
// analysis into canonical, fully path-qualified names.
//
// Canonical names are rooted at the crate name of their project, e.g. a
// struct Point declared in src/geo.rs of package geo-core is known as
// geo::Point inside its file model and as geo_core::geo::Point wherever a
// type refers to it.
package resolve

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/tliron/commonlog"

	"github.com/cacheoverflow/rnbindgen/ast"
	"github.com/cacheoverflow/rnbindgen/typemap"
)

var log = commonlog.GetLogger("rnbindgen.resolve")

var plainIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Roots that import paths are always allowed to start with.
var builtinRoots = map[string]bool{
	ast.CrateRoot: true, "self": true, "super": true,
	"std": true, "core": true, "alloc": true,
}

// Unresolved is a type reference canonicalization had to guess.
type Unresolved struct {
	Project string
	Module  string
	Symbol  string // canonical name of the struct or function using the type
	Type    string // type as written
	Guess   string // canonical name it was rewritten to
}

func (u Unresolved) String() string {
	return fmt.Sprintf("%s: %s (guessed %s)", u.Symbol, u.Type, u.Guess)
}

// Report collects what the passes could not resolve with certainty.
type Report struct {
	Unresolved []Unresolved
	Renamed    int
	Rewritten  int
}

// UnresolvedFor returns the unresolved references of the symbol.
func (r *Report) UnresolvedFor(symbol string) []Unresolved {
	var out []Unresolved
	for _, u := range r.Unresolved {
		if u.Symbol == symbol {
			out = append(out, u)
		}
	}
	return out
}

// Run renames structs and then canonicalizes every type reference.
func Run(a *ast.Analysis, m *typemap.Mapper) (*Report, error) {
	if a == nil || m == nil {
		return nil, fmt.Errorf("resolve: analysis and mapper are required")
	}
	r := &Report{}
	r.Renamed = RenameStructs(a)
	CanonicalizeTypes(a, m, r)
	for _, p := range a.Projects {
		checkImports(p)
	}
	sort.SliceStable(r.Unresolved, func(i, j int) bool { return r.Unresolved[i].Symbol < r.Unresolved[j].Symbol })
	return r, nil
}

// StructSymbol returns the canonical name of a renamed struct.
func StructSymbol(p *ast.Project, s *ast.Struct) string {
	return ast.Path{p.CrateName()}.Join(ast.ParsePath(s.Name)).String()
}

// FunctionSymbol returns the canonical name of a function.
func FunctionSymbol(p *ast.Project, f *ast.File, fn *ast.Function) string {
	return ast.Path{p.CrateName()}.Join(f.ModulePath.StripRoot()).Append(fn.Name).String()
}

func checkImports(p *ast.Project) {
	crate := p.CrateName()
	for _, f := range p.Files {
		for _, imp := range f.Imports {
			root := ast.ParsePath(imp).Root()
			if builtinRoots[root] || root == crate || p.HasDependency(root) {
				continue
			}
			log.Warningf("%s imports %s from undeclared crate %s", f.Path, imp, root)
		}
	}
}
