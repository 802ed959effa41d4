package resolve

import (
	"github.com/cacheoverflow/rnbindgen/ast"
	"github.com/cacheoverflow/rnbindgen/typemap"
)

// RenameStructs prefixes every struct name with the module path of its
// file, root marker stripped: Point in crate::geo becomes geo::Point.
// Names that are already qualified are left alone. It returns the number
// of renamed structs.
func RenameStructs(a *ast.Analysis) int {
	n := 0
	for _, p := range a.Projects {
		for _, f := range p.Files {
			for _, s := range f.Structs {
				if ast.IsQualified(s.Name) {
					continue
				}
				renamed := f.ModulePath.StripRoot().Append(s.Name).String()
				if renamed != s.Name {
					log.Debugf("Renamed struct %s to %s", s.Name, renamed)
					s.Name = renamed
					n++
				}
			}
		}
	}
	return n
}

// CanonicalizeTypes rewrites struct field types, then function parameter
// and return types, to canonical names. Guesses are added to r.
func CanonicalizeTypes(a *ast.Analysis, m *typemap.Mapper, r *Report) {
	for _, p := range a.Projects {
		for _, f := range p.Files {
			for _, s := range f.Structs {
				c := canonicalizer{mapper: m, project: p, file: f, report: r, symbol: StructSymbol(p, s)}
				for i := range s.Fields {
					s.Fields[i].Type = c.canonical(s.Fields[i].Type)
				}
			}
		}
	}
	for _, p := range a.Projects {
		for _, f := range p.Files {
			for _, fn := range f.Functions {
				c := canonicalizer{mapper: m, project: p, file: f, report: r, symbol: FunctionSymbol(p, f, fn)}
				for i := range fn.Params {
					fn.Params[i].Type = c.canonical(fn.Params[i].Type)
				}
				if fn.HasReturn() {
					fn.ReturnType = c.canonical(fn.ReturnType)
				}
			}
		}
	}
}

// Canonical resolves a single type reference as written in file f of
// project p. It is exposed for tooling; the passes use the same rules.
func Canonical(m *typemap.Mapper, p *ast.Project, f *ast.File, typ string) (string, bool) {
	r := &Report{}
	c := canonicalizer{mapper: m, project: p, file: f, report: r}
	out := c.canonical(typ)
	return out, len(r.Unresolved) == 0
}

type canonicalizer struct {
	mapper  *typemap.Mapper
	project *ast.Project
	file    *ast.File
	report  *Report
	symbol  string
}

func (c canonicalizer) canonical(typ string) string {
	switch {
	case c.mapper.IsPrimitiveSource(typ):
		return typ
	case ast.IsQualified(typ):
		return c.rewrite(typ, c.rebase(ast.ParsePath(typ)).String())
	case !plainIdent.MatchString(typ):
		c.unresolved(typ, typ)
		return typ
	}

	if full, ok := c.file.Aliases[typ]; ok {
		return c.rewrite(typ, c.rebase(ast.ParsePath(full)).String())
	}
	for _, imp := range c.file.Imports {
		if p := ast.ParsePath(imp); p.Last() == typ {
			return c.rewrite(typ, c.rebase(p).String())
		}
	}

	guess := ast.Path{c.project.CrateName()}.Join(c.file.ModulePath.StripRoot()).Append(typ).String()
	if !c.file.DeclaresStruct(typ) {
		c.unresolved(typ, guess)
	}
	return c.rewrite(typ, guess)
}

// rebase replaces a crate, self or super root with the project crate name,
// resolving relative roots against the file's module path. Other paths are
// returned unchanged.
func (c canonicalizer) rebase(p ast.Path) ast.Path {
	mod := c.file.ModulePath
	if mod.IsZero() {
		mod = ast.Path{ast.CrateRoot}
	}
	switch p.Root() {
	case ast.CrateRoot:
	case "self":
		p = mod.Join(p[1:])
	case "super":
		for p.Root() == "super" {
			if len(mod) > 1 {
				mod = mod.Parent()
			}
			p = p[1:]
		}
		p = mod.Join(p)
	default:
		return p
	}
	return ast.Path{c.project.CrateName()}.Join(p.StripRoot())
}

func (c canonicalizer) rewrite(from, to string) string {
	if from != to {
		log.Debugf("Rewrote type %s to %s in %s", from, to, c.file.Path)
		c.report.Rewritten++
	}
	return to
}

func (c canonicalizer) unresolved(typ, guess string) {
	u := Unresolved{
		Project: c.project.Name,
		Module:  c.file.ModulePath.String(),
		Symbol:  c.symbol,
		Type:    typ,
		Guess:   guess,
	}
	log.Warningf("Unresolved type %s in %s", typ, u.Symbol)
	c.report.Unresolved = append(c.report.Unresolved, u)
}
