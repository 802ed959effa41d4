package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/cacheoverflow/rnbindgen/ast"
	"github.com/cacheoverflow/rnbindgen/resolve"
	"github.com/cacheoverflow/rnbindgen/typemap"
)

type palette struct {
	on bool
}

func newPalette(on bool) palette { return palette{on: on} }

func (p palette) wrap(code, s string) string {
	if !p.on {
		return s
	}
	return code + s + "\033[0m"
}

func (p palette) bold(s string) string   { return p.wrap("\033[1m", s) }
func (p palette) red(s string) string    { return p.wrap("\033[31m", s) }
func (p palette) yellow(s string) string { return p.wrap("\033[33m", s) }
func (p palette) dim(s string) string    { return p.wrap("\033[2m", s) }

func printAnalysis(w io.Writer, a *ast.Analysis, report *resolve.Report, pal palette) {
	for _, p := range a.Projects {
		fmt.Fprintf(w, "%s %s %s\n", pal.bold("project"), p.Name, pal.dim(p.Dir))
		for _, f := range p.Files {
			fmt.Fprintf(w, "  %s %s\n", pal.bold(f.ModulePath.String()), pal.dim(f.Path))
			for _, imp := range f.Imports {
				fmt.Fprintf(w, "    use %s\n", imp)
			}
			for _, s := range f.Structs {
				fmt.Fprintf(w, "    struct %s%s\n", s.Name, attributes(s.Attributes))
				for _, fd := range s.Fields {
					fmt.Fprintf(w, "      %s: %s\n", fd.Name, fd.Type)
				}
			}
			for _, fn := range f.Functions {
				fmt.Fprintf(w, "    fn %s(%s)", fn.Name, params(fn.Params))
				if fn.HasReturn() {
					fmt.Fprintf(w, " -> %s", fn.ReturnType)
				}
				fmt.Fprintf(w, "%s\n", attributes(fn.Attributes))
			}
		}
	}
	if len(report.Unresolved) == 0 {
		return
	}
	fmt.Fprintln(w, pal.yellow("unresolved types:"))
	for _, u := range report.Unresolved {
		fmt.Fprintf(w, "  %s\n", u)
	}
}

func printTypes(w io.Writer, pal palette) {
	for _, e := range typemap.New().Entries() {
		fmt.Fprintf(w, "%-28s %s\n", e.Source, pal.bold(e.Target))
	}
}

func params(ps ast.Params) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.Name + ": " + p.Type
	}
	return strings.Join(parts, ", ")
}

func attributes(attrs []ast.Attribute) string {
	if len(attrs) == 0 {
		return ""
	}
	parts := make([]string, len(attrs))
	for i, a := range attrs {
		if len(a.Args) == 0 {
			parts[i] = a.Name
			continue
		}
		args := make([]string, len(a.Args))
		for j, arg := range a.Args {
			args[j] = arg.Key + " = " + arg.Value
		}
		parts[i] = a.Name + "(" + strings.Join(args, ", ") + ")"
	}
	return " #[" + strings.Join(parts, ", ") + "]"
}
