// Package analyzer extracts the ast model from Rust sources and drives the
// analysis of whole Cargo projects.
package analyzer

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cacheoverflow/rnbindgen/ast"
	"github.com/cacheoverflow/rnbindgen/parser"
)

// AnalyzeSource parses src and folds its top-level items into a File with
// module path mod. Syntax errors are returned as diagnostics; the model
// then holds whatever items the parser could recover.
func AnalyzeSource(ctx context.Context, p *parser.Parser, name string, src []byte, mod ast.Path) (*ast.File, []parser.Diagnostic, error) {
	tree, err := p.Parse(ctx, name, src)
	if err != nil {
		return nil, nil, err
	}
	defer tree.Close()

	w := &walker{tree: tree, file: &ast.File{
		Path:       name,
		ModulePath: mod,
		Aliases:    map[string]string{},
	}}
	w.items(tree.Root())
	return w.file, tree.Diagnostics(), nil
}

type walker struct {
	tree *parser.Tree
	file *ast.File
}

// items folds over the children of a source_file or declaration_list.
// Attributes accumulate until the next item consumes them; anything that
// is not a function or struct drops them. Attributes left over at the end
// of the list are discarded.
func (w *walker) items(list *parser.Node) {
	var pending []ast.Attribute
	for i := uint(0); i < list.NamedChildCount(); i++ {
		pending = w.item(list.NamedChild(i), pending)
	}
}

func (w *walker) item(n *parser.Node, pending []ast.Attribute) []ast.Attribute {
	switch n.Kind() {
	case "attribute_item":
		if a, ok := w.attribute(n); ok {
			return append(pending, a)
		}
		return pending
	case "line_comment", "block_comment", "inner_attribute_item":
		return pending
	case "function_item":
		w.function(n, pending)
	case "struct_item":
		w.structItem(n, pending)
	case "use_declaration":
		if arg := n.ChildByFieldName("argument"); arg != nil {
			w.use(arg, nil)
		}
	case "mod_item":
		if body := n.ChildByFieldName("body"); body != nil {
			w.items(body)
		}
	}
	return nil
}

func (w *walker) attribute(n *parser.Node) (ast.Attribute, bool) {
	attr := firstNamed(n, "attribute")
	if attr == nil || attr.NamedChildCount() == 0 {
		return ast.Attribute{}, false
	}
	a := ast.Attribute{Name: squash(w.tree.Text(attr.NamedChild(0)))}
	if args := attr.ChildByFieldName("arguments"); args != nil {
		a.Args = w.attributeArgs(args)
	}
	return a, true
}

// attributeArgs splits a token tree on top-level commas and keeps the
// groups shaped exactly like `key = value`.
func (w *walker) attributeArgs(tt *parser.Node) []ast.Arg {
	var (
		args  []ast.Arg
		group []*parser.Node
	)
	flush := func() {
		if len(group) == 3 && group[1].Kind() == "=" {
			args = append(args, ast.Arg{
				Key:   w.tree.Text(group[0]),
				Value: unquote(w.tree.Text(group[2])),
			})
		}
		group = nil
	}
	// first and last children are the delimiters
	for i := uint(1); i+1 < tt.ChildCount(); i++ {
		c := tt.Child(i)
		switch c.Kind() {
		case ",":
			flush()
		case "line_comment", "block_comment":
		default:
			group = append(group, c)
		}
	}
	flush()
	return args
}

func (w *walker) function(n *parser.Node, attrs []ast.Attribute) {
	name := n.ChildByFieldName("name")
	if name == nil {
		return
	}
	fn := &ast.Function{
		Attributes: attrs,
		Name:       w.tree.Text(name),
		Line:       w.tree.Position(n).Line,
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		for i := uint(0); i < params.NamedChildCount(); i++ {
			p := params.NamedChild(i)
			if p.Kind() != "parameter" {
				continue
			}
			pat, typ := p.ChildByFieldName("pattern"), p.ChildByFieldName("type")
			if pat == nil || typ == nil || pat.Kind() == "self" {
				continue
			}
			pname := squash(strings.TrimPrefix(w.tree.Text(pat), "mut "))
			fn.Params.Set(pname, squash(w.tree.Text(typ)))
		}
	}
	if ret := n.ChildByFieldName("return_type"); ret != nil {
		fn.ReturnType = squash(w.tree.Text(ret))
	}
	w.file.Functions = append(w.file.Functions, fn)
}

func (w *walker) structItem(n *parser.Node, attrs []ast.Attribute) {
	name := n.ChildByFieldName("name")
	if name == nil {
		return
	}
	st := &ast.Struct{
		Attributes: attrs,
		Name:       w.tree.Text(name),
		Line:       w.tree.Position(n).Line,
	}
	body := n.ChildByFieldName("body")
	switch {
	case body == nil:
	case body.Kind() == "field_declaration_list":
		for i := uint(0); i < body.NamedChildCount(); i++ {
			f := body.NamedChild(i)
			if f.Kind() != "field_declaration" {
				continue
			}
			fname, ftype := f.ChildByFieldName("name"), f.ChildByFieldName("type")
			if fname == nil || ftype == nil {
				continue
			}
			st.Fields.Set(w.tree.Text(fname), squash(w.tree.Text(ftype)))
		}
	case body.Kind() == "ordered_field_declaration_list":
		idx := 0
		for i := uint(0); i < body.ChildCount(); i++ {
			if body.FieldNameForChild(uint32(i)) != "type" {
				continue
			}
			st.Fields.Set(fmt.Sprintf("_%d", idx), squash(w.tree.Text(body.Child(i))))
			idx++
		}
	}
	w.file.Structs = append(w.file.Structs, st)
}

// use records the imports of one use tree, expanding grouped imports
// against prefix.
func (w *walker) use(n *parser.Node, prefix ast.Path) {
	switch n.Kind() {
	case "scoped_use_list":
		next := prefix
		if path := n.ChildByFieldName("path"); path != nil {
			next = prefix.Join(ast.ParsePath(squash(w.tree.Text(path))))
		}
		if list := n.ChildByFieldName("list"); list != nil {
			w.use(list, next)
		}
	case "use_list":
		for i := uint(0); i < n.NamedChildCount(); i++ {
			c := n.NamedChild(i)
			if c.Kind() == "line_comment" || c.Kind() == "block_comment" {
				continue
			}
			w.use(c, prefix)
		}
	case "use_as_clause":
		path, alias := n.ChildByFieldName("path"), n.ChildByFieldName("alias")
		if path == nil {
			return
		}
		full := w.usePath(path, prefix)
		w.file.Imports = append(w.file.Imports, full)
		if alias != nil && w.tree.Text(alias) != "_" {
			w.file.Aliases[w.tree.Text(alias)] = full
		}
	case "use_wildcard":
		full := squash(w.tree.Text(n))
		if !prefix.IsZero() {
			full = prefix.String() + ast.Sep + full
		}
		w.file.Imports = append(w.file.Imports, full)
	default:
		w.file.Imports = append(w.file.Imports, w.usePath(n, prefix))
	}
}

func (w *walker) usePath(n *parser.Node, prefix ast.Path) string {
	if n.Kind() == "self" && !prefix.IsZero() {
		return prefix.String()
	}
	return prefix.Join(ast.ParsePath(squash(w.tree.Text(n)))).String()
}

func firstNamed(n *parser.Node, kind string) *parser.Node {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if c := n.NamedChild(i); c.Kind() == kind {
			return c
		}
	}
	return nil
}

// squash removes whitespace from type and path text. A single space is kept
// between two word characters so `dyn Trait` and `&'a str` survive.
func squash(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if last, _ := utf8.DecodeLastRuneInString(b.String()); space && isWord(r) && isWord(last) {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

func isWord(r rune) bool { return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) }

func unquote(s string) string {
	if v, err := strconv.Unquote(s); err == nil {
		return v
	}
	return strings.Trim(s, `"`)
}
