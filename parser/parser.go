// Package parser turns Rust source text into a concrete syntax tree using
// tree-sitter and the tree-sitter-rust grammar.
//
// Syntax errors never fail a parse: tree-sitter always recovers a tree, and
// the ERROR and MISSING nodes it inserts are reported as Diagnostics so the
// caller decides how strict to be.
package parser

import (
	"context"
	"errors"
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	"modernc.org/token"
)

// Node is a node of the concrete syntax tree.
type Node = tree_sitter.Node

// ErrCanceled is returned when the context is done before parsing finished.
var ErrCanceled = errors.New("parse canceled")

// Diagnostic is a syntax error found in the source.
type Diagnostic struct {
	Pos token.Position
	Msg string
}

func (d Diagnostic) String() string { return fmt.Sprintf("%s: %s", d.Pos, d.Msg) }

// Parser parses Rust sources. A Parser is not safe for concurrent use;
// use one per goroutine.
type Parser struct {
	ts *tree_sitter.Parser
}

// New returns a parser configured for the Rust grammar.
func New() (*Parser, error) {
	ts := tree_sitter.NewParser()
	if err := ts.SetLanguage(tree_sitter.NewLanguage(tree_sitter_rust.Language())); err != nil {
		ts.Close()
		return nil, fmt.Errorf("loading rust grammar: %w", err)
	}
	return &Parser{ts: ts}, nil
}

// Close releases the underlying tree-sitter parser.
func (p *Parser) Close() {
	if p.ts != nil {
		p.ts.Close()
		p.ts = nil
	}
}

// Parse parses src. The name is only used in diagnostic positions.
// The returned tree must be closed by the caller.
func (p *Parser) Parse(ctx context.Context, name string, src []byte) (*Tree, error) {
	if p.ts == nil {
		return nil, errors.New("parser is closed")
	}
	if ctx.Err() != nil {
		return nil, fmt.Errorf("%s: %w", name, ErrCanceled)
	}
	t := p.ts.Parse(src, nil)
	if t == nil {
		return nil, fmt.Errorf("%s: parser produced no tree", name)
	}
	file := token.NewFile(name, len(src))
	file.SetLinesForContent(src)
	tree := &Tree{tree: t, src: src, file: file}
	tree.diags = tree.collect(t.RootNode(), nil)
	return tree, nil
}

// Tree is a parsed source file.
type Tree struct {
	tree  *tree_sitter.Tree
	src   []byte
	file  *token.File
	diags []Diagnostic
}

// Root returns the source_file node.
func (t *Tree) Root() *Node { return t.tree.RootNode() }

// Source returns the parsed bytes.
func (t *Tree) Source() []byte { return t.src }

// Text returns the source text spanned by n.
func (t *Tree) Text(n *Node) string { return n.Utf8Text(t.src) }

// Position returns the position of the first byte of n.
func (t *Tree) Position(n *Node) token.Position {
	return t.file.Position(t.file.Pos(int(n.StartByte())))
}

// Diagnostics returns the syntax errors of the file in source order.
func (t *Tree) Diagnostics() []Diagnostic { return t.diags }

// Close releases the tree.
func (t *Tree) Close() {
	if t.tree != nil {
		t.tree.Close()
		t.tree = nil
	}
}

func (t *Tree) collect(n *Node, out []Diagnostic) []Diagnostic {
	switch {
	case n.IsMissing():
		return append(out, Diagnostic{Pos: t.Position(n), Msg: fmt.Sprintf("missing %s", n.Kind())})
	case n.IsError():
		return append(out, Diagnostic{Pos: t.Position(n), Msg: fmt.Sprintf("syntax error near %q", snippet(t.Text(n)))})
	case !n.HasError():
		return out
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		out = t.collect(n.Child(i), out)
	}
	return out
}

func snippet(s string) string {
	const limit = 24
	for i, r := range s {
		if r == '\n' {
			s = s[:i]
			break
		}
	}
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
