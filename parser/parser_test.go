package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *Tree {
	t.Helper()
	p, err := New()
	require.NoError(t, err)
	t.Cleanup(p.Close)
	tree, err := p.Parse(context.Background(), "test.rs", []byte(src))
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree
}

func TestParseValidSource(t *testing.T) {
	tree := parse(t, "pub struct Point { x: f64, y: f64 }\n\npub fn origin() -> Point { Point { x: 0.0, y: 0.0 } }\n")

	root := tree.Root()
	assert.Equal(t, "source_file", root.Kind())
	assert.Empty(t, tree.Diagnostics())
	require.Equal(t, uint(2), root.NamedChildCount())
	assert.Equal(t, "struct_item", root.NamedChild(0).Kind())
	assert.Equal(t, "function_item", root.NamedChild(1).Kind())

	fn := root.NamedChild(1)
	assert.Equal(t, "origin", tree.Text(fn.ChildByFieldName("name")))
	pos := tree.Position(fn)
	assert.Equal(t, "test.rs", pos.Filename)
	assert.Equal(t, 3, pos.Line)
	assert.Equal(t, 1, pos.Column)
}

func TestParseReportsSyntaxErrors(t *testing.T) {
	tree := parse(t, "struct Ok { a: i32 }\nfn broken( {")

	require.NotEmpty(t, tree.Diagnostics())
	d := tree.Diagnostics()[0]
	assert.Equal(t, "test.rs", d.Pos.Filename)
	assert.Equal(t, 2, d.Pos.Line)
	assert.NotEmpty(t, d.Msg)
	assert.Contains(t, d.String(), "test.rs:2:")
}

func TestParseClosedParser(t *testing.T) {
	p, err := New()
	require.NoError(t, err)
	p.Close()
	p.Close()

	_, err = p.Parse(context.Background(), "x.rs", []byte("fn a() {}"))
	assert.Error(t, err)
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "fn a(", snippet("fn a(\nmore"))
	assert.Equal(t, "abcdefghijklmnopqrstuvwx...", snippet("abcdefghijklmnopqrstuvwxyz"))
}

func TestParseCanceled(t *testing.T) {
	p, err := New()
	require.NoError(t, err)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Parse(ctx, "test.rs", []byte("fn f() {}"))
	require.ErrorIs(t, err, ErrCanceled)
	assert.Contains(t, err.Error(), "test.rs")

	tree, err := p.Parse(context.Background(), "test.rs", []byte("fn f() {}"))
	require.NoError(t, err, "parser stays usable after a canceled parse")
	tree.Close()
}
