package analyzer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cacheoverflow/rnbindgen/ast"
)

func analyze(t *testing.T, src string) *ast.File {
	t.Helper()
	f, diags := analyzeWithDiags(t, src)
	require.Empty(t, diags)
	return f
}

func analyzeWithDiags(t *testing.T, src string) (*ast.File, []string) {
	t.Helper()
	p := newParser(t)
	f, diags, err := AnalyzeSource(context.Background(), p, "lib.rs", []byte(src), ast.ParsePath("crate::geo"))
	require.NoError(t, err)
	var msgs []string
	for _, d := range diags {
		msgs = append(msgs, d.String())
	}
	return f, msgs
}

func TestAnalyzeStruct(t *testing.T) {
	f := analyze(t, `
#[derive(Debug)]
#[jni_export(class = "com.app.Point", note = "x")]
pub struct Point {
    pub x: i32,
    y: Vec< i32 >,
}
`)

	require.Len(t, f.Structs, 1)
	s := f.Structs[0]
	assert.Equal(t, "Point", s.Name)
	assert.Equal(t, ast.Params{{Name: "x", Type: "i32"}, {Name: "y", Type: "Vec<i32>"}}, s.Fields)
	require.Len(t, s.Attributes, 2)
	assert.Equal(t, "derive", s.Attributes[0].Name)
	assert.Empty(t, s.Attributes[0].Args, "derive(Debug) has no key = value groups")
	assert.Equal(t, ast.Attribute{Name: "jni_export", Args: []ast.Arg{
		{Key: "class", Value: "com.app.Point"},
		{Key: "note", Value: "x"},
	}}, s.Attributes[1])
	assert.Equal(t, "crate::geo", f.ModulePath.String())
	assert.Equal(t, 4, s.Line)
}

func TestAnalyzeTupleAndUnitStructs(t *testing.T) {
	f := analyze(t, "pub struct Meters(pub f64, i32);\npub struct Marker;\n")

	require.Len(t, f.Structs, 2)
	assert.Equal(t, ast.Params{{Name: "_0", Type: "f64"}, {Name: "_1", Type: "i32"}}, f.Structs[0].Fields)
	assert.Equal(t, "Marker", f.Structs[1].Name)
	assert.Empty(t, f.Structs[1].Fields)
}

func TestAnalyzeFunction(t *testing.T) {
	f := analyze(t, `
#[jni_export(class = "com.app.Math")]
pub fn add(mut a: i32, b: &'a str) -> Option< Point > { a }

fn nothing() {}
`)

	require.Len(t, f.Functions, 2)
	add := f.Functions[0]
	assert.Equal(t, "add", add.Name)
	assert.Equal(t, ast.Params{{Name: "a", Type: "i32"}, {Name: "b", Type: "&'a str"}}, add.Params)
	assert.Equal(t, "Option<Point>", add.ReturnType)
	require.Len(t, add.Attributes, 1)

	nothing := f.Functions[1]
	assert.False(t, nothing.HasReturn())
	assert.Empty(t, nothing.Attributes)
	assert.Empty(t, nothing.Params)
}

func TestAttributesDoNotLeakAcrossItems(t *testing.T) {
	f := analyze(t, `
#[jni_export(class = "com.app.Color")]
enum Color { Red }

pub struct Plain { a: i32 }

#[jni_export(class = "com.app.X")]
impl Plain {}

#[inline]
const C: i32 = 1;

fn free() {}
`)

	require.Len(t, f.Structs, 1)
	assert.Empty(t, f.Structs[0].Attributes)
	require.Len(t, f.Functions, 1)
	assert.Empty(t, f.Functions[0].Attributes)
}

func TestCommentsKeepPendingAttributes(t *testing.T) {
	f := analyze(t, `
#[jni_export(class = "com.app.P")]
// a comment between attribute and item
/* and another */
struct P { a: i32 }
`)
	require.Len(t, f.Structs, 1)
	require.Len(t, f.Structs[0].Attributes, 1)
}

func TestAttributeArgumentGroups(t *testing.T) {
	f := analyze(t, `
#[jni_export(class = "com.app.A", flag, a = b = c, other = 3, path = x::y)]
struct A;
`)
	require.Len(t, f.Structs, 1)
	attr := f.Structs[0].Attributes[0]
	assert.Equal(t, []ast.Arg{{Key: "class", Value: "com.app.A"}, {Key: "other", Value: "3"}}, attr.Args)
}

func TestAnalyzeImports(t *testing.T) {
	f := analyze(t, `
use crate::geo::Point;
use std::collections::{HashMap, hash_map::Entry};
use super::shapes::{self, Circle as Round};
use other::prelude::*;
use ::abs::Thing;
`)

	assert.Equal(t, []string{
		"crate::geo::Point",
		"std::collections::HashMap",
		"std::collections::hash_map::Entry",
		"super::shapes",
		"super::shapes::Circle",
		"other::prelude::*",
		"abs::Thing",
	}, f.Imports)
	assert.Equal(t, map[string]string{"Round": "super::shapes::Circle"}, f.Aliases)
}

func TestInlineModuleBodiesAreWalked(t *testing.T) {
	f := analyze(t, `
#[cfg(test)]
mod inner {
    #[jni_export(class = "com.app.Inner")]
    pub struct Inner { v: f64 }
    use crate::x::Y;
}
mod declared;
`)
	require.Len(t, f.Structs, 1)
	assert.Equal(t, "Inner", f.Structs[0].Name)
	require.Len(t, f.Structs[0].Attributes, 1)
	assert.Equal(t, "jni_export", f.Structs[0].Attributes[0].Name)
	assert.Equal(t, []string{"crate::x::Y"}, f.Imports)
}

func TestSelfParametersSkipped(t *testing.T) {
	f := analyze(t, "fn method(&self, x: u8) {}\n")
	require.Len(t, f.Functions, 1)
	assert.Equal(t, ast.Params{{Name: "x", Type: "u8"}}, f.Functions[0].Params)
}

func TestSyntaxErrorsAreDiagnostics(t *testing.T) {
	f, diags := analyzeWithDiags(t, "pub struct Good { a: i32 }\nfn broken( {")
	assert.NotEmpty(t, diags)
	require.NotEmpty(t, f.Structs)
	assert.Equal(t, "Good", f.Structs[0].Name)
}

func TestSquash(t *testing.T) {
	tests := map[string]string{
		"Vec< i32 >":      "Vec<i32>",
		"&'a  str":        "&'a str",
		"dyn \n Trait":    "dyn Trait",
		"crate :: a :: B": "crate::a::B",
		"HashMap<K , V>":  "HashMap<K,V>",
		"  i32  ":         "i32",
	}
	for in, want := range tests {
		assert.Equal(t, want, squash(in), in)
	}
}
