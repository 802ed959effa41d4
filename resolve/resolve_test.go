package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cacheoverflow/rnbindgen/ast"
	"github.com/cacheoverflow/rnbindgen/typemap"
)

func fixture() *ast.Analysis {
	geo := &ast.File{
		Path:       "src/geo/mod.rs",
		ModulePath: ast.ParsePath("crate::geo"),
		Structs: []*ast.Struct{
			{Name: "Point", Fields: ast.Params{{Name: "x", Type: "i32"}, {Name: "y", Type: "i32"}}},
			{Name: "Line", Fields: ast.Params{{Name: "a", Type: "Point"}, {Name: "b", Type: "Point"}}},
		},
	}
	shapes := &ast.File{
		Path:       "src/geo/shapes.rs",
		ModulePath: ast.ParsePath("crate::geo::shapes"),
		Imports:    []string{"crate::geo::Point", "super::Line", "std::collections::HashMap"},
		Aliases:    map[string]string{"Segment": "super::Line"},
		Functions: []*ast.Function{
			{Name: "origin", ReturnType: "Point"},
			{Name: "len", Params: ast.Params{{Name: "l", Type: "Line"}, {Name: "s", Type: "Segment"}}, ReturnType: "f64"},
			{Name: "unknown", Params: ast.Params{{Name: "c", Type: "Circle"}, {Name: "v", Type: "Vec<Point>"}}},
			{Name: "local", Params: ast.Params{{Name: "me", Type: "self::Here"}, {Name: "j", Type: "jni::objects::jint"}}},
		},
	}
	lib := &ast.File{
		Path:       "src/lib.rs",
		ModulePath: ast.Path{"crate"},
		Structs:    []*ast.Struct{{Name: "Root", Fields: ast.Params{{Name: "inner", Type: "Root"}}}},
	}
	return &ast.Analysis{Projects: []*ast.Project{{Name: "geo-core", Files: []*ast.File{geo, shapes, lib}}}}
}

func TestRenameStructs(t *testing.T) {
	a := fixture()
	n := RenameStructs(a)

	files := a.Projects[0].Files
	assert.Equal(t, "geo::Point", files[0].Structs[0].Name)
	assert.Equal(t, "geo::Line", files[0].Structs[1].Name)
	assert.Equal(t, "Root", files[2].Structs[0].Name, "root module adds no prefix")
	assert.Equal(t, 2, n)

	typ, _ := files[0].Structs[1].Fields.Get("a")
	assert.Equal(t, "Point", typ, "field types are untouched")

	assert.Zero(t, RenameStructs(a), "qualified names are skipped")
	assert.Equal(t, "geo::Point", files[0].Structs[0].Name)
}

func TestRenameIndependentOfFields(t *testing.T) {
	for _, fields := range []ast.Params{nil, {{Name: "a", Type: "X"}}, {{Name: "a", Type: "b::C"}, {Name: "d", Type: "i32"}}} {
		a := &ast.Analysis{Projects: []*ast.Project{{Name: "p", Files: []*ast.File{{
			ModulePath: ast.ParsePath("crate::m::n"),
			Structs:    []*ast.Struct{{Name: "S", Fields: fields}},
		}}}}}
		RenameStructs(a)
		assert.Equal(t, "m::n::S", a.Projects[0].Files[0].Structs[0].Name)
	}
}

func TestRun(t *testing.T) {
	a := fixture()
	r, err := Run(a, typemap.New())
	require.NoError(t, err)

	files := a.Projects[0].Files
	geo, shapes, lib := files[0], files[1], files[2]

	x, _ := geo.Structs[0].Fields.Get("x")
	assert.Equal(t, "i32", x, "primitives stay")
	la, _ := geo.Structs[1].Fields.Get("a")
	assert.Equal(t, "geo_core::geo::Point", la, "local struct defaults to own module")

	origin, length, unknown, local := shapes.Functions[0], shapes.Functions[1], shapes.Functions[2], shapes.Functions[3]
	assert.Equal(t, "geo_core::geo::Point", origin.ReturnType, "crate import rebased onto project")
	l, _ := length.Params.Get("l")
	assert.Equal(t, "geo_core::geo::Line", l, "super import resolved against module")
	s, _ := length.Params.Get("s")
	assert.Equal(t, "geo_core::geo::Line", s, "alias consulted")
	assert.Equal(t, "f64", length.ReturnType)

	c, _ := unknown.Params.Get("c")
	assert.Equal(t, "geo_core::geo::shapes::Circle", c)
	v, _ := unknown.Params.Get("v")
	assert.Equal(t, "Vec<Point>", v)

	me, _ := local.Params.Get("me")
	assert.Equal(t, "geo_core::geo::shapes::Here", me)
	j, _ := local.Params.Get("j")
	assert.Equal(t, "jni::objects::jint", j)

	inner, _ := lib.Structs[0].Fields.Get("inner")
	assert.Equal(t, "geo_core::Root", inner)
	assert.Equal(t, "geo_core::Root", StructSymbol(a.Projects[0], lib.Structs[0]))

	sym := FunctionSymbol(a.Projects[0], shapes, unknown)
	assert.Equal(t, "geo_core::geo::shapes::unknown", sym)
	var types []string
	for _, u := range r.UnresolvedFor(sym) {
		types = append(types, u.Type)
	}
	assert.ElementsMatch(t, []string{"Circle", "Vec<Point>"}, types)
	assert.Empty(t, r.UnresolvedFor("geo_core::geo::Line"), "Point is declared next to Line")
	assert.Equal(t, 2, r.Renamed)
}

func TestCanonicalizationIdempotent(t *testing.T) {
	a := fixture()
	m := typemap.New()
	_, err := Run(a, m)
	require.NoError(t, err)

	snapshot := func() []string {
		var out []string
		for _, f := range a.Projects[0].Files {
			for _, s := range f.Structs {
				out = append(out, s.Name)
				for _, p := range s.Fields {
					out = append(out, p.Type)
				}
			}
			for _, fn := range f.Functions {
				for _, p := range fn.Params {
					out = append(out, p.Type)
				}
				out = append(out, fn.ReturnType)
			}
		}
		return out
	}
	before := snapshot()
	_, err = Run(a, m)
	require.NoError(t, err)
	assert.Equal(t, before, snapshot())
}

func TestCanonical(t *testing.T) {
	p := &ast.Project{Name: "app"}
	f := &ast.File{ModulePath: ast.ParsePath("crate::a::b"), Imports: []string{"other::X"}}
	m := typemap.New()

	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"String", "String", true},
		{"X", "other::X", true},
		{"other::Y", "other::Y", true},
		{"crate::c::D", "app::c::D", true},
		{"super::super::E", "app::E", true},
		{"super::super::super::F", "app::F", true},
		{"app::already::G", "app::already::G", true},
		{"Missing", "app::a::b::Missing", false},
		{"&str", "&str", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Canonical(m, p, f, tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestRunRequiresInputs(t *testing.T) {
	_, err := Run(nil, typemap.New())
	assert.Error(t, err)
}
