package codegen

import (
	"errors"
	"testing"

	"github.com/cacheoverflow/rnbindgen/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{"string", Value{V: "a\"b\\c\n"}, `"a\"b\\c\n"`},
		{"control", Value{V: "\x01"}, `"\u0001"`},
		{"int", Value{V: 42}, "42"},
		{"bool", Value{V: true}, "true"},
		{"nil value", Value{}, "null"},
		{"nil expr", nil, "null"},
		{"var", Var{Name: "x"}, "x"},
		{"field", Var{Name: "x", This: true}, "this.x"},
		{"call", Call{Func: "map.getInt", Args: Args(Value{V: "x"})}, `map.getInt("x")`},
		{"call suffix", Call{Func: "this.p.toMap", Suffix: ".size()"}, "this.p.toMap().size()"},
		{"assign", Assign{Left: Var{Name: "x", This: true}, Right: Var{Name: "x"}}, "this.x = x"},
		{"return", Return{Value: Var{Name: "x"}}, "return x"},
		{"bare return", Return{}, "return"},
		{"cast", Cast{Type: "long", Value: Call{Func: "map.getDouble", Args: Args(Value{V: "n"})}}, `(long) map.getDouble("n")`},
		{"declare", Declare{Final: true, Type: "int", Name: "n", Value: Value{V: 1}}, "final int n = 1"},
		{"declare bare", Declare{Type: "int", Name: "n"}, "int n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.expr))
		})
	}
}

func TestModifierString(t *testing.T) {
	assert.Equal(t, "", Modifier(0).String())
	assert.Equal(t, "public static native", (Public | Static | Native).String())
	assert.Equal(t, "public final", (Final | Public).String())
	assert.Equal(t, "public static final native", (Public | Static | Native | Final).String())
	assert.Equal(t, "static", (Package | Public | Static).String())
	assert.Equal(t, "private", (Private | Protected).String())
	assert.True(t, (Public | Static).Has(Static))
	assert.False(t, Public.Has(Public|Static))
}

func TestClassPrint(t *testing.T) {
	c := NewClass(Public|Final, "com.example.generated.Point", "", nil)
	c.AddField(Public, "x", "int")

	ctor, err := c.AddConstructor(Public, []Param{{Name: "x", Type: "int"}})
	require.NoError(t, err)
	ctor.AddStatement(Assign{Left: Var{Name: "x", This: true}, Right: Var{Name: "x"}})
	require.NoError(t, ctor.Build())

	get, err := c.AddMethod(Public, "getX", nil, "int")
	require.NoError(t, err)
	get.AddStatement(Return{Value: Var{Name: "x", This: true}})
	require.NoError(t, get.Build())

	native, err := c.AddMethod(Public|Static|Native, "len", []Param{{Name: "a", Type: "int"}, {Name: "b", Type: "String"}}, "")
	require.NoError(t, err)
	require.NoError(t, native.Build())

	src, err := c.Build()
	require.NoError(t, err)

	want := `package com.example.generated;

public final class Point {

    public int x;

    public Point(int x) {
        this.x = x;
    }

    public int getX() {
        return this.x;
    }

    public static native void len(int a, String b);

}
`
	assert.Equal(t, want, src)
}

func TestClassHeader(t *testing.T) {
	c := NewClass(Public, "Bare", "Base", []string{"A", "B"})
	m, err := c.AddMethod(Public, "run", nil, "", "Override")
	require.NoError(t, err)
	require.NoError(t, m.Build())

	src, err := c.Build()
	require.NoError(t, err)
	assert.Equal(t, "public class Bare extends Base implements A, B {\n\n    @Override\n    public void run() {\n    }\n\n}\n", src)
}

func TestModel(t *testing.T) {
	c := NewClass(Public, "a.b.C", "S", nil)
	c.AddField(Private, "f", "int")
	ctor, err := c.AddConstructor(Public, nil)
	require.NoError(t, err)
	require.NoError(t, ctor.Build())
	m, err := c.AddMethod(Public, "go", []Param{{Name: "p", Type: "int"}}, "int", "Ann")
	require.NoError(t, err)
	m.AddStatement(Return{Value: Var{Name: "p"}})
	require.NoError(t, m.Build())

	model := c.Model()
	assert.Equal(t, "a.b", model.Package())
	assert.Equal(t, "C", model.SimpleName())
	assert.Equal(t, "S", model.SuperType)
	require.Len(t, model.Fields, 1)
	require.Len(t, model.Constructors(), 1)
	assert.Equal(t, "C", model.Constructors()[0].Name)

	got, ok := model.Method("go")
	require.True(t, ok)
	assert.Equal(t, "int", got.ReturnType)
	assert.Equal(t, []string{"Ann"}, got.Annotations)
	assert.Len(t, got.Body, 1)

	_, ok = model.Method("missing")
	assert.False(t, ok)
	assert.Equal(t, "C", SimpleName("a.b.C"))
	assert.Equal(t, "C", SimpleName("C"))
}

func TestScopeErrors(t *testing.T) {
	t.Run("method inside method", func(t *testing.T) {
		c := NewClass(Public, "p.C", "", nil)
		_, err := c.AddMethod(Public, "outer", nil, "")
		require.NoError(t, err)

		_, err = c.AddMethod(Public, "inner", nil, "")
		var ee *diag.EmissionError
		require.True(t, errors.As(err, &ee))
		assert.Equal(t, "p.C", ee.Class)
		assert.Equal(t, "method", ee.Scope)
	})

	t.Run("unbuilt method", func(t *testing.T) {
		c := NewClass(Public, "p.C", "", nil)
		_, err := c.AddMethod(Public, "open", nil, "")
		require.NoError(t, err)

		_, err = c.Build()
		var ee *diag.EmissionError
		require.True(t, errors.As(err, &ee))
		assert.Equal(t, "method", ee.Scope)
	})

	t.Run("field inside method", func(t *testing.T) {
		c := NewClass(Public, "p.C", "", nil)
		m, err := c.AddMethod(Public, "open", nil, "")
		require.NoError(t, err)
		c.AddField(Public, "late", "int")
		require.NoError(t, m.Build())

		_, err = c.Build()
		require.Error(t, err)
	})

	t.Run("double build", func(t *testing.T) {
		c := NewClass(Public, "p.C", "", nil)
		m, err := c.AddMethod(Public, "once", nil, "")
		require.NoError(t, err)
		require.NoError(t, m.Build())
		assert.Error(t, m.Build())
	})

	t.Run("class built twice", func(t *testing.T) {
		c := NewClass(Public, "p.C", "", nil)
		_, err := c.Build()
		require.NoError(t, err)
		_, err = c.Build()
		assert.Error(t, err)
	})

	t.Run("statement on native", func(t *testing.T) {
		c := NewClass(Public, "p.C", "", nil)
		m, err := c.AddMethod(Public|Static|Native, "n", nil, "")
		require.NoError(t, err)
		m.AddStatement(Return{})
		require.NoError(t, m.Build())
		_, err = c.Build()
		assert.Error(t, err)
	})
}
