package bindgen

import (
	"unicode"

	"github.com/cacheoverflow/rnbindgen/ast"
	"github.com/cacheoverflow/rnbindgen/codegen"
	"github.com/cacheoverflow/rnbindgen/resolve"
	"github.com/cacheoverflow/rnbindgen/typemap"
)

// React Native bridge types referenced by generated code.
const (
	ReadableMap       = "com.facebook.react.bridge.ReadableMap"
	WritableMap       = "com.facebook.react.bridge.WritableMap"
	WritableNativeMap = "com.facebook.react.bridge.WritableNativeMap"
)

type field struct {
	name      string
	target    string // Java type
	primitive bool
}

// wrappers emits one data-wrapper class per exported struct.
func (r *run) wrappers() error {
	n := 0
	for _, p := range r.a.Projects {
		for _, f := range p.Files {
			for _, s := range f.Structs {
				symbol := resolve.StructSymbol(p, s)
				class, exported, err := r.exportClass(symbol, s.Attributes)
				if err != nil {
					return err
				}
				if !exported {
					continue
				}
				if err := r.checkTypes(symbol); err != nil {
					return err
				}
				c, err := r.wrapper(symbol, class, s)
				if err != nil {
					return err
				}
				if err := r.add(c); err != nil {
					return err
				}
				log.Infof("Generated class %s from project %s", class, p.Name)
				n++
			}
		}
	}
	log.Infof("Generated %d classes as wrappers for Rust structs", n)
	return nil
}

func (r *run) wrapper(symbol, class string, s *ast.Struct) (*codegen.ClassBuilder, error) {
	fields := make([]field, 0, len(s.Fields))
	params := make([]codegen.Param, 0, len(s.Fields))
	for _, fd := range s.Fields {
		target, err := r.mapType(symbol, fd.Type)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field{
			name:      fd.Name,
			target:    target,
			primitive: r.m.IsPrimitiveSource(fd.Type),
		})
		params = append(params, codegen.Param{Name: fd.Name, Type: target})
	}

	c := codegen.NewClass(codegen.Public|codegen.Final, class, "", nil)
	for _, fd := range fields {
		c.AddField(codegen.Public, fd.name, fd.target)
	}

	ctor, err := c.AddConstructor(codegen.Public, params)
	if err != nil {
		return nil, err
	}
	for _, fd := range fields {
		ctor.AddStatement(codegen.Assign{
			Left:  codegen.Var{Name: fd.name, This: true},
			Right: codegen.Var{Name: fd.name},
		})
	}
	if err := ctor.Build(); err != nil {
		return nil, err
	}

	from, err := c.AddMethod(codegen.Public|codegen.Static, "fromMap",
		[]codegen.Param{{Name: "map", Type: ReadableMap}}, class)
	if err != nil {
		return nil, err
	}
	args := make([]codegen.Expr, len(fields))
	for i, fd := range fields {
		args[i] = readField(fd)
	}
	from.AddStatement(codegen.Return{Value: codegen.Call{Func: "new " + class, Args: args}})
	if err := from.Build(); err != nil {
		return nil, err
	}

	to, err := c.AddMethod(codegen.Public, "toMap", nil, WritableMap)
	if err != nil {
		return nil, err
	}
	to.AddStatement(codegen.Declare{
		Final: true,
		Type:  WritableMap,
		Name:  "map",
		Value: codegen.Call{Func: "new " + WritableNativeMap},
	})
	for _, fd := range fields {
		to.AddStatement(writeField(fd))
	}
	to.AddStatement(codegen.Return{Value: codegen.Var{Name: "map"}})
	if err := to.Build(); err != nil {
		return nil, err
	}

	for _, fd := range fields {
		set, err := c.AddMethod(codegen.Public, "set"+capitalize(fd.name),
			[]codegen.Param{{Name: fd.name, Type: fd.target}}, "")
		if err != nil {
			return nil, err
		}
		set.AddStatement(codegen.Assign{
			Left:  codegen.Var{Name: fd.name, This: true},
			Right: codegen.Var{Name: fd.name},
		})
		if err := set.Build(); err != nil {
			return nil, err
		}

		get, err := c.AddMethod(codegen.Public, "get"+capitalize(fd.name), nil, fd.target)
		if err != nil {
			return nil, err
		}
		get.AddStatement(codegen.Return{Value: codegen.Var{Name: fd.name, This: true}})
		if err := get.Build(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// readField is the fromMap argument for fd: a primitive accessor call or a
// nested wrapper's fromMap.
func readField(fd field) codegen.Expr {
	key := codegen.Value{V: fd.name}
	if !fd.primitive {
		return codegen.Call{
			Func: fd.target + ".fromMap",
			Args: codegen.Args(codegen.Call{Func: "map.getMap", Args: codegen.Args(key)}),
		}
	}
	acc, ok := typemap.Accessor(fd.target)
	if !ok {
		acc = typemap.MapAccessor{Getter: "get" + capitalize(fd.target)}
	}
	var e codegen.Expr = codegen.Call{Func: "map." + acc.Getter, Args: codegen.Args(key)}
	if acc.ReadCast != "" {
		e = codegen.Cast{Type: acc.ReadCast, Value: e}
	}
	return e
}

// writeField is the toMap statement storing fd.
func writeField(fd field) codegen.Expr {
	key := codegen.Value{V: fd.name}
	if !fd.primitive {
		return codegen.Call{
			Func: "map.putMap",
			Args: codegen.Args(key, codegen.Call{Func: "this." + fd.name + ".toMap"}),
		}
	}
	acc, ok := typemap.Accessor(fd.target)
	if !ok {
		acc = typemap.MapAccessor{Putter: "put" + capitalize(fd.target)}
	}
	var v codegen.Expr = codegen.Var{Name: fd.name, This: true}
	if acc.WriteCast != "" {
		v = codegen.Cast{Type: acc.WriteCast, Value: v}
	}
	return codegen.Call{Func: "map." + acc.Putter, Args: codegen.Args(key, v)}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
