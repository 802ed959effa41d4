package codegen

import "strings"

// Param is one method parameter. Order is significant.
type Param struct {
	Name string
	Type string
}

// FieldModel is a field declaration.
type FieldModel struct {
	Modifiers Modifier
	Name      string
	Type      string
}

// MethodModel is a method or constructor.
type MethodModel struct {
	Modifiers   Modifier
	Name        string
	Params      []Param
	ReturnType  string // empty renders as void; ignored for constructors
	Annotations []string
	Body        []Expr
	Constructor bool
}

// ClassModel is a complete generated class.
type ClassModel struct {
	QualifiedName string
	Modifiers     Modifier
	SuperType     string
	Interfaces    []string
	Fields        []FieldModel
	Methods       []MethodModel
}

// Package returns the namespace part of the qualified name.
func (c ClassModel) Package() string {
	pkg, _ := splitName(c.QualifiedName)
	return pkg
}

// SimpleName returns the class name without its namespace.
func (c ClassModel) SimpleName() string {
	_, name := splitName(c.QualifiedName)
	return name
}

// Method returns the first method called name.
func (c ClassModel) Method(name string) (MethodModel, bool) {
	for _, m := range c.Methods {
		if m.Name == name && !m.Constructor {
			return m, true
		}
	}
	return MethodModel{}, false
}

// Constructors returns the constructors in declaration order.
func (c ClassModel) Constructors() []MethodModel {
	var out []MethodModel
	for _, m := range c.Methods {
		if m.Constructor {
			out = append(out, m)
		}
	}
	return out
}

func splitName(qualified string) (pkg, name string) {
	i := strings.LastIndexByte(qualified, '.')
	if i < 0 {
		return "", qualified
	}
	return qualified[:i], qualified[i+1:]
}

// SimpleName returns the last dot separated segment of a qualified name.
func SimpleName(qualified string) string {
	_, name := splitName(qualified)
	return name
}
