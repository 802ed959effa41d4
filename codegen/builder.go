package codegen

import (
	"fmt"

	"github.com/cacheoverflow/rnbindgen/diag"
)

type scope int

const (
	classScope scope = iota
	methodScope
)

func (s scope) String() string {
	if s == classScope {
		return "class"
	}
	return "method"
}

// emitter is the state a class builder shares with its method builders:
// the model under construction and the stack of open scopes.
type emitter struct {
	model  ClassModel
	scopes []scope
	err    error
}

func (e *emitter) push(s scope) { e.scopes = append(e.scopes, s) }

func (e *emitter) top() (scope, bool) {
	if len(e.scopes) == 0 {
		return 0, false
	}
	return e.scopes[len(e.scopes)-1], true
}

// pop closes the innermost scope, which must be want.
func (e *emitter) pop(want scope) error {
	got, ok := e.top()
	if !ok {
		return e.fail("", fmt.Sprintf("no open scope, expected %s", want))
	}
	if got != want {
		return e.fail(got.String(), fmt.Sprintf("expected scope %s", want))
	}
	e.scopes = e.scopes[:len(e.scopes)-1]
	return nil
}

// expect checks that the innermost scope is want without closing it.
func (e *emitter) expect(want scope) error {
	got, ok := e.top()
	if !ok {
		return e.fail("", fmt.Sprintf("no open scope, expected %s", want))
	}
	if got != want {
		return e.fail(got.String(), fmt.Sprintf("expected scope %s", want))
	}
	return nil
}

func (e *emitter) fail(scope, msg string) error {
	err := &diag.EmissionError{Class: e.model.QualifiedName, Scope: scope, Msg: msg}
	if e.err == nil {
		e.err = err
	}
	return err
}

// ClassBuilder assembles one class.
type ClassBuilder struct {
	e *emitter
}

// NewClass opens a class. qualifiedName may carry a package prefix; an
// empty superType means no extends clause.
func NewClass(mods Modifier, qualifiedName, superType string, interfaces []string) *ClassBuilder {
	e := &emitter{model: ClassModel{
		QualifiedName: qualifiedName,
		Modifiers:     mods,
		SuperType:     superType,
		Interfaces:    interfaces,
	}}
	e.push(classScope)
	return &ClassBuilder{e: e}
}

// Name returns the qualified class name.
func (c *ClassBuilder) Name() string { return c.e.model.QualifiedName }

// AddField declares a field. A field added while a method is open is
// reported by Build.
func (c *ClassBuilder) AddField(mods Modifier, name, typ string) {
	if c.e.expect(classScope) != nil {
		return
	}
	c.e.model.Fields = append(c.e.model.Fields, FieldModel{Modifiers: mods, Name: name, Type: typ})
}

// AddMethod opens a method. Native methods have no body and open no scope.
func (c *ClassBuilder) AddMethod(mods Modifier, name string, params []Param, returnType string, annotations ...string) (*MethodBuilder, error) {
	return c.open(MethodModel{
		Modifiers:   mods,
		Name:        name,
		Params:      params,
		ReturnType:  returnType,
		Annotations: annotations,
	})
}

// AddConstructor opens a constructor.
func (c *ClassBuilder) AddConstructor(mods Modifier, params []Param) (*MethodBuilder, error) {
	return c.open(MethodModel{
		Modifiers:   mods,
		Name:        c.e.model.SimpleName(),
		Params:      params,
		Constructor: true,
	})
}

func (c *ClassBuilder) open(m MethodModel) (*MethodBuilder, error) {
	if err := c.e.expect(classScope); err != nil {
		return nil, err
	}
	if !m.Modifiers.Has(Native) {
		c.e.push(methodScope)
	}
	return &MethodBuilder{e: c.e, m: m}, nil
}

// Build closes the class and renders it. Every method must have been
// built before.
func (c *ClassBuilder) Build() (string, error) {
	if c.e.err != nil {
		return "", c.e.err
	}
	if err := c.e.pop(classScope); err != nil {
		return "", err
	}
	if len(c.e.scopes) != 0 {
		top, _ := c.e.top()
		return "", c.e.fail(top.String(), "unbalanced scope stack")
	}
	return Print(c.e.model), nil
}

// Model returns a copy of the model built so far.
func (c *ClassBuilder) Model() ClassModel {
	m := c.e.model
	m.Fields = append([]FieldModel(nil), m.Fields...)
	m.Methods = append([]MethodModel(nil), m.Methods...)
	return m
}

// MethodBuilder fills the body of one method.
type MethodBuilder struct {
	e     *emitter
	m     MethodModel
	built bool
}

// AddStatement appends a statement to the body.
func (b *MethodBuilder) AddStatement(stmt Expr) *MethodBuilder {
	if b.m.Modifiers.Has(Native) {
		b.e.fail("", fmt.Sprintf("native method %s cannot have a body", b.m.Name))
		return b
	}
	b.m.Body = append(b.m.Body, stmt)
	return b
}

// Build appends the method to its class and closes its scope.
func (b *MethodBuilder) Build() error {
	if b.built {
		return b.e.fail("", fmt.Sprintf("method %s was already built", b.m.Name))
	}
	if !b.m.Modifiers.Has(Native) {
		if err := b.e.pop(methodScope); err != nil {
			return err
		}
	}
	b.built = true
	b.e.model.Methods = append(b.e.model.Methods, b.m)
	return nil
}
