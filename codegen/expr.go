// Package codegen builds Java classes from a small expression tree and
// prints them as source text.
//
// ClassBuilder and MethodBuilder fill a ClassModel while checking that
// scopes open and close in order; Print serializes the finished model.
package codegen

// Expr is a Java expression or statement rendered on a single line.
type Expr interface{ javaExpr() }

// Value is a literal. Strings are quoted, nil renders as null and other
// values use their default formatting.
type Value struct {
	V any
}

func (Value) javaExpr() {}

// Var references a variable, as this.Name when This is set.
type Var struct {
	Name string
	This bool
}

func (Var) javaExpr() {}

// Call is Func(Args...)Suffix. Suffix allows chaining, e.g. ".toMap()".
type Call struct {
	Func   string
	Args   []Expr
	Suffix string
}

func (Call) javaExpr() {}

// Assign is Left = Right.
type Assign struct {
	Left  Expr
	Right Expr
}

func (Assign) javaExpr() {}

// Return is `return Value`, or a bare return when Value is nil.
type Return struct {
	Value Expr
}

func (Return) javaExpr() {}

// Cast is (Type) Value.
type Cast struct {
	Type  string
	Value Expr
}

func (Cast) javaExpr() {}

// Declare introduces a local variable: [final] Type Name = Value.
type Declare struct {
	Final bool
	Type  string
	Name  string
	Value Expr
}

func (Declare) javaExpr() {}

// Args is shorthand for building argument lists.
func Args(e ...Expr) []Expr { return e }
