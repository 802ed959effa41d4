// Package ast holds the structured model extracted from Rust sources:
// attributes, functions, structs, files and projects.
//
// Values are produced once per analysis run by the analyzer and are only
// rewritten afterwards by the canonicalization passes in package resolve.
package ast

import "slices"

// Param is one entry of an ordered name -> type mapping.
type Param struct {
	Name string
	Type string
}

// Params is an ordered name -> type mapping. Order mirrors declaration
// order and drives the order of generated parameters and call arguments.
type Params []Param

// Get returns the type registered for name.
func (ps Params) Get(name string) (string, bool) {
	for _, p := range ps {
		if p.Name == name {
			return p.Type, true
		}
	}
	return "", false
}

// Set replaces the type of an existing entry in place, or appends a new one.
func (ps *Params) Set(name, typ string) {
	for i := range *ps {
		if (*ps)[i].Name == name {
			(*ps)[i].Type = typ
			return
		}
	}
	*ps = append(*ps, Param{Name: name, Type: typ})
}

// Names returns the names in order.
func (ps Params) Names() []string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name
	}
	return names
}

// Clone returns an independent copy.
func (ps Params) Clone() Params { return slices.Clone(ps) }

// Arg is one key = value argument of an attribute.
type Arg struct {
	Key   string
	Value string
}

// Attribute is a decoration such as #[jni_export(class = "com.app.Point")]
// attached to the function or struct that follows it.
type Attribute struct {
	Name string
	Args []Arg
}

// Arg returns the value of the argument named key.
func (a Attribute) Arg(key string) (string, bool) {
	for _, arg := range a.Args {
		if arg.Key == key {
			return arg.Value, true
		}
	}
	return "", false
}

// FindAttribute returns the first attribute called name.
func FindAttribute(attrs []Attribute, name string) (Attribute, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// Function is a free function declaration.
type Function struct {
	Attributes []Attribute
	Name       string
	Params     Params
	ReturnType string // empty when the function returns nothing
	Line       int
}

// HasReturn reports whether the function declares a return type.
func (f *Function) HasReturn() bool { return f.ReturnType != "" }

// Struct is a struct declaration. Tuple struct fields are named _0, _1, ...
type Struct struct {
	Attributes []Attribute
	Name       string
	Fields     Params
	Line       int
}

// File is the per-file model: its module path and the declarations and
// imports found in it.
type File struct {
	Path       string // source file on disk
	ModulePath Path   // e.g. crate::geo
	Functions  []*Function
	Structs    []*Struct
	Imports    []string
	Aliases    map[string]string // `use a::X as Y` -> Y: a::X
}

// DeclaresStruct reports whether the file itself declares a struct named
// name (before or after canonicalization).
func (f *File) DeclaresStruct(name string) bool {
	local := f.ModulePath.StripRoot().Append(name).String()
	for _, s := range f.Structs {
		if s.Name == name || s.Name == local {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the file.
func (f *File) Clone() *File {
	out := &File{
		Path:       f.Path,
		ModulePath: f.ModulePath.Append(),
		Imports:    slices.Clone(f.Imports),
	}
	if f.Aliases != nil {
		out.Aliases = make(map[string]string, len(f.Aliases))
		for k, v := range f.Aliases {
			out.Aliases[k] = v
		}
	}
	for _, fn := range f.Functions {
		c := *fn
		c.Attributes = cloneAttributes(fn.Attributes)
		c.Params = fn.Params.Clone()
		out.Functions = append(out.Functions, &c)
	}
	for _, st := range f.Structs {
		c := *st
		c.Attributes = cloneAttributes(st.Attributes)
		c.Fields = st.Fields.Clone()
		out.Structs = append(out.Structs, &c)
	}
	return out
}

func cloneAttributes(attrs []Attribute) []Attribute {
	if attrs == nil {
		return nil
	}
	out := make([]Attribute, len(attrs))
	for i, a := range attrs {
		out[i] = Attribute{Name: a.Name, Args: slices.Clone(a.Args)}
	}
	return out
}

// Project is one analyzed Cargo package.
type Project struct {
	Name         string // package.name from Cargo.toml
	Dir          string
	Files        []*File
	Dependencies []string
}

// CrateName returns the project name as it appears in Rust paths.
func (p *Project) CrateName() string { return CrateName(p.Name) }

// HasDependency reports whether the manifest declares a dependency whose
// crate name is name.
func (p *Project) HasDependency(name string) bool {
	for _, d := range p.Dependencies {
		if CrateName(d) == name {
			return true
		}
	}
	return false
}

// Analysis is the global result over every analyzed project.
type Analysis struct {
	Projects []*Project
}

// Project returns the project whose crate name is name.
func (a *Analysis) Project(name string) (*Project, bool) {
	for _, p := range a.Projects {
		if p.CrateName() == CrateName(name) {
			return p, true
		}
	}
	return nil, false
}
