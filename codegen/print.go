package codegen

import (
	"fmt"
	"strings"
)

const indentUnit = "    "

// Print serializes a class model to Java source.
func Print(c ClassModel) string {
	p := &printer{}
	p.printClass(c)
	return p.sb.String()
}

type printer struct {
	sb     strings.Builder
	indent int
}

func (p *printer) line(format string, args ...any) {
	p.writeIndent()
	fmt.Fprintf(&p.sb, format, args...)
	p.sb.WriteByte('\n')
}

func (p *printer) blank() {
	p.sb.WriteByte('\n')
}

func (p *printer) writeIndent() {
	for range p.indent {
		p.sb.WriteString(indentUnit)
	}
}

func (p *printer) printClass(c ClassModel) {
	if pkg := c.Package(); pkg != "" {
		p.line("package %s;", pkg)
		p.blank()
	}

	header := withModifiers(c.Modifiers, "class "+c.SimpleName())
	if c.SuperType != "" {
		header += " extends " + c.SuperType
	}
	if len(c.Interfaces) > 0 {
		header += " implements " + strings.Join(c.Interfaces, ", ")
	}
	p.line("%s {", header)
	p.blank()

	p.indent++
	for _, f := range c.Fields {
		p.line("%s;", withModifiers(f.Modifiers, f.Type+" "+f.Name))
		p.blank()
	}
	for _, m := range c.Methods {
		p.printMethod(m)
	}
	p.indent--
	p.line("}")
}

func (p *printer) printMethod(m MethodModel) {
	for _, a := range m.Annotations {
		p.line("@%s", a)
	}

	params := make([]string, len(m.Params))
	for i, prm := range m.Params {
		params[i] = prm.Type + " " + prm.Name
	}
	sig := m.Name + "(" + strings.Join(params, ", ") + ")"
	if !m.Constructor {
		ret := m.ReturnType
		if ret == "" {
			ret = "void"
		}
		sig = ret + " " + sig
	}
	sig = withModifiers(m.Modifiers, sig)

	if m.Modifiers.Has(Native) {
		p.line("%s;", sig)
		p.blank()
		return
	}

	p.line("%s {", sig)
	p.indent++
	for _, stmt := range m.Body {
		p.line("%s;", Render(stmt))
	}
	p.indent--
	p.line("}")
	p.blank()
}

func withModifiers(m Modifier, rest string) string {
	if kw := m.String(); kw != "" {
		return kw + " " + rest
	}
	return rest
}
