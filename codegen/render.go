package codegen

import (
	"fmt"
	"strings"
)

// Render returns the single-line Java text of e, without terminator.
func Render(e Expr) string {
	switch ex := e.(type) {
	case Value:
		return literal(ex.V)
	case Var:
		if ex.This {
			return "this." + ex.Name
		}
		return ex.Name
	case Call:
		args := make([]string, len(ex.Args))
		for i, a := range ex.Args {
			args[i] = Render(a)
		}
		return fmt.Sprintf("%s(%s)%s", ex.Func, strings.Join(args, ", "), ex.Suffix)
	case Assign:
		return fmt.Sprintf("%s = %s", Render(ex.Left), Render(ex.Right))
	case Return:
		if ex.Value == nil {
			return "return"
		}
		return "return " + Render(ex.Value)
	case Cast:
		return fmt.Sprintf("(%s) %s", ex.Type, Render(ex.Value))
	case Declare:
		s := ex.Type + " " + ex.Name
		if ex.Final {
			s = "final " + s
		}
		if ex.Value != nil {
			s += " = " + Render(ex.Value)
		}
		return s
	case nil:
		return "null"
	default:
		return "<unknown expr>"
	}
}

func literal(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return quote(x)
	default:
		return fmt.Sprint(x)
	}
}

// quote produces a Java string literal.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
