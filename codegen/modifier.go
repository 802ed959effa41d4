package codegen

import "strings"

// Modifier is a set of Java modifiers.
type Modifier uint8

const (
	Package Modifier = 1 << iota // package-private; suppresses access keywords
	Public
	Private
	Protected
	Static
	Native
	Final
)

// Has reports whether every bit of o is set in m.
func (m Modifier) Has(o Modifier) bool { return m&o == o }

// String renders the keywords in Java order. Only one access keyword is
// written, preferring public over private over protected.
func (m Modifier) String() string {
	var kw []string
	if !m.Has(Package) {
		switch {
		case m.Has(Public):
			kw = append(kw, "public")
		case m.Has(Private):
			kw = append(kw, "private")
		case m.Has(Protected):
			kw = append(kw, "protected")
		}
	}
	if m.Has(Static) {
		kw = append(kw, "static")
	}
	if m.Has(Final) {
		kw = append(kw, "final")
	}
	if m.Has(Native) {
		kw = append(kw, "native")
	}
	return strings.Join(kw, " ")
}
