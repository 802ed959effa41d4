// Package typemap maps canonical Rust type names to Java type names.
//
// A Mapper starts out seeded with the scalar and string correspondences
// (including the JNI aliases) and is extended with one entry per exported
// struct before any code is emitted. Each generation run owns its Mapper.
package typemap

import (
	"fmt"
	"sort"
	"strings"
)

// Void is the pseudo type passed through Map unchanged.
const Void = "void"

// Entry is one registered correspondence.
type Entry struct {
	Source    string
	Target    string
	Primitive bool
}

// NoMappingError is returned by Map for unregistered source types.
type NoMappingError struct {
	Type string
}

func (e *NoMappingError) Error() string {
	return fmt.Sprintf("no mapping found for %s", e.Type)
}

// Mapper is a first-write-wins registry of type correspondences.
// It is not safe for concurrent writes.
type Mapper struct {
	entries map[string]Entry
	order   []string
}

var seed = []struct{ source, target string }{
	{"String", "String"},
	{"i32", "int"},
	{"i64", "long"},
	{"i8", "byte"},
	{"u8", "boolean"},
	{"u16", "char"},
	{"i16", "short"},
	{"f32", "float"},
	{"f64", "double"},
	{"bool", "boolean"},
}

var jniAliases = []struct{ source, target string }{
	{"jint", "int"},
	{"jlong", "long"},
	{"jbyte", "byte"},
	{"jboolean", "boolean"},
	{"jchar", "char"},
	{"jshort", "short"},
	{"jfloat", "float"},
	{"jdouble", "double"},
	{"jsize", "int"},
	{"jstring", "String"},
}

// New returns a Mapper holding the primitive correspondences.
func New() *Mapper {
	m := &Mapper{entries: make(map[string]Entry)}
	for _, s := range seed {
		m.RegisterIfAbsent(s.source, s.target, true)
	}
	for _, prefix := range []string{"", "jni::objects::", "jni::sys::"} {
		for _, a := range jniAliases {
			m.RegisterIfAbsent(prefix+a.source, a.target, true)
		}
	}
	return m
}

// RegisterIfAbsent records source -> target unless source is already
// registered. Double quotes are stripped from target. It reports whether
// the entry was added.
func (m *Mapper) RegisterIfAbsent(source, target string, primitive bool) bool {
	if _, ok := m.entries[source]; ok {
		return false
	}
	m.entries[source] = Entry{
		Source:    source,
		Target:    strings.ReplaceAll(target, `"`, ""),
		Primitive: primitive,
	}
	m.order = append(m.order, source)
	return true
}

// Map returns the Java type for source.
func (m *Mapper) Map(source string) (string, error) {
	if source == Void {
		return source, nil
	}
	e, ok := m.entries[source]
	if !ok {
		return "", &NoMappingError{Type: source}
	}
	return e.Target, nil
}

// Lookup returns the entry registered for source.
func (m *Mapper) Lookup(source string) (Entry, bool) {
	e, ok := m.entries[source]
	return e, ok
}

// IsPrimitiveSource reports whether source is registered as primitive.
func (m *Mapper) IsPrimitiveSource(source string) bool {
	return m.entries[source].Primitive
}

// IsPrimitiveTarget reports whether the first entry registered with target
// as its Java type is primitive.
func (m *Mapper) IsPrimitiveTarget(target string) bool {
	for _, src := range m.order {
		if e := m.entries[src]; e.Target == target {
			return e.Primitive
		}
	}
	return false
}

// Entries returns every entry sorted by source type.
func (m *Mapper) Entries() []Entry {
	out := make([]Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Source < out[j].Source })
	return out
}

// Len returns the number of entries.
func (m *Mapper) Len() int { return len(m.entries) }
