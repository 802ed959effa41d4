package ast

import "strings"

// Sep separates the segments of Rust paths and canonical names.
const Sep = "::"

// CrateRoot is the root marker segment of every module path.
const CrateRoot = "crate"

// Path is a `::` separated path kept as its ordered segments, e.g.
// crate::geo::Point is Path{"crate", "geo", "Point"}.
//
// Paths are values: every operation returns a fresh slice and never
// writes to the receiver's backing array.
type Path []string

// ParsePath splits s on "::". Surrounding whitespace and empty segments
// are dropped, so a leading "::" (Rust's absolute path marker) is ignored.
func ParsePath(s string) Path {
	var p Path
	for _, seg := range strings.Split(s, Sep) {
		seg = strings.TrimSpace(seg)
		if seg != "" {
			p = append(p, seg)
		}
	}
	return p
}

// String joins the segments with "::".
func (p Path) String() string { return strings.Join(p, Sep) }

// IsZero reports whether the path has no segments.
func (p Path) IsZero() bool { return len(p) == 0 }

// Append returns a new path with segs added to the end.
func (p Path) Append(segs ...string) Path {
	out := make(Path, 0, len(p)+len(segs))
	out = append(out, p...)
	for _, s := range segs {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Join returns p followed by q.
func (p Path) Join(q Path) Path { return p.Append(q...) }

// Root returns the first segment, or "" for an empty path.
func (p Path) Root() string {
	if len(p) == 0 {
		return ""
	}
	return p[0]
}

// Last returns the final segment, or "" for an empty path.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Parent returns the path without its last segment.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p.Append()[:len(p)-1]
}

// StripRoot drops a leading crate marker. Paths rooted elsewhere are
// returned unchanged.
func (p Path) StripRoot() Path {
	if p.Root() == CrateRoot {
		return p.Append()[1:]
	}
	return p.Append()
}

// HasPrefix reports whether q is a leading sub-path of p.
func (p Path) HasPrefix(q Path) bool {
	if len(q) > len(p) {
		return false
	}
	return p[:len(q)].Equal(q)
}

// Equal compares segment-wise.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// IsQualified reports whether a type or name string already carries a path.
func IsQualified(s string) bool { return strings.Contains(s, Sep) }

// CrateName converts a Cargo package name to the identifier Rust uses for it
// in paths (hyphens become underscores).
func CrateName(pkg string) string { return strings.ReplaceAll(pkg, "-", "_") }
