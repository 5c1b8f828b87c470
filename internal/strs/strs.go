// Package strs joins string segments into keys and paths.
//
// Join is the runtime form of a literal-type string concatenation: the result
// is the same string the segments would spell at the type level, but Go cannot
// check it at compile time.
package strs

import (
	"strconv"
	"strings"
)

// Join concatenates segments with sep strictly between consecutive non-empty
// segments. The separator never leads, never trails and is never doubled.
// An empty or nil segment list yields "".
//
//	Join([]string{"users", "admin", "settings"}, "/") // "users/admin/settings"
//	Join([]string{"config"}, "-")                     // "config"
//	Join(nil, "/")                                    // ""
func Join(segments []string, sep string) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(seg)
	}
	return b.String()
}

// Concat is Join with no separator.
func Concat(segments ...string) string {
	return Join(segments, "")
}

// Path is an immutable sequence of key segments rendered with a fixed separator.
type Path struct {
	sep      string
	segments []string
}

// NewPath returns a path rooted at the given segments.
func NewPath(sep string, segments ...string) Path {
	return Path{sep: sep, segments: append([]string(nil), segments...)}
}

// Child returns a new path with key appended. p is left unchanged.
func (p Path) Child(key string) Path {
	next := make([]string, len(p.segments), len(p.segments)+1)
	copy(next, p.segments)
	return Path{sep: p.sep, segments: append(next, key)}
}

// Index returns a new path with a list index appended.
func (p Path) Index(i int) Path {
	return p.Child(strconv.Itoa(i))
}

// Segments returns a copy of the path's segments.
func (p Path) Segments() []string {
	return append([]string(nil), p.segments...)
}

// Depth is the number of segments.
func (p Path) Depth() int {
	return len(p.segments)
}

// IsRoot reports whether the path has no segments.
func (p Path) IsRoot() bool {
	return len(p.segments) == 0
}

// String renders the path with its separator. An empty key is written as ""
// so it stays visible.
func (p Path) String() string {
	rendered := make([]string, len(p.segments))
	for i, seg := range p.segments {
		if seg == "" {
			seg = `""`
		}
		rendered[i] = seg
	}
	return strings.Join(rendered, p.sep)
}
