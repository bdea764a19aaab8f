package goderive

import (
	"strconv"
	"strings"
)

// Segment is one step of a Path: an object key or an array index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Key returns a segment naming an object member.
func Key(name string) Segment { return Segment{Key: name} }

// Index returns a segment naming an array element.
func Index(i int) Segment { return Segment{Index: i, IsIndex: true} }

func (s Segment) String() string {
	if s.IsIndex {
		return strconv.Itoa(s.Index)
	}
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	return strings.ReplaceAll(strings.ReplaceAll(s.Key, "~", "~0"), "/", "~1")
}

// Path locates a value relative to the decode root.
type Path []Segment

// Pointer renders the path as a JSON Pointer. The root renders as "/".
func (p Path) Pointer() string {
	if len(p) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, s := range p {
		b.WriteByte('/')
		b.WriteString(s.String())
	}
	return b.String()
}

func (p Path) String() string { return p.Pointer() }

// prepend returns a new path with s in front.
func (p Path) prepend(s Segment) Path {
	out := make(Path, 0, len(p)+1)
	out = append(out, s)
	return append(out, p...)
}
