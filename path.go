package formdata

import (
	"strconv"
	"strings"
)

// SegmentKind discriminates path segment variants.
type SegmentKind int

const (
	SegmentKey    SegmentKind = iota // Selects a named field of an object.
	SegmentIndex                     // Selects an explicit array position.
	SegmentAppend                    // Selects the next not-yet-assigned array position.
)

// Segment is one navigation step within a nested structure.
type Segment struct {
	Kind  SegmentKind
	Name  string // SegmentKey only.
	Index int    // SegmentIndex only.
}

// Key returns a segment selecting the named object field.
func Key(name string) Segment { return Segment{Kind: SegmentKey, Name: name} }

// Index returns a segment selecting an explicit array position.
func Index(i int) Segment { return Segment{Kind: SegmentIndex, Index: i} }

// Append returns a segment selecting the next appended array position.
func Append() Segment { return Segment{Kind: SegmentAppend} }

// Path is an ordered segment sequence. A well-formed path always starts
// with a SegmentKey; array segments never come first.
type Path []Segment

// String renders the path in the wire grammar: `a.b[0].c`. Rendering is
// pure and repeated calls yield the same string.
func (p Path) String() string {
	b := &strings.Builder{}
	for i, s := range p {
		switch s.Kind {
		case SegmentKey:
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(s.Name)
		case SegmentIndex:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.Index))
			b.WriteByte(']')
		case SegmentAppend:
			b.WriteString("[]")
		}
	}
	return b.String()
}

// Tagged renders the path with a codec tag suffix (`a.b:number`).
// An empty tag renders the plain path.
func (p Path) Tagged(tag string) string {
	if tag == "" {
		return p.String()
	}
	return p.String() + ":" + tag
}
