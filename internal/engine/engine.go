// Package engine owns the accumulator tree behind formdata extraction:
// the walk/assign algorithm, per-call append numbering, and the three
// output projections.
package engine

import (
	"fmt"
	"strings"
)

// Seg is one navigation step in dependency-free form. A non-empty Name
// selects an object field; otherwise Index selects an array position,
// with AppendIndex meaning "the next appended position".
type Seg struct {
	Name  string
	Index int
}

// AppendIndex marks an array segment whose position is resolved from the
// per-call append counter of its path prefix.
const AppendIndex = -1

// View selects which leaves a projection keeps.
type View int

const (
	ViewCombined View = iota // every leaf
	ViewFields               // leaves decoded from text
	ViewFiles                // leaves decoded from blobs
)

type kind uint8

const (
	kindUnset kind = iota // array gap placeholder, excluded from every view
	kindObject
	kindArray
	kindLeaf
)

const (
	maskFields uint8 = 1 << iota
	maskFiles
)

type node struct {
	kind   kind
	mask   uint8 // which walks touched this node
	fields map[string]*node
	elems  []*node
	value  any
	blob   bool // leaf came from a blob value
}

// Tree is the accumulator. It persists across extraction calls; only the
// append counters (held by Pass) reset per call.
type Tree struct {
	root node
}

// New returns an empty accumulator tree.
func New() *Tree {
	return &Tree{root: node{kind: kindObject, fields: map[string]*node{}}}
}

// Pass is the per-call state of one extraction: the target tree plus the
// append counters, keyed by the rendered path prefix up to (but
// excluding) each append segment.
type Pass struct {
	tree    *Tree
	appends map[string]int
}

// NewPass starts an extraction pass over t.
func NewPass(t *Tree) *Pass {
	return &Pass{tree: t, appends: map[string]int{}}
}

// Assign walks segs from the root, creating intermediate containers on
// demand, and sets the decoded value at the final slot. A slot already
// holding a different shape is overwritten.
func (p *Pass) Assign(segs []Seg, value any, blob bool) {
	bit := maskFields
	if blob {
		bit = maskFiles
	}
	n := &p.tree.root
	n.mask |= bit
	for i, s := range segs {
		var child *node
		if s.Name != "" {
			child = n.field(s.Name)
		} else {
			idx := s.Index
			if idx == AppendIndex {
				key := prefixKey(segs[:i])
				idx = p.appends[key]
				p.appends[key]++
			}
			child = n.elem(idx)
		}
		child.mask |= bit
		if i == len(segs)-1 {
			child.setLeaf(value, blob)
			return
		}
		n = child
	}
}

// Materialize creates the containers an empty-valued entry would have
// been assigned under, without touching the final slot. Append positions
// are not consumed: the walk stops at the first append segment.
func (p *Pass) Materialize(segs []Seg, blob bool) {
	bit := maskFields
	if blob {
		bit = maskFiles
	}
	n := &p.tree.root
	n.mask |= bit
	for i := 0; i < len(segs)-1; i++ {
		s := segs[i]
		if s.Name == "" && s.Index == AppendIndex {
			return
		}
		var child *node
		if s.Name != "" {
			child = n.field(s.Name)
		} else {
			child = n.elem(s.Index)
		}
		child.mask |= bit
		// Type the container by the segment that follows, so an empty
		// `profile.firstname` still yields `profile: {}`.
		if segs[i+1].Name != "" {
			child.asObject()
		} else {
			child.asArray()
		}
		n = child
	}
}

// Render projects the tree into a plain object/array/scalar structure.
// Object and array shape is preserved along every kept leaf; branches
// never touched by the view's kind of walk are dropped, and filtered
// array positions render as nil with trailing ones trimmed.
func (t *Tree) Render(v View) map[string]any {
	out, _ := t.root.render(v)
	if m, ok := out.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func (n *node) field(name string) *node {
	n.asObject()
	c := n.fields[name]
	if c == nil {
		c = &node{}
		n.fields[name] = c
	}
	return c
}

func (n *node) elem(i int) *node {
	n.asArray()
	for len(n.elems) <= i {
		n.elems = append(n.elems, &node{})
	}
	return n.elems[i]
}

func (n *node) asObject() {
	if n.kind != kindObject {
		n.kind = kindObject
		n.fields = map[string]*node{}
		n.elems = nil
		n.value = nil
		n.blob = false
	}
}

func (n *node) asArray() {
	if n.kind != kindArray {
		n.kind = kindArray
		n.fields = nil
		n.elems = nil
		n.value = nil
		n.blob = false
	}
}

func (n *node) setLeaf(value any, blob bool) {
	n.kind = kindLeaf
	n.fields = nil
	n.elems = nil
	n.value = value
	n.blob = blob
}

func (n *node) include(v View) bool {
	switch n.kind {
	case kindUnset:
		return false
	case kindLeaf:
		switch v {
		case ViewFields:
			return !n.blob
		case ViewFiles:
			return n.blob
		default:
			return true
		}
	default:
		switch v {
		case ViewFields:
			return n.mask&maskFields != 0
		case ViewFiles:
			return n.mask&maskFiles != 0
		default:
			return true
		}
	}
}

func (n *node) render(v View) (any, bool) {
	switch n.kind {
	case kindLeaf:
		return n.value, n.include(v)
	case kindObject:
		if !n.include(v) {
			return nil, false
		}
		m := make(map[string]any, len(n.fields))
		for name, c := range n.fields {
			if val, ok := c.render(v); ok {
				m[name] = val
			}
		}
		return m, true
	case kindArray:
		if !n.include(v) {
			return nil, false
		}
		out := make([]any, 0, len(n.elems))
		kept := 0
		for i, c := range n.elems {
			val, ok := c.render(v)
			if ok {
				kept = i + 1
				out = append(out, val)
			} else {
				out = append(out, nil)
			}
		}
		return out[:kept], true
	default:
		return nil, false
	}
}

func prefixKey(segs []Seg) string {
	b := &strings.Builder{}
	for i, s := range segs {
		switch {
		case s.Name != "":
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(s.Name)
		case s.Index == AppendIndex:
			b.WriteString("[]")
		default:
			fmt.Fprintf(b, "[%d]", s.Index)
		}
	}
	return b.String()
}
