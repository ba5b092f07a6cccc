// Package dsl builds the flat field names embedded in form inputs. A
// Builder is an immutable chain of path segments; every navigation step
// returns a new Builder, and stringification is an explicit, side-effect
// free method rather than an implicit conversion.
package dsl

import (
	formdata "github.com/lorefnon/go-formdata"
)

// Builder accumulates path segments and renders the wire name on demand.
// The zero value is an empty path; obtain rooted builders via Field,
// FieldOf or PathOf.
type Builder struct {
	path formdata.Path
}

// Field starts a builder at the named top-level field.
func Field(name string) Builder {
	return Builder{path: formdata.Path{formdata.Key(name)}}
}

// Field descends into the named member of an object.
func (b Builder) Field(name string) Builder {
	return b.push(formdata.Key(name))
}

// Index descends into an explicit array position. The returned builder
// supports full further chaining.
func (b Builder) Index(i int) Builder {
	return b.push(formdata.Index(i))
}

// Append descends into the next appended array position (`[]`). Derive at
// most one further field from the returned builder: each appended entry
// gets its own position during extraction, so chaining two fields off one
// Append produces two array elements, not one.
func (b Builder) Append() Builder {
	return b.push(formdata.Append())
}

// Path returns a copy of the accumulated segments.
func (b Builder) Path() formdata.Path {
	return append(formdata.Path(nil), b.path...)
}

// String renders the wire name, e.g. `user.emails[0].address`.
func (b Builder) String() string { return b.path.String() }

// Tagged renders the wire name with a codec tag suffix, e.g.
// `items[].price:number`.
func (b Builder) Tagged(tag string) string { return b.path.Tagged(tag) }

func (b Builder) push(s formdata.Segment) Builder {
	path := make(formdata.Path, len(b.path)+1)
	copy(path, b.path)
	path[len(b.path)] = s
	return Builder{path: path}
}
