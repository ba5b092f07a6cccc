package formdata

import "fmt"

// Codec decodes one raw bag value into its typed form. Codec identity is
// its tag; encoding a tag onto a path is generic string concatenation
// (see Path.Tagged), so codecs only carry the decode direction.
type Codec interface {
	// Tag is the short identifier suffixed to flat keys (`price:number`).
	Tag() string
	// Decode transforms the raw value. A returned error marks the entry
	// as a decode failure; the entry then contributes nothing.
	Decode(v RawValue) (any, error)
}

// CodecFunc adapts a plain decode function into a Codec.
func CodecFunc(tag string, decode func(RawValue) (any, error)) Codec {
	return &funcCodec{tag: tag, decode: decode}
}

type funcCodec struct {
	tag    string
	decode func(RawValue) (any, error)
}

func (c funcCodec) Tag() string                    { return c.tag }
func (c funcCodec) Decode(v RawValue) (any, error) { return c.decode(v) }

// Registry resolves codec tags for one extraction call. It is immutable
// once built and safe for concurrent reads.
type Registry struct {
	byTag map[string]Codec
}

// NewRegistry builds a registry from the given codecs. Two codecs sharing
// a tag make the registry ambiguous; that is a configuration error and
// fails construction before any entry is processed.
func NewRegistry(codecs ...Codec) (*Registry, error) {
	byTag := make(map[string]Codec, len(codecs))
	for _, c := range codecs {
		if _, dup := byTag[c.Tag()]; dup {
			return nil, Issues{{
				Code:    CodeDuplicateCodecTag,
				Message: fmt.Sprintf("codec tag %q registered twice", c.Tag()),
				Params:  map[string]any{"tag": c.Tag()},
			}}
		}
		byTag[c.Tag()] = c
	}
	return &Registry{byTag: byTag}, nil
}

// Merge derives a new registry with the given codecs layered over r.
// Overrides replace same-tag codecs from r; duplicate tags within the
// override list itself fail as in NewRegistry. r is never mutated.
func (r *Registry) Merge(overrides ...Codec) (*Registry, error) {
	if len(overrides) == 0 {
		return r, nil
	}
	over, err := NewRegistry(overrides...)
	if err != nil {
		return nil, err
	}
	byTag := make(map[string]Codec, len(r.byTag)+len(over.byTag))
	for tag, c := range r.byTag {
		byTag[tag] = c
	}
	for tag, c := range over.byTag {
		byTag[tag] = c
	}
	return &Registry{byTag: byTag}, nil
}

// Lookup returns the codec registered under tag.
func (r *Registry) Lookup(tag string) (Codec, bool) {
	c, ok := r.byTag[tag]
	return c, ok
}

// resolve picks the codec for a parsed tag. An absent tag means default
// handling: text decodes as string, blobs pass through the file codec.
func (r *Registry) resolve(tag string, v RawValue) (Codec, bool) {
	if tag == "" {
		if v.IsBlob() {
			return r.Lookup(TagFile)
		}
		return r.Lookup(TagString)
	}
	return r.Lookup(tag)
}
