package formdata

import (
	"net/url"
	"sort"
)

// File is an opaque uploaded-blob handle. Extraction passes it through
// unchanged; this package never reads or interprets Data.
type File struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType,omitempty"`
	Data        []byte `json:"data,omitempty"`
}

// RawValue is one flat-bag value: either text or a blob handle.
// A non-nil File marks the value as binary.
type RawValue struct {
	Text string
	File *File
}

// Text wraps a textual bag value.
func Text(s string) RawValue { return RawValue{Text: s} }

// Blob wraps an uploaded file as a bag value.
func Blob(f *File) RawValue { return RawValue{File: f} }

// IsBlob reports whether the value is a blob handle rather than text.
func (v RawValue) IsBlob() bool { return v.File != nil }

// IsEmpty reports whether the value carries no content. Empty values are
// skipped by extraction and never overwrite accumulated state.
func (v RawValue) IsEmpty() bool {
	if v.File != nil {
		return len(v.File.Data) == 0
	}
	return v.Text == ""
}

// Entry is one (flat key, value) pair from a form submission.
type Entry struct {
	Key   string
	Value RawValue
}

// Bag is the ordered flat entry collection of one submission. Iteration
// order is significant: it determines append (`[]`) numbering.
type Bag []Entry

// Pairs builds a Bag from alternating key/value strings. It panics when
// given an odd number of arguments; this mirrors misuse of a literal.
func Pairs(kv ...string) Bag {
	if len(kv)%2 != 0 {
		panic("formdata.Pairs: odd number of arguments")
	}
	bag := make(Bag, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		bag = append(bag, Entry{Key: kv[i], Value: Text(kv[i+1])})
	}
	return bag
}

// FromValues builds a Bag from url.Values (e.g. a parsed POST form).
// url.Values loses submission order across keys, so keys are sorted for
// deterministic append numbering; values under one key keep their order.
func FromValues(vals url.Values) Bag {
	keys := make([]string, 0, len(vals))
	for k := range vals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var bag Bag
	for _, k := range keys {
		for _, v := range vals[k] {
			bag = append(bag, Entry{Key: k, Value: Text(v)})
		}
	}
	return bag
}
