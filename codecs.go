package formdata

import (
	"fmt"
	"strconv"
	"time"
)

// Tags of the built-in codecs.
const (
	TagString  = "string"
	TagNumber  = "number"
	TagBoolean = "boolean"
	TagDate    = "date"
	TagFile    = "file"
)

// StringCodec passes textual values through unchanged. It is the default
// for untagged text entries.
func StringCodec() Codec { return stringCodec{} }

// NumberCodec parses textual values as float64.
func NumberCodec() Codec { return numberCodec{} }

// BooleanCodec parses textual values as bool. Besides strconv forms it
// accepts "on"/"off", the values HTML checkboxes submit.
func BooleanCodec() Codec { return booleanCodec{} }

// DateCodec parses textual values as time.Time, accepting RFC3339Nano,
// RFC3339, and date-only ("2006-01-02") forms.
func DateCodec() Codec { return dateCodec{} }

// BlobCodec passes blob handles through unchanged. It is the default for
// untagged blob entries and rejects textual input.
func BlobCodec() Codec { return blobCodec{} }

// DefaultCodecs returns a fresh slice of the built-in codecs, the set
// registered for every extraction call unless overridden.
func DefaultCodecs() []Codec {
	return []Codec{StringCodec(), NumberCodec(), BooleanCodec(), DateCodec(), BlobCodec()}
}

// The process-wide default registry is built once and never mutated;
// per-call custom codecs are merged into a derived registry.
var defaultRegistry = mustRegistry(DefaultCodecs()...)

func mustRegistry(codecs ...Codec) *Registry {
	r, err := NewRegistry(codecs...)
	if err != nil {
		panic(err)
	}
	return r
}

type stringCodec struct{}

func (stringCodec) Tag() string { return TagString }
func (stringCodec) Decode(v RawValue) (any, error) {
	if v.IsBlob() {
		return nil, fmt.Errorf("expected text, got file %q", v.File.Name)
	}
	return v.Text, nil
}

type numberCodec struct{}

func (numberCodec) Tag() string { return TagNumber }
func (numberCodec) Decode(v RawValue) (any, error) {
	if v.IsBlob() {
		return nil, fmt.Errorf("expected text, got file %q", v.File.Name)
	}
	f, err := strconv.ParseFloat(v.Text, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", v.Text)
	}
	return f, nil
}

type booleanCodec struct{}

func (booleanCodec) Tag() string { return TagBoolean }
func (booleanCodec) Decode(v RawValue) (any, error) {
	if v.IsBlob() {
		return nil, fmt.Errorf("expected text, got file %q", v.File.Name)
	}
	switch v.Text {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	b, err := strconv.ParseBool(v.Text)
	if err != nil {
		return nil, fmt.Errorf("invalid boolean %q", v.Text)
	}
	return b, nil
}

type dateCodec struct{}

func (dateCodec) Tag() string { return TagDate }
func (dateCodec) Decode(v RawValue) (any, error) {
	if v.IsBlob() {
		return nil, fmt.Errorf("expected text, got file %q", v.File.Name)
	}
	// Accept RFC3339Nano first (trailing zeros optional), then coarser forms.
	if t, err := time.Parse(time.RFC3339Nano, v.Text); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, v.Text); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", v.Text); err == nil {
		return t, nil
	}
	return nil, fmt.Errorf("invalid date %q", v.Text)
}

type blobCodec struct{}

func (blobCodec) Tag() string { return TagFile }
func (blobCodec) Decode(v RawValue) (any, error) {
	if !v.IsBlob() {
		return nil, fmt.Errorf("expected file, got text %q", v.Text)
	}
	return v.File, nil
}
