// Package codec provides optional codecs beyond the formdata defaults.
// Register them per call via Opt.Codecs.
package codec

import (
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
	formdata "github.com/lorefnon/go-formdata"
)

// Integer returns a codec under tag "integer" decoding textual values as
// int64. Use it instead of the default number codec when float64
// precision loss is unacceptable.
func Integer() formdata.Codec {
	return formdata.CodecFunc("integer", func(v formdata.RawValue) (any, error) {
		if v.IsBlob() {
			return nil, fmt.Errorf("expected text, got file %q", v.File.Name)
		}
		n, err := strconv.ParseInt(v.Text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", v.Text)
		}
		return n, nil
	})
}

// JSON returns a codec under tag "json" decoding a textual value as an
// embedded JSON document. This covers form fields populated by scripts
// with structured values.
func JSON() formdata.Codec {
	return formdata.CodecFunc("json", func(v formdata.RawValue) (any, error) {
		if v.IsBlob() {
			return nil, fmt.Errorf("expected text, got file %q", v.File.Name)
		}
		var out any
		if err := json.Unmarshal([]byte(v.Text), &out); err != nil {
			return nil, fmt.Errorf("invalid JSON value: %w", err)
		}
		return out, nil
	})
}
