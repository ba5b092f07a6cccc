package formdata

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseKey splits one flat key into its path segments and optional codec
// tag. It is the exact inverse of Path.String/Path.Tagged. Parsing one key
// is a pure function of the key string; it does not depend on other keys
// or any external state. Malformed keys yield a CodeMalformedPath error.
func ParseKey(key string) (Path, string, error) {
	path, tag := key, ""
	if i := strings.LastIndexByte(key, ':'); i >= 0 {
		path, tag = key[:i], key[i+1:]
		if tag == "" {
			return nil, "", malformed(key, "empty codec tag")
		}
	}
	if path == "" {
		return nil, "", malformed(key, "empty path")
	}
	if strings.ContainsRune(path, ':') {
		return nil, "", malformed(key, "':' not allowed inside a path")
	}

	var segs Path
	rest := path
	for {
		// A segment always opens with a field name; a path that begins with
		// a bracket is rejected rather than guessed.
		n := strings.IndexAny(rest, ".[")
		name, tail := rest, ""
		if n >= 0 {
			name, tail = rest[:n], rest[n:]
		}
		if name == "" {
			if len(segs) == 0 {
				return nil, "", malformed(key, "path must start with a field name")
			}
			return nil, "", malformed(key, "empty field name")
		}
		if strings.ContainsRune(name, ']') {
			return nil, "", malformed(key, "']' without matching '['")
		}
		segs = append(segs, Key(name))

		// Zero or more bracket groups: `[]` appends, `[digits]` indexes.
		for strings.HasPrefix(tail, "[") {
			end := strings.IndexByte(tail, ']')
			if end < 0 {
				return nil, "", malformed(key, "unbalanced '['")
			}
			inner := tail[1:end]
			if inner == "" {
				segs = append(segs, Append())
			} else {
				idx, err := parseIndex(inner)
				if err != nil {
					return nil, "", malformed(key, fmt.Sprintf("invalid array index %q", inner))
				}
				segs = append(segs, Index(idx))
			}
			tail = tail[end+1:]
		}

		if tail == "" {
			return segs, tag, nil
		}
		if tail[0] != '.' {
			return nil, "", malformed(key, fmt.Sprintf("unexpected %q after ']'", tail[0]))
		}
		rest = tail[1:]
		if rest == "" {
			return nil, "", malformed(key, "trailing '.'")
		}
	}
}

func parseIndex(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("non-digit %q", s[i])
		}
	}
	return strconv.Atoi(s)
}

func malformed(key, msg string) error {
	return singleIssue(key, CodeMalformedPath, msg)
}
