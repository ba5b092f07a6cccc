package dsl

import (
	"reflect"
	"strings"
)

// NameOf returns the wire key for a top-level field of S selected by
// selector. The selector must return the address of a top-level field:
//
//	NameOf[Profile](func(p *Profile) *string { return &p.FirstName })
//
// This guarantees compile-time errors if the field is renamed or removed.
// Key resolution: `formdata` tag > `json` tag name > field name.
func NameOf[S any, F any](selector func(*S) *F) string {
	if selector == nil {
		panic("dsl.NameOf: selector must not be nil")
	}
	var zero S
	fp := reflect.ValueOf(selector(&zero)).Pointer()
	ft := reflect.TypeOf((*F)(nil)).Elem()
	rv := reflect.ValueOf(&zero).Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		fv := rv.Field(i)
		// A nested field at offset 0 shares its parent's address, so the
		// match must also agree on type.
		if fv.CanAddr() && fv.Addr().Pointer() == fp && fv.Type() == ft {
			name := resolveStructKey(sf)
			if name == "" || name == "-" {
				panic("dsl.NameOf: selected field is not exported or disabled")
			}
			return name
		}
	}
	panic("dsl.NameOf: selector must return address of a top-level field")
}

// FieldOf builds a Builder rooted at a top-level field of S, combining
// NameOf with Field.
func FieldOf[S any, F any](selector func(*S) *F) Builder {
	return Field(NameOf(selector))
}

// PathOf builds a Builder for an arbitrary nested field of S. The
// selector must return the address of a nested field, e.g.:
//
//	PathOf[Signup, string](func(s *Signup) *string { return &s.User.FirstName })
//
// Limitations: only descends through struct fields (non-pointer).
func PathOf[S any, F any](selector func(*S) *F) Builder {
	if selector == nil {
		panic("dsl.PathOf: selector must not be nil")
	}
	var zero S
	target := reflect.ValueOf(selector(&zero)).Pointer()
	ft := reflect.TypeOf((*F)(nil)).Elem()
	keys, ok := findPathKeys(reflect.ValueOf(&zero).Elem(), target, ft, 0)
	if !ok || len(keys) == 0 {
		panic("dsl.PathOf: selector must address a nested struct field (non-pointer)")
	}
	b := Field(keys[0])
	for _, k := range keys[1:] {
		b = b.Field(k)
	}
	return b
}

const _maxPathDepth = 32

func findPathKeys(v reflect.Value, target uintptr, ft reflect.Type, depth int) ([]string, bool) {
	if depth > _maxPathDepth {
		return nil, false
	}
	t := v.Type()
	if t.Kind() != reflect.Struct {
		return nil, false
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		fv := v.Field(i)
		// Address equality alone is ambiguous: a nested field at offset 0
		// aliases its enclosing struct field, so the type must match too.
		if fv.CanAddr() && fv.Addr().Pointer() == target && fv.Type() == ft {
			name := resolveStructKey(sf)
			if name == "" || name == "-" {
				return nil, false
			}
			return []string{name}, true
		}
		// Recurse into nested structs only (skip pointers for safety)
		if fv.Kind() == reflect.Struct {
			if rest, ok := findPathKeys(fv, target, ft, depth+1); ok {
				name := resolveStructKey(sf)
				if name == "" || name == "-" {
					return nil, false
				}
				return append([]string{name}, rest...), true
			}
		}
	}
	return nil, false
}

// resolveStructKey resolves a struct field's wire key.
// Priority: `formdata` tag name > `json` tag name > field name; "-"
// disables the field.
func resolveStructKey(sf reflect.StructField) string {
	if ft := sf.Tag.Get("formdata"); ft != "" {
		if i := strings.IndexByte(ft, ','); i >= 0 {
			return ft[:i]
		}
		return ft
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}
