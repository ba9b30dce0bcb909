// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package value defines the dynamic values exchanged between the host
// evaluator and formula functions, together with the fixed coercion and
// comparison rules every function applies to them.
//
// A dynamic value is one of: nil (null), Undefined, a number (float64, or any
// Go integer or float type supplied by a host), string, bool, a sequence
// ([]any or any Go slice/array) or a row (*Row or map[string]any).
package value

import (
	"reflect"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type undefined struct{}

// String implements fmt.Stringer.
func (undefined) String() string {
	return "undefined"
}

// MarshalJSON encodes Undefined as null.
func (undefined) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// MarshalYAML encodes Undefined as null.
func (undefined) MarshalYAML() (any, error) {
	return nil, nil
}

// Undefined is the absent value, e.g. a column missing from a row.
// It is distinct from nil, which stands for null.
var Undefined any = undefined{}

// IsUndefined reports whether v is Undefined.
func IsUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}

// IsNullish reports whether v is null or Undefined.
func IsNullish(v any) bool {
	return v == nil || IsUndefined(v)
}

// IsNumber reports whether v holds a Go numeric type.
func IsNumber(v any) bool {
	_, ok := asFloat(v)
	return ok
}

// IsString reports whether v is a string.
func IsString(v any) bool {
	_, ok := v.(string)
	return ok
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// Len returns the length of a sequence without copying it.
// The boolean is false when v is not a sequence.
func Len(v any) (int, bool) {
	switch s := v.(type) {
	case nil, string:
		return 0, false
	case []any:
		return len(s), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len(), true
	default:
		return 0, false
	}
}

// AsSequence returns v as []any when it is a sequence. Typed Go slices are
// copied element by element; []any is returned as is.
func AsSequence(v any) ([]any, bool) {
	switch s := v.(type) {
	case nil, string:
		return nil, false
	case []any:
		return s, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	default:
		return nil, false
	}
}

// IsSequence reports whether v is a sequence.
func IsSequence(v any) bool {
	_, ok := Len(v)
	return ok
}

// OneOrMany normalizes an argument that may be a single value or a sequence:
// null and Undefined become an empty sequence, sequences are returned as is
// and any other value is wrapped in a one-element sequence.
func OneOrMany(v any) []any {
	if IsNullish(v) {
		return []any{}
	}
	if seq, ok := AsSequence(v); ok {
		return seq
	}
	return []any{v}
}

// AsRow returns v as a row when it is a *Row, a string-keyed ordered map or a
// string-keyed Go map.
func AsRow(v any) (*Row, bool) {
	switch r := v.(type) {
	case *Row:
		return r, r != nil
	case map[string]any:
		return RowFromMap(r), true
	case *orderedmap.OrderedMap[string, any]:
		if r == nil {
			return nil, false
		}
		return &Row{fields: r}, true
	case nil:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	m := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		m[iter.Key().String()] = iter.Value().Interface()
	}
	return RowFromMap(m), true
}

// TypeOf returns the JavaScript typeof name of v, used in messages shown to
// formula authors.
func TypeOf(v any) string {
	switch {
	case IsUndefined(v):
		return "undefined"
	case v == nil:
		return "object"
	case IsNumber(v):
		return "number"
	}

	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return "object"
	}
}

// Normalize converts host supplied values to the canonical representation:
// numbers become float64, sequences become []any and string-keyed maps
// become *Row, recursively. It is meant for host adapters; functions accept
// non-normalized values too.
func Normalize(v any) any {
	if IsNullish(v) {
		return v
	}
	if f, ok := asFloat(v); ok {
		return f
	}
	switch t := v.(type) {
	case string, bool:
		return v
	case *Row:
		return t
	}
	if row, ok := AsRow(v); ok {
		out := NewRow()
		for _, col := range row.Columns() {
			out.Set(col, Normalize(row.Get(col)))
		}
		return out
	}
	if seq, ok := AsSequence(v); ok {
		out := make([]any, len(seq))
		for i, item := range seq {
			out[i] = Normalize(item)
		}
		return out
	}
	return v
}
