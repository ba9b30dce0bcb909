// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Row is an ordered mapping from column name to a dynamic value.
// A nil *Row behaves as a row without columns.
type Row struct {
	fields *orderedmap.OrderedMap[string, any]
}

// NewRow creates a row from alternating column/value pairs:
//
//	value.NewRow("id", 1, "category", "A")
//
// A trailing column without a value is set to Undefined.
func NewRow(pairs ...any) *Row {
	r := &Row{fields: orderedmap.New[string, any]()}
	for i := 0; i < len(pairs); i += 2 {
		col := ToString(pairs[i])
		if i+1 < len(pairs) {
			r.Set(col, pairs[i+1])
		} else {
			r.Set(col, Undefined)
		}
	}
	return r
}

// RowFromMap creates a row from a Go map. Go maps are unordered, so the
// columns are sorted by name.
func RowFromMap(m map[string]any) *Row {
	cols := make([]string, 0, len(m))
	for col := range m {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	r := NewRow()
	for _, col := range cols {
		r.Set(col, m[col])
	}
	return r
}

// Set assigns a column value, keeping the position of an existing column.
func (r *Row) Set(column string, v any) *Row {
	if r.fields == nil {
		r.fields = orderedmap.New[string, any]()
	}
	r.fields.Set(column, v)
	return r
}

// Lookup returns the value of a column and whether the column is present.
func (r *Row) Lookup(column string) (any, bool) {
	if r == nil || r.fields == nil {
		return Undefined, false
	}
	v, ok := r.fields.Get(column)
	if !ok {
		return Undefined, false
	}
	return v, true
}

// Get returns the value of a column, or Undefined when it is absent.
func (r *Row) Get(column string) any {
	v, _ := r.Lookup(column)
	return v
}

// Len returns the number of columns.
func (r *Row) Len() int {
	if r == nil || r.fields == nil {
		return 0
	}
	return r.fields.Len()
}

// Columns returns the column names in order.
func (r *Row) Columns() []string {
	cols := make([]string, 0, r.Len())
	if r.Len() == 0 {
		return cols
	}
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		cols = append(cols, pair.Key)
	}
	return cols
}

// ToMap returns the row as an unordered Go map.
func (r *Row) ToMap() map[string]any {
	m := make(map[string]any, r.Len())
	if r.Len() == 0 {
		return m
	}
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		m[pair.Key] = pair.Value
	}
	return m
}

// MarshalJSON encodes the row as a JSON object preserving column order.
func (r *Row) MarshalJSON() ([]byte, error) {
	if r == nil || r.fields == nil {
		return []byte("{}"), nil
	}
	return r.fields.MarshalJSON()
}

// MarshalYAML encodes the row as a YAML mapping preserving column order.
func (r *Row) MarshalYAML() (any, error) {
	if r == nil || r.fields == nil {
		return map[string]any{}, nil
	}
	return r.fields.MarshalYAML()
}
