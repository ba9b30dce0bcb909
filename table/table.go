// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package table

import (
	"github.com/stacklok/toolhive-formulas/execerr"
	"github.com/stacklok/toolhive-formulas/guard"
	"github.com/stacklok/toolhive-formulas/value"
)

// Table is an ordered sequence of rows.
type Table []*value.Row

// FromValue converts a dynamic table argument, failing when it is not a
// sequence or has more than limit rows. Elements that are not rows become
// rows without columns.
func FromValue(v any, limit int) (Table, error) {
	n, ok := value.Len(v)
	if !ok {
		return nil, execerr.New("Table variable should be an array.")
	}
	if err := guard.CheckSize(n, limit); err != nil {
		return nil, err
	}
	if t, ok := v.(Table); ok {
		return t, nil
	}

	items, _ := value.AsSequence(v)
	t := make(Table, len(items))
	for i, item := range items {
		row, ok := value.AsRow(item)
		if !ok {
			row = value.NewRow()
		}
		t[i] = row
	}
	return t, nil
}

// Column validates a column name argument.
func Column(v any, maxTextLength int) (string, error) {
	name, ok := v.(string)
	if !ok {
		return "", execerr.New("Column name should be a string.")
	}
	if name == "" {
		return "", execerr.New("Column name cannot be empty.")
	}
	if err := guard.CheckTextLength(name, maxTextLength); err != nil {
		return "", err
	}
	return name, nil
}

// Rows returns the rows matching f, in table order.
func Rows(t Table, f Filter) Table {
	out := make(Table, 0)
	for _, row := range t {
		if f.Match(row) {
			out = append(out, row)
		}
	}
	return out
}

// MatchAll reports whether every row matches f. It is true for an empty
// table.
func MatchAll(t Table, f Filter) bool {
	for _, row := range t {
		if !f.Match(row) {
			return false
		}
	}
	return true
}

// Concat returns a new table holding the rows of t followed by add. The
// combined size is checked against limit before anything is copied.
func Concat(t, add Table, limit int) (Table, error) {
	if err := guard.CheckSize(len(t)+len(add), limit); err != nil {
		return nil, err
	}
	out := make(Table, 0, len(t)+len(add))
	out = append(out, t...)
	return append(out, add...), nil
}
