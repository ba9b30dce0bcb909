// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package functions

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/toolhive-formulas/config"
	"github.com/stacklok/toolhive-formulas/table"
	"github.com/stacklok/toolhive-formulas/value"
)

func categoryTable() []any {
	return []any{
		map[string]any{"value": 10, "category": "A"},
		map[string]any{"value": 20, "category": "B"},
		map[string]any{"value": 30, "category": "A"},
	}
}

func flagTable() []any {
	return []any{
		value.NewRow("id", 1, "value", 50),
		value.NewRow("id", 2, "value", 0),
		value.NewRow("id", 3, "value", true),
		value.NewRow("id", 4, "value", false),
		value.NewRow("id", 5, "value", nil),
		value.NewRow("id", 6, "value", value.Undefined),
	}
}

func rowIDs(t *testing.T, got any) []any {
	t.Helper()
	rows, ok := got.(table.Table)
	require.True(t, ok, "expected table.Table, got %T", got)
	out := make([]any, len(rows))
	for i, row := range rows {
		out[i] = row.Get("id")
	}
	return out
}

func TestTableAggregates(t *testing.T) {
	t.Parallel()

	tbl := categoryTable()

	runCallCases(t, newLibrary(t), []callCase{
		{name: "TABLESUM", fn: "TABLESUM", args: []any{tbl, "value"}, want: 60.0},
		{name: "TABLESUMIF", fn: "TABLESUMIF", args: []any{tbl, "value", "category", "A"}, want: 40.0},
		{name: "TABLESUMIFS", fn: "TABLESUMIFS", args: []any{tbl, "value", "category", "A"}, want: 40.0},
		{name: "TABLESUMIFS both", fn: "TABLESUMIFS", args: []any{tbl, "value", "category", "A", "value", ">10"}, want: 30.0},
		{name: "TABLESUMIFSOR", fn: "TABLESUMIFSOR", args: []any{tbl, "value", "category", "B", "value", "10"}, want: 30.0},
		{name: "TABLECOUNT", fn: "TABLECOUNT", args: []any{tbl, "value"}, want: 3.0},
		{name: "TABLECOUNTIF", fn: "TABLECOUNTIF", args: []any{tbl, "value", "category", "A"}, want: 2.0},
		{name: "TABLECOUNTIFS", fn: "TABLECOUNTIFS", args: []any{tbl, "value", "category", "A", "value", "<20"}, want: 1.0},
		{name: "TABLECOUNTIFSOR", fn: "TABLECOUNTIFSOR", args: []any{tbl, "value", "category", "A", "category", "B"}, want: 3.0},
		{name: "TABLEMAX", fn: "TABLEMAX", args: []any{tbl, "value"}, want: 30.0},
		{name: "TABLEMAXIF", fn: "TABLEMAXIF", args: []any{tbl, "value", "category", "B"}, want: 20.0},
		{name: "TABLEMAXIFS", fn: "TABLEMAXIFS", args: []any{tbl, "value", "category", "A", "value", "<30"}, want: 10.0},
		{name: "TABLEMAXIFSOR", fn: "TABLEMAXIFSOR", args: []any{tbl, "value", "category", "B", "value", "10"}, want: 20.0},
		{name: "TABLEMIN", fn: "TABLEMIN", args: []any{tbl, "value"}, want: 10.0},
		{name: "TABLEMINIF", fn: "TABLEMINIF", args: []any{tbl, "value", "category", "B"}, want: 20.0},
		{name: "TABLEMINIFS", fn: "TABLEMINIFS", args: []any{tbl, "value", "category", "A", "value", ">10"}, want: 30.0},
		{name: "TABLEMINIFSOR", fn: "TABLEMINIFSOR", args: []any{tbl, "value", "category", "B", "value", "30"}, want: 20.0},
		{name: "TABLEAVG", fn: "TABLEAVG", args: []any{tbl, "value"}, want: 20.0},
		{name: "TABLEAVGIF", fn: "TABLEAVGIF", args: []any{tbl, "value", "category", "A"}, want: 20.0},
		{name: "TABLEAVGIFS", fn: "TABLEAVGIFS", args: []any{tbl, "value", "category", "A", "value", ">10"}, want: 30.0},
		{name: "TABLEAVGIFSOR", fn: "TABLEAVGIFSOR", args: []any{tbl, "value", "category", "B", "value", "30"}, want: 25.0},
		{name: "missing column", fn: "TABLESUM", args: []any{tbl, "price"}, want: 0.0},
	})
}

func TestTableAggregates_EmptySentinels(t *testing.T) {
	t.Parallel()

	empty := []any{}

	runCallCases(t, newLibrary(t), []callCase{
		{name: "sum", fn: "TABLESUM", args: []any{empty, "value"}, want: 0.0},
		{name: "count", fn: "TABLECOUNT", args: []any{empty, "value"}, want: 0.0},
		{name: "max", fn: "TABLEMAX", args: []any{empty, "value"}, want: math.Inf(-1)},
		{name: "min", fn: "TABLEMIN", args: []any{empty, "value"}, want: math.Inf(1)},
		{name: "avg", fn: "TABLEAVG", args: []any{empty, "value"}, want: nan},
		{name: "avg without matches", fn: "TABLEAVGIF", args: []any{categoryTable(), "value", "category", "Z"}, want: nan},
	})
}

func TestTableAverageIsSumOverCount(t *testing.T) {
	t.Parallel()

	lib := newLibrary(t)
	tbl := []any{
		map[string]any{"value": 3, "kind": "x"},
		map[string]any{"value": 4, "kind": "y"},
		map[string]any{"value": nil, "kind": "x"},
		map[string]any{"value": 8, "kind": "x"},
		map[string]any{"kind": "x"},
	}

	for _, suffix := range []string{"", "IF", "IFS", "IFSOR"} {
		args := []any{tbl, "value"}
		if suffix != "" {
			args = append(args, "kind", "x")
		}

		sum, err := lib.Call("TABLESUM"+suffix, args...)
		require.NoError(t, err)
		count, err := lib.Call("TABLECOUNT"+suffix, args...)
		require.NoError(t, err)
		avg, err := lib.Call("TABLEAVG"+suffix, args...)
		require.NoError(t, err)

		assert.Equal(t, sum.(float64)/count.(float64), avg, "TABLEAVG%s", suffix)
	}
}

func TestTableFilterRows(t *testing.T) {
	t.Parallel()

	lib := newLibrary(t)

	t.Run("not equal to true keeps empty cells", func(t *testing.T) {
		t.Parallel()

		got, err := lib.Call("TABLEFILTERROWSIF", flagTable(), "value", []any{"<>", true})
		require.NoError(t, err)
		assert.Equal(t, []any{1, 2, 4, 5, 6}, rowIDs(t, got))
	})

	t.Run("shorthand", func(t *testing.T) {
		t.Parallel()

		got, err := lib.Call("TABLEFILTERROWSIF", flagTable(), "id", ">4")
		require.NoError(t, err)
		assert.Equal(t, []any{5, 6}, rowIDs(t, got))
	})

	t.Run("all conditions", func(t *testing.T) {
		t.Parallel()

		got, err := lib.Call("TABLEFILTERROWSIFS", flagTable(), "id", ">1", "value", "#NOT_EMPTY")
		require.NoError(t, err)
		assert.Equal(t, []any{2, 3, 4}, rowIDs(t, got))
	})

	t.Run("any condition", func(t *testing.T) {
		t.Parallel()

		got, err := lib.Call("TABLEFILTERROWSIFSOR", flagTable(), "id", "1", "value", "#NULL")
		require.NoError(t, err)
		assert.Equal(t, []any{1, 5}, rowIDs(t, got))
	})

	t.Run("no matches", func(t *testing.T) {
		t.Parallel()

		got, err := lib.Call("TABLEFILTERROWSIF", flagTable(), "id", ">100")
		require.NoError(t, err)
		assert.Empty(t, rowIDs(t, got))
	})
}

func TestTableMatchesConditions(t *testing.T) {
	t.Parallel()

	runCallCases(t, newLibrary(t), []callCase{
		{name: "every row matches one", fn: "TABLEMATCHESCONDITIONS", args: []any{categoryTable(), "category", "A", "category", "B"}, want: true},
		{name: "a row matches none", fn: "TABLEMATCHESCONDITIONS", args: []any{categoryTable(), "category", "A"}, want: false},
		{name: "empty table", fn: "TABLEMATCHESCONDITIONS", args: []any{[]any{}, "category", "A"}, want: true},
	})
}

func TestTableConcatRows(t *testing.T) {
	t.Parallel()

	lib := newLibrary(t)

	got, err := lib.Call("TABLECONCATROWS",
		[]any{value.NewRow("id", 1)},
		[]any{value.NewRow("id", 2), map[string]any{"id": 3}})
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, 3}, rowIDs(t, got))
}

func TestTable_Errors(t *testing.T) {
	t.Parallel()

	tbl := categoryTable()

	runErrorCases(t, newLibrary(t), []errorCase{
		{name: "table not an array", fn: "TABLESUM", args: []any{"table", "value"}, wantErr: "Table variable should be an array."},
		{name: "table null", fn: "TABLEFILTERROWSIFS", args: []any{nil, "value", "1"}, wantErr: "Table variable should be an array."},
		{name: "column not a string", fn: "TABLESUM", args: []any{tbl, 1}, wantErr: "Column name should be a string."},
		{name: "column empty", fn: "TABLECOUNT", args: []any{tbl, ""}, wantErr: "Column name cannot be empty."},
		{name: "no criteria", fn: "TABLESUMIFS", args: []any{tbl, "value"}, wantErr: "There should be at least one logical criteria."},
		{name: "odd criteria", fn: "TABLESUMIFS", args: []any{tbl, "value", "category"}, wantErr: "Each criteria should have a column name and a criteria expression."},
		{name: "criteria column not a string", fn: "TABLEMAXIFS", args: []any{tbl, "value", 1, "A"}, wantErr: "Criteria column name should be a string."},
		{name: "criteria column empty", fn: "TABLEMINIFSOR", args: []any{tbl, "value", "", "A"}, wantErr: "Criteria column name cannot be empty."},
		{name: "missing criterion", fn: "TABLESUMIF", args: []any{tbl, "value", "category"}, wantErr: "Criteria must be a string or array. Provided undefined"},
		{name: "invalid operator", fn: "TABLEFILTERROWSIF", args: []any{tbl, "value", []any{"=>", 1}}, wantErr: "Criteria operation is invalid."},
		{name: "rows to add", fn: "TABLECONCATROWS", args: []any{tbl, "rows"}, wantErr: "Rows to add should be an array."},
		{name: "too many conditions", fn: "TABLEFILTERROWSIFS", args: append([]any{tbl}, seq(62)...), wantErr: "Items size exceeded. Provided 62, maximum 60"},
		{name: "arity", fn: "TABLESUM", args: []any{tbl}, wantErr: "Function TABLESUM expects at least 2 arguments. Provided 1"},
	})
}

func TestTable_SizeLimit(t *testing.T) {
	t.Parallel()

	lib := newLibrary(t, config.WithMaxTableSize(3))
	row := func() any { return map[string]any{"value": 1} }

	got, err := lib.Call("TABLESUM", []any{row(), row(), row()}, "value")
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)

	_, err = lib.Call("TABLESUM", []any{row(), row(), row(), row()}, "value")
	require.EqualError(t, err, "Items size exceeded. Provided 4, maximum 3")

	_, err = lib.Call("TABLECONCATROWS", []any{row(), row()}, []any{row(), row()})
	require.EqualError(t, err, "Items size exceeded. Provided 4, maximum 3")
}

func TestTable_UsesTableSizeNotArraySize(t *testing.T) {
	t.Parallel()

	lib := newLibrary(t, config.WithMaxArraySize(2), config.WithMaxTableSize(5))
	rows := []any{
		map[string]any{"value": 1},
		map[string]any{"value": 2},
		map[string]any{"value": 3},
	}

	got, err := lib.Call("TABLESUM", rows, "value")
	require.NoError(t, err)
	assert.Equal(t, 6.0, got)
}
