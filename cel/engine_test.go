// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package cel_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/stacklok/toolhive-formulas/cel"
	"github.com/stacklok/toolhive-formulas/config"
	"github.com/stacklok/toolhive-formulas/functions"
	"github.com/stacklok/toolhive-formulas/logger"
	"github.com/stacklok/toolhive-formulas/table"
	"github.com/stacklok/toolhive-formulas/value"
)

// newTestEngine creates an engine with the default function library and a
// "sales" table variable.
func newTestEngine(t *testing.T) *cel.Engine {
	t.Helper()
	lib, err := functions.NewLibrary(config.Default())
	require.NoError(t, err)
	return cel.NewEngine(cel.Formulas(lib), cel.Variables("sales", "threshold"))
}

func salesInputs() map[string]any {
	return map[string]any{
		"sales": []any{
			map[string]any{"value": 10, "category": "A"},
			map[string]any{"value": 20, "category": "B"},
			map[string]any{"value": 30, "category": "A"},
		},
		"threshold": 15,
	}
}

func TestEngine_Compile_ValidExpressions(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)

	tests := []struct {
		name string
		expr string
	}{
		{name: "criteria function", expr: `COUNTIF([1, 2, 3], ">2")`},
		{name: "table function", expr: `TABLESUMIFS(sales, "value", "category", "A")`},
		{name: "no arguments", expr: `AVERAGE()`},
		{name: "many arguments", expr: `COUNT(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)`},
		{name: "nested calls", expr: `MAX(TABLESUM(sales, "value"), SUMIF([1, 2], ">1"))`},
		{name: "comparison with int literal", expr: `TABLECOUNT(sales, "value") > 2`},
		{name: "macro", expr: `sales.map(r, r.value)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			expr, err := engine.Compile(tt.expr)
			require.NoError(t, err)
			require.NotNil(t, expr)
			assert.Equal(t, tt.expr, expr.Source())
		})
	}
}

func TestEngine_Compile_ParseErrors(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)

	for _, expr := range []string{`COUNTIF([1, 2]`, `SUM(1,, 2)`, `COUNTIF(1 === 2)`} {
		t.Run(expr, func(t *testing.T) {
			t.Parallel()

			_, err := engine.Compile(expr)
			require.Error(t, err)

			var exprErr *cel.ExpressionError
			require.True(t, errors.As(err, &exprErr))
			assert.ErrorIs(t, err, cel.ErrExpressionCheck)
			assert.Equal(t, cel.ErrKindParse, exprErr.Kind)
			assert.Contains(t, exprErr.Error(), "formula parse error")
			assert.Equal(t, expr, exprErr.Source)
			assert.NotEmpty(t, exprErr.Errors)
		})
	}
}

func TestEngine_Compile_CheckErrors(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)

	tests := []struct {
		name string
		expr string
	}{
		{name: "unknown function", expr: `NOPE(1)`},
		{name: "too many arguments", expr: `UNIQUE([1], [2])`},
		{name: "too few arguments", expr: `COUNTIF([1])`},
		{name: "unknown variable", expr: `TABLESUM(orders, "value")`},
		{name: "lowercase name", expr: `countif([1], ">0")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := engine.Compile(tt.expr)
			require.Error(t, err)

			var exprErr *cel.ExpressionError
			require.True(t, errors.As(err, &exprErr))
			assert.Equal(t, cel.ErrKindCheck, exprErr.Kind)
			assert.Contains(t, exprErr.Error(), "formula check error")
			assert.Contains(t, exprErr.AsJSON(), "errors")

			details, ok := cel.Details(err)
			require.True(t, ok)
			assert.Regexp(t, `^\d+:\d+: `, details.String())
		})
	}
}

func TestDetails_NotExpressionError(t *testing.T) {
	t.Parallel()

	_, ok := cel.Details(errors.New("boom"))
	assert.False(t, ok)

	_, ok = cel.Details(cel.ErrEvaluation)
	assert.False(t, ok)
}

func TestFormulas_MaxCriteriaPairs(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)
	call := func(pairs int) string {
		return `TABLECOUNTIFS(sales, "value"` + strings.Repeat(`, "category", "A"`, pairs) + `)`
	}

	expr, err := engine.Compile(call(table.MaxConditions))
	require.NoError(t, err)
	got, err := expr.Evaluate(salesInputs())
	require.NoError(t, err)
	assert.Equal(t, 2.0, got)

	_, err = engine.Compile(call(table.MaxConditions + 1))
	require.ErrorIs(t, err, cel.ErrExpressionCheck)
	assert.Equal(t, 2*table.MaxConditions+2, cel.MaxVariadicArgs)
}

func TestEngine_Check(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)

	require.NoError(t, engine.Check(`COUNTIF([1, 2, 3], ">2")`))
	require.Error(t, engine.Check(`COUNTIF(`))
	require.Error(t, engine.Check(`NOPE()`))
}

func TestEngine_MaxExpressionLength(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t).WithMaxExpressionLength(5)

	_, err := engine.Compile(`COUNT(1)`)
	require.ErrorIs(t, err, cel.ErrExpressionCheck)
	assert.Contains(t, err.Error(), "exceeds maximum of 5")
}

func TestCompiledExpression_Evaluate(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)

	tests := []struct {
		name     string
		expr     string
		expected any
	}{
		{name: "COUNTIF", expr: `COUNTIF([1, 2, 3, 4, 5], ">2")`, expected: 3.0},
		{name: "TABLESUMIFS", expr: `TABLESUMIFS(sales, "value", "category", "A")`, expected: 40.0},
		{name: "TABLEAVG", expr: `TABLEAVG(sales, "value")`, expected: 20.0},
		{name: "variadic", expr: `AVERAGE(1, 2, 3)`, expected: 2.0},
		{name: "pair criterion", expr: `COUNTIF([1, 2, 3], ["<>", 2])`, expected: 2.0},
		{name: "variable criterion", expr: `TABLECOUNTIFS(sales, "value", "value", [">", threshold])`, expected: 2.0},
		{name: "UNIQUE", expr: `UNIQUE(["a", "b", "a"])`, expected: []any{"a", "b"}},
		{name: "MAX of nothing", expr: `MAX()`, expected: math.Inf(-1)},
		{name: "compare with int", expr: `TABLESUM(sales, "value") > 50`, expected: true},
		{name: "macro over rows", expr: `SUMIF(sales.map(r, r.value), ">=20")`, expected: 50.0},
		{name: "map literal rows", expr: `TABLESUM([{"value": 1}, {"value": 2}], "value")`, expected: 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			expr, err := engine.Compile(tt.expr)
			require.NoError(t, err)

			result, err := expr.Evaluate(salesInputs())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestCompiledExpression_EvaluateRows(t *testing.T) {
	t.Parallel()

	expr, err := newTestEngine(t).Compile(`TABLEFILTERROWSIF(sales, "category", "B")`)
	require.NoError(t, err)

	result, err := expr.Evaluate(salesInputs())
	require.NoError(t, err)

	rows, ok := result.([]any)
	require.True(t, ok, "expected []any, got %T", result)
	require.Len(t, rows, 1)

	row, ok := rows[0].(*value.Row)
	require.True(t, ok, "expected *value.Row, got %T", rows[0])
	assert.Equal(t, []string{"category", "value"}, row.Columns())
	assert.Equal(t, 20.0, row.Get("value"))
}

func TestCompiledExpression_ExecutionErrors(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)

	tests := []struct {
		name    string
		expr    string
		message string
	}{
		{
			name:    "invalid criterion",
			expr:    `COUNTIF([1], 5)`,
			message: "Criteria must be a string or array. Provided number",
		},
		{
			name:    "table not an array",
			expr:    `TABLESUM("sales", "value")`,
			message: "Table variable should be an array.",
		},
		{
			name:    "missing criteria",
			expr:    `TABLESUMIFS(sales, "value")`,
			message: "There should be at least one logical criteria.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			expr, err := engine.Compile(tt.expr)
			require.NoError(t, err)

			_, err = expr.Evaluate(salesInputs())
			require.ErrorIs(t, err, cel.ErrEvaluation)
			assert.ErrorContains(t, err, tt.message)
		})
	}
}

func TestCompiledExpression_EvaluateBool(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)

	expr, err := engine.Compile(`TABLEMATCHESCONDITIONS(sales, "category", "A", "category", "B")`)
	require.NoError(t, err)
	ok, err := expr.EvaluateBool(salesInputs())
	require.NoError(t, err)
	assert.True(t, ok)

	expr, err = engine.Compile(`TABLESUM(sales, "value")`)
	require.NoError(t, err)
	_, err = expr.EvaluateBool(salesInputs())
	require.ErrorIs(t, err, cel.ErrInvalidResult)
}

func TestExecutionMessage(t *testing.T) {
	t.Parallel()

	expr, err := newTestEngine(t).Compile(`TABLESUM(sales, 1)`)
	require.NoError(t, err)

	_, err = expr.Evaluate(salesInputs())
	require.Error(t, err)
	if msg, ok := cel.ExecutionMessage(err); ok {
		assert.Equal(t, "Column name should be a string.", msg)
	}

	_, ok := cel.ExecutionMessage(errors.New("plain"))
	assert.False(t, ok)
}

func TestEngine_WithLogger(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	engine := newTestEngine(t).WithLogger(logger.NewLogr(zap.New(core)))

	_, err := engine.Compile(`COUNT(1)`)
	require.NoError(t, err)
	_, err = engine.Compile(`NOPE(1)`)
	require.Error(t, err)

	assert.Equal(t, 1, logs.FilterMessage("Compiled formula expression").Len())
	assert.Equal(t, 1, logs.FilterMessage("Formula expression failed type checking").Len())
}

func TestEngine_Concurrency(t *testing.T) {
	t.Parallel()

	expr, err := newTestEngine(t).Compile(`TABLESUMIFS(sales, "value", "category", "A")`)
	require.NoError(t, err)

	const numGoroutines = 50
	results := make(chan any, numGoroutines)
	errs := make(chan error, numGoroutines)

	for range numGoroutines {
		go func() {
			result, err := expr.Evaluate(salesInputs())
			if err != nil {
				errs <- err
				return
			}
			results <- result
		}()
	}

	for range numGoroutines {
		select {
		case err := <-errs:
			t.Fatalf("unexpected error: %v", err)
		case result := <-results:
			assert.Equal(t, 40.0, result)
		}
	}
}
