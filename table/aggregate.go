// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package table

import (
	"math"

	"github.com/stacklok/toolhive-formulas/value"
)

// Aggregate holds the numeric aggregates of one column over matching rows.
type Aggregate struct {
	Sum   float64
	Count int
	Min   float64
	Max   float64
}

// Average returns Sum / Count, NaN when no row contributed.
func (a Aggregate) Average() float64 {
	return a.Sum / float64(a.Count)
}

// Accumulate aggregates column over the rows of t matching f in one pass.
func Accumulate(t Table, column string, f Filter) Aggregate {
	agg := Aggregate{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, row := range t {
		v := row.Get(column)
		if value.IsNullish(v) || !f.Match(row) {
			continue
		}
		n := value.ToNumber(v)
		agg.Sum += n
		agg.Count++
		agg.Min = math.Min(agg.Min, n)
		agg.Max = math.Max(agg.Max, n)
	}
	return agg
}

// Sum sums column over the rows matching f.
func Sum(t Table, column string, f Filter) float64 {
	return Accumulate(t, column, f).Sum
}

// Count counts the rows matching f whose column is neither null nor
// undefined.
func Count(t Table, column string, f Filter) int {
	return Accumulate(t, column, f).Count
}

// Min returns the smallest value of column over the rows matching f.
func Min(t Table, column string, f Filter) float64 {
	return Accumulate(t, column, f).Min
}

// Max returns the largest value of column over the rows matching f.
func Max(t Table, column string, f Filter) float64 {
	return Accumulate(t, column, f).Max
}

// Average returns Sum / Count of column over the rows matching f.
func Average(t Table, column string, f Filter) float64 {
	return Accumulate(t, column, f).Average()
}
