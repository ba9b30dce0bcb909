// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package table implements bounded aggregation over tables of rows.

A table is an ordered sequence of rows. Rows may have different columns; a
missing column reads as undefined.

# Conditions

Conditions pair a criteria column with a parsed criterion. ParseConditions
validates the (column, criterion) arguments of an "IFS" function and parses
each criterion once:

	conds, err := table.ParseConditions([]any{"category", "A", "value", ">20"}, limits)
	filter := table.Filter{Combinator: table.All, Conditions: conds}

All requires every condition to hold for a row, Any requires at least one.

# Aggregation

Accumulate makes one pass over the table and collects sum, count, min and
max of the target column over the matching rows. Rows whose target value is
null or undefined do not contribute. Other values are coerced to numbers and
a non-numeric value yields NaN, which then propagates.

	agg := table.Accumulate(rows, "value", filter)
	agg.Average() // agg.Sum / agg.Count

With no contributing rows the results are sum 0, count 0, min +Inf,
max -Inf and average NaN.
*/
package table
