// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package functions

import (
	"github.com/stacklok/toolhive-formulas/config"
	"github.com/stacklok/toolhive-formulas/execerr"
	"github.com/stacklok/toolhive-formulas/table"
	"github.com/stacklok/toolhive-formulas/value"
)

// Table returns the table module. Its array limit is MaxTableSize.
func Table(limits config.Limits) []Definition {
	k := newToolkit(limits.ForTables())

	var defs []Definition
	defs = append(defs, k.aggregates("SUM", func(a table.Aggregate) any { return a.Sum })...)
	defs = append(defs, k.aggregates("COUNT", func(a table.Aggregate) any { return float64(a.Count) })...)
	defs = append(defs, k.aggregates("MAX", func(a table.Aggregate) any { return a.Max })...)
	defs = append(defs, k.aggregates("MIN", func(a table.Aggregate) any { return a.Min })...)
	defs = append(defs, k.aggregates("AVG", func(a table.Aggregate) any { return a.Average() })...)
	return append(defs,
		Definition{Name: "TABLEFILTERROWSIF", MinArgs: 1, MaxArgs: 3, Call: k.filterRowsIf},
		Definition{Name: "TABLEFILTERROWSIFS", MinArgs: 1, MaxArgs: Variadic, Call: k.filterRows(table.All)},
		Definition{Name: "TABLEFILTERROWSIFSOR", MinArgs: 1, MaxArgs: Variadic, Call: k.filterRows(table.Any)},
		Definition{Name: "TABLEMATCHESCONDITIONS", MinArgs: 1, MaxArgs: Variadic, Call: k.matchesConditions},
		Definition{Name: "TABLECONCATROWS", MinArgs: 2, MaxArgs: 2, Call: k.concatRows},
	)
}

// aggregates defines TABLE{name}, TABLE{name}IF, TABLE{name}IFS and
// TABLE{name}IFSOR over one accumulated result.
func (k *toolkit) aggregates(name string, result func(table.Aggregate) any) []Definition {
	name = "TABLE" + name
	return []Definition{
		{Name: name, MinArgs: 2, MaxArgs: 2, Call: k.aggregate(result)},
		{Name: name + "IF", MinArgs: 2, MaxArgs: 4, Call: k.aggregateIf(result)},
		{Name: name + "IFS", MinArgs: 2, MaxArgs: Variadic, Call: k.aggregateIfs(table.All, result)},
		{Name: name + "IFSOR", MinArgs: 2, MaxArgs: Variadic, Call: k.aggregateIfs(table.Any, result)},
	}
}

// TABLESUM(table, column)
func (k *toolkit) aggregate(result func(table.Aggregate) any) Function {
	return func(args ...any) (any, error) {
		t, column, err := k.tableAndColumn(args)
		if err != nil {
			return nil, err
		}
		return result(table.Accumulate(t, column, table.Filter{})), nil
	}
}

// TABLESUMIF(table, column, criteriaColumn, criterion)
func (k *toolkit) aggregateIf(result func(table.Aggregate) any) Function {
	return func(args ...any) (any, error) {
		return k.accumulate(args, table.All, []any{arg(args, 2), arg(args, 3)}, result)
	}
}

// TABLESUMIFS(table, column, criteriaColumn1, criterion1, ...)
func (k *toolkit) aggregateIfs(c table.Combinator, result func(table.Aggregate) any) Function {
	return func(args ...any) (any, error) {
		return k.accumulate(args, c, rest(args, 2), result)
	}
}

func (k *toolkit) accumulate(args []any, c table.Combinator, pairs []any, result func(table.Aggregate) any) (any, error) {
	t, column, err := k.tableAndColumn(args)
	if err != nil {
		return nil, err
	}
	f, err := k.filter(c, pairs)
	if err != nil {
		return nil, err
	}
	return result(table.Accumulate(t, column, f)), nil
}

func (k *toolkit) filterRowsIf(args ...any) (any, error) {
	t, err := k.table(arg(args, 0))
	if err != nil {
		return nil, err
	}
	f, err := k.filter(table.All, []any{arg(args, 1), arg(args, 2)})
	if err != nil {
		return nil, err
	}
	return table.Rows(t, f), nil
}

func (k *toolkit) filterRows(c table.Combinator) Function {
	return func(args ...any) (any, error) {
		t, err := k.table(arg(args, 0))
		if err != nil {
			return nil, err
		}
		f, err := k.filter(c, rest(args, 1))
		if err != nil {
			return nil, err
		}
		return table.Rows(t, f), nil
	}
}

// matchesConditions reports whether every row satisfies at least one of the
// conditions.
func (k *toolkit) matchesConditions(args ...any) (any, error) {
	t, err := k.table(arg(args, 0))
	if err != nil {
		return nil, err
	}
	f, err := k.filter(table.Any, rest(args, 1))
	if err != nil {
		return nil, err
	}
	return table.MatchAll(t, f), nil
}

func (k *toolkit) concatRows(args ...any) (any, error) {
	t, err := k.table(arg(args, 0))
	if err != nil {
		return nil, err
	}
	add := arg(args, 1)
	if !value.IsSequence(add) {
		return nil, execerr.New("Rows to add should be an array.")
	}
	rows, err := k.table(add)
	if err != nil {
		return nil, err
	}
	out, err := table.Concat(t, rows, k.limits().MaxTableSize)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (k *toolkit) table(v any) (table.Table, error) {
	return table.FromValue(v, k.limits().MaxTableSize)
}

func (k *toolkit) tableAndColumn(args []any) (table.Table, string, error) {
	t, err := k.table(arg(args, 0))
	if err != nil {
		return nil, "", err
	}
	column, err := table.Column(arg(args, 1), k.limits().MaxTextLength)
	if err != nil {
		return nil, "", err
	}
	return t, column, nil
}

func (k *toolkit) filter(c table.Combinator, pairs []any) (table.Filter, error) {
	conds, err := table.ParseConditions(pairs, k.limits())
	if err != nil {
		return table.Filter{}, err
	}
	return table.Filter{Combinator: c, Conditions: conds}, nil
}
