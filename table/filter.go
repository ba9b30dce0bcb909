// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package table

import (
	"github.com/stacklok/toolhive-formulas/config"
	"github.com/stacklok/toolhive-formulas/criteria"
	"github.com/stacklok/toolhive-formulas/execerr"
	"github.com/stacklok/toolhive-formulas/guard"
	"github.com/stacklok/toolhive-formulas/value"
)

// MaxConditions is the maximum number of (column, criterion) pairs accepted
// by a single call.
const MaxConditions = 30

// Combinator reduces the results of several conditions for one row.
type Combinator int

const (
	// All requires every condition to hold.
	All Combinator = iota
	// Any requires at least one condition to hold.
	Any
)

// String implements fmt.Stringer.
func (c Combinator) String() string {
	if c == Any {
		return "any"
	}
	return "all"
}

// Condition tests one column of a row against a parsed criterion.
type Condition struct {
	Column   string
	Criteria criteria.ParseResult
}

// Match evaluates the condition against row.
func (c Condition) Match(row *value.Row) bool {
	return criteria.Evaluate(c.Criteria, row.Get(c.Column))
}

// Filter combines conditions. The zero Filter matches every row.
type Filter struct {
	Combinator Combinator
	Conditions []Condition
}

// Match reports whether row satisfies the filter.
func (f Filter) Match(row *value.Row) bool {
	if f.Combinator == Any {
		for _, c := range f.Conditions {
			if c.Match(row) {
				return true
			}
		}
		return false
	}

	for _, c := range f.Conditions {
		if !c.Match(row) {
			return false
		}
	}
	return true
}

// ParseConditions validates alternating (column, criterion) arguments and
// parses every criterion once.
func ParseConditions(pairs []any, limits config.Limits) ([]Condition, error) {
	if len(pairs) == 0 {
		return nil, execerr.New("There should be at least one logical criteria.")
	}
	if len(pairs)%2 != 0 {
		return nil, execerr.New("Each criteria should have a column name and a criteria expression.")
	}
	if err := guard.CheckSize(len(pairs), MaxConditions*2); err != nil {
		return nil, err
	}

	conds := make([]Condition, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		column, ok := pairs[i].(string)
		if !ok {
			return nil, execerr.New("Criteria column name should be a string.")
		}
		if column == "" {
			return nil, execerr.New("Criteria column name cannot be empty.")
		}
		if err := guard.CheckTextLength(column, limits.MaxTextLength); err != nil {
			return nil, err
		}

		parsed, err := criteria.ParseValue(pairs[i+1], limits.MaxCriteriaLength)
		if err != nil {
			return nil, err
		}
		conds = append(conds, Condition{Column: column, Criteria: parsed})
	}
	return conds, nil
}
