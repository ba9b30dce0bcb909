// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package criteria

import (
	"github.com/stacklok/toolhive-formulas/execerr"
	"github.com/stacklok/toolhive-formulas/guard"
	"github.com/stacklok/toolhive-formulas/value"
)

// FromValue validates a dynamic criterion argument and converts it to a
// literal. A string becomes a Shorthand, bounded by maxLength; a sequence
// must hold at most two items, the first being a known operator.
func FromValue(v any, maxLength int) (Criterion, error) {
	switch c := v.(type) {
	case Pair:
		if _, ok := ParseOperator(string(c.Operator)); !ok {
			return nil, execerr.New("Criteria operation is invalid.")
		}
		return c, nil
	case Sigil:
		return c, nil
	case Shorthand:
		return fromString(string(c), maxLength)
	case string:
		return fromString(c, maxLength)
	}

	n, ok := value.Len(v)
	if !ok {
		return nil, execerr.Newf("Criteria must be a string or array. Provided %s", value.TypeOf(v))
	}
	if err := guard.CheckSize(n, 2); err != nil {
		return nil, err
	}

	items, _ := value.AsSequence(v)
	if len(items) == 0 {
		return nil, execerr.New("Criteria operation is invalid.")
	}
	raw, _ := items[0].(string)
	op, ok := ParseOperator(raw)
	if !ok {
		return nil, execerr.New("Criteria operation is invalid.")
	}

	pair := Pair{Operator: op, Value: value.Undefined}
	if len(items) == 2 {
		pair.Value = items[1]
	}
	return pair, nil
}

func fromString(s string, maxLength int) (Criterion, error) {
	if err := guard.CheckTextLength(s, maxLength); err != nil {
		return nil, err
	}
	return Shorthand(s), nil
}

// ParseValue validates and parses a dynamic criterion argument.
func ParseValue(v any, maxLength int) (ParseResult, error) {
	c, err := FromValue(v, maxLength)
	if err != nil {
		return ParseResult{}, err
	}
	return Parse(c), nil
}

// Predicate is a criterion parsed once for repeated evaluation.
type Predicate struct {
	result ParseResult
}

// NewPredicate parses c.
func NewPredicate(c Criterion) Predicate {
	return Predicate{result: Parse(c)}
}

// PredicateOf wraps an already parsed criterion.
func PredicateOf(r ParseResult) Predicate {
	return Predicate{result: r}
}

// Match reports whether left satisfies the criterion.
func (p Predicate) Match(left any) bool {
	return Evaluate(p.result, left)
}

// Result returns the parsed criterion.
func (p Predicate) Result() ParseResult {
	return p.result
}
