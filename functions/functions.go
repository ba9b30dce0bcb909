// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package functions

import (
	"github.com/stacklok/toolhive-formulas/config"
	"github.com/stacklok/toolhive-formulas/criteria"
	"github.com/stacklok/toolhive-formulas/guard"
	"github.com/stacklok/toolhive-formulas/value"
)

// Variadic marks a Definition that accepts any number of arguments.
const Variadic = -1

// Function is a formula function.
type Function func(args ...any) (any, error)

// Definition describes a registered function.
type Definition struct {
	Name    string
	MinArgs int
	// MaxArgs is Variadic for functions without an upper bound.
	MaxArgs int
	Call    Function
}

// Module builds the definitions of one group of functions.
type Module func(limits config.Limits) []Definition

// toolkit holds the limits of one module instance.
type toolkit struct {
	guard *guard.Guard
}

func newToolkit(limits config.Limits) *toolkit {
	return &toolkit{guard: guard.New(limits)}
}

func (k *toolkit) limits() config.Limits {
	return k.guard.Limits()
}

// flatten splices the items of every argument into one bounded sequence.
func (k *toolkit) flatten(args []any) ([]any, error) {
	return k.guard.Flatten(args)
}

// flattenRange flattens a single range argument. A scalar is a range of one
// item and null is an empty range.
func (k *toolkit) flattenRange(v any) ([]any, error) {
	if err := k.guard.CheckSequence(v); err != nil {
		return nil, err
	}
	return k.guard.Flatten(value.OneOrMany(v))
}

func (k *toolkit) predicate(v any) (criteria.Predicate, error) {
	parsed, err := criteria.ParseValue(v, k.limits().MaxCriteriaLength)
	if err != nil {
		return criteria.Predicate{}, err
	}
	return criteria.PredicateOf(parsed), nil
}

// arg returns the i-th argument, or Undefined when it was not supplied.
func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return value.Undefined
}

// rest returns the arguments from index i on.
func rest(args []any, i int) []any {
	if i < len(args) {
		return args[i:]
	}
	return nil
}

// isEmptyRange reports whether an optional range argument was left out.
func isEmptyRange(v any) bool {
	if value.IsNullish(v) {
		return true
	}
	n, ok := value.Len(v)
	return ok && n == 0
}
