// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package functions

import (
	"math"
	"slices"

	"github.com/stacklok/toolhive-formulas/config"
	"github.com/stacklok/toolhive-formulas/guard"
	"github.com/stacklok/toolhive-formulas/value"
)

// Statistic returns the statistic module.
func Statistic(limits config.Limits) []Definition {
	k := newToolkit(limits)
	return []Definition{
		{Name: "AVERAGE", MinArgs: 0, MaxArgs: Variadic, Call: k.average},
		{Name: "AVERAGEA", MinArgs: 0, MaxArgs: Variadic, Call: k.averageA},
		{Name: "AVERAGEIF", MinArgs: 2, MaxArgs: 3, Call: k.averageIf},
		{Name: "COUNT", MinArgs: 0, MaxArgs: Variadic, Call: k.count},
		{Name: "COUNTA", MinArgs: 0, MaxArgs: Variadic, Call: k.countA},
		{Name: "COUNTBLANK", MinArgs: 0, MaxArgs: Variadic, Call: k.countBlank},
		{Name: "COUNTIF", MinArgs: 2, MaxArgs: 2, Call: k.countIf},
		{Name: "COUNTUNIQUE", MinArgs: 0, MaxArgs: Variadic, Call: k.countUnique},
		{Name: "LARGE", MinArgs: 1, MaxArgs: 2, Call: k.large},
		{Name: "MAX", MinArgs: 0, MaxArgs: Variadic, Call: k.max},
		{Name: "MAXA", MinArgs: 0, MaxArgs: Variadic, Call: k.maxA},
		{Name: "MEDIAN", MinArgs: 0, MaxArgs: Variadic, Call: k.median},
		{Name: "MIN", MinArgs: 0, MaxArgs: Variadic, Call: k.min},
		{Name: "MINA", MinArgs: 0, MaxArgs: Variadic, Call: k.minA},
		{Name: "MODE", MinArgs: 0, MaxArgs: Variadic, Call: k.mode},
		{Name: "SMALL", MinArgs: 1, MaxArgs: 2, Call: k.small},
		{Name: "STANDARDIZE", MinArgs: 3, MaxArgs: 3, Call: standardize},
	}
}

// average divides the sum of the numeric items by the number of all items.
func (k *toolkit) average(args ...any) (any, error) {
	items, err := k.flatten(args)
	if err != nil {
		return nil, err
	}

	var sum float64
	for _, item := range items {
		if value.IsNumber(item) {
			sum += value.ToNumber(item)
		}
	}
	return sum / float64(len(items)), nil
}

// averageA counts true as 1 and any other non-null value as 0.
func (k *toolkit) averageA(args ...any) (any, error) {
	items, err := k.flatten(args)
	if err != nil {
		return nil, err
	}

	var (
		sum   float64
		count int
	)
	for _, item := range items {
		switch {
		case value.IsNumber(item) || item == true:
			sum += value.ToNumber(item)
			count++
		case item != nil:
			count++
		}
	}
	return sum / float64(count), nil
}

func (k *toolkit) averageIf(args ...any) (any, error) {
	sum, count, err := k.conditionalSum(args)
	if err != nil {
		return nil, err
	}
	return sum / float64(count), nil
}

func (k *toolkit) countIf(args ...any) (any, error) {
	items, err := k.flattenRange(arg(args, 0))
	if err != nil {
		return nil, err
	}
	pred, err := k.predicate(arg(args, 1))
	if err != nil {
		return nil, err
	}

	count := 0
	for _, item := range items {
		if pred.Match(item) {
			count++
		}
	}
	return float64(count), nil
}

// conditionalSum evaluates (range, criterion, valuesRange?). Items of range
// that satisfy the criterion select the value at the same index of
// valuesRange, which defaults to range itself when left out or empty.
func (k *toolkit) conditionalSum(args []any) (float64, int, error) {
	items, err := k.flattenRange(arg(args, 0))
	if err != nil {
		return 0, 0, err
	}
	values := items
	if alt := arg(args, 2); !isEmptyRange(alt) {
		if values, err = k.flattenRange(alt); err != nil {
			return 0, 0, err
		}
	}
	pred, err := k.predicate(arg(args, 1))
	if err != nil {
		return 0, 0, err
	}

	var (
		sum   float64
		count int
	)
	for i, item := range items {
		if !pred.Match(item) {
			continue
		}
		count++
		sum += value.ToNumber(arg(values, i))
	}
	return sum, count, nil
}

func (k *toolkit) count(args ...any) (any, error) {
	items, err := k.flatten(args)
	if err != nil {
		return nil, err
	}

	count := 0
	for _, item := range items {
		if value.IsNumber(item) {
			count++
		}
	}
	return float64(count), nil
}

// countA counts the arguments as supplied, without flattening.
func (k *toolkit) countA(args ...any) (any, error) {
	if err := guard.CheckSize(len(args), k.limits().MaxArraySize); err != nil {
		return nil, err
	}
	return float64(len(args)), nil
}

func (k *toolkit) countBlank(args ...any) (any, error) {
	items, err := k.flatten(args)
	if err != nil {
		return nil, err
	}

	count := 0
	for _, item := range items {
		if value.IsNullish(item) || item == "" {
			count++
		}
	}
	return float64(count), nil
}

// countUnique counts distinct scalar items. Rows and nested sequences are
// skipped; null and Undefined are distinct from each other.
func (k *toolkit) countUnique(args ...any) (any, error) {
	items, err := k.flatten(args)
	if err != nil {
		return nil, err
	}

	seen := make(map[any]struct{}, len(items))
	for _, item := range items {
		key, ok := scalarKey(item)
		if !ok {
			continue
		}
		seen[key] = struct{}{}
	}
	return float64(len(seen)), nil
}

type nanKey struct{}

// scalarKey returns a comparable key identifying a scalar by type and value
// with SameValueZero semantics: NaN equals NaN and -0 equals 0.
func scalarKey(v any) (any, bool) {
	if value.IsNumber(v) {
		n := value.ToNumber(v)
		if math.IsNaN(n) {
			return nanKey{}, true
		}
		return n, true
	}
	switch v.(type) {
	case nil, string, bool:
		return v, true
	}
	if value.IsUndefined(v) {
		return v, true
	}
	return nil, false
}

func (k *toolkit) max(args ...any) (any, error) {
	return k.extreme(args, math.Inf(-1), math.Max)
}

func (k *toolkit) min(args ...any) (any, error) {
	return k.extreme(args, math.Inf(1), math.Min)
}

// extreme folds the numeric items with pick, ignoring every other value.
func (k *toolkit) extreme(args []any, start float64, pick func(x, y float64) float64) (any, error) {
	items, err := k.flatten(args)
	if err != nil {
		return nil, err
	}

	result := start
	for _, item := range items {
		if value.IsNumber(item) {
			result = pick(result, value.ToNumber(item))
		}
	}
	return result, nil
}

func (k *toolkit) maxA(args ...any) (any, error) {
	return k.extremeA(args, math.Max)
}

func (k *toolkit) minA(args ...any) (any, error) {
	return k.extremeA(args, math.Min)
}

// extremeA folds every item coerced to a number, reading NaN as 0. An empty
// argument list yields 0.
func (k *toolkit) extremeA(args []any, pick func(x, y float64) float64) (any, error) {
	items, err := k.flatten(args)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return 0.0, nil
	}

	result := numberOrZero(items[0])
	for _, item := range items[1:] {
		result = pick(result, numberOrZero(item))
	}
	return result, nil
}

func numberOrZero(v any) float64 {
	n := value.ToNumber(v)
	if math.IsNaN(n) {
		return 0
	}
	return n
}

func (k *toolkit) median(args ...any) (any, error) {
	items, err := k.flatten(args)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return math.NaN(), nil
	}

	nums := sortNumbers(items, false)
	half := len(nums) / 2
	if len(nums)%2 == 1 {
		return nums[half], nil
	}
	return (nums[half-1] + nums[half]) / 2, nil
}

// mode returns the most frequent item coerced to a number. On a tie the value
// that reached the count first wins. An empty argument list yields
// Undefined.
func (k *toolkit) mode(args ...any) (any, error) {
	items, err := k.flatten(args)
	if err != nil {
		return nil, err
	}

	var (
		counts = make(map[string]int, len(items))
		best   any = value.Undefined
		top    int
	)
	for _, item := range items {
		n := value.ToNumber(item)
		key := value.FormatNumber(n)
		counts[key]++
		if counts[key] > top {
			top = counts[key]
			best = n
		}
	}
	return best, nil
}

func (k *toolkit) small(args ...any) (any, error) {
	return k.kth(args, false)
}

func (k *toolkit) large(args ...any) (any, error) {
	return k.kth(args, true)
}

// kth returns the k-th smallest (or largest) item of the range. A position
// that is not an integer within the range yields Undefined.
func (k *toolkit) kth(args []any, descending bool) (any, error) {
	items, err := k.flattenRange(arg(args, 0))
	if err != nil {
		return nil, err
	}

	pos := value.ToNumber(arg(args, 1))
	if pos != math.Trunc(pos) || pos < 1 || pos > float64(len(items)) {
		return value.Undefined, nil
	}
	return sortNumbers(items, descending)[int(pos)-1], nil
}

// sortNumbers coerces items to numbers and sorts them. Items that are not a
// number keep their position; the numbers are sorted into the remaining
// slots.
func sortNumbers(items []any, descending bool) []float64 {
	nums := make([]float64, len(items))
	slots := make([]int, 0, len(items))
	sorted := make([]float64, 0, len(items))
	for i, item := range items {
		nums[i] = value.ToNumber(item)
		if !math.IsNaN(nums[i]) {
			slots = append(slots, i)
			sorted = append(sorted, nums[i])
		}
	}

	slices.Sort(sorted)
	if descending {
		slices.Reverse(sorted)
	}
	for i, slot := range slots {
		nums[slot] = sorted[i]
	}
	return nums
}

func standardize(args ...any) (any, error) {
	x := value.ToNumber(arg(args, 0))
	mean := value.ToNumber(arg(args, 1))
	sd := value.ToNumber(arg(args, 2))
	return (x - mean) / sd, nil
}
