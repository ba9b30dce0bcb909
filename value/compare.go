// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"math"
	"slices"
	"unicode/utf16"
)

// StrictEqual reports whether a and b are identical in the JavaScript ===
// sense: same kind and same value. NaN is not equal to itself, rows are equal
// only to themselves and sequences are never equal.
func StrictEqual(a, b any) bool {
	if x, ok := asFloat(a); ok {
		y, ok := asFloat(b)
		return ok && x == y
	}

	switch x := a.(type) {
	case nil:
		return b == nil
	case string:
		y, ok := b.(string)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case *Row:
		y, ok := b.(*Row)
		return ok && x == y
	}

	if IsUndefined(a) {
		return IsUndefined(b)
	}
	return false
}

// Compare orders a and b following the JavaScript relational operators: two
// strings compare lexicographically, anything else compares numerically.
// The boolean is false when the operands are not comparable (NaN involved),
// in which case every relational operator evaluates to false.
func Compare(a, b any) (int, bool) {
	pa, pb := toPrimitive(a), toPrimitive(b)

	if sa, ok := pa.(string); ok {
		if sb, ok := pb.(string); ok {
			return compareText(sa, sb), true
		}
	}
	if IsUndefined(pa) || IsUndefined(pb) {
		return 0, false
	}

	x, y := ToNumber(pa), ToNumber(pb)
	if math.IsNaN(x) || math.IsNaN(y) {
		return 0, false
	}
	switch {
	case x < y:
		return -1, true
	case x > y:
		return 1, true
	default:
		return 0, true
	}
}

func toPrimitive(v any) any {
	if IsNullish(v) || IsNumber(v) {
		return v
	}
	switch v.(type) {
	case string, bool:
		return v
	}
	return ToString(v)
}

// compareText orders strings by UTF-16 code units, which differs from byte
// order once characters outside the BMP meet ones from U+E000 to U+FFFF.
func compareText(a, b string) int {
	if a == b {
		return 0
	}
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}
