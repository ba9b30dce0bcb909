// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
)

var decimalLiteral = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?$`)

// ToNumber converts v to a number following JavaScript Number() rules,
// except that Undefined is an empty cell and counts as 0 like null. Values
// without a numeric meaning yield NaN; ToNumber never fails.
func ToNumber(v any) float64 {
	if f, ok := asFloat(v); ok {
		return f
	}

	switch t := v.(type) {
	case nil:
		return 0
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		return parseNumber(t)
	case *Row:
		return math.NaN()
	}

	if IsUndefined(v) {
		return 0
	}
	if seq, ok := AsSequence(v); ok {
		switch len(seq) {
		case 0:
			return 0
		case 1:
			return parseNumber(ToString(seq[0]))
		}
	}
	return math.NaN()
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

func parseNumber(s string) float64 {
	s = strings.TrimFunc(s, isSpace)
	if s == "" {
		return 0
	}

	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			return parseInteger(s[2:], base)
		}
	}

	if !decimalLiteral.MatchString(s) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return f
}

func parseInteger(digits string, base int) float64 {
	n, ok := new(big.Int).SetString(digits, base)
	if !ok || n.Sign() < 0 || strings.ContainsAny(digits, "+-_") {
		return math.NaN()
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	return f
}

// ToString converts v to text: null and Undefined become "", numbers use the
// JavaScript shortest form and sequences are joined with commas.
func ToString(v any) string {
	if IsNullish(v) {
		return ""
	}
	if f, ok := asFloat(v); ok {
		return FormatNumber(f)
	}

	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case *Row:
		return "[object Object]"
	}

	if _, ok := AsRow(v); ok {
		return "[object Object]"
	}
	if seq, ok := AsSequence(v); ok {
		parts := make([]string, len(seq))
		for i, item := range seq {
			parts[i] = ToString(item)
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v)
}

// FormatNumber formats f the way JavaScript prints numbers.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mantissa + "e" + exp[:1] + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// TextLength returns the length of s in UTF-16 code units, the unit formula
// authors see as string length.
func TextLength(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}
