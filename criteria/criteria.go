// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package criteria

import (
	"math"
	"strings"
	"unicode"

	"github.com/stacklok/toolhive-formulas/value"
)

// Operator is a comparison operator.
type Operator string

// Supported operators.
const (
	GreaterOrEqual Operator = ">="
	LessOrEqual    Operator = "<="
	NotEqual       Operator = "<>"
	Equal          Operator = "="
	Greater        Operator = ">"
	Less           Operator = "<"
)

// operators is ordered so that two-character operators are tried before
// their one-character prefixes.
var operators = []Operator{GreaterOrEqual, LessOrEqual, NotEqual, Equal, Greater, Less}

// Operators returns the supported operators in parse order.
func Operators() []Operator {
	return append([]Operator(nil), operators...)
}

// ParseOperator returns the operator spelled s.
func ParseOperator(s string) (Operator, bool) {
	for _, op := range operators {
		if string(op) == s {
			return op, true
		}
	}
	return "", false
}

// Sigil is a reserved criterion with fixed, non-comparative semantics.
type Sigil string

// Reserved sigils.
const (
	SigilTrue      Sigil = "#TRUE"
	SigilFalse     Sigil = "#FALSE"
	SigilUndefined Sigil = "#UNDEFINED"
	SigilNull      Sigil = "#NULL"
	SigilEmpty     Sigil = "#EMPTY"
	SigilNotEmpty  Sigil = "#NOT_EMPTY"
	SigilBlank     Sigil = "#BLANK"
	SigilNotBlank  Sigil = "#NOT_BLANK"
)

var sigils = []Sigil{
	SigilTrue, SigilFalse, SigilUndefined, SigilNull,
	SigilEmpty, SigilNotEmpty, SigilBlank, SigilNotBlank,
}

// ParseSigil returns the sigil spelled exactly s.
func ParseSigil(s string) (Sigil, bool) {
	for _, sigil := range sigils {
		if string(sigil) == s {
			return sigil, true
		}
	}
	return "", false
}

// Criterion is a criterion literal: a Shorthand, a Pair or a Sigil.
type Criterion interface {
	criterion()
}

// Shorthand is a criterion string such as ">=10" or "A".
type Shorthand string

// Pair is an explicit operator and value. The value is compared verbatim.
type Pair struct {
	Operator Operator
	Value    any
}

func (Shorthand) criterion() {}
func (Pair) criterion()      {}
func (Sigil) criterion()     {}

// ParseResult is the normalized form of a criterion. When Sigil is set the
// other fields are unused.
type ParseResult struct {
	Operator        Operator
	RightOperand    any
	DisableCoercion bool
	Sigil           Sigil
}

// IsSigil reports whether r is a sigil result.
func (r ParseResult) IsSigil() bool {
	return r.Sigil != ""
}

// Parse normalizes a criterion literal. It never fails: a shorthand without
// a known operator prefix compares with "=" against the whole literal.
func Parse(c Criterion) ParseResult {
	switch c := c.(type) {
	case Pair:
		return ParseResult{Operator: c.Operator, RightOperand: c.Value, DisableCoercion: true}
	case Sigil:
		return ParseResult{Sigil: c}
	case Shorthand:
		return parseShorthand(string(c))
	default:
		return ParseResult{Operator: Equal, RightOperand: value.Undefined}
	}
}

func parseShorthand(s string) ParseResult {
	if sigil, ok := ParseSigil(s); ok {
		return ParseResult{Sigil: sigil}
	}
	for _, op := range operators {
		if rest, ok := strings.CutPrefix(s, string(op)); ok {
			return ParseResult{Operator: op, RightOperand: strings.TrimLeftFunc(rest, isSpace)}
		}
	}
	return ParseResult{Operator: Equal, RightOperand: s}
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// Evaluate tests left against r.
func Evaluate(r ParseResult, left any) bool {
	if r.IsSigil() {
		return evaluateSigil(r.Sigil, left)
	}
	return evaluateOperator(r, left)
}

func evaluateSigil(sigil Sigil, left any) bool {
	switch sigil {
	case SigilTrue:
		b, ok := left.(bool)
		return ok && b
	case SigilFalse:
		b, ok := left.(bool)
		return ok && !b
	case SigilUndefined:
		return value.IsUndefined(left)
	case SigilNull:
		return left == nil
	case SigilEmpty:
		return isEmpty(left)
	case SigilNotEmpty:
		return !isEmpty(left)
	case SigilBlank:
		return left == ""
	case SigilNotBlank:
		return left != ""
	default:
		return false
	}
}

func isEmpty(v any) bool {
	return value.IsNullish(v) || v == ""
}

func evaluateOperator(r ParseResult, left any) bool {
	right := r.RightOperand

	if value.IsNullish(left) {
		// "<>" is the only operator that can match an empty cell.
		return r.Operator == NotEqual && !value.StrictEqual(left, right)
	}

	if !r.DisableCoercion && value.IsNumber(left) {
		right = coerceOperand(right)
	}

	switch r.Operator {
	case Equal:
		return value.StrictEqual(left, right)
	case NotEqual:
		return !value.StrictEqual(left, right)
	}

	cmp, ok := value.Compare(left, right)
	if !ok {
		return false
	}
	switch r.Operator {
	case GreaterOrEqual:
		return cmp >= 0
	case LessOrEqual:
		return cmp <= 0
	case Greater:
		return cmp > 0
	case Less:
		return cmp < 0
	default:
		return value.StrictEqual(left, right)
	}
}

// coerceOperand reads a text operand as a number when it is one.
func coerceOperand(operand any) any {
	s, ok := operand.(string)
	if !ok {
		return operand
	}
	n := value.ToNumber(s)
	if math.IsNaN(n) {
		return s
	}
	return n
}
