// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package guard

import (
	"github.com/stacklok/toolhive-formulas/config"
	"github.com/stacklok/toolhive-formulas/execerr"
	"github.com/stacklok/toolhive-formulas/value"
)

// CheckSize fails when a sequence of the given length exceeds limit.
func CheckSize(length, limit int) error {
	if length > limit {
		return execerr.Newf("Items size exceeded. Provided %d, maximum %d", length, limit)
	}
	return nil
}

// CheckTextLength fails when text is longer than limit UTF-16 code units.
func CheckTextLength(text string, limit int) error {
	if n := value.TextLength(text); n > limit {
		return execerr.Newf("Argument max length exceeded. Provided %d, maximum %d", n, limit)
	}
	return nil
}

// Guard applies the limits of one function module.
type Guard struct {
	limits config.Limits
}

// New returns a Guard for limits.
func New(limits config.Limits) *Guard {
	return &Guard{limits: limits}
}

// Limits returns the limits the guard applies.
func (g *Guard) Limits() config.Limits {
	return g.limits
}

// CheckSequence fails when v is a sequence longer than MaxArraySize.
// Values that are not sequences pass.
func (g *Guard) CheckSequence(v any) error {
	n, ok := value.Len(v)
	if !ok {
		return nil
	}
	return CheckSize(n, g.limits.MaxArraySize)
}

// CheckText fails when text is longer than MaxTextLength.
func (g *Guard) CheckText(text string) error {
	return CheckTextLength(text, g.limits.MaxTextLength)
}

// CheckCriteriaText fails when a shorthand criterion is longer than
// MaxCriteriaLength.
func (g *Guard) CheckCriteriaText(text string) error {
	return CheckTextLength(text, g.limits.MaxCriteriaLength)
}

// Text converts v to text and checks its length against MaxTextLength.
func (g *Guard) Text(v any) (string, error) {
	s := value.ToString(v)
	if err := g.CheckText(s); err != nil {
		return "", err
	}
	return s, nil
}

// Flatten flattens args one level into a single sequence bounded by
// MaxArraySize. Nested sequences are spliced in; any other value, including
// null and Undefined, is appended as is. The running size is checked before
// each append.
func (g *Guard) Flatten(args []any) ([]any, error) {
	limit := g.limits.MaxArraySize
	if err := CheckSize(len(args), limit); err != nil {
		return nil, err
	}

	out := make([]any, 0, len(args))
	for _, arg := range args {
		n, isSeq := value.Len(arg)
		if !isSeq {
			n = 1
		}
		if len(out)+n > limit {
			return nil, execerr.Newf("Items size exceeded. Provided %d, maximum %d", len(out)+n, limit)
		}

		if !isSeq {
			out = append(out, arg)
			continue
		}
		items, _ := value.AsSequence(arg)
		out = append(out, items...)
	}
	return out, nil
}
