// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package functions

import (
	"github.com/stacklok/toolhive-formulas/config"
	"github.com/stacklok/toolhive-formulas/value"
)

// Array returns the array module.
func Array(limits config.Limits) []Definition {
	k := newToolkit(limits)
	return []Definition{
		{Name: "UNIQUE", MinArgs: 1, MaxArgs: 1, Call: k.unique},
	}
}

// unique drops repeated scalars and repeated references to the same row,
// keeping first occurrences in order. Nested sequences are always kept.
func (k *toolkit) unique(args ...any) (any, error) {
	source := arg(args, 0)
	if err := k.guard.CheckSequence(source); err != nil {
		return nil, err
	}

	items := value.OneOrMany(source)
	out := make([]any, 0, len(items))
	seen := make(map[any]struct{}, len(items))
	for _, item := range items {
		key, ok := scalarKey(item)
		if !ok {
			row, isRow := item.(*value.Row)
			if !isRow {
				out = append(out, item)
				continue
			}
			key = row
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out, nil
}
