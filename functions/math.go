// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package functions

import "github.com/stacklok/toolhive-formulas/config"

// Math returns the math module.
func Math(limits config.Limits) []Definition {
	k := newToolkit(limits)
	return []Definition{
		{Name: "SUMIF", MinArgs: 2, MaxArgs: 3, Call: k.sumIf},
	}
}

func (k *toolkit) sumIf(args ...any) (any, error) {
	sum, _, err := k.conditionalSum(args)
	if err != nil {
		return nil, err
	}
	return sum, nil
}
