// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package functions

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/toolhive-formulas/config"
	"github.com/stacklok/toolhive-formulas/execerr"
)

func newLibrary(t *testing.T, opts ...config.Option) *Library {
	t.Helper()
	limits, err := config.New(opts...)
	require.NoError(t, err)
	lib, err := NewLibrary(limits)
	require.NoError(t, err)
	return lib
}

func seq(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

type callCase struct {
	name string
	fn   string
	args []any
	want any
}

func runCallCases(t *testing.T, lib *Library, tests []callCase) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := lib.Call(tt.fn, tt.args...)
			require.NoError(t, err)

			if want, ok := tt.want.(float64); ok && math.IsNaN(want) {
				f, isFloat := got.(float64)
				require.True(t, isFloat, "expected float64, got %T", got)
				assert.True(t, math.IsNaN(f), "expected NaN, got %v", f)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

type errorCase struct {
	name    string
	fn      string
	args    []any
	wantErr string
}

func runErrorCases(t *testing.T, lib *Library, tests []errorCase) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := lib.Call(tt.fn, tt.args...)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, execerr.Is(err), "expected an execution error, got %T", err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}
