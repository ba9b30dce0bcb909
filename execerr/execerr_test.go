// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package execerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	err := New("Criteria operation is invalid.")
	require.Error(t, err)

	execErr, ok := err.(*ExecutionError)
	require.True(t, ok, "expected *ExecutionError, got %T", err)
	require.Equal(t, "Criteria operation is invalid.", execErr.Error())
}

func TestNewf(t *testing.T) {
	t.Parallel()

	err := Newf("Items size exceeded. Provided %d, maximum %d", 201, 200)
	require.EqualError(t, err, "Items size exceeded. Provided 201, maximum 200")
}

func TestIs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "plain error", err: errors.New("boom"), expected: false},
		{name: "execution error", err: New("bad"), expected: true},
		{name: "wrapped execution error", err: fmt.Errorf("calling COUNTIF: %w", New("bad")), expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, Is(tt.err))
		})
	}
}

func TestMessage(t *testing.T) {
	t.Parallel()

	t.Run("returns empty string for nil", func(t *testing.T) {
		t.Parallel()
		require.Empty(t, Message(nil))
	})

	t.Run("unwraps execution error message", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("evaluating formula: %w", New("Column name cannot be empty."))
		require.Equal(t, "Column name cannot be empty.", Message(err))
	})

	t.Run("falls back to error text", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "boom", Message(errors.New("boom")))
	})
}
