// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	limits := Default()
	assert.Equal(t, 10000, limits.MaxTextLength)
	assert.Equal(t, 200, limits.MaxArraySize)
	assert.Equal(t, 255, limits.MaxCriteriaLength)
	assert.Equal(t, 3000, limits.MaxTableSize)
	require.NoError(t, limits.Validate())
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		want    Limits
		wantErr string
	}{
		{
			name: "no options keeps defaults",
			want: Default(),
		},
		{
			name: "each option overrides one limit",
			opts: []Option{
				WithMaxTextLength(50),
				WithMaxArraySize(10),
				WithMaxCriteriaLength(20),
				WithMaxTableSize(100),
			},
			want: Limits{MaxTextLength: 50, MaxArraySize: 10, MaxCriteriaLength: 20, MaxTableSize: 100},
		},
		{
			name: "later option wins",
			opts: []Option{WithMaxArraySize(10), WithMaxArraySize(20)},
			want: Limits{MaxTextLength: 10000, MaxArraySize: 20, MaxCriteriaLength: 255, MaxTableSize: 3000},
		},
		{
			name:    "zero is rejected",
			opts:    []Option{WithMaxArraySize(0)},
			wantErr: "max_array_size must satisfy gte=1",
		},
		{
			name:    "negative is rejected",
			opts:    []Option{WithMaxTableSize(-5)},
			wantErr: "max_table_size must satisfy gte=1, got -5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := New(tt.opts...)
			if tt.wantErr != "" {
				require.ErrorIs(t, err, ErrInvalidLimits)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLimits_WithDoesNotMutate(t *testing.T) {
	t.Parallel()

	base := Default()
	changed, err := base.With(WithMaxTextLength(5))
	require.NoError(t, err)

	assert.Equal(t, 5, changed.MaxTextLength)
	assert.Equal(t, DefaultMaxTextLength, base.MaxTextLength)
}

func TestLimits_ForTables(t *testing.T) {
	t.Parallel()

	limits, err := New(WithMaxTableSize(1234))
	require.NoError(t, err)

	tables := limits.ForTables()
	assert.Equal(t, 1234, tables.MaxArraySize)
	assert.Equal(t, 1234, tables.MaxTableSize)
	assert.Equal(t, DefaultMaxArraySize, limits.MaxArraySize)
}
