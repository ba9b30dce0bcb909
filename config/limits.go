// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Default limit values.
const (
	DefaultMaxTextLength     = 10000
	DefaultMaxArraySize      = 200
	DefaultMaxCriteriaLength = 255
	DefaultMaxTableSize      = 3000
)

// ErrInvalidLimits is returned when a limit is out of range.
var ErrInvalidLimits = errors.New("invalid limits")

// Limits bounds the work a single function call may do.
type Limits struct {
	// MaxTextLength caps any single text argument, in UTF-16 code units.
	MaxTextLength int `yaml:"max_text_length" json:"max_text_length" validate:"gte=1"`
	// MaxArraySize caps any processed sequence.
	MaxArraySize int `yaml:"max_array_size" json:"max_array_size" validate:"gte=1"`
	// MaxCriteriaLength caps a shorthand criterion string.
	MaxCriteriaLength int `yaml:"max_criteria_length" json:"max_criteria_length" validate:"gte=1"`
	// MaxTableSize caps table row counts and concatenation results.
	MaxTableSize int `yaml:"max_table_size" json:"max_table_size" validate:"gte=1"`
}

// Default returns the default limits.
func Default() Limits {
	return Limits{
		MaxTextLength:     DefaultMaxTextLength,
		MaxArraySize:      DefaultMaxArraySize,
		MaxCriteriaLength: DefaultMaxCriteriaLength,
		MaxTableSize:      DefaultMaxTableSize,
	}
}

// Option overrides one limit.
type Option func(*Limits)

// WithMaxTextLength sets the text length cap.
func WithMaxTextLength(n int) Option {
	return func(l *Limits) { l.MaxTextLength = n }
}

// WithMaxArraySize sets the sequence size cap.
func WithMaxArraySize(n int) Option {
	return func(l *Limits) { l.MaxArraySize = n }
}

// WithMaxCriteriaLength sets the shorthand criterion length cap.
func WithMaxCriteriaLength(n int) Option {
	return func(l *Limits) { l.MaxCriteriaLength = n }
}

// WithMaxTableSize sets the table row cap.
func WithMaxTableSize(n int) Option {
	return func(l *Limits) { l.MaxTableSize = n }
}

// New applies opts over the defaults and validates the result.
func New(opts ...Option) (Limits, error) {
	return Default().With(opts...)
}

// With returns a copy of l with opts applied, validated.
func (l Limits) With(opts ...Option) (Limits, error) {
	for _, opt := range opts {
		opt(&l)
	}
	if err := l.Validate(); err != nil {
		return Limits{}, err
	}
	return l, nil
}

// ForTables returns the limits table operations run with: the sequence cap
// is raised to the table cap.
func (l Limits) ForTables() Limits {
	l.MaxArraySize = l.MaxTableSize
	return l
}

// Validate checks that every limit is positive.
func (l Limits) Validate() error {
	err := validate().Struct(l)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidLimits, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s, got %v", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidLimits, strings.Join(msgs, "; "))
}

var (
	validateOnce sync.Once
	validatorV   *validator.Validate
)

func validate() *validator.Validate {
	validateOnce.Do(func() {
		validatorV = validator.New(validator.WithRequiredStructEnabled())
		validatorV.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})
	})
	return validatorV
}
