// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package execerr

import (
	"errors"
	"fmt"
)

// ExecutionError is raised by a formula function when its arguments fail
// validation. The message is meant for the end user of the host evaluator.
type ExecutionError struct {
	message string
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	return e.message
}

// New creates an ExecutionError with the given message.
func New(message string) error {
	return &ExecutionError{message: message}
}

// Newf creates an ExecutionError with a formatted message.
func Newf(format string, args ...any) error {
	return &ExecutionError{message: fmt.Sprintf(format, args...)}
}

// Is reports whether err, or any error it wraps, is an ExecutionError.
func Is(err error) bool {
	var execErr *ExecutionError
	return errors.As(err, &execErr)
}

// Message extracts the message of the first ExecutionError in the chain.
// If there is none, the full error text is returned; nil yields "".
func Message(err error) string {
	if err == nil {
		return ""
	}

	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr.message
	}

	return err.Error()
}
