// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package recovery

import (
	"runtime/debug"

	"github.com/stacklok/toolhive-formulas/execerr"
)

// PanicHandler observes a recovered panic value and the stack at the point
// of the panic.
type PanicHandler func(recovered any, stack []byte)

// Option configures Call.
type Option func(*options)

type options struct {
	onPanic PanicHandler
}

// OnPanic registers a handler invoked after a panic is recovered.
func OnPanic(h PanicHandler) Option {
	return func(o *options) {
		o.onPanic = h
	}
}

// Call runs fn and converts a panic into an execution error naming the
// function. Errors returned by fn pass through unchanged.
func Call(name string, fn func() (any, error), opts ...Option) (result any, err error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	defer func() {
		if r := recover(); r != nil {
			if o.onPanic != nil {
				o.onPanic(r, debug.Stack())
			}
			result = nil
			err = execerr.Newf("Function %s failed unexpectedly.", name)
		}
	}()
	return fn()
}
