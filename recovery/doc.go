// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package recovery turns panics raised inside formula functions into
// execution errors.
//
// A formula function runs on values supplied by an untrusted expression. A
// bug that panics on an unexpected input must not take down the host
// evaluator, so every call made through the function library is wrapped:
//
//	result, err := recovery.Call("COUNTIF", func() (any, error) {
//		return countIf(args...)
//	})
//
// The returned error is an *execerr.ExecutionError with the message
// "Function COUNTIF failed unexpectedly.". An OnPanic handler receives the
// recovered value and stack trace for logging.
//
// # Stability
//
// This package is Beta stability. The API may have minor changes before
// reaching stable status in v1.0.0.
package recovery
