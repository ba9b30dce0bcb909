// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package execerr provides the single error kind raised by formula functions.

Every validation failure inside a formula function (oversized sequences,
overlong text, malformed criteria, wrong argument types) is reported as an
ExecutionError carrying a human-readable message. The host evaluator is
expected to surface the message to its own caller unchanged.

# Basic Usage

	err := execerr.New("Criteria operation is invalid.")

	err = execerr.Newf("Items size exceeded. Provided %d, maximum %d", 201, 200)

# Inspecting Errors

ExecutionError supports the standard wrapping helpers, so it survives being
wrapped by a host adapter:

	wrapped := fmt.Errorf("evaluating formula: %w", err)

	if execerr.Is(wrapped) {
	    fmt.Println(execerr.Message(wrapped)) // the original message
	}

	var execErr *execerr.ExecutionError
	if errors.As(wrapped, &execErr) {
	    // ...
	}
*/
package execerr
