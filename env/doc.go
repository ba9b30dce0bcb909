// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package env provides an interface-based abstraction for environment variable
access, so that limits and logging can be configured from the environment
while tests stay isolated from the real process environment.

# Basic Usage

Use OSReader to read environment variables via the standard os package:

	reader := &env.OSReader{}
	n, ok, err := env.Int(reader, "FORMULAS_MAX_ARRAY_SIZE")

# Testing

A generated mock is available in the mocks sub-package:

	ctrl := gomock.NewController(t)
	mock := mocks.NewMockReader(ctrl)
	mock.EXPECT().Getenv("FORMULAS_MAX_ARRAY_SIZE").Return("500")
*/
package env
