// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package config provides the size and length limits that bound every formula
function call.

Limits are an immutable value built once per function module and captured by
the functions it produces. There is no shared global configuration.

# Building Limits

	limits, err := config.New(
		config.WithMaxArraySize(500),
		config.WithMaxTextLength(20000),
	)

Options that are not supplied keep the defaults: 10000 characters of text,
200 sequence items, 255 characters of criteria and 3000 table rows.

# Loading Limits

Limits may also be read from a YAML file, validated against an embedded JSON
schema, and overridden from the environment:

	limits, err := config.Load(path)
	limits, err = config.FromEnv(&env.OSReader{}, limits)

Discover looks for toolhive-formulas/limits.yaml in the XDG config
directories.
*/
package config
