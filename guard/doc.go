// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package guard bounds the work a single formula function call can do.

Every collection-processing function checks its inputs here before touching
them. A violation returns an execution error and no partial output is ever
produced.

# Checks

CheckSize and CheckTextLength take an explicit limit for call sites that
need one:

	if err := guard.CheckSize(len(pairs), 60); err != nil {
		return nil, err
	}

A Guard is bound to the limits of one function module and applies them by
default:

	g := guard.New(limits)
	if err := g.CheckText(name); err != nil {
		return nil, err
	}

# Flattening

Flatten turns variadic arguments into one flat sequence, one level deep,
checking the running size before every append so that an oversized input is
rejected without first being copied:

	items, err := g.Flatten(args)
*/
package guard
