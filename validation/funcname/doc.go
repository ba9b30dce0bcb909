// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package funcname provides validation functions for formula function names.

Function names are exposed to expression authors and looked up by the host
evaluator, so they follow one convention across every module.

# Name Validation

	if err := funcname.ValidateName("TABLESUMIFS"); err != nil {
		// Handle invalid function name
	}

Valid function names must:
  - Be non-empty
  - Start with an uppercase letter
  - Contain only uppercase letters, digits, underscores and dots
  - Not end with a dot
  - Not exceed 64 bytes

# Examples

Valid names:

	"COUNTIF"
	"TABLESUMIFSOR"
	"STATS.MEDIAN"

Invalid names:

	""           // empty
	"countif"    // lowercase
	"1SUM"       // leading digit
	"SUM-IF"     // special characters
	"SUM."       // trailing dot
*/
package funcname
