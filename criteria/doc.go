// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package criteria implements the filter language shared by every "IF" and
"IFS" formula function.

A criterion is one of three literal forms:

  - Shorthand: a string with an optional comparison prefix, e.g. "20",
    ">20", "<=5" or "<>3". Without a prefix the operator is "=".
  - Pair: an explicit operator and value, e.g. ["<>", true]. The value is
    compared exactly as supplied, with no numeric coercion.
  - Sigil: one of the reserved literals #TRUE, #FALSE, #UNDEFINED, #NULL,
    #EMPTY, #NOT_EMPTY, #BLANK and #NOT_BLANK.

# Parsing and Evaluation

Parse resolves a literal once into a ParseResult, and Evaluate tests one
left-hand value against it:

	result := criteria.Parse(criteria.Shorthand(">2"))
	criteria.Evaluate(result, 3.0) // true

Parsing never fails. Dynamic criteria coming from formula arguments are
validated by FromValue first:

	c, err := criteria.FromValue(arg, limits.MaxCriteriaLength)
	if err != nil {
		return nil, err
	}
	match := criteria.NewPredicate(c)

# Coercion

Shorthand operands are text until evaluation. When the left-hand value is a
number and the operand reads as a number, the comparison is numeric, so
">2" matches 3 and "=02" matches 2, while "=02" does not match the text "2".
A null or undefined left-hand value fails every operator except "<>".
*/
package criteria
