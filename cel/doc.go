// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package cel evaluates formula expressions written in the Common Expression
Language, with the formula function library bound as CEL functions.

The engine provides lazy-initialized, thread-safe environment caching, expression
compilation with structured parse and type-check error reporting, boolean and
generic value evaluation helpers, and built-in safeguards against denial-of-service
via configurable expression length and runtime cost limits.

# Basic Usage

Bind a function library, declare the input variables, compile and evaluate:

	lib, err := functions.NewLibrary(config.Default())
	if err != nil {
	    return err
	}

	engine := cel.NewEngine(
	    cel.Formulas(lib),
	    cel.Variables("sales"),
	)

	expr, err := engine.Compile(`TABLESUMIFS(sales, "value", "category", "A")`)
	if err != nil {
	    // handle compilation error
	}

	result, err := expr.Evaluate(map[string]any{"sales": rows})
	// result == 40.0

Every function is declared with one overload per accepted arity, taking and
returning dyn. Functions without an upper bound accept up to MaxVariadicArgs
arguments, enough for a table, a column and every accepted criteria pair.
Statistic functions also take their values as one list. A call with the
wrong number of arguments fails type checking.

# Values

Inputs are converted with ToVal and results with FromVal. Numbers cross the
boundary as doubles, sequences as lists and rows as string-keyed maps. CEL
has no undefined value, so Undefined becomes null. Maps coming back from CEL
become rows with their columns sorted by name.

Formula results compare with integer literals:

	expr, _ := engine.Compile(`COUNTIF(sales.map(r, r.value), ">10") > 1`)

# Error Handling

Compilation errors are returned as an *ExpressionError with location
information. Its Kind tells a syntax error from a type checking error:

	_, err := engine.Compile(`COUNTIF([1, 2]`)
	var exprErr *cel.ExpressionError
	if errors.As(err, &exprErr) && exprErr.Kind == cel.ErrKindParse {
	    fmt.Println(exprErr.Errors) // line/column/message details
	}

	_, err = engine.Compile(`NOPE(1)`)
	if details, ok := cel.Details(err); ok {
	    fmt.Println(details.String()) // "1:1: undeclared reference to 'NOPE' ..."
	}

A formula function that rejects its arguments fails the evaluation with
ErrEvaluation; ExecutionMessage extracts the message meant for the formula
author:

	_, err = expr.Evaluate(inputs)
	if msg, ok := cel.ExecutionMessage(err); ok {
	    fmt.Println(msg) // e.g. "Table variable should be an array."
	}

# DoS Protection

The engine includes configurable safeguards against denial-of-service:

	engine := cel.NewEngine(cel.Formulas(lib)).
	    WithMaxExpressionLength(5000).
	    WithCostLimit(500000)

The formula library applies its own size limits to every argument.
*/
package cel
