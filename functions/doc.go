// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package functions provides the named formula functions exposed to a host
expression evaluator, and the Library that registers them.

Every function has the signature Function: it receives the dynamic argument
values of one call and returns a dynamic result or an
*execerr.ExecutionError. Functions are grouped in modules. A Module is built
from a config.Limits value, which every function of the module captures:

	defs := functions.Statistic(config.Default())

The modules are:

  - Statistic: COUNTIF, AVERAGEIF, AVERAGE, AVERAGEA, COUNT, COUNTA,
    COUNTBLANK, COUNTUNIQUE, MAX, MAXA, MIN, MINA, MEDIAN, MODE, SMALL,
    LARGE, STANDARDIZE.
  - Math: SUMIF.
  - Array: UNIQUE.
  - Table: the TABLE* aggregates (SUM, COUNT, MAX, MIN, AVG, each with IF,
    IFS and IFSOR variants), TABLEFILTERROWSIF, TABLEFILTERROWSIFS,
    TABLEFILTERROWSIFSOR, TABLEMATCHESCONDITIONS and TABLECONCATROWS. The
    table module applies MaxTableSize as its array limit.

# Library

A Library assembles modules into one lookup table, checks arity and turns
panics into execution errors:

	lib, err := functions.NewLibrary(config.Default(),
		functions.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	result, err := lib.Call("COUNTIF", []any{1, 2, 3, 4, 5}, ">2")
	// result == 3.0

Numbers are returned as float64. Not-a-number results such as the average
of an empty range are values, not errors.
*/
package functions
