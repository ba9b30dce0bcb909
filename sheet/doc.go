// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package sheet loads spreadsheet worksheets as formula tables.

The first non-blank row of a worksheet names the columns. Every following
non-blank row becomes one table row:

	t, err := sheet.Load("sales.xlsx", "Q1", limits.MaxTableSize)
	if err != nil {
		return err
	}
	total := table.Sum(t, "amount", table.Filter{})

Numeric and boolean cells keep their type, text cells stay strings and
empty cells are left out of the row. Loading stops with an execution error
once the worksheet has more data rows than the given maximum.
*/
package sheet
