// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package sheet

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/stacklok/toolhive-formulas/guard"
	"github.com/stacklok/toolhive-formulas/table"
	"github.com/stacklok/toolhive-formulas/value"
)

var (
	// ErrSheetNotFound is returned when the workbook has no sheet with the requested name.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrNoHeader is returned when a worksheet has no header row.
	ErrNoHeader = errors.New("sheet has no header row")
	// ErrDuplicateColumn is returned when two header cells carry the same name.
	ErrDuplicateColumn = errors.New("duplicate column")
)

// Load reads one worksheet of the workbook at path. An empty sheetName
// selects the first sheet.
func Load(path, sheetName string, maxRows int) (table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return ReadFile(f, sheetName, maxRows)
}

// Read is like Load for a workbook read from r.
func Read(r io.Reader, sheetName string, maxRows int) (table.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadFile(f, sheetName, maxRows)
}

// ReadFile converts a worksheet of an open workbook into a table.
func ReadFile(f *excelize.File, sheetName string, maxRows int) (table.Table, error) {
	name, err := resolveSheet(f, sheetName)
	if err != nil {
		return nil, err
	}

	rows, err := f.Rows(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", name, err)
	}
	defer func() { _ = rows.Close() }()

	var (
		header []string
		out    table.Table
		count  int
		rowNum int
	)
	for rows.Next() {
		rowNum++
		cells, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d of sheet %s: %w", rowNum, name, err)
		}
		if blank(cells) {
			continue
		}
		if header == nil {
			if header, err = columns(cells); err != nil {
				return nil, err
			}
			continue
		}

		// Keep counting past the limit so the error reports the real size.
		count++
		if count > maxRows {
			continue
		}
		row, err := convertRow(f, name, rowNum, header, cells)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("failed to iterate sheet %s: %w", name, err)
	}
	if header == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoHeader, name)
	}
	if err := guard.CheckSize(count, maxRows); err != nil {
		return nil, err
	}
	if out == nil {
		out = table.Table{}
	}
	return out, nil
}

func resolveSheet(f *excelize.File, sheetName string) (string, error) {
	if sheetName == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return "", fmt.Errorf("%w: workbook has no sheets", ErrSheetNotFound)
		}
		return list[0], nil
	}
	idx, err := f.GetSheetIndex(sheetName)
	if err != nil || idx < 0 {
		return "", fmt.Errorf("%w: %s", ErrSheetNotFound, sheetName)
	}
	return sheetName, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// columns names each header cell; unnamed header cells drop their column.
func columns(cells []string) ([]string, error) {
	header := make([]string, len(cells))
	seen := make(map[string]struct{}, len(cells))
	for i, c := range cells {
		name := strings.TrimSpace(c)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
		seen[name] = struct{}{}
		header[i] = name
	}
	return header, nil
}

func convertRow(f *excelize.File, sheetName string, rowNum int, header, cells []string) (*value.Row, error) {
	row := value.NewRow()
	for i, raw := range cells {
		if i >= len(header) || header[i] == "" || raw == "" {
			continue
		}
		ref, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			return nil, err
		}
		typ, err := f.GetCellType(sheetName, ref)
		if err != nil {
			return nil, fmt.Errorf("failed to read cell %s: %w", ref, err)
		}
		row.Set(header[i], cellValue(typ, raw))
	}
	return row, nil
}

func cellValue(typ excelize.CellType, raw string) any {
	switch typ {
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError, excelize.CellTypeDate:
		return raw
	default:
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return n
		}
		return raw
	}
}
