// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stacklok/toolhive-formulas/config"
	"github.com/stacklok/toolhive-formulas/sheet"
	"github.com/stacklok/toolhive-formulas/value"
)

var (
	// ErrInvalidContext is returned when a context file is not a YAML mapping.
	ErrInvalidContext = errors.New("invalid context file")
	// ErrInvalidSheetFlag is returned when a --sheet value is malformed.
	ErrInvalidSheetFlag = errors.New("invalid sheet binding")
	// ErrInvalidVariable is returned for variable names that are not identifiers
	// or are bound twice.
	ErrInvalidVariable = errors.New("invalid variable")
)

var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// sheetBinding is a parsed NAME=PATH[#SHEET] flag value.
type sheetBinding struct {
	name  string
	path  string
	sheet string
}

func parseSheetBinding(s string) (sheetBinding, error) {
	name, target, ok := strings.Cut(s, "=")
	if !ok || name == "" || target == "" {
		return sheetBinding{}, fmt.Errorf("%w: %q, expected NAME=PATH[#SHEET]", ErrInvalidSheetFlag, s)
	}
	b := sheetBinding{name: name, path: target}
	if i := strings.LastIndex(target, "#"); i >= 0 {
		b.path, b.sheet = target[:i], target[i+1:]
	}
	if b.path == "" {
		return sheetBinding{}, fmt.Errorf("%w: %q has no path", ErrInvalidSheetFlag, s)
	}
	return b, nil
}

// loadInputs collects the variables of the context file and sheet bindings.
func loadInputs(opts *EvalOptions, limits config.Limits) (map[string]any, error) {
	inputs := map[string]any{}
	bind := func(name string, v any) error {
		if !identifierRegex.MatchString(name) {
			return fmt.Errorf("%w: %q is not an identifier", ErrInvalidVariable, name)
		}
		if _, dup := inputs[name]; dup {
			return fmt.Errorf("%w: %q is bound more than once", ErrInvalidVariable, name)
		}
		inputs[name] = v
		return nil
	}

	if opts.Context != "" {
		row, err := loadContext(opts.Context)
		if err != nil {
			return nil, err
		}
		for _, name := range row.Columns() {
			if err := bind(name, row.Get(name)); err != nil {
				return nil, err
			}
		}
	}

	for _, flag := range opts.Sheets {
		b, err := parseSheetBinding(flag)
		if err != nil {
			return nil, err
		}
		t, err := sheet.Load(b.path, b.sheet, limits.MaxTableSize)
		if err != nil {
			return nil, fmt.Errorf("failed to load sheet %s: %w", b.name, err)
		}
		if err := bind(b.name, t); err != nil {
			return nil, err
		}
	}
	return inputs, nil
}

// loadContext reads a YAML mapping, keeping the key order of every nested
// mapping so table columns come out as written.
func loadContext(path string) (*value.Row, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is supplied by the CLI user
	if err != nil {
		return nil, fmt.Errorf("failed to read context file: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidContext, err)
	}
	if len(doc.Content) == 0 {
		return value.NewRow(), nil
	}

	v, err := nodeValue(doc.Content[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidContext, err)
	}
	row, ok := v.(*value.Row)
	if !ok {
		return nil, fmt.Errorf("%w: top level must be a mapping", ErrInvalidContext)
	}
	return row, nil
}

func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.MappingNode:
		row := value.NewRow()
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			row.Set(n.Content[i].Value, v)
		}
		return row, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}
