// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/toolhive-formulas/cel"
	"github.com/stacklok/toolhive-formulas/logger"
)

// EvalOptions holds the flags of the eval command.
type EvalOptions struct {
	Context string
	Sheets  []string
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{}

	cmd := &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate a formula expression",
		Long: `Evaluate a CEL expression in which every formula function is available.

Variables come from the top-level keys of a YAML context file and from
worksheets bound with --sheet. The result is printed as YAML.

  formulactl eval 'TABLESUMIFS(sales, "amount", "region", "north")' \
    --sheet sales=report.xlsx#Q1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Context, "context", "c", "", "YAML file whose top-level keys become variables")
	cmd.Flags().StringArrayVarP(&opts.Sheets, "sheet", "s", nil, "bind a worksheet as a table variable (NAME=PATH[#SHEET])")

	return cmd
}

func runEval(rootOpts *RootOptions, opts *EvalOptions, expression string, cmd *cobra.Command) error {
	lib, log, err := newLibrary(rootOpts)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	inputs, err := loadInputs(opts, lib.Limits())
	if err != nil {
		return err
	}

	names := slices.Sorted(maps.Keys(inputs))
	engine := cel.NewEngine(cel.Formulas(lib), cel.Variables(names...)).
		WithLogger(logger.NewLogr(log))

	expr, err := engine.Compile(expression)
	if err != nil {
		return err
	}
	result, err := expr.Evaluate(inputs)
	if err != nil {
		if msg, ok := cel.ExecutionMessage(err); ok {
			return fmt.Errorf("evaluation failed: %s", msg)
		}
		return err
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return enc.Close()
}
