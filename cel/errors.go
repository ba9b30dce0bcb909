// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package cel

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/stacklok/toolhive-formulas/execerr"
)

// Sentinel errors for formula expressions.
var (
	// ErrExpressionCheck is returned when an expression fails syntax or type checking.
	ErrExpressionCheck = errors.New("formula expression check failed")

	// ErrEvaluation is returned when evaluation fails, including when a
	// formula function returns an execution error.
	ErrEvaluation = errors.New("formula expression evaluation failed")

	// ErrInvalidResult is returned when the expression returns an unexpected type.
	ErrInvalidResult = errors.New("formula expression returned invalid result type")
)

// ExecutionMessage returns the message of the formula execution error that
// caused err, if any. The boolean is false for compilation errors and for
// failures raised by CEL itself.
func ExecutionMessage(err error) (string, bool) {
	if !execerr.Is(err) {
		return "", false
	}
	return execerr.Message(err), true
}

// ErrKind identifies the compilation stage an expression failed in.
type ErrKind string

const (
	// ErrKindParse indicates a syntax error.
	ErrKindParse ErrKind = "parse"
	// ErrKindCheck indicates a type checking error, such as an unknown
	// function or variable or a call with the wrong number of arguments.
	ErrKindCheck ErrKind = "check"
)

// ErrInstance is one located issue in an expression. Col is zero based.
type ErrInstance struct {
	Line int    `json:"line,omitempty"`
	Col  int    `json:"col,omitempty"`
	Msg  string `json:"msg,omitempty"`
}

// ErrDetails lists the issues found in one expression.
type ErrDetails struct {
	Errors []ErrInstance `json:"errors,omitempty"`
	Source string        `json:"source,omitempty"`
}

// AsJSON returns the ErrDetails as a JSON string.
func (ed *ErrDetails) AsJSON() string {
	edBytes, err := json.Marshal(ed)
	if err != nil {
		return fmt.Sprintf(`{"error": "failed to marshal JSON: %s"}`, err)
	}
	return string(edBytes)
}

// String renders one "line:col: message" entry per issue.
func (ed *ErrDetails) String() string {
	lines := make([]string, 0, len(ed.Errors))
	for _, e := range ed.Errors {
		lines = append(lines, fmt.Sprintf("%d:%d: %s", e.Line, e.Col+1, e.Msg))
	}
	return strings.Join(lines, "\n")
}

func errDetailsFromCelIssues(source string, issues *cel.Issues) ErrDetails {
	ed := ErrDetails{
		Source: source,
		Errors: make([]ErrInstance, 0, len(issues.Errors())),
	}
	for _, err := range issues.Errors() {
		ed.Errors = append(ed.Errors, ErrInstance{
			Line: err.Location.Line(),
			Col:  err.Location.Column(),
			Msg:  err.Message,
		})
	}
	return ed
}

// ExpressionError is a parse or check failure with the located issues.
// It unwraps to ErrExpressionCheck.
type ExpressionError struct {
	ErrDetails
	Kind     ErrKind
	original error
}

// Error implements the error interface.
func (e *ExpressionError) Error() string {
	return fmt.Sprintf("formula %s error in expression %q: %s", e.Kind, e.Source, e.original)
}

// Unwrap returns the underlying error.
func (e *ExpressionError) Unwrap() error {
	return e.original
}

// Details returns the located issues of a compilation failure.
func Details(err error) (ErrDetails, bool) {
	var exprErr *ExpressionError
	if !errors.As(err, &exprErr) {
		return ErrDetails{}, false
	}
	return exprErr.ErrDetails, true
}

func newExpressionError(kind ErrKind, source string, issues *cel.Issues) error {
	return &ExpressionError{
		ErrDetails: errDetailsFromCelIssues(source, issues),
		Kind:       kind,
		original:   fmt.Errorf("%w: %w", ErrExpressionCheck, issues.Err()),
	}
}
