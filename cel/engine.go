// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package cel evaluates formula expressions written in CEL, with the formula
// function library bound as CEL functions.
package cel

import (
	"fmt"
	"sync"

	"github.com/go-logr/logr"
	"github.com/google/cel-go/cel"
)

const (
	// DefaultMaxExpressionLength is the maximum allowed length for a CEL expression.
	// This limit prevents DoS attacks via excessively long expressions.
	DefaultMaxExpressionLength = 10000

	// DefaultCostLimit is the default runtime cost limit for CEL program evaluation.
	// This prevents DoS attacks via expensive operations in expressions.
	DefaultCostLimit = 1000000
)

// Engine compiles and evaluates formula expressions.
// It is safe for concurrent use from multiple goroutines.
type Engine struct {
	envCache            *envCache
	factory             envFactory
	maxExpressionLength int
	costLimit           uint64
	log                 logr.Logger
}

// envFactory is a function that creates a CEL environment.
type envFactory func() (*cel.Env, error)

// envCache holds a lazily-initialized CEL environment.
type envCache struct {
	once sync.Once
	env  *cel.Env
	err  error
}

// CompiledExpression represents a pre-compiled CEL program ready for evaluation.
type CompiledExpression struct {
	source  string
	program cel.Program
}

// Source returns the original expression source string.
func (ce *CompiledExpression) Source() string {
	return ce.source
}

// NewEngine creates a new CEL engine. The options are passed to cel.NewEnv;
// combine Formulas with Variables to evaluate formulas over named inputs:
//
//	engine := cel.NewEngine(
//	    cel.Formulas(lib),
//	    cel.Variables("sales", "threshold"),
//	)
func NewEngine(options ...cel.EnvOption) *Engine {
	return &Engine{
		envCache:            &envCache{},
		maxExpressionLength: DefaultMaxExpressionLength,
		costLimit:           DefaultCostLimit,
		log:                 logr.Discard(),
		factory: func() (*cel.Env, error) {
			return cel.NewEnv(options...)
		},
	}
}

// WithMaxExpressionLength sets the maximum allowed length for CEL expressions.
// Expressions exceeding this length will be rejected during compilation.
func (e *Engine) WithMaxExpressionLength(maxLen int) *Engine {
	e.maxExpressionLength = maxLen
	return e
}

// WithCostLimit sets the runtime cost limit for CEL program evaluation.
// Programs that exceed this cost during evaluation will return an error.
func (e *Engine) WithCostLimit(limit uint64) *Engine {
	e.costLimit = limit
	return e
}

// WithLogger sets the logger used for compilation diagnostics.
func (e *Engine) WithLogger(log logr.Logger) *Engine {
	e.log = log
	return e
}

// getEnv returns the CEL environment, creating it lazily on first access.
func (e *Engine) getEnv() (*cel.Env, error) {
	e.envCache.once.Do(func() {
		e.envCache.env, e.envCache.err = e.factory()
	})
	return e.envCache.env, e.envCache.err
}

// Compile parses and compiles an expression, returning a CompiledExpression
// that can be evaluated multiple times against different inputs.
//
// Returns an error if the expression exceeds the maximum length, or an
// *ExpressionError for syntax and type checking errors such as an unknown
// function or a wrong argument count.
func (e *Engine) Compile(expr string) (*CompiledExpression, error) {
	checkedAst, err := e.check(expr)
	if err != nil {
		return nil, err
	}

	env, err := e.getEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to get CEL environment: %w", err)
	}

	// Compile to a program with cost limit to prevent DoS via expensive operations
	program, err := env.Program(checkedAst, cel.CostLimit(e.costLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL program for %q: %w", expr, err)
	}

	e.log.V(1).Info("Compiled formula expression", "length", len(expr), "costLimit", e.costLimit)
	return &CompiledExpression{
		source:  expr,
		program: program,
	}, nil
}

// Check verifies that an expression is syntactically and semantically valid
// without creating a compiled program. This is useful for configuration validation.
func (e *Engine) Check(expr string) error {
	_, err := e.check(expr)
	return err
}

func (e *Engine) check(expr string) (*cel.Ast, error) {
	// Check expression length to prevent DoS via excessively long expressions
	if len(expr) > e.maxExpressionLength {
		return nil, fmt.Errorf("%w: expression length %d exceeds maximum of %d",
			ErrExpressionCheck, len(expr), e.maxExpressionLength)
	}

	env, err := e.getEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to get CEL environment: %w", err)
	}

	parsedAst, issues := env.Parse(expr)
	if issues.Err() != nil {
		e.log.V(1).Info("Formula expression failed to parse", "errors", len(issues.Errors()))
		return nil, newExpressionError(ErrKindParse, expr, issues)
	}

	checkedAst, issues := env.Check(parsedAst)
	if issues.Err() != nil {
		e.log.V(1).Info("Formula expression failed type checking", "errors", len(issues.Errors()))
		return nil, newExpressionError(ErrKindCheck, expr, issues)
	}
	return checkedAst, nil
}

// Evaluate executes the compiled expression against the provided inputs and
// returns the result as a native value: numbers are float64, lists are []any
// and maps are *value.Row. Input values are converted the other way before
// evaluation.
//
// Example:
//
//	result, err := expr.Evaluate(map[string]any{"sales": rows})
func (ce *CompiledExpression) Evaluate(inputs map[string]any) (any, error) {
	activation := make(map[string]any, len(inputs))
	for name, v := range inputs {
		activation[name] = ToVal(v)
	}

	out, _, err := ce.program.Eval(activation)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEvaluation, err)
	}
	return FromVal(out), nil
}

// EvaluateBool executes the compiled expression and returns the result as a bool.
// Returns an error if the expression does not evaluate to a boolean.
func (ce *CompiledExpression) EvaluateBool(inputs map[string]any) (bool, error) {
	result, err := ce.Evaluate(inputs)
	if err != nil {
		return false, err
	}

	boolResult, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("%w: expected bool, got %T", ErrInvalidResult, result)
	}

	return boolResult, nil
}
