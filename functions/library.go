// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package functions

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/stacklok/toolhive-formulas/config"
	"github.com/stacklok/toolhive-formulas/execerr"
	"github.com/stacklok/toolhive-formulas/recovery"
	"github.com/stacklok/toolhive-formulas/validation/funcname"
)

// Sentinel errors for library operations.
var (
	// ErrUnknownFunction is returned when calling a name that is not registered.
	ErrUnknownFunction = errors.New("unknown function")

	// ErrDuplicateFunction is returned when two modules define the same name.
	ErrDuplicateFunction = errors.New("duplicate function")

	// ErrInvalidDefinition is returned for a definition with an invalid name,
	// arity or a nil implementation.
	ErrInvalidDefinition = errors.New("invalid function definition")
)

// DefaultModules are the modules registered by NewLibrary unless WithModules
// is given.
func DefaultModules() []Module {
	return []Module{Statistic, Math, Array, Table}
}

// Library is an immutable set of registered functions. It is safe for
// concurrent use from multiple goroutines.
type Library struct {
	limits      config.Limits
	logger      *zap.Logger
	definitions map[string]Definition
	names       []string
}

// Option configures a Library.
type Option func(*libraryOptions)

type libraryOptions struct {
	logger  *zap.Logger
	modules []Module
	extra   []Definition
}

// WithLogger sets the logger used for registration and call failures.
func WithLogger(logger *zap.Logger) Option {
	return func(o *libraryOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithModules replaces the default module set.
func WithModules(modules ...Module) Option {
	return func(o *libraryOptions) {
		o.modules = modules
	}
}

// WithDefinitions registers additional functions next to the modules.
func WithDefinitions(defs ...Definition) Option {
	return func(o *libraryOptions) {
		o.extra = append(o.extra, defs...)
	}
}

// NewLibrary builds every module with limits and registers its functions.
func NewLibrary(limits config.Limits, opts ...Option) (*Library, error) {
	if err := limits.Validate(); err != nil {
		return nil, err
	}

	o := libraryOptions{
		logger:  zap.NewNop(),
		modules: DefaultModules(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	lib := &Library{
		limits:      limits,
		logger:      o.logger,
		definitions: make(map[string]Definition),
	}
	for _, module := range o.modules {
		for _, def := range module(limits) {
			if err := lib.register(def); err != nil {
				return nil, err
			}
		}
	}
	for _, def := range o.extra {
		if err := lib.register(def); err != nil {
			return nil, err
		}
	}

	sort.Strings(lib.names)
	lib.logger.Debug("Formula library initialized", zap.Int("functions", len(lib.names)))
	return lib, nil
}

func (l *Library) register(def Definition) error {
	if err := funcname.ValidateName(def.Name); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}
	if def.Call == nil {
		return fmt.Errorf("%w: %s has no implementation", ErrInvalidDefinition, def.Name)
	}
	if def.MinArgs < 0 || (def.MaxArgs != Variadic && def.MaxArgs < def.MinArgs) {
		return fmt.Errorf("%w: %s has arity %d..%d", ErrInvalidDefinition, def.Name, def.MinArgs, def.MaxArgs)
	}
	if _, exists := l.definitions[def.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateFunction, def.Name)
	}

	l.definitions[def.Name] = def
	l.names = append(l.names, def.Name)
	l.logger.Debug("Registered formula function",
		zap.String("function", def.Name),
		zap.Int("min_args", def.MinArgs),
		zap.Int("max_args", def.MaxArgs))
	return nil
}

// Limits returns the limits the modules were built with.
func (l *Library) Limits() config.Limits {
	return l.limits
}

// Names returns the registered function names in sorted order.
func (l *Library) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// Lookup returns the definition registered under name.
func (l *Library) Lookup(name string) (Definition, bool) {
	def, ok := l.definitions[name]
	return def, ok
}

// Definitions returns every definition sorted by name.
func (l *Library) Definitions() []Definition {
	out := make([]Definition, 0, len(l.names))
	for _, name := range l.names {
		out = append(out, l.definitions[name])
	}
	return out
}

// Call invokes the function registered under name.
func (l *Library) Call(name string, args ...any) (any, error) {
	def, ok := l.definitions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}
	return l.invoke(def, args)
}

// Functions returns the plain name to function lookup consumed by a host
// evaluator. Each function checks arity and recovers from panics.
func (l *Library) Functions() map[string]Function {
	out := make(map[string]Function, len(l.definitions))
	for name, def := range l.definitions {
		out[name] = func(args ...any) (any, error) {
			return l.invoke(def, args)
		}
	}
	return out
}

func (l *Library) invoke(def Definition, args []any) (any, error) {
	if err := checkArity(def, len(args)); err != nil {
		return nil, err
	}

	result, err := recovery.Call(def.Name, func() (any, error) {
		return def.Call(args...)
	}, recovery.OnPanic(func(recovered any, stack []byte) {
		l.logger.Error("Formula function panicked",
			zap.String("function", def.Name),
			zap.Any("panic", recovered),
			zap.ByteString("stack", stack))
	}))
	if err != nil {
		l.logger.Debug("Formula function failed", zap.String("function", def.Name), zap.Error(err))
		return nil, err
	}
	return result, nil
}

func checkArity(def Definition, n int) error {
	if n < def.MinArgs {
		return execerr.Newf("Function %s expects at least %d arguments. Provided %d", def.Name, def.MinArgs, n)
	}
	if def.MaxArgs != Variadic && n > def.MaxArgs {
		return execerr.Newf("Function %s expects at most %d arguments. Provided %d", def.Name, def.MaxArgs, n)
	}
	return nil
}
