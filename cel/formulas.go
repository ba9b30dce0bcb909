// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package cel

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/common/types/traits"

	"github.com/stacklok/toolhive-formulas/functions"
	"github.com/stacklok/toolhive-formulas/table"
	"github.com/stacklok/toolhive-formulas/value"
)

// MaxVariadicArgs is the highest arity declared for functions without an
// upper bound: a table, a column and the largest accepted list of
// (column, criterion) pairs.
const MaxVariadicArgs = 2*table.MaxConditions + 2

// Formulas returns an environment option declaring every function of lib.
// Each function gets one overload per accepted arity, all taking and
// returning dyn. Calls go through lib, so arity checks, limits and panic
// recovery apply.
func Formulas(lib *functions.Library) cel.EnvOption {
	return cel.Lib(&formulaLibrary{lib: lib})
}

// Variables declares dyn variables with the given names.
func Variables(names ...string) cel.EnvOption {
	return cel.Lib(variables(names))
}

type variables []string

// CompileOptions implements cel.Library.
func (v variables) CompileOptions() []cel.EnvOption {
	opts := make([]cel.EnvOption, len(v))
	for i, name := range v {
		opts[i] = cel.Variable(name, cel.DynType)
	}
	return opts
}

// ProgramOptions implements cel.Library.
func (variables) ProgramOptions() []cel.ProgramOption {
	return nil
}

type formulaLibrary struct {
	lib *functions.Library
}

// CompileOptions implements cel.Library.
func (l *formulaLibrary) CompileOptions() []cel.EnvOption {
	// Formula results are doubles; let them compare with int literals.
	opts := []cel.EnvOption{cel.CrossTypeNumericComparisons(true)}
	for _, def := range l.lib.Definitions() {
		opts = append(opts, cel.Function(def.Name, l.overloads(def)...))
	}
	return opts
}

// ProgramOptions implements cel.Library.
func (*formulaLibrary) ProgramOptions() []cel.ProgramOption {
	return nil
}

func (l *formulaLibrary) overloads(def functions.Definition) []cel.FunctionOpt {
	maxArgs := def.MaxArgs
	if maxArgs == functions.Variadic {
		maxArgs = max(def.MinArgs, MaxVariadicArgs)
	}

	name := def.Name
	binding := cel.FunctionBinding(func(args ...ref.Val) ref.Val {
		native := make([]any, len(args))
		for i, arg := range args {
			native[i] = value.Normalize(FromVal(arg))
		}
		result, err := l.lib.Call(name, native...)
		if err != nil {
			return types.WrapErr(err)
		}
		return ToVal(result)
	})

	opts := make([]cel.FunctionOpt, 0, maxArgs-def.MinArgs+1)
	for n := def.MinArgs; n <= maxArgs; n++ {
		argTypes := make([]*cel.Type, n)
		for i := range argTypes {
			argTypes[i] = cel.DynType
		}
		opts = append(opts, cel.Overload(fmt.Sprintf("formula_%s_%d", name, n), argTypes, cel.DynType, binding))
	}
	return opts
}

// ToVal converts a native formula value to a CEL value. Numbers become
// doubles, sequences become lists and rows become string-keyed maps. Null and
// Undefined both become CEL null.
func ToVal(v any) ref.Val {
	switch t := v.(type) {
	case nil:
		return types.NullValue
	case ref.Val:
		return t
	case string:
		return types.String(t)
	case bool:
		return types.Bool(t)
	case *value.Row:
		entries := make(map[ref.Val]ref.Val, t.Len())
		for _, col := range t.Columns() {
			entries[types.String(col)] = ToVal(t.Get(col))
		}
		return types.NewRefValMap(types.DefaultTypeAdapter, entries)
	}

	if value.IsUndefined(v) {
		return types.NullValue
	}
	if value.IsNumber(v) {
		return types.Double(value.ToNumber(v))
	}
	if row, ok := value.AsRow(v); ok {
		return ToVal(row)
	}
	if seq, ok := value.AsSequence(v); ok {
		elems := make([]ref.Val, len(seq))
		for i, item := range seq {
			elems[i] = ToVal(item)
		}
		return types.NewRefValList(types.DefaultTypeAdapter, elems)
	}
	return types.DefaultTypeAdapter.NativeToValue(v)
}

// FromVal converts a CEL value to a native formula value. Lists become []any
// and maps become rows whose columns are sorted by name, since CEL maps are
// unordered.
func FromVal(v ref.Val) any {
	switch t := v.(type) {
	case types.Null:
		return nil
	case types.Double:
		return float64(t)
	case types.Int:
		return int64(t)
	case types.Uint:
		return uint64(t)
	case types.String:
		return string(t)
	case types.Bool:
		return bool(t)
	case traits.Mapper:
		return mapToRow(t)
	case traits.Lister:
		out := make([]any, 0)
		for it := t.Iterator(); it.HasNext() == types.True; {
			out = append(out, FromVal(it.Next()))
		}
		return out
	}
	return v.Value()
}

func mapToRow(m traits.Mapper) *value.Row {
	entries := make(map[string]any)
	for it := m.Iterator(); it.HasNext() == types.True; {
		key := it.Next()
		entries[value.ToString(FromVal(key))] = FromVal(m.Get(key))
	}
	return value.RowFromMap(entries)
}
