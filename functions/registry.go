// Package functions implements the Sass built-in function library
// (numeric, color, string, list, map, introspection) over value.Value,
// keyed by name to a Callable rather than a string-typed FuncMap, so
// arguments and results stay in the richer value model end to end.
package functions

import (
	"fmt"
	"math/rand"

	"github.com/titpetric/sassgo/value"
)

// Fn adapts a plain Go function into value.Callable, so built-ins are
// just func literals closing over helpers like lighten/darken/mix.
type Fn func(positional []value.Value, named map[string]value.Value) (value.Value, error)

func (f Fn) Call(positional []value.Value, named map[string]value.Value) (value.Value, error) {
	return f(positional, named)
}

// Registry is the FuncMap equivalent: name -> built-in callable.
type Registry map[string]value.Callable

// Lookup adapts a Registry into the evaluator.Builtins function-value
// shape without functions needing to import evaluator (it already
// matches the signature structurally).
func (r Registry) Lookup(name string) (value.Callable, bool) {
	fn, ok := r[name]
	return fn, ok
}

// Builder assembles the full built-in Registry, threading through the
// bits introspection needs that only the caller (ultimately the
// expander, which owns the environment) can answer.
type Builder struct {
	Seed int64

	VariableExists       func(name string) bool
	GlobalVariableExists func(name string) bool
	FunctionExists       func(name string) bool
	MixinExists          func(name string) bool
	FeatureExists        func(name string) bool
	CallFunction         func(fn value.Value, positional []value.Value, named map[string]value.Value) (value.Value, error)
}

func (b Builder) Build() Registry {
	reg := Registry{}
	rnd := rand.New(rand.NewSource(b.Seed))
	addNumeric(reg, rnd)
	addColor(reg)
	addString(reg)
	addList(reg)
	addMap(reg)
	addIntrospection(reg, b)
	return reg
}

func argErr(name string, want, got int) error {
	return fmt.Errorf("functions: %s() expects %d argument(s), got %d", name, want, got)
}

func requireNumber(name string, v value.Value) (value.Number, error) {
	n, ok := v.(value.Number)
	if !ok {
		return value.Number{}, fmt.Errorf("functions: %s() expects a number, got %s", name, v.Type())
	}
	return n, nil
}

func requireColor(name string, v value.Value) (value.Color, error) {
	c, ok := v.(value.Color)
	if !ok {
		return value.Color{}, fmt.Errorf("functions: %s() expects a color, got %s", name, v.Type())
	}
	return c, nil
}

func argErrType(name, want string, v value.Value) error {
	return fmt.Errorf("functions: %s() expects a %s, got %s", name, want, v.Type())
}

func requireString(name string, v value.Value) (value.Str, error) {
	s, ok := v.(value.Str)
	if !ok {
		return value.Str{}, fmt.Errorf("functions: %s() expects a string, got %s", name, v.Type())
	}
	return s, nil
}

func arg(positional []value.Value, i int) value.Value {
	if i < len(positional) {
		return positional[i]
	}
	return nil
}
