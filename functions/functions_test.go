package functions_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/sassgo/functions"
	"github.com/titpetric/sassgo/value"
)

func build(t *testing.T) functions.Registry {
	t.Helper()
	return functions.Builder{Seed: 1}.Build()
}

func call(t *testing.T, reg functions.Registry, name string, pos ...value.Value) value.Value {
	t.Helper()
	fn, ok := reg.Lookup(name)
	require.True(t, ok, "missing builtin %s", name)
	v, err := fn.Call(pos, nil)
	require.NoError(t, err)
	return v
}

func TestMixWithSelfIsIdentity(t *testing.T) {
	reg := build(t)
	red := value.NewRGBA(255, 0, 0, 1)
	out := call(t, reg, "mix", red, red, value.NewNumber(50))
	require.True(t, out.Equal(red))
}

func TestMapMergeWithEmptyIsIdentity(t *testing.T) {
	reg := build(t)
	m, err := value.NewMap([]value.Value{value.NewUnquoted("a")}, []value.Value{value.NewNumber(1)})
	require.NoError(t, err)
	empty := value.Map{}
	out := call(t, reg, "map-merge", m, empty)
	require.True(t, out.Equal(m))
}

func TestStrSliceNegativeIndices(t *testing.T) {
	reg := build(t)
	s := value.NewUnquoted("abcdef")
	out := call(t, reg, "str-slice", s, value.NewNumber(-3), value.NewNumber(-1))
	require.Equal(t, "def", out.(value.Str).Text)
}

func TestStrLengthCountsRunesNotBytes(t *testing.T) {
	reg := build(t)
	out := call(t, reg, "str-length", value.NewUnquoted("café"))
	require.True(t, out.Equal(value.NewNumber(4)))
}

func TestNthNegativeIndexFromEnd(t *testing.T) {
	reg := build(t)
	l := value.NewList(value.SeparatorComma, value.NewNumber(1), value.NewNumber(2), value.NewNumber(3))
	out := call(t, reg, "nth", l, value.NewNumber(-1))
	require.True(t, out.Equal(value.NewNumber(3)))
}

func TestPercentageAttachesPercentUnit(t *testing.T) {
	reg := build(t)
	out := call(t, reg, "percentage", value.NewNumber(0.5))
	n := out.(value.Number)
	require.InDelta(t, 50, n.Val, 1e-9)
	require.Equal(t, "%", n.UnitString())
}

func TestRandomRespectsLimit(t *testing.T) {
	reg := build(t)
	for i := 0; i < 20; i++ {
		out := call(t, reg, "random", value.NewNumber(5))
		n := out.(value.Number).Val
		require.GreaterOrEqual(t, n, 1.0)
		require.LessOrEqual(t, n, 5.0)
	}
}

func TestCallDispatchesThroughBuilderHook(t *testing.T) {
	called := false
	reg := functions.Builder{
		CallFunction: func(fn value.Value, positional []value.Value, named map[string]value.Value) (value.Value, error) {
			called = true
			return value.NewNumber(42), nil
		},
	}.Build()
	out := call(t, reg, "call", value.NewUnquoted("my-fn"))
	require.True(t, called)
	require.True(t, out.Equal(value.NewNumber(42)))
}

func TestVariableExistsDelegatesToHook(t *testing.T) {
	reg := functions.Builder{
		VariableExists: func(name string) bool { return name == "known" },
	}.Build()
	require.True(t, bool(call(t, reg, "variable-exists", value.NewUnquoted("known")).(value.Boolean)))
	require.False(t, bool(call(t, reg, "variable-exists", value.NewUnquoted("other")).(value.Boolean)))
}
