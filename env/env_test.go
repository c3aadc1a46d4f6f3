package env_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/sassgo/env"
	"github.com/titpetric/sassgo/value"
)

func TestLexicalLookupWalksParents(t *testing.T) {
	root := env.NewGlobal()
	root.SetVar("x", value.NewNumber(1))
	child := root.PushLexical()
	v, ok := child.GetVar("x")
	require.True(t, ok)
	require.True(t, v.Equal(value.NewNumber(1)))
}

func TestLocalLookupDoesNotSeeParent(t *testing.T) {
	root := env.NewGlobal()
	root.SetVar("x", value.NewNumber(1))
	child := root.PushLexical()
	_, ok := child.GetVarLocal("x")
	require.False(t, ok)
}

func TestBlockScopeIsTransparentToAssignment(t *testing.T) {
	root := env.NewGlobal()
	root.SetVar("x", value.NewNumber(1))
	block := root.PushBlock()
	block.SetVar("x", value.NewNumber(2))

	v, ok := root.GetVarLocal("x")
	require.True(t, ok)
	require.True(t, v.Equal(value.NewNumber(2)), "block-scope assignment to an existing outer var should update it in place")
}

func TestGlobalFlagAssignsRoot(t *testing.T) {
	root := env.NewGlobal()
	lexical := root.PushLexical()
	lexical.SetVarGlobal("y", value.NewNumber(5))

	v, ok := root.GetVarLocal("y")
	require.True(t, ok)
	require.True(t, v.Equal(value.NewNumber(5)))
}

func TestDefaultFlagSkipsWhenAlreadyDefined(t *testing.T) {
	root := env.NewGlobal()
	root.SetVar("z", value.NewNumber(1))
	root.SetVarDefault("z", value.NewNumber(99))

	v, _ := root.GetVarLocal("z")
	require.True(t, v.Equal(value.NewNumber(1)))
}

func TestDefaultFlagAppliesWhenNullOrUndefined(t *testing.T) {
	root := env.NewGlobal()
	root.SetVarDefault("w", value.NewNumber(7))
	v, ok := root.GetVarLocal("w")
	require.True(t, ok)
	require.True(t, v.Equal(value.NewNumber(7)))

	root.SetVar("n", value.Null{})
	root.SetVarDefault("n", value.NewNumber(3))
	v2, _ := root.GetVarLocal("n")
	require.True(t, v2.Equal(value.NewNumber(3)))
}

func TestVarNamesPreservesDeclarationOrderAlongChain(t *testing.T) {
	root := env.NewGlobal()
	root.SetVar("a", value.NewNumber(1))
	root.SetVar("b", value.NewNumber(2))
	child := root.PushLexical()
	child.SetVar("c", value.NewNumber(3))

	names := child.VarNames()
	require.Equal(t, []string{"a", "b", "c"}, names)
}

type constFunc struct{ v value.Value }

func (c constFunc) Call(positional []value.Value, named map[string]value.Value) (value.Value, error) {
	return c.v, nil
}

func TestMixinLexicalLookup(t *testing.T) {
	root := env.NewGlobal()
	root.SetMixin("m", constFunc{v: value.NewNumber(42)})
	child := root.PushLexical()
	fn, ok := child.GetMixin("m")
	require.True(t, ok)
	v, err := fn.Call(nil, nil)
	require.NoError(t, err)
	require.True(t, v.Equal(value.NewNumber(42)))
}
