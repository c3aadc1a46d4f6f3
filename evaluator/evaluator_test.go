package evaluator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/sassgo/ast"
	"github.com/titpetric/sassgo/env"
	"github.com/titpetric/sassgo/evaluator"
	"github.com/titpetric/sassgo/value"
)

func lit(v value.Value) ast.Expr { return ast.NewLiteral(v, ast.ParserState{}) }

func TestEvalArithmeticUnitRule(t *testing.T) {
	scope := env.NewGlobal()
	ev := evaluator.New(scope, nil)
	expr := ast.NewBinary(ast.OpAdd, lit(value.NewNumberUnit(10, "px")), lit(value.NewNumberUnit(1, "in")), ast.ParserState{})
	v, err := ev.Eval(expr)
	require.NoError(t, err)
	n := v.(value.Number)
	require.InDelta(t, 106, n.Val, 1e-9)
}

func TestEvalVariableLookup(t *testing.T) {
	scope := env.NewGlobal()
	scope.SetVar("x", value.NewNumber(5))
	ev := evaluator.New(scope, nil)
	v, err := ev.Eval(ast.NewVariable("x", ast.ParserState{}))
	require.NoError(t, err)
	require.True(t, v.Equal(value.NewNumber(5)))
}

func TestEvalAndShortCircuits(t *testing.T) {
	scope := env.NewGlobal()
	ev := evaluator.New(scope, nil)
	expr := ast.NewBinary(ast.OpAnd, lit(value.Boolean(false)), lit(value.NewNumber(1)), ast.ParserState{})
	v, err := ev.Eval(expr)
	require.NoError(t, err)
	require.Equal(t, value.Boolean(false), v)
}

func TestEvalStringConcatPreservesLeftQuoting(t *testing.T) {
	scope := env.NewGlobal()
	ev := evaluator.New(scope, nil)
	left := lit(value.NewQuoted("a", value.QuoteDouble))
	right := lit(value.NewUnquoted("b"))
	expr := ast.NewBinary(ast.OpAdd, left, right, ast.ParserState{})
	v, err := ev.Eval(expr)
	require.NoError(t, err)
	s := v.(value.Str)
	require.Equal(t, "ab", s.Text)
	require.True(t, s.Quoted)
}

func TestEvalSchemaSplicesWithoutReparsing(t *testing.T) {
	scope := env.NewGlobal()
	ev := evaluator.New(scope, nil)
	interp := lit(value.NewNumber(3))
	schema := ast.Expr{Kind: ast.ExprSchema, Parts: []ast.SchemaPart{
		{Literal: "width-"},
		{Interpolant: &interp},
		{Literal: "px"},
	}}
	v, err := ev.Eval(schema)
	require.NoError(t, err)
	require.Equal(t, "width-3px", v.(value.Str).Text)
}

func TestEvalCallDispatchesUserFunctionBeforeBuiltin(t *testing.T) {
	scope := env.NewGlobal()
	scope.SetFunction("f", fnConst{v: value.NewNumber(1)})
	calledBuiltin := false
	builtins := func(name string) (value.Callable, bool) {
		calledBuiltin = true
		return fnConst{v: value.NewNumber(2)}, true
	}
	ev := evaluator.New(scope, builtins)
	call := ast.NewCall("f", nil, nil, ast.ParserState{})
	v, err := ev.Eval(call)
	require.NoError(t, err)
	require.True(t, v.Equal(value.NewNumber(1)))
	require.False(t, calledBuiltin)
}

func TestEvalCallFallsBackToPassThrough(t *testing.T) {
	scope := env.NewGlobal()
	ev := evaluator.New(scope, func(string) (value.Callable, bool) { return nil, false })
	call := ast.NewCall("calc", []ast.Expr{lit(value.NewNumber(1))}, nil, ast.ParserState{})
	v, err := ev.Eval(call)
	require.NoError(t, err)
	require.Equal(t, "calc(1)", v.String())
}

type fnConst struct{ v value.Value }

func (f fnConst) Call(positional []value.Value, named map[string]value.Value) (value.Value, error) {
	return f.v, nil
}

func TestSupportsBooleanAlgebra(t *testing.T) {
	fb := evaluator.ExprFallback{}
	ok, err := fb.EvalSupports("a && !b", map[string]interface{}{"a": true, "b": false})
	require.NoError(t, err)
	require.True(t, ok)
}
