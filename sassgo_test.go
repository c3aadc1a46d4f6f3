package sassgo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/sassgo"
	"github.com/titpetric/sassgo/ast"
	"github.com/titpetric/sassgo/functions"
	"github.com/titpetric/sassgo/value"
)

func lit(v value.Value) *ast.Expr {
	e := ast.NewLiteral(v, ast.ParserState{})
	return &e
}

func schema(literal string) ast.SchemaValue {
	return ast.SchemaValue{Parts: []ast.SchemaPart{{Literal: literal}}}
}

func selSchema(literal string) ast.SelectorSchema {
	return ast.SelectorSchema{Parts: []ast.SchemaPart{{Literal: literal}}}
}

func TestCompileProducesOutputEligibleTree(t *testing.T) {
	tree := []ast.Stmt{
		{Kind: ast.StmtAssignment, AssignName: "base", AssignValue: lit(value.NewNumberUnit(10, "px"))},
		{
			Kind:     ast.StmtRuleset,
			Selector: selSchema(".card"),
			Body: []ast.Stmt{
				{
					Kind:      ast.StmtDeclaration,
					PropName:  schema("width"),
					PropValue: varRef("base"),
				},
			},
		},
	}
	result, err := sassgo.Compile(tree, sassgo.Options{Filename: "demo.scss"})
	require.NoError(t, err)
	require.Len(t, result.Tree, 1)
	require.Equal(t, ".card", result.Tree[0].Selector.Resolved.String())
	require.Empty(t, result.UnsatisfiedExtends)
}

func varRef(varName string) *ast.Expr {
	e := ast.NewVariable(varName, ast.ParserState{})
	return &e
}

func TestCompileClassifiesUndefinedVariable(t *testing.T) {
	tree := []ast.Stmt{
		{
			Kind:      ast.StmtDeclaration,
			PropName:  schema("width"),
			PropValue: varRef("missing"),
		},
	}
	_, err := sassgo.Compile(tree, sassgo.Options{})
	require.Error(t, err)
	var sassErr *sassgo.Error
	require.ErrorAs(t, err, &sassErr)
	require.Equal(t, sassgo.KindUndefinedVariable, sassErr.Kind)
}

func TestCompileHostFunctionOverridesStandardRegistry(t *testing.T) {
	tree := []ast.Stmt{
		{
			Kind:      ast.StmtDeclaration,
			PropName:  schema("content"),
			PropValue: callExpr("double", lit(value.NewNumber(21))),
		},
	}
	result, err := sassgo.Compile(tree, sassgo.Options{
		Functions: functions.Registry{
			"double": functions.Fn(func(positional []value.Value, named map[string]value.Value) (value.Value, error) {
				n := positional[0].(value.Number)
				return value.NewNumber(n.Val * 2), nil
			}),
		},
	})
	require.NoError(t, err)
	require.Len(t, result.Tree, 1)
}

func callExpr(name string, args ...*ast.Expr) *ast.Expr {
	positional := make([]ast.Expr, len(args))
	for i, a := range args {
		positional[i] = *a
	}
	e := ast.NewCall(name, positional, nil, ast.ParserState{})
	return &e
}

func TestCompileWarnIsCapturedInResultAndForwardedToLogger(t *testing.T) {
	tree := []ast.Stmt{
		{Kind: ast.StmtWarn, Message: lit(value.NewUnquoted("be careful"))},
	}
	var seen []string
	result, err := sassgo.Compile(tree, sassgo.Options{
		Logger: recordingLogger{seen: &seen},
	})
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	require.Equal(t, "be careful", result.Warnings[0].Message)
	require.False(t, result.Warnings[0].Debug)
	require.Equal(t, []string{"be careful"}, seen)
}

type recordingLogger struct{ seen *[]string }

func (r recordingLogger) Warn(msg string, _ ast.ParserState)  { *r.seen = append(*r.seen, msg) }
func (r recordingLogger) Debug(msg string, _ ast.ParserState) {}

func TestCompileReturnsUnsatisfiedExtends(t *testing.T) {
	tree := []ast.Stmt{
		{
			Kind:     ast.StmtRuleset,
			Selector: selSchema(".card"),
			Body: []ast.Stmt{
				{Kind: ast.StmtExtend, ExtendTarget: selSchema(".nope")},
			},
		},
	}
	result, err := sassgo.Compile(tree, sassgo.Options{})
	require.NoError(t, err)
	require.Len(t, result.UnsatisfiedExtends, 1)
}
