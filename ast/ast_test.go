package ast_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/sassgo/ast"
)

func TestStmtKindInputOnlyPartitionsEveryVariant(t *testing.T) {
	all := []ast.StmtKind{
		ast.StmtIf, ast.StmtFor, ast.StmtEach, ast.StmtWhile, ast.StmtReturn,
		ast.StmtMixinDef, ast.StmtFunctionDef, ast.StmtInclude, ast.StmtContent,
		ast.StmtImportSass, ast.StmtExtend, ast.StmtAssignment,
		ast.StmtRuleset, ast.StmtDeclaration, ast.StmtMedia, ast.StmtSupports,
		ast.StmtDirective, ast.StmtKeyframeRule, ast.StmtImportCSS,
		ast.StmtComment, ast.StmtAtRoot,
	}
	for _, k := range all {
		require.NotEqual(t, k.IsInputOnly(), k.IsOutputEligible(), "kind %d must be exactly one of input-only/output-eligible", k)
	}
}

func TestNewBinaryLinksOperands(t *testing.T) {
	left := ast.NewLiteral(1, ast.ParserState{})
	right := ast.NewLiteral(2, ast.ParserState{})
	expr := ast.NewBinary(ast.OpAdd, left, right, ast.ParserState{})
	require.Equal(t, ast.ExprBinary, expr.Kind)
	require.Equal(t, 1, expr.Left.Literal)
	require.Equal(t, 2, expr.Right.Literal)
}

func TestNewCallCapturesNamedArgs(t *testing.T) {
	named := []ast.NamedArg{{Name: "limit", Val: ast.NewLiteral(10, ast.ParserState{})}}
	call := ast.NewCall("random", nil, named, ast.ParserState{})
	require.Equal(t, "random", call.Name)
	require.Len(t, call.Named, 1)
	require.Equal(t, "limit", call.Named[0].Name)
}
