package expander_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/sassgo/ast"
	"github.com/titpetric/sassgo/env"
	"github.com/titpetric/sassgo/expander"
	"github.com/titpetric/sassgo/value"
)

func lit(v value.Value) ast.Expr { return ast.NewLiteral(v, ast.ParserState{}) }

func litPtr(v value.Value) *ast.Expr {
	e := lit(v)
	return &e
}

func schema(literal string) ast.SchemaValue {
	return ast.SchemaValue{Parts: []ast.SchemaPart{{Literal: literal}}}
}

func selSchema(literal string) ast.SelectorSchema {
	return ast.SelectorSchema{Parts: []ast.SchemaPart{{Literal: literal}}}
}

func decl(name string, v value.Value) ast.Stmt {
	return ast.Stmt{Kind: ast.StmtDeclaration, PropName: schema(name), PropValue: litPtr(v)}
}

func ruleset(selector string, body ...ast.Stmt) ast.Stmt {
	return ast.Stmt{Kind: ast.StmtRuleset, Selector: selSchema(selector), Body: body}
}

func TestExpandResolvesNestedParentReference(t *testing.T) {
	tree := []ast.Stmt{
		ruleset(".card",
			decl("width", value.NewNumberUnit(10, "px")),
			ruleset("&:hover", decl("color", value.NewUnquoted("red"))),
		),
	}
	out, unsatisfied, err := expander.New().Expand(tree, env.NewGlobal())
	require.NoError(t, err)
	require.Empty(t, unsatisfied)
	require.Len(t, out, 1)

	card := out[0]
	require.Equal(t, ast.StmtRuleset, card.Kind)
	require.Equal(t, ".card", card.Selector.Resolved.String())
	require.Len(t, card.Body, 2)
	require.Equal(t, "width", card.Body[0].PropName.Resolved)

	hover := card.Body[1]
	require.Equal(t, ast.StmtRuleset, hover.Kind)
	require.Equal(t, ".card:hover", hover.Selector.Resolved.String())
}

func TestExpandMixinIncludeWithContentUsesCallerScope(t *testing.T) {
	root := env.NewGlobal()
	content := []ast.Stmt{decl("color", value.NewUnquoted("blue"))}
	tree := []ast.Stmt{
		{Kind: ast.StmtMixinDef, DefName: "wrap", Body: []ast.Stmt{
			ruleset(".inner", ast.Stmt{Kind: ast.StmtContent}),
		}},
		ruleset(".outer",
			ast.Stmt{Kind: ast.StmtInclude, IncludeName: "wrap", IncludeContent: content},
		),
	}
	out, _, err := expander.New().Expand(tree, root)
	require.NoError(t, err)
	require.Len(t, out, 1)
	outer := out[0]
	require.Equal(t, ".outer", outer.Selector.Resolved.String())
	require.Len(t, outer.Body, 1)
	inner := outer.Body[0]
	require.Equal(t, ".outer .inner", inner.Selector.Resolved.String())
	require.Len(t, inner.Body, 1)
	require.Equal(t, "color", inner.Body[0].PropName.Resolved)
}

func TestExpandFunctionCallRequiresReturn(t *testing.T) {
	root := env.NewGlobal()
	tree := []ast.Stmt{
		{Kind: ast.StmtFunctionDef, DefName: "double",
			Params: []ast.Param{{Name: "n"}},
			Body: []ast.Stmt{
				{Kind: ast.StmtReturn, ReturnValue: litPtr(value.NewNumber(1))},
			},
		},
	}
	_, _, err := expander.New().Expand(tree, root)
	require.NoError(t, err)

	fn, ok := root.GetFunction("double")
	require.True(t, ok)
	v, err := fn.Call([]value.Value{value.NewNumber(21)}, nil)
	require.NoError(t, err)
	require.True(t, v.Equal(value.NewNumber(1)))
}

func TestExpandEachOverMapBindsKeyAndValue(t *testing.T) {
	m, err := value.NewMap(
		[]value.Value{value.NewUnquoted("a"), value.NewUnquoted("b")},
		[]value.Value{value.NewNumber(1), value.NewNumber(2)},
	)
	require.NoError(t, err)

	tree := []ast.Stmt{
		{
			Kind:     ast.StmtEach,
			EachVars: []string{"k", "v"},
			EachList: litPtr(m),
			Body: []ast.Stmt{
				ruleset(".item", decl("content", value.NewUnquoted("x"))),
			},
		},
	}
	out, _, err := expander.New().Expand(tree, env.NewGlobal())
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, st := range out {
		require.Equal(t, ".item", st.Selector.Resolved.String())
	}
}

func TestExpandExtendGraftsOntoTarget(t *testing.T) {
	tree := []ast.Stmt{
		ruleset("%base", decl("color", value.NewUnquoted("red"))),
		ruleset(".card",
			ast.Stmt{Kind: ast.StmtExtend, ExtendTarget: selSchema("%base")},
		),
	}
	out, unsatisfied, err := expander.New().Expand(tree, env.NewGlobal())
	require.NoError(t, err)
	require.Empty(t, unsatisfied)

	var selectors []string
	for _, st := range out {
		if st.Kind == ast.StmtRuleset {
			selectors = append(selectors, st.Selector.Resolved.String())
		}
	}
	require.Contains(t, selectors, ".card")
}

func TestExpandUnsatisfiedNonOptionalExtendIsReported(t *testing.T) {
	tree := []ast.Stmt{
		ruleset(".card",
			ast.Stmt{Kind: ast.StmtExtend, ExtendTarget: selSchema(".nope")},
		),
	}
	_, unsatisfied, err := expander.New().Expand(tree, env.NewGlobal())
	require.NoError(t, err)
	require.Len(t, unsatisfied, 1)
}

func TestExpandMediaBubblesOutOfRuleset(t *testing.T) {
	tree := []ast.Stmt{
		ruleset(".card",
			ast.Stmt{
				Kind:          ast.StmtMedia,
				AtRulePrelude: schema("(min-width: 100px)"),
				Body:          []ast.Stmt{decl("color", value.NewUnquoted("red"))},
			},
		),
	}
	out, _, err := expander.New().Expand(tree, env.NewGlobal())
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, ast.StmtRuleset, out[0].Kind)
	require.Empty(t, out[0].Body)
	require.Equal(t, ast.StmtMedia, out[1].Kind)
	require.Equal(t, "(min-width: 100px)", out[1].AtRulePrelude.Resolved)
}

func TestExpandNestedMediaCombinesWithAnd(t *testing.T) {
	tree := []ast.Stmt{
		{
			Kind:          ast.StmtMedia,
			AtRulePrelude: schema("screen"),
			Body: []ast.Stmt{
				{
					Kind:          ast.StmtMedia,
					AtRulePrelude: schema("(min-width: 100px)"),
					Body:          []ast.Stmt{decl("color", value.NewUnquoted("red"))},
				},
			},
		},
	}
	out, _, err := expander.New().Expand(tree, env.NewGlobal())
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "screen and (min-width: 100px)", out[0].AtRulePrelude.Resolved)
}

func TestExpandPlaceholderRulesetDoesNotSurviveAlone(t *testing.T) {
	tree := []ast.Stmt{
		ruleset("%base", decl("color", value.NewUnquoted("red"))),
	}
	out, unsatisfied, err := expander.New().Expand(tree, env.NewGlobal())
	require.NoError(t, err)
	require.Empty(t, unsatisfied)
	require.Empty(t, out)
}

func TestExpandUndefinedMixinIncludeErrors(t *testing.T) {
	tree := []ast.Stmt{
		{Kind: ast.StmtInclude, IncludeName: "missing"},
	}
	_, _, err := expander.New().Expand(tree, env.NewGlobal())
	require.Error(t, err)
	var target expander.ErrUndefinedMixin
	require.ErrorAs(t, err, &target)
	require.Equal(t, "missing", target.Name)
}

func TestExpandWhileLimitExceededReturnsRecursionError(t *testing.T) {
	tree := []ast.Stmt{
		{
			Kind:      ast.StmtWhile,
			WhileCond: litPtr(value.Boolean(true)),
			Body:      nil,
		},
	}
	ex := expander.New()
	ex.WhileLimit = 3
	_, _, err := ex.Expand(tree, env.NewGlobal())
	require.Error(t, err)
	var target expander.ErrRecursionLimitExceeded
	require.ErrorAs(t, err, &target)
}

func TestExpandErrorStatementAbortsCompilation(t *testing.T) {
	tree := []ast.Stmt{
		{Kind: ast.StmtError, Message: litPtr(value.NewUnquoted("boom"))},
	}
	_, _, err := expander.New().Expand(tree, env.NewGlobal())
	require.Error(t, err)
	var target expander.ErrUserError
	require.ErrorAs(t, err, &target)
	require.Equal(t, "boom", target.Message)
}

func TestExpandWarnAndDebugGoThroughLogger(t *testing.T) {
	var warned, debugged []string
	ex := expander.New()
	ex.Logger = recordingLogger{warn: &warned, debug: &debugged}
	tree := []ast.Stmt{
		{Kind: ast.StmtWarn, Message: litPtr(value.NewUnquoted("careful"))},
		{Kind: ast.StmtDebug, Message: litPtr(value.NewUnquoted("probe"))},
	}
	out, _, err := ex.Expand(tree, env.NewGlobal())
	require.NoError(t, err)
	require.Empty(t, out)
	require.Equal(t, []string{"careful"}, warned)
	require.Equal(t, []string{"probe"}, debugged)
}

type recordingLogger struct {
	warn  *[]string
	debug *[]string
}

func (r recordingLogger) Warn(msg string, _ ast.ParserState)  { *r.warn = append(*r.warn, msg) }
func (r recordingLogger) Debug(msg string, _ ast.ParserState) { *r.debug = append(*r.debug, msg) }

type stubImporter struct {
	result expander.ImportResult
}

func (s stubImporter) Resolve(requested, base string) expander.ImportResult { return s.result }

func TestExpandImportResolvesThroughImporterAndParse(t *testing.T) {
	imported := []ast.Stmt{
		ruleset(".partial", decl("color", value.NewUnquoted("green"))),
	}
	ex := expander.New()
	ex.Importers = stubImporter{result: expander.ImportResult{
		Kind:         expander.ImportResolved,
		AbsolutePath: "/abs/_partial.scss",
		SourceText:   "irrelevant",
		Syntax:       "scss",
	}}
	ex.Parse = func(source, syntax string) ([]ast.Stmt, error) {
		require.Equal(t, "irrelevant", source)
		require.Equal(t, "scss", syntax)
		return imported, nil
	}
	tree := []ast.Stmt{
		{Kind: ast.StmtImportSass, ImportTarget: "partial"},
	}
	out, _, err := ex.Expand(tree, env.NewGlobal())
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, ".partial", out[0].Selector.Resolved.String())
}

func TestExpandImportNotFoundWithoutImporterErrors(t *testing.T) {
	tree := []ast.Stmt{
		{Kind: ast.StmtImportSass, ImportTarget: "missing"},
	}
	_, _, err := expander.New().Expand(tree, env.NewGlobal())
	require.Error(t, err)
	var target expander.ErrImportNotFound
	require.ErrorAs(t, err, &target)
}

func TestExpandLiteralCSSImportPassesThroughUntouched(t *testing.T) {
	tree := []ast.Stmt{
		{Kind: ast.StmtImportSass, ImportTarget: "theme.css"},
	}
	out, _, err := expander.New().Expand(tree, env.NewGlobal())
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, ast.StmtImportCSS, out[0].Kind)
	require.Equal(t, "theme.css", out[0].ImportTarget)
}

func TestExpandReturnOutsideFunctionIsAnError(t *testing.T) {
	tree := []ast.Stmt{
		{Kind: ast.StmtReturn, ReturnValue: litPtr(value.NewNumber(1))},
	}
	_, _, err := expander.New().Expand(tree, env.NewGlobal())
	require.Error(t, err)
}
