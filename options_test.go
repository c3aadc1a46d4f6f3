package sassgo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/sassgo"
	"github.com/titpetric/sassgo/ast"
	"github.com/titpetric/sassgo/importer"
	"github.com/titpetric/sassgo/value"
)

type stubImporter struct{ result importer.Result }

func (s stubImporter) Resolve(requested, base string) importer.Result { return s.result }

func TestCompileImportResolvedThroughOptionsImporters(t *testing.T) {
	partial := []ast.Stmt{
		{
			Kind:     ast.StmtRuleset,
			Selector: selSchema(".partial"),
			Body: []ast.Stmt{
				{Kind: ast.StmtDeclaration, PropName: schema("color"), PropValue: lit(value.NewUnquoted("green"))},
			},
		},
	}
	opts := sassgo.Options{
		Importers: importer.Chain{stubImporter{result: importer.Result{
			Kind:         importer.Resolved,
			AbsolutePath: "/abs/_partial.scss",
			SourceText:   "irrelevant source",
			Syntax:       importer.SyntaxSCSS,
		}}},
		Parse: func(source, syntax string) ([]ast.Stmt, error) {
			require.Equal(t, "irrelevant source", source)
			require.Equal(t, "scss", syntax)
			return partial, nil
		},
	}
	tree := []ast.Stmt{
		{Kind: ast.StmtImportSass, ImportTarget: "partial"},
	}
	result, err := sassgo.Compile(tree, opts)
	require.NoError(t, err)
	require.Len(t, result.Tree, 1)
	require.Equal(t, ".partial", result.Tree[0].Selector.Resolved.String())
}

func TestCompileImportPassthroughFromOptionsImporters(t *testing.T) {
	opts := sassgo.Options{
		Importers: importer.Chain{stubImporter{result: importer.Result{
			Kind:    importer.Passthrough,
			Literal: "url(\"theme\")",
		}}},
	}
	tree := []ast.Stmt{
		{Kind: ast.StmtImportSass, ImportTarget: "theme"},
	}
	result, err := sassgo.Compile(tree, opts)
	require.NoError(t, err)
	require.Len(t, result.Tree, 1)
	require.Equal(t, ast.StmtImportCSS, result.Tree[0].Kind)
	require.Equal(t, "url(\"theme\")", result.Tree[0].ImportTarget)
}

func TestCompileImportErrorFromOptionsImportersIsClassified(t *testing.T) {
	opts := sassgo.Options{
		Importers: importer.Chain{stubImporter{result: importer.Result{
			Kind:    importer.Error,
			Message: "permission denied",
		}}},
	}
	tree := []ast.Stmt{
		{Kind: ast.StmtImportSass, ImportTarget: "broken"},
	}
	_, err := sassgo.Compile(tree, opts)
	require.Error(t, err)
	var sassErr *sassgo.Error
	require.ErrorAs(t, err, &sassErr)
	require.Equal(t, sassgo.KindImportError, sassErr.Kind)
}
