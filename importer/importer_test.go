package importer

import (
	"testing/fstest"

	"testing"

	"github.com/stretchr/testify/require"
)

func TestFSResolvePlainFile(t *testing.T) {
	fsys := fstest.MapFS{
		"partials/_card.scss": &fstest.MapFile{Data: []byte(".card { color: red; }")},
	}
	imp := FS{FSys: fsys}

	r := imp.Resolve("partials/card", "")
	require.Equal(t, Resolved, r.Kind)
	require.Equal(t, "partials/_card.scss", r.AbsolutePath)
	require.Equal(t, SyntaxSCSS, r.Syntax)
	require.Contains(t, r.SourceText, ".card")
}

func TestFSResolvePrefersUnderscoredPartial(t *testing.T) {
	fsys := fstest.MapFS{
		"card.scss":  &fstest.MapFile{Data: []byte("/* plain */")},
		"_card.scss": &fstest.MapFile{Data: []byte("/* partial */")},
	}
	imp := FS{FSys: fsys}

	r := imp.Resolve("card", "")
	require.Equal(t, Resolved, r.Kind)
	require.Equal(t, "_card.scss", r.AbsolutePath)
}

func TestFSResolveRelativeToBase(t *testing.T) {
	fsys := fstest.MapFS{
		"styles/_vars.scss": &fstest.MapFile{Data: []byte("$x: 1;")},
	}
	imp := FS{FSys: fsys}

	r := imp.Resolve("vars", "styles/main.scss")
	require.Equal(t, Resolved, r.Kind)
	require.Equal(t, "styles/_vars.scss", r.AbsolutePath)
}

func TestFSResolveFallsBackToRoots(t *testing.T) {
	fsys := fstest.MapFS{
		"vendor/_grid.scss": &fstest.MapFile{Data: []byte(".grid {}")},
	}
	imp := FS{FSys: fsys, Roots: []string{"vendor"}}

	r := imp.Resolve("grid", "app/main.scss")
	require.Equal(t, Resolved, r.Kind)
	require.Equal(t, "vendor/_grid.scss", r.AbsolutePath)
}

func TestFSResolveIndentedSyntax(t *testing.T) {
	fsys := fstest.MapFS{
		"_mixins.sass": &fstest.MapFile{Data: []byte("=reset\n  margin: 0")},
	}
	imp := FS{FSys: fsys}

	r := imp.Resolve("mixins", "")
	require.Equal(t, Resolved, r.Kind)
	require.Equal(t, SyntaxIndented, r.Syntax)
}

func TestFSResolveNotFound(t *testing.T) {
	imp := FS{FSys: fstest.MapFS{}}

	r := imp.Resolve("missing", "")
	require.Equal(t, NotFound, r.Kind)
}

func TestChainTriesEachImporterInOrder(t *testing.T) {
	first := FS{FSys: fstest.MapFS{}}
	second := FS{FSys: fstest.MapFS{
		"_found.scss": &fstest.MapFile{Data: []byte(".found {}")},
	}}
	chain := Chain{first, second}

	r := chain.Resolve("found", "")
	require.Equal(t, Resolved, r.Kind)
	require.Equal(t, "_found.scss", r.AbsolutePath)
}

func TestChainNotFoundWhenNoImporterClaims(t *testing.T) {
	chain := Chain{FS{FSys: fstest.MapFS{}}, FS{FSys: fstest.MapFS{}}}

	r := chain.Resolve("missing", "")
	require.Equal(t, NotFound, r.Kind)
}

func TestChainStopsAtFirstError(t *testing.T) {
	stub := stubImporter{result: Result{Kind: Error, Message: "boom"}}
	fallback := FS{FSys: fstest.MapFS{
		"_x.scss": &fstest.MapFile{Data: []byte("")},
	}}
	chain := Chain{stub, fallback}

	r := chain.Resolve("x", "")
	require.Equal(t, Error, r.Kind)
	require.Equal(t, "boom", r.Message)
}

type stubImporter struct{ result Result }

func (s stubImporter) Resolve(requested, base string) Result { return s.result }
