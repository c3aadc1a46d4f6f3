package selector_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/sassgo/selector"
)

func TestIsSuperselectorReflexive(t *testing.T) {
	x := selector.SingleCompound(selector.NewCompound(selector.Class("foo")))
	require.True(t, selector.IsSuperselector(x, x))
}

func TestIsSuperselectorDescendant(t *testing.T) {
	// ".a .b" is a superselector of ".a .c .b" (descendant allows
	// intermediate ancestors).
	a := selector.NewComplex(
		selector.CompoundItem(selector.NewCompound(selector.Class("a"))),
		selector.CombinatorItem(selector.Descendant),
		selector.CompoundItem(selector.NewCompound(selector.Class("b"))),
	)
	b := selector.NewComplex(
		selector.CompoundItem(selector.NewCompound(selector.Class("a"))),
		selector.CombinatorItem(selector.Descendant),
		selector.CompoundItem(selector.NewCompound(selector.Class("c"))),
		selector.CombinatorItem(selector.Descendant),
		selector.CompoundItem(selector.NewCompound(selector.Class("b"))),
	)
	require.True(t, selector.IsSuperselector(a, b))
	require.False(t, selector.IsSuperselector(b, a))
}

func TestIsSuperselectorChildRequiresExactCombinator(t *testing.T) {
	a := selector.NewComplex(
		selector.CompoundItem(selector.NewCompound(selector.Class("a"))),
		selector.CombinatorItem(selector.Child),
		selector.CompoundItem(selector.NewCompound(selector.Class("b"))),
	)
	bDescendant := selector.NewComplex(
		selector.CompoundItem(selector.NewCompound(selector.Class("a"))),
		selector.CombinatorItem(selector.Descendant),
		selector.CompoundItem(selector.NewCompound(selector.Class("b"))),
	)
	require.False(t, selector.IsSuperselector(a, bDescendant))
}

func TestResolveParentNoRefReturnsUnchangedWhenNotImplicit(t *testing.T) {
	x := selector.NewList(selector.SingleCompound(selector.NewCompound(selector.Class("foo"))))
	resolved, err := selector.ResolveParent(x, selector.List{}, false)
	require.NoError(t, err)
	require.True(t, resolved.Equal(x))
}

func TestResolveParentSubstitutesAmpersand(t *testing.T) {
	parent := selector.NewList(selector.SingleCompound(selector.NewCompound(selector.Class("a"))))
	child := selector.NewList(selector.SingleCompound(
		selector.NewCompound(selector.Parent(), selector.Class("b")),
	))
	resolved, err := selector.ResolveParent(child, parent, false)
	require.NoError(t, err)
	require.Len(t, resolved.Complexes, 1)
	require.Equal(t, ".a.b", resolved.Complexes[0].String())
}

func TestResolveParentImplicitPrependsAncestor(t *testing.T) {
	parent := selector.NewList(selector.SingleCompound(selector.NewCompound(selector.Class("a"))))
	child := selector.NewList(selector.SingleCompound(selector.NewCompound(selector.Class("b"))))
	resolved, err := selector.ResolveParent(child, parent, true)
	require.NoError(t, err)
	require.Len(t, resolved.Complexes, 1)
	require.Equal(t, ".a .b", resolved.Complexes[0].String())
}

func TestUnifyCompoundDisjointIDs(t *testing.T) {
	a := selector.NewCompound(selector.ID("a"))
	b := selector.NewCompound(selector.ID("b"))
	_, ok := selector.UnifyCompound(a, b)
	require.False(t, ok)
}

func TestUnifyCompoundMergesClasses(t *testing.T) {
	a := selector.NewCompound(selector.Class("a"))
	b := selector.NewCompound(selector.Class("b"))
	u, ok := selector.UnifyCompound(a, b)
	require.True(t, ok)
	require.Len(t, u.Simples, 2)
}

func TestUnifyCompoundUniversalYieldsOther(t *testing.T) {
	a := selector.NewCompound(selector.Universal(selector.Namespace{}))
	b := selector.NewCompound(selector.Type("div", selector.Namespace{}))
	u, ok := selector.UnifyCompound(a, b)
	require.True(t, ok)
	require.Equal(t, "div", u.String())
}

func TestCompoundEqualityModuloReordering(t *testing.T) {
	a := selector.NewCompound(selector.Class("a"), selector.Class("b"))
	b := selector.NewCompound(selector.Class("b"), selector.Class("a"))
	require.True(t, a.Equal(b))
}

func TestListWithoutPlaceholdersDropsPlaceholderOnly(t *testing.T) {
	l := selector.NewList(
		selector.SingleCompound(selector.NewCompound(selector.Placeholder("foo"))),
		selector.SingleCompound(selector.NewCompound(selector.Class("bar"))),
	)
	out := l.WithoutPlaceholders()
	require.Len(t, out.Complexes, 1)
	require.Equal(t, ".bar", out.Complexes[0].String())
}

func TestWeaveProducesDescendantMerge(t *testing.T) {
	a := selector.NewComplex(selector.CompoundItem(selector.NewCompound(selector.Class("a"))))
	b := selector.NewComplex(selector.CompoundItem(selector.NewCompound(selector.Class("b"))))
	results := selector.Weave(a, b)
	require.NotEmpty(t, results)
}

func TestSpecificityOrdering(t *testing.T) {
	idSel := selector.NewCompound(selector.ID("a"))
	classSel := selector.NewCompound(selector.Class("a"))
	typeSel := selector.NewCompound(selector.Type("div", selector.Namespace{}))
	require.Greater(t, idSel.Specificity(), classSel.Specificity())
	require.Greater(t, classSel.Specificity(), typeSel.Specificity())
}

func TestLegacyPseudoElementEquivalence(t *testing.T) {
	a := selector.Pseudo("before", false, "", nil)
	b := selector.Pseudo("before", true, "", nil)
	require.True(t, selector.EqualSimple(a, b))
}
