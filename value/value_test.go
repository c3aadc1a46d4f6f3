package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/sassgo/value"
)

func TestNumberEqualityUsesEpsilon(t *testing.T) {
	a := value.NewNumberUnit(1, "in")
	b := value.NewNumberUnit(96, "px")
	require.True(t, a.Equal(b))
}

func TestNumberArithmeticUnitRules(t *testing.T) {
	px := value.NewNumberUnit(10, "px")
	in := value.NewNumberUnit(1, "in")
	sum, err := px.Add(in)
	require.NoError(t, err)
	require.InDelta(t, 106, sum.Val, 1e-9)
	require.Equal(t, "px", sum.Num[0])

	em := value.NewNumberUnit(2, "em")
	_, err = px.Add(em)
	require.Error(t, err)
}

func TestNumberDivisionByZero(t *testing.T) {
	a := value.NewNumber(1)
	b := value.NewNumber(0)
	_, err := a.Div(b)
	require.Error(t, err)
	require.ErrorIs(t, err, value.ErrDivisionByZero{})
}

func TestColorChannelsRoundTripThroughHSL(t *testing.T) {
	c := value.NewRGBA(10, 200, 30, 1)
	h, s, l, a := c.HSLA()
	back := value.NewHSLA(h, s, l, a)
	require.True(t, c.Equal(back))
}

func TestMixWithSelfIsIdentityProperty(t *testing.T) {
	// mix(a, a, w) == a for all w
	a := value.NewRGBA(10, 20, 30, 1)
	for _, w := range []float64{0, 0.25, 0.5, 0.75, 1} {
		mixed := mixChannels(a, a, w)
		require.True(t, a.Equal(mixed), "mix(a,a,%v) should equal a", w)
	}
}

// mixChannels implements the weighted average documents,
// used here only to exercise the testable property independent of the
// functions package (avoids an import cycle in this leaf test).
func mixChannels(a, b value.Color, weight float64) value.Color {
	w := 2*weight - 1
	da := a.A - b.A
	var weightA float64
	if w*da == -1 {
		weightA = w
	} else {
		weightA = (w + da) / (1 + w*da)
	}
	weightA = (weightA + 1) / 2
	w1 := weightA
	w2 := 1 - w1
	r := a.R*w1 + b.R*w2
	g := a.G*w1 + b.G*w2
	bch := a.B*w1 + b.B*w2
	alpha := a.A*weight + b.A*(1-weight)
	return value.NewRGBA(r, g, bch, alpha)
}

func TestMapMergeWithEmptyIsIdentity(t *testing.T) {
	m, err := value.NewMap([]value.Value{value.NewUnquoted("a")}, []value.Value{value.NewNumber(1)})
	require.NoError(t, err)
	empty := value.Map{}
	merged := m.Merge(empty)
	require.True(t, merged.Equal(m))
}

func TestMapKeysPreserveInsertionOrder(t *testing.T) {
	keys := []value.Value{value.NewUnquoted("z"), value.NewUnquoted("a"), value.NewUnquoted("m")}
	vals := []value.Value{value.NewNumber(1), value.NewNumber(2), value.NewNumber(3)}
	m, err := value.NewMap(keys, vals)
	require.NoError(t, err)
	got := m.Keys()
	for i, k := range keys {
		require.True(t, got[i].Equal(k))
	}
}

func TestMapDuplicateKeyRejected(t *testing.T) {
	keys := []value.Value{value.NewUnquoted("a"), value.NewUnquoted("a")}
	vals := []value.Value{value.NewNumber(1), value.NewNumber(2)}
	_, err := value.NewMap(keys, vals)
	require.Error(t, err)
}

func TestListSingletonSeparatorUndecided(t *testing.T) {
	l := value.NewList(value.SeparatorComma, value.NewNumber(1))
	require.Equal(t, value.SeparatorUndecided, l.Separator)
}

func TestAsListWrapsNonList(t *testing.T) {
	l := value.AsList(value.NewNumber(5))
	require.Len(t, l.Items, 1)
}

func TestUnquoteQuoteRoundTrip(t *testing.T) {
	s := value.NewQuoted("a b", value.QuoteDouble)
	unquoted := value.NewUnquoted(s.Text)
	require.Equal(t, "a b", unquoted.Text)
	require.Equal(t, `"a b"`, s.String())
}
