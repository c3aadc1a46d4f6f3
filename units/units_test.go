package units_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/sassgo/units"
)

func TestConvertRoundTrip(t *testing.T) {
	pairs := [][2]string{
		{"px", "in"}, {"in", "cm"}, {"mm", "pt"}, {"pc", "px"},
		{"deg", "rad"}, {"turn", "grad"},
		{"s", "ms"},
		{"hz", "khz"},
		{"dpi", "dppx"},
	}
	for _, p := range pairs {
		u, v := p[0], p[1]
		converted, err := units.Convert(42, u, v)
		require.NoError(t, err)
		back, err := units.Convert(converted, v, u)
		require.NoError(t, err)
		require.True(t, units.Eq(back, 42), "convert(convert(42,%s,%s),%s,%s) = %v, want ~42", u, v, v, u, back)
	}
}

func TestConvertIncompatibleFamilies(t *testing.T) {
	_, err := units.Convert(1, "px", "deg")
	require.Error(t, err)
	var target *units.ErrIncompatibleUnits
	require.ErrorAs(t, err, &target)
}

func TestConvertUnitless(t *testing.T) {
	v, err := units.Convert(5, "", "px")
	require.NoError(t, err)
	require.Equal(t, 5.0, v)
}

func TestEqEpsilon(t *testing.T) {
	require.True(t, units.Eq(1.0, 1.0+5e-13))
	require.False(t, units.Eq(1.0, 1.0+1e-6))
}

func TestReduceCancelsConvertibleUnits(t *testing.T) {
	r := units.Reduce(units.Multiset{"px"}, units.Multiset{"in"})
	require.Empty(t, r.Num)
	require.Empty(t, r.Den)
	require.InDelta(t, 1.0/96.0, r.Factor, 1e-9)
}

func TestMultisetEqualityIgnoresOrder(t *testing.T) {
	a := units.Multiset{"px", "px", "s"}
	b := units.Multiset{"s", "px", "px"}
	require.True(t, a.Equal(b))
}
