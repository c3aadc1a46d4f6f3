package evaluator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSupportsQuerySingleFeature(t *testing.T) {
	cond, vars, err := ParseSupportsQuery("(display: grid)", func(prop, val string) bool {
		return prop == "display" && val == "grid"
	})
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{"f0": true}, vars)
	ok, err := (ExprFallback{}).EvalSupports(cond, vars)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestParseSupportsQueryNotAndOr(t *testing.T) {
	raw := "(display: grid) and (not (display: inline-grid))"
	cond, vars, err := ParseSupportsQuery(raw, func(prop, val string) bool {
		return prop == "display" && val == "grid"
	})
	require.NoError(t, err)
	ok, err := (ExprFallback{}).EvalSupports(cond, vars)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestParseSupportsQueryRejectsUnbalancedParens(t *testing.T) {
	_, _, err := ParseSupportsQuery("(display: grid", func(string, string) bool { return true })
	require.Error(t, err)
}
