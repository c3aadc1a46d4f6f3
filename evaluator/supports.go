package evaluator

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// ExprFallback evaluates the AND/OR/NOT boolean algebra of an
// already-resolved @supports condition. Each leaf feature
// query (e.g. "display: grid") is resolved to a bool by the caller
// before this runs; ExprFallback only combines those booleans with the
// and/or/not connectives, which is exactly the narrow boolean-
// expression evaluation github.com/expr-lang/expr is built for.
type ExprFallback struct{}

// EvalSupports compiles and runs condition (already rewritten from
// Sass's "and"/"or"/"not" keywords into expr's native &&/||/!) against
// the leaf truth values supplied in vars.
func (ExprFallback) EvalSupports(condition string, vars map[string]interface{}) (bool, error) {
	program, err := expr.Compile(condition, expr.Env(vars), expr.AsBool())
	if err != nil {
		return false, fmt.Errorf("evaluator: invalid @supports condition %q: %w", condition, err)
	}
	out, err := expr.Run(program, vars)
	if err != nil {
		return false, fmt.Errorf("evaluator: failed evaluating @supports condition %q: %w", condition, err)
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("evaluator: @supports condition %q did not reduce to a boolean", condition)
	}
	return b, nil
}
