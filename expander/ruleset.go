package expander

import (
	"github.com/titpetric/sassgo/ast"
	"github.com/titpetric/sassgo/env"
	"github.com/titpetric/sassgo/selector"
)

// expandRuleset resolves "&" against the enclosing selector, pushes
// the result as the new innermost selector for the body (so nested
// rulesets and @extend see it), then lifts any bubbled
// @media/@supports/@at-root children out of its own body once the body
// finishes.
func (ex *Expander) expandRuleset(st ast.Stmt, scope *env.Scope) ([]ast.Stmt, flow, error) {
	ev := ex.evaluator(scope)
	text, err := ev.Interpolate(st.Selector.Parts)
	if err != nil {
		return nil, flow{}, err
	}
	raw, err := ParseSelectorText(text)
	if err != nil {
		return nil, flow{}, err
	}
	resolved, err := selector.ResolveParent(raw, ex.topSelector(), true)
	if err != nil {
		return nil, flow{}, err
	}

	ex.selectorStack = append(ex.selectorStack, resolved)
	ex.rulesetDepth++
	produced, fl, err := ex.expandStmts(st.Body, scope.PushBlock())
	ex.rulesetDepth--
	ex.selectorStack = ex.selectorStack[:len(ex.selectorStack)-1]
	if err != nil {
		return nil, flow{}, err
	}
	if fl.kind == flowReturn {
		return nil, flow{}, errReturnOutsideFunction()
	}

	kept, bubbled := partitionBubbles(produced)
	node := ast.Stmt{
		Kind:     ast.StmtRuleset,
		Selector: ast.SelectorSchema{Resolved: &resolved},
		Body:     kept,
		Tabs:     st.Tabs,
		State:    st.State,
	}
	return append([]ast.Stmt{node}, bubbled...), flow{}, nil
}
