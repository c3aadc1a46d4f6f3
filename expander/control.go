package expander

import (
	"math"

	"github.com/titpetric/sassgo/ast"
	"github.com/titpetric/sassgo/env"
	"github.com/titpetric/sassgo/units"
	"github.com/titpetric/sassgo/value"
)

// expandIf walks the @if/@else if/@else branch chain and expands the
// first arm whose condition is truthy (a nil condition is the trailing
// plain @else)
func (ex *Expander) expandIf(st ast.Stmt, scope *env.Scope) ([]ast.Stmt, flow, error) {
	ev := ex.evaluator(scope)
	for _, br := range st.Branches {
		if br.Cond == nil {
			return ex.expandStmts(br.Body, scope.PushBlock())
		}
		v, err := ev.Eval(*br.Cond)
		if err != nil {
			return nil, flow{}, err
		}
		if v.Truthy() {
			return ex.expandStmts(br.Body, scope.PushBlock())
		}
	}
	return nil, flow{}, nil
}

// expandFor implements @for $v from A to/through B:
// integer iteration, "to" exclusive and "through" inclusive, operands
// required to be comparable numbers.
func (ex *Expander) expandFor(st ast.Stmt, scope *env.Scope) ([]ast.Stmt, flow, error) {
	ev := ex.evaluator(scope)
	fromV, err := ev.Eval(*st.ForFrom)
	if err != nil {
		return nil, flow{}, err
	}
	toV, err := ev.Eval(*st.ForTo)
	if err != nil {
		return nil, flow{}, err
	}
	fromN, ok := fromV.(value.Number)
	if !ok {
		return nil, flow{}, ErrInvalidSass{Message: "@for bounds must be numbers"}
	}
	toN, ok := toV.(value.Number)
	if !ok {
		return nil, flow{}, ErrInvalidSass{Message: "@for bounds must be numbers"}
	}
	if !fromN.Comparable(toN) {
		return nil, flow{}, &units.ErrIncompatibleUnits{From: fromN.UnitString(), To: toN.UnitString()}
	}

	from := int(math.Round(fromN.Reduce().Val))
	to := int(math.Round(toN.Reduce().Val))
	step := 1
	if from > to {
		step = -1
	}

	var out []ast.Stmt
	for i := from; st.ForInclusive && (step > 0 && i <= to || step < 0 && i >= to) ||
		!st.ForInclusive && (step > 0 && i < to || step < 0 && i > to); i += step {
		child := scope.PushBlock()
		child.SetVar(st.ForVar, value.NewNumber(float64(i)))
		produced, fl, err := ex.expandStmts(st.Body, child)
		if err != nil {
			return nil, flow{}, err
		}
		out = append(out, produced...)
		if fl.kind == flowReturn {
			return out, fl, nil
		}
	}
	return out, flow{}, nil
}

// expandWhile implements @while, guarded by WhileLimit (default 512,
// ) against runaway loops in pathological input.
func (ex *Expander) expandWhile(st ast.Stmt, scope *env.Scope) ([]ast.Stmt, flow, error) {
	ev := ex.evaluator(scope)
	var out []ast.Stmt
	for i := 0; ; i++ {
		if i >= ex.whileLimit() {
			return nil, flow{}, ErrRecursionLimitExceeded{Stack: ex.stackNames()}
		}
		cond, err := ev.Eval(*st.WhileCond)
		if err != nil {
			return nil, flow{}, err
		}
		if !cond.Truthy() {
			break
		}
		child := scope.PushBlock()
		produced, fl, err := ex.expandStmts(st.Body, child)
		if err != nil {
			return nil, flow{}, err
		}
		out = append(out, produced...)
		if fl.kind == flowReturn {
			return out, fl, nil
		}
	}
	return out, flow{}, nil
}

// expandEach implements multi-variable destructuring:
// a Map binds (key, value) to the first two variables; a list of lists
// binds element-wise; anything else binds the element to the first
// variable and null to the rest.
func (ex *Expander) expandEach(st ast.Stmt, scope *env.Scope) ([]ast.Stmt, flow, error) {
	ev := ex.evaluator(scope)
	listV, err := ev.Eval(*st.EachList)
	if err != nil {
		return nil, flow{}, err
	}

	var out []ast.Stmt
	run := func(vals []value.Value) (flow, error) {
		child := scope.PushBlock()
		bindEachVars(child, st.EachVars, vals)
		produced, fl, err := ex.expandStmts(st.Body, child)
		if err != nil {
			return flow{}, err
		}
		out = append(out, produced...)
		return fl, nil
	}

	if m, ok := listV.(value.Map); ok {
		keys, vals := m.Keys(), m.Values()
		for i := range keys {
			fl, err := run([]value.Value{keys[i], vals[i]})
			if err != nil {
				return nil, flow{}, err
			}
			if fl.kind == flowReturn {
				return out, fl, nil
			}
		}
		return out, flow{}, nil
	}

	for _, item := range value.AsList(listV).Items {
		var parts []value.Value
		if len(st.EachVars) > 1 {
			if inner, ok := item.(value.List); ok {
				parts = inner.Items
			} else {
				parts = []value.Value{item}
			}
		} else {
			parts = []value.Value{item}
		}
		fl, err := run(parts)
		if err != nil {
			return nil, flow{}, err
		}
		if fl.kind == flowReturn {
			return out, fl, nil
		}
	}
	return out, flow{}, nil
}

func bindEachVars(scope *env.Scope, names []string, vals []value.Value) {
	for i, n := range names {
		if i < len(vals) {
			scope.SetVar(n, vals[i])
		} else {
			scope.SetVar(n, value.Null{})
		}
	}
}

// expandReturn evaluates its operand and unwinds as flowReturn; it is
// only valid inside a function body, which expandInclude/functionDef's
// Call enforce by rejecting a flowReturn that escapes anywhere else.
func (ex *Expander) expandReturn(st ast.Stmt, scope *env.Scope) ([]ast.Stmt, flow, error) {
	ev := ex.evaluator(scope)
	v, err := ev.Eval(*st.ReturnValue)
	if err != nil {
		return nil, flow{}, err
	}
	return nil, flow{kind: flowReturn, value: v}, nil
}
