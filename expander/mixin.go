package expander

import (
	"fmt"

	"github.com/titpetric/sassgo/ast"
	"github.com/titpetric/sassgo/env"
	"github.com/titpetric/sassgo/evaluator"
	"github.com/titpetric/sassgo/value"
)

// mixinDef and functionDef are the concrete types stored behind
// env.Scope's value.Callable-typed mixin/function tables: the narrow
// interface is all package env needs to know about, but @include and
// @content handling need the full definition (body, parameters,
// closure), so the expander type-asserts its own lookups back to these
// concrete types ("@mixin/@function ... closure-capturing
// definition in current scope").
type mixinDef struct {
	name     string
	params   []ast.Param
	hasRest  bool
	restName string
	body     []ast.Stmt
	closure  *env.Scope
}

// Call exists only to satisfy value.Callable; mixins are invoked
// through @include's statement handling, which type-asserts to
// *mixinDef directly, not through the generic call path a SassScript
// expression would use.
func (m *mixinDef) Call(positional []value.Value, named map[string]value.Value) (value.Value, error) {
	return nil, fmt.Errorf("expander: %s is a mixin, not a function", m.name)
}

type functionDef struct {
	ex       *Expander
	name     string
	params   []ast.Param
	hasRest  bool
	restName string
	body     []ast.Stmt
	closure  *env.Scope
}

// Call implements a user-defined function invocation: push a lexical
// scope off the definition-site closure (not the caller's scope),
// bind arguments, expand the body, and require a @return to have fired
// ("@return — function-only unwind").
func (f *functionDef) Call(positional []value.Value, named map[string]value.Value) (value.Value, error) {
	scope := f.closure.PushLexical()
	ev := evaluator.New(scope, f.ex.Builtins)
	if err := bindArgs(f.name, f.params, f.hasRest, f.restName, positional, named, scope, ev); err != nil {
		return nil, err
	}

	f.ex.callStack = append(f.ex.callStack, Frame{Name: f.name})
	defer func() { f.ex.callStack = f.ex.callStack[:len(f.ex.callStack)-1] }()
	if len(f.ex.callStack) > f.ex.recursionLimit() {
		return nil, ErrRecursionLimitExceeded{Stack: f.ex.stackNames()}
	}

	_, fl, err := f.ex.expandStmts(f.body, scope)
	if err != nil {
		return nil, err
	}
	if fl.kind != flowReturn {
		return nil, ErrInvalidSass{Message: fmt.Sprintf("function %q finished without @return", f.name)}
	}
	return fl.value, nil
}

// bindArgs binds positional/named call arguments to formal parameters
// in scope, evaluating defaults (against an evaluator already bound to
// scope, so later defaults can see earlier parameters) for any
// parameter the call didn't supply, and collecting overflow into the
// rest parameter when the definition has one.
func bindArgs(callee string, params []ast.Param, hasRest bool, restName string, positional []value.Value, named map[string]value.Value, scope *env.Scope, ev *evaluator.Evaluator) error {
	used := make(map[string]bool, len(named))
	for i, p := range params {
		var v value.Value
		nv, hasNamed := named[p.Name]
		switch {
		case i < len(positional):
			v = positional[i]
		case hasNamed:
			v = nv
			used[p.Name] = true
		case p.Default != nil:
			var err error
			v, err = ev.Eval(*p.Default)
			if err != nil {
				return err
			}
		default:
			return ErrMissingArgument{Callee: callee, Param: p.Name}
		}
		scope.SetVar(p.Name, v)
	}

	if hasRest {
		var rest []value.Value
		if len(positional) > len(params) {
			rest = append(rest, positional[len(params):]...)
		}
		kw := map[string]value.Value{}
		for k, v := range named {
			if !used[k] {
				kw[k] = v
			}
		}
		scope.SetVar(restName, value.List{Items: rest, Separator: value.SeparatorComma, Arglist: true, Keywords: kw})
		return nil
	}

	if len(positional) > len(params) {
		return ErrInvalidArgument{Callee: callee, Message: "too many positional arguments"}
	}
	for k := range named {
		if !used[k] {
			return ErrInvalidArgument{Callee: callee, Message: fmt.Sprintf("no argument named $%s", k)}
		}
	}
	return nil
}

// expandMixinDef registers a closure-capturing mixin definition in the
// current scope and produces no output of its own.
func (ex *Expander) expandMixinDef(st ast.Stmt, scope *env.Scope) ([]ast.Stmt, flow, error) {
	scope.SetMixin(st.DefName, &mixinDef{
		name: st.DefName, params: st.Params, hasRest: st.HasRest, restName: st.RestName,
		body: st.Body, closure: scope,
	})
	return nil, flow{}, nil
}

// expandFunctionDef is expandMixinDef's function-table counterpart.
func (ex *Expander) expandFunctionDef(st ast.Stmt, scope *env.Scope) ([]ast.Stmt, flow, error) {
	scope.SetFunction(st.DefName, &functionDef{
		ex: ex, name: st.DefName, params: st.Params, hasRest: st.HasRest, restName: st.RestName,
		body: st.Body, closure: scope,
	})
	return nil, flow{}, nil
}

// expandInclude looks up the named mixin, binds its arguments, records
// the caller's @content block (if any) and the caller's own scope for
// @content to later expand against, and recurses into the mixin body
// using a scope chained off the mixin's definition-site closure
// ("push scope with captured environment as parent").
func (ex *Expander) expandInclude(st ast.Stmt, scope *env.Scope) ([]ast.Stmt, flow, error) {
	callable, ok := scope.GetMixin(st.IncludeName)
	if !ok {
		return nil, flow{}, ErrUndefinedMixin{Name: st.IncludeName}
	}
	md, ok := callable.(*mixinDef)
	if !ok {
		return nil, flow{}, ErrInvalidSass{Message: fmt.Sprintf("%q is not a mixin", st.IncludeName)}
	}

	ev := ex.evaluator(scope)
	positional := make([]value.Value, 0, len(st.IncludeArgs))
	for _, a := range st.IncludeArgs {
		v, err := ev.Eval(a)
		if err != nil {
			return nil, flow{}, err
		}
		positional = append(positional, v)
	}
	named := make(map[string]value.Value, len(st.IncludeNamed))
	for _, a := range st.IncludeNamed {
		v, err := ev.Eval(a.Val)
		if err != nil {
			return nil, flow{}, err
		}
		named[a.Name] = v
	}

	callScope := md.closure.PushLexical()
	if err := bindArgs(md.name, md.params, md.hasRest, md.restName, positional, named, callScope, ex.evaluator(callScope)); err != nil {
		return nil, flow{}, err
	}

	ex.callStack = append(ex.callStack, Frame{Name: md.name, State: st.State})
	defer func() { ex.callStack = ex.callStack[:len(ex.callStack)-1] }()
	if len(ex.callStack) > ex.recursionLimit() {
		return nil, flow{}, ErrRecursionLimitExceeded{Stack: ex.stackNames()}
	}

	if st.IncludeContent != nil {
		ex.contentStack = append(ex.contentStack, contentFrame{body: st.IncludeContent, scope: scope})
		defer func() { ex.contentStack = ex.contentStack[:len(ex.contentStack)-1] }()
	}

	out, fl, err := ex.expandStmts(md.body, callScope)
	if err != nil {
		return nil, flow{}, err
	}
	if fl.kind == flowReturn {
		return nil, flow{}, errReturnOutsideFunction()
	}
	return out, flow{}, nil
}

// expandContent substitutes the nearest enclosing @include's captured
// @content block, expanding it against the CALLER's scope, so the
// block sees the variables visible at the @include call site. The
// selector stack is not swapped: selectors inside the block resolve
// against ex.selectorStack as it stands where @content appears (the
// mixin body's nesting), not the nesting active at the @include call
// site. The frame is popped for the
// duration of the expansion and restored after, so a @content block
// that itself contains @content resolves against its own outer
// caller rather than re-entering itself.
func (ex *Expander) expandContent(st ast.Stmt, scope *env.Scope) ([]ast.Stmt, flow, error) {
	if len(ex.contentStack) == 0 {
		return nil, flow{}, ErrInvalidSass{Message: "@content used outside a mixin accepting content"}
	}
	top := ex.contentStack[len(ex.contentStack)-1]
	ex.contentStack = ex.contentStack[:len(ex.contentStack)-1]
	out, fl, err := ex.expandStmts(top.body, top.scope)
	ex.contentStack = append(ex.contentStack, top)
	if err != nil {
		return nil, flow{}, err
	}
	if fl.kind == flowReturn {
		return nil, flow{}, errReturnOutsideFunction()
	}
	return out, flow{}, nil
}

// expandExtend registers the current innermost ruleset's resolved
// selector as an extender of the named target.
func (ex *Expander) expandExtend(st ast.Stmt, scope *env.Scope) ([]ast.Stmt, flow, error) {
	if len(ex.selectorStack) == 0 {
		return nil, flow{}, ErrInvalidSass{Message: "@extend may only be used within a style rule"}
	}
	ev := ex.evaluator(scope)
	text, err := ev.Interpolate(st.ExtendTarget.Parts)
	if err != nil {
		return nil, flow{}, err
	}
	targetList, err := ParseSelectorText(text)
	if err != nil {
		return nil, flow{}, err
	}
	cur := ex.topSelector()
	for _, complex := range targetList.Complexes {
		target, ok := complex.LastCompound()
		if !ok {
			continue
		}
		ex.ExtendMap.Register(cur, target, st.ExtendOptional || targetList.IsOptional)
	}
	return nil, flow{}, nil
}
