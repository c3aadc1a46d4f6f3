package evaluator

import (
	"fmt"

	"github.com/titpetric/sassgo/ast"
	"github.com/titpetric/sassgo/env"
	"github.com/titpetric/sassgo/value"
)

// ErrUndefinedVariable reports a reference to a variable with no
// binding visible in the current scope chain.
type ErrUndefinedVariable struct{ Name string }

func (e ErrUndefinedVariable) Error() string { return "undefined variable $" + e.Name }

// Builtins resolves a built-in function by name; it is injected rather
// than imported directly so this package never depends on the
// functions package; functions does not import evaluator either, so
// the two meet only through value.Callable.
type Builtins func(name string) (value.Callable, bool)

// Evaluator reduces ast.Expr trees to value.Value against one
// env.Scope. It is re-created (or re-pointed) per
// statement-expander frame rather than held across scopes, built fresh
// from the variables visible at evaluation time.
type Evaluator struct {
	Scope    *env.Scope
	Builtins Builtins

	// PassThrough renders an unresolved call as literal CSS function
	// syntax (e.g. calc(1px + 2px)), third dispatch
	// tier. Defaults to a plain "name(args)" rendering if nil.
	PassThrough func(name string, args []value.Value, named []ast.NamedArg) (value.Value, error)
}

// New builds an Evaluator bound to scope, with the given builtin
// registry lookup.
func New(scope *env.Scope, builtins Builtins) *Evaluator {
	return &Evaluator{Scope: scope, Builtins: builtins}
}

// WithScope returns a copy of ev bound to a different scope, used by
// the expander when descending into a nested block without disturbing
// the caller's Evaluator.
func (ev *Evaluator) WithScope(scope *env.Scope) *Evaluator {
	cp := *ev
	cp.Scope = scope
	return &cp
}

// Eval reduces e to a Value.
func (ev *Evaluator) Eval(e ast.Expr) (value.Value, error) {
	switch e.Kind {
	case ast.ExprLiteral:
		v, ok := e.Literal.(value.Value)
		if !ok {
			return nil, fmt.Errorf("evaluator: literal node has non-value.Value payload %T", e.Literal)
		}
		return v, nil

	case ast.ExprVariable:
		v, ok := ev.Scope.GetVar(e.Name)
		if !ok {
			return nil, ErrUndefinedVariable{Name: e.Name}
		}
		return v, nil

	case ast.ExprParen:
		return ev.Eval(*e.Inner)

	case ast.ExprUnary:
		v, err := ev.Eval(*e.Operand)
		if err != nil {
			return nil, err
		}
		if e.UOp == ast.UnNeg && e.Operand.Kind == ast.ExprVariable {
			if _, isNull := v.(value.Null); isNull {
				return value.NewUnquoted("-"), nil
			}
		}
		return UnaryOp(e.UOp, v)

	case ast.ExprBinary:
		l, err := ev.Eval(*e.Left)
		if err != nil {
			return nil, err
		}
		if e.Op == ast.OpAnd && !l.Truthy() {
			return l, nil
		}
		if e.Op == ast.OpOr && l.Truthy() {
			return l, nil
		}
		r, err := ev.Eval(*e.Right)
		if err != nil {
			return nil, err
		}
		return BinaryOp(e.Op, l, r)

	case ast.ExprListLiteral:
		items := make([]value.Value, 0, len(e.Items))
		for _, it := range e.Items {
			v, err := ev.Eval(it)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		sep := toValueSeparator(e.Separator)
		return value.List{Items: items, Separator: sep, Bracketed: e.Bracketed}, nil

	case ast.ExprMapLiteral:
		keys := make([]value.Value, 0, len(e.Pairs))
		vals := make([]value.Value, 0, len(e.Pairs))
		for _, p := range e.Pairs {
			k, err := ev.Eval(p.Key)
			if err != nil {
				return nil, err
			}
			v, err := ev.Eval(p.Val)
			if err != nil {
				return nil, err
			}
			keys = append(keys, k)
			vals = append(vals, v)
		}
		return value.NewMap(keys, vals)

	case ast.ExprSchema:
		return ev.evalSchema(e)

	case ast.ExprCall:
		return ev.evalCall(e)
	}
	return nil, fmt.Errorf("evaluator: unhandled expression kind %v", e.Kind)
}

func toValueSeparator(s ast.ListSeparator) value.Separator {
	switch s {
	case ast.SeparatorSpace:
		return value.SeparatorSpace
	case ast.SeparatorComma:
		return value.SeparatorComma
	default:
		return value.SeparatorUndecided
	}
}

// evalSchema evaluates each interpolant and splices the result into a
// Str, never reparsing the spliced text syntactically.
func (ev *Evaluator) evalSchema(e ast.Expr) (value.Value, error) {
	parts := make([]value.SchemaPart, 0, len(e.Parts))
	for _, p := range e.Parts {
		if p.Interpolant == nil {
			parts = append(parts, value.SchemaPart{Literal: p.Literal})
			continue
		}
		v, err := ev.Eval(*p.Interpolant)
		if err != nil {
			return nil, err
		}
		parts = append(parts, value.SchemaPart{Interpolant: true, Value: v})
	}
	return value.Str{Schema: parts}.ReduceSchema(), nil
}

// Interpolate evaluates a schema's parts and returns the plain spliced
// text (no quoting), the form used for selector/property-name/at-rule
// interpolation where the host context is never itself a Sass string.
func (ev *Evaluator) Interpolate(parts []ast.SchemaPart) (string, error) {
	v, err := ev.evalSchema(ast.Expr{Kind: ast.ExprSchema, Parts: parts})
	if err != nil {
		return "", err
	}
	return v.(value.Str).Text, nil
}

// evalCall implements three-tier dispatch: user
// function in current environment, then built-in, then pass-through as
// a literal CSS function call.
func (ev *Evaluator) evalCall(e ast.Expr) (value.Value, error) {
	positional := make([]value.Value, 0, len(e.Positional))
	for _, a := range e.Positional {
		v, err := ev.Eval(a)
		if err != nil {
			return nil, err
		}
		positional = append(positional, v)
	}
	named := make(map[string]value.Value, len(e.Named))
	for _, a := range e.Named {
		v, err := ev.Eval(a.Val)
		if err != nil {
			return nil, err
		}
		named[a.Name] = v
	}
	if e.Rest != nil {
		rv, err := ev.Eval(*e.Rest)
		if err != nil {
			return nil, err
		}
		positional = append(positional, expandRest(rv, named)...)
	}

	if fn, ok := ev.Scope.GetFunction(e.Name); ok {
		return fn.Call(positional, named)
	}
	if ev.Builtins != nil {
		if fn, ok := ev.Builtins(e.Name); ok {
			return fn.Call(positional, named)
		}
	}
	if ev.PassThrough != nil {
		return ev.PassThrough(e.Name, positional, e.Named)
	}
	return defaultPassThrough(e.Name, positional)
}

// expandRest spreads a List (positional) or Map (keyword-rest) value
// bound to a "..." rest-argument expansion into call arguments, per
// 
func expandRest(v value.Value, named map[string]value.Value) []value.Value {
	switch rv := v.(type) {
	case value.List:
		out := append([]value.Value(nil), rv.Items...)
		for k, val := range rv.Keywords {
			named[k] = val
		}
		return out
	case value.Map:
		for _, k := range rv.Keys() {
			if s, ok := k.(value.Str); ok {
				val, _ := rv.Get(k)
				named[s.Text] = val
			}
		}
		return nil
	default:
		return []value.Value{v}
	}
}

func defaultPassThrough(name string, args []value.Value) (value.Value, error) {
	s := name + "("
	for i, a := range args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	s += ")"
	return value.NewUnquoted(s), nil
}
