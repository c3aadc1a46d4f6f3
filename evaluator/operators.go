// Package evaluator implements SassScript expression evaluation:
// binary/unary operator dispatch, function-call dispatch, and
// interpolation splicing. It knows how to
// reduce an ast.Expr tree to a value.Value given an env.Scope, but
// knows nothing about statements — that is the expander's job.
package evaluator

import (
	"fmt"

	"github.com/titpetric/sassgo/ast"
	"github.com/titpetric/sassgo/value"
)

// BinaryOp dispatches a binary operator by left-operand-type ×
// right-operand-type
func BinaryOp(op ast.BinOp, left, right value.Value) (value.Value, error) {
	switch op {
	case ast.OpAnd:
		if left.Truthy() {
			return right, nil
		}
		return left, nil
	case ast.OpOr:
		if left.Truthy() {
			return left, nil
		}
		return right, nil
	case ast.OpEq:
		return value.Boolean(left.Equal(right)), nil
	case ast.OpNeq:
		return value.Boolean(!left.Equal(right)), nil
	}

	if op == ast.OpAdd {
		if ls, ok := left.(value.Str); ok {
			return value.NewUnquoted(ls.Text + stringify(right)).WithQuoteLike(ls), nil
		}
		if rs, ok := right.(value.Str); ok {
			return value.NewUnquoted(stringify(left) + rs.Text).WithQuoteLike(rs), nil
		}
	}

	switch op {
	case ast.OpGt, ast.OpGte, ast.OpLt, ast.OpLte:
		ln, lok := left.(value.Number)
		rn, rok := right.(value.Number)
		if !lok || !rok {
			return nil, fmt.Errorf("evaluator: comparison operators require numbers, got %T and %T", left, right)
		}
		cmp, err := ln.Cmp(rn)
		if err != nil {
			return nil, err
		}
		switch op {
		case ast.OpGt:
			return value.Boolean(cmp > 0), nil
		case ast.OpGte:
			return value.Boolean(cmp >= 0), nil
		case ast.OpLt:
			return value.Boolean(cmp < 0), nil
		default:
			return value.Boolean(cmp <= 0), nil
		}
	}

	if col, colOK := asColor(left); colOK {
		if num, numOK := right.(value.Number); numOK {
			return colorChannelOp(op, col, num, false)
		}
	}
	if col, colOK := asColor(right); colOK {
		if num, numOK := left.(value.Number); numOK {
			return colorChannelOp(op, col, num, true)
		}
	}

	ln, lok := left.(value.Number)
	rn, rok := right.(value.Number)
	if !lok || !rok {
		return nil, fmt.Errorf("evaluator: arithmetic operator requires numbers, got %T and %T", left, right)
	}

	switch op {
	case ast.OpAdd:
		return ln.Add(rn)
	case ast.OpSub:
		return ln.Sub(rn)
	case ast.OpMul:
		return ln.Mul(rn), nil
	case ast.OpDiv, ast.OpSlash:
		return ln.Div(rn)
	case ast.OpMod:
		return ln.Mod(rn)
	}
	return nil, fmt.Errorf("evaluator: unsupported binary operator %v", op)
}

// UnaryOp dispatches unary `-`/`not`/unary `+`
func UnaryOp(op ast.UnOp, v value.Value) (value.Value, error) {
	switch op {
	case ast.UnNot:
		return value.Boolean(!v.Truthy()), nil
	case ast.UnPlus:
		return v, nil
	case ast.UnNeg:
		if n, ok := v.(value.Number); ok {
			return n.Neg(), nil
		}
		if _, ok := v.(value.Null); ok {
			return value.NewUnquoted("-"), nil
		}
		return value.NewUnquoted("-" + stringify(v)), nil
	}
	return nil, fmt.Errorf("evaluator: unsupported unary operator %v", op)
}

func asColor(v value.Value) (value.Color, bool) {
	c, ok := v.(value.Color)
	return c, ok
}

func colorChannelOp(op ast.BinOp, col value.Color, num value.Number, numIsLeft bool) (value.Value, error) {
	var fn func(a, b float64) float64
	switch op {
	case ast.OpAdd:
		fn = func(a, b float64) float64 { return a + b }
	case ast.OpSub:
		fn = func(a, b float64) float64 { return a - b }
	case ast.OpMul:
		fn = func(a, b float64) float64 { return a * b }
	case ast.OpDiv, ast.OpSlash:
		fn = func(a, b float64) float64 { return a / b }
	case ast.OpMod:
		fn = func(a, b float64) float64 { return float64(int(a) % int(b)) }
	default:
		return nil, fmt.Errorf("evaluator: unsupported color/number operator %v", op)
	}
	if (op == ast.OpDiv || op == ast.OpSlash) && num.Val == 0 {
		return nil, value.ErrDivisionByZero{}
	}
	if numIsLeft {
		inv := fn
		fn = func(a, b float64) float64 { return inv(b, a) }
	}
	return col.ChannelOp(num, fn)
}

func stringify(v value.Value) string {
	if s, ok := v.(value.Str); ok {
		return s.Text
	}
	return v.String()
}
