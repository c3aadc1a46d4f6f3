package functions

import (
	"fmt"

	"github.com/titpetric/sassgo/value"
)

// addIntrospection registers the type-of/unit/unitless/comparable
// family along with the *-exists/call/inspect/if/not/keywords
// introspection builtins. The *-exists and call builtins can't reach
// into the environment or evaluator directly without an import cycle
// (functions must not import evaluator), so they're answered through
// the Builder hooks wired in by whatever owns the environment, and
// type/unit predicates work off real value.Value type switches rather
// than sniffing raw source text.
func addIntrospection(reg Registry, b Builder) {
	reg["type-of"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 1 {
			return nil, argErr("type-of", 1, len(pos))
		}
		return value.NewUnquoted(pos[0].Type().String()), nil
	})

	reg["unit"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 1 {
			return nil, argErr("unit", 1, len(pos))
		}
		n, err := requireNumber("unit", pos[0])
		if err != nil {
			return nil, err
		}
		return value.NewQuoted(n.UnitString(), value.QuoteDouble), nil
	})

	reg["unitless"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 1 {
			return nil, argErr("unitless", 1, len(pos))
		}
		n, err := requireNumber("unitless", pos[0])
		if err != nil {
			return nil, err
		}
		return value.Boolean(n.Unitless()), nil
	})

	reg["comparable"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 2 {
			return nil, argErr("comparable", 2, len(pos))
		}
		n1, err := requireNumber("comparable", pos[0])
		if err != nil {
			return nil, err
		}
		n2, err := requireNumber("comparable", pos[1])
		if err != nil {
			return nil, err
		}
		return value.Boolean(n1.Comparable(n2)), nil
	})

	reg["not"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 1 {
			return nil, argErr("not", 1, len(pos))
		}
		return value.Boolean(!pos[0].Truthy()), nil
	})

	reg["if"] = Fn(func(pos []value.Value, named map[string]value.Value) (value.Value, error) {
		cond := arg(pos, 0)
		if v, ok := named["condition"]; ok {
			cond = v
		}
		truthy := arg(pos, 1)
		if v, ok := named["if-true"]; ok {
			truthy = v
		}
		falsy := arg(pos, 2)
		if v, ok := named["if-false"]; ok {
			falsy = v
		}
		if cond == nil {
			return nil, argErr("if", 2, len(pos))
		}
		if cond.Truthy() {
			return truthy, nil
		}
		return falsy, nil
	})

	reg["inspect"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 1 {
			return nil, argErr("inspect", 1, len(pos))
		}
		return value.NewUnquoted(pos[0].String()), nil
	})

	reg["keywords"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 1 {
			return nil, argErr("keywords", 1, len(pos))
		}
		l, ok := pos[0].(value.List)
		if !ok || !l.Arglist || l.Keywords == nil {
			return value.Map{}, nil
		}
		keys := make([]value.Value, 0, len(l.Keywords))
		vals := make([]value.Value, 0, len(l.Keywords))
		for k, v := range l.Keywords {
			keys = append(keys, value.NewUnquoted(k))
			vals = append(vals, v)
		}
		m, err := value.NewMap(keys, vals)
		if err != nil {
			return nil, err
		}
		return m, nil
	})

	reg["variable-exists"] = existsFn("variable-exists", b.VariableExists)
	reg["global-variable-exists"] = existsFn("global-variable-exists", b.GlobalVariableExists)
	reg["function-exists"] = existsFn("function-exists", b.FunctionExists)
	reg["mixin-exists"] = existsFn("mixin-exists", b.MixinExists)
	reg["feature-exists"] = existsFn("feature-exists", b.FeatureExists)

	reg["call"] = Fn(func(pos []value.Value, named map[string]value.Value) (value.Value, error) {
		if len(pos) < 1 {
			return nil, argErr("call", 1, len(pos))
		}
		if b.CallFunction == nil {
			return nil, fmt.Errorf("functions: call() is unavailable in this context")
		}
		return b.CallFunction(pos[0], pos[1:], named)
	})
}

func existsFn(name string, check func(string) bool) Fn {
	return func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 1 {
			return nil, argErr(name, 1, len(pos))
		}
		s, err := requireString(name, pos[0])
		if err != nil {
			return nil, err
		}
		if check == nil {
			return value.Boolean(false), nil
		}
		return value.Boolean(check(s.Text)), nil
	}
}
