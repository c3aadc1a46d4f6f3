package functions

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/titpetric/sassgo/value"
)

// addNumeric registers percentage/round/ceil/floor/abs/min/max/random.
// The unit-preserving functions take the operand's own unit and
// reattach it to the computed result, preserving Num/Den throughout.
func addNumeric(reg Registry, rnd *rand.Rand) {
	reg["percentage"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 1 {
			return nil, argErr("percentage", 1, len(pos))
		}
		n, err := requireNumber("percentage", pos[0])
		if err != nil {
			return nil, err
		}
		return value.NewNumberUnit(n.Reduce().Val*100, "%"), nil
	})

	reg["round"] = roundingFn("round", math.Round)
	reg["ceil"] = roundingFn("ceil", math.Ceil)
	reg["floor"] = roundingFn("floor", math.Floor)
	reg["abs"] = roundingFn("abs", math.Abs)

	reg["min"] = extremumFn("min", false)
	reg["max"] = extremumFn("max", true)

	reg["random"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) == 0 {
			return value.NewNumber(rnd.Float64()), nil
		}
		if len(pos) != 1 {
			return nil, argErr("random", 1, len(pos))
		}
		limit, err := requireNumber("random", pos[0])
		if err != nil {
			return nil, err
		}
		n := int(limit.Val)
		if n < 1 {
			return nil, fmt.Errorf("functions: random($limit) requires $limit >= 1")
		}
		return value.NewNumber(float64(1 + rnd.Intn(n))), nil
	})
}

func roundingFn(name string, f func(float64) float64) Fn {
	return func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 1 {
			return nil, argErr(name, 1, len(pos))
		}
		n, err := requireNumber(name, pos[0])
		if err != nil {
			return nil, err
		}
		return value.Number{Val: f(n.Val), Num: n.Num, Den: n.Den}, nil
	}
}

// extremumFn powers min/max: wantGreater picks max's ">" or min's "<"
// on the sign of Number.Cmp.
func extremumFn(name string, wantGreater bool) Fn {
	return func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) == 0 {
			return nil, argErr(name, 1, 0)
		}
		best, err := requireNumber(name, pos[0])
		if err != nil {
			return nil, err
		}
		for _, v := range pos[1:] {
			n, err := requireNumber(name, v)
			if err != nil {
				return nil, err
			}
			cmp, err := n.Cmp(best)
			if err != nil {
				return nil, err
			}
			if (wantGreater && cmp > 0) || (!wantGreater && cmp < 0) {
				best = n
			}
		}
		return best, nil
	}
}
