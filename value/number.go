package value

import (
	"strconv"
	"strings"

	"github.com/titpetric/sassgo/units"
)

// Number is a finite rational carried as a double plus a unit expressed
// as numerator/denominator multisets. LeadingZero records
// whether the source literal had a leading zero, purely for
// display/inspect round-tripping ("-0.5" vs "-.5"; see ).
type Number struct {
	Val          float64
	Num          units.Multiset
	Den          units.Multiset
	LeadingZero  bool
}

// NewNumber builds a unitless number.
func NewNumber(v float64) Number { return Number{Val: v} }

// NewNumberUnit builds a number with a single numerator unit, the common
// case for literals like "10px".
func NewNumberUnit(v float64, unit string) Number {
	if unit == "" {
		return Number{Val: v}
	}
	return Number{Val: v, Num: units.Multiset{unit}}
}

func (n Number) Type() Type   { return TypeNumber }
func (n Number) Truthy() bool { return true }

// Reduce collapses this number's unit multisets to canonical form,
// folding any cross-family-convertible cancellation into the scalar.
func (n Number) Reduce() Number {
	r := units.Reduce(n.Num, n.Den)
	return Number{Val: n.Val * r.Factor, Num: r.Num, Den: r.Den, LeadingZero: n.LeadingZero}
}

// Unitless reports whether the number carries no units at all.
func (n Number) Unitless() bool {
	return len(n.Num) == 0 && len(n.Den) == 0
}

// UnitString renders the unit portion the way Sass's unit() function
// does: "num1*num2/den1*den2".
func (n Number) UnitString() string {
	num := strings.Join(n.Num.Canonical(), "*")
	den := strings.Join(n.Den.Canonical(), "*")
	switch {
	case num == "" && den == "":
		return ""
	case den == "":
		return num
	case num == "":
		return "/" + den
	default:
		return num + "/" + den
	}
}

// Comparable reports whether two numbers can be compared/added directly:
// unitless on either side, or convertible units on both.
func (n Number) Comparable(o Number) bool {
	nr, or := n.Reduce(), o.Reduce()
	if nr.Unitless() || or.Unitless() {
		return true
	}
	return nr.Num.Equal(or.Num) && nr.Den.Equal(or.Den) ||
		(len(nr.Num) == 1 && len(nr.Den) == 0 && len(or.Num) == 1 && len(or.Den) == 0 &&
			units.Convertible(nr.Num[0], or.Num[0]))
}

// scaledValue returns this number's value converted into the other
// number's unit scale, for comparison/arithmetic. Only meaningful for
// the single-numerator-unit case that dominates real Sass arithmetic;
// multi-unit numbers compare/operate on their reduced raw values.
func (n Number) scaledValue(target Number) (float64, error) {
	nr := n.Reduce()
	tr := target.Reduce()
	if nr.Unitless() || tr.Unitless() {
		return nr.Val, nil
	}
	if len(nr.Num) == 1 && len(nr.Den) == 0 && len(tr.Num) == 1 && len(tr.Den) == 0 {
		return units.Convert(nr.Val, nr.Num[0], tr.Num[0])
	}
	if nr.Num.Equal(tr.Num) && nr.Den.Equal(tr.Den) {
		return nr.Val, nil
	}
	return 0, &units.ErrIncompatibleUnits{From: nr.UnitString(), To: tr.UnitString()}
}

// Cmp compares two numbers: reduce, then compare raw
// values if either side is unitless, else convert to a common base.
// Returns (-1|0|1, error); error is ErrIncompatibleUnits.
func (n Number) Cmp(o Number) (int, error) {
	v, err := n.scaledValue(o)
	if err != nil {
		return 0, err
	}
	ov := o.Reduce().Val
	return units.Cmp(v, ov), nil
}

func (n Number) Equal(other Value) bool {
	on, ok := other.(Number)
	if !ok {
		return false
	}
	c, err := n.Cmp(on)
	return err == nil && c == 0
}

// String formats the number for CSS/debug output: the shortest decimal
// form that round-trips the float64 exactly (no precision trimming),
// with the unit string reattached.
func (n Number) String() string {
	s := formatFloat(n.Val)
	if n.LeadingZero && strings.HasPrefix(s, "0.") {
		// literal fidelity is an emitter concern; sassgo's own
		// stringification keeps the leading zero rather than stripping it,
		// matching how it was written.
	} else if !n.LeadingZero && strings.HasPrefix(s, "0.") {
		s = s[1:]
	} else if !n.LeadingZero && strings.HasPrefix(s, "-0.") {
		s = "-" + s[2:]
	}
	u := n.UnitString()
	if u == "" {
		return s
	}
	return s + u
}

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return s
}

// Add, Sub, Mod:, units must be convertible; result
// takes the left unit.
func (n Number) Add(o Number) (Number, error) { return n.sameUnitOp(o, func(a, b float64) float64 { return a + b }) }
func (n Number) Sub(o Number) (Number, error) { return n.sameUnitOp(o, func(a, b float64) float64 { return a - b }) }
func (n Number) Mod(o Number) (Number, error) {
	return n.sameUnitOp(o, func(a, b float64) float64 {
		if b == 0 {
			return 0
		}
		m := a - b*float64(int64(a/b))
		return m
	})
}

func (n Number) sameUnitOp(o Number, f func(a, b float64) float64) (Number, error) {
	ov, err := o.scaledValue(n)
	if err != nil {
		return Number{}, err
	}
	return Number{Val: f(n.Val, ov), Num: n.Num, Den: n.Den}, nil
}

// Mul concatenates numerator unit multisets.
func (n Number) Mul(o Number) Number {
	num := append(append(units.Multiset(nil), n.Num...), o.Num...)
	den := append(append(units.Multiset(nil), n.Den...), o.Den...)
	return Number{Val: n.Val * o.Val, Num: num, Den: den}.Reduce()
}

// ErrDivisionByZero is the error kind names DivisionByZero.
type ErrDivisionByZero struct{}

func (ErrDivisionByZero) Error() string { return "division by zero" }

// Div divides, with the numerator of left with denominator of
// left ∪ numerator of right (then reduced)
func (n Number) Div(o Number) (Number, error) {
	if o.Val == 0 {
		return Number{}, ErrDivisionByZero{}
	}
	num := append(append(units.Multiset(nil), n.Num...), o.Den...)
	den := append(append(units.Multiset(nil), n.Den...), o.Num...)
	return Number{Val: n.Val / o.Val, Num: num, Den: den}.Reduce(), nil
}

// Neg negates the number (unary "-" on a Number).
func (n Number) Neg() Number {
	return Number{Val: -n.Val, Num: n.Num, Den: n.Den, LeadingZero: n.LeadingZero}
}
