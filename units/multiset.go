package units

import "sort"

// Multiset is an unordered bag of unit names (duplicates allowed), the
// representation requires for a Number's numerator and
// denominator unit sets (e.g. "px*px/s" is numerator={px,px}, denominator={s}).
type Multiset []string

// Canonical returns a sorted copy, used as a map/comparison key.
func (m Multiset) Canonical() Multiset {
	if len(m) == 0 {
		return nil
	}
	out := make(Multiset, len(m))
	copy(out, m)
	sort.Strings(out)
	return out
}

// Equal reports bag equality (order-independent).
func (m Multiset) Equal(other Multiset) bool {
	if len(m) != len(other) {
		return false
	}
	a, b := m.Canonical(), other.Canonical()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Key returns a stable string key suitable for map indexing.
func (m Multiset) Key() string {
	c := m.Canonical()
	s := ""
	for i, u := range c {
		if i > 0 {
			s += "*"
		}
		s += u
	}
	return s
}

// Reduced is the result of collapsing a num/den unit multiset pair:
// cancelling identical units and converting convertible ones (within the
// same family) to a single shared unit per family, leaving units that
// share no convertible pair across numerator/denominator.
type Reduced struct {
	Factor float64  // multiply the raw scalar by this to get the reduced value
	Num    Multiset // remaining numerator units
	Den    Multiset // remaining denominator units
}

// Reduce collapses num/den unit multisets. It repeatedly finds a
// numerator unit and a denominator unit in the same family, converts the
// denominator unit into the numerator unit's scale (folding the
// conversion factor into Factor) and cancels the pair. Units from
// FamilyNone/FamilyUnknown families only cancel against an identical
// textual unit.
func Reduce(num, den Multiset) Reduced {
	n := append(Multiset(nil), num...)
	d := append(Multiset(nil), den...)
	factor := 1.0

	for i := 0; i < len(n); i++ {
		cancelled := false
		for j := 0; j < len(d); j++ {
			if n[i] == d[j] {
				n = append(n[:i], n[i+1:]...)
				d = append(d[:j], d[j+1:]...)
				i--
				cancelled = true
				break
			}
			fn, fd := ClassOf(n[i]), ClassOf(d[j])
			if fn == fd && fn != FamilyNone && fn != FamilyUnknown {
				f, err := Convert(1, n[i], d[j])
				if err == nil {
					factor *= f
					n = append(n[:i], n[i+1:]...)
					d = append(d[:j], d[j+1:]...)
					i--
					cancelled = true
					break
				}
			}
		}
		if cancelled {
			continue
		}
	}

	return Reduced{Factor: factor, Num: n, Den: d}
}
