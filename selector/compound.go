package selector

// Compound is a non-empty ordered sequence of Simple selectors applying
// to the same element, plus a flag distinguishing "&.foo" (HasParent)
// from ".foo".
type Compound struct {
	Simples   []Simple
	HasParent bool
}

func NewCompound(simples ...Simple) Compound {
	c := Compound{Simples: simples}
	for _, s := range simples {
		if s.Kind == KindParent {
			c.HasParent = true
		}
	}
	return c
}

func (c Compound) String() string {
	out := ""
	for _, s := range c.Simples {
		out += s.String()
	}
	return out
}

// unificationRank orders simple selectors the way 
// prescribes: types/universals first, then ids, classes, attributes,
// pseudo-classes, pseudo-elements last.
func unificationRank(s Simple) int {
	switch s.Kind {
	case KindType, KindUniversal, KindParent:
		return 0
	case KindID:
		return 1
	case KindClass, KindPlaceholder:
		return 2
	case KindAttribute:
		return 3
	case KindPseudo:
		if s.IsElement {
			return 5
		}
		return 4
	}
	return 6
}

// Sorted returns a copy of c with its simples in canonical unification
// order (stable, to preserve relative order within a rank).
func (c Compound) Sorted() Compound {
	out := append([]Simple(nil), c.Simples...)
	// stable insertion sort: simples lists are short, and stability
	// matters more than asymptotic complexity here.
	for i := 1; i < len(out); i++ {
		j := i
		for j > 0 && unificationRank(out[j-1]) > unificationRank(out[j]) {
			out[j-1], out[j] = out[j], out[j-1]
			j--
		}
	}
	return Compound{Simples: out, HasParent: c.HasParent}
}

// Contains reports whether c has a simple selector structurally equal to s.
func (c Compound) Contains(s Simple) bool {
	for _, e := range c.Simples {
		if EqualSimple(e, s) {
			return true
		}
	}
	return false
}

// Equal compares two compounds as sets in canonical order (selector
// equality is modulo simple-selector reordering).
func (c Compound) Equal(o Compound) bool {
	a, b := c.Sorted(), o.Sorted()
	if len(a.Simples) != len(b.Simples) {
		return false
	}
	for i := range a.Simples {
		if !EqualSimple(a.Simples[i], b.Simples[i]) {
			return false
		}
	}
	return true
}

// WithoutParentMarker returns a copy of c with any Parent (&) simple
// selector removed, used once parent substitution has spliced the real
// parent compound in.
func (c Compound) WithoutParentMarker() Compound {
	out := make([]Simple, 0, len(c.Simples))
	for _, s := range c.Simples {
		if s.Kind != KindParent {
			out = append(out, s)
		}
	}
	return Compound{Simples: out, HasParent: c.HasParent}
}

// Append returns a new compound with extra simples appended.
func (c Compound) Append(extra ...Simple) Compound {
	out := append(append([]Simple(nil), c.Simples...), extra...)
	return Compound{Simples: out, HasParent: c.HasParent}
}

// IsPlaceholderOnly reports whether every simple selector is a
// Placeholder — such compounds are dropped from output entirely once
// their %name is gone.
func (c Compound) IsPlaceholderOnly() bool {
	if len(c.Simples) == 0 {
		return false
	}
	for _, s := range c.Simples {
		if s.Kind != KindPlaceholder {
			return false
		}
	}
	return true
}

// HasPlaceholder reports whether any simple selector is a placeholder.
func (c Compound) HasPlaceholder() bool {
	for _, s := range c.Simples {
		if s.Kind == KindPlaceholder {
			return true
		}
	}
	return false
}
