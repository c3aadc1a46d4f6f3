package selector

// step is a compound paired with the combinator that introduces it
// (nil for the first compound in a chain, meaning "no ancestor
// constraint before this point").
type step struct {
	compound       Compound
	combinatorSet  bool
	combinator     Combinator
}

func decompose(c Complex) []step {
	var steps []step
	pendingCombinator := Combinator(0)
	pendingSet := false
	for _, it := range c.Items {
		if it.IsCombinator() {
			pendingCombinator = it.Combinator()
			pendingSet = true
			continue
		}
		steps = append(steps, step{compound: it.Compound(), combinatorSet: pendingSet, combinator: pendingCombinator})
		pendingSet = false
	}
	return steps
}

// IsSuperselector reports whether every element matched by b is also
// matched by a. Reflexive: IsSuperselector(x, x) is
// always true.
func IsSuperselector(a, b Complex) bool {
	return isSuperSteps(decompose(a), decompose(b))
}

func isSuperSteps(a, b []step) bool {
	if len(a) == 0 {
		return true
	}
	if len(b) == 0 {
		return false
	}

	aTail := a[len(a)-1]
	bTail := b[len(b)-1]
	if !compoundIsSuper(aTail.compound, bTail.compound) {
		return false
	}

	if !aTail.combinatorSet {
		// a has no ancestor constraint past this compound: satisfied
		// regardless of whatever ancestors b has.
		return true
	}

	switch aTail.combinator {
	case Descendant:
		// some ancestor of bTail (possibly several levels up) must
		// satisfy the rest of a.
		for k := len(b) - 1; k >= 0; k-- {
			if isSuperSteps(a[:len(a)-1], b[:k]) {
				return true
			}
		}
		return false
	case Child:
		if !bTail.combinatorSet || bTail.combinator != Child {
			return false
		}
		return isSuperSteps(a[:len(a)-1], b[:len(b)-1])
	case NextSibling:
		if !bTail.combinatorSet || bTail.combinator != NextSibling {
			return false
		}
		return isSuperSteps(a[:len(a)-1], b[:len(b)-1])
	case SubsequentSibling:
		if !bTail.combinatorSet {
			return false
		}
		if bTail.combinator != NextSibling && bTail.combinator != SubsequentSibling {
			return false
		}
		for k := len(b) - 1; k >= 0; k-- {
			if isSuperSteps(a[:len(a)-1], b[:k]) {
				return true
			}
		}
		return false
	}
	return false
}

// compoundIsSuper reports whether a compound matches a superset of the
// elements b matches: every simple selector in a must also be present
// (structurally equal) in b.
func compoundIsSuper(a, b Compound) bool {
	for _, s := range a.Simples {
		if s.Kind == KindUniversal {
			continue
		}
		if !b.Contains(s) {
			if s.Kind == KindPseudo && (s.Name == "not") && s.Inner != nil {
				if notPseudoSatisfiedBy(s, b) {
					continue
				}
			}
			return false
		}
	}
	return true
}

// notPseudoSatisfiedBy reports whether b already structurally excludes
// everything s's :not(...) argument would exclude — a conservative
// check covering the common case where b contains no complex selector
// at all inside any of its own :not() arguments to compare against.
func notPseudoSatisfiedBy(s Simple, b Compound) bool {
	for _, other := range b.Simples {
		if other.Kind == KindPseudo && other.Name == "not" && other.Inner != nil && s.Inner.Equal(*other.Inner) {
			return true
		}
	}
	return false
}

// IsSuperselectorList reports whether every complex selector in b is
// matched (made redundant) by some complex selector in a.
func IsSuperselectorList(a, b List) bool {
	for _, bc := range b.Complexes {
		covered := false
		for _, ac := range a.Complexes {
			if IsSuperselector(ac, bc) {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return true
}
