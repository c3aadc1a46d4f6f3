package selector

// UnifyCompound merges two compound selectors into one matching the
// intersection of what each matches Returns
// ok=false when the two are provably disjoint (two distinct type
// selectors, two distinct ids, or a namespace clash).
func UnifyCompound(a, b Compound) (Compound, bool) {
	aType, aHasType := typeOf(a)
	bType, bHasType := typeOf(b)

	var unifiedType *Simple
	switch {
	case aHasType && bHasType:
		t, ok := unifyTypes(aType, bType)
		if !ok {
			return Compound{}, false
		}
		unifiedType = &t
	case aHasType:
		unifiedType = &aType
	case bHasType:
		unifiedType = &bType
	}

	out := Compound{}
	if unifiedType != nil {
		out.Simples = append(out.Simples, *unifiedType)
	}

	seenID := ""
	for _, s := range a.Simples {
		if s.Kind == KindType || s.Kind == KindUniversal {
			continue
		}
		if s.Kind == KindID {
			if seenID != "" && seenID != s.Name {
				return Compound{}, false
			}
			seenID = s.Name
		}
		out.Simples = append(out.Simples, s)
	}
	for _, s := range b.Simples {
		if s.Kind == KindType || s.Kind == KindUniversal {
			continue
		}
		if s.Kind == KindID {
			if seenID != "" && seenID != s.Name {
				return Compound{}, false
			}
			seenID = s.Name
		}
		if !out.Contains(s) {
			out.Simples = append(out.Simples, s)
		}
	}

	out.HasParent = a.HasParent || b.HasParent
	return out.Sorted(), true
}

func typeOf(c Compound) (Simple, bool) {
	for _, s := range c.Simples {
		if s.Kind == KindType || s.Kind == KindUniversal {
			return s, true
		}
	}
	return Simple{}, false
}

// unifyTypes merges two type/universal simple selectors: "*" unifies
// with anything, two equal types unify with themselves, two distinct
// concrete types are disjoint.
func unifyTypes(a, b Simple) (Simple, bool) {
	if a.Kind == KindUniversal {
		return b, true
	}
	if b.Kind == KindUniversal {
		return a, true
	}
	if a.Name == b.Name && a.NS.Equal(b.NS) {
		return a, true
	}
	return Simple{}, false
}

// UnifyComplex unifies the final compounds of a and b and returns a
// with its final compound replaced by the result; b's earlier
// compounds and combinators are not included. Returns ok=false if the
// final compounds are disjoint.
func UnifyComplex(a, b Complex) (Complex, bool) {
	aLast, aOK := a.LastCompound()
	bLast, bOK := b.LastCompound()
	if !aOK || !bOK {
		return Complex{}, false
	}
	unified, ok := UnifyCompound(aLast, bLast)
	if !ok {
		return Complex{}, false
	}
	return a.WithLastCompound(unified), true
}
