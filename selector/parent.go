package selector

import "fmt"

// ErrNestedParentInPlaceholder reports "&" used where no parent selector
// is available to substitute.
type ErrNestedParentInPlaceholder struct{}

func (ErrNestedParentInPlaceholder) Error() string {
	return "parent selector \"&\" used with no outer selector"
}

// ResolveParent substitutes "&" in child with parent.
// When child contains no parent reference at all, implicit controls
// whether parent is prepended as an ancestor (true, the normal nested-
// rule case) or child is returned unchanged (false, top-level rules and
// the "resolve_parent(X, empty, implicit=false) == X" testable property
// from ).
func ResolveParent(child, parent List, implicit bool) (List, error) {
	if len(parent.Complexes) == 0 {
		if !child.hasAnyParentRef() {
			return child, nil
		}
		return List{}, ErrNestedParentInPlaceholder{}
	}

	out := List{IsOptional: child.IsOptional}
	for _, cc := range child.Complexes {
		resolved, err := resolveComplex(cc, parent, implicit)
		if err != nil {
			return List{}, err
		}
		out.Complexes = append(out.Complexes, resolved...)
	}
	return out, nil
}

func (l List) hasAnyParentRef() bool {
	for _, c := range l.Complexes {
		if c.HasParentRef() {
			return true
		}
	}
	return false
}

// resolveComplex expands one child complex selector against every
// parent complex selector, returning the cross product (// "&" substitution distributes over a comma-separated parent list).
func resolveComplex(c Complex, parent List, implicit bool) ([]Complex, error) {
	if !c.HasParentRef() {
		if !implicit {
			return []Complex{c}, nil
		}
		out := make([]Complex, 0, len(parent.Complexes))
		for _, p := range parent.Complexes {
			out = append(out, p.Append(c))
		}
		return out, nil
	}

	results := []Complex{{}}
	for _, item := range c.Items {
		var next []Complex
		if item.IsCombinator() {
			for _, r := range results {
				next = append(next, Complex{Items: append(append([]Item(nil), r.Items...), item)})
			}
			results = next
			continue
		}

		cp := item.Compound()
		if !cp.HasParent {
			substituted, err := substitutePseudoInner(cp, parent, implicit)
			if err != nil {
				return nil, err
			}
			for _, r := range results {
				next = append(next, Complex{Items: append(append([]Item(nil), r.Items...), CompoundItem(substituted))})
			}
			results = next
			continue
		}

		rest := cp.WithoutParentMarker()
		for _, r := range results {
			for _, p := range parent.Complexes {
				merged, ok := spliceParentCompound(p, rest)
				if !ok {
					return nil, fmt.Errorf("selector: cannot splice parent %q into compound %q", p, rest)
				}
				next = append(next, r.Append(merged))
			}
		}
		results = next
	}
	return results, nil
}

// spliceParentCompound joins a parent complex selector's trailing
// compound with the child compound that followed "&", e.g. parent
// ".a .b" and child "&.c" yields ".a .b.c".
func spliceParentCompound(parent Complex, childExtra Compound) (Complex, bool) {
	last, ok := parent.LastCompound()
	if !ok {
		if len(childExtra.Simples) == 0 {
			return parent, true
		}
		return parent.WithLastCompound(childExtra), true
	}
	combined := last.Append(childExtra.Simples...)
	return parent.WithLastCompound(combined), true
}

// substitutePseudoInner recurses into :not(...)/:matches(...)-style
// pseudo arguments so "&" inside them is resolved too.
func substitutePseudoInner(cp Compound, parent List, implicit bool) (Compound, error) {
	changed := false
	out := append([]Simple(nil), cp.Simples...)
	for i, s := range out {
		if s.Kind == KindPseudo && s.Inner != nil {
			resolved, err := ResolveParent(*s.Inner, parent, implicit)
			if err != nil {
				return Compound{}, err
			}
			s.Inner = &resolved
			out[i] = s
			changed = true
		}
	}
	if !changed {
		return cp, nil
	}
	return Compound{Simples: out, HasParent: cp.HasParent}, nil
}
