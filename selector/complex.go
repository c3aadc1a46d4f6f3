package selector

// CombinatorItem and Compound alternate in a Complex selector; Complex is
// modeled as a flat sequence so a "leading combinator" can
// be represented: Items[0] may be a CombinatorItem.
type itemKind int

const (
	itemCompound itemKind = iota
	itemCombinator
)

// Item is one element of a Complex selector's alternating sequence.
type Item struct {
	kind       itemKind
	compound   Compound
	combinator Combinator
}

func CompoundItem(c Compound) Item      { return Item{kind: itemCompound, compound: c} }
func CombinatorItem(c Combinator) Item  { return Item{kind: itemCombinator, combinator: c} }
func (it Item) IsCompound() bool        { return it.kind == itemCompound }
func (it Item) IsCombinator() bool      { return it.kind == itemCombinator }
func (it Item) Compound() Compound      { return it.compound }
func (it Item) Combinator() Combinator  { return it.combinator }

func (it Item) String() string {
	if it.IsCompound() {
		return it.compound.String()
	}
	return it.combinator.String()
}

// Complex is a non-empty alternating sequence of Compound and Combinator
// items.
type Complex struct {
	Items []Item
}

func NewComplex(items ...Item) Complex { return Complex{Items: items} }

// SingleCompound builds a Complex consisting of just one compound.
func SingleCompound(c Compound) Complex {
	return Complex{Items: []Item{CompoundItem(c)}}
}

func (c Complex) String() string {
	out := ""
	for i, it := range c.Items {
		if it.IsCombinator() {
			out += " " + it.String() + " "
		} else {
			if i > 0 && c.Items[i-1].IsCompound() {
				out += " "
			}
			out += it.String()
		}
	}
	return out
}

// Compounds returns just the Compound items, in order.
func (c Complex) Compounds() []Compound {
	out := make([]Compound, 0, len(c.Items))
	for _, it := range c.Items {
		if it.IsCompound() {
			out = append(out, it.compound)
		}
	}
	return out
}

// LastCompound returns the final compound in the sequence and whether
// one exists (false for a selector ending in a bare combinator, which
// the model permits but is not a legal terminal selector).
func (c Complex) LastCompound() (Compound, bool) {
	for i := len(c.Items) - 1; i >= 0; i-- {
		if c.Items[i].IsCompound() {
			return c.Items[i].compound, true
		}
	}
	return Compound{}, false
}

// LeadingCombinator reports whether the selector begins with a
// combinator rather than a compound.
func (c Complex) LeadingCombinator() (Combinator, bool) {
	if len(c.Items) > 0 && c.Items[0].IsCombinator() {
		return c.Items[0].combinator, true
	}
	return 0, false
}

// WithLastCompound returns a copy of c with its final compound replaced.
func (c Complex) WithLastCompound(newLast Compound) Complex {
	out := append([]Item(nil), c.Items...)
	for i := len(out) - 1; i >= 0; i-- {
		if out[i].IsCompound() {
			out[i] = CompoundItem(newLast)
			break
		}
	}
	return Complex{Items: out}
}

// Append concatenates two complex sequences, inserting a descendant
// combinator between them if both ends are compounds (used when
// substituting "&" with a parent whose own selector already ends in a
// compound).
func (c Complex) Append(rest Complex) Complex {
	if len(c.Items) == 0 {
		return rest
	}
	if len(rest.Items) == 0 {
		return c
	}
	out := append([]Item(nil), c.Items...)
	if c.Items[len(c.Items)-1].IsCompound() && rest.Items[0].IsCompound() {
		out = append(out, CombinatorItem(Descendant))
	}
	out = append(out, rest.Items...)
	return Complex{Items: out}
}

// HasParentRef reports whether any compound in the sequence contains a
// Parent (&) simple selector.
func (c Complex) HasParentRef() bool {
	for _, cp := range c.Compounds() {
		if cp.HasParent {
			return true
		}
		for _, s := range cp.Simples {
			if s.Kind == KindParent {
				return true
			}
			if s.Kind == KindPseudo && s.Inner != nil {
				for _, inner := range s.Inner.Complexes {
					if inner.HasParentRef() {
						return true
					}
				}
			}
		}
	}
	return false
}

// Equal compares two complex selectors structurally (compound equality
// modulo simple reordering, exact combinators).
func (c Complex) Equal(o Complex) bool {
	if len(c.Items) != len(o.Items) {
		return false
	}
	for i := range c.Items {
		a, b := c.Items[i], o.Items[i]
		if a.kind != b.kind {
			return false
		}
		if a.IsCombinator() {
			if a.combinator != b.combinator {
				return false
			}
		} else if !a.compound.Equal(b.compound) {
			return false
		}
	}
	return true
}

// List is a comma-separated SelectorList. IsOptional
// records "!optional" on @extend.
type List struct {
	Complexes  []Complex
	IsOptional bool
}

func NewList(complexes ...Complex) List { return List{Complexes: complexes} }

func (l List) String() string {
	out := ""
	for i, c := range l.Complexes {
		if i > 0 {
			out += ", "
		}
		out += c.String()
	}
	return out
}

func (l List) Equal(o List) bool {
	if len(l.Complexes) != len(o.Complexes) {
		return false
	}
	used := make([]bool, len(o.Complexes))
	for _, c := range l.Complexes {
		found := false
		for j, oc := range o.Complexes {
			if !used[j] && c.Equal(oc) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Dedup removes selectors already present earlier in the list (by
// structural equality), preserving first-seen order.
func (l List) Dedup() List {
	out := List{IsOptional: l.IsOptional}
	for _, c := range l.Complexes {
		dup := false
		for _, seen := range out.Complexes {
			if seen.Equal(c) {
				dup = true
				break
			}
		}
		if !dup {
			out.Complexes = append(out.Complexes, c)
		}
	}
	return out
}

// WithoutPlaceholders drops every complex selector in which any
// compound consists solely of placeholder selectors ("selectors
// consisting solely of placeholders are dropped from output entirely").
func (l List) WithoutPlaceholders() List {
	out := List{IsOptional: l.IsOptional}
	for _, c := range l.Complexes {
		drop := false
		for _, cp := range c.Compounds() {
			if cp.IsPlaceholderOnly() {
				drop = true
				break
			}
		}
		if !drop {
			out.Complexes = append(out.Complexes, c)
		}
	}
	return out
}
