package selector

// maxWeaveResults bounds the branching of subweave on pathological
// inputs; real stylesheets never come close to it. Exceeding it simply
// truncates the result set rather than failing the compile.
const maxWeaveResults = 64

// Weave computes every complex selector that is a superselector of both
// a and b's contexts merged together This is the
// core of @extend: when a selector nested under one parent chain
// extends a selector nested under another, weave produces the set of
// selectors matching elements reachable either way.
func Weave(a, b Complex) []Complex {
	merged := subweave(a.Items, b.Items)
	out := make([]Complex, 0, len(merged))
	for _, items := range merged {
		out = append(out, Complex{Items: items})
	}
	return out
}

// subweave merges two alternating compound/combinator sequences,
// returning every valid interleaving that preserves each sequence's
// internal order. Combinators must line up exactly; compounds may
// either unify in place or let one side's compound lead, modeling the
// ambiguity of how two independently-written selector contexts could
// combine to match the same element.
func subweave(seq1, seq2 []Item) [][]Item {
	if len(seq1) == 0 {
		return [][]Item{cloneItems(seq2)}
	}
	if len(seq2) == 0 {
		return [][]Item{cloneItems(seq1)}
	}

	if seq1[0].IsCombinator() || seq2[0].IsCombinator() {
		if !seq1[0].IsCombinator() || !seq2[0].IsCombinator() || seq1[0].Combinator() != seq2[0].Combinator() {
			return nil
		}
		rest := subweave(seq1[1:], seq2[1:])
		return prependEach(seq1[0], rest)
	}

	var results [][]Item

	if unified, ok := UnifyCompound(seq1[0].Compound(), seq2[0].Compound()); ok {
		results = append(results, prependEach(CompoundItem(unified), subweave(seq1[1:], seq2[1:]))...)
	}
	results = append(results, prependEach(seq1[0], subweave(seq1[1:], seq2))...)
	results = append(results, prependEach(seq2[0], subweave(seq1, seq2[1:]))...)

	return dedupItemLists(capResults(results))
}

func prependEach(head Item, rest [][]Item) [][]Item {
	out := make([][]Item, 0, len(rest))
	for _, r := range rest {
		combined := make([]Item, 0, len(r)+1)
		combined = append(combined, head)
		combined = append(combined, r...)
		out = append(out, combined)
	}
	return out
}

func capResults(results [][]Item) [][]Item {
	if len(results) > maxWeaveResults {
		return results[:maxWeaveResults]
	}
	return results
}

func cloneItems(items []Item) []Item {
	return append([]Item(nil), items...)
}

func dedupItemLists(lists [][]Item) [][]Item {
	out := make([][]Item, 0, len(lists))
	for _, l := range lists {
		dup := false
		for _, seen := range out {
			if Complex{Items: l}.Equal(Complex{Items: seen}) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, l)
		}
	}
	return out
}
