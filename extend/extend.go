// Package extend implements the @extend subset-map and the selector-list
// rewrite driver that grafts extender selectors onto every selector of
// their target. The map is keyed by simple
// selector rather than by full compound, since a compound target is
// decomposed into its simple-selector fingerprints at build time and
// queries filter by subset at apply time.
package extend

import (
	"fmt"

	"github.com/titpetric/sassgo/selector"
)

// Edge is one @extend registration: extender complex X extends target
// compound T, optionally marked !optional.
type Edge struct {
	Extender selector.Complex
	Target   selector.Compound
	Optional bool
}

// Map is the subset-map: simple selector fingerprint -> edges whose
// target compound contains that simple selector.
type Map struct {
	bySimple map[string][]Edge
}

func NewMap() *Map {
	return &Map{bySimple: make(map[string][]Edge)}
}

// Register inserts (extender, target) under every simple selector of
// target's build phase.
func (m *Map) Register(extender selector.List, target selector.Compound, optional bool) {
	for _, complex := range extender.Complexes {
		for _, s := range target.Simples {
			key := s.String()
			edge := Edge{Extender: complex, Target: target, Optional: optional}
			m.bySimple[key] = append(m.bySimple[key], edge)
		}
	}
}

// queryCompound returns every edge whose target is a (non-strict)
// subset of cp's simple selectors — i.e. every simple of the edge's
// target appears in cp.
func (m *Map) queryCompound(cp selector.Compound) []Edge {
	seen := make(map[string]bool)
	var out []Edge
	for _, s := range cp.Simples {
		for _, edge := range m.bySimple[s.String()] {
			if !targetIsSubsetOf(edge.Target, cp) {
				continue
			}
			key := edgeKey(edge, cp)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, edge)
		}
	}
	return out
}

func targetIsSubsetOf(target, cp selector.Compound) bool {
	for _, s := range target.Simples {
		if !cp.Contains(s) {
			return false
		}
	}
	return true
}

func edgeKey(e Edge, cp selector.Compound) string {
	return e.Extender.String() + "|" + e.Target.String() + "|" + cp.String()
}

// UnsatisfiedExtend reports a non-optional @extend that matched
// nothing by the end of compilation.
type UnsatisfiedExtend struct {
	Target string
}

func (e UnsatisfiedExtend) Error() string {
	return fmt.Sprintf("\"%s\" failed to @extend any selector", e.Target)
}

// maxFixedPointRounds bounds rewrite's fixed-point loop.
const maxFixedPointRounds = 256

// Rewriter drives the fixed-point apply phase over one compilation's
// subset-map, tracking which edges actually matched anything (to
// surface UnsatisfiedExtend for non-optional extends at the end).
type Rewriter struct {
	Map          *Map
	matched      map[string]bool
	IterationCap int // 0 means maxFixedPointRounds
	OnExceed     func(rounds int)
}

func NewRewriter(m *Map) *Rewriter {
	return &Rewriter{Map: m, matched: make(map[string]bool)}
}

// Rewrite applies the fixed-point selector rewrite to L, returning the
// extended selector list.
func (r *Rewriter) Rewrite(l selector.List) selector.List {
	cap := r.IterationCap
	if cap <= 0 {
		cap = maxFixedPointRounds
	}
	result := l
	for round := 0; round < cap; round++ {
		next := r.rewriteOnce(result)
		next = dedupeComplexes(next)
		if sameComplexSet(next, result) {
			return next
		}
		result = next
	}
	if r.OnExceed != nil {
		r.OnExceed(cap)
	}
	return result
}

func (r *Rewriter) rewriteOnce(l selector.List) selector.List {
	out := selector.List{IsOptional: l.IsOptional}
	for _, c := range l.Complexes {
		seed := r.expandComplex(c)
		out.Complexes = append(out.Complexes, seed...)
	}
	return out
}

// expandComplex produces every complex reachable by replacing, in
// turn, each compound K of c with unify(K minus target, extender) for
// every matching edge, then weaving the result back into c's position.
func (r *Rewriter) expandComplex(c selector.Complex) []selector.Complex {
	seed := []selector.Complex{c}
	for idx, cp := range c.Compounds() {
		edges := r.Map.queryCompound(cp)
		for _, edge := range edges {
			trimmed := removeTargetSimples(cp, edge.Target)
			extLast, ok := edge.Extender.LastCompound()
			if !ok {
				continue
			}
			unified, ok := selector.UnifyCompound(trimmed, extLast)
			if !ok {
				continue
			}
			replaced := edge.Extender.WithLastCompound(unified)
			r.matched[edge.Extender.String()+"|"+edge.Target.String()] = true

			for _, woven := range weaveIntoPosition(c, idx, replaced) {
				seed = append(seed, woven)
			}
		}
	}
	return seed
}

// weaveIntoPosition replaces c's compound at idx with replacement's
// trailing chain, weaving replacement's ancestor chain (if any) into
// c's own ancestor chain via the weave algorithm.
func weaveIntoPosition(c selector.Complex, idx int, replacement selector.Complex) []selector.Complex {
	compounds := c.Compounds()
	if idx >= len(compounds) {
		return nil
	}

	prefix := prefixUpTo(c, idx)
	if len(prefix.Items) == 0 {
		return []selector.Complex{replacement.Append(suffixFrom(c, idx+1))}
	}

	ancestorPart, hasAncestors := dropLastCompound(replacement)
	if !hasAncestors {
		return []selector.Complex{prefix.Append(selector.SingleCompound(compounds[idx])).Append(suffixFrom(c, idx+1))}
	}

	lastCompound, _ := replacement.LastCompound()
	woven := selector.Weave(prefix, ancestorPart)
	out := make([]selector.Complex, 0, len(woven))
	for _, w := range woven {
		full := w.WithLastCompound(lastCompound).Append(suffixFrom(c, idx+1))
		out = append(out, full)
	}
	return out
}

func prefixUpTo(c selector.Complex, compoundIdx int) selector.Complex {
	count := -1
	for i, it := range c.Items {
		if it.IsCompound() {
			count++
			if count == compoundIdx {
				return selector.Complex{Items: append([]selector.Item(nil), c.Items[:i]...)}
			}
		}
	}
	return selector.Complex{}
}

func suffixFrom(c selector.Complex, compoundIdx int) selector.Complex {
	count := -1
	for i, it := range c.Items {
		if it.IsCompound() {
			count++
			if count == compoundIdx {
				return selector.Complex{Items: append([]selector.Item(nil), c.Items[i:]...)}
			}
		}
	}
	return selector.Complex{}
}

func dropLastCompound(c selector.Complex) (selector.Complex, bool) {
	for i := len(c.Items) - 1; i >= 0; i-- {
		if c.Items[i].IsCompound() {
			if i == 0 {
				return selector.Complex{}, false
			}
			return selector.Complex{Items: append([]selector.Item(nil), c.Items[:i]...)}, true
		}
	}
	return selector.Complex{}, false
}

func removeTargetSimples(cp selector.Compound, target selector.Compound) selector.Compound {
	out := make([]selector.Simple, 0, len(cp.Simples))
	for _, s := range cp.Simples {
		if !target.Contains(s) {
			out = append(out, s)
		}
	}
	return selector.Compound{Simples: out, HasParent: cp.HasParent}
}

func dedupeComplexes(l selector.List) selector.List {
	out := selector.List{IsOptional: l.IsOptional}
	for _, c := range l.Complexes {
		dup := false
		for _, seen := range out.Complexes {
			if seen.Equal(c) {
				dup = true
				break
			}
		}
		if !dup {
			// drop complexes made redundant by an already-kept,
			// more general selector ("remove
			// trivially-dominated complexes").
			dominated := false
			for _, seen := range out.Complexes {
				if selector.IsSuperselector(seen, c) && !seen.Equal(c) {
					dominated = true
					break
				}
			}
			if !dominated {
				out.Complexes = append(out.Complexes, c)
			}
		}
	}
	return out
}

func sameComplexSet(a, b selector.List) bool {
	return a.Equal(b)
}

// Unsatisfied returns an UnsatisfiedExtend error for every non-optional
// edge registered but never matched, to be reported at the end of
// compilation.
func (r *Rewriter) Unsatisfied() []error {
	var errs []error
	for key, edges := range r.Map.bySimple {
		_ = key
		for _, e := range edges {
			if e.Optional {
				continue
			}
			if r.matched[e.Extender.String()+"|"+e.Target.String()] {
				continue
			}
			errs = append(errs, UnsatisfiedExtend{Target: e.Target.String()})
		}
	}
	return dedupeErrors(errs)
}

func dedupeErrors(errs []error) []error {
	seen := make(map[string]bool)
	var out []error
	for _, e := range errs {
		if seen[e.Error()] {
			continue
		}
		seen[e.Error()] = true
		out = append(out, e)
	}
	return out
}
