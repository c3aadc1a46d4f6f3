package expander

import (
	"github.com/titpetric/sassgo/ast"
	"github.com/titpetric/sassgo/extend"
)

// applyExtends runs the @extend fixed-point rewrite over every
// Ruleset's already-resolved selector once the whole tree has been
// produced: extend registrations made anywhere
// in the stylesheet, including after the target rule in source order,
// must be visible to every rule, so this has to be a second pass over
// the finished tree rather than something done while a Ruleset is
// still being expanded. Rulesets left with no selector once
// placeholder-only complexes are dropped are removed entirely
//.
func applyExtends(tree []ast.Stmt, rewriter *extend.Rewriter) []ast.Stmt {
	out := make([]ast.Stmt, 0, len(tree))
	for _, st := range tree {
		switch st.Kind {
		case ast.StmtRuleset:
			if st.Selector.Resolved == nil {
				out = append(out, st)
				continue
			}
			rewritten := rewriter.Rewrite(*st.Selector.Resolved).WithoutPlaceholders().Dedup()
			if len(rewritten.Complexes) == 0 {
				continue
			}
			st.Selector.Resolved = &rewritten
			st.Body = applyExtends(st.Body, rewriter)
			out = append(out, st)
		case ast.StmtMedia, ast.StmtSupports, ast.StmtDirective, ast.StmtAtRoot, ast.StmtKeyframeRule:
			st.Body = applyExtends(st.Body, rewriter)
			out = append(out, st)
		default:
			out = append(out, st)
		}
	}
	return out
}
