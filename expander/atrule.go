package expander

import (
	"strings"

	"github.com/titpetric/sassgo/ast"
	"github.com/titpetric/sassgo/env"
	"github.com/titpetric/sassgo/value"
)

// partitionBubbles separates a container's directly-produced children
// into the ones that stay in its own Body and the ones still marked
// Bubbles that must keep escaping outward.
func partitionBubbles(children []ast.Stmt) (kept, bubbled []ast.Stmt) {
	for _, c := range children {
		if c.Bubbles {
			bubbled = append(bubbled, c)
		} else {
			kept = append(kept, c)
		}
	}
	return kept, bubbled
}

// expandMedia implements @media handling: cartesian-
// product query intersection when directly nested inside another
// @media with no intervening style rule ("bubbling"), and a
// Bubbles-tagged node otherwise so an enclosing Ruleset lifts it out.
func (ex *Expander) expandMedia(st ast.Stmt, scope *env.Scope) ([]ast.Stmt, flow, error) {
	ev := ex.evaluator(scope)
	query, err := ev.Interpolate(st.AtRulePrelude.Parts)
	if err != nil {
		return nil, flow{}, err
	}

	startDepth := ex.rulesetDepth
	nestedInAtRule := len(ex.mediaStack) > 0 && ex.mediaStack[len(ex.mediaStack)-1].depth == startDepth
	if nestedInAtRule {
		query = combineMediaQueries(ex.mediaStack[len(ex.mediaStack)-1].query, query)
	}

	ex.mediaStack = append(ex.mediaStack, mediaFrame{query: query, depth: startDepth})
	produced, fl, err := ex.expandStmts(st.Body, scope.PushBlock())
	ex.mediaStack = ex.mediaStack[:len(ex.mediaStack)-1]
	if err != nil {
		return nil, flow{}, err
	}
	if fl.kind == flowReturn {
		return nil, flow{}, errReturnOutsideFunction()
	}

	kept, bubbled := partitionBubbles(produced)
	if len(kept) == 0 && len(bubbled) > 0 {
		return bubbled, flow{}, nil
	}
	node := ast.Stmt{
		Kind:          ast.StmtMedia,
		AtRulePrelude: ast.SchemaValue{Resolved: query},
		Body:          kept,
		Bubbles:       ex.rulesetDepth > 0 || nestedInAtRule,
		State:         st.State,
	}
	return append([]ast.Stmt{node}, bubbled...), flow{}, nil
}

// expandSupports mirrors expandMedia for @supports; nested @supports
// combine with logical AND, per the same flattening rule browsers
// require since neither at-rule nests natively.
func (ex *Expander) expandSupports(st ast.Stmt, scope *env.Scope) ([]ast.Stmt, flow, error) {
	ev := ex.evaluator(scope)
	condition, err := ev.Interpolate(st.AtRulePrelude.Parts)
	if err != nil {
		return nil, flow{}, err
	}

	startDepth := ex.rulesetDepth
	nestedInAtRule := len(ex.supportsStack) > 0 && ex.supportsStack[len(ex.supportsStack)-1].depth == startDepth
	if nestedInAtRule {
		condition = "(" + ex.supportsStack[len(ex.supportsStack)-1].condition + ") and (" + condition + ")"
	}

	ex.supportsStack = append(ex.supportsStack, supportsFrame{condition: condition, depth: startDepth})
	produced, fl, err := ex.expandStmts(st.Body, scope.PushBlock())
	ex.supportsStack = ex.supportsStack[:len(ex.supportsStack)-1]
	if err != nil {
		return nil, flow{}, err
	}
	if fl.kind == flowReturn {
		return nil, flow{}, errReturnOutsideFunction()
	}

	kept, bubbled := partitionBubbles(produced)
	if len(kept) == 0 && len(bubbled) > 0 {
		return bubbled, flow{}, nil
	}
	node := ast.Stmt{
		Kind:          ast.StmtSupports,
		AtRulePrelude: ast.SchemaValue{Resolved: condition},
		Body:          kept,
		Bubbles:       ex.rulesetDepth > 0 || nestedInAtRule,
		State:         st.State,
	}
	return append([]ast.Stmt{node}, bubbled...), flow{}, nil
}

// combineMediaQueries implements the comma-is-OR/and-is-AND
// distribution a nested @media requires: each comma-separated
// alternative of the outer query is ANDed against each alternative of
// the inner one.
func combineMediaQueries(parent, child string) string {
	pParts := splitTopLevelComma(parent)
	cParts := splitTopLevelComma(child)
	var out []string
	for _, p := range pParts {
		for _, c := range cParts {
			out = append(out, strings.TrimSpace(p)+" and "+strings.TrimSpace(c))
		}
	}
	return strings.Join(out, ", ")
}

func splitTopLevelComma(s string) []string {
	var out []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}

// expandDirective handles a bare at-rule sassgo doesn't special-case
//: its prelude is interpolated
// and its body, if any, expanded like a plain block.
func (ex *Expander) expandDirective(st ast.Stmt, scope *env.Scope) ([]ast.Stmt, flow, error) {
	ev := ex.evaluator(scope)
	prelude, err := ev.Interpolate(st.AtRulePrelude.Parts)
	if err != nil {
		return nil, flow{}, err
	}
	var body []ast.Stmt
	if len(st.Body) > 0 {
		produced, fl, err := ex.expandStmts(st.Body, scope.PushBlock())
		if err != nil {
			return nil, flow{}, err
		}
		if fl.kind == flowReturn {
			return nil, flow{}, errReturnOutsideFunction()
		}
		body = produced
	}
	node := ast.Stmt{Kind: ast.StmtDirective, AtRuleName: st.AtRuleName, AtRulePrelude: ast.SchemaValue{Resolved: prelude}, Body: body, State: st.State}
	return []ast.Stmt{node}, flow{}, nil
}

// expandKeyframeRule evaluates a keyframe selector (e.g. "0%, 50%") and
// its declarations; sassgo tracks inKeyframes only so future extension
// points (keyframe-specific builtins) have somewhere to branch.
func (ex *Expander) expandKeyframeRule(st ast.Stmt, scope *env.Scope) ([]ast.Stmt, flow, error) {
	ev := ex.evaluator(scope)
	sel, err := ev.Interpolate(st.KeyframeSelector.Parts)
	if err != nil {
		return nil, flow{}, err
	}
	wasIn := ex.inKeyframes
	ex.inKeyframes = true
	produced, fl, err := ex.expandStmts(st.Body, scope.PushBlock())
	ex.inKeyframes = wasIn
	if err != nil {
		return nil, flow{}, err
	}
	if fl.kind == flowReturn {
		return nil, flow{}, errReturnOutsideFunction()
	}
	node := ast.Stmt{Kind: ast.StmtKeyframeRule, KeyframeSelector: ast.SchemaValue{Resolved: sel}, Body: produced, State: st.State}
	return []ast.Stmt{node}, flow{}, nil
}

// atRootSet turns an @at-root query's with/without directive-name list
// into the set of stack kinds to pop "all" expands
// to every kind sassgo tracks (rule, media, supports); a bare
// @at-root (no query) pops only the selector stack, matching the
// default Sass behavior of staying inside any enclosing @media.
func atRootSet(without, with []string) map[string]bool {
	all := []string{"rule", "media", "supports"}
	set := map[string]bool{}
	switch {
	case len(with) > 0:
		keep := map[string]bool{}
		for _, k := range with {
			if k == "all" {
				return set // keep everything: nothing is popped
			}
			keep[k] = true
		}
		for _, k := range all {
			if !keep[k] {
				set[k] = true
			}
		}
	case len(without) > 0:
		for _, k := range without {
			if k == "all" {
				for _, a := range all {
					set[a] = true
				}
				return set
			}
			set[k] = true
		}
	default:
		set["rule"] = true
	}
	return set
}

// expandAtRoot temporarily pops the requested stacks, expands the body
// against whatever ancestor context remains, then restores them
//.
func (ex *Expander) expandAtRoot(st ast.Stmt, scope *env.Scope) ([]ast.Stmt, flow, error) {
	set := atRootSet(st.AtRootWithout, st.AtRootWith)

	savedSelectors, savedDepth := ex.selectorStack, ex.rulesetDepth
	savedMedia := ex.mediaStack
	savedSupports := ex.supportsStack
	if set["rule"] {
		ex.selectorStack = nil
		ex.rulesetDepth = 0
	}
	if set["media"] {
		ex.mediaStack = nil
	}
	if set["supports"] {
		ex.supportsStack = nil
	}

	produced, fl, err := ex.expandStmts(st.Body, scope.PushBlock())

	ex.selectorStack, ex.rulesetDepth = savedSelectors, savedDepth
	ex.mediaStack = savedMedia
	ex.supportsStack = savedSupports

	if err != nil {
		return nil, flow{}, err
	}
	if fl.kind == flowReturn {
		return nil, flow{}, errReturnOutsideFunction()
	}
	return produced, flow{}, nil
}

// isLiteralCSSImport reports whether an @import target must pass
// through untouched rather than being resolved by the importer chain
//: an absolute URL, a media query after the
// string, a ".css" extension, or an explicit url(...) wrapper.
func isLiteralCSSImport(target string) bool {
	t := strings.TrimSpace(target)
	if strings.HasPrefix(t, "url(") {
		return true
	}
	unquoted := strings.Trim(t, "\"'")
	if strings.HasSuffix(unquoted, ".css") {
		return true
	}
	if strings.HasPrefix(unquoted, "//") || strings.Contains(unquoted, "://") {
		return true
	}
	if strings.Contains(t, " ") {
		// "foo.scss screen" style media-qualified import: the part after
		// the first space is a query, which forces passthrough.
		fields := strings.Fields(unquoted)
		if len(fields) > 1 {
			return true
		}
	}
	return false
}

// expandImport implements import contract: literal CSS
// passthrough detection, or importer-chain resolution with
// per-compilation parse caching.
func (ex *Expander) expandImport(st ast.Stmt, scope *env.Scope) ([]ast.Stmt, flow, error) {
	target := st.ImportTarget
	if isLiteralCSSImport(target) {
		node := ast.Stmt{Kind: ast.StmtImportCSS, ImportTarget: target, State: st.State}
		return []ast.Stmt{node}, flow{}, nil
	}
	if ex.Importers == nil {
		return nil, flow{}, ErrImportNotFound{Requested: target}
	}

	result := ex.Importers.Resolve(target, ex.CurrentFile)
	switch result.Kind {
	case ImportNotFound:
		return nil, flow{}, ErrImportNotFound{Requested: target}
	case ImportFailed:
		return nil, flow{}, ErrImportError{Requested: target, Message: result.Message}
	case ImportPassthrough:
		node := ast.Stmt{Kind: ast.StmtImportCSS, ImportTarget: result.Literal, State: st.State}
		return []ast.Stmt{node}, flow{}, nil
	}

	tree, ok := ex.importCache[result.AbsolutePath]
	if !ok {
		if ex.Parse == nil {
			return nil, flow{}, ErrImportError{Requested: target, Message: "no parser configured to expand imported source"}
		}
		parsed, err := ex.Parse(result.SourceText, result.Syntax)
		if err != nil {
			return nil, flow{}, ErrImportError{Requested: target, Message: err.Error()}
		}
		tree = parsed
		ex.importCache[result.AbsolutePath] = tree
	}

	prevFile := ex.CurrentFile
	ex.CurrentFile = result.AbsolutePath
	produced, fl, err := ex.expandStmts(tree, scope)
	ex.CurrentFile = prevFile
	if err != nil {
		return nil, flow{}, err
	}
	if fl.kind == flowReturn {
		return nil, flow{}, errReturnOutsideFunction()
	}
	return produced, flow{}, nil
}

func (ex *Expander) expandWarn(st ast.Stmt, scope *env.Scope) ([]ast.Stmt, flow, error) {
	msg, err := ex.stringifyMessage(st, scope)
	if err != nil {
		return nil, flow{}, err
	}
	ex.warn(msg, st.State)
	return nil, flow{}, nil
}

func (ex *Expander) expandDebug(st ast.Stmt, scope *env.Scope) ([]ast.Stmt, flow, error) {
	msg, err := ex.stringifyMessage(st, scope)
	if err != nil {
		return nil, flow{}, err
	}
	ex.debug(msg, st.State)
	return nil, flow{}, nil
}

// expandError raises UserError; unlike @warn/@debug this
// one does abort compilation.
func (ex *Expander) expandError(st ast.Stmt, scope *env.Scope) ([]ast.Stmt, flow, error) {
	msg, err := ex.stringifyMessage(st, scope)
	if err != nil {
		return nil, flow{}, err
	}
	return nil, flow{}, ErrUserError{Message: msg, State: st.State}
}

func (ex *Expander) stringifyMessage(st ast.Stmt, scope *env.Scope) (string, error) {
	if st.Message == nil {
		return "", nil
	}
	ev := ex.evaluator(scope)
	v, err := ev.Eval(*st.Message)
	if err != nil {
		return "", err
	}
	if s, ok := v.(value.Str); ok {
		return s.Text, nil
	}
	return v.String(), nil
}

func errReturnOutsideFunction() error {
	return ErrInvalidSass{Message: "@return may only be used inside a function body"}
}
