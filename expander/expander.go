// Package expander implements the statement expander: it walks the
// parsed Sass statement tree and reduces it to the output-eligible CSS
// tree, threading the implicit state along the way (an
// environment-scope chain, a selector stack, media/supports stacks, a
// content stack, and a call stack for recursion accounting).
//
// The overall shape — collect children, resolve against a variable
// stack, emit — follows a conventional tree-walking renderer, widened
// from a flat variable-substitution pass into a tree-to-tree transform
// to accommodate Sass's control flow (conditionals, loops, mixins,
// functions, extends).
package expander

import (
	"fmt"

	"github.com/titpetric/sassgo/ast"
	"github.com/titpetric/sassgo/env"
	"github.com/titpetric/sassgo/evaluator"
	"github.com/titpetric/sassgo/extend"
	"github.com/titpetric/sassgo/selector"
	"github.com/titpetric/sassgo/value"
)

// Logger receives @warn/@debug output ("warnings ... go to
// a caller-supplied sink, never abort compilation").
type Logger interface {
	Warn(msg string, state ast.ParserState)
	Debug(msg string, state ast.ParserState)
}

// Frame is one entry of the call stack, used for both recursion
// accounting and error enrichment.
type Frame struct {
	Name  string
	State ast.ParserState
}

// ImportResolver is the narrow slice of the importer chain contract
// the expander needs: resolve a requested @import
// target against the current file's base path into parsed statements,
// or report that it resolved to literal CSS text, or that nothing
// claimed it.
type ImportResolver interface {
	Resolve(requested, base string) ImportResult
}

// ImportResultKind discriminates ImportResult, mirroring the importer
// package's own Resolved/Passthrough/Error/NotFound contract without
// this package depending on importer directly (avoids an import cycle
// between importer, which will want to call back into parsing, and
// expander).
type ImportResultKind int

const (
	ImportNotFound ImportResultKind = iota
	ImportResolved
	ImportPassthrough
	ImportFailed
)

// ImportResult is what one importer in the chain reports for one
// @import request.
type ImportResult struct {
	Kind         ImportResultKind
	AbsolutePath string
	SourceText   string
	Syntax       string
	Literal      string
	Message      string
}

const (
	defaultRecursionLimit = 1024
	defaultWhileLimit     = 512
)

// flowKind discriminates the non-local control-flow result threaded
// back up through every statement-expansion call (// "@return ... function-only unwind").
type flowKind int

const (
	flowNone flowKind = iota
	flowReturn
)

type flow struct {
	kind  flowKind
	value value.Value
}

// mediaFrame/supportsFrame snapshot the at-rule stack entry plus the
// ruleset nesting depth active when it was pushed, so the expander can
// tell "this @media is nested directly inside another @media" (flatten
// by cartesian product) from "this @media is nested inside a style
// rule" (bubble it out,  "bubbling").
type mediaFrame struct {
	query string
	depth int
}

type supportsFrame struct {
	condition string
	depth     int
}

// contentFrame is one entry of the content stack: the @content block
// attached to an @include, paired with the *caller's* scope.
type contentFrame struct {
	body  []ast.Stmt
	scope *env.Scope
}

// Expander carries every piece of implicit state described above, plus
// the external collaborators (built-ins, importers, parser callback,
// logger) a compilation is configured with.
type Expander struct {
	Builtins  evaluator.Builtins
	Importers ImportResolver
	// Parse re-enters the (external, out-of-scope) Sass parser to turn
	// imported source text into a statement tree, so @import of an
	// actual stylesheet is functional even though parsing itself is not
	// this package's concern.
	Parse func(source, syntax string) ([]ast.Stmt, error)
	Logger          Logger
	ExtendMap       *extend.Map
	RecursionLimit  int
	WhileLimit      int
	CurrentFile     string

	selectorStack []selector.List
	rulesetDepth  int
	mediaStack    []mediaFrame
	supportsStack []supportsFrame
	contentStack  []contentFrame
	inKeyframes   bool
	callStack     []Frame
	importCache   map[string][]ast.Stmt
}

// New builds an Expander ready to expand a stylesheet. Zero-value
// Builtins/Importers/Parse/Logger are fine: built-ins simply won't
// resolve, imports of real files will fail ImportNotFound, and
// @warn/@debug are silently dropped.
func New() *Expander {
	return &Expander{
		ExtendMap:   extend.NewMap(),
		importCache: make(map[string][]ast.Stmt),
	}
}

func (ex *Expander) recursionLimit() int {
	if ex.RecursionLimit > 0 {
		return ex.RecursionLimit
	}
	return defaultRecursionLimit
}

func (ex *Expander) whileLimit() int {
	if ex.WhileLimit > 0 {
		return ex.WhileLimit
	}
	return defaultWhileLimit
}

func (ex *Expander) stackNames() []string {
	out := make([]string, len(ex.callStack))
	for i, f := range ex.callStack {
		out[i] = f.Name
	}
	return out
}

func (ex *Expander) evaluator(scope *env.Scope) *evaluator.Evaluator {
	return evaluator.New(scope, ex.Builtins)
}

func (ex *Expander) topSelector() selector.List {
	if len(ex.selectorStack) == 0 {
		return selector.List{}
	}
	return ex.selectorStack[len(ex.selectorStack)-1]
}

func (ex *Expander) warn(msg string, state ast.ParserState) {
	if ex.Logger != nil {
		ex.Logger.Warn(msg, state)
	}
}

func (ex *Expander) debug(msg string, state ast.ParserState) {
	if ex.Logger != nil {
		ex.Logger.Debug(msg, state)
	}
}

// Expand runs the expander over a parsed stylesheet, producing an
// output tree with no input-only statement kinds remaining, every
// Ruleset selector fully resolved to a SelectorList, and every
// declaration value reduced to a Value, then drives the
// @extend fixed-point rewrite over the result.
func (ex *Expander) Expand(stylesheet []ast.Stmt, root *env.Scope) ([]ast.Stmt, []error, error) {
	out, fl, err := ex.expandStmts(stylesheet, root)
	if err != nil {
		return nil, nil, err
	}
	if fl.kind == flowReturn {
		return nil, nil, fmt.Errorf("expander: @return used outside a function")
	}
	rewriter := extend.NewRewriter(ex.ExtendMap)
	rewriter.OnExceed = func(rounds int) {
		ex.warn(fmt.Sprintf("@extend: selector rewrite stopped after %d rounds without reaching a fixed point", rounds), ast.ParserState{})
	}
	out = applyExtends(out, rewriter)
	return out, rewriter.Unsatisfied(), nil
}

// expandStmts expands every statement in body against scope in order,
// concatenating their outputs, and stops early the moment any one of
// them produces a @return (flowReturn): the remainder of body is
// unreachable, exactly like a return statement in any imperative
// language.
func (ex *Expander) expandStmts(body []ast.Stmt, scope *env.Scope) ([]ast.Stmt, flow, error) {
	var out []ast.Stmt
	for i := range body {
		produced, fl, err := ex.expandStmt(body[i], scope)
		if err != nil {
			return nil, flow{}, err
		}
		out = append(out, produced...)
		if fl.kind == flowReturn {
			return out, fl, nil
		}
	}
	return out, flow{}, nil
}

// expandStmt dispatches one statement by kind. Each handler returns the
// statements it produced (zero or more; most input-only kinds produce
// none directly but may recurse into ones that do), any in-flight
// @return, and an error.
func (ex *Expander) expandStmt(st ast.Stmt, scope *env.Scope) ([]ast.Stmt, flow, error) {
	switch st.Kind {
	case ast.StmtIf:
		return ex.expandIf(st, scope)
	case ast.StmtFor:
		return ex.expandFor(st, scope)
	case ast.StmtEach:
		return ex.expandEach(st, scope)
	case ast.StmtWhile:
		return ex.expandWhile(st, scope)
	case ast.StmtReturn:
		return ex.expandReturn(st, scope)
	case ast.StmtMixinDef:
		return ex.expandMixinDef(st, scope)
	case ast.StmtFunctionDef:
		return ex.expandFunctionDef(st, scope)
	case ast.StmtInclude:
		return ex.expandInclude(st, scope)
	case ast.StmtContent:
		return ex.expandContent(st, scope)
	case ast.StmtImportSass:
		return ex.expandImport(st, scope)
	case ast.StmtExtend:
		return ex.expandExtend(st, scope)
	case ast.StmtAssignment:
		return ex.expandAssignment(st, scope)
	case ast.StmtWarn:
		return ex.expandWarn(st, scope)
	case ast.StmtDebug:
		return ex.expandDebug(st, scope)
	case ast.StmtError:
		return ex.expandError(st, scope)

	case ast.StmtRuleset:
		return ex.expandRuleset(st, scope)
	case ast.StmtDeclaration:
		return ex.expandDeclaration(st, scope, "")
	case ast.StmtMedia:
		return ex.expandMedia(st, scope)
	case ast.StmtSupports:
		return ex.expandSupports(st, scope)
	case ast.StmtDirective:
		return ex.expandDirective(st, scope)
	case ast.StmtKeyframeRule:
		return ex.expandKeyframeRule(st, scope)
	case ast.StmtImportCSS:
		return []ast.Stmt{st}, flow{}, nil
	case ast.StmtComment:
		return []ast.Stmt{st}, flow{}, nil
	case ast.StmtAtRoot:
		return ex.expandAtRoot(st, scope)
	}
	return nil, flow{}, fmt.Errorf("expander: unhandled statement kind %v", st.Kind)
}

// expandBlock expands body in a fresh transparent block scope pushed
// onto scope. The top-level stylesheet is expanded directly via
// expandStmts with the root scope by Expand; no statement handler in
// this package calls expandBlock, each pushes its own block scope.
func (ex *Expander) expandBlock(body []ast.Stmt, scope *env.Scope) ([]ast.Stmt, flow, error) {
	return ex.expandStmts(body, scope.PushBlock())
}
