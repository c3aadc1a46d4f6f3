package ast

import "github.com/titpetric/sassgo/selector"

// StmtKind discriminates Stmt variants. Input-only kinds must be gone
// by the time the expander finishes; output-eligible kinds are what
// remains in the emitted CSS tree.
type StmtKind int

const (
	// Input-only control flow and declarations.
	StmtIf StmtKind = iota
	StmtFor
	StmtEach
	StmtWhile
	StmtReturn
	StmtMixinDef
	StmtFunctionDef
	StmtInclude
	StmtContent
	StmtImportSass
	StmtExtend
	StmtAssignment
	StmtWarn
	StmtDebug
	StmtError

	// Output-eligible.
	StmtRuleset
	StmtDeclaration
	StmtMedia
	StmtSupports
	StmtDirective
	StmtKeyframeRule
	StmtImportCSS
	StmtComment
	StmtAtRoot
)

// SelectorSchema is a selector list that may still contain
// interpolation and so cannot be structurally parsed into
// selector.List until the schema is evaluated ("any node
// whose value is a Schema string" is input-only).
type SelectorSchema struct {
	Parts    []SchemaPart // literal/interpolant runs, re-tokenized into selector.List once spliced
	Resolved *selector.List
}

// IfBranch is one `@if`/`@else if`/`@else` arm.
type IfBranch struct {
	Cond *Expr // nil for a plain @else
	Body []Stmt
}

// Stmt is one AST/CSS-tree node. Like Expr, it is a single struct
// discriminated by Kind rather than a sealed interface hierarchy,
// since Go cannot express "one of these shapes" as a closed type.
type Stmt struct {
	Kind  StmtKind
	State ParserState

	// Emitter bookkeeping: nesting depth for
	// non-compressed indentation, and whether the emitter should open
	// a blank line before the next sibling group.
	Tabs     int
	GroupEnd bool

	// Bubbles marks a Media/Supports/Keyframes/AtRoot node produced while
	// expanding a ruleset body: the expander lifts it out to the
	// enclosing block once the ruleset finishes.
	Bubbles bool

	Body []Stmt

	// StmtIf
	Branches []IfBranch

	// StmtFor
	ForVar        string
	ForFrom       *Expr
	ForTo         *Expr
	ForInclusive  bool

	// StmtEach
	EachVars []string
	EachList *Expr

	// StmtWhile
	WhileCond *Expr

	// StmtReturn
	ReturnValue *Expr

	// StmtMixinDef / StmtFunctionDef
	DefName   string
	Params    []Param
	HasRest   bool // "..." trailing rest parameter
	RestName  string

	// StmtInclude
	IncludeName    string
	IncludeArgs    []Expr
	IncludeNamed   []NamedArg
	IncludeContent []Stmt // @content block attached to @include, if any

	// StmtContent: no extra fields; substitutes the nearest enclosing
	// mixin's captured @content block.

	// StmtImportSass / StmtImportCSS
	ImportTarget string

	// StmtExtend
	ExtendTarget SelectorSchema
	ExtendOptional bool

	// StmtAssignment
	AssignName    string
	AssignValue   *Expr
	AssignDefault bool
	AssignGlobal  bool

	// StmtWarn / StmtDebug / StmtError (// @error has no dedicated input-only kind in the distilled spec)
	Message *Expr

	// StmtRuleset
	Selector SelectorSchema

	// StmtDeclaration
	PropName    SchemaValue
	PropValue   *Expr
	Important   bool
	CustomProp  bool

	// StmtMedia / StmtSupports / StmtDirective
	AtRuleName   string
	AtRulePrelude SchemaValue

	// StmtKeyframeRule
	KeyframeSelector SchemaValue

	// StmtComment
	CommentText string
	CommentLoud bool

	// StmtAtRoot
	AtRootWithout []string // "without" directive names, e.g. "media", "rule", "all"
	AtRootWith    []string
}

// SchemaValue is a property name, at-rule prelude, or keyframe
// selector that may itself contain interpolation before evaluation.
type SchemaValue struct {
	Parts    []SchemaPart
	Resolved string
}

// Param is one formal parameter of a mixin/function definition.
type Param struct {
	Name    string
	Default *Expr // nil if required
}
