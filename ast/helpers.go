package ast

// NewLiteral wraps an already-known value (see Expr.Literal's doc
// comment for why this is typed any) into a literal expression node.
func NewLiteral(v any, state ParserState) Expr {
	return Expr{Kind: ExprLiteral, Literal: v, State: state}
}

// NewVariable builds a $name reference expression.
func NewVariable(name string, state ParserState) Expr {
	return Expr{Kind: ExprVariable, Name: name, State: state}
}

// NewBinary builds a binary operator expression.
func NewBinary(op BinOp, left, right Expr, state ParserState) Expr {
	return Expr{Kind: ExprBinary, Op: op, Left: &left, Right: &right, State: state}
}

// NewCall builds a function/mixin call expression.
func NewCall(name string, positional []Expr, named []NamedArg, state ParserState) Expr {
	return Expr{Kind: ExprCall, Name: name, Positional: positional, Named: named, State: state}
}

// IsInputOnly reports whether k must be gone from the tree once
// statement expansion finishes.
func (k StmtKind) IsInputOnly() bool {
	switch k {
	case StmtIf, StmtFor, StmtEach, StmtWhile, StmtReturn, StmtMixinDef,
		StmtFunctionDef, StmtInclude, StmtContent, StmtImportSass,
		StmtExtend, StmtAssignment, StmtWarn, StmtDebug, StmtError:
		return true
	}
	return false
}

// IsOutputEligible reports the complement of IsInputOnly.
func (k StmtKind) IsOutputEligible() bool {
	return !k.IsInputOnly()
}
