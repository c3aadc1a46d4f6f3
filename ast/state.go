// Package ast defines the statement and expression node shapes shared
// by the parsed input tree and the expanded CSS tree. Both trees use the same node shapes; which variants are legal
// in each is a matter of convention enforced by the expander, not the
// type system (Go has no sum-type mechanism to split them statically
// without duplicating every node).
package ast

// ParserState is the immutable source-location tag every node carries,
// grounded on `dst.Position` (line/column/offset) widened
// with a file id and span length for sourcemap mapping.
type ParserState struct {
	File          string
	Line          int
	Column        int
	ByteOffset    int
	ByteLength    int
	LeadingSpaces string
}
