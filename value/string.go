package value

import "strings"

// QuoteMark records how a Quoted string was delimited in source, purely
// a display property — the semantic value is always Text.
type QuoteMark byte

const (
	QuoteDouble QuoteMark = '"'
	QuoteSingle QuoteMark = '\''
)

// Str is the String value variant: Quoted, Unquoted, or (pre-reduction)
// Schema. A Schema is reduced to Quoted/Unquoted during evaluation
// and should never reach the CSS tree.
type Str struct {
	Text     string
	Quoted   bool
	Quote    QuoteMark
	Schema   []SchemaPart // non-nil only before reduction
}

// SchemaPart is one fragment of an unreduced interpolated string: either
// a literal piece or a flagged interpolant expression (opaque to this
// package — the evaluator supplies the already-evaluated Value for each
// interpolant before constructing the final Str).
type SchemaPart struct {
	Literal     string
	Interpolant bool
	Value       Value // set when Interpolant is true, after evaluation
}

// NewQuoted builds a quoted string. text never contains quote
// characters themselves; escaping is a rendering concern.
func NewQuoted(text string, mark QuoteMark) Str {
	if mark == 0 {
		mark = QuoteDouble
	}
	return Str{Text: text, Quoted: true, Quote: mark}
}

// NewUnquoted builds an unquoted string/identifier.
func NewUnquoted(text string) Str {
	return Str{Text: text}
}

func (s Str) Type() Type   { return TypeString }
func (s Str) Truthy() bool { return true }

func (s Str) String() string {
	if !s.Quoted {
		return s.Text
	}
	var b strings.Builder
	b.WriteByte(byte(s.Quote))
	for _, r := range s.Text {
		if byte(r) == byte(s.Quote) || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte(byte(s.Quote))
	return b.String()
}

func (s Str) Equal(other Value) bool {
	os, ok := other.(Str)
	return ok && s.Text == os.Text
}

// WithQuoteLike returns s's text wrapped with model's quotedness: used
// by string concatenation, which takes its quote style from the String
// operand involved.
func (s Str) WithQuoteLike(model Str) Str {
	return Str{Text: s.Text, Quoted: model.Quoted, Quote: model.Quote}
}

// ReduceSchema splices literal fragments with already-evaluated
// interpolant values: interpolation never reparses
// syntactically, and a quoted string that is interpolated becomes
// unquoted text in the splice.
func (s Str) ReduceSchema() Str {
	if s.Schema == nil {
		return s
	}
	var b strings.Builder
	for _, part := range s.Schema {
		if !part.Interpolant {
			b.WriteString(part.Literal)
			continue
		}
		if part.Value == nil {
			continue
		}
		b.WriteString(stringify(part.Value))
	}
	return Str{Text: b.String(), Quoted: s.Quoted, Quote: s.Quote}
}

// stringify renders any Value the way interpolation splices it: quoted
// strings lose their quotes, everything else uses its normal String().
func stringify(v Value) string {
	if str, ok := v.(Str); ok {
		return str.Text
	}
	return v.String()
}
