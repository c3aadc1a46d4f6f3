package expander

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/titpetric/sassgo/selector"
)

// ParseSelectorText turns already-interpolation-spliced selector text (a
// SelectorSchema's Parts evaluated and joined) into a structural
// selector.List. This is deliberately narrow: it understands
// exactly the selector grammar (simple/compound/complex/list, combinators,
// attribute and pseudo syntax) and nothing else of SCSS — the full source
// lexer/parser remains an external collaborator.
func ParseSelectorText(text string) (selector.List, error) {
	p := &selParser{src: []rune(text)}
	l, err := p.parseList()
	if err != nil {
		return selector.List{}, fmt.Errorf("expander: invalid selector %q: %w", text, err)
	}
	return l, nil
}

type selParser struct {
	src []rune
	pos int
}

func (p *selParser) eof() bool { return p.pos >= len(p.src) }
func (p *selParser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}
func (p *selParser) advance() rune {
	r := p.src[p.pos]
	p.pos++
	return r
}
func (p *selParser) skipSpace() {
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.pos++
	}
}

// parseList splits top-level commas (not nested inside parens/brackets)
// and parses each segment as a Complex.
func (p *selParser) parseList() (selector.List, error) {
	var complexes []selector.Complex
	for {
		p.skipSpace()
		c, err := p.parseComplex()
		if err != nil {
			return selector.List{}, err
		}
		if len(c.Items) > 0 {
			complexes = append(complexes, c)
		}
		p.skipSpace()
		if p.eof() {
			break
		}
		if p.peek() == ',' {
			p.advance()
			continue
		}
		break
	}
	return selector.List{Complexes: complexes}, nil
}

// parseComplex parses an alternating Compound/Combinator sequence up to a
// top-level comma or closing bracket/paren (left to the caller to consume).
func (p *selParser) parseComplex() (selector.Complex, error) {
	var items []selector.Item
	expectCompound := true
	for {
		p.skipSpace()
		if p.eof() || p.peek() == ',' || p.peek() == ')' || p.peek() == ']' {
			break
		}
		if comb, ok := explicitCombinator(p.peek()); ok {
			p.advance()
			items = append(items, selector.CombinatorItem(comb))
			expectCompound = true
			p.skipSpace()
			continue
		}
		if !expectCompound {
			// whitespace between compounds with no explicit combinator
			// is a descendant combinator.
			items = append(items, selector.CombinatorItem(selector.Descendant))
		}
		cp, err := p.parseCompound()
		if err != nil {
			return selector.Complex{}, err
		}
		items = append(items, selector.CompoundItem(cp))
		expectCompound = false
	}
	return selector.Complex{Items: items}, nil
}

func explicitCombinator(r rune) (selector.Combinator, bool) {
	switch r {
	case '>':
		return selector.Child, true
	case '+':
		return selector.NextSibling, true
	case '~':
		return selector.SubsequentSibling, true
	}
	return 0, false
}

// parseCompound reads consecutive simple selectors with no separating
// whitespace.
func (p *selParser) parseCompound() (selector.Compound, error) {
	var simples []selector.Simple
	for {
		if p.eof() {
			break
		}
		r := p.peek()
		if unicode.IsSpace(r) || r == ',' || r == ')' || r == ']' {
			break
		}
		if _, ok := explicitCombinator(r); ok {
			break
		}
		s, err := p.parseSimple()
		if err != nil {
			return selector.Compound{}, err
		}
		simples = append(simples, s)
	}
	if len(simples) == 0 {
		return selector.Compound{}, fmt.Errorf("expected a selector, found %q", p.rest())
	}
	return selector.NewCompound(simples...), nil
}

func (p *selParser) rest() string {
	return string(p.src[p.pos:])
}

func (p *selParser) parseSimple() (selector.Simple, error) {
	switch p.peek() {
	case '&':
		p.advance()
		return selector.Parent(), nil
	case '.':
		p.advance()
		name := p.readIdent()
		return selector.Class(name), nil
	case '#':
		p.advance()
		name := p.readIdent()
		return selector.ID(name), nil
	case '%':
		p.advance()
		name := p.readIdent()
		return selector.Placeholder(name), nil
	case '[':
		return p.parseAttribute()
	case ':':
		return p.parsePseudo()
	case '*':
		return p.parseTypeOrUniversal()
	default:
		return p.parseTypeOrUniversal()
	}
}

// parseTypeOrUniversal handles "*", "name", "ns|name", and "*|name".
func (p *selParser) parseTypeOrUniversal() (selector.Simple, error) {
	start := p.pos
	universal := false
	var first string
	if p.peek() == '*' {
		p.advance()
		universal = true
	} else {
		first = p.readIdent()
		if first == "" {
			return selector.Simple{}, fmt.Errorf("unexpected character %q at %q", p.peek(), p.rest())
		}
	}
	if p.peek() == '|' && p.pos+1 < len(p.src) && p.src[p.pos+1] != '=' {
		p.advance()
		ns := selector.Namespace{Present: true, Universal: universal, Name: first}
		if p.peek() == '*' {
			p.advance()
			return selector.Universal(ns), nil
		}
		name := p.readIdent()
		return selector.Type(name, ns), nil
	}
	if universal {
		return selector.Universal(selector.Namespace{}), nil
	}
	_ = start
	return selector.Type(first, selector.Namespace{}), nil
}

func (p *selParser) parseAttribute() (selector.Simple, error) {
	p.advance() // '['
	p.skipSpace()
	name := p.readIdent()
	ns := selector.Namespace{}
	if p.peek() == '|' {
		p.advance()
		ns = selector.Namespace{Present: true, Name: name}
		name = p.readIdent()
	}
	p.skipSpace()
	matcher := selector.AttrExists
	var val string
	ci := false
	if p.peek() != ']' {
		matcher = p.readMatcher()
		p.skipSpace()
		val = p.readAttrValue()
		p.skipSpace()
		if p.peek() == 'i' || p.peek() == 'I' {
			ci = true
			p.advance()
			p.skipSpace()
		}
	}
	if p.peek() != ']' {
		return selector.Simple{}, fmt.Errorf("unterminated attribute selector at %q", p.rest())
	}
	p.advance()
	return selector.Attribute(name, ns, matcher, val, ci), nil
}

func (p *selParser) readMatcher() selector.AttrMatcher {
	for _, m := range []selector.AttrMatcher{selector.AttrIncludes, selector.AttrDashMatch, selector.AttrPrefix, selector.AttrSuffix, selector.AttrSubstring, selector.AttrEquals} {
		if p.hasPrefix(string(m)) {
			p.pos += len([]rune(string(m)))
			return m
		}
	}
	return selector.AttrExists
}

func (p *selParser) hasPrefix(s string) bool {
	rs := []rune(s)
	if p.pos+len(rs) > len(p.src) {
		return false
	}
	for i, r := range rs {
		if p.src[p.pos+i] != r {
			return false
		}
	}
	return true
}

func (p *selParser) readAttrValue() string {
	if p.eof() {
		return ""
	}
	if p.peek() == '"' || p.peek() == '\'' {
		quote := p.advance()
		var b strings.Builder
		for !p.eof() && p.peek() != quote {
			b.WriteRune(p.advance())
		}
		if !p.eof() {
			p.advance()
		}
		return b.String()
	}
	var b strings.Builder
	for !p.eof() && p.peek() != ']' && !unicode.IsSpace(p.peek()) {
		b.WriteRune(p.advance())
	}
	return b.String()
}

func (p *selParser) parsePseudo() (selector.Simple, error) {
	p.advance() // first ':'
	isElement := false
	if p.peek() == ':' {
		p.advance()
		isElement = true
	}
	name := p.readIdent()
	if name == "" {
		return selector.Simple{}, fmt.Errorf("expected pseudo-class/element name at %q", p.rest())
	}
	if p.peek() != '(' {
		return selector.Pseudo(name, isElement, "", nil), nil
	}
	p.advance()
	argStart := p.pos
	depth := 1
	for !p.eof() && depth > 0 {
		switch p.peek() {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				break
			}
		}
		if depth == 0 {
			break
		}
		p.advance()
	}
	raw := string(p.src[argStart:p.pos])
	if !p.eof() && p.peek() == ')' {
		p.advance()
	}
	if isFunctionalSelectorPseudo(name) {
		inner, err := ParseSelectorText(raw)
		if err != nil {
			return selector.Simple{}, err
		}
		return selector.Pseudo(name, isElement, "", &inner), nil
	}
	return selector.Pseudo(name, isElement, strings.TrimSpace(raw), nil), nil
}

// isFunctionalSelectorPseudo names the pseudo-classes whose argument is
// itself a selector list (":not", ":matches", etc.),
// as opposed to an opaque argument like ":nth-child(2n+1)".
func isFunctionalSelectorPseudo(name string) bool {
	switch name {
	case "not", "matches", "is", "where", "has", "current", "host", "host-context", "slotted":
		return true
	}
	return false
}

func (p *selParser) readIdent() string {
	var b strings.Builder
	for !p.eof() {
		r := p.peek()
		if r == '\\' && p.pos+1 < len(p.src) {
			b.WriteRune(p.src[p.pos+1])
			p.pos += 2
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r > unicode.MaxASCII {
			b.WriteRune(p.advance())
			continue
		}
		break
	}
	return b.String()
}
