// Package selector implements the Sass selector model and algebra:
// simple/compound/complex/list selectors, parent-reference resolution,
// unification, the weave/subweave merge algorithm, superselector
// testing, and specificity. Selectors are
// value-typed: no operation here mutates an input selector, it always
// returns a new one.
package selector

import "strings"

// Combinator is the relation between two compounds in a complex selector.
type Combinator int

const (
	Descendant Combinator = iota // whitespace
	Child                        // >
	NextSibling                  // +
	SubsequentSibling            // ~
)

func (c Combinator) String() string {
	switch c {
	case Child:
		return ">"
	case NextSibling:
		return "+"
	case SubsequentSibling:
		return "~"
	default:
		return " "
	}
}

// Namespace models a selector's optional namespace: unset (nil pointer
// semantics are avoided here by using a tri-state struct instead, since
// Go has no sum type) — Present=false means "no namespace given",
// Universal means "*|foo", Name holds an explicit prefix ("svg|rect"),
// and an empty Name with Present=true means the default-namespace form.
type Namespace struct {
	Present   bool
	Universal bool
	Name      string
}

func (n Namespace) String() string {
	if !n.Present {
		return ""
	}
	if n.Universal {
		return "*|"
	}
	return n.Name + "|"
}

// Equal compares namespaces structurally.
func (n Namespace) Equal(o Namespace) bool {
	return n == o
}

// SimpleKind discriminates SimpleSelector variants.
type SimpleKind int

const (
	KindType SimpleKind = iota
	KindUniversal
	KindID
	KindClass
	KindAttribute
	KindPlaceholder
	KindParent
	KindPseudo
)

// AttrMatcher is the attribute-selector comparison operator.
type AttrMatcher string

const (
	AttrExists    AttrMatcher = ""
	AttrEquals    AttrMatcher = "="
	AttrIncludes  AttrMatcher = "~="
	AttrDashMatch AttrMatcher = "|="
	AttrPrefix    AttrMatcher = "^="
	AttrSuffix    AttrMatcher = "$="
	AttrSubstring AttrMatcher = "*="
)

// Simple is one simple selector: Type(name,ns), Id(name), Class(name),
// Attribute(...), Placeholder(name) (%foo), Parent (&), or
// Pseudo(name, is-element, argument, inner-selector).
type Simple struct {
	Kind SimpleKind

	Name string    // Type/Id/Class/Placeholder/Attribute/Pseudo name
	NS   Namespace // Type/Attribute namespace

	// Attribute fields
	AttrMatcher  AttrMatcher
	AttrValue    string
	AttrCaseInsensitive bool

	// Pseudo fields
	IsElement bool   // true for ::foo, false for :foo
	Argument  string // raw argument text, e.g. "2n+1" for :nth-child(2n+1)
	Inner     *List  // parsed inner selector, for :not(...)/:matches(...)/etc
}

// legacy pseudo-elements that may be written with one or two colons
// interchangeably.
var legacyPseudoElements = map[string]bool{
	"first-line": true, "first-letter": true, "before": true, "after": true,
}

func Type(name string, ns Namespace) Simple   { return Simple{Kind: KindType, Name: name, NS: ns} }
func Universal(ns Namespace) Simple           { return Simple{Kind: KindUniversal, NS: ns} }
func ID(name string) Simple                   { return Simple{Kind: KindID, Name: name} }
func Class(name string) Simple                { return Simple{Kind: KindClass, Name: name} }
func Placeholder(name string) Simple          { return Simple{Kind: KindPlaceholder, Name: name} }
func Parent() Simple                          { return Simple{Kind: KindParent} }

func Attribute(name string, ns Namespace, matcher AttrMatcher, val string, ci bool) Simple {
	return Simple{Kind: KindAttribute, Name: name, NS: ns, AttrMatcher: matcher, AttrValue: val, AttrCaseInsensitive: ci}
}

func Pseudo(name string, isElement bool, argument string, inner *List) Simple {
	return Simple{Kind: KindPseudo, Name: name, IsElement: isElement, Argument: argument, Inner: inner}
}

func (s Simple) String() string {
	switch s.Kind {
	case KindUniversal:
		return s.NS.String() + "*"
	case KindType:
		return s.NS.String() + s.Name
	case KindID:
		return "#" + s.Name
	case KindClass:
		return "." + s.Name
	case KindPlaceholder:
		return "%" + s.Name
	case KindParent:
		return "&"
	case KindAttribute:
		var b strings.Builder
		b.WriteByte('[')
		b.WriteString(s.NS.String())
		b.WriteString(s.Name)
		if s.AttrMatcher != AttrExists {
			b.WriteString(string(s.AttrMatcher))
			b.WriteString(s.AttrValue)
			if s.AttrCaseInsensitive {
				b.WriteString(" i")
			}
		}
		b.WriteByte(']')
		return b.String()
	case KindPseudo:
		colons := ":"
		if s.IsElement {
			colons = "::"
		}
		out := colons + s.Name
		if s.Argument != "" {
			out += "(" + s.Argument + ")"
		} else if s.Inner != nil {
			out += "(" + s.Inner.String() + ")"
		}
		return out
	}
	return ""
}

// EqualSimple compares two simple selectors for structural equality
// modulo legacy pseudo-element two-colon/one-colon spelling.
func EqualSimple(a, b Simple) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindType, KindUniversal:
		return a.Name == b.Name && a.NS.Equal(b.NS)
	case KindID, KindClass, KindPlaceholder:
		return a.Name == b.Name
	case KindParent:
		return true
	case KindAttribute:
		return a.Name == b.Name && a.NS.Equal(b.NS) && a.AttrMatcher == b.AttrMatcher &&
			a.AttrValue == b.AttrValue && a.AttrCaseInsensitive == b.AttrCaseInsensitive
	case KindPseudo:
		if a.Name != b.Name || a.Argument != b.Argument {
			return false
		}
		if a.IsElement != b.IsElement && !legacyPseudoElements[a.Name] {
			return false
		}
		return innerEqual(a.Inner, b.Inner)
	}
	return false
}

func innerEqual(a, b *List) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
