// Package value implements the Sass dynamic value model:
// Null, Boolean, Number, Color, String, List, Map, Function. Values are
// immutable once constructed; every operation that would mutate a shared
// value returns a new one, the way package selector treats selectors as
// value-typed.
package value

import "fmt"

// Separator is a List's element separator.
type Separator int

const (
	// SeparatorUndecided marks a singleton list whose separator hasn't
	// been resolved by context yet.
	SeparatorUndecided Separator = iota
	SeparatorSpace
	SeparatorComma
)

// Type identifies which variant a Value holds.
type Type int

const (
	TypeNull Type = iota
	TypeBoolean
	TypeNumber
	TypeColor
	TypeString
	TypeList
	TypeMap
	TypeFunction
)

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBoolean:
		return "bool"
	case TypeNumber:
		return "number"
	case TypeColor:
		return "color"
	case TypeString:
		return "string"
	case TypeList:
		return "list"
	case TypeMap:
		return "map"
	case TypeFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Value is the tagged sum type every SassScript expression evaluates to.
// The interface carries no per-variant accessors; callers switch on
// Type() or type-assert to the concrete variant to reach its data.
type Value interface {
	fmt.Stringer
	Type() Type
	// Truthy implements the Sass truthiness rule: everything except
	// Boolean(false) and Null is truthy.
	Truthy() bool
	// Equal implements Sass structural equality.
	Equal(other Value) bool
}

// Null is the single falsy, invisible-in-output inhabitant of its type.
// It is stateless, so any number of Null{} values are interchangeable;
// sassgo never hoists a shared global instance.
type Null struct{}

func (Null) Type() Type        { return TypeNull }
func (Null) Truthy() bool      { return false }
func (Null) String() string    { return "" }
func (Null) Equal(o Value) bool {
	_, ok := o.(Null)
	return ok
}

// Boolean is a Sass true/false literal.
type Boolean bool

func (b Boolean) Type() Type   { return TypeBoolean }
func (b Boolean) Truthy() bool { return bool(b) }
func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (b Boolean) Equal(o Value) bool {
	ob, ok := o.(Boolean)
	return ok && b == ob
}

// IsFalsy is the Sass truthiness rule applied to an arbitrary Value:
// false and null are the only falsy values.
func IsFalsy(v Value) bool {
	return !v.Truthy()
}
