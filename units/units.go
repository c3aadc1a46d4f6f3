// Package units classifies CSS/Sass units into families and converts
// between units of the same family. It backs the Number variant of the
// value model (see package value) and the arithmetic operators of the
// SassScript evaluator.
package units

import "fmt"

// Family identifies a group of units that can be converted among
// themselves. Units from different families never convert.
type Family int

const (
	// FamilyNone marks a unitless measure.
	FamilyNone Family = iota
	FamilyLength
	FamilyAngle
	FamilyTime
	FamilyFrequency
	FamilyResolution
	// FamilyUnknown covers units sassgo doesn't recognize (custom idents
	// used as pass-through units, e.g. a user-defined "fr" in a context
	// that never converts it). Two unknown units only compare equal when
	// their names match exactly.
	FamilyUnknown
)

// family maps a canonical unit name to its family.
var family = map[string]Family{
	// lengths, relative to px as the base unit
	"px": FamilyLength, "in": FamilyLength, "pt": FamilyLength, "pc": FamilyLength,
	"mm": FamilyLength, "cm": FamilyLength, "q": FamilyLength,
	// angles, base deg
	"deg": FamilyAngle, "grad": FamilyAngle, "rad": FamilyAngle, "turn": FamilyAngle,
	// time, base s
	"s": FamilyTime, "ms": FamilyTime,
	// frequency, base hz
	"hz": FamilyFrequency, "khz": FamilyFrequency,
	// resolution, base dpi
	"dpi": FamilyResolution, "dpcm": FamilyResolution, "dppx": FamilyResolution,
}

// toBase[unit] = factor such that base_value = unit_value * factor.
var toBase = map[string]float64{
	"px": 1, "in": 96, "pt": 96.0 / 72.0, "pc": 16, "mm": 96.0 / 25.4, "cm": 96.0 / 2.54, "q": 96.0 / 101.6,
	"deg": 1, "grad": 0.9, "rad": 180 / 3.14159265358979323846, "turn": 360,
	"s": 1, "ms": 0.001,
	"hz": 1, "khz": 1000,
	"dpi": 1, "dpcm": 1 / 2.54, "dppx": 96,
}

// ClassOf returns the unit family for a canonical (lowercased) unit name.
// Unrecognized non-empty units are FamilyUnknown, not an error: Sass
// permits custom idents in unit position as long as they're never
// combined arithmetically with an incompatible one.
func ClassOf(unit string) Family {
	if unit == "" {
		return FamilyNone
	}
	if f, ok := family[unit]; ok {
		return f
	}
	return FamilyUnknown
}

// ErrIncompatibleUnits is raised when Convert is asked to cross unit
// families.
type ErrIncompatibleUnits struct {
	From, To string
}

func (e *ErrIncompatibleUnits) Error() string {
	return fmt.Sprintf("can't convert %q to %q: incompatible units", e.From, e.To)
}

// Convert converts a numeric value from one unit to another. Both units
// must belong to the same family (or be textually identical, for
// FamilyUnknown/FamilyNone units) or Convert fails with
// ErrIncompatibleUnits.
func Convert(value float64, from, to string) (float64, error) {
	if from == to {
		return value, nil
	}
	ff, ft := ClassOf(from), ClassOf(to)
	if ff != ft || ff == FamilyNone || ff == FamilyUnknown {
		if from == "" || to == "" {
			// unitless coerces freely, scalar passes through unchanged
			return value, nil
		}
		return 0, &ErrIncompatibleUnits{From: from, To: to}
	}
	fromFactor, ok1 := toBase[from]
	toFactor, ok2 := toBase[to]
	if !ok1 || !ok2 {
		return 0, &ErrIncompatibleUnits{From: from, To: to}
	}
	base := value * fromFactor
	return base / toFactor, nil
}

// Convertible reports whether two units can legally appear in an ADD/SUB/
// MOD/comparison operation together: same family, or either side unitless.
func Convertible(a, b string) bool {
	if a == "" || b == "" {
		return true
	}
	fa, fb := ClassOf(a), ClassOf(b)
	if fa == FamilyUnknown || fb == FamilyUnknown {
		return a == b
	}
	return fa == fb
}

// Epsilon is the tolerance used for numeric equality/ordering, per
// : "Equality uses an epsilon of 1e-12 on the scaled value."
const Epsilon = 1e-12

// Eq reports whether two scaled (already-converted) numbers are equal
// within Epsilon.
func Eq(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= Epsilon
}

// Cmp compares two scaled numbers within Epsilon: -1, 0, 1.
func Cmp(a, b float64) int {
	if Eq(a, b) {
		return 0
	}
	if a < b {
		return -1
	}
	return 1
}
