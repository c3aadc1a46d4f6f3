package value

// List is an ordered sequence of values with a separator, bracketed
// flag, and arglist flag. A one-element List has
// Separator == SeparatorUndecided until context resolves it.
type List struct {
	Items     []Value
	Separator Separator
	Bracketed bool
	// Arglist marks a list built from a "..." rest-argument position; it
	// may carry trailing keyword arguments.
	Arglist  bool
	Keywords map[string]Value
}

// NewList builds a list, defaulting the separator to Undecided for a
// singleton
func NewList(sep Separator, items ...Value) List {
	if len(items) == 1 {
		sep = SeparatorUndecided
	}
	return List{Items: items, Separator: sep}
}

func (l List) Type() Type   { return TypeList }
func (l List) Truthy() bool { return true }

func (l List) String() string {
	sep := ", "
	if l.Separator == SeparatorSpace || l.Separator == SeparatorUndecided {
		sep = " "
	}
	out := ""
	for i, v := range l.Items {
		if i > 0 {
			out += sep
		}
		out += v.String()
	}
	if l.Bracketed {
		return "[" + out + "]"
	}
	return out
}

// AsList treats any non-list value as a one-element list, per the
// "list functions treat a non-list argument as a one-element list" rule
// in 
func AsList(v Value) List {
	if l, ok := v.(List); ok {
		return l
	}
	return List{Items: []Value{v}, Separator: SeparatorUndecided}
}

func (l List) Equal(other Value) bool {
	ol, ok := other.(List)
	if !ok {
		return false
	}
	if l.Bracketed != ol.Bracketed || len(l.Items) != len(ol.Items) {
		return false
	}
	if !sameSeparator(l, ol) {
		return false
	}
	for i := range l.Items {
		if !l.Items[i].Equal(ol.Items[i]) {
			return false
		}
	}
	return true
}

func sameSeparator(a, b List) bool {
	resolve := func(l List) Separator {
		if l.Separator == SeparatorUndecided {
			return SeparatorSpace
		}
		return l.Separator
	}
	return resolve(a) == resolve(b)
}
