package value

import "fmt"

// mapEntry is one insertion-ordered key/value pair.
type mapEntry struct {
	Key, Val Value
}

// Map is an insertion-ordered mapping value -> value; keys may be of
// any value type. Duplicate keys are rejected at construction
// (ErrDuplicateKey).
type Map struct {
	entries []mapEntry
}

// ErrDuplicateKey is the error kind names DuplicateKey.
type ErrDuplicateKey struct {
	Key Value
}

func (e *ErrDuplicateKey) Error() string {
	return fmt.Sprintf("duplicate key %s in map", e.Key.String())
}

// NewMap builds a Map from ordered key/value pairs, failing on the
// first duplicate key (by Sass structural equality).
func NewMap(keys, vals []Value) (Map, error) {
	m := Map{}
	for i := range keys {
		if err := m.set(keys[i], vals[i]); err != nil {
			return Map{}, err
		}
	}
	return m, nil
}

func (m *Map) set(k, v Value) error {
	for i, e := range m.entries {
		if e.Key.Equal(k) {
			return &ErrDuplicateKey{Key: k}
		}
		_ = i
	}
	m.entries = append(m.entries, mapEntry{Key: k, Val: v})
	return nil
}

// Merge returns a new map with each key of other inserted/overwritten,
// in other's order appended after m's own (matching map-merge semantics,
// ). Overwriting does not change the original key's
// position.
func (m Map) Merge(other Map) Map {
	out := Map{entries: append([]mapEntry(nil), m.entries...)}
	for _, e := range other.entries {
		replaced := false
		for i := range out.entries {
			if out.entries[i].Key.Equal(e.Key) {
				out.entries[i].Val = e.Val
				replaced = true
				break
			}
		}
		if !replaced {
			out.entries = append(out.entries, e)
		}
	}
	return out
}

// Remove returns a copy of m without the given keys.
func (m Map) Remove(keys ...Value) Map {
	out := Map{}
	for _, e := range m.entries {
		skip := false
		for _, k := range keys {
			if e.Key.Equal(k) {
				skip = true
				break
			}
		}
		if !skip {
			out.entries = append(out.entries, e)
		}
	}
	return out
}

// Get returns the value for key, if present.
func (m Map) Get(key Value) (Value, bool) {
	for _, e := range m.entries {
		if e.Key.Equal(key) {
			return e.Val, true
		}
	}
	return nil, false
}

// HasKey reports whether key is present.
func (m Map) HasKey(key Value) bool {
	_, ok := m.Get(key)
	return ok
}

// Keys returns keys in insertion order.
func (m Map) Keys() []Value {
	out := make([]Value, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Key
	}
	return out
}

// Values returns values in insertion (key) order.
func (m Map) Values() []Value {
	out := make([]Value, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Val
	}
	return out
}

// Len reports the number of entries.
func (m Map) Len() int { return len(m.entries) }

func (m Map) Type() Type   { return TypeMap }
func (m Map) Truthy() bool { return true }

func (m Map) String() string {
	out := "("
	for i, e := range m.entries {
		if i > 0 {
			out += ", "
		}
		out += e.Key.String() + ": " + e.Val.String()
	}
	return out + ")"
}

func (m Map) Equal(other Value) bool {
	om, ok := other.(Map)
	if !ok || len(m.entries) != len(om.entries) {
		return false
	}
	for _, e := range m.entries {
		v, ok := om.Get(e.Key)
		if !ok || !v.Equal(e.Val) {
			return false
		}
	}
	return true
}
