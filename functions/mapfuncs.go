package functions

import (
	"github.com/titpetric/sassgo/value"
)

// addMap registers map-get/map-has-key/map-keys/map-values/map-merge/
// map-remove, , thin wrappers over value.Map's own
// insertion-ordered Get/HasKey/Keys/Values/Merge/Remove.
func addMap(reg Registry) {
	reg["map-get"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 2 {
			return nil, argErr("map-get", 2, len(pos))
		}
		m, err := requireMap("map-get", pos[0])
		if err != nil {
			return nil, err
		}
		if v, ok := m.Get(pos[1]); ok {
			return v, nil
		}
		return value.Null{}, nil
	})

	reg["map-has-key"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 2 {
			return nil, argErr("map-has-key", 2, len(pos))
		}
		m, err := requireMap("map-has-key", pos[0])
		if err != nil {
			return nil, err
		}
		return value.Boolean(m.HasKey(pos[1])), nil
	})

	reg["map-keys"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 1 {
			return nil, argErr("map-keys", 1, len(pos))
		}
		m, err := requireMap("map-keys", pos[0])
		if err != nil {
			return nil, err
		}
		return value.List{Items: m.Keys(), Separator: value.SeparatorComma}, nil
	})

	reg["map-values"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 1 {
			return nil, argErr("map-values", 1, len(pos))
		}
		m, err := requireMap("map-values", pos[0])
		if err != nil {
			return nil, err
		}
		return value.List{Items: m.Values(), Separator: value.SeparatorComma}, nil
	})

	reg["map-merge"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 2 {
			return nil, argErr("map-merge", 2, len(pos))
		}
		m1, err := requireMap("map-merge", pos[0])
		if err != nil {
			return nil, err
		}
		m2, err := requireMap("map-merge", pos[1])
		if err != nil {
			return nil, err
		}
		return m1.Merge(m2), nil
	})

	reg["map-remove"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) < 1 {
			return nil, argErr("map-remove", 2, len(pos))
		}
		m, err := requireMap("map-remove", pos[0])
		if err != nil {
			return nil, err
		}
		return m.Remove(pos[1:]...), nil
	})
}

func requireMap(name string, v value.Value) (value.Map, error) {
	m, ok := v.(value.Map)
	if !ok {
		return value.Map{}, argErrType(name, "map", v)
	}
	return m, nil
}
