package functions

import (
	"fmt"

	"github.com/titpetric/sassgo/value"
)

// addList registers length/nth/set-nth/index/join/append/zip/
// list-separator/is-bracketed. A non-list argument is treated as a
// one-element list throughout, via value.AsList.
func addList(reg Registry) {
	reg["length"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 1 {
			return nil, argErr("length", 1, len(pos))
		}
		if m, ok := pos[0].(value.Map); ok {
			return value.NewNumber(float64(m.Len())), nil
		}
		return value.NewNumber(float64(len(value.AsList(pos[0]).Items))), nil
	})

	reg["nth"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 2 {
			return nil, argErr("nth", 2, len(pos))
		}
		l := value.AsList(pos[0])
		n, err := requireNumber("nth", pos[1])
		if err != nil {
			return nil, err
		}
		idx, err := listIndex("nth", int(n.Val), len(l.Items))
		if err != nil {
			return nil, err
		}
		return l.Items[idx], nil
	})

	reg["set-nth"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 3 {
			return nil, argErr("set-nth", 3, len(pos))
		}
		l := value.AsList(pos[0])
		n, err := requireNumber("set-nth", pos[1])
		if err != nil {
			return nil, err
		}
		idx, err := listIndex("set-nth", int(n.Val), len(l.Items))
		if err != nil {
			return nil, err
		}
		items := append([]value.Value(nil), l.Items...)
		items[idx] = pos[2]
		return value.List{Items: items, Separator: l.Separator, Bracketed: l.Bracketed}, nil
	})

	reg["index"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 2 {
			return nil, argErr("index", 2, len(pos))
		}
		l := value.AsList(pos[0])
		for i, v := range l.Items {
			if v.Equal(pos[1]) {
				return value.NewNumber(float64(i + 1)), nil
			}
		}
		return value.Null{}, nil
	})

	reg["join"] = Fn(func(pos []value.Value, named map[string]value.Value) (value.Value, error) {
		if len(pos) < 1 || len(pos) > 2 {
			return nil, argErr("join", 2, len(pos))
		}
		l1 := value.AsList(pos[0])
		var l2 value.List
		if len(pos) == 2 {
			l2 = value.AsList(pos[1])
		}
		sep := joinSeparator(l1, l2)
		if v, ok := named["separator"]; ok {
			s, err := requireString("join", v)
			if err != nil {
				return nil, err
			}
			switch s.Text {
			case "comma":
				sep = value.SeparatorComma
			case "space":
				sep = value.SeparatorSpace
			}
		}
		bracketed := l1.Bracketed
		if v, ok := named["bracketed"]; ok {
			bracketed = v.Truthy()
		}
		items := append(append([]value.Value(nil), l1.Items...), l2.Items...)
		return value.List{Items: items, Separator: sep, Bracketed: bracketed}, nil
	})

	reg["append"] = Fn(func(pos []value.Value, named map[string]value.Value) (value.Value, error) {
		if len(pos) != 2 {
			return nil, argErr("append", 2, len(pos))
		}
		l := value.AsList(pos[0])
		sep := l.Separator
		if sep == value.SeparatorUndecided {
			sep = value.SeparatorSpace
		}
		if v, ok := named["separator"]; ok {
			s, err := requireString("append", v)
			if err != nil {
				return nil, err
			}
			if s.Text == "comma" {
				sep = value.SeparatorComma
			} else if s.Text == "space" {
				sep = value.SeparatorSpace
			}
		}
		items := append(append([]value.Value(nil), l.Items...), pos[1])
		return value.List{Items: items, Separator: sep, Bracketed: l.Bracketed}, nil
	})

	reg["zip"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) == 0 {
			return value.NewList(value.SeparatorComma), nil
		}
		lists := make([]value.List, len(pos))
		minLen := -1
		for i, v := range pos {
			lists[i] = value.AsList(v)
			if minLen == -1 || len(lists[i].Items) < minLen {
				minLen = len(lists[i].Items)
			}
		}
		out := make([]value.Value, minLen)
		for i := 0; i < minLen; i++ {
			row := make([]value.Value, len(lists))
			for j, l := range lists {
				row[j] = l.Items[i]
			}
			out[i] = value.List{Items: row, Separator: value.SeparatorSpace}
		}
		return value.List{Items: out, Separator: value.SeparatorComma}, nil
	})

	reg["list-separator"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 1 {
			return nil, argErr("list-separator", 1, len(pos))
		}
		l := value.AsList(pos[0])
		switch l.Separator {
		case value.SeparatorComma:
			return value.NewUnquoted("comma"), nil
		case value.SeparatorSpace:
			return value.NewUnquoted("space"), nil
		default:
			return value.NewUnquoted("space"), nil
		}
	})

	reg["is-bracketed"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 1 {
			return nil, argErr("is-bracketed", 1, len(pos))
		}
		return value.Boolean(value.AsList(pos[0]).Bracketed), nil
	})
}

func joinSeparator(l1, l2 value.List) value.Separator {
	if len(l1.Items) > 0 && l1.Separator != value.SeparatorUndecided {
		return l1.Separator
	}
	if len(l2.Items) > 0 && l2.Separator != value.SeparatorUndecided {
		return l2.Separator
	}
	return value.SeparatorSpace
}

// listIndex converts a 1-based Sass list index (negative counts from
// the end) into a valid 0-based Go slice index, erroring if out of
// range (unlike string indices, list indices do not clamp).
func listIndex(name string, n, length int) (int, error) {
	if n == 0 {
		return 0, fmt.Errorf("functions: %s() index 0 is out of bounds", name)
	}
	idx := n - 1
	if n < 0 {
		idx = length + n
	}
	if idx < 0 || idx >= length {
		return 0, fmt.Errorf("functions: %s() index %d is out of bounds for a list of length %d", name, n, length)
	}
	return idx, nil
}
