package functions

import (
	"strings"
	"unicode/utf8"

	"github.com/titpetric/sassgo/value"
)

// addString registers unquote/quote/str-length/str-insert/str-slice/
// str-index/to-upper-case/to-lower-case. These operate on Unicode
// scalar values (1-based, negative indices counting from the end), not
// bytes, so they're built on unicode/utf8 rather than byte slicing.
func addString(reg Registry) {
	reg["unquote"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 1 {
			return nil, argErr("unquote", 1, len(pos))
		}
		s, err := requireString("unquote", pos[0])
		if err != nil {
			return nil, err
		}
		return value.NewUnquoted(s.Text), nil
	})

	reg["quote"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 1 {
			return nil, argErr("quote", 1, len(pos))
		}
		s, err := requireString("quote", pos[0])
		if err != nil {
			return nil, err
		}
		return value.NewQuoted(s.Text, value.QuoteDouble), nil
	})

	reg["str-length"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 1 {
			return nil, argErr("str-length", 1, len(pos))
		}
		s, err := requireString("str-length", pos[0])
		if err != nil {
			return nil, err
		}
		return value.NewNumber(float64(utf8.RuneCountInString(s.Text))), nil
	})

	reg["to-upper-case"] = caseFn("to-upper-case", strings.ToUpper)
	reg["to-lower-case"] = caseFn("to-lower-case", strings.ToLower)

	reg["str-insert"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 3 {
			return nil, argErr("str-insert", 3, len(pos))
		}
		s, err := requireString("str-insert", pos[0])
		if err != nil {
			return nil, err
		}
		ins, err := requireString("str-insert", pos[1])
		if err != nil {
			return nil, err
		}
		at, err := requireNumber("str-insert", pos[2])
		if err != nil {
			return nil, err
		}
		runes := []rune(s.Text)
		idx := sassIndexToRuneOffset(int(at.Val), len(runes), true)
		out := string(runes[:idx]) + ins.Text + string(runes[idx:])
		return value.Str{Text: out, Quoted: s.Quoted, Quote: s.Quote}, nil
	})

	reg["str-slice"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) < 2 || len(pos) > 3 {
			return nil, argErr("str-slice", 2, len(pos))
		}
		s, err := requireString("str-slice", pos[0])
		if err != nil {
			return nil, err
		}
		start, err := requireNumber("str-slice", pos[1])
		if err != nil {
			return nil, err
		}
		runes := []rune(s.Text)
		end := float64(len(runes))
		if len(pos) == 3 {
			en, err := requireNumber("str-slice", pos[2])
			if err != nil {
				return nil, err
			}
			end = en.Val
		}
		startIdx := sassIndexToRuneOffset(int(start.Val), len(runes), true)
		endIdx := sassIndexToRuneOffset(int(end), len(runes), false)
		if endIdx < startIdx {
			return value.Str{Text: "", Quoted: s.Quoted, Quote: s.Quote}, nil
		}
		return value.Str{Text: string(runes[startIdx:endIdx]), Quoted: s.Quoted, Quote: s.Quote}, nil
	})

	reg["str-index"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 2 {
			return nil, argErr("str-index", 2, len(pos))
		}
		s, err := requireString("str-index", pos[0])
		if err != nil {
			return nil, err
		}
		sub, err := requireString("str-index", pos[1])
		if err != nil {
			return nil, err
		}
		byteIdx := strings.Index(s.Text, sub.Text)
		if byteIdx < 0 {
			return value.Null{}, nil
		}
		return value.NewNumber(float64(utf8.RuneCountInString(s.Text[:byteIdx]) + 1)), nil
	})
}

func caseFn(name string, f func(string) string) Fn {
	return func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 1 {
			return nil, argErr(name, 1, len(pos))
		}
		s, err := requireString(name, pos[0])
		if err != nil {
			return nil, err
		}
		return value.Str{Text: f(s.Text), Quoted: s.Quoted, Quote: s.Quote}, nil
	}
}

// sassIndexToRuneOffset converts a 1-based Sass string index (negative
// counts from the end) into a 0-based rune offset into a string of
// length n runes, clamped into [0, n] (out-of-range insert/slice bounds
// clamp to the nearest end rather than erroring).
func sassIndexToRuneOffset(idx, n int, isStart bool) int {
	var off int
	switch {
	case idx > 0:
		off = idx - 1
	case idx < 0:
		off = n + idx
		if !isStart {
			off++
		}
	default:
		off = 0
	}
	if off < 0 {
		off = 0
	}
	if off > n {
		off = n
	}
	return off
}
