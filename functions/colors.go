package functions

import (
	"fmt"
	"math"

	"github.com/titpetric/sassgo/value"
)

// addColor registers rgb/hsl construction, channel accessors, mix, and
// the adjust/scale/change/lighten-family color transforms. These build
// on value.Color, which already keeps the RGBA and HSLA views in sync,
// so these only need to read/write channels through it.
func addColor(reg Registry) {
	reg["rgb"] = Fn(rgbFn("rgb", false))
	reg["rgba"] = Fn(rgbFn("rgba", true))
	reg["hsl"] = Fn(hslFn("hsl", false))
	reg["hsla"] = Fn(hslFn("hsla", true))

	reg["red"] = channelGetter("red", func(c value.Color) float64 { r, _, _, _ := c.RGBA8(); return float64(r) })
	reg["green"] = channelGetter("green", func(c value.Color) float64 { _, g, _, _ := c.RGBA8(); return float64(g) })
	reg["blue"] = channelGetter("blue", func(c value.Color) float64 { _, _, b, _ := c.RGBA8(); return float64(b) })
	reg["alpha"] = channelGetter("alpha", func(c value.Color) float64 { _, _, _, a := c.RGBA8(); return a })
	reg["opacity"] = reg["alpha"]
	reg["hue"] = channelGetter("hue", func(c value.Color) float64 { h, _, _, _ := c.HSLA(); return h })
	reg["saturation"] = channelGetter("saturation", func(c value.Color) float64 { _, s, _, _ := c.HSLA(); return s * 100 })
	reg["lightness"] = channelGetter("lightness", func(c value.Color) float64 { _, _, l, _ := c.HSLA(); return l * 100 })

	reg["mix"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) < 2 {
			return nil, argErr("mix", 2, len(pos))
		}
		c1, err := requireColor("mix", pos[0])
		if err != nil {
			return nil, err
		}
		c2, err := requireColor("mix", pos[1])
		if err != nil {
			return nil, err
		}
		weight := 50.0
		if len(pos) > 2 {
			w, err := requireNumber("mix", pos[2])
			if err != nil {
				return nil, err
			}
			weight = w.Val
		}
		return mixColors(c1, c2, weight), nil
	})

	reg["lighten"] = lightnessAdjuster("lighten", func(l, amt float64) float64 { return l + amt })
	reg["darken"] = lightnessAdjuster("darken", func(l, amt float64) float64 { return l - amt })
	reg["saturate"] = saturationAdjuster("saturate", func(s, amt float64) float64 { return s + amt })
	reg["desaturate"] = saturationAdjuster("desaturate", func(s, amt float64) float64 { return s - amt })

	reg["grayscale"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 1 {
			return nil, argErr("grayscale", 1, len(pos))
		}
		c, err := requireColor("grayscale", pos[0])
		if err != nil {
			return nil, err
		}
		h, _, l, a := c.HSLA()
		return value.NewHSLA(h, 0, l, a), nil
	})

	reg["complement"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 1 {
			return nil, argErr("complement", 1, len(pos))
		}
		c, err := requireColor("complement", pos[0])
		if err != nil {
			return nil, err
		}
		h, s, l, a := c.HSLA()
		return value.NewHSLA(h+180, s, l, a), nil
	})

	reg["invert"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 1 {
			return nil, argErr("invert", 1, len(pos))
		}
		c, err := requireColor("invert", pos[0])
		if err != nil {
			return nil, err
		}
		return value.NewRGBA(255-c.R, 255-c.G, 255-c.B, c.A), nil
	})

	reg["opacify"] = alphaAdjuster("opacify", func(a, amt float64) float64 { return a + amt })
	reg["fade-in"] = reg["opacify"]
	reg["transparentize"] = alphaAdjuster("transparentize", func(a, amt float64) float64 { return a - amt })
	reg["fade-out"] = reg["transparentize"]

	reg["change-color"] = Fn(changeColor)
	reg["adjust-color"] = Fn(adjustColor)
	reg["scale-color"] = Fn(scaleColor)

	reg["ie-hex-str"] = Fn(func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 1 {
			return nil, argErr("ie-hex-str", 1, len(pos))
		}
		c, err := requireColor("ie-hex-str", pos[0])
		if err != nil {
			return nil, err
		}
		r, g, b, a := c.RGBA8()
		return value.NewUnquoted(fmt.Sprintf("#%02X%02X%02X%02X", uint8(math.Round(a*255)), r, g, b)), nil
	})
}

func rgbFn(name string, requireAlpha bool) Fn {
	return func(pos []value.Value, named map[string]value.Value) (value.Value, error) {
		want := 3
		if requireAlpha {
			want = 4
		}
		if len(pos) != want {
			return nil, argErr(name, want, len(pos))
		}
		r, err := requireNumber(name, pos[0])
		if err != nil {
			return nil, err
		}
		g, err := requireNumber(name, pos[1])
		if err != nil {
			return nil, err
		}
		b, err := requireNumber(name, pos[2])
		if err != nil {
			return nil, err
		}
		a := 1.0
		if requireAlpha {
			av, err := requireNumber(name, pos[3])
			if err != nil {
				return nil, err
			}
			a = av.Val
		}
		return value.NewRGBA(r.Val, g.Val, b.Val, a), nil
	}
}

func hslFn(name string, requireAlpha bool) Fn {
	return func(pos []value.Value, named map[string]value.Value) (value.Value, error) {
		want := 3
		if requireAlpha {
			want = 4
		}
		if len(pos) != want {
			return nil, argErr(name, want, len(pos))
		}
		h, err := requireNumber(name, pos[0])
		if err != nil {
			return nil, err
		}
		s, err := requireNumber(name, pos[1])
		if err != nil {
			return nil, err
		}
		l, err := requireNumber(name, pos[2])
		if err != nil {
			return nil, err
		}
		a := 1.0
		if requireAlpha {
			av, err := requireNumber(name, pos[3])
			if err != nil {
				return nil, err
			}
			a = av.Val
		}
		return value.NewHSLA(h.Val, s.Val/100, l.Val/100, a), nil
	}
}

func channelGetter(name string, read func(value.Color) float64) Fn {
	return func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 1 {
			return nil, argErr(name, 1, len(pos))
		}
		c, err := requireColor(name, pos[0])
		if err != nil {
			return nil, err
		}
		unit := ""
		if name == "saturation" || name == "lightness" {
			unit = "%"
		}
		return value.NewNumberUnit(read(c), unit), nil
	}
}

// mixColors implements the weighted average Sass uses for mix($c1, $c2,
// $weight), shifting the effective weight toward the more opaque color
// when the two alphas differ, the same rule dart-sass's color.mix uses.
func mixColors(c1, c2 value.Color, weight float64) value.Color {
	w := weight/100*2 - 1
	_, _, _, a1 := c1.RGBA8()
	_, _, _, a2 := c2.RGBA8()
	alphaDist := a1 - a2
	var w1 float64
	if w*alphaDist == -1 {
		w1 = w
	} else {
		w1 = (w + alphaDist) / (1 + w*alphaDist)
	}
	w1 = (w1 + 1) / 2
	w2 := 1 - w1
	r := c1.R*w1 + c2.R*w2
	g := c1.G*w1 + c2.G*w2
	b := c1.B*w1 + c2.B*w2
	a := a1*weight/100 + a2*(1-weight/100)
	return value.NewRGBA(r, g, b, a)
}

func lightnessAdjuster(name string, f func(l, amt float64) float64) Fn {
	return func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 2 {
			return nil, argErr(name, 2, len(pos))
		}
		c, err := requireColor(name, pos[0])
		if err != nil {
			return nil, err
		}
		amt, err := requireNumber(name, pos[1])
		if err != nil {
			return nil, err
		}
		h, s, l, a := c.HSLA()
		return value.NewHSLA(h, s, f(l*100, amt.Val)/100, a), nil
	}
}

func saturationAdjuster(name string, f func(s, amt float64) float64) Fn {
	return func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 2 {
			return nil, argErr(name, 2, len(pos))
		}
		c, err := requireColor(name, pos[0])
		if err != nil {
			return nil, err
		}
		amt, err := requireNumber(name, pos[1])
		if err != nil {
			return nil, err
		}
		h, s, l, a := c.HSLA()
		return value.NewHSLA(h, f(s*100, amt.Val)/100, l, a), nil
	}
}

func alphaAdjuster(name string, f func(a, amt float64) float64) Fn {
	return func(pos []value.Value, _ map[string]value.Value) (value.Value, error) {
		if len(pos) != 2 {
			return nil, argErr(name, 2, len(pos))
		}
		c, err := requireColor(name, pos[0])
		if err != nil {
			return nil, err
		}
		amt, err := requireNumber(name, pos[1])
		if err != nil {
			return nil, err
		}
		return c.WithAlpha(f(c.A, amt.Val/100)), nil
	}
}

func changeColor(pos []value.Value, named map[string]value.Value) (value.Value, error) {
	if len(pos) != 1 {
		return nil, argErr("change-color", 1, len(pos))
	}
	c, err := requireColor("change-color", pos[0])
	if err != nil {
		return nil, err
	}
	pick := func(key string, current float64) (float64, error) {
		v, ok := named[key]
		if !ok {
			return current, nil
		}
		n, err := requireNumber("change-color", v)
		if err != nil {
			return 0, err
		}
		return n.Val, nil
	}
	if usesRGBKeys(named) {
		rf, err := pick("red", c.R)
		if err != nil {
			return nil, err
		}
		gf, err := pick("green", c.G)
		if err != nil {
			return nil, err
		}
		bf, err := pick("blue", c.B)
		if err != nil {
			return nil, err
		}
		af, err := pick("alpha", c.A)
		if err != nil {
			return nil, err
		}
		return value.NewRGBA(rf, gf, bf, af), nil
	}
	h, s, l, a := c.HSLA()
	h, err = pick("hue", h)
	if err != nil {
		return nil, err
	}
	s100, err := pick("saturation", s*100)
	if err != nil {
		return nil, err
	}
	l100, err := pick("lightness", l*100)
	if err != nil {
		return nil, err
	}
	a, err = pick("alpha", a)
	if err != nil {
		return nil, err
	}
	return value.NewHSLA(h, s100/100, l100/100, a), nil
}

func adjustColor(pos []value.Value, named map[string]value.Value) (value.Value, error) {
	if len(pos) != 1 {
		return nil, argErr("adjust-color", 1, len(pos))
	}
	c, err := requireColor("adjust-color", pos[0])
	if err != nil {
		return nil, err
	}
	delta := func(key string) (float64, error) {
		v, ok := named[key]
		if !ok {
			return 0, nil
		}
		n, err := requireNumber("adjust-color", v)
		if err != nil {
			return 0, err
		}
		return n.Val, nil
	}
	if usesRGBKeys(named) {
		dr, err := delta("red")
		if err != nil {
			return nil, err
		}
		dg, err := delta("green")
		if err != nil {
			return nil, err
		}
		db, err := delta("blue")
		if err != nil {
			return nil, err
		}
		da, err := delta("alpha")
		if err != nil {
			return nil, err
		}
		return value.NewRGBA(c.R+dr, c.G+dg, c.B+db, c.A+da), nil
	}
	dh, err := delta("hue")
	if err != nil {
		return nil, err
	}
	ds, err := delta("saturation")
	if err != nil {
		return nil, err
	}
	dl, err := delta("lightness")
	if err != nil {
		return nil, err
	}
	da, err := delta("alpha")
	if err != nil {
		return nil, err
	}
	h, s, l, a := c.HSLA()
	return value.NewHSLA(h+dh, s+ds/100, l+dl/100, a+da), nil
}

func scaleColor(pos []value.Value, named map[string]value.Value) (value.Value, error) {
	if len(pos) != 1 {
		return nil, argErr("scale-color", 1, len(pos))
	}
	c, err := requireColor("scale-color", pos[0])
	if err != nil {
		return nil, err
	}
	scale := func(key string, current, max float64) (float64, error) {
		v, ok := named[key]
		if !ok {
			return current, nil
		}
		n, err := requireNumber("scale-color", v)
		if err != nil {
			return 0, err
		}
		pct := n.Val / 100
		if pct >= 0 {
			return current + (max-current)*pct, nil
		}
		return current + current*pct, nil
	}
	if usesRGBKeys(named) {
		r, err := scale("red", c.R, 255)
		if err != nil {
			return nil, err
		}
		g, err := scale("green", c.G, 255)
		if err != nil {
			return nil, err
		}
		b, err := scale("blue", c.B, 255)
		if err != nil {
			return nil, err
		}
		a, err := scale("alpha", c.A, 1)
		if err != nil {
			return nil, err
		}
		return value.NewRGBA(r, g, b, a), nil
	}
	h, s, l, a := c.HSLA()
	s100, err := scale("saturation", s*100, 100)
	if err != nil {
		return nil, err
	}
	l100, err := scale("lightness", l*100, 100)
	if err != nil {
		return nil, err
	}
	a2, err := scale("alpha", a, 1)
	if err != nil {
		return nil, err
	}
	return value.NewHSLA(h, s100/100, l100/100, a2), nil
}

func usesRGBKeys(named map[string]value.Value) bool {
	for _, k := range []string{"red", "green", "blue"} {
		if _, ok := named[k]; ok {
			return true
		}
	}
	return false
}
