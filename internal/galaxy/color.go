package galaxy

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is an opaque colour
type RGB struct {
	R, G, B uint8
}

var (
	White  = RGB{255, 255, 255}
	Cyan   = RGB{139, 233, 253}
	Purple = RGB{189, 147, 249}
	Pink   = RGB{255, 121, 198}
	Yellow = RGB{241, 250, 140}
	Green  = RGB{80, 250, 123}
	Black  = RGB{0, 0, 0}

	// Deep violet at the vertical middle of the sky
	Midnight = RGB{20, 10, 40}
)

// Mostly white, with the occasional coloured star
var starPalette = []RGB{White, White, White, White, Cyan, Purple, Pink, Yellow}

// Streaks and nebulae
var glowPalette = []RGB{Purple, Green, Cyan, Pink}

func (c RGB) toColorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{r, g, b}
}

// Over composites src over c with opacity a
func (c RGB) Over(src RGB, a float64) RGB {
	if a <= 0 {
		return c
	}
	if a >= 1 {
		return src
	}
	return fromColorful(c.toColorful().BlendRgb(src.toColorful(), a))
}

// Scale multiplies every channel by k, clamped to [0, 255]
func (c RGB) Scale(k float64) RGB {
	v := c.toColorful()
	return fromColorful(colorful.Color{R: v.R * k, G: v.G * k, B: v.B * k})
}

// lerp blends in CIE L*a*b* so gradients between hues don't pass through grey
func lerp(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return fromColorful(a.toColorful().BlendLab(b.toColorful(), t))
}

// Shade returns the sky colour at (x, y) before stars and streaks are drawn:
// the vertical background gradient, then the nebulae, then the core glow.
func (f *Field) Shade(x, y float64) RGB {
	c := f.background(y)

	for _, n := range f.nebulae {
		d := math.Hypot(x-n.X, y-n.Y)
		if d < n.Radius {
			c = c.Over(n.Color, n.Opacity*(1-d/n.Radius))
		}
	}

	r := 0.4 * math.Min(f.W, f.H)
	d := math.Hypot(x-f.W/2, y-f.H/2)
	if r > 0 && d < r {
		t := d / r
		if t < 0.5 {
			c = c.Over(lerp(Cyan, Purple, t*2), 0.1-0.1*t)
		} else {
			c = c.Over(Purple, 0.05*(1-t)*2)
		}
	}

	return c
}

func (f *Field) background(y float64) RGB {
	t := y / f.H
	if t < 0.5 {
		return lerp(Black, Midnight, t*2)
	}
	return lerp(Midnight, Black, (t-0.5)*2)
}
