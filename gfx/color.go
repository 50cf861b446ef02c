package gfx

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGBA color in 8-bit channels. Alpha is straight (not premultiplied).
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// MulScalar scales the color channels by s in [0,1]. Alpha is kept.
func (c Color) MulScalar(s Scalar) Color {
	t := uint32(Clamp01(s) * 255)
	mul := func(ch uint8) uint8 {
		return uint8((uint32(ch) * t) / 255)
	}
	return Color{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}

func (c Color) WithAlpha(a uint8) Color { c.A = a; return c }

// Fade returns c with its alpha multiplied by f in [0,1].
func (c Color) Fade(f Scalar) Color {
	c.A = uint8(Scalar(c.A) * Clamp01(f))
	return c
}

// NRGBA converts c to the image/color straight-alpha form.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// RGBA returns c premultiplied, as tinyfont and image/draw expect.
func (c Color) RGBA() color.RGBA {
	a := uint32(c.A)
	return color.RGBA{
		R: uint8(uint32(c.R) * a / 255),
		G: uint8(uint32(c.G) * a / 255),
		B: uint8(uint32(c.B) * a / 255),
		A: c.A,
	}
}

// HSL is a color in hue/saturation/lightness with an explicit alpha.
//
// H is in degrees, S, L and A are in [0,1]. Effects keep their base color as HSL and
// derive lighter, darker or translucent variants per frame.
type HSL struct {
	H, S, L, A float64
}

// HSLA builds an HSL color.
func HSLA(h, s, l, a float64) HSL { return HSL{H: h, S: s, L: l, A: a} }

// Color converts to 8-bit RGBA.
func (c HSL) Color() Color {
	h := math.Mod(c.H, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsl(h, clampF64(c.S), clampF64(c.L)).Clamped().RGB255()
	return Color{R: r, G: g, B: b, A: uint8(math.Round(clampF64(c.A) * 255))}
}

// Lighten shifts lightness by d and clamps to [0,1].
func (c HSL) Lighten(d float64) HSL {
	c.L = clampF64(c.L + d)
	return c
}

// Saturate shifts saturation by d and clamps to [0,1].
func (c HSL) Saturate(d float64) HSL {
	c.S = clampF64(c.S + d)
	return c
}

// Rotate shifts the hue by deg degrees.
func (c HSL) Rotate(deg float64) HSL {
	c.H += deg
	return c
}

// WithAlpha replaces the alpha.
func (c HSL) WithAlpha(a float64) HSL {
	c.A = clampF64(a)
	return c
}

func clampF64(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
