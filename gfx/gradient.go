package gfx

import (
	"image"
	"image/color"
	"math"
)

// ColorStop is one color at an offset in [0,1] along a gradient.
type ColorStop struct {
	Offset Scalar
	Color  Color
}

// RadialGradient is a circular color transition around Center.
//
// Offsets are measured as distance/Radius; beyond the last stop the last color is
// repeated (pad extend). It implements image.Image so it can be used as a draw source.
type RadialGradient struct {
	Center Point
	Radius Scalar
	Stops  []ColorStop
}

// NewRadialGradient creates a gradient centred on (cx, cy).
func NewRadialGradient(cx, cy, r Scalar) *RadialGradient {
	return &RadialGradient{Center: Point{X: cx, Y: cy}, Radius: r}
}

// AddColorStop appends a stop. Stops must be added in increasing offset order.
func (g *RadialGradient) AddColorStop(offset Scalar, c Color) *RadialGradient {
	g.Stops = append(g.Stops, ColorStop{Offset: Clamp01(offset), Color: c})
	return g
}

// ColorAt returns the gradient color at a surface coordinate.
func (g *RadialGradient) ColorAt(x, y Scalar) Color {
	if len(g.Stops) == 0 {
		return Color{}
	}
	if g.Radius <= 0 {
		return g.Stops[len(g.Stops)-1].Color
	}
	t := Dist2(Point{X: x, Y: y}, g.Center) / g.Radius
	return colorAtOffset(g.Stops, t)
}

func colorAtOffset(stops []ColorStop, t Scalar) Color {
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		f := (t - a.Offset) / span
		return Color{
			R: lerpU8(a.Color.R, b.Color.R, f),
			G: lerpU8(a.Color.G, b.Color.G, f),
			B: lerpU8(a.Color.B, b.Color.B, f),
			A: lerpU8(a.Color.A, b.Color.A, f),
		}
	}
	return stops[len(stops)-1].Color
}

func lerpU8(a, b uint8, f Scalar) uint8 {
	return uint8(math.Round(float64(Lerp(Scalar(a), Scalar(b), f))))
}

func (g *RadialGradient) ColorModel() color.Model { return color.NRGBAModel }

func (g *RadialGradient) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

func (g *RadialGradient) At(x, y int) color.Color {
	return g.ColorAt(Scalar(x)+0.5, Scalar(y)+0.5).NRGBA()
}
