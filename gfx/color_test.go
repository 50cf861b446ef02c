package gfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHSLPrimaries(t *testing.T) {
	assert.Equal(t, RGB(255, 0, 0), HSLA(0, 1, 0.5, 1).Color())
	assert.Equal(t, RGB(0, 255, 0), HSLA(120, 1, 0.5, 1).Color())
	assert.Equal(t, RGB(0, 0, 255), HSLA(240, 1, 0.5, 1).Color())
	assert.Equal(t, RGB(255, 0, 0), HSLA(360, 1, 0.5, 1).Color())
	assert.Equal(t, RGB(0, 0, 255), HSLA(-120, 1, 0.5, 1).Color())
}

func TestHSLAdjustClamps(t *testing.T) {
	c := HSLA(200, 0.7, 0.9, 0.5)
	assert.Equal(t, 1.0, c.Lighten(0.3).L)
	assert.Equal(t, 0.0, c.Lighten(-2).L)
	assert.Equal(t, 0.0, c.Saturate(-1).S)
	assert.Equal(t, 1.0, c.WithAlpha(3).A)
	assert.Equal(t, 230.0, c.Rotate(30).H)
	// The receiver is a value; adjustments never mutate the base color.
	assert.Equal(t, 0.9, c.L)
}

func TestHSLAlpha(t *testing.T) {
	assert.Equal(t, uint8(0), HSLA(0, 0, 1, 0).Color().A)
	assert.Equal(t, uint8(128), HSLA(0, 0, 1, 0.5).Color().A)
	assert.Equal(t, RGBA(255, 255, 255, 255), HSLA(0, 0, 1, 1).Color())
}

func TestColorPremultiply(t *testing.T) {
	c := RGBA(200, 100, 50, 128).RGBA()
	assert.Equal(t, uint8(100), c.R)
	assert.Equal(t, uint8(50), c.G)
	assert.Equal(t, uint8(25), c.B)
	assert.Equal(t, uint8(128), c.A)
}

func TestColorMulAndFade(t *testing.T) {
	assert.Equal(t, RGB(127, 127, 0), RGB(255, 255, 0).MulScalar(0.5))
	assert.Equal(t, RGB(0, 0, 0), RGB(255, 255, 0).MulScalar(-1))
	assert.Equal(t, RGBA(1, 2, 3, 127), RGB(1, 2, 3).Fade(0.5))
	assert.Equal(t, RGB(1, 2, 3), RGB(1, 2, 3).Fade(2))
}

func TestGradientStops(t *testing.T) {
	g := NewRadialGradient(0, 0, 10).
		AddColorStop(0, RGB(255, 255, 255)).
		AddColorStop(1, RGBA(0, 0, 0, 0))

	assert.Equal(t, RGB(255, 255, 255), g.ColorAt(0, 0))
	assert.Equal(t, RGBA(0, 0, 0, 0), g.ColorAt(10, 0))
	assert.Equal(t, RGBA(0, 0, 0, 0), g.ColorAt(50, 50))
	mid := g.ColorAt(5, 0)
	assert.InDelta(t, 128, int(mid.R), 1)
	assert.InDelta(t, 128, int(mid.A), 1)
}
