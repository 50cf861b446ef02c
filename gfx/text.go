package gfx

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Font is the bitmap font used for overlays and glyph rain.
var Font tinyfont.Fonter = &proggy.TinySZ8pt7b

// FontHeight is the line height of Font in pixels.
const FontHeight = 8

// TextWidth returns the advance width of s in Font.
func TextWidth(s string) int {
	_, w := tinyfont.LineWidth(Font, s)
	return int(w)
}

// Text draws s with its baseline at y.
func (c *Canvas) Text(x, y int, s string, col Color) {
	if c == nil || c.img == nil || col.A == 0 || s == "" {
		return
	}
	tinyfont.WriteLine(&canvasDisplayer{c: c, col: col}, Font, int16(x), int16(y), s, col.RGBA())
}

// canvasDisplayer adapts a Canvas to the tinygo display driver interface.
type canvasDisplayer struct {
	c   *Canvas
	col Color
}

var _ drivers.Displayer = (*canvasDisplayer)(nil)

func (d *canvasDisplayer) Size() (x, y int16) {
	w, h := d.c.Size()
	return int16(w), int16(h)
}

// SetPixel ignores the premultiplied glyph color and paints the straight-alpha
// color the caller asked for; tinyfont glyphs are single-color.
func (d *canvasDisplayer) SetPixel(x, y int16, _ color.RGBA) {
	d.c.SetPixel(int(x), int(y), d.col)
}

func (d *canvasDisplayer) Display() error { return nil }
