package gfx

// Target is a drawing surface for one effect.
//
// Implementations clip out-of-bounds drawing and never fail; a zero-size target
// simply draws nothing.
type Target interface {
	Size() (w, h int)

	// Clear replaces every pixel with c.
	Clear(c Color)
	// Fill composites c over the whole surface; a translucent c produces motion trails.
	Fill(c Color)

	SetPixel(x, y int, c Color)
	FillCircle(x, y, r Scalar, c Color)
	FillCircleGradient(x, y, r Scalar, g *RadialGradient)
	Line(x0, y0, x1, y1, width Scalar, c Color)
	FillPolygon(pts []Point, c Color)
	StrokePolygon(pts []Point, width Scalar, c Color)

	// Text draws s with its baseline at y.
	Text(x, y int, s string, c Color)
}
