package gfx

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/chewxy/math32"
	"golang.org/x/image/vector"
)

// circleKappa places cubic control points so four curves approximate a circle.
const circleKappa = 0.5522847498

// maxMaskSide bounds the coverage mask of one shape. Shapes that blow up past it
// (an object sitting almost on the eye plane) are skipped.
const maxMaskSide = 8192

// Canvas is a Target backed by an *image.RGBA.
//
// Create it once per surface and reuse it; the rasterizer and the coverage mask are
// recycled between shapes. Canvas is not safe for concurrent use.
type Canvas struct {
	img  *image.RGBA
	ras  vector.Rasterizer
	mask image.Alpha

	uniform image.Uniform
}

// NewCanvas wraps img. The image may be a sub-image of a larger framebuffer; all
// coordinates are relative to img.Bounds().Min.
func NewCanvas(img *image.RGBA) *Canvas {
	return &Canvas{img: img}
}

func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Size() (w, h int) {
	if c == nil || c.img == nil {
		return 0, 0
	}
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) Clear(col Color) {
	if c == nil || c.img == nil {
		return
	}
	c.uniform.C = col.NRGBA()
	draw.Draw(c.img, c.img.Bounds(), &c.uniform, image.Point{}, draw.Src)
}

func (c *Canvas) Fill(col Color) {
	if c == nil || c.img == nil || col.A == 0 {
		return
	}
	c.uniform.C = col.NRGBA()
	draw.Draw(c.img, c.img.Bounds(), &c.uniform, image.Point{}, draw.Over)
}

func (c *Canvas) SetPixel(x, y int, col Color) {
	if c == nil || c.img == nil || col.A == 0 {
		return
	}
	p := image.Pt(x, y).Add(c.img.Rect.Min)
	if !p.In(c.img.Rect) {
		return
	}
	if col.A == 0xFF {
		c.img.SetRGBA(p.X, p.Y, col.RGBA())
		return
	}
	c.img.SetRGBA(p.X, p.Y, blendOver(c.img.RGBAAt(p.X, p.Y), col.RGBA()))
}

func blendOver(dst, src color.RGBA) color.RGBA {
	ia := 255 - uint32(src.A)
	return color.RGBA{
		R: uint8(uint32(src.R) + uint32(dst.R)*ia/255),
		G: uint8(uint32(src.G) + uint32(dst.G)*ia/255),
		B: uint8(uint32(src.B) + uint32(dst.B)*ia/255),
		A: uint8(uint32(src.A) + uint32(dst.A)*ia/255),
	}
}

func (c *Canvas) FillCircle(x, y, r Scalar, col Color) {
	if r <= 0 || col.A == 0 {
		return
	}
	c.uniform.C = col.NRGBA()
	c.fillPath(x-r, y-r, x+r, y+r, func(z *vector.Rasterizer, ox, oy Scalar) {
		circlePath(z, x+ox, y+oy, r)
	}, &c.uniform)
}

func (c *Canvas) FillCircleGradient(x, y, r Scalar, g *RadialGradient) {
	if r <= 0 || g == nil || len(g.Stops) == 0 {
		return
	}
	c.fillPath(x-r, y-r, x+r, y+r, func(z *vector.Rasterizer, ox, oy Scalar) {
		circlePath(z, x+ox, y+oy, r)
	}, g)
}

func circlePath(z *vector.Rasterizer, cx, cy, r Scalar) {
	k := r * circleKappa
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
}

func (c *Canvas) Line(x0, y0, x1, y1, width Scalar, col Color) {
	if col.A == 0 {
		return
	}
	if width < 1 {
		width = 1
	}
	dx, dy := x1-x0, y1-y0
	l := math32.Hypot(dx, dy)
	if l == 0 {
		c.FillCircle(x0, y0, width/2, col)
		return
	}
	nx := -dy / l * width / 2
	ny := dx / l * width / 2
	quad := [4]Point{
		{X: x0 + nx, Y: y0 + ny},
		{X: x1 + nx, Y: y1 + ny},
		{X: x1 - nx, Y: y1 - ny},
		{X: x0 - nx, Y: y0 - ny},
	}
	c.FillPolygon(quad[:], col)
}

func (c *Canvas) FillPolygon(pts []Point, col Color) {
	if len(pts) < 3 || col.A == 0 {
		return
	}
	minX, minY, maxX, maxY := pts[0].X, pts[0].Y, pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		minX = math32.Min(minX, p.X)
		minY = math32.Min(minY, p.Y)
		maxX = math32.Max(maxX, p.X)
		maxY = math32.Max(maxY, p.Y)
	}
	c.uniform.C = col.NRGBA()
	c.fillPath(minX, minY, maxX, maxY, func(z *vector.Rasterizer, ox, oy Scalar) {
		z.MoveTo(pts[0].X+ox, pts[0].Y+oy)
		for _, p := range pts[1:] {
			z.LineTo(p.X+ox, p.Y+oy)
		}
		z.ClosePath()
	}, &c.uniform)
}

func (c *Canvas) StrokePolygon(pts []Point, width Scalar, col Color) {
	if len(pts) < 2 {
		return
	}
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		if len(pts) == 2 && i == 1 {
			break
		}
		c.Line(a.X, a.Y, b.X, b.Y, width, col)
	}
}

// fillPath rasterizes the path produced by build into a coverage mask sized to the
// shape's bounding box, then composites src through it. build receives the offset
// that moves surface coordinates into mask coordinates, so every path point lies
// inside the rasterizer.
func (c *Canvas) fillPath(minX, minY, maxX, maxY Scalar, build func(z *vector.Rasterizer, ox, oy Scalar), src image.Image) {
	w, h := c.Size()
	if w <= 0 || h <= 0 {
		return
	}
	if math32.IsNaN(minX+minY+maxX+maxY) || math32.IsInf(minX+minY+maxX+maxY, 0) {
		return
	}
	x0 := int(math32.Floor(minX)) - 1
	y0 := int(math32.Floor(minY)) - 1
	x1 := int(math32.Ceil(maxX)) + 1
	y1 := int(math32.Ceil(maxY)) + 1
	box := image.Rect(x0, y0, x1, y1)
	if !box.Overlaps(image.Rect(0, 0, w, h)) {
		return
	}
	bw, bh := box.Dx(), box.Dy()
	if bw <= 0 || bh <= 0 || bw > maxMaskSide || bh > maxMaskSide {
		return
	}

	c.ras.Reset(bw, bh)
	c.ras.DrawOp = draw.Src
	build(&c.ras, -Scalar(x0), -Scalar(y0))

	n := bw * bh
	if cap(c.mask.Pix) < n {
		c.mask.Pix = make([]uint8, n)
	}
	c.mask.Pix = c.mask.Pix[:n]
	c.mask.Stride = bw
	c.mask.Rect = image.Rect(0, 0, bw, bh)
	c.ras.Draw(&c.mask, c.mask.Rect, image.Opaque, image.Point{})

	dst := box.Add(c.img.Rect.Min)
	draw.DrawMask(c.img, dst, src, image.Pt(x0, y0), &c.mask, image.Point{}, draw.Over)
}
