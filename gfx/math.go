package gfx

import "github.com/chewxy/math32"

// Scalar is the numeric type used by gfx math operations.
type Scalar = float32

// Vec3 is a 3D vector.
type Vec3 struct {
	X Scalar `toml:"x" yaml:"x"`
	Y Scalar `toml:"y" yaml:"y"`
	Z Scalar `toml:"z" yaml:"z"`
}

// Point is a 2D surface coordinate.
type Point struct {
	X, Y Scalar
}

func V3(x, y, z Scalar) Vec3 { return Vec3{X: x, Y: y, Z: z} }
func P(x, y Scalar) Point     { return Point{X: x, Y: y} }

func (v Vec3) Add(o Vec3) Vec3   { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3   { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Mul(s Scalar) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func Dot(a, b Vec3) Scalar { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func Len(v Vec3) Scalar {
	return math32.Sqrt(Dot(v, v))
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Vec3) Scalar {
	return Len(a.Sub(b))
}

// Dist2 returns the planar distance between two surface points.
func Dist2(a, b Point) Scalar {
	return math32.Hypot(a.X-b.X, a.Y-b.Y)
}

func Clamp(v, lo, hi Scalar) Scalar {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v Scalar) Scalar { return Clamp(v, 0, 1) }

// Projected is a perspective-divided point.
type Projected struct {
	X, Y  Scalar
	Scale Scalar
}

// Point returns the surface coordinate of p.
func (p Projected) Point() Point { return Point{X: p.X, Y: p.Y} }

// Project maps p onto the surface with a pinhole perspective divide around
// (cx, cy) at distance d from the eye.
//
// d+p.Z must stay away from zero; callers clamp z with their own range.
func Project(p Vec3, cx, cy, d Scalar) Projected {
	s := d / (d + p.Z)
	return Projected{
		X:     cx + p.X*s,
		Y:     cy + p.Y*s,
		Scale: s,
	}
}

// ZRange bounds the depth of projected points.
type ZRange struct {
	Min Scalar `toml:"min" yaml:"min"`
	Max Scalar `toml:"max" yaml:"max"`
}

// Clamp limits z to the range.
func (r ZRange) Clamp(z Scalar) Scalar { return Clamp(z, r.Min, r.Max) }

// RotateXYZ rotates p by rx about X, then ry about Y, then rz about Z.
//
// Each step feeds the next: the Y rotation uses the z produced by X, the Z
// rotation uses the x produced by Y and the y produced by X.
func RotateXYZ(p Vec3, rx, ry, rz Scalar) Vec3 {
	sx, cx := math32.Sincos(rx)
	y1 := p.Y*cx - p.Z*sx
	z1 := p.Y*sx + p.Z*cx

	sy, cy := math32.Sincos(ry)
	x2 := p.X*cy + z1*sy
	z2 := -p.X*sy + z1*cy

	sz, cz := math32.Sincos(rz)
	x3 := x2*cz - y1*sz
	y3 := x2*sz + y1*cz

	return Vec3{X: x3, Y: y3, Z: z2}
}

// Wrap teleports v to the opposite side once it leaves [lo, hi].
func Wrap(v, lo, hi Scalar) Scalar {
	if v > hi {
		return lo
	}
	if v < lo {
		return hi
	}
	return v
}

// Lerp interpolates between a and b.
func Lerp(a, b, t Scalar) Scalar { return a + (b-a)*t }
