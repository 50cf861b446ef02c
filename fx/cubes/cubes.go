// Package cubes renders translucent cubes drifting and tumbling in perspective.
package cubes

import (
	"math/rand/v2"

	"backdrop/gfx"
	"backdrop/scene"

	"github.com/chewxy/math32"
)

// Name is the surface identifier of the effect.
const Name = "cubes"

// Config holds the effect constants.
type Config struct {
	Count       int        `toml:"count" yaml:"count"`
	Perspective gfx.Scalar `toml:"perspective" yaml:"perspective"`
	Margin      gfx.Scalar `toml:"margin" yaml:"margin"`

	SizeMin gfx.Scalar `toml:"size_min" yaml:"size_min"`
	SizeMax gfx.Scalar `toml:"size_max" yaml:"size_max"`

	// Speed is the maximum planar speed in px/frame; DepthSpeed the z speed.
	Speed      gfx.Scalar `toml:"speed" yaml:"speed"`
	DepthSpeed gfx.Scalar `toml:"depth_speed" yaml:"depth_speed"`
	// Spin is the maximum angular velocity per axis in rad/frame.
	Spin gfx.Scalar `toml:"spin" yaml:"spin"`

	SpawnZ gfx.ZRange `toml:"spawn_z" yaml:"spawn_z"`
	Z      gfx.ZRange `toml:"z" yaml:"z"`

	HueMin     float64 `toml:"hue_min" yaml:"hue_min"`
	HueMax     float64 `toml:"hue_max" yaml:"hue_max"`
	Saturation float64 `toml:"saturation" yaml:"saturation"`
	Lightness  float64 `toml:"lightness" yaml:"lightness"`
	FaceAlpha  float64 `toml:"face_alpha" yaml:"face_alpha"`

	Attraction gfx.Scalar `toml:"attraction" yaml:"attraction"`
	Background gfx.Color  `toml:"-" yaml:"-"`
}

// DefaultConfig returns the stock constants.
func DefaultConfig() Config {
	return Config{
		Count:       15,
		Perspective: 800,
		Margin:      100,
		SizeMin:     20,
		SizeMax:     80,
		Speed:       0.25,
		DepthSpeed:  0.25,
		Spin:        0.01,
		SpawnZ:      gfx.ZRange{Min: 0, Max: 1000},
		Z:           gfx.ZRange{Min: -500, Max: 1000},
		HueMin:      200,
		HueMax:      260,
		Saturation:  0.7,
		Lightness:   0.6,
		FaceAlpha:   0.35,
		Attraction:  0.0001,
		Background:  gfx.RGB(0x05, 0x08, 0x12),
	}
}

// Cube is one tumbling cube. Position is in surface pixels plus depth.
type Cube struct {
	Pos  gfx.Vec3
	Vel  gfx.Vec3
	Rot  gfx.Vec3
	Spin gfx.Vec3
	Size gfx.Scalar

	Color gfx.HSL
}

// Effect implements scene.Effect for cubes.
type Effect struct {
	cfg Config

	verts [8]gfx.Vec3
	pts   [4]gfx.Point
}

// faces lists the corners of each cube face, wound consistently.
var faces = [6][4]int{
	{0, 1, 2, 3}, // back
	{4, 5, 6, 7}, // front
	{0, 1, 5, 4}, // top
	{3, 2, 6, 7}, // bottom
	{0, 3, 7, 4}, // left
	{1, 2, 6, 5}, // right
}

// faceShade is the lightness offset applied to each face's fill.
var faceShade = [6]float64{-0.1, 0.1, 0.15, -0.15, 0.05, -0.05}

var corners = [8]gfx.Vec3{
	{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1},
	{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1},
}

// New creates the cube scene for a w×h surface.
func New(cfg Config, w, h int, rng *rand.Rand) *scene.Scene[Cube] {
	return scene.New[Cube](Name, &Effect{cfg: cfg}, w, h, rng)
}

func (e *Effect) Config() Config { return e.cfg }

func (e *Effect) Spawn(env *scene.Env) []Cube {
	c := e.cfg
	out := make([]Cube, max(c.Count, 0))
	for i := range out {
		pos := gfx.V3(env.Uniform(0, env.Viewport.W), env.Uniform(0, env.Viewport.H), env.Uniform(c.SpawnZ.Min, c.SpawnZ.Max))
		vel := gfx.V3(env.Uniform(-c.Speed, c.Speed), env.Uniform(-c.Speed, c.Speed), env.Uniform(-c.DepthSpeed, c.DepthSpeed))
		rot := gfx.V3(env.Uniform(0, 2*math32.Pi), env.Uniform(0, 2*math32.Pi), env.Uniform(0, 2*math32.Pi))
		spin := gfx.V3(env.Uniform(-c.Spin, c.Spin), env.Uniform(-c.Spin, c.Spin), env.Uniform(-c.Spin, c.Spin))
		out[i] = Cube{
			Pos:   pos,
			Vel:   vel,
			Rot:   rot,
			Spin:  spin,
			Size:  env.Uniform(c.SizeMin, c.SizeMax),
			Color: gfx.HSLA(env.UniformF64(c.HueMin, c.HueMax), c.Saturation, c.Lightness, 1),
		}
	}
	return out
}

// Resize keeps the cubes; the wrap bounds follow the new viewport on the next step.
func (e *Effect) Resize(env *scene.Env, prims []Cube) []Cube { return prims }

func (e *Effect) Step(env *scene.Env, prims []Cube) {
	c := e.cfg
	vp := env.Viewport
	for i := range prims {
		p := &prims[i]
		if env.Pointer.Active {
			p.Pos.X += (env.Pointer.X - p.Pos.X) * c.Attraction
			p.Pos.Y += (env.Pointer.Y - p.Pos.Y) * c.Attraction
		}
		p.Pos = p.Pos.Add(p.Vel)
		p.Rot = p.Rot.Add(p.Spin)

		p.Pos.X = gfx.Wrap(p.Pos.X, -c.Margin, vp.W+c.Margin)
		p.Pos.Y = gfx.Wrap(p.Pos.Y, -c.Margin, vp.H+c.Margin)
		p.Pos.Z = gfx.Wrap(p.Pos.Z, c.Z.Min, c.Z.Max)
	}
}

// Project returns the surface position of a point of the scene, in perspective
// toward the surface centre.
func (e *Effect) Project(env *scene.Env, p gfx.Vec3) gfx.Projected {
	cx, cy := env.Viewport.Center()
	p.Z = e.cfg.Z.Clamp(p.Z)
	return gfx.Project(gfx.V3(p.X-cx, p.Y-cy, p.Z), cx, cy, e.cfg.Perspective)
}

func (e *Effect) Draw(dst gfx.Target, env *scene.Env, prims []Cube) {
	dst.Clear(e.cfg.Background)
	for i := range prims {
		e.drawCube(dst, env, &prims[i])
	}
}

func (e *Effect) drawCube(dst gfx.Target, env *scene.Env, cb *Cube) {
	half := cb.Size / 2
	for i, v := range corners {
		r := gfx.RotateXYZ(v.Mul(half), cb.Rot.X, cb.Rot.Y, cb.Rot.Z)
		e.verts[i] = r.Add(cb.Pos)
	}

	edge := cb.Color.Lighten(0.15).WithAlpha(0.8).Color()
	for fi, f := range faces {
		for k, vi := range f {
			e.pts[k] = e.Project(env, e.verts[vi]).Point()
		}
		fill := cb.Color.Lighten(faceShade[fi]).WithAlpha(e.cfg.FaceAlpha).Color()
		dst.FillPolygon(e.pts[:], fill)
		dst.StrokePolygon(e.pts[:], 1, edge)
	}
}
