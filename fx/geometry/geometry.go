// Package geometry renders wireframe polyhedra drifting and tumbling in perspective.
package geometry

import (
	"math/rand/v2"

	"backdrop/gfx"
	"backdrop/scene"

	"github.com/chewxy/math32"
)

const Name = "geometry"

// Config holds the effect constants.
type Config struct {
	Count       int        `toml:"count" yaml:"count"`
	Perspective gfx.Scalar `toml:"perspective" yaml:"perspective"`
	Margin      gfx.Scalar `toml:"margin" yaml:"margin"`

	SizeMin gfx.Scalar `toml:"size_min" yaml:"size_min"`
	SizeMax gfx.Scalar `toml:"size_max" yaml:"size_max"`

	Speed      gfx.Scalar `toml:"speed" yaml:"speed"`
	DepthSpeed gfx.Scalar `toml:"depth_speed" yaml:"depth_speed"`
	Spin       gfx.Scalar `toml:"spin" yaml:"spin"`

	SpawnZ gfx.ZRange `toml:"spawn_z" yaml:"spawn_z"`
	Z      gfx.ZRange `toml:"z" yaml:"z"`

	// Kinds lists the polyhedra shapes are drawn from.
	Kinds []string `toml:"kinds" yaml:"kinds"`

	HueMin     float64 `toml:"hue_min" yaml:"hue_min"`
	HueMax     float64 `toml:"hue_max" yaml:"hue_max"`
	Saturation float64 `toml:"saturation" yaml:"saturation"`
	Lightness  float64 `toml:"lightness" yaml:"lightness"`
	FaceAlpha  float64 `toml:"face_alpha" yaml:"face_alpha"`
	EdgeAlpha  float64 `toml:"edge_alpha" yaml:"edge_alpha"`

	Fade       gfx.Scalar `toml:"fade" yaml:"fade"`
	Attraction gfx.Scalar `toml:"attraction" yaml:"attraction"`
}

func DefaultConfig() Config {
	return Config{
		Count:       12,
		Perspective: 600,
		Margin:      100,
		SizeMin:     40,
		SizeMax:     120,
		Speed:       1,
		DepthSpeed:  1,
		Spin:        0.025,
		SpawnZ:      gfx.ZRange{Min: -250, Max: 250},
		Z:           gfx.ZRange{Min: -300, Max: 300},
		Kinds:       []string{"cube", "tetrahedron", "octahedron", "icosahedron"},
		HueMin:      0,
		HueMax:      360,
		Saturation:  0.7,
		Lightness:   0.6,
		FaceAlpha:   0.15,
		EdgeAlpha:   0.7,
		Fade:        0.1,
		Attraction:  0.0005,
	}
}

// Shape is one polyhedron. Rot holds the three Euler angles, Spin their
// per-frame increments.
type Shape struct {
	Kind Kind
	Pos  gfx.Vec3
	Vel  gfx.Vec3
	Rot  gfx.Vec3
	Spin gfx.Vec3
	Size gfx.Scalar

	Color gfx.HSL
}

// Effect implements scene.Effect for polyhedra.
type Effect struct {
	cfg   Config
	kinds []Kind

	pts   []gfx.Point
	verts []gfx.Vec3
}

// New creates the geometry scene. Unknown names in cfg.Kinds are ignored; an empty
// list falls back to cubes.
func New(cfg Config, w, h int, rng *rand.Rand) *scene.Scene[Shape] {
	return scene.New[Shape](Name, newEffect(cfg), w, h, rng)
}

func newEffect(cfg Config) *Effect {
	e := &Effect{cfg: cfg}
	for _, n := range cfg.Kinds {
		if k, err := ParseKind(n); err == nil {
			e.kinds = append(e.kinds, k)
		}
	}
	if len(e.kinds) == 0 {
		e.kinds = []Kind{KindCube}
	}
	return e
}

func (e *Effect) Config() Config { return e.cfg }

func (e *Effect) Spawn(env *scene.Env) []Shape {
	c := e.cfg
	out := make([]Shape, max(c.Count, 0))
	for i := range out {
		pos := gfx.V3(env.Uniform(0, env.Viewport.W), env.Uniform(0, env.Viewport.H), env.Uniform(c.SpawnZ.Min, c.SpawnZ.Max))
		vel := gfx.V3(env.Uniform(-c.Speed, c.Speed), env.Uniform(-c.Speed, c.Speed), env.Uniform(-c.DepthSpeed, c.DepthSpeed))
		rot := gfx.V3(env.Uniform(0, 2*math32.Pi), env.Uniform(0, 2*math32.Pi), env.Uniform(0, 2*math32.Pi))
		spin := gfx.V3(env.Uniform(-c.Spin, c.Spin), env.Uniform(-c.Spin, c.Spin), env.Uniform(-c.Spin, c.Spin))
		out[i] = Shape{
			Kind:  e.kinds[env.Rand.IntN(len(e.kinds))],
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

// Resize keeps the shapes; the wrap bounds follow the viewport.
func (e *Effect) Resize(env *scene.Env, prims []Shape) []Shape { return prims }

func (e *Effect) Step(env *scene.Env, prims []Shape) {
	c := e.cfg
	vp := env.Viewport
	for i := range prims {
		s := &prims[i]
		if env.Pointer.Active {
			s.Pos.X += (env.Pointer.X - s.Pos.X) * c.Attraction
			s.Pos.Y += (env.Pointer.Y - s.Pos.Y) * c.Attraction
		}
		s.Pos = s.Pos.Add(s.Vel)
		s.Rot = s.Rot.Add(s.Spin)

		s.Pos.X = gfx.Wrap(s.Pos.X, -c.Margin, vp.W+c.Margin)
		s.Pos.Y = gfx.Wrap(s.Pos.Y, -c.Margin, vp.H+c.Margin)
		s.Pos.Z = gfx.Wrap(s.Pos.Z, c.Z.Min, c.Z.Max)
	}
}

// Project maps a scene point onto the surface. Geometry projects about the surface
// origin, so a shape at depth 0 lands exactly on its (x, y).
func (e *Effect) Project(p gfx.Vec3) gfx.Projected {
	p.Z = e.cfg.Z.Clamp(p.Z)
	return gfx.Project(p, 0, 0, e.cfg.Perspective)
}

// ProjectCenter returns the surface position of a shape's centre.
func (e *Effect) ProjectCenter(s Shape) gfx.Projected { return e.Project(s.Pos) }

// Vertices returns the rotated, translated vertices of s.
func (e *Effect) Vertices(s Shape, dst []gfx.Vec3) []gfx.Vec3 {
	m := MeshOf(s.Kind)
	dst = dst[:0]
	half := s.Size / 2
	for _, v := range m.Vertices {
		r := gfx.RotateXYZ(v.Mul(half), s.Rot.X, s.Rot.Y, s.Rot.Z)
		dst = append(dst, r.Add(s.Pos))
	}
	return dst
}

func (e *Effect) Draw(dst gfx.Target, env *scene.Env, prims []Shape) {
	dst.Fill(gfx.RGB(0, 0, 0).Fade(e.cfg.Fade))
	for i := range prims {
		e.drawShape(dst, prims[i])
	}
}

// FaceColor returns the fill of face fi of s: each successive face is one
// shade step darker.
func (e *Effect) FaceColor(s Shape, fi int) gfx.HSL {
	return s.Color.Lighten(-MeshOf(s.Kind).Shade * float64(fi))
}

func (e *Effect) drawShape(dst gfx.Target, s Shape) {
	c := e.cfg
	e.verts = e.Vertices(s, e.verts)
	edge := s.Color.WithAlpha(c.EdgeAlpha).Color()
	m := MeshOf(s.Kind)
	for fi, f := range m.Faces {
		e.pts = e.pts[:0]
		for _, vi := range f {
			e.pts = append(e.pts, e.Project(e.verts[vi]).Point())
		}
		dst.FillPolygon(e.pts, e.FaceColor(s, fi).WithAlpha(c.FaceAlpha).Color())
		dst.StrokePolygon(e.pts, 1, edge)
	}
}
