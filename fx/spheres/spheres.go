// Package spheres renders a network of orbiting spheres linked by proximity.
//
// Sphere coordinates are relative to the surface centre. Every tick the global clock
// advances, each sphere is placed on its orbit around its anchor, and the connection
// graph is rebuilt from scratch.
package spheres

import (
	"math/rand/v2"
	"slices"

	"backdrop/gfx"
	"backdrop/scene"

	"github.com/chewxy/math32"
)

const Name = "spheres"

// Config holds the effect constants.
type Config struct {
	Count       int        `toml:"count" yaml:"count"`
	Perspective gfx.Scalar `toml:"perspective" yaml:"perspective"`
	// Threshold is the exclusive connection distance.
	Threshold gfx.Scalar `toml:"threshold" yaml:"threshold"`

	RadiusMin gfx.Scalar `toml:"radius_min" yaml:"radius_min"`
	RadiusMax gfx.Scalar `toml:"radius_max" yaml:"radius_max"`
	Pulse     gfx.Scalar `toml:"pulse" yaml:"pulse"`

	// Spread is the anchor box, centred on the origin.
	Spread gfx.Vec3 `toml:"spread" yaml:"spread"`
	// Orbit holds the oscillation amplitude per axis; Rate the clock multiplier.
	// Sphere i orbits with phase i.
	Orbit gfx.Vec3 `toml:"orbit" yaml:"orbit"`
	Rate  gfx.Vec3 `toml:"rate" yaml:"rate"`

	ClockStep gfx.Scalar `toml:"clock_step" yaml:"clock_step"`
	Z         gfx.ZRange `toml:"z" yaml:"z"`

	HueMin     float64 `toml:"hue_min" yaml:"hue_min"`
	HueMax     float64 `toml:"hue_max" yaml:"hue_max"`
	Saturation float64 `toml:"saturation" yaml:"saturation"`
	Lightness  float64 `toml:"lightness" yaml:"lightness"`

	LinkAlpha  gfx.Scalar `toml:"link_alpha" yaml:"link_alpha"`
	Fade       gfx.Scalar `toml:"fade" yaml:"fade"`
	Attraction gfx.Scalar `toml:"attraction" yaml:"attraction"`
	// HoverRadius is the pointer distance in pixels that brightens a sphere.
	HoverRadius gfx.Scalar `toml:"hover_radius" yaml:"hover_radius"`
}

func DefaultConfig() Config {
	return Config{
		Count:       25,
		Perspective: 800,
		Threshold:   150,
		RadiusMin:   10,
		RadiusMax:   30,
		Pulse:       3,
		Spread:      gfx.V3(800, 600, 400),
		Orbit:       gfx.V3(50, 30, 40),
		Rate:        gfx.V3(1, 0.8, 0.6),
		ClockStep:   0.02,
		Z:           gfx.ZRange{Min: -500, Max: 1000},
		HueMin:      0,
		HueMax:      360,
		Saturation:  0.7,
		Lightness:   0.6,
		LinkAlpha:   0.5,
		Fade:        0.1,
		Attraction:  0.001,
		HoverRadius: 100,
	}
}

// Sphere is one node of the network.
type Sphere struct {
	Pos    gfx.Vec3
	Anchor gfx.Vec3

	// Phase offsets the orbit; PulsePhase offsets the radius pulse.
	Phase      gfx.Scalar
	PulsePhase gfx.Scalar
	Radius     gfx.Scalar
	Color      gfx.HSL

	// Links holds the indices of every sphere connected to this one in the current frame.
	Links []int
}

// Connection is an unordered pair of spheres closer than the threshold. A < B.
type Connection struct {
	A, B     int
	Distance gfx.Scalar
	Strength gfx.Scalar
}

// Effect implements scene.Effect for the sphere network.
type Effect struct {
	cfg   Config
	conns []Connection
	order []int
}

func New(cfg Config, w, h int, rng *rand.Rand) *scene.Scene[Sphere] {
	return scene.New[Sphere](Name, &Effect{cfg: cfg}, w, h, rng)
}

func (e *Effect) Config() Config { return e.cfg }

// Connections returns the connections found by the last Step.
func (e *Effect) Connections() []Connection { return e.conns }

func (e *Effect) Spawn(env *scene.Env) []Sphere {
	c := e.cfg
	out := make([]Sphere, max(c.Count, 0))
	for i := range out {
		anchor := gfx.V3(
			env.Uniform(-0.5, 0.5)*c.Spread.X,
			env.Uniform(-0.5, 0.5)*c.Spread.Y,
			env.Uniform(-0.5, 0.5)*c.Spread.Z,
		)
		out[i] = Sphere{
			Pos:    anchor,
			Anchor: anchor,
			Phase:      gfx.Scalar(i),
			PulsePhase: env.Uniform(0, 2*math32.Pi),
			Radius:     env.Uniform(c.RadiusMin, c.RadiusMax),
			Color:      gfx.HSLA(env.UniformF64(c.HueMin, c.HueMax), c.Saturation, c.Lightness, 1),
		}
	}
	e.conns = e.conns[:0]
	return out
}

// Orbit returns the position of s at clock t.
func (e *Effect) Orbit(s Sphere, t gfx.Scalar) gfx.Vec3 {
	o, r := e.cfg.Orbit, e.cfg.Rate
	return gfx.V3(
		s.Anchor.X+math32.Sin(t*r.X+s.Phase)*o.X,
		s.Anchor.Y+math32.Cos(t*r.Y+s.Phase)*o.Y,
		s.Anchor.Z+math32.Sin(t*r.Z+s.Phase)*o.Z,
	)
}

func (e *Effect) Step(env *scene.Env, prims []Sphere) {
	c := e.cfg
	env.Time += c.ClockStep

	var px, py gfx.Scalar
	if env.Pointer.Active {
		cx, cy := env.Viewport.Center()
		px, py = env.Pointer.X-cx, env.Pointer.Y-cy
	}
	for i := range prims {
		s := &prims[i]
		s.Pos = e.Orbit(*s, env.Time)
		if env.Pointer.Active {
			s.Pos.X += (px - s.Pos.X) * c.Attraction
			s.Pos.Y += (py - s.Pos.Y) * c.Attraction
		}
	}
	e.conns = Connect(prims, c.Threshold, e.conns[:0])
}

// Connect rebuilds the adjacency lists of spheres and appends one Connection per
// unordered pair strictly closer than threshold to dst.
func Connect(spheres []Sphere, threshold gfx.Scalar, dst []Connection) []Connection {
	for i := range spheres {
		spheres[i].Links = spheres[i].Links[:0]
	}
	if threshold <= 0 {
		return dst
	}
	for i := 0; i < len(spheres); i++ {
		for j := i + 1; j < len(spheres); j++ {
			d := gfx.Dist(spheres[i].Pos, spheres[j].Pos)
			if d >= threshold {
				continue
			}
			dst = append(dst, Connection{A: i, B: j, Distance: d, Strength: 1 - d/threshold})
			spheres[i].Links = append(spheres[i].Links, j)
			spheres[j].Links = append(spheres[j].Links, i)
		}
	}
	return dst
}

// Project maps a centre-relative point onto the surface.
func (e *Effect) Project(env *scene.Env, p gfx.Vec3) gfx.Projected {
	cx, cy := env.Viewport.Center()
	p.Z = e.cfg.Z.Clamp(p.Z)
	return gfx.Project(p, cx, cy, e.cfg.Perspective)
}

// DrawOrder returns sphere indices sorted back to front (descending z). The primitive
// slice itself is left untouched so connection indices stay valid.
func (e *Effect) DrawOrder(prims []Sphere) []int {
	e.order = e.order[:0]
	for i := range prims {
		e.order = append(e.order, i)
	}
	slices.SortStableFunc(e.order, func(a, b int) int {
		za, zb := prims[a].Pos.Z, prims[b].Pos.Z
		switch {
		case za > zb:
			return -1
		case za < zb:
			return 1
		}
		return 0
	})
	return e.order
}

var (
	linkColor = gfx.RGB(150, 100, 255)
	highlight = gfx.RGBA(255, 255, 255, 204)
)

func (e *Effect) Draw(dst gfx.Target, env *scene.Env, prims []Sphere) {
	c := e.cfg
	dst.Fill(gfx.RGB(0, 0, 0).Fade(c.Fade))

	for _, cn := range e.conns {
		if cn.A >= len(prims) || cn.B >= len(prims) {
			continue
		}
		a := e.Project(env, prims[cn.A].Pos)
		b := e.Project(env, prims[cn.B].Pos)
		alpha := cn.Strength * c.LinkAlpha * min(a.Scale, b.Scale)
		dst.Line(a.X, a.Y, b.X, b.Y, cn.Strength*3, linkColor.Fade(alpha))
	}

	for _, i := range e.DrawOrder(prims) {
		e.drawSphere(dst, env, prims[i])
	}
}

func (e *Effect) drawSphere(dst gfx.Target, env *scene.Env, s Sphere) {
	c := e.cfg
	p := e.Project(env, s.Pos)
	r := (s.Radius + math32.Sin(env.Time*2+s.PulsePhase)*c.Pulse) * p.Scale
	if r <= 0 {
		return
	}

	var hover gfx.Scalar
	if env.Pointer.Active && c.HoverRadius > 0 {
		d := gfx.Dist2(gfx.P(env.Pointer.X, env.Pointer.Y), p.Point())
		hover = max(0, 1-d/c.HoverRadius)
	}

	glowR := r + hover*20
	glow := gfx.NewRadialGradient(p.X, p.Y, glowR).
		AddColorStop(0, s.Color.Lighten(float64(hover)*0.2).Color()).
		AddColorStop(0.7, gfx.HSLA(s.Color.H, s.Color.S, 0.3, 0.3).Color()).
		AddColorStop(1, gfx.Color{})
	dst.FillCircleGradient(p.X, p.Y, glowR, glow)

	dst.FillCircle(p.X, p.Y, r, s.Color.Color())

	shine := gfx.NewRadialGradient(p.X-r*0.3, p.Y-r*0.3, r).
		AddColorStop(0, highlight).
		AddColorStop(1, gfx.Color{})
	dst.FillCircleGradient(p.X, p.Y, r, shine)
}
