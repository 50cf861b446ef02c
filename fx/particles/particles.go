// Package particles renders a flat field of drifting dots linked to their neighbours.
package particles

import (
	"math/rand/v2"

	"backdrop/gfx"
	"backdrop/scene"
)

const Name = "particles"

// Config holds the effect constants.
type Config struct {
	Count int        `toml:"count" yaml:"count"`
	Speed gfx.Scalar `toml:"speed" yaml:"speed"`

	SizeMin gfx.Scalar `toml:"size_min" yaml:"size_min"`
	SizeMax gfx.Scalar `toml:"size_max" yaml:"size_max"`

	OpacityMin float64 `toml:"opacity_min" yaml:"opacity_min"`
	OpacityMax float64 `toml:"opacity_max" yaml:"opacity_max"`

	HueMin     float64 `toml:"hue_min" yaml:"hue_min"`
	HueMax     float64 `toml:"hue_max" yaml:"hue_max"`
	Saturation float64 `toml:"saturation" yaml:"saturation"`
	Lightness  float64 `toml:"lightness" yaml:"lightness"`

	// LinkDistance is the exclusive distance under which two particles are linked.
	LinkDistance gfx.Scalar `toml:"link_distance" yaml:"link_distance"`
	LinkAlpha    gfx.Scalar `toml:"link_alpha" yaml:"link_alpha"`

	Attraction gfx.Scalar `toml:"attraction" yaml:"attraction"`
	Background gfx.Color  `toml:"-" yaml:"-"`
}

func DefaultConfig() Config {
	return Config{
		Count:        50,
		Speed:        0.5,
		SizeMin:      1,
		SizeMax:      4,
		OpacityMin:   0.2,
		OpacityMax:   0.7,
		HueMin:       220,
		HueMax:       260,
		Saturation:   0.7,
		Lightness:    0.6,
		LinkDistance: 100,
		LinkAlpha:    0.5,
		Attraction:   0.0001,
	}
}

// Particle is a dot in surface pixels.
type Particle struct {
	Pos   gfx.Point
	Vel   gfx.Point
	Size  gfx.Scalar
	Color gfx.HSL
}

// Effect implements scene.Effect for the particle field.
type Effect struct {
	cfg Config
}

func New(cfg Config, w, h int, rng *rand.Rand) *scene.Scene[Particle] {
	return scene.New[Particle](Name, &Effect{cfg: cfg}, w, h, rng)
}

func (e *Effect) Config() Config { return e.cfg }

func (e *Effect) Spawn(env *scene.Env) []Particle {
	c := e.cfg
	out := make([]Particle, max(c.Count, 0))
	for i := range out {
		out[i] = Particle{
			Pos:  gfx.P(env.Uniform(0, env.Viewport.W), env.Uniform(0, env.Viewport.H)),
			Vel:  gfx.P(env.Uniform(-0.5, 0.5)*c.Speed, env.Uniform(-0.5, 0.5)*c.Speed),
			Size: env.Uniform(c.SizeMin, c.SizeMax),
			Color: gfx.HSLA(
				env.UniformF64(c.HueMin, c.HueMax), c.Saturation, c.Lightness,
				env.UniformF64(c.OpacityMin, c.OpacityMax),
			),
		}
	}
	return out
}

// Resize keeps the particles; anything left outside is reflected back on the next step.
func (e *Effect) Resize(env *scene.Env, prims []Particle) []Particle { return prims }

func (e *Effect) Step(env *scene.Env, prims []Particle) {
	vp := env.Viewport
	for i := range prims {
		p := &prims[i]
		if env.Pointer.Active {
			p.Pos.X += (env.Pointer.X - p.Pos.X) * e.cfg.Attraction
			p.Pos.Y += (env.Pointer.Y - p.Pos.Y) * e.cfg.Attraction
		}
		p.Pos.X += p.Vel.X
		p.Pos.Y += p.Vel.Y
		p.Pos.X, p.Vel.X = reflect(p.Pos.X, p.Vel.X, vp.W)
		p.Pos.Y, p.Vel.Y = reflect(p.Pos.Y, p.Vel.Y, vp.H)
	}
}

// reflect puts v back onto [0, hi] and flips the velocity when it crossed an edge.
func reflect(v, vel, hi gfx.Scalar) (gfx.Scalar, gfx.Scalar) {
	switch {
	case v < 0:
		return 0, -vel
	case v > hi:
		return hi, -vel
	}
	return v, vel
}

func (e *Effect) Draw(dst gfx.Target, env *scene.Env, prims []Particle) {
	c := e.cfg
	dst.Clear(c.Background)

	if d := c.LinkDistance; d > 0 {
		for i := range prims {
			for j := i + 1; j < len(prims); j++ {
				a, b := prims[i].Pos, prims[j].Pos
				dist := gfx.Dist2(a, b)
				if dist >= d {
					continue
				}
				col := prims[i].Color.WithAlpha(float64((1 - dist/d) * c.LinkAlpha)).Color()
				dst.Line(a.X, a.Y, b.X, b.Y, 1, col)
			}
		}
	}

	for _, p := range prims {
		dst.FillCircle(p.Pos.X, p.Pos.Y, p.Size, p.Color.Color())
	}
}
