// Package waves renders a tilted grid whose height is a sum of travelling sine waves.
package waves

import (
	"math/rand/v2"

	"backdrop/gfx"
	"backdrop/scene"

	"github.com/chewxy/math32"
)

const Name = "waves"

// Wave is one sine component: Amp·sin(Freq·key + Rate·t).
type Wave struct {
	Amp  gfx.Scalar `toml:"amp" yaml:"amp"`
	Freq gfx.Scalar `toml:"freq" yaml:"freq"`
	Rate gfx.Scalar `toml:"rate" yaml:"rate"`
}

// Config holds the effect constants.
type Config struct {
	Cols        int        `toml:"cols" yaml:"cols"`
	Rows        int        `toml:"rows" yaml:"rows"`
	Spacing     gfx.Scalar `toml:"spacing" yaml:"spacing"`
	Perspective gfx.Scalar `toml:"perspective" yaml:"perspective"`

	// Radial is keyed on the distance from the grid centre, X and Y on ox and oy.
	Radial Wave `toml:"radial" yaml:"radial"`
	X      Wave `toml:"x" yaml:"x"`
	Y      Wave `toml:"y" yaml:"y"`

	ClockStep gfx.Scalar `toml:"clock_step" yaml:"clock_step"`

	// Nodes closer than PointerRadius to the pointer rise by (PointerRadius-d)*PointerGain.
	PointerRadius gfx.Scalar `toml:"pointer_radius" yaml:"pointer_radius"`
	PointerGain   gfx.Scalar `toml:"pointer_gain" yaml:"pointer_gain"`

	// Tilt leans the grid back around the X axis, in radians. It only affects
	// projection; node heights are computed on the flat grid. Zero views the grid
	// face-on with crests receding from the viewer.
	Tilt gfx.Scalar `toml:"tilt" yaml:"tilt"`
	Z    gfx.ZRange `toml:"z" yaml:"z"`

	Fade      gfx.Scalar `toml:"fade" yaml:"fade"`
	LineAlpha gfx.Scalar `toml:"line_alpha" yaml:"line_alpha"`
	Color     gfx.Color  `toml:"-" yaml:"-"`
}

func DefaultConfig() Config {
	return Config{
		Cols:          50,
		Rows:          30,
		Spacing:       20,
		Perspective:   400,
		Radial:        Wave{Amp: 50, Freq: 0.01, Rate: 1},
		X:             Wave{Amp: 30, Freq: 0.01, Rate: 1.5},
		Y:             Wave{Amp: 20, Freq: 0.01, Rate: 0.8},
		ClockStep:     0.02,
		PointerRadius: 100,
		PointerGain:   2,
		Tilt:          0,
		Z:             gfx.ZRange{Min: -300, Max: 1000},
		Fade:          0.1,
		LineAlpha:     0.3,
		Color:         gfx.RGB(100, 150, 255),
	}
}

// Node is one grid vertex. OX and OY are fixed, relative to the surface centre.
type Node struct {
	Col, Row int
	OX, OY   gfx.Scalar
	Z        gfx.Scalar
}

// Effect implements scene.Effect for the wave grid.
type Effect struct {
	cfg  Config
	proj []gfx.Projected
}

func New(cfg Config, w, h int, rng *rand.Rand) *scene.Scene[Node] {
	return scene.New[Node](Name, &Effect{cfg: cfg}, w, h, rng)
}

func (e *Effect) Config() Config { return e.cfg }

// Spawn lays the grid out column by column, centred on the origin.
func (e *Effect) Spawn(env *scene.Env) []Node {
	c := e.cfg
	cols, rows := max(c.Cols, 0), max(c.Rows, 0)
	w := gfx.Scalar(cols) * c.Spacing / 2
	h := gfx.Scalar(rows) * c.Spacing / 2

	out := make([]Node, 0, cols*rows)
	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			out = append(out, Node{
				Col: i,
				Row: j,
				OX:  gfx.Scalar(i)*c.Spacing - w,
				OY:  gfx.Scalar(j)*c.Spacing - h,
			})
		}
	}
	return out
}

// Height is the wave surface at planar position (ox, oy) and clock t.
func Height(ox, oy, t gfx.Scalar, c Config) gfx.Scalar {
	r := math32.Hypot(ox, oy)
	return c.Radial.Amp*math32.Sin(c.Radial.Freq*r+c.Radial.Rate*t) +
		c.X.Amp*math32.Sin(c.X.Freq*ox+c.X.Rate*t) +
		c.Y.Amp*math32.Sin(c.Y.Freq*oy+c.Y.Rate*t)
}

// Boost is the extra height at distance d from the pointer.
func (e *Effect) Boost(d gfx.Scalar) gfx.Scalar {
	r := e.cfg.PointerRadius
	if r <= 0 || d >= r {
		return 0
	}
	return (r - d) * e.cfg.PointerGain
}

// Step evaluates every node at the current clock, then advances the clock.
func (e *Effect) Step(env *scene.Env, prims []Node) {
	cx, cy := env.Viewport.Center()
	px, py := env.Pointer.X-cx, env.Pointer.Y-cy
	for i := range prims {
		n := &prims[i]
		n.Z = Height(n.OX, n.OY, env.Time, e.cfg)
		if env.Pointer.Active {
			n.Z += e.Boost(gfx.Dist2(gfx.P(n.OX, n.OY), gfx.P(px, py)))
		}
	}
	env.Time += e.cfg.ClockStep
}

// Project maps a node onto the surface through the grid tilt.
func (e *Effect) Project(env *scene.Env, n Node) gfx.Projected {
	cx, cy := env.Viewport.Center()
	p := gfx.RotateXYZ(gfx.V3(n.OX, n.OY, n.Z), -e.cfg.Tilt, 0, 0)
	p.Z = e.cfg.Z.Clamp(p.Z)
	return gfx.Project(p, cx, cy, e.cfg.Perspective)
}

func (e *Effect) Draw(dst gfx.Target, env *scene.Env, prims []Node) {
	c := e.cfg
	dst.Fill(gfx.RGB(0, 0, 0).Fade(c.Fade))

	e.proj = e.proj[:0]
	for _, n := range prims {
		e.proj = append(e.proj, e.Project(env, n))
	}

	line := c.Color.Fade(c.LineAlpha)
	rows := max(c.Rows, 0)
	for i, n := range prims {
		a := e.proj[i]
		if n.Col+1 < c.Cols && i+rows < len(prims) {
			b := e.proj[i+rows]
			dst.Line(a.X, a.Y, b.X, b.Y, 1, line)
		}
		if n.Row+1 < rows && i+1 < len(prims) {
			b := e.proj[i+1]
			dst.Line(a.X, a.Y, b.X, b.Y, 1, line)
		}
	}

	for i, n := range prims {
		p := e.proj[i]
		intensity := gfx.Clamp01((n.Z + 100) / 200)
		dst.FillCircle(p.X, p.Y, p.Scale*2, c.Color.Fade(intensity*0.8))
	}
}
