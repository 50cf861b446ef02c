// Package helix renders rotating double helixes with cross-links between strands.
package helix

import (
	"math/rand/v2"

	"backdrop/gfx"
	"backdrop/scene"

	"github.com/chewxy/math32"
)

const Name = "helix"

// Config holds the effect constants.
//
// Per-helix values grow with the helix index h: radius is Radius+h*RadiusStep,
// speed is Speed+h*SpeedStep and the strand A hue is HueBase+h*HueStep.
type Config struct {
	Helixes     int        `toml:"helixes" yaml:"helixes"`
	Segments    int        `toml:"segments" yaml:"segments"`
	Perspective gfx.Scalar `toml:"perspective" yaml:"perspective"`

	Radius     gfx.Scalar `toml:"radius" yaml:"radius"`
	RadiusStep gfx.Scalar `toml:"radius_step" yaml:"radius_step"`
	// Turns is the number of full rotations along a helix.
	Turns  gfx.Scalar `toml:"turns" yaml:"turns"`
	Height gfx.Scalar `toml:"height" yaml:"height"`

	Speed     gfx.Scalar `toml:"speed" yaml:"speed"`
	SpeedStep gfx.Scalar `toml:"speed_step" yaml:"speed_step"`

	// Bob is the amplitude of the vertical float; the float clock advances ClockStep per frame.
	Bob       gfx.Scalar `toml:"bob" yaml:"bob"`
	ClockStep gfx.Scalar `toml:"clock_step" yaml:"clock_step"`

	LinkEvery   int        `toml:"link_every" yaml:"link_every"`
	LinkWidth   gfx.Scalar `toml:"link_width" yaml:"link_width"`
	LinkAlpha   gfx.Scalar `toml:"link_alpha" yaml:"link_alpha"`
	StrandWidth gfx.Scalar `toml:"strand_width" yaml:"strand_width"`
	PointSize   gfx.Scalar `toml:"point_size" yaml:"point_size"`

	// GlowRadius is the pointer distance at which a helix starts to glow. At full glow
	// links gain GlowAlpha opacity and nucleotides gain GlowSize radius.
	GlowRadius gfx.Scalar `toml:"glow_radius" yaml:"glow_radius"`
	GlowAlpha  gfx.Scalar `toml:"glow_alpha" yaml:"glow_alpha"`
	GlowSize   gfx.Scalar `toml:"glow_size" yaml:"glow_size"`

	HueBase    float64 `toml:"hue_base" yaml:"hue_base"`
	HueStep    float64 `toml:"hue_step" yaml:"hue_step"`
	StrandHue  float64 `toml:"strand_hue" yaml:"strand_hue"`
	Saturation float64 `toml:"saturation" yaml:"saturation"`
	Lightness  float64 `toml:"lightness" yaml:"lightness"`

	Fade gfx.Scalar `toml:"fade" yaml:"fade"`
	Z    gfx.ZRange `toml:"z" yaml:"z"`
}

func DefaultConfig() Config {
	return Config{
		Helixes:     3,
		Segments:    100,
		Perspective: 800,
		Radius:      80,
		RadiusStep:  20,
		Turns:       4,
		Height:      600,
		Speed:       0.02,
		SpeedStep:   0.01,
		Bob:         50,
		ClockStep:   0.01,
		LinkEvery:   8,
		LinkWidth:   2,
		LinkAlpha:   0.3,
		StrandWidth: 4,
		PointSize:   3,
		GlowRadius:  200,
		GlowAlpha:   0.3,
		GlowSize:    2,
		HueBase:     120,
		HueStep:     60,
		StrandHue:   60,
		Saturation:  0.7,
		Lightness:   0.6,
		Fade:        0.05,
		Z:           gfx.ZRange{Min: -500, Max: 1000},
	}
}

// Segment is one rung of a helix: two strand points at opposite angles.
type Segment struct {
	Helix int
	Index int

	Angle gfx.Scalar
	Y     gfx.Scalar

	A, B gfx.Vec3
}

// Helix is the per-helix state shared by its segments. (X, Y) is the projection centre.
type Helix struct {
	X, Y   gfx.Scalar
	Radius gfx.Scalar
	Speed  gfx.Scalar
	Hue    float64
}

// Effect implements scene.Effect for helixes.
type Effect struct {
	cfg     Config
	helixes []Helix

	a, b []gfx.Projected
}

func New(cfg Config, w, h int, rng *rand.Rand) *scene.Scene[Segment] {
	return scene.New[Segment](Name, &Effect{cfg: cfg}, w, h, rng)
}

func (e *Effect) Config() Config { return e.cfg }

// Helixes returns the per-helix state.
func (e *Effect) Helixes() []Helix { return e.helixes }

func (e *Effect) Spawn(env *scene.Env) []Segment {
	c := e.cfg
	n := max(c.Helixes, 0)
	segs := max(c.Segments, 0)
	_, cy := env.Viewport.Center()

	e.helixes = make([]Helix, n)
	for i := range e.helixes {
		fi := gfx.Scalar(i)
		e.helixes[i] = Helix{
			X:      env.Viewport.W * (fi + 1) / gfx.Scalar(n+1),
			Y:      cy,
			Radius: c.Radius + fi*c.RadiusStep,
			Speed:  c.Speed + fi*c.SpeedStep,
			Hue:    c.HueBase + float64(i)*c.HueStep,
		}
	}

	out := make([]Segment, 0, n*segs)
	for hi := 0; hi < n; hi++ {
		for si := 0; si < segs; si++ {
			f := gfx.Scalar(si) / gfx.Scalar(segs)
			s := Segment{
				Helix: hi,
				Index: si,
				Angle: f * c.Turns * 2 * math32.Pi,
				Y:     f*c.Height - c.Height/2,
			}
			e.place(&s)
			out = append(out, s)
		}
	}
	return out
}

// place recomputes both strand points from the segment angle.
func (e *Effect) place(s *Segment) {
	r := e.helixes[s.Helix].Radius
	sa, ca := math32.Sincos(s.Angle)
	s.A = gfx.V3(ca*r, s.Y, sa*r)
	s.B = gfx.V3(-ca*r, s.Y, -sa*r)
}

func (e *Effect) Step(env *scene.Env, prims []Segment) {
	env.Time += e.cfg.ClockStep
	_, cy := env.Viewport.Center()
	for i := range e.helixes {
		e.helixes[i].Y = cy + math32.Sin(env.Time+gfx.Scalar(i))*e.cfg.Bob
	}
	for i := range prims {
		s := &prims[i]
		if s.Helix < 0 || s.Helix >= len(e.helixes) {
			continue
		}
		s.Angle += e.helixes[s.Helix].Speed
		e.place(s)
	}
}

// Glow is the pointer proximity of helix h in [0,1]: 1 at its centre, 0 at
// GlowRadius or beyond and while the pointer is inactive.
func (e *Effect) Glow(env *scene.Env, h int) gfx.Scalar {
	if !env.Pointer.Active || e.cfg.GlowRadius <= 0 {
		return 0
	}
	hx := e.helixes[h]
	d := gfx.Dist2(gfx.P(env.Pointer.X, env.Pointer.Y), gfx.P(hx.X, hx.Y))
	return max(0, 1-d/e.cfg.GlowRadius)
}

// Project maps a strand point of helix h onto the surface.
func (e *Effect) Project(h int, p gfx.Vec3) gfx.Projected {
	hx := e.helixes[h]
	p.Z = e.cfg.Z.Clamp(p.Z)
	return gfx.Project(p, hx.X, hx.Y, e.cfg.Perspective)
}

// Draw paints each helix in turn: cross-links first, then strand A and strand B,
// each as a polyline with a nucleotide at every segment.
func (e *Effect) Draw(dst gfx.Target, env *scene.Env, prims []Segment) {
	c := e.cfg
	dst.Fill(gfx.RGB(0, 0, 0).Fade(c.Fade))

	start := 0
	for start < len(prims) {
		h := prims[start].Helix
		end := start + 1
		for end < len(prims) && prims[end].Helix == h {
			end++
		}
		if h >= 0 && h < len(e.helixes) {
			e.drawHelix(dst, env, h, prims[start:end])
		}
		start = end
	}
}

func (e *Effect) drawHelix(dst gfx.Target, env *scene.Env, h int, segs []Segment) {
	c := e.cfg
	glow := e.Glow(env, h)

	e.a, e.b = e.a[:0], e.b[:0]
	for _, s := range segs {
		e.a = append(e.a, e.Project(h, s.A))
		e.b = append(e.b, e.Project(h, s.B))
	}

	if c.LinkEvery > 0 {
		link := gfx.RGB(255, 255, 255).Fade(c.LinkAlpha + c.GlowAlpha*glow)
		for i, s := range segs {
			if s.Index%c.LinkEvery != 0 {
				continue
			}
			dst.Line(e.a[i].X, e.a[i].Y, e.b[i].X, e.b[i].Y, c.LinkWidth, link)
		}
	}

	hue := e.helixes[h].Hue
	e.drawStrand(dst, e.a, gfx.HSLA(hue, c.Saturation, c.Lightness, 1).Color(), glow)
	e.drawStrand(dst, e.b, gfx.HSLA(hue+c.StrandHue, c.Saturation, c.Lightness, 1).Color(), glow)
}

func (e *Effect) drawStrand(dst gfx.Target, pts []gfx.Projected, col gfx.Color, glow gfx.Scalar) {
	c := e.cfg
	for i := 1; i < len(pts); i++ {
		dst.Line(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, c.StrandWidth, col)
	}
	for _, p := range pts {
		dst.FillCircle(p.X, p.Y, p.Scale*c.PointSize+glow*c.GlowSize, col)
	}
}
