// Package matrix renders columns of falling glyphs.
package matrix

import (
	"math/rand/v2"

	"backdrop/gfx"
	"backdrop/scene"
)

const Name = "matrix"

// Config holds the effect constants.
type Config struct {
	// FontSize is the column width and row pitch in pixels.
	FontSize int     `toml:"font_size" yaml:"font_size"`
	Glyphs   string  `toml:"glyphs" yaml:"glyphs"`
	Fade     float64 `toml:"fade" yaml:"fade"`
	// ResetChance is the per-tick probability that a drop below the surface restarts.
	ResetChance float64   `toml:"reset_chance" yaml:"reset_chance"`
	Color       gfx.Color `toml:"-" yaml:"-"`
}

func DefaultConfig() Config {
	return Config{
		FontSize:    14,
		Glyphs:      "01ABCDEFGHIJKLMNOPQRSTUVWXYZ$+-*/=%<>#&@",
		Fade:        0.05,
		ResetChance: 0.025,
		Color:       gfx.RGB(0, 0xFF, 0),
	}
}

// Drop is the head of one column. Row counts font cells from the top.
type Drop struct {
	Column int
	Row    int
	Glyph  rune
}

// Effect implements scene.Effect for glyph rain.
type Effect struct {
	cfg    Config
	glyphs []rune
}

func New(cfg Config, w, h int, rng *rand.Rand) *scene.Scene[Drop] {
	e := &Effect{cfg: cfg, glyphs: []rune(cfg.Glyphs)}
	if len(e.glyphs) == 0 {
		e.glyphs = []rune{'0', '1'}
	}
	return scene.New[Drop](Name, e, w, h, rng)
}

func (e *Effect) Config() Config { return e.cfg }

// Columns returns the number of drops that fit across a surface w pixels wide.
func (e *Effect) Columns(w gfx.Scalar) int {
	if e.cfg.FontSize <= 0 {
		return 0
	}
	return int(w) / e.cfg.FontSize
}

// Spawn starts one drop per column at a random height.
func (e *Effect) Spawn(env *scene.Env) []Drop {
	out := make([]Drop, e.Columns(env.Viewport.W))
	rows := 0
	if e.cfg.FontSize > 0 {
		rows = int(env.Viewport.H) / e.cfg.FontSize
	}
	for i := range out {
		out[i] = Drop{Column: i, Row: env.Rand.IntN(rows + 1), Glyph: e.glyph(env)}
	}
	return out
}

func (e *Effect) glyph(env *scene.Env) rune {
	return e.glyphs[env.Rand.IntN(len(e.glyphs))]
}

// Step picks a fresh glyph for each drop, restarts some drops that fell past the
// bottom edge and moves every drop down one row.
func (e *Effect) Step(env *scene.Env, prims []Drop) {
	fs := e.cfg.FontSize
	for i := range prims {
		d := &prims[i]
		d.Glyph = e.glyph(env)
		if gfx.Scalar(d.Row*fs) > env.Viewport.H && env.Rand.Float64() < e.cfg.ResetChance {
			d.Row = 0
		}
		d.Row++
	}
}

func (e *Effect) Draw(dst gfx.Target, env *scene.Env, prims []Drop) {
	c := e.cfg
	dst.Fill(gfx.RGB(0, 0, 0).Fade(gfx.Scalar(c.Fade)))
	for _, d := range prims {
		dst.Text(d.Column*c.FontSize, d.Row*c.FontSize, string(d.Glyph), c.Color)
	}
}
