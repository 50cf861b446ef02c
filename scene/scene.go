// Package scene provides the generic animated scene shared by every effect.
//
// A Scene owns a viewport, a pointer cache, a clock, a random source and a slice of
// primitives; an Effect supplies the behaviour (spawn, step, draw). Scenes never
// schedule themselves: a Loop (or a host) calls Advance then Render once per frame.
package scene

import (
	"math/rand/v2"

	"backdrop/gfx"
)

// Viewport is the size of the drawing surface in pixels.
type Viewport struct {
	W, H gfx.Scalar
}

// Center returns the middle of the surface.
func (v Viewport) Center() (cx, cy gfx.Scalar) { return v.W / 2, v.H / 2 }

// Empty reports whether the surface has no drawable area.
func (v Viewport) Empty() bool { return v.W <= 0 || v.H <= 0 }

// Pointer is the last observed cursor position.
//
// Active stays false until the first pointer event; effects apply pointer attraction
// only while it is set.
type Pointer struct {
	X, Y   gfx.Scalar
	Active bool
}

// Env is the state an effect sees each frame.
type Env struct {
	Viewport Viewport
	Pointer  Pointer

	// Time is the effect clock. Effects advance it at their own rate in Step.
	Time  gfx.Scalar
	Frame uint64

	Rand *rand.Rand
}

// Uniform returns a random value in [lo, hi).
func (e *Env) Uniform(lo, hi gfx.Scalar) gfx.Scalar {
	return lo + gfx.Scalar(e.Rand.Float64())*(hi-lo)
}

// UniformF64 returns a random value in [lo, hi).
func (e *Env) UniformF64(lo, hi float64) float64 {
	return lo + e.Rand.Float64()*(hi-lo)
}

// Effect is the behaviour of one animation.
type Effect[P any] interface {
	// Spawn creates the initial primitive set for the current viewport.
	Spawn(env *Env) []P
	// Step advances every primitive by one frame.
	Step(env *Env, prims []P)
	// Draw paints the current state.
	Draw(dst gfx.Target, env *Env, prims []P)
}

// Resizer is implemented by effects that keep their primitives across a resize.
// Effects without it are re-spawned.
type Resizer[P any] interface {
	Resize(env *Env, prims []P) []P
}

// Animator is the type-erased view of a Scene used by loops and hosts.
type Animator interface {
	Name() string
	Resize(w, h int)
	PointerMove(x, y gfx.Scalar)
	Advance()
	Render(dst gfx.Target)
}

// Scene drives one effect over its own primitive set.
type Scene[P any] struct {
	name  string
	fx    Effect[P]
	env   Env
	prims []P
}

var _ Animator = (*Scene[struct{}])(nil)

// New creates a scene sized w×h and spawns its primitives.
func New[P any](name string, fx Effect[P], w, h int, rng *rand.Rand) *Scene[P] {
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}
	s := &Scene[P]{
		name: name,
		fx:   fx,
		env: Env{
			Viewport: Viewport{W: gfx.Scalar(max(w, 0)), H: gfx.Scalar(max(h, 0))},
			Rand:     rng,
		},
	}
	s.prims = fx.Spawn(&s.env)
	return s
}

func (s *Scene[P]) Name() string { return s.name }

// Effect returns the strategy driving the scene.
func (s *Scene[P]) Effect() Effect[P] { return s.fx }

// Env exposes the scene state. Mutating it between frames is allowed.
func (s *Scene[P]) Env() *Env { return &s.env }

// Primitives returns the live primitive slice.
func (s *Scene[P]) Primitives() []P { return s.prims }

// SetPrimitives replaces the primitive set.
func (s *Scene[P]) SetPrimitives(p []P) { s.prims = p }

// Resize updates the viewport. Effects implementing Resizer keep their primitives;
// the rest are re-spawned for the new bounds.
func (s *Scene[P]) Resize(w, h int) {
	vp := Viewport{W: gfx.Scalar(max(w, 0)), H: gfx.Scalar(max(h, 0))}
	if vp == s.env.Viewport {
		return
	}
	s.env.Viewport = vp
	if r, ok := s.fx.(Resizer[P]); ok {
		s.prims = r.Resize(&s.env, s.prims)
		return
	}
	s.prims = s.fx.Spawn(&s.env)
}

// PointerMove records a pointer position in the scene's coordinate space.
func (s *Scene[P]) PointerMove(x, y gfx.Scalar) {
	s.env.Pointer = Pointer{X: x, Y: y, Active: true}
}

// Advance steps the effect by one frame.
func (s *Scene[P]) Advance() {
	s.fx.Step(&s.env, s.prims)
	s.env.Frame++
}

// Render draws the current state onto dst.
func (s *Scene[P]) Render(dst gfx.Target) {
	if dst == nil {
		return
	}
	w, h := dst.Size()
	if w <= 0 || h <= 0 {
		return
	}
	s.fx.Draw(dst, &s.env, s.prims)
}
