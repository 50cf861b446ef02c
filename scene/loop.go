package scene

import (
	"context"

	"backdrop/gfx"
)

// Layer binds an animator to the target it renders into.
type Layer struct {
	Anim   Animator
	Target gfx.Target
}

// Loop is the explicit frame scheduler: every Step advances and then renders each
// layer, in insertion order. It has no timing of its own; hosts call Step once per
// display refresh and tests call Run to produce a fixed number of frames.
type Loop struct {
	layers []Layer
	frames uint64

	// OnFrame, if set, runs after each Step with the number of completed frames.
	// A non-nil error stops Run.
	OnFrame func(frame uint64) error
}

// Add appends a layer. Nil animators are ignored.
func (l *Loop) Add(a Animator, t gfx.Target) {
	if a == nil {
		return
	}
	l.layers = append(l.layers, Layer{Anim: a, Target: t})
}

// Layers returns the registered layers.
func (l *Loop) Layers() []Layer { return l.layers }

// SetTarget rebinds layer i, e.g. after the host framebuffer was reallocated.
func (l *Loop) SetTarget(i int, t gfx.Target) {
	if i < 0 || i >= len(l.layers) {
		return
	}
	l.layers[i].Target = t
}

// Reset drops every layer.
func (l *Loop) Reset() { l.layers = l.layers[:0] }

// Frames returns the number of completed steps.
func (l *Loop) Frames() uint64 { return l.frames }

// Step produces one frame.
func (l *Loop) Step() error {
	for _, ly := range l.layers {
		ly.Anim.Advance()
		if ly.Target != nil {
			ly.Anim.Render(ly.Target)
		}
	}
	l.frames++
	if l.OnFrame != nil {
		return l.OnFrame(l.frames)
	}
	return nil
}

// Run steps until ctx is done or n frames were produced (n <= 0 means until ctx is
// done). It returns the number of frames produced by this call.
func (l *Loop) Run(ctx context.Context, n int) (int, error) {
	done := 0
	for n <= 0 || done < n {
		select {
		case <-ctx.Done():
			return done, ctx.Err()
		default:
		}
		if err := l.Step(); err != nil {
			return done + 1, err
		}
		done++
	}
	return done, nil
}
