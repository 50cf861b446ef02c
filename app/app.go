// Package app lays out effect surfaces on the host framebuffer and drives them.
package app

import (
	"errors"
	"fmt"
	"image"
	"math/rand/v2"

	"backdrop/config"
	"backdrop/fx"
	"backdrop/gfx"
	"backdrop/hal"
	"backdrop/scene"
)

// ErrExit is returned by the step when the user asks to quit.
var ErrExit = hal.ErrExit

// Config wires a running app.
type Config struct {
	FX config.Config

	// Reload and ReloadErrors, if set, are drained once per step.
	Reload       <-chan config.Config
	ReloadErrors <-chan error
}

type surface struct {
	name   string
	index  int
	rect   image.Rectangle
	anim   scene.Animator
	canvas *gfx.Canvas
}

type system struct {
	h   hal.HAL
	log hal.Logger
	fb  hal.Framebuffer
	cfg Config

	surfaces []*surface
	loop     scene.Loop
	size     image.Point
	dirty    bool
	hud      bool
}

// New starts the app with the default configuration.
func New(h hal.HAL) (func() error, error) {
	return NewWithConfig(h, Config{FX: config.Default()})
}

// NewWithConfig builds one surface per known effect name in cfg.FX.App.Effects and
// returns the per-tick step. Unknown names are logged and skipped.
func NewWithConfig(h hal.HAL, cfg Config) (func() error, error) {
	s, err := newSystem(h, cfg)
	if err != nil {
		return nil, err
	}
	return s.guard(s.step), nil
}

func newSystem(h hal.HAL, cfg Config) (*system, error) {
	if h == nil || h.Display() == nil || h.Display().Framebuffer() == nil {
		return nil, errors.New("app: host has no framebuffer")
	}
	if err := cfg.FX.Validate(); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	s := &system{
		h:   h,
		log: h.Logger(),
		fb:  h.Display().Framebuffer(),
		cfg: cfg,
		hud: cfg.FX.App.HUD,
	}
	s.fb.Lock()
	s.build(cfg.FX.App.Effects)
	s.fb.Unlock()
	return s, nil
}

func (s *system) logf(format string, args ...any) {
	if s.log != nil {
		s.log.WriteLineString(fmt.Sprintf(format, args...))
	}
}

// build replaces every surface. The framebuffer lock is held.
func (s *system) build(names []string) {
	s.surfaces = s.surfaces[:0]
	s.loop.Reset()
	for _, name := range names {
		if !fx.Known(name) {
			s.logf("app: unknown effect %q skipped", name)
			continue
		}
		s.surfaces = append(s.surfaces, &surface{name: name, index: len(s.surfaces)})
	}
	s.dirty = true
	s.layout()
}

// layout tiles the surfaces in columns over the framebuffer and (re)creates their
// scenes. The framebuffer lock is held.
func (s *system) layout() {
	img := s.fb.Image()
	size := img.Rect.Size()
	if size == s.size && !s.dirty {
		return
	}
	s.size, s.dirty = size, false
	s.loop.Reset()

	n := len(s.surfaces)
	for i, sf := range s.surfaces {
		x0 := img.Rect.Min.X + size.X*i/n
		x1 := img.Rect.Min.X + size.X*(i+1)/n
		sf.rect = image.Rect(x0, img.Rect.Min.Y, x1, img.Rect.Max.Y)
		sf.canvas = gfx.NewCanvas(img.SubImage(sf.rect).(*image.RGBA))

		w, h := sf.rect.Dx(), sf.rect.Dy()
		if sf.anim == nil {
			sf.anim = s.newScene(sf.name, sf.index, w, h)
			s.logf("app: surface %d %s %dx%d", sf.index, sf.name, w, h)
		} else {
			sf.anim.Resize(w, h)
		}
		s.loop.Add(sf.anim, sf.canvas)
	}
	if n > 0 {
		s.logf("app: layout %dx%d, %d surface(s)", size.X, size.Y, n)
	}
}

func (s *system) newScene(name string, index, w, h int) scene.Animator {
	rng := rand.New(rand.NewPCG(s.cfg.FX.App.Seed, uint64(index)))
	a, err := fx.New(name, s.cfg.FX, w, h, rng)
	if err != nil {
		// Names are checked in build; a miss here means the registry changed.
		panic(err)
	}
	return a
}

func (s *system) step() error {
	if err := s.lockedFrame(); err != nil {
		return err
	}
	return s.fb.Present()
}

func (s *system) lockedFrame() error {
	s.fb.Lock()
	defer s.fb.Unlock()
	return s.frame()
}

// frame runs one tick with the framebuffer locked.
func (s *system) frame() error {
	s.layout()
	s.drainPointer()
	if err := s.drainKeys(); err != nil {
		return err
	}
	s.drainReload()

	if err := s.loop.Step(); err != nil {
		return err
	}
	if s.hud {
		s.drawHUD()
	}
	return nil
}

func (s *system) drainPointer() {
	in := s.h.Input()
	if in == nil || in.Pointer() == nil {
		return
	}
	ch := in.Pointer().Events()
	for {
		select {
		case ev := <-ch:
			s.dispatch(ev)
		default:
			return
		}
	}
}

// dispatch routes a pointer event by scope: surface scope delivers local
// coordinates to the surface under the pointer only; viewport scope delivers
// viewport coordinates to every surface.
func (s *system) dispatch(ev hal.PointerEvent) {
	pt := image.Pt(ev.X, ev.Y).Add(s.fb.Image().Rect.Min)
	for _, sf := range s.surfaces {
		if s.cfg.FX.App.Scope == config.ScopeViewport {
			sf.anim.PointerMove(gfx.Scalar(ev.X), gfx.Scalar(ev.Y))
			continue
		}
		if pt.In(sf.rect) {
			local := pt.Sub(sf.rect.Min)
			sf.anim.PointerMove(gfx.Scalar(local.X), gfx.Scalar(local.Y))
		}
	}
}

func (s *system) drainKeys() error {
	in := s.h.Input()
	if in == nil || in.Keyboard() == nil {
		return nil
	}
	ch := in.Keyboard().Events()
	for {
		select {
		case ev := <-ch:
			if !ev.Press {
				continue
			}
			switch {
			case ev.Code == hal.KeyEscape, ev.Rune == 'q', ev.Rune == 'Q':
				s.logf("app: exit requested")
				return ErrExit
			case ev.Code == hal.KeyTab:
				s.cycle()
			case ev.Code == hal.KeyF1, ev.Rune == 'h':
				s.hud = !s.hud
			}
		default:
			return nil
		}
	}
}

// cycle switches every surface to the next effect.
func (s *system) cycle() {
	names := make([]string, len(s.surfaces))
	for i, sf := range s.surfaces {
		names[i] = fx.Next(sf.name)
	}
	s.build(names)
}

func (s *system) drainReload() {
	for {
		select {
		case cfg := <-s.cfg.Reload:
			// Flags own the app table; only effect constants are reloaded.
			cfg.App = s.cfg.FX.App
			s.cfg.FX = cfg
			s.build(s.names())
			s.logf("app: config reloaded")
		case err := <-s.cfg.ReloadErrors:
			s.logf("app: config reload ignored: %v", err)
		default:
			return
		}
	}
}

var (
	hudFG = gfx.RGB(0xE0, 0xE0, 0xE0)
	hudBG = gfx.RGBA(0, 0, 0, 0xA0)
)

func (s *system) drawHUD() {
	var fps float64
	if t := s.h.Time(); t != nil {
		fps = t.FPS()
	}
	for _, sf := range s.surfaces {
		line := fmt.Sprintf("%s %.0f fps", sf.name, fps)
		w := gfx.Scalar(gfx.TextWidth(line) + 4)
		sf.canvas.FillPolygon([]gfx.Point{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: gfx.FontHeight + 4}, {X: 0, Y: gfx.FontHeight + 4}}, hudBG)
		sf.canvas.Text(2, gfx.FontHeight, line, hudFG)
	}
}

// names returns the effect of each live surface in layout order.
func (s *system) names() []string {
	out := make([]string, len(s.surfaces))
	for i, sf := range s.surfaces {
		out[i] = sf.name
	}
	return out
}
