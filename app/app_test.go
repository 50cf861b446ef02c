package app

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"backdrop/config"
	"backdrop/fx/cubes"
	"backdrop/fx/spheres"
	"backdrop/gfx"
	"backdrop/hal"
	"backdrop/scene"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFB struct {
	sync.Mutex
	img      *image.RGBA
	presents int
}

func (f *fakeFB) Width() int         { return f.img.Rect.Dx() }
func (f *fakeFB) Height() int        { return f.img.Rect.Dy() }
func (f *fakeFB) Image() *image.RGBA { return f.img }
func (f *fakeFB) ClearRGB(r, g, b uint8) {
	gfx.NewCanvas(f.img).Clear(gfx.RGB(r, g, b))
}
func (f *fakeFB) Present() error {
	f.Lock()
	f.presents++
	f.Unlock()
	return nil
}

type fakeLog struct {
	mu    sync.Mutex
	lines []string
}

func (l *fakeLog) WriteLineString(s string) {
	l.mu.Lock()
	l.lines = append(l.lines, s)
	l.mu.Unlock()
}
func (l *fakeLog) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

func (l *fakeLog) has(sub string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.lines {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

type fakeHAL struct {
	fb   *fakeFB
	log  *fakeLog
	keys chan hal.KeyEvent
	ptr  chan hal.PointerEvent
}

func newFakeHAL(w, h int) *fakeHAL {
	return &fakeHAL{
		fb:   &fakeFB{img: image.NewRGBA(image.Rect(0, 0, w, h))},
		log:  &fakeLog{},
		keys: make(chan hal.KeyEvent, 8),
		ptr:  make(chan hal.PointerEvent, 8),
	}
}

func (h *fakeHAL) Logger() hal.Logger   { return h.log }
func (h *fakeHAL) Display() hal.Display { return h }
func (h *fakeHAL) Input() hal.Input     { return h }
func (h *fakeHAL) Time() hal.Time       { return nil }

func (h *fakeHAL) Framebuffer() hal.Framebuffer { return h.fb }
func (h *fakeHAL) Keyboard() hal.Keyboard       { return keyboard(h.keys) }
func (h *fakeHAL) Pointer() hal.Pointer         { return pointer(h.ptr) }

type keyboard chan hal.KeyEvent

func (k keyboard) Events() <-chan hal.KeyEvent { return k }

type pointer chan hal.PointerEvent

func (p pointer) Events() <-chan hal.PointerEvent { return p }

func testConfig(effects ...string) config.Config {
	c := config.Default()
	c.App.Effects = effects
	c.App.Seed = 7
	return c
}

func envOf(t *testing.T, a scene.Animator) *scene.Env {
	t.Helper()
	switch s := a.(type) {
	case *scene.Scene[cubes.Cube]:
		return s.Env()
	case *scene.Scene[spheres.Sphere]:
		return s.Env()
	}
	t.Fatalf("unexpected animator %T", a)
	return nil
}

func TestLayoutSkipsUnknownEffects(t *testing.T) {
	h := newFakeHAL(200, 100)
	s, err := newSystem(h, Config{FX: testConfig("cubes", "stars", "spheres")})
	require.NoError(t, err)

	assert.Equal(t, []string{"cubes", "spheres"}, s.names())
	assert.Equal(t, image.Rect(0, 0, 100, 100), s.surfaces[0].rect)
	assert.Equal(t, image.Rect(100, 0, 200, 100), s.surfaces[1].rect)
	assert.True(t, h.log.has(`unknown effect "stars"`))
	assert.Equal(t, scene.Viewport{W: 100, H: 100}, envOf(t, s.surfaces[1].anim).Viewport)
}

func TestStepRendersAndPresents(t *testing.T) {
	h := newFakeHAL(64, 32)
	step, err := NewWithConfig(h, Config{FX: testConfig("cubes")})
	require.NoError(t, err)

	require.NoError(t, step())
	require.NoError(t, step())
	assert.Equal(t, 2, h.fb.presents)
	// cubes clear to an opaque background
	assert.Equal(t, uint8(0xFF), h.fb.img.Pix[3])
}

func TestNoSurfacesIsANoOp(t *testing.T) {
	h := newFakeHAL(10, 10)
	step, err := NewWithConfig(h, Config{FX: testConfig()})
	require.NoError(t, err)
	h.ptr <- hal.PointerEvent{X: 1, Y: 1}
	require.NoError(t, step())
	assert.Equal(t, 1, h.fb.presents)
}

func TestPointerSurfaceScope(t *testing.T) {
	h := newFakeHAL(200, 100)
	s, err := newSystem(h, Config{FX: testConfig("cubes", "spheres")})
	require.NoError(t, err)

	h.ptr <- hal.PointerEvent{X: 150, Y: 40}
	require.NoError(t, s.step())

	assert.False(t, envOf(t, s.surfaces[0].anim).Pointer.Active)
	assert.Equal(t, scene.Pointer{X: 50, Y: 40, Active: true}, envOf(t, s.surfaces[1].anim).Pointer)
}

func TestPointerViewportScope(t *testing.T) {
	h := newFakeHAL(200, 100)
	cfg := testConfig("cubes", "spheres")
	cfg.App.Scope = config.ScopeViewport
	s, err := newSystem(h, Config{FX: cfg})
	require.NoError(t, err)

	h.ptr <- hal.PointerEvent{X: 150, Y: 40}
	require.NoError(t, s.step())
	for _, sf := range s.surfaces {
		assert.Equal(t, scene.Pointer{X: 150, Y: 40, Active: true}, envOf(t, sf.anim).Pointer)
	}
}

func TestKeys(t *testing.T) {
	h := newFakeHAL(200, 100)
	s, err := newSystem(h, Config{FX: testConfig("cubes", "spheres")})
	require.NoError(t, err)

	h.keys <- hal.KeyEvent{Code: hal.KeyTab, Press: true}
	h.keys <- hal.KeyEvent{Code: hal.KeyTab, Press: false}
	require.NoError(t, s.step())
	assert.Equal(t, []string{"geometry", "waves"}, s.names())

	h.keys <- hal.KeyEvent{Rune: 'h', Press: true}
	require.NoError(t, s.step())
	assert.True(t, s.hud)

	h.keys <- hal.KeyEvent{Rune: 'q', Press: true}
	assert.ErrorIs(t, s.step(), ErrExit)

	h.keys <- hal.KeyEvent{Code: hal.KeyEscape, Press: true}
	assert.ErrorIs(t, s.step(), hal.ErrExit)
}

func TestResizeRelayouts(t *testing.T) {
	h := newFakeHAL(200, 100)
	s, err := newSystem(h, Config{FX: testConfig("cubes", "spheres")})
	require.NoError(t, err)
	first := s.surfaces[0].anim

	h.fb.img = image.NewRGBA(image.Rect(0, 0, 300, 50))
	require.NoError(t, s.step())

	assert.Same(t, first, s.surfaces[0].anim)
	assert.Equal(t, image.Rect(150, 0, 300, 50), s.surfaces[1].rect)
	assert.Equal(t, scene.Viewport{W: 150, H: 50}, envOf(t, s.surfaces[0].anim).Viewport)
}

func TestReloadRebuildsScenes(t *testing.T) {
	h := newFakeHAL(100, 100)
	reload := make(chan config.Config, 1)
	errs := make(chan error, 1)
	s, err := newSystem(h, Config{FX: testConfig("cubes"), Reload: reload, ReloadErrors: errs})
	require.NoError(t, err)

	next := config.Default()
	next.Cubes.Count = 3
	next.App.Effects = []string{"waves"}
	reload <- next
	errs <- errors.New("bad file")
	require.NoError(t, s.step())

	assert.Equal(t, []string{"cubes"}, s.names())
	assert.Len(t, s.surfaces[0].anim.(*scene.Scene[cubes.Cube]).Primitives(), 3)
	assert.True(t, h.log.has("config reloaded"))
	assert.True(t, h.log.has("bad file"))
}

func TestSeedReproducible(t *testing.T) {
	run := func() []cubes.Cube {
		h := newFakeHAL(100, 100)
		s, err := newSystem(h, Config{FX: testConfig("cubes")})
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			require.NoError(t, s.step())
		}
		return s.surfaces[0].anim.(*scene.Scene[cubes.Cube]).Primitives()
	}
	assert.Equal(t, run(), run())
}

func TestHUD(t *testing.T) {
	h := newFakeHAL(120, 60)
	cfg := testConfig("particles")
	cfg.App.HUD = true
	step, err := NewWithConfig(h, Config{FX: cfg})
	require.NoError(t, err)
	require.NoError(t, step())
	// the HUD plate darkens the top-left corner over the cleared surface
	assert.NotZero(t, h.fb.img.Pix[3])
}

func TestGuardRecoversPanics(t *testing.T) {
	h := newFakeHAL(80, 40)
	s, err := newSystem(h, Config{FX: testConfig("cubes")})
	require.NoError(t, err)

	step := s.guard(func() error { panic("boom") })
	err = step()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.True(t, h.log.has("app: panic: boom"))
	assert.Equal(t, 1, h.fb.presents)

	// the panic screen is mostly white background with sparse text
	var white int
	for i := 0; i < len(h.fb.img.Pix); i += 4 {
		if h.fb.img.Pix[i] == 0xFF {
			white++
		}
	}
	assert.Greater(t, white, 80*40/2)
}

func TestNewErrors(t *testing.T) {
	_, err := NewWithConfig(nil, Config{FX: config.Default()})
	assert.Error(t, err)

	cfg := config.Default()
	cfg.Spheres.Perspective = -1
	_, err = NewWithConfig(newFakeHAL(10, 10), Config{FX: cfg})
	assert.ErrorContains(t, err, "spheres: perspective")
}

func TestTakeRunes(t *testing.T) {
	p, r := takeRunes("héllo", 2)
	assert.Equal(t, "hé", p)
	assert.Equal(t, "llo", r)
	p, r = takeRunes("ab", 5)
	assert.Equal(t, "ab", p)
	assert.Empty(t, r)
}

func TestSnapshotter(t *testing.T) {
	dir := t.TempDir()
	snap := &Snapshotter{Dir: filepath.Join(dir, "out"), Every: 2, Scale: 2}
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for f := uint64(1); f <= 4; f++ {
		require.NoError(t, snap.OnFrame(f, img))
	}
	assert.Equal(t, 2, snap.Saved())

	for _, f := range []int{2, 4} {
		got, err := imgio.Open(filepath.Join(dir, "out", fmt.Sprintf("frame-%06d.png", f)))
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 16, 8), got.Bounds())
	}
}
