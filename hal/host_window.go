//go:build cgo

package hal

import (
	"errors"
	"image"

	"backdrop/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig controls the desktop window host.
type WindowConfig struct {
	Width, Height int
	Title         string
	// Scale is the number of screen pixels per framebuffer pixel.
	Scale int
}

// RunWindow starts a desktop window that displays the framebuffer and forwards keyboard
// and pointer input. It blocks until the window closes or the app asks to exit.
func RunWindow(newApp AppFunc, cfg WindowConfig) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.Title == "" {
		cfg.Title = "backdrop"
	}
	h := New(cfg.Width/cfg.Scale, cfg.Height/cfg.Scale).(*hostHAL)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	g := &hostGame{h: h, step: step, scale: cfg.Scale}
	ebiten.SetWindowTitle(cfg.Title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	err = ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type hostGame struct {
	h     *hostHAL
	step  func() error
	scale int

	img   *image.RGBA
	seen  uint64
	fbImg *ebiten.Image
}

func (g *hostGame) Update() error {
	pollKeyboard(g.h.kbd)
	x, y := ebiten.CursorPosition()
	g.h.ptr.move(x, y)
	g.h.t.step()
	if g.step != nil {
		if err := g.step(); err != nil {
			if errors.Is(err, ErrExit) {
				return ebiten.Termination
			}
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	var fresh bool
	g.img, g.seen, fresh = g.h.fb.snapshot(g.img, g.seen)
	w, h := g.img.Rect.Dx(), g.img.Rect.Dy()
	if w == 0 || h == 0 {
		return
	}
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != w || g.fbImg.Bounds().Dy() != h {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
		fresh = true
	}
	if fresh {
		g.fbImg.WritePixels(g.img.Pix)
	}
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := outsideWidth/g.scale, outsideHeight/g.scale
	g.h.fb.resize(w, h)
	return w, h
}
