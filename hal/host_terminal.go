package hal

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
)

// TerminalConfig controls the terminal host.
type TerminalConfig struct {
	Hz int
	// Log receives log lines; nil means stderr. The terminal owns stdout.
	Log io.Writer
}

// RunTerminal draws the framebuffer into the terminal with half-block cells, two
// pixels per cell. It blocks until the context ends, the app exits or the user
// presses Ctrl-C.
func RunTerminal(ctx context.Context, newApp AppFunc, cfg TerminalConfig) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	return runTerminal(ctx, screen, newApp, cfg)
}

func runTerminal(ctx context.Context, screen tcell.Screen, newApp AppFunc, cfg TerminalConfig) error {
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: init: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	if cfg.Hz <= 0 {
		cfg.Hz = 30
	}
	logw := cfg.Log
	if logw == nil {
		logw = os.Stderr
	}

	cols, rows := screen.Size()
	h := newHost(cols, rows*2, logw)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	t := time.NewTicker(time.Second / time.Duration(cfg.Hz))
	defer t.Stop()

	var (
		snap  *image.RGBA
		seen  uint64
		fresh bool
	)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !handleTerminalEvent(h, ev) {
				return nil
			}
		case <-t.C:
			h.t.step()
			if step != nil {
				if err := step(); err != nil {
					if errors.Is(err, ErrExit) {
						return nil
					}
					return err
				}
			}
			if snap, seen, fresh = h.fb.snapshot(snap, seen); fresh {
				blitHalfBlocks(screen, snap)
				screen.Show()
			}
		}
	}
}

// handleTerminalEvent forwards one tcell event. It returns false on Ctrl-C.
func handleTerminalEvent(h *hostHAL, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			h.kbd.emit(KeyEvent{Press: true, Rune: ev.Rune()})
		default:
			if code, ok := terminalKeys[ev.Key()]; ok {
				h.kbd.emit(KeyEvent{Code: code, Press: true})
			}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		h.ptr.move(x, y*2)
	case *tcell.EventResize:
		cols, rows := ev.Size()
		h.fb.resize(cols, rows*2)
	}
	return true
}

var terminalKeys = map[tcell.Key]KeyCode{
	tcell.KeyUp:        KeyUp,
	tcell.KeyDown:      KeyDown,
	tcell.KeyLeft:      KeyLeft,
	tcell.KeyRight:     KeyRight,
	tcell.KeyEnter:     KeyEnter,
	tcell.KeyEscape:    KeyEscape,
	tcell.KeyBackspace: KeyBackspace,
	tcell.KeyTab:       KeyTab,
	tcell.KeyF1:        KeyF1,
}

// blitHalfBlocks paints img onto the screen: the upper pixel of each cell is the
// foreground of '▀', the lower pixel the background.
func blitHalfBlocks(screen tcell.Screen, img *image.RGBA) {
	cols, rows := screen.Size()
	b := img.Rect
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			top := pixelColor(img, b.Min.X+cx, b.Min.Y+cy*2)
			bot := pixelColor(img, b.Min.X+cx, b.Min.Y+cy*2+1)
			screen.SetContent(cx, cy, '▀', nil, tcell.StyleDefault.Foreground(top).Background(bot))
		}
	}
}

func pixelColor(img *image.RGBA, x, y int) tcell.Color {
	if !(image.Point{X: x, Y: y}).In(img.Rect) {
		return tcell.ColorBlack
	}
	i := img.PixOffset(x, y)
	p := img.Pix[i : i+3 : i+3]
	return tcell.NewRGBColor(int32(p[0]), int32(p[1]), int32(p[2]))
}
