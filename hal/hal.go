package hal

import (
	"errors"
	"image"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// ErrExit is returned by an app step to end the host loop cleanly.
var ErrExit = errors.New("exit requested")

// Framebuffer is an RGBA back buffer plus a "present" hook.
//
// The host may resize it between steps. Callers hold the lock while they read
// the size or touch Image; Present publishes the finished frame.
type Framebuffer interface {
	Width() int
	Height() int
	Image() *image.RGBA
	Lock()
	Unlock()
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyF1
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// PointerEvent is a cursor position in framebuffer pixels.
type PointerEvent struct {
	X, Y int
}

// Pointer provides pointer-move events.
type Pointer interface {
	Events() <-chan PointerEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
	Pointer() Pointer
}

// Time reports the frame clock driven by the host.
type Time interface {
	// Frames is the number of ticks the host has run.
	Frames() uint64
	// FPS is a smoothed tick rate.
	FPS() float64
}

// HAL provides the only contact point between the app and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Time() Time
}

// AppFunc builds an app against h and returns its per-tick step.
type AppFunc func(h HAL) (step func() error, err error)
