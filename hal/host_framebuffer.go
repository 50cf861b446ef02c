package hal

import (
	"image"
	"image/draw"
	"sync"
)

type hostFramebuffer struct {
	mu  sync.Mutex
	img *image.RGBA
	seq uint64
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	return &hostFramebuffer{img: image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))}
}

func (f *hostFramebuffer) Width() int         { return f.img.Rect.Dx() }
func (f *hostFramebuffer) Height() int        { return f.img.Rect.Dy() }
func (f *hostFramebuffer) Image() *image.RGBA { return f.img }
func (f *hostFramebuffer) Lock()              { f.mu.Lock() }
func (f *hostFramebuffer) Unlock()            { f.mu.Unlock() }

func (f *hostFramebuffer) Present() error {
	f.mu.Lock()
	f.seq++
	f.mu.Unlock()
	return nil
}

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pix := f.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0] = r
		pix[i+1] = g
		pix[i+2] = b
		pix[i+3] = 0xFF
	}
}

// resize reallocates the buffer. It reports whether the size changed.
func (f *hostFramebuffer) resize(width, height int) bool {
	width, height = max(width, 0), max(height, 0)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.img.Rect.Dx() == width && f.img.Rect.Dy() == height {
		return false
	}
	f.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return true
}

// snapshot copies the last presented pixels into dst, reallocating it when the
// size differs. The copy is skipped when dst already holds frame seen and the
// size is unchanged; fresh reports whether dst was written.
func (f *hostFramebuffer) snapshot(dst *image.RGBA, seen uint64) (_ *image.RGBA, seq uint64, fresh bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if dst != nil && dst.Rect == f.img.Rect && f.seq == seen {
		return dst, f.seq, false
	}
	if dst == nil || dst.Rect != f.img.Rect {
		dst = image.NewRGBA(f.img.Rect)
	}
	draw.Draw(dst, dst.Rect, f.img, f.img.Rect.Min, draw.Src)
	return dst, f.seq, true
}
