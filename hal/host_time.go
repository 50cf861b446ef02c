package hal

import (
	"sync"
	"time"
)

type hostTime struct {
	mu     sync.Mutex
	frames uint64
	fps    float64

	last time.Time
	now  func() time.Time
}

func newHostTime() *hostTime {
	return &hostTime{now: time.Now}
}

func (t *hostTime) Frames() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frames
}

func (t *hostTime) FPS() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fps
}

// step records one host tick and updates the smoothed rate.
func (t *hostTime) step() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.frames++
	if t.last.IsZero() {
		t.last = now
		return
	}
	d := now.Sub(t.last)
	t.last = now
	if d <= 0 {
		return
	}
	inst := float64(time.Second) / float64(d)
	if t.fps == 0 {
		t.fps = inst
		return
	}
	const k = 0.1
	t.fps += (inst - t.fps) * k
}
