package hal

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
	// StepBudget is the number of app steps run per tick.
	StepBudget int

	Width, Height int

	// Log receives log lines; nil means stderr.
	Log io.Writer

	// OnFrame, if set, sees the framebuffer after every tick.
	OnFrame func(tick uint64, img *image.RGBA) error
}

// RunHeadless runs the app without opening a window.
func RunHeadless(ctx context.Context, newApp AppFunc, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.StepBudget <= 0 {
		cfg.StepBudget = 1
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid headless size: %dx%d", cfg.Width, cfg.Height)
	}

	logw := cfg.Log
	if logw == nil {
		logw = os.Stderr
	}
	h := newHost(cfg.Width, cfg.Height, logw)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	var (
		snap *image.RGBA
		seen uint64
	)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			h.t.step()
			for i := 0; i < cfg.StepBudget && step != nil; i++ {
				if err := step(); err != nil {
					if errors.Is(err, ErrExit) {
						return nil
					}
					return err
				}
			}
			tick++
			if cfg.OnFrame != nil {
				snap, seen, _ = h.fb.snapshot(snap, seen)
				if err := cfg.OnFrame(tick, snap); err != nil {
					return err
				}
			}
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
