// Command fxsnap renders effects offscreen and writes frames as PNG files.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"backdrop/app"
	"backdrop/config"
	"backdrop/fx"
	"backdrop/gfx"
	"backdrop/scene"

	"golang.org/x/sync/errgroup"
)

func main() {
	var (
		effects = flag.String("effects", strings.Join(fx.Names(), ","), "Comma-separated effects to render.")
		frames  = flag.Int("frames", 120, "Frames to simulate per effect.")
		every   = flag.Int("every", 30, "Write every N-th frame.")
		size    = flag.String("size", "640x360", "Frame size WxH.")
		seed    = flag.Uint64("seed", 1, "Random seed.")
		out     = flag.String("out", "snapshots", "Output directory.")
		cfgPath = flag.String("config", "", "Config file (.toml, .yaml or .yml).")
		scale   = flag.Int("scale", 1, "Upscale written frames by this factor.")
		jobs    = flag.Int("jobs", 0, "Effects rendered at once (0 = all).")
	)
	flag.Parse()

	w, h, err := parseSize(*size)
	if err != nil {
		fatalf("usage: fxsnap [-effects a,b] [-frames 120] [-every 30] [-size 640x360] [-out dir]\n%v", err)
	}
	if *frames <= 0 || *every <= 0 {
		fatalf("frames and every must be positive")
	}

	cfg := config.Default()
	if *cfgPath != "" {
		if cfg, err = config.Load(*cfgPath); err != nil {
			fatalf("%v", err)
		}
	}

	var names []string
	for _, n := range strings.Split(*effects, ",") {
		if n = strings.TrimSpace(n); n == "" {
			continue
		}
		if !fx.Known(n) {
			fatalf("unknown effect %q (known: %s)", n, strings.Join(fx.Names(), ", "))
		}
		names = append(names, n)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	job := renderJob{cfg: cfg, w: w, h: h, frames: *frames, every: *every, seed: *seed, out: *out, scale: *scale}
	written, err := renderAll(ctx, job, names, *jobs)
	if err != nil {
		fatalf("fxsnap: %v", err)
	}
	fmt.Printf("wrote %d frame(s) to %s\n", written, *out)
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

func parseSize(s string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: want WxH", s)
	}
	if w, err = strconv.Atoi(ws); err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	if h, err = strconv.Atoi(hs); err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("size %q: must be positive", s)
	}
	return w, h, nil
}

type renderJob struct {
	cfg    config.Config
	w, h   int
	frames int
	every  int
	seed   uint64
	out    string
	scale  int
}

// renderAll renders each effect on its own goroutine. Scenes share nothing.
func renderAll(ctx context.Context, job renderJob, names []string, limit int) (int, error) {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	counts := make([]int, len(names))
	for i, name := range names {
		g.Go(func() error {
			n, err := render(ctx, job, name, uint64(i))
			counts[i] = n
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			return nil
		})
	}
	err := g.Wait()
	total := 0
	for _, n := range counts {
		total += n
	}
	return total, err
}

func render(ctx context.Context, job renderJob, name string, index uint64) (int, error) {
	rng := rand.New(rand.NewPCG(job.seed, index))
	anim, err := fx.New(name, job.cfg, job.w, job.h, rng)
	if err != nil {
		return 0, err
	}
	img := image.NewRGBA(image.Rect(0, 0, job.w, job.h))
	snap := &app.Snapshotter{
		Dir:    filepath.Join(job.out, name),
		Prefix: name,
		Every:  uint64(job.every),
		Scale:  job.scale,
	}

	var loop scene.Loop
	loop.Add(anim, gfx.NewCanvas(img))
	loop.OnFrame = func(frame uint64) error { return snap.OnFrame(frame, img) }
	_, err = loop.Run(ctx, job.frames)
	return snap.Saved(), err
}
