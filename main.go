package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"backdrop/app"
	"backdrop/config"
	"backdrop/fx"
	"backdrop/hal"
	"backdrop/internal/buildinfo"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("backdrop", flag.ContinueOnError)
	var headless hal.HeadlessConfig
	var (
		effects   = fs.String("effects", "", "Comma-separated effects, one surface each ("+strings.Join(fx.Names(), ",")+").")
		seed      = fs.Uint64("seed", 1, "Random seed.")
		cfgPath   = fs.String("config", "", "Config file (.toml, .yaml or .yml).")
		watch     = fs.Bool("watch", false, "Reload the config file when it changes.")
		hud       = fs.Bool("hud", false, "Show effect name and fps.")
		scope     = fs.String("scope", config.ScopeSurface, "Pointer scope: surface|viewport.")
		width     = fs.Int("width", 960, "Window or headless framebuffer width.")
		height    = fs.Int("height", 540, "Window or headless framebuffer height.")
		scale     = fs.Int("scale", 1, "Screen pixels per framebuffer pixel (window mode) or PNG upscale factor (headless snapshots).")
		term      = fs.Bool("term", false, "Render into the terminal.")
		logPath   = fs.String("log", "", "Log file (default stderr; discarded in terminal mode).")
		snapDir   = fs.String("snap-dir", "", "Write PNG snapshots here (headless mode).")
		snapEvery = fs.Uint64("snap-every", 60, "Snapshot every N frames.")
		version   = fs.Bool("version", false, "Print version and exit.")
	)
	fs.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	fs.IntVar(&headless.Hz, "hz", 60, "Tick rate in headless and terminal mode.")
	fs.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *version {
		_, err := fmt.Fprintln(stdout, buildinfo.Info())
		return err
	}

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			return err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "effects":
			cfg.App.Effects = splitList(*effects)
		case "seed":
			cfg.App.Seed = *seed
		case "hud":
			cfg.App.HUD = *hud
		case "scope":
			cfg.App.Scope = *scope
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}
	if *watch && *cfgPath == "" {
		return errors.New("-watch needs -config")
	}

	logw, closeLog, err := openLog(*logPath, *term)
	if err != nil {
		return err
	}
	defer closeLog()

	appCfg := app.Config{FX: cfg}
	if *watch {
		w, err := config.Watch(*cfgPath)
		if err != nil {
			return err
		}
		defer w.Close()
		appCfg.Reload, appCfg.ReloadErrors = w.Updates, w.Errors
	}
	newApp := func(h hal.HAL) (func() error, error) {
		return app.NewWithConfig(h, appCfg)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case *term:
		err = hal.RunTerminal(ctx, newApp, hal.TerminalConfig{Hz: headless.Hz, Log: logw})
	case headless.Enabled:
		headless.Width, headless.Height = *width, *height
		headless.Log = logw
		if *snapDir != "" {
			snap := &app.Snapshotter{Dir: *snapDir, Every: *snapEvery, Scale: *scale}
			headless.OnFrame = snap.OnFrame
		}
		err = hal.RunHeadless(ctx, newApp, headless)
	default:
		err = hal.RunWindow(newApp, hal.WindowConfig{Width: *width, Height: *height, Scale: *scale})
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// openLog picks the log destination. The terminal host owns the tty, so logs are
// dropped there unless a file is given.
func openLog(path string, term bool) (io.Writer, func(), error) {
	if path == "" {
		if term {
			return io.Discard, func() {}, nil
		}
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("log: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
