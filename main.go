package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"os/signal"

	"framehost/app"
	"framehost/hal"
	"framehost/internal/buildinfo"
	"framehost/internal/config"
)

func main() {
	var (
		configPath string
		backend    string
		headless   bool
		frames     uint64
		dump       string
		overlay    bool
	)
	flag.StringVar(&configPath, "config", "", "Path to a YAML config file (default: user config dir).")
	flag.StringVar(&backend, "backend", "", "Window backend: auto, ebiten, x11 or headless.")
	flag.BoolVar(&headless, "headless", false, "Run without a window (same as -backend headless).")
	flag.Uint64Var(&frames, "frames", 0, "Stop after N frames in headless mode (0 = run until interrupted).")
	flag.StringVar(&dump, "dump", "", "Write the last headless frame to this PNG file.")
	flag.BoolVar(&overlay, "overlay", false, "Draw the status overlay.")
	flag.Parse()

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Backend = backend
		case "headless":
			if headless {
				cfg.Backend = hal.BackendHeadless
			}
		case "frames":
			cfg.Headless.Frames = frames
		case "dump":
			cfg.Headless.Dump = dump
		case "overlay":
			cfg.Overlay = overlay
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		def, err := config.DefaultPath()
		if err != nil {
			return config.Default(), nil
		}
		path = def
	}
	return config.Load(path)
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p, err := hal.New(hal.Options{
		Backend: cfg.Backend,
		Headless: hal.HeadlessConfig{
			Context: ctx,
			Frames:  cfg.Headless.Frames,
		},
	})
	if err != nil {
		return err
	}

	a := app.New(p, app.Config{
		Window: hal.WindowConfig{
			Title:  buildinfo.Title(cfg.Window.Title),
			Width:  cfg.Window.Width,
			Height: cfg.Window.Height,
		},
		Controllers:  cfg.Controllers,
		Quit:         cfg.QuitChord(),
		Rumble:       cfg.Rumble,
		Overlay:      cfg.Overlay,
		Audio:        cfg.Audio.Enabled,
		AudioRate:    cfg.Audio.Rate,
		AudioSeconds: cfg.Audio.Seconds,
	})
	if err := a.Init(); err != nil {
		_ = p.Close()
		return err
	}
	runErr := a.Run()

	var dumpErr error
	if h, ok := p.(*hal.Headless); ok && cfg.Headless.Dump != "" {
		dumpErr = dumpFrame(h, cfg.Headless.Dump)
	}
	if err := a.Shutdown(); err != nil {
		p.Logger().WriteLineString(fmt.Sprintf("main: shutdown: %v", err))
	}
	if runErr != nil {
		return runErr
	}
	return dumpErr
}

func dumpFrame(h *hal.Headless, path string) error {
	win := h.Window()
	if win == nil {
		return fmt.Errorf("dump %s: no window", path)
	}
	img := win.Snapshot()
	if img == nil {
		return fmt.Errorf("dump %s: nothing presented", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("dump %s: %w", path, err)
	}
	return f.Close()
}
