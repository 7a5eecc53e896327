package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"framehost/hal"
	"framehost/input"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Fatalf("window = %dx%d, want 1280x720", cfg.Window.Width, cfg.Window.Height)
	}
	if got := cfg.QuitChord(); got != (input.Chord{Alt: true, Code: hal.KeyF4}) {
		t.Fatalf("QuitChord() = %v, want alt+f4", got)
	}
	if cfg.Headless.Frames != 0 {
		t.Fatalf("Headless.Frames = %d, want 0 (unbounded)", cfg.Headless.Frames)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *Default() {
		t.Fatalf("Load(missing) = %+v, want defaults", cfg)
	}
}

func TestLoadEmptyFileUsesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "# empty\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *Default() {
		t.Fatalf("Load(empty) = %+v, want defaults", cfg)
	}
}

func TestLoadOverridesFields(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"backend: headless",
		"window:",
		"  width: 320",
		"controllers: 2",
		"quit: escape",
		"overlay: true",
		"audio:",
		"  sample_rate: 44100",
		"headless:",
		"  frames: 3",
		"  dump: out.png",
		"",
	}, "\n"))

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend != "headless" || cfg.Window.Width != 320 || cfg.Window.Height != 720 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Controllers != 2 || !cfg.Overlay || cfg.Audio.Rate != 44100 || cfg.Audio.Seconds != 2 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Headless.Frames != 3 || cfg.Headless.Dump != "out.png" {
		t.Fatalf("headless = %+v", cfg.Headless)
	}
	if got := cfg.QuitChord(); got != (input.Chord{Code: hal.KeyEscape}) {
		t.Fatalf("QuitChord() = %v, want escape", got)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	if _, err := Load(writeConfig(t, "fullscreen: true\n")); err == nil {
		t.Fatal("Load() accepted an unknown key")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		path string
		edit func(*Config)
	}{
		{"backend", func(c *Config) { c.Backend = "wayland" }},
		{"window", func(c *Config) { c.Window.Height = 0 }},
		{"controllers", func(c *Config) { c.Controllers = 5 }},
		{"controllers", func(c *Config) { c.Controllers = 0 }},
		{"quit", func(c *Config) { c.Quit = "ctrl+q" }},
		{"audio.sample_rate", func(c *Config) { c.Audio.Rate = 100 }},
		{"audio.buffer_seconds", func(c *Config) { c.Audio.Seconds = 0 }},
	}
	for _, tc := range cases {
		cfg := Default()
		tc.edit(cfg)
		err := cfg.Validate()
		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Path != tc.path {
			t.Fatalf("Validate() = %v, want error at %q", err, tc.path)
		}
	}

	cfg := Default()
	cfg.Audio.Enabled = false
	cfg.Audio.Rate = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() with audio disabled = %v", err)
	}
}

func TestLoadReportsValidationPath(t *testing.T) {
	_, err := Load(writeConfig(t, "controllers: 9\n"))
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Path != "controllers" {
		t.Fatalf("Load() err = %v, want controllers validation error", err)
	}
}
