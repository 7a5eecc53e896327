// Package config loads the host configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"framehost/input"
)

type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type Audio struct {
	Enabled bool    `yaml:"enabled"`
	Rate    int     `yaml:"sample_rate"`
	Seconds float64 `yaml:"buffer_seconds"`
}

type Headless struct {
	Frames uint64 `yaml:"frames"`
	Dump   string `yaml:"dump"`
}

type Config struct {
	Backend     string   `yaml:"backend"`
	Window      Window   `yaml:"window"`
	Controllers int      `yaml:"controllers"`
	Quit        string   `yaml:"quit"`
	Rumble      bool     `yaml:"rumble"`
	Overlay     bool     `yaml:"overlay"`
	Audio       Audio    `yaml:"audio"`
	Headless    Headless `yaml:"headless"`
}

// ValidationError names the offending field by its YAML path.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Default reproduces the stock program: a 1280x720 window, four controller
// slots, alt+f4 to quit and a two-second 48 kHz audio buffer. Headless runs
// are unbounded unless frames is set.
func Default() *Config {
	return &Config{
		Backend: "auto",
		Window: Window{
			Title:  "framehost",
			Width:  1280,
			Height: 720,
		},
		Controllers: input.MaxControllers,
		Quit:        "alt+f4",
		Rumble:      true,
		Audio: Audio{
			Enabled: true,
			Rate:    48000,
			Seconds: 2,
		},
	}
}

func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, "framehost", "config.yaml"), nil
}

// Load overlays the file at path onto Default. A missing file yields the
// defaults; unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read: %w", path, err)
	}
	if err := decodeStrictYAML(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to parse yaml: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}

// Validate checks the effective configuration.
func (c *Config) Validate() error {
	switch c.Backend {
	case "auto", "ebiten", "x11", "headless":
	default:
		return &ValidationError{Path: "backend", Err: fmt.Errorf("backend must be one of: auto, ebiten, x11, headless")}
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return &ValidationError{Path: "window", Err: fmt.Errorf("width and height must be > 0")}
	}
	if c.Controllers < 1 || c.Controllers > input.MaxControllers {
		return &ValidationError{Path: "controllers", Err: fmt.Errorf("controllers must be in 1..%d", input.MaxControllers)}
	}
	if _, err := input.ParseChord(c.Quit); err != nil {
		return &ValidationError{Path: "quit", Err: err}
	}
	if c.Audio.Enabled {
		if c.Audio.Rate < 8000 || c.Audio.Rate > 192000 {
			return &ValidationError{Path: "audio.sample_rate", Err: fmt.Errorf("sample_rate must be in 8000..192000")}
		}
		if c.Audio.Seconds <= 0 {
			return &ValidationError{Path: "audio.buffer_seconds", Err: fmt.Errorf("buffer_seconds must be > 0")}
		}
	}
	return nil
}

// QuitChord returns the parsed quit accelerator. Validate must have passed.
func (c *Config) QuitChord() input.Chord {
	ch, _ := input.ParseChord(c.Quit)
	return ch
}
