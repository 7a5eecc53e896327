// Package app runs the frame loop: drain window events, sample input, render
// the payload into the backbuffer and present it.
package app

import (
	"errors"
	"fmt"
	"sync/atomic"

	"framehost/audio"
	"framehost/gfx"
	"framehost/hal"
	"framehost/input"
)

var (
	ErrNotInitialized = errors.New("app not initialized")
	errInitialized    = errors.New("app already initialized")
)

// RumbleStrength is the motor speed used while a controller's A button is held.
const RumbleStrength = 0xFFFF

// Config selects the window and the optional features of an App.
type Config struct {
	Window      hal.WindowConfig
	Controllers int
	Quit        input.Chord
	Rumble      bool
	Overlay     bool

	Audio        bool
	AudioRate    int
	AudioSeconds float64
}

// App owns the window, the backbuffer and the per-frame input state.
type App struct {
	p   hal.Platform
	cfg Config
	log hal.Logger

	win     hal.Window
	surf    gfx.Surface
	alloc   *gfx.Allocator
	pads    *input.Sampler
	in      *input.FrameState
	snd     *audio.Handshake
	overlay *gfx.Overlay

	running  atomic.Bool
	frame    uint64
	rumbling [input.MaxControllers]bool
	blitErr  string
}

// New returns an App bound to p. Nothing is created until Init.
func New(p hal.Platform, cfg Config) *App {
	return &App{
		p:   p,
		cfg: cfg,
		log: hal.LoggerOrNop(p.Logger()),
		in:  input.NewFrameState(),
	}
}

// Init creates the window and resolves the optional devices. Only a window
// failure is returned; missing controllers or audio leave those features
// inert.
func (a *App) Init() error {
	if a.win != nil {
		return errInitialized
	}
	win, err := a.p.CreateWindow(a.cfg.Window)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	a.win = win
	a.alloc = gfx.NewAllocator(a.p.Memory(), a.log)

	// Desktop windows report their first size through a resize event; allocate
	// up front so the first frame has a surface either way.
	a.resize()

	drv, err := a.p.Controllers()
	if err != nil {
		a.log.WriteLineString(fmt.Sprintf("app: controllers: %v", err))
	}
	a.pads = input.NewSampler(input.Resolve(drv, err), a.cfg.Controllers, a.log)

	if a.cfg.Audio {
		adrv, err := a.p.Audio()
		f := audio.Format(a.cfg.AudioRate)
		a.snd = audio.Init(adrv, err, win, a.cfg.AudioRate, audio.BufferBytes(f, a.cfg.AudioSeconds), a.log)
	}

	if a.cfg.Overlay {
		a.overlay = gfx.NewOverlay()
	}

	a.running.Store(true)
	a.log.WriteLineString(fmt.Sprintf("app: %s backend, pads %s, audio %s", a.p.Name(), a.pads.Name(), a.AudioState()))
	return nil
}

// Run drives Step until the window closes.
func (a *App) Run() error {
	if a.win == nil {
		return ErrNotInitialized
	}
	return a.p.Drive(a.Step)
}

// Running reports whether the loop should continue.
func (a *App) Running() bool { return a.running.Load() }

// Frame returns the number of frames rendered so far.
func (a *App) Frame() uint64 { return a.frame }

// Input returns the accumulated input state.
func (a *App) Input() *input.FrameState { return a.in }

// Surface returns the backbuffer. It must not be retained across a Step.
func (a *App) Surface() *gfx.Surface { return &a.surf }

// AudioState reports the terminal state of the audio handshake.
func (a *App) AudioState() audio.State {
	if a.snd.Ready() {
		return audio.Ready
	}
	return audio.Unavailable
}

// Step runs one frame and reports whether the loop should continue. Nothing
// is rendered or presented once a dispatched event stops the loop.
func (a *App) Step() bool {
	if !a.pump() {
		return false
	}

	samples := a.pads.Sample()
	a.in.Accumulate(samples)
	if a.cfg.Rumble {
		a.rumble(samples)
	}

	gfx.FillGradient(&a.surf, a.in.OffsetX, a.in.OffsetY)
	if a.overlay != nil {
		a.overlay.Draw(&a.surf, a.statusLines())
	}
	a.present()

	a.in.OffsetX++
	a.frame++
	return true
}

// pump drains pending events without blocking. Dispatch stops as soon as an
// event clears the running flag; the rest stay queued.
func (a *App) pump() bool {
	for a.running.Load() {
		ev, ok := a.win.PollEvent()
		if !ok {
			break
		}
		if !a.HandleEvent(ev) {
			a.win.DefaultProc(ev)
		}
	}
	return a.running.Load()
}

// HandleEvent applies one window event and reports whether it was handled.
func (a *App) HandleEvent(ev hal.Event) bool {
	switch ev := ev.(type) {
	case hal.ResizeEvent:
		a.resize()
	case hal.CloseEvent:
		a.stop("close")
	case hal.DestroyEvent:
		a.stop("destroy")
	case hal.QuitEvent:
		a.stop("quit")
	case hal.ActivateEvent:
		a.log.WriteLineString(fmt.Sprintf("app: activate %v", ev.Active))
	case hal.KeyEvent:
		a.key(ev)
	case hal.PaintEvent:
		a.paint()
	default:
		return false
	}
	return true
}

func (a *App) stop(reason string) {
	if a.running.Swap(false) {
		a.log.WriteLineString("app: " + reason)
	}
}

func (a *App) resize() {
	d := a.win.ClientSize()
	// The allocator logs commit failures; the surface stays unpaintable until
	// the next resize.
	_ = a.alloc.Resize(&a.surf, int32(d.Width), int32(d.Height))
}

func (a *App) key(ev hal.KeyEvent) {
	if a.cfg.Quit.Match(ev) {
		a.stop(a.cfg.Quit.String())
		return
	}
	if !a.in.Keys.Record(ev) {
		return
	}
	state := "up"
	if ev.IsDown {
		state = "down"
	}
	if ev.Code == hal.KeyEscape {
		a.log.WriteLineString(fmt.Sprintf("app: escape %s", state))
		return
	}
	a.log.WriteLineString(fmt.Sprintf("app: key %s %s", ev.Code, state))
}

func (a *App) paint() {
	dc, err := a.win.BeginPaint()
	if err == nil {
		d := a.win.ClientSize()
		a.blit(gfx.Present(&a.surf, dc, d.Width, d.Height))
	}
	a.win.EndPaint(dc)
}

func (a *App) present() {
	dc, err := a.win.GetDC()
	if err != nil {
		a.blit(err)
		return
	}
	d := a.win.ClientSize()
	a.blit(gfx.Present(&a.surf, dc, d.Width, d.Height))
	a.win.ReleaseDC(dc)
}

// blit logs present failures once per distinct error.
func (a *App) blit(err error) {
	if err == nil {
		a.blitErr = ""
		return
	}
	if msg := err.Error(); msg != a.blitErr {
		a.blitErr = msg
		a.log.WriteLineString("app: present: " + msg)
	}
}

func (a *App) rumble(samples [input.MaxControllers]input.Sample) {
	for i, s := range samples {
		want := s.Connected && s.Buttons&hal.ButtonA != 0
		if want == a.rumbling[i] {
			continue
		}
		var strength uint16
		if want {
			strength = RumbleStrength
		}
		if err := a.pads.Rumble(i, strength); err != nil && !errors.Is(err, hal.ErrNotImplemented) {
			a.log.WriteLineString(fmt.Sprintf("app: rumble pad %d: %v", i, err))
		}
		a.rumbling[i] = want
	}
}

func (a *App) statusLines() []string {
	return []string{
		fmt.Sprintf("%s frame %d", a.p.Name(), a.frame),
		fmt.Sprintf("pads %d/%d %s", a.in.ConnectedCount(), input.MaxControllers, a.pads.Name()),
		fmt.Sprintf("audio %s", a.AudioState()),
		fmt.Sprintf("offset %d,%d", a.in.OffsetX, a.in.OffsetY),
	}
}

// Shutdown releases the backbuffer, audio device, window and platform.
func (a *App) Shutdown() error {
	a.running.Store(false)
	var errs []error
	if a.snd != nil {
		errs = append(errs, a.snd.Close())
	}
	if a.alloc != nil {
		a.alloc.Release(&a.surf)
	}
	if a.win != nil {
		errs = append(errs, a.win.Close())
	}
	errs = append(errs, a.p.Close())
	return errors.Join(errs...)
}
