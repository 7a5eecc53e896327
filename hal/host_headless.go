package hal

import (
	"context"
	"fmt"
	"image"
	"sync"
)

// HeadlessConfig controls the no-window backend.
type HeadlessConfig struct {
	// Context stops the run by posting a CloseEvent when done.
	Context context.Context
	// Frames posts a CloseEvent after that many frames (0 = run until closed).
	Frames uint64
	// Width and Height override the requested window size when non-zero.
	Width  int
	Height int

	// Optional collaborators; nil means "not present".
	Memory      MemoryProvider
	Controllers ControllerDriver
	Audio       AudioDriver
}

// Headless is a platform whose window lives in memory. It reports a resize and
// a paint when the window is created, the same way a desktop window does when
// it is first shown.
type Headless struct {
	log Logger
	cfg HeadlessConfig

	mu  sync.Mutex
	win *HeadlessWindow
}

// NewHeadless returns the in-memory platform.
func NewHeadless(log Logger, cfg HeadlessConfig) *Headless {
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.Memory == nil {
		cfg.Memory = PageMemory()
	}
	return &Headless{log: LoggerOrNop(log), cfg: cfg}
}

func (h *Headless) Name() string           { return BackendHeadless }
func (h *Headless) Logger() Logger         { return h.log }
func (h *Headless) Memory() MemoryProvider { return h.cfg.Memory }

func (h *Headless) CreateWindow(cfg WindowConfig) (Window, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.win != nil {
		return nil, fmt.Errorf("headless: only one window supported")
	}
	w, ht := cfg.Width, cfg.Height
	if h.cfg.Width > 0 {
		w = h.cfg.Width
	}
	if h.cfg.Height > 0 {
		ht = h.cfg.Height
	}
	if w <= 0 || ht <= 0 {
		return nil, fmt.Errorf("headless: invalid window size %dx%d", w, ht)
	}
	win := NewHeadlessWindow(w, ht)
	win.Resize(w, ht)
	h.win = win
	return win, nil
}

// Window returns the window created by CreateWindow, or nil.
func (h *Headless) Window() *HeadlessWindow {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.win
}

func (h *Headless) Controllers() (ControllerDriver, error) {
	if h.cfg.Controllers == nil {
		return nil, ErrDriverUnavailable
	}
	return h.cfg.Controllers, nil
}

func (h *Headless) Audio() (AudioDriver, error) {
	if h.cfg.Audio == nil {
		return nil, ErrDriverUnavailable
	}
	return h.cfg.Audio, nil
}

// Drive runs step until it returns false. Cancellation of the configured
// context and the frame limit both surface as a CloseEvent so the application
// shuts down through its normal event path.
func (h *Headless) Drive(step func() bool) error {
	var frame uint64
	closing := false
	for {
		if !closing {
			if err := h.cfg.Context.Err(); err != nil {
				closing = h.postClose()
			} else if h.cfg.Frames > 0 && frame >= h.cfg.Frames {
				closing = h.postClose()
			}
		}
		if !step() {
			return nil
		}
		frame++
	}
}

func (h *Headless) postClose() bool {
	if win := h.Window(); win != nil {
		return win.Post(CloseEvent{})
	}
	return false
}

func (h *Headless) Close() error { return nil }

// HeadlessWindow is an in-memory Window. Presented frames are kept in BGRX
// order at the destination size.
type HeadlessWindow struct {
	mu        sync.Mutex
	queue     EventQueue
	size      Dimension
	frame     *image.RGBA
	presents  int
	paints    int
	unhandled []Event
	painting  bool
	closed    bool
}

// NewHeadlessWindow returns a window of the given client size with no events
// queued.
func NewHeadlessWindow(width, height int) *HeadlessWindow {
	return &HeadlessWindow{size: Dimension{Width: width, Height: height}}
}

// Post queues an event for the next PollEvent.
func (w *HeadlessWindow) Post(ev Event) bool {
	return w.queue.TryPost(ev)
}

// Resize changes the client size and queues the resize and repaint a desktop
// window would report.
func (w *HeadlessWindow) Resize(width, height int) {
	w.mu.Lock()
	w.size = Dimension{Width: width, Height: height}
	w.mu.Unlock()
	w.Post(ResizeEvent{Width: width, Height: height})
	w.Post(PaintEvent{})
}

func (w *HeadlessWindow) PollEvent() (Event, bool) {
	return w.queue.TryNext()
}

func (w *HeadlessWindow) DefaultProc(ev Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.unhandled = append(w.unhandled, ev)
}

func (w *HeadlessWindow) ClientSize() Dimension {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

func (w *HeadlessWindow) GetDC() (DeviceContext, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil, ErrWindowUnavailable
	}
	return headlessDC{w: w}, nil
}

func (w *HeadlessWindow) ReleaseDC(DeviceContext) {}

func (w *HeadlessWindow) BeginPaint() (DeviceContext, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil, ErrWindowUnavailable
	}
	w.painting = true
	return headlessDC{w: w}, nil
}

func (w *HeadlessWindow) EndPaint(DeviceContext) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.painting {
		w.painting = false
		w.paints++
	}
}

func (w *HeadlessWindow) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

// Presents returns the number of blits made through any device context.
func (w *HeadlessWindow) Presents() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.presents
}

// Paints returns the number of acknowledged paint brackets.
func (w *HeadlessWindow) Paints() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.paints
}

// Unhandled returns the events passed to DefaultProc.
func (w *HeadlessWindow) Unhandled() []Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Event(nil), w.unhandled...)
}

// PixelAt returns the presented BGRX pixel at (x, y) as a little-endian word.
func (w *HeadlessWindow) PixelAt(x, y int) (uint32, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.frame == nil || !(image.Point{X: x, Y: y}).In(w.frame.Rect) {
		return 0, false
	}
	off := w.frame.PixOffset(x, y)
	p := w.frame.Pix[off : off+4]
	return uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16 | uint32(p[3])<<24, true
}

// Snapshot returns the last presented frame converted to opaque RGBA, or nil.
func (w *HeadlessWindow) Snapshot() *image.RGBA {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.frame == nil {
		return nil
	}
	b := w.frame.Bounds()
	src := BlitSource{
		Width:   b.Dx(),
		Height:  b.Dy(),
		Stride:  w.frame.Stride,
		TopDown: true,
		Format:  PixelFormatBGRX32,
		Pix:     w.frame.Pix,
	}
	return &image.RGBA{Pix: rgbaFromBGRX(nil, src), Stride: b.Dx() * 4, Rect: b}
}

type headlessDC struct {
	w *HeadlessWindow
}

func (dc headlessDC) StretchBlit(src BlitSource, destW, destH int) error {
	if destW <= 0 || destH <= 0 {
		return nil
	}
	w := dc.w
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.frame == nil || w.frame.Rect.Dx() != destW || w.frame.Rect.Dy() != destH {
		w.frame = image.NewRGBA(image.Rect(0, 0, destW, destH))
	}
	if err := StretchInto(w.frame, src); err != nil {
		return err
	}
	w.presents++
	return nil
}
