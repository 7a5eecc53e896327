package hal

import (
	"errors"
	"fmt"
	"image"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xprop"
)

// putImageHeader is the fixed size of a PutImage request in bytes.
const putImageHeader = 24

// x11Platform talks to the X server directly, without cgo. The frame loop is a
// plain loop on the calling goroutine.
type x11Platform struct {
	log Logger
	xu  *xgbutil.XUtil
	win *x11Window
}

func newX11Platform(log Logger) Platform {
	return &x11Platform{log: log}
}

func (p *x11Platform) Name() string           { return BackendX11 }
func (p *x11Platform) Logger() Logger         { return p.log }
func (p *x11Platform) Memory() MemoryProvider { return PageMemory() }

func (p *x11Platform) CreateWindow(cfg WindowConfig) (Window, error) {
	if p.win != nil {
		return nil, errors.New("x11: only one window supported")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > 0xFFFF || cfg.Height > 0xFFFF {
		return nil, fmt.Errorf("x11: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("x11: connect: %w", err)
	}
	keybind.Initialize(xu)

	w, err := newX11Window(xu, cfg)
	if err != nil {
		xu.Conn().Close()
		return nil, err
	}
	p.xu = xu
	p.win = w
	return w, nil
}

func (p *x11Platform) Controllers() (ControllerDriver, error) {
	return SystemControllers()
}

func (p *x11Platform) Audio() (AudioDriver, error) {
	if drv := newOtoDriver(); drv != nil {
		return drv, nil
	}
	return nil, fmt.Errorf("x11: %w", ErrDriverUnavailable)
}

func (p *x11Platform) Drive(step func() bool) error {
	if p.win == nil {
		return ErrWindowUnavailable
	}
	for step() {
	}
	return nil
}

func (p *x11Platform) Close() error {
	if p.xu != nil {
		p.xu.Conn().Close()
		p.xu = nil
	}
	return nil
}

type x11Window struct {
	xu         *xgbutil.XUtil
	conn       *xgb.Conn
	id         xproto.Window
	gc         xproto.Gcontext
	depth      byte
	zpixmap32  bool
	maxRequest int
	deleteAtom xproto.Atom

	size    Dimension
	down    map[xproto.Keycode]bool
	pending xgb.Event
	frame   *image.RGBA
	closed  bool
}

func newX11Window(xu *xgbutil.XUtil, cfg WindowConfig) (*x11Window, error) {
	conn := xu.Conn()
	setup := xproto.Setup(conn)
	screen := xu.Screen()

	id, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, fmt.Errorf("x11: window id: %w", err)
	}
	mask := uint32(xproto.EventMaskExposure | xproto.EventMaskStructureNotify |
		xproto.EventMaskKeyPress | xproto.EventMaskKeyRelease | xproto.EventMaskFocusChange)
	err = xproto.CreateWindowChecked(conn, screen.RootDepth, id, screen.Root,
		0, 0, uint16(cfg.Width), uint16(cfg.Height), 0,
		xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask, []uint32{screen.BlackPixel, mask}).Check()
	if err != nil {
		return nil, fmt.Errorf("x11: create window: %w", err)
	}

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		return nil, fmt.Errorf("x11: gc id: %w", err)
	}
	if err := xproto.CreateGCChecked(conn, gc, xproto.Drawable(id), 0, nil).Check(); err != nil {
		return nil, fmt.Errorf("x11: create gc: %w", err)
	}

	if err := icccm.WmProtocolsSet(xu, id, []string{"WM_DELETE_WINDOW"}); err != nil {
		return nil, fmt.Errorf("x11: WM_PROTOCOLS: %w", err)
	}
	deleteAtom, err := xprop.Atm(xu, "WM_DELETE_WINDOW")
	if err != nil {
		return nil, fmt.Errorf("x11: WM_DELETE_WINDOW: %w", err)
	}
	icccm.WmNameSet(xu, id, cfg.Title)
	ewmh.WmNameSet(xu, id, cfg.Title)

	if err := xproto.MapWindowChecked(conn, id).Check(); err != nil {
		return nil, fmt.Errorf("x11: map window: %w", err)
	}

	w := &x11Window{
		xu:         xu,
		conn:       conn,
		id:         id,
		gc:         gc,
		depth:      screen.RootDepth,
		maxRequest: int(setup.MaximumRequestLength) * 4,
		deleteAtom: deleteAtom,
		down:       make(map[xproto.Keycode]bool),
	}
	if setup.ImageByteOrder == xproto.ImageOrderLSBFirst {
		for _, f := range setup.PixmapFormats {
			if f.Depth == screen.RootDepth && f.BitsPerPixel == 32 {
				w.zpixmap32 = true
			}
		}
	}
	return w, nil
}

func (w *x11Window) next() (xgb.Event, xgb.Error) {
	if ev := w.pending; ev != nil {
		w.pending = nil
		return ev, nil
	}
	return w.conn.PollForEvent()
}

func (w *x11Window) PollEvent() (Event, bool) {
	for {
		ev, xerr := w.next()
		if ev == nil && xerr == nil {
			return nil, false
		}
		if xerr != nil {
			return RawEvent{Value: xerr}, true
		}
		if out, ok := w.translate(ev); ok {
			return out, true
		}
	}
}

// translate maps an X event to a window event. ok is false for events that
// carry nothing new (configure without a size change, non-final exposes).
func (w *x11Window) translate(ev xgb.Event) (Event, bool) {
	switch e := ev.(type) {
	case xproto.ConfigureNotifyEvent:
		if e.Window != w.id {
			return nil, false
		}
		size := Dimension{Width: int(e.Width), Height: int(e.Height)}
		if size == w.size {
			return nil, false
		}
		w.size = size
		return ResizeEvent{Width: size.Width, Height: size.Height}, true
	case xproto.ExposeEvent:
		if e.Count != 0 {
			return nil, false
		}
		return PaintEvent{}, true
	case xproto.ClientMessageEvent:
		if e.Format == 32 && len(e.Data.Data32) > 0 && xproto.Atom(e.Data.Data32[0]) == w.deleteAtom {
			return CloseEvent{}, true
		}
		return RawEvent{Value: e}, true
	case xproto.DestroyNotifyEvent:
		if e.Window != w.id {
			return nil, false
		}
		return DestroyEvent{}, true
	case xproto.FocusInEvent:
		return ActivateEvent{Active: true}, true
	case xproto.FocusOutEvent:
		return ActivateEvent{Active: false}, true
	case xproto.KeyPressEvent:
		was := w.down[e.Detail]
		w.down[e.Detail] = true
		return w.keyEvent(e.Detail, e.State, was, true), true
	case xproto.KeyReleaseEvent:
		return w.keyRelease(e), true
	default:
		return RawEvent{Value: ev}, true
	}
}

// keyRelease folds X auto-repeat (a release immediately followed by a press
// with the same timestamp) into a single held repeat.
func (w *x11Window) keyRelease(e xproto.KeyReleaseEvent) Event {
	next, xerr := w.peekEvent()
	if xerr == nil && next != nil {
		if p, ok := autoRepeat(e, next); ok {
			return w.keyEvent(e.Detail, p.State, true, true)
		}
		w.pending = next
	}
	w.down[e.Detail] = false
	return w.keyEvent(e.Detail, e.State, true, false)
}

// autoRepeat reports whether next is the press X pairs with release for a
// held key.
func autoRepeat(release xproto.KeyReleaseEvent, next xgb.Event) (xproto.KeyPressEvent, bool) {
	p, ok := next.(xproto.KeyPressEvent)
	if !ok || p.Detail != release.Detail || p.Time != release.Time {
		return xproto.KeyPressEvent{}, false
	}
	return p, true
}

// peekEvent returns the next queued event. When none is queued yet it makes
// one round trip so everything the server sent before the reply is read.
func (w *x11Window) peekEvent() (xgb.Event, xgb.Error) {
	ev, xerr := w.conn.PollForEvent()
	if ev != nil || xerr != nil {
		return ev, xerr
	}
	if _, err := xproto.GetInputFocus(w.conn).Reply(); err != nil {
		return nil, nil
	}
	return w.conn.PollForEvent()
}

func (w *x11Window) keyEvent(code xproto.Keycode, state uint16, was, is bool) KeyEvent {
	alt := state&xproto.ModMask1 != 0
	return KeyEvent{
		Code:    keyFromKeysym(keybind.KeysymGet(w.xu, code, 0)),
		WasDown: was,
		IsDown:  is,
		Alt:     alt,
		System:  alt,
	}
}

// DefaultProc does nothing: X11 has no default window procedure.
func (w *x11Window) DefaultProc(Event) {}

func (w *x11Window) ClientSize() Dimension {
	geom, err := xproto.GetGeometry(w.conn, xproto.Drawable(w.id)).Reply()
	if err != nil {
		return w.size
	}
	return Dimension{Width: int(geom.Width), Height: int(geom.Height)}
}

func (w *x11Window) GetDC() (DeviceContext, error) {
	if w.closed {
		return nil, ErrWindowUnavailable
	}
	return x11DC{w: w}, nil
}

func (w *x11Window) ReleaseDC(DeviceContext) {}

// BeginPaint and EndPaint only bracket the blit; an Expose is acknowledged by
// reading it off the connection.
func (w *x11Window) BeginPaint() (DeviceContext, error) { return w.GetDC() }

func (w *x11Window) EndPaint(DeviceContext) {}

func (w *x11Window) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	xproto.FreeGC(w.conn, w.gc)
	return xproto.DestroyWindowChecked(w.conn, w.id).Check()
}

type x11DC struct {
	w *x11Window
}

func (dc x11DC) StretchBlit(src BlitSource, destW, destH int) error {
	w := dc.w
	if !w.zpixmap32 {
		return fmt.Errorf("x11: %w: visual is not 32bpp little-endian", ErrNotImplemented)
	}
	if destW <= 0 || destH <= 0 {
		return nil
	}
	if w.frame == nil || w.frame.Rect.Dx() != destW || w.frame.Rect.Dy() != destH {
		w.frame = image.NewRGBA(image.Rect(0, 0, destW, destH))
	}
	if err := StretchInto(w.frame, src); err != nil {
		return err
	}

	rows := (w.maxRequest - putImageHeader) / w.frame.Stride
	if rows < 1 {
		return fmt.Errorf("x11: row of %d bytes exceeds request limit", w.frame.Stride)
	}
	for y := 0; y < destH; y += rows {
		n := min(rows, destH-y)
		data := w.frame.Pix[y*w.frame.Stride : (y+n)*w.frame.Stride]
		xproto.PutImage(w.conn, xproto.ImageFormatZPixmap, xproto.Drawable(w.id), w.gc,
			uint16(destW), uint16(n), 0, int16(y), 0, w.depth, data)
	}
	return nil
}
