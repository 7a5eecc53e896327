//go:build cgo

package hal

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

const ebitenAvailable = true

// ebitenPlatform runs the application inside ebiten's game loop. Update is the
// frame step; the device context uploads the surface to a GPU image that Draw
// stretches onto the screen.
type ebitenPlatform struct {
	log  Logger
	win  *ebitenWindow
	pads *ebitenGamepads
}

func newEbitenPlatform(log Logger) Platform {
	return &ebitenPlatform{log: log, pads: newEbitenGamepads()}
}

func (p *ebitenPlatform) Name() string           { return BackendEbiten }
func (p *ebitenPlatform) Logger() Logger         { return p.log }
func (p *ebitenPlatform) Memory() MemoryProvider { return PageMemory() }

func (p *ebitenPlatform) CreateWindow(cfg WindowConfig) (Window, error) {
	if p.win != nil {
		return nil, errors.New("ebiten: only one window supported")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.New("ebiten: invalid window size")
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetVsyncEnabled(false)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	p.win = &ebitenWindow{kbd: newHostKeyboard()}
	return p.win, nil
}

func (p *ebitenPlatform) Controllers() (ControllerDriver, error) { return p.pads, nil }

func (p *ebitenPlatform) Audio() (AudioDriver, error) { return newOtoDriver(), nil }

func (p *ebitenPlatform) Drive(step func() bool) error {
	if p.win == nil {
		return ErrWindowUnavailable
	}
	g := &hostGame{win: p.win, step: step}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func (p *ebitenPlatform) Close() error { return nil }

type hostGame struct {
	win  *ebitenWindow
	step func() bool
}

func (g *hostGame) Update() error {
	g.win.poll()
	if !g.step() {
		return ebiten.Termination
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	g.win.draw(screen)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	outsideWidth = max(outsideWidth, 1)
	outsideHeight = max(outsideHeight, 1)
	g.win.layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

type ebitenWindow struct {
	queue     EventQueue
	kbd       *hostKeyboard
	size      Dimension
	focused   bool
	closeSent bool
	closed    bool

	img     *ebiten.Image
	scratch []byte
	dest    Dimension
	op      ebiten.DrawImageOptions
}

// poll turns ebiten's polled state into window events.
func (w *ebitenWindow) poll() {
	if ebiten.IsWindowBeingClosed() && !w.closeSent {
		w.closeSent = w.queue.TryPost(CloseEvent{})
	}
	if f := ebiten.IsFocused(); f != w.focused {
		w.focused = f
		w.queue.TryPost(ActivateEvent{Active: f})
	}
	w.kbd.poll(&w.queue)
}

func (w *ebitenWindow) layout(width, height int) {
	if w.size.Width == width && w.size.Height == height {
		return
	}
	w.size = Dimension{Width: width, Height: height}
	w.queue.TryPost(ResizeEvent{Width: width, Height: height})
	w.queue.TryPost(PaintEvent{})
}

func (w *ebitenWindow) draw(screen *ebiten.Image) {
	if w.img == nil || w.dest.Width <= 0 || w.dest.Height <= 0 {
		return
	}
	b := w.img.Bounds()
	w.op = ebiten.DrawImageOptions{}
	w.op.GeoM.Scale(float64(w.dest.Width)/float64(b.Dx()), float64(w.dest.Height)/float64(b.Dy()))
	w.op.Filter = ebiten.FilterNearest
	screen.DrawImage(w.img, &w.op)
}

func (w *ebitenWindow) PollEvent() (Event, bool) { return w.queue.TryNext() }

func (w *ebitenWindow) DefaultProc(Event) {}

func (w *ebitenWindow) ClientSize() Dimension { return w.size }

func (w *ebitenWindow) GetDC() (DeviceContext, error) {
	if w.closed {
		return nil, ErrWindowUnavailable
	}
	return ebitenDC{w: w}, nil
}

func (w *ebitenWindow) ReleaseDC(DeviceContext) {}

func (w *ebitenWindow) BeginPaint() (DeviceContext, error) { return w.GetDC() }

func (w *ebitenWindow) EndPaint(DeviceContext) {}

func (w *ebitenWindow) Close() error {
	w.closed = true
	if w.img != nil {
		w.img.Deallocate()
		w.img = nil
	}
	return nil
}

type ebitenDC struct {
	w *ebitenWindow
}

func (dc ebitenDC) StretchBlit(src BlitSource, destW, destH int) error {
	if err := src.validate(); err != nil {
		return err
	}
	w := dc.w
	if w.img == nil || w.img.Bounds().Dx() != src.Width || w.img.Bounds().Dy() != src.Height {
		if w.img != nil {
			w.img.Deallocate()
		}
		w.img = ebiten.NewImage(src.Width, src.Height)
	}
	w.scratch = rgbaFromBGRX(w.scratch, src)
	w.img.WritePixels(w.scratch)
	w.dest = Dimension{Width: destW, Height: destH}
	return nil
}
