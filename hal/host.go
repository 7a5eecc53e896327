package hal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// Backend names accepted by New.
const (
	BackendAuto     = "auto"
	BackendEbiten   = "ebiten"
	BackendX11      = "x11"
	BackendHeadless = "headless"
)

var errEbitenUnavailable = errors.New("ebiten backend requires cgo (build with CGO_ENABLED=1)")

// Options selects and configures a platform.
type Options struct {
	Backend  string
	Logger   Logger
	Headless HeadlessConfig
}

// New returns the platform for opts.Backend. "auto" prefers the ebiten window
// and falls back to X11 when ebiten is not compiled in.
func New(opts Options) (Platform, error) {
	if opts.Logger == nil {
		opts.Logger = NewLogger(os.Stderr)
	}
	switch opts.Backend {
	case "", BackendAuto:
		if ebitenAvailable {
			return newEbitenPlatform(opts.Logger), nil
		}
		return newX11Platform(opts.Logger), nil
	case BackendEbiten:
		if !ebitenAvailable {
			return nil, errEbitenUnavailable
		}
		return newEbitenPlatform(opts.Logger), nil
	case BackendX11:
		return newX11Platform(opts.Logger), nil
	case BackendHeadless:
		return NewHeadless(opts.Logger, opts.Headless), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", opts.Backend)
	}
}

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLogger returns a Logger that writes lines to w.
func NewLogger(w io.Writer) Logger {
	return &hostLogger{w: w}
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) WriteLineString(string) {}
func (NopLogger) WriteLineBytes([]byte)  {}

// LoggerOrNop returns l, or a NopLogger when l is nil.
func LoggerOrNop(l Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return l
}
