package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var (
	ErrNotImplemented    = errors.New("not implemented")
	ErrNotConnected      = errors.New("device not connected")
	ErrDriverUnavailable = errors.New("driver unavailable")
	ErrWindowUnavailable = errors.New("window unavailable")
)

// PixelFormat defines the pixel encoding of a blit source.
type PixelFormat uint8

const (
	// PixelFormatBGRX32 is 32bpp: blue, green, red, padding (one byte each).
	PixelFormatBGRX32 PixelFormat = iota + 1
)

// Dimension is a client-area size snapshot.
type Dimension struct {
	Width  int
	Height int
}

// BlitSource describes a CPU pixel buffer handed to a device context.
type BlitSource struct {
	Width   int
	Height  int
	Stride  int
	TopDown bool
	Format  PixelFormat
	Pix     []byte
}

// DeviceContext is a drawing target bound to a window for the duration of one
// GetDC/ReleaseDC or BeginPaint/EndPaint bracket.
type DeviceContext interface {
	// StretchBlit copies src into the destination rectangle (0,0)-(destW,destH),
	// scaling when the sizes differ.
	StretchBlit(src BlitSource, destW, destH int) error
}

// WindowConfig describes the window to create.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
}

// Window is the window-system surface the frame loop talks to.
type Window interface {
	// PollEvent returns the next pending event without blocking.
	PollEvent() (Event, bool)
	// DefaultProc applies the platform's default handling to an event the
	// application did not handle.
	DefaultProc(ev Event)
	ClientSize() Dimension
	GetDC() (DeviceContext, error)
	ReleaseDC(dc DeviceContext)
	BeginPaint() (DeviceContext, error)
	EndPaint(dc DeviceContext)
	Close() error
}

// MemoryProvider hands out anonymous read-write memory blocks.
type MemoryProvider interface {
	Commit(size int) ([]byte, error)
	Release(b []byte) error
}

// Button bits reported by a controller, XInput layout.
type Button uint16

const (
	ButtonDPadUp        Button = 0x0001
	ButtonDPadDown      Button = 0x0002
	ButtonDPadLeft      Button = 0x0004
	ButtonDPadRight     Button = 0x0008
	ButtonStart         Button = 0x0010
	ButtonBack          Button = 0x0020
	ButtonLeftShoulder  Button = 0x0100
	ButtonRightShoulder Button = 0x0200
	ButtonA             Button = 0x1000
	ButtonB             Button = 0x2000
	ButtonX             Button = 0x4000
	ButtonY             Button = 0x8000
)

// ControllerState is one polled controller snapshot.
type ControllerState struct {
	Packet  uint32
	Buttons Button
	StickX  int16
	StickY  int16
}

// Vibration holds motor speeds in [0, 65535].
type Vibration struct {
	Left  uint16
	Right uint16
}

// ControllerDriver reads and drives game controllers by slot index.
type ControllerDriver interface {
	Name() string
	// GetState returns ErrNotConnected for an empty slot.
	GetState(index int) (ControllerState, error)
	SetState(index int, v Vibration) error
}

// CooperativeLevel selects how an audio device shares the output with other
// applications.
type CooperativeLevel uint8

const (
	CooperativeNormal CooperativeLevel = iota + 1
	CooperativePriority
)

// AudioFormat is a PCM wave format.
type AudioFormat struct {
	Channels      int
	SampleRate    int
	BitsPerSample int
}

// BlockAlign returns the number of bytes per sample frame.
func (f AudioFormat) BlockAlign() int { return f.Channels * f.BitsPerSample / 8 }

// AvgBytesPerSec returns the byte rate of the format.
func (f AudioFormat) AvgBytesPerSec() int { return f.SampleRate * f.BlockAlign() }

// AudioBuffer is a playback buffer created by an AudioDevice.
type AudioBuffer interface {
	Size() int
	Close() error
}

// AudioDevice is an opened audio service.
type AudioDevice interface {
	SetCooperativeLevel(w Window, level CooperativeLevel) error
	SetPrimaryFormat(f AudioFormat) error
	CreateSecondaryBuffer(f AudioFormat, size int) (AudioBuffer, error)
	Close() error
}

// AudioDriver opens the system audio service.
type AudioDriver interface {
	Name() string
	CreateDevice() (AudioDevice, error)
}

// Platform bundles the collaborators of one backend.
type Platform interface {
	Name() string
	Logger() Logger
	CreateWindow(cfg WindowConfig) (Window, error)
	Memory() MemoryProvider
	// Controllers returns the controller driver or an error when none can be
	// loaded.
	Controllers() (ControllerDriver, error)
	// Audio returns the audio driver or an error when none can be loaded.
	Audio() (AudioDriver, error)
	// Drive calls step repeatedly until it returns false.
	Drive(step func() bool) error
	Close() error
}
