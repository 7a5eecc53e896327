// Package audio negotiates an audio device at startup. Nothing is ever
// mixed or played; the frame loop only needs to know whether the device
// came up.
package audio

import (
	"errors"
	"fmt"

	"framehost/hal"
)

// State is the terminal state of a handshake.
type State uint8

const (
	Unavailable State = iota
	Ready
)

func (s State) String() string {
	if s == Ready {
		return "ready"
	}
	return "unavailable"
}

// Stage names the step of the handshake that failed.
type Stage uint8

const (
	StageNone Stage = iota
	StageLoad
	StageCreateDevice
	StageCooperativeLevel
	StagePrimaryFormat
	StageSecondaryBuffer
)

var stageNames = [...]string{
	StageNone:             "none",
	StageLoad:             "load driver",
	StageCreateDevice:     "create device",
	StageCooperativeLevel: "set cooperative level",
	StagePrimaryFormat:    "set primary format",
	StageSecondaryBuffer:  "create secondary buffer",
}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("stage(%d)", uint8(s))
}

// Format is the wave format every handshake requests.
func Format(sampleRate int) hal.AudioFormat {
	return hal.AudioFormat{Channels: 2, SampleRate: sampleRate, BitsPerSample: 16}
}

// Handshake is the outcome of Init.
type Handshake struct {
	State  State
	Failed Stage
	Err    error
	Format hal.AudioFormat

	dev hal.AudioDevice
	buf hal.AudioBuffer
}

// Ready reports whether every step succeeded.
func (h *Handshake) Ready() bool { return h != nil && h.State == Ready }

// BufferSize returns the size of the secondary buffer, or 0.
func (h *Handshake) BufferSize() int {
	if h == nil || h.buf == nil {
		return 0
	}
	return h.buf.Size()
}

// Close releases the buffer and device. It is safe on any handshake.
func (h *Handshake) Close() error {
	if h == nil {
		return nil
	}
	var errs []error
	if h.buf != nil {
		errs = append(errs, h.buf.Close())
		h.buf = nil
	}
	if h.dev != nil {
		errs = append(errs, h.dev.Close())
		h.dev = nil
	}
	h.State = Unavailable
	return errors.Join(errs...)
}

// Init runs create device, cooperative level, primary format and secondary
// buffer in order. loadErr is the error, if any, from loading the driver. The
// first failure is logged with its step and leaves the handshake Unavailable
// with everything acquired so far released.
func Init(drv hal.AudioDriver, loadErr error, w hal.Window, sampleRate, bufferBytes int, log hal.Logger) *Handshake {
	log = hal.LoggerOrNop(log)
	h := &Handshake{Format: Format(sampleRate)}

	fail := func(stage Stage, err error) *Handshake {
		h.Failed = stage
		h.Err = err
		log.WriteLineString(fmt.Sprintf("audio: %s: %v", stage, err))
		_ = h.Close()
		return h
	}

	if loadErr != nil {
		return fail(StageLoad, loadErr)
	}
	if drv == nil {
		return fail(StageLoad, hal.ErrDriverUnavailable)
	}

	dev, err := drv.CreateDevice()
	if err != nil {
		return fail(StageCreateDevice, err)
	}
	h.dev = dev

	if err := dev.SetCooperativeLevel(w, hal.CooperativePriority); err != nil {
		return fail(StageCooperativeLevel, err)
	}
	if err := dev.SetPrimaryFormat(h.Format); err != nil {
		return fail(StagePrimaryFormat, err)
	}
	buf, err := dev.CreateSecondaryBuffer(h.Format, bufferBytes)
	if err != nil {
		return fail(StageSecondaryBuffer, err)
	}
	h.buf = buf
	h.State = Ready

	log.WriteLineString(fmt.Sprintf("audio: %s ready: %d Hz, %d-byte buffer", drv.Name(), sampleRate, buf.Size()))
	return h
}

// BufferBytes converts a duration in seconds to a whole number of sample
// frames of f.
func BufferBytes(f hal.AudioFormat, seconds float64) int {
	if seconds <= 0 || f.BlockAlign() <= 0 {
		return 0
	}
	frames := int(float64(f.SampleRate) * seconds)
	return frames * f.BlockAlign()
}
