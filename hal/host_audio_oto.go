//go:build cgo

package hal

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// oto allows one context per process; it is created by the first device that
// sets a primary format and shared afterwards.
var (
	otoMu     sync.Mutex
	otoCtx    *oto.Context
	otoFormat AudioFormat
)

type otoDriver struct{}

func newOtoDriver() AudioDriver { return otoDriver{} }

func (otoDriver) Name() string { return "oto" }

func (otoDriver) CreateDevice() (AudioDevice, error) {
	return &otoDevice{}, nil
}

type otoDevice struct {
	level   CooperativeLevel
	ctx     *oto.Context
	buffers []*otoBuffer
}

func (d *otoDevice) SetCooperativeLevel(w Window, level CooperativeLevel) error {
	if w == nil {
		return ErrWindowUnavailable
	}
	d.level = level
	return nil
}

func (d *otoDevice) SetPrimaryFormat(f AudioFormat) error {
	if d.level == 0 {
		return errors.New("oto: cooperative level not set")
	}
	format, err := otoSampleFormat(f)
	if err != nil {
		return err
	}

	otoMu.Lock()
	defer otoMu.Unlock()
	if otoCtx != nil {
		if otoFormat != f {
			return fmt.Errorf("oto: context already running at %+v", otoFormat)
		}
		d.ctx = otoCtx
		return nil
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   f.SampleRate,
		ChannelCount: f.Channels,
		Format:       format,
	})
	if err != nil {
		return fmt.Errorf("oto: %w", err)
	}
	<-ready
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("oto: %w", err)
	}
	otoCtx, otoFormat = ctx, f
	d.ctx = ctx
	return nil
}

func (d *otoDevice) CreateSecondaryBuffer(f AudioFormat, size int) (AudioBuffer, error) {
	if d.ctx == nil {
		return nil, errors.New("oto: primary format not set")
	}
	if size <= 0 || size%f.BlockAlign() != 0 {
		return nil, fmt.Errorf("oto: invalid buffer size %d", size)
	}
	b := &otoBuffer{ring: &ringReader{buf: make([]byte, size)}}
	b.player = d.ctx.NewPlayer(b.ring)
	d.buffers = append(d.buffers, b)
	return b, nil
}

func (d *otoDevice) Close() error {
	var errs []error
	for _, b := range d.buffers {
		errs = append(errs, b.Close())
	}
	d.buffers = nil
	return errors.Join(errs...)
}

func otoSampleFormat(f AudioFormat) (oto.Format, error) {
	if f.Channels < 1 || f.Channels > 2 || f.SampleRate <= 0 {
		return 0, fmt.Errorf("oto: unsupported format %+v", f)
	}
	switch f.BitsPerSample {
	case 8:
		return oto.FormatUnsignedInt8, nil
	case 16:
		return oto.FormatSignedInt16LE, nil
	default:
		return 0, fmt.Errorf("oto: unsupported sample size %d", f.BitsPerSample)
	}
}

// otoBuffer is a secondary buffer: a fixed ring the player would loop over.
// Nothing is mixed into it yet, so the player is created but never started.
type otoBuffer struct {
	ring   *ringReader
	player *oto.Player
}

func (b *otoBuffer) Size() int { return len(b.ring.buf) }

func (b *otoBuffer) Close() error {
	if b.player == nil {
		return nil
	}
	err := b.player.Close()
	b.player = nil
	return err
}
