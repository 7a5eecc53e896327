package gfx

import (
	"errors"
	"fmt"
	"math"

	"framehost/hal"
)

var ErrInvalidSize = errors.New("gfx: invalid surface size")

// Allocator replaces surface blocks through a memory provider.
type Allocator struct {
	mem hal.MemoryProvider
	log hal.Logger
}

func NewAllocator(mem hal.MemoryProvider, log hal.Logger) *Allocator {
	if mem == nil {
		mem = hal.HeapMemory{}
	}
	return &Allocator{mem: mem, log: hal.LoggerOrNop(log)}
}

// Resize releases the current block and commits a new one for width x height.
//
// On a commit failure the surface keeps the requested dimensions with an empty
// buffer; it stays non-paintable until the next successful Resize.
func (a *Allocator) Resize(s *Surface, width, height int32) error {
	if width < 0 || height < 0 || width > math.MaxInt32/BytesPerPixel {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	size := int64(width) * int64(height) * BytesPerPixel
	if size > int64(^uint(0)>>1) {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	a.Release(s)
	s.width = width
	s.height = height
	s.stride = width * BytesPerPixel
	if size == 0 {
		return nil
	}

	buf, err := a.mem.Commit(int(size))
	if err != nil {
		a.log.WriteLineString(fmt.Sprintf("surface: commit %dx%d failed: %v", width, height, err))
		return fmt.Errorf("surface commit: %w", err)
	}
	if len(buf) != int(size) {
		a.log.WriteLineString(fmt.Sprintf("surface: commit %dx%d returned %d bytes, want %d", width, height, len(buf), size))
		if len(buf) > 0 {
			if err := a.mem.Release(buf); err != nil {
				a.log.WriteLineString(fmt.Sprintf("surface: release failed: %v", err))
			}
		}
		return fmt.Errorf("surface commit: got %d bytes, want %d", len(buf), size)
	}
	s.buf = buf
	return nil
}

// Release returns the surface's block to the provider and empties it. The
// dimensions are kept.
func (a *Allocator) Release(s *Surface) {
	if s.buf == nil {
		return
	}
	buf := s.buf
	s.buf = nil
	if err := a.mem.Release(buf); err != nil {
		a.log.WriteLineString(fmt.Sprintf("surface: release failed: %v", err))
	}
}
