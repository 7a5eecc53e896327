// Package gfx owns the CPU backbuffer: its allocation, the placeholder payload
// that is drawn into it each frame and its presentation into a window.
package gfx

import (
	"encoding/binary"

	"framehost/hal"
)

// BytesPerPixel is fixed: blue, green, red, padding.
const BytesPerPixel = 4

// Surface is the off-screen pixel buffer. Rows are stored top-down. The buffer
// is either empty or exactly Height*Stride bytes.
type Surface struct {
	width  int32
	height int32
	stride int32
	buf    []byte
}

func (s *Surface) Width() int32  { return s.width }
func (s *Surface) Height() int32 { return s.height }
func (s *Surface) Stride() int32 { return s.stride }

// Len returns the size of the backing block in bytes.
func (s *Surface) Len() int { return len(s.buf) }

// Paintable reports whether the surface has a backing block to draw into.
func (s *Surface) Paintable() bool {
	return len(s.buf) > 0 && len(s.buf) == int(s.height)*int(s.stride)
}

// Row returns row y as a slice of Stride bytes, or nil when y is out of range
// or the surface is not paintable.
func (s *Surface) Row(y int32) []byte {
	if !s.Paintable() || y < 0 || y >= s.height {
		return nil
	}
	off := int(y) * int(s.stride)
	return s.buf[off : off+int(s.stride)]
}

// Pixel returns the packed pixel at (x, y) with blue in the low byte.
func (s *Surface) Pixel(x, y int32) (uint32, bool) {
	row := s.Row(y)
	if row == nil || x < 0 || x >= s.width {
		return 0, false
	}
	return binary.LittleEndian.Uint32(row[x*BytesPerPixel:]), true
}

// SetPixel stores a packed pixel at (x, y); out-of-range writes are dropped.
func (s *Surface) SetPixel(x, y int32, p uint32) {
	row := s.Row(y)
	if row == nil || x < 0 || x >= s.width {
		return
	}
	binary.LittleEndian.PutUint32(row[x*BytesPerPixel:], p)
}

// BlitSource describes the surface to a device context. The slice is borrowed
// and must not be kept past the call it is passed to.
func (s *Surface) BlitSource() hal.BlitSource {
	return hal.BlitSource{
		Width:   int(s.width),
		Height:  int(s.height),
		Stride:  int(s.stride),
		TopDown: true,
		Format:  hal.PixelFormatBGRX32,
		Pix:     s.buf,
	}
}
