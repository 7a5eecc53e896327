package gfx

import "encoding/binary"

// FillGradient writes the placeholder payload: blue follows the column and
// green the row, both shifted by the offsets and wrapped at 256.
func FillGradient(s *Surface, offsetX, offsetY int32) {
	if !s.Paintable() {
		return
	}
	for y := int32(0); y < s.height; y++ {
		row := s.Row(y)
		green := uint32(y+offsetY) & 0xFF
		for x := int32(0); x < s.width; x++ {
			blue := uint32(x+offsetX) & 0xFF
			binary.LittleEndian.PutUint32(row[x*BytesPerPixel:], green<<8|blue)
		}
	}
}
