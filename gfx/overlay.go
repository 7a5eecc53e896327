package gfx

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

var (
	overlayFG = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	overlayBG = color.RGBA{R: 0x08, G: 0x08, B: 0x08, A: 0xff}
)

const overlayPad = 2

// Overlay draws a few status lines in the top-left corner of a surface.
type Overlay struct {
	font tinyfont.Fonter
	fg   color.RGBA
	bg   color.RGBA
}

func NewOverlay() *Overlay {
	return &Overlay{font: &tinyfont.TomThumb, fg: overlayFG, bg: overlayBG}
}

// Draw renders lines over whatever the surface already holds. It is a no-op on
// a surface that is not paintable.
func (o *Overlay) Draw(s *Surface, lines []string) {
	if !s.Paintable() || len(lines) == 0 {
		return
	}
	d := &surfaceDisplay{s: s}

	adv := int16(o.font.GetYAdvance())
	var w uint32
	for _, line := range lines {
		if _, outbox := tinyfont.LineWidth(o.font, line); outbox > w {
			w = outbox
		}
	}
	d.FillRectangle(0, 0, int16(w)+2*overlayPad, adv*int16(len(lines))+2*overlayPad, o.bg)

	y := int16(overlayPad) + adv - 1
	for _, line := range lines {
		tinyfont.WriteLine(d, o.font, overlayPad, y, line, o.fg)
		y += adv
	}
}

// surfaceDisplay exposes a Surface as a drivers.Displayer.
type surfaceDisplay struct {
	s *Surface
}

var _ drivers.Displayer = (*surfaceDisplay)(nil)

func (d *surfaceDisplay) Size() (x, y int16) {
	return clampInt16(d.s.width), clampInt16(d.s.height)
}

func (d *surfaceDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.s.SetPixel(int32(x), int32(y), packBGRX(c))
}

func (d *surfaceDisplay) Display() error { return nil }

func (d *surfaceDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) {
	p := packBGRX(c)
	x0 := max(int32(x), 0)
	y0 := max(int32(y), 0)
	x1 := min(int32(x)+int32(width), d.s.width)
	y1 := min(int32(y)+int32(height), d.s.height)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			d.s.SetPixel(px, py, p)
		}
	}
}

func packBGRX(c color.RGBA) uint32 {
	return uint32(c.B) | uint32(c.G)<<8 | uint32(c.R)<<16
}

func clampInt16(v int32) int16 {
	if v > 0x7FFF {
		return 0x7FFF
	}
	return int16(v)
}
