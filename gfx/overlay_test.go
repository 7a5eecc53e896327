package gfx

import "testing"

func TestOverlayDrawsBackgroundAndText(t *testing.T) {
	a := NewAllocator(nil, nil)
	var s Surface
	if err := a.Resize(&s, 120, 40); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	FillGradient(&s, 0, 0)

	NewOverlay().Draw(&s, []string{"frame 1", "pads 0/4"})

	bg := packBGRX(overlayBG)
	fg := packBGRX(overlayFG)
	if p, _ := s.Pixel(0, 0); p != bg {
		t.Fatalf("Pixel(0, 0) = %#x, want background %#x", p, bg)
	}
	lit := 0
	for y := int32(0); y < 20; y++ {
		for x := int32(0); x < 60; x++ {
			if p, _ := s.Pixel(x, y); p == fg {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatal("no glyph pixels drawn")
	}
	// Far corner keeps the gradient.
	if p, _ := s.Pixel(119, 39); p != 39<<8|119 {
		t.Fatalf("Pixel(119, 39) = %#x, want gradient %#x", p, 39<<8|119)
	}
}

func TestOverlayClipsToSmallSurface(t *testing.T) {
	a := NewAllocator(nil, nil)
	var s Surface
	if err := a.Resize(&s, 3, 2); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	NewOverlay().Draw(&s, []string{"a long line that does not fit"})

	var empty Surface
	NewOverlay().Draw(&empty, []string{"x"})
}
