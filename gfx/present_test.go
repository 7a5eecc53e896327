package gfx

import (
	"testing"

	"framehost/hal"
)

type blitCall struct {
	src          hal.BlitSource
	destW, destH int
}

type recordingDC struct {
	calls []blitCall
}

func (dc *recordingDC) StretchBlit(src hal.BlitSource, destW, destH int) error {
	dc.calls = append(dc.calls, blitCall{src: src, destW: destW, destH: destH})
	return nil
}

func TestPresentDescribesWholeSurface(t *testing.T) {
	a := NewAllocator(nil, nil)
	var s Surface
	if err := a.Resize(&s, 20, 10); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	dc := &recordingDC{}
	if err := Present(&s, dc, 80, 20); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if len(dc.calls) != 1 {
		t.Fatalf("StretchBlit calls = %d, want 1", len(dc.calls))
	}
	c := dc.calls[0]
	if c.src.Width != 20 || c.src.Height != 10 || c.src.Stride != 80 {
		t.Fatalf("source = %dx%d/%d, want 20x10/80", c.src.Width, c.src.Height, c.src.Stride)
	}
	if !c.src.TopDown || c.src.Format != hal.PixelFormatBGRX32 {
		t.Fatalf("source TopDown=%v Format=%v, want top-down BGRX32", c.src.TopDown, c.src.Format)
	}
	if c.destW != 80 || c.destH != 20 {
		t.Fatalf("dest = %dx%d, want 80x20 (no aspect correction)", c.destW, c.destH)
	}
}

func TestPresentSkipsUnpaintable(t *testing.T) {
	dc := &recordingDC{}
	var s Surface
	if err := Present(&s, dc, 10, 10); err != nil {
		t.Fatalf("Present: %v", err)
	}

	a := NewAllocator(nil, nil)
	if err := a.Resize(&s, 4, 4); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if err := Present(&s, dc, 0, 10); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if err := Present(&s, nil, 10, 10); err != nil {
		t.Fatalf("Present(nil dc): %v", err)
	}
	if len(dc.calls) != 0 {
		t.Fatalf("StretchBlit calls = %d, want 0", len(dc.calls))
	}
}

func TestPresentStretchesIntoHeadlessWindow(t *testing.T) {
	a := NewAllocator(nil, nil)
	var s Surface
	if err := a.Resize(&s, 2, 2); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	FillGradient(&s, 0, 0)

	win := hal.NewHeadlessWindow(4, 2)
	dc, err := win.GetDC()
	if err != nil {
		t.Fatalf("GetDC: %v", err)
	}
	if err := Present(&s, dc, 4, 2); err != nil {
		t.Fatalf("Present: %v", err)
	}
	win.ReleaseDC(dc)

	// Each source column covers two destination columns.
	want := [][]uint32{
		{0x000, 0x000, 0x001, 0x001},
		{0x100, 0x100, 0x101, 0x101},
	}
	for y, row := range want {
		for x, p := range row {
			got, ok := win.PixelAt(x, y)
			if !ok || got != p {
				t.Fatalf("PixelAt(%d, %d) = %#x, want %#x", x, y, got, p)
			}
		}
	}
}
