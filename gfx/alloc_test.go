package gfx

import (
	"errors"
	"strings"
	"testing"

	"framehost/hal"
)

var errCommit = errors.New("out of pages")

// countingMemory tracks live blocks and can be told to fail the next commit.
type countingMemory struct {
	live     map[*byte]int
	commits  int
	releases int
	failNext bool
}

func newCountingMemory() *countingMemory {
	return &countingMemory{live: make(map[*byte]int)}
}

func (m *countingMemory) Commit(size int) ([]byte, error) {
	if m.failNext {
		m.failNext = false
		return nil, errCommit
	}
	b := make([]byte, size)
	m.live[&b[0]] = size
	m.commits++
	return b, nil
}

func (m *countingMemory) Release(b []byte) error {
	if _, ok := m.live[&b[0]]; !ok {
		return errors.New("release of unknown block")
	}
	delete(m.live, &b[0])
	m.releases++
	return nil
}

func TestResizeDimensions(t *testing.T) {
	sizes := []struct{ w, h int32 }{
		{0, 0}, {1, 1}, {0, 7}, {7, 0}, {3, 5}, {640, 480}, {1280, 720},
	}
	mem := newCountingMemory()
	a := NewAllocator(mem, nil)
	var s Surface

	for _, sz := range sizes {
		if err := a.Resize(&s, sz.w, sz.h); err != nil {
			t.Fatalf("Resize(%d, %d): %v", sz.w, sz.h, err)
		}
		if s.Width() != sz.w || s.Height() != sz.h {
			t.Fatalf("Resize(%d, %d) size = %dx%d", sz.w, sz.h, s.Width(), s.Height())
		}
		if s.Stride() != sz.w*4 {
			t.Fatalf("Resize(%d, %d) stride = %d, want %d", sz.w, sz.h, s.Stride(), sz.w*4)
		}
		if want := int(sz.w) * int(sz.h) * 4; s.Len() != want {
			t.Fatalf("Resize(%d, %d) len = %d, want %d", sz.w, sz.h, s.Len(), want)
		}
		if got, want := s.Paintable(), sz.w > 0 && sz.h > 0; got != want {
			t.Fatalf("Resize(%d, %d) Paintable() = %v, want %v", sz.w, sz.h, got, want)
		}
		if len(mem.live) > 1 {
			t.Fatalf("Resize(%d, %d) left %d live blocks, want at most 1", sz.w, sz.h, len(mem.live))
		}
	}
}

func TestResizeIdempotent(t *testing.T) {
	mem := newCountingMemory()
	a := NewAllocator(mem, nil)
	var s Surface

	if err := a.Resize(&s, 32, 16); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	first := s
	if err := a.Resize(&s, 32, 16); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if s.Width() != first.Width() || s.Height() != first.Height() || s.Stride() != first.Stride() || s.Len() != first.Len() {
		t.Fatalf("second Resize() = %dx%d/%d, want %dx%d/%d",
			s.Width(), s.Height(), s.Stride(), first.Width(), first.Height(), first.Stride())
	}
	if mem.commits != 2 || mem.releases != 1 {
		t.Fatalf("commits/releases = %d/%d, want 2/1", mem.commits, mem.releases)
	}
}

func TestResizeCommitFailure(t *testing.T) {
	mem := newCountingMemory()
	a := NewAllocator(mem, nil)
	var s Surface

	if err := a.Resize(&s, 8, 8); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	mem.failNext = true
	if err := a.Resize(&s, 16, 4); !errors.Is(err, errCommit) {
		t.Fatalf("Resize() err = %v, want errCommit", err)
	}
	if s.Paintable() || s.Len() != 0 {
		t.Fatalf("Paintable() = %v, Len() = %d after failed commit, want false, 0", s.Paintable(), s.Len())
	}
	if s.Width() != 16 || s.Height() != 4 {
		t.Fatalf("size = %dx%d after failed commit, want requested 16x4", s.Width(), s.Height())
	}
	if len(mem.live) != 0 {
		t.Fatalf("%d live blocks after failed commit, want old block released", len(mem.live))
	}

	// Fill and present must not fault on the empty surface.
	FillGradient(&s, 1, 2)
	if err := Present(&s, &recordingDC{}, 10, 10); err != nil {
		t.Fatalf("Present: %v", err)
	}

	if err := a.Resize(&s, 16, 4); err != nil {
		t.Fatalf("Resize after failure: %v", err)
	}
	if !s.Paintable() {
		t.Fatal("surface not paintable after a successful Resize")
	}
}

type lines []string

func (l *lines) WriteLineString(s string) { *l = append(*l, s) }
func (l *lines) WriteLineBytes(b []byte)  { *l = append(*l, string(b)) }

// shortMemory commits one byte less than asked and refuses every release.
type shortMemory struct {
	releases int
}

func (m *shortMemory) Commit(size int) ([]byte, error) { return make([]byte, size-1), nil }

func (m *shortMemory) Release([]byte) error {
	m.releases++
	return errors.New("release refused")
}

func TestResizeShortCommit(t *testing.T) {
	mem := &shortMemory{}
	var log lines
	a := NewAllocator(mem, &log)
	var s Surface

	if err := a.Resize(&s, 4, 4); err == nil {
		t.Fatal("Resize() accepted a short block")
	}
	if s.Paintable() || s.Len() != 0 {
		t.Fatalf("Paintable() = %v, Len() = %d, want false, 0", s.Paintable(), s.Len())
	}
	if mem.releases != 1 {
		t.Fatalf("releases = %d, want 1", mem.releases)
	}
	if len(log) != 2 || !strings.Contains(log[0], "63 bytes") || !strings.Contains(log[1], "release refused") {
		t.Fatalf("log = %q", log)
	}
}

func TestResizeRejectsNegative(t *testing.T) {
	a := NewAllocator(newCountingMemory(), nil)
	var s Surface
	if err := a.Resize(&s, 4, 4); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if err := a.Resize(&s, -1, 4); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("Resize(-1, 4) err = %v, want ErrInvalidSize", err)
	}
	if s.Width() != 4 || !s.Paintable() {
		t.Fatalf("surface changed by rejected Resize: %dx%d paintable=%v", s.Width(), s.Height(), s.Paintable())
	}
}

func TestReleaseEmptiesSurface(t *testing.T) {
	mem := newCountingMemory()
	a := NewAllocator(mem, nil)
	var s Surface
	if err := a.Resize(&s, 4, 4); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	a.Release(&s)
	a.Release(&s)
	if s.Paintable() || len(mem.live) != 0 || mem.releases != 1 {
		t.Fatalf("after Release: paintable=%v live=%d releases=%d", s.Paintable(), len(mem.live), mem.releases)
	}
}

func TestResizeWithPageMemory(t *testing.T) {
	a := NewAllocator(hal.PageMemory(), nil)
	var s Surface
	if err := a.Resize(&s, 64, 32); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	defer a.Release(&s)
	FillGradient(&s, 0, 0)
	if p, _ := s.Pixel(63, 31); p != 31<<8|63 {
		t.Fatalf("Pixel(63, 31) = %#x, want %#x", p, 31<<8|63)
	}
}
