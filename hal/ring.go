package hal

import "sync"

// ringReader loops over a fixed byte block, the way a hardware secondary
// buffer is played back.
type ringReader struct {
	mu  sync.Mutex
	buf []byte
	pos int
}

func (r *ringReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.buf) == 0 {
		clear(p)
		return len(p), nil
	}
	n := 0
	for n < len(p) {
		c := copy(p[n:], r.buf[r.pos:])
		n += c
		r.pos += c
		if r.pos >= len(r.buf) {
			r.pos = 0
		}
	}
	return n, nil
}
