package hal

import "testing"

func TestRingReaderLoops(t *testing.T) {
	r := &ringReader{buf: []byte{1, 2, 3}}
	p := make([]byte, 7)
	n, err := r.Read(p)
	if err != nil || n != 7 {
		t.Fatalf("Read() = %d, %v, want 7, nil", n, err)
	}
	if want := []byte{1, 2, 3, 1, 2, 3, 1}; string(p) != string(want) {
		t.Fatalf("Read() = %v, want %v", p, want)
	}
	n, _ = r.Read(p[:2])
	if n != 2 || p[0] != 2 || p[1] != 3 {
		t.Fatalf("second Read() = %v, want [2 3]", p[:2])
	}
}

func TestRingReaderEmptyIsSilence(t *testing.T) {
	r := &ringReader{}
	p := []byte{9, 9, 9}
	n, err := r.Read(p)
	if err != nil || n != 3 || p[0]|p[1]|p[2] != 0 {
		t.Fatalf("Read() = %d, %v, %v, want 3 zero bytes", n, err, p)
	}
}
