package hal

import (
	"errors"
	"testing"
)

func TestPageMemoryCommitRelease(t *testing.T) {
	mem := PageMemory()

	b, err := mem.Commit(64 * 48 * 4)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if len(b) != 64*48*4 {
		t.Fatalf("len(Commit()) = %d, want %d", len(b), 64*48*4)
	}
	for i := range b {
		if b[i] != 0 {
			t.Fatalf("Commit() byte %d = %d, want zeroed pages", i, b[i])
		}
		b[i] = byte(i)
	}
	if err := mem.Release(b); err != nil {
		t.Fatalf("Release: %v", err)
	}
}

func TestMemoryCommitRejectsEmpty(t *testing.T) {
	for _, mem := range []MemoryProvider{PageMemory(), HeapMemory{}} {
		if _, err := mem.Commit(0); !errors.Is(err, errInvalidCommit) {
			t.Fatalf("%T.Commit(0) err = %v, want errInvalidCommit", mem, err)
		}
	}
}

func TestMemoryReleaseEmpty(t *testing.T) {
	if err := PageMemory().Release(nil); err != nil {
		t.Fatalf("Release(nil) = %v, want nil", err)
	}
}
