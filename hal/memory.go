package hal

import (
	"errors"
	"fmt"
)

var errInvalidCommit = errors.New("memory: invalid commit size")

// HeapMemory commits blocks from the Go heap. It backs platforms without a
// page allocator and tests.
type HeapMemory struct{}

func (HeapMemory) Commit(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", errInvalidCommit, size)
	}
	return make([]byte, size), nil
}

func (HeapMemory) Release([]byte) error { return nil }

// PageMemory returns the operating system's anonymous page allocator.
func PageMemory() MemoryProvider {
	return pageMemory{}
}
