//go:build unix

package hal

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// pageMemory maps private anonymous pages.
type pageMemory struct{}

func (pageMemory) Commit(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", errInvalidCommit, size)
	}
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap %d bytes: %w", size, err)
	}
	return b, nil
}

func (pageMemory) Release(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if err := unix.Munmap(b); err != nil {
		return fmt.Errorf("munmap: %w", err)
	}
	return nil
}
