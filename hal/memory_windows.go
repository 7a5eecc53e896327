//go:build windows

package hal

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// pageMemory commits pages with VirtualAlloc.
type pageMemory struct{}

func (pageMemory) Commit(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", errInvalidCommit, size)
	}
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		return nil, fmt.Errorf("VirtualAlloc %d bytes: %w", size, err)
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

func (pageMemory) Release(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if err := windows.VirtualFree(uintptr(unsafe.Pointer(&b[0])), 0, windows.MEM_RELEASE); err != nil {
		return fmt.Errorf("VirtualFree: %w", err)
	}
	return nil
}
