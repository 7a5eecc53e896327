//go:build !unix && !windows

package hal

type pageMemory = HeapMemory
