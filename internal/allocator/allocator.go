// Copyright 2018 Aleksandr Demakin. All rights reserved.

// Package allocator provides unsafe pointer plumbing for raw syscalls.
package allocator

import (
	"runtime"
	"unsafe"
)

// ByteSliceData returns a pointer to the data of the given byte slice.
// The result is nil for a nil or empty slice.
func ByteSliceData(slice []byte) unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(slice))
}

// Use ensures that the object pointed to is kept live until this point,
// so the collector cannot reclaim it while the kernel still uses the memory.
func Use(p unsafe.Pointer) {
	runtime.KeepAlive(p)
}
