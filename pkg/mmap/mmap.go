// Package mmap maps a page of /dev/mem and exposes word-sized accessors
// into it, the shared primitive both the panel driver's memory-mapped
// output port and any future PIO-style register access build on.
package mmap

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// MemoryMap is a page-aligned mapping of physical memory reached through
// /dev/mem.
type MemoryMap struct {
	mapping []byte // the full page-aligned mapping, needed to unmap
	region  []byte // mapping re-sliced to start at the requested address
}

// New maps the page(s) covering [addr, addr+size) and returns a handle
// into it. addr need not be page-aligned; the mapping itself always is.
func New(addr, size uintptr) (*MemoryMap, error) {
	f, err := os.OpenFile("/dev/mem", os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap: open /dev/mem: %w", err)
	}
	defer f.Close()

	pageSize := uintptr(os.Getpagesize())
	pageBase := addr &^ (pageSize - 1)
	mapSize := int(addr-pageBase) + int(size)

	region, err := unix.Mmap(int(f.Fd()), int64(pageBase), mapSize,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap: map 0x%x: %w", addr, err)
	}

	return &MemoryMap{mapping: region, region: region[addr-pageBase:]}, nil
}

// Close unmaps the region.
func (m *MemoryMap) Close() error {
	return unix.Munmap(m.mapping)
}

// Read16 reads a 16-bit value at offset.
func (m *MemoryMap) Read16(offset uintptr) uint16 {
	return *(*uint16)(unsafe.Pointer(&m.region[offset]))
}

// Write16 writes a 16-bit value at offset.
func (m *MemoryMap) Write16(offset uintptr, value uint16) {
	*(*uint16)(unsafe.Pointer(&m.region[offset])) = value
}

// Read32 reads a 32-bit value at offset.
func (m *MemoryMap) Read32(offset uintptr) uint32 {
	return *(*uint32)(unsafe.Pointer(&m.region[offset]))
}

// Write32 writes a 32-bit value at offset.
func (m *MemoryMap) Write32(offset uintptr, value uint32) {
	*(*uint32)(unsafe.Pointer(&m.region[offset])) = value
}
