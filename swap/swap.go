// Package swap implements the fixed-capacity swap-file manager: a bag
// of page-sized slots backed by one file, identified by the byte offset
// swap_out hands back (spec's resolution of the reference source's VA-
// search ambiguity, design note §9). Grounded on
// original_source/kern/vm/swapfile.c's flat slot array scanned linearly
// for a free slot, generalized to resolve "VA" aliasing by never
// indexing slots by anything but their offset.
package swap

import (
	"fmt"
	"sync"

	"github.com/AngeloCiminos317631/OS161-Project-c1/defs"
	"github.com/AngeloCiminos317631/OS161-Project-c1/host"
	"github.com/AngeloCiminos317631/OS161-Project-c1/stats"
)

// DefaultPath and DefaultBytes match the spec's literal 9 MiB example
// and original_source/kern/include/swapfile.h's FILE_SIZE.
const (
	DefaultPath  = "SWAPFILE"
	DefaultBytes = 9 << 20
)

// Manager is a fixed-size bag of defs.PageSize slots backed by a single
// file. All I/O is page-aligned and page-sized. One lock serializes
// slot bookkeeping; the file read/write itself runs with the lock
// released once the slot has been reserved, matching the spec's
// ordering for swap_out and the single-owner-per-slot invariant.
type Manager struct {
	mu    sync.Mutex
	free  []bool
	file  host.SwapFile
	nslot int
	st    *stats.Stats
}

// Init wraps an already-open backing file and marks every slot free.
// It does not open or create the file itself; file must already be
// sized to hold totalBytes/defs.PageSize slots; callers
// typically pass an *os.File truncated to DefaultBytes. st receives the
// SwapFileWrite count on every successful Out; callers share the same
// *stats.Stats across swap, tlb and vmfault so the ten counters stay in
// one bank.
func Init(file host.SwapFile, totalBytes int, st *stats.Stats) *Manager {
	n := totalBytes / defs.PageSize
	if n <= 0 {
		panic("swap: backing file too small for even one slot")
	}
	m := &Manager{file: file, nslot: n, free: make([]bool, n), st: st}
	for i := range m.free {
		m.free[i] = true
	}
	return m
}

// NumSlots reports the total slot count, used by tests to verify the
// free+used invariant.
func (m *Manager) NumSlots() int { return m.nslot }

// Out writes the page-sized frame at data (len(data) must equal
// defs.PageSize) into the first free slot and returns its byte offset.
// It panics if no slot is free, matching swapfile.c's "Out of swap
// space" panic: swap exhaustion is fatal, not recoverable.
func (m *Manager) Out(data []byte) int64 {
	if len(data) != defs.PageSize {
		panic("swap: Out requires exactly one page of data")
	}
	m.mu.Lock()
	idx := -1
	for i, free := range m.free {
		if free {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		panic(fmt.Sprintf("swap: out of swap space (%d slots all used)", m.nslot))
	}
	m.free[idx] = false
	m.mu.Unlock()

	off := int64(idx) * defs.PageSize
	n, err := m.file.WriteAt(data, off)
	if err != nil || n != len(data) {
		panic(fmt.Sprintf("swap: short write at offset %d: %v", off, err))
	}
	m.st.Inc(stats.SwapFileWrite)
	return off
}

// In reads the page at offset into dst (len(dst) must equal
// defs.PageSize) and releases the slot. A short read or I/O error is
// fatal: swap data corruption cannot be recovered from.
func (m *Manager) In(dst []byte, offset int64) {
	if len(dst) != defs.PageSize {
		panic("swap: In requires exactly one page of data")
	}
	if offset < 0 || offset%defs.PageSize != 0 {
		panic("swap: misaligned offset")
	}
	idx := int(offset / defs.PageSize)
	if idx < 0 || idx >= m.nslot {
		panic("swap: offset out of range")
	}

	n, err := m.file.ReadAt(dst, offset)
	if err != nil || n != len(dst) {
		panic(fmt.Sprintf("swap: short read at offset %d: %v", offset, err))
	}

	m.mu.Lock()
	if m.free[idx] {
		m.mu.Unlock()
		panic("swap: double free of slot")
	}
	m.free[idx] = true
	m.mu.Unlock()
}

// FreeCount returns the number of currently unused slots.
func (m *Manager) FreeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, f := range m.free {
		if f {
			n++
		}
	}
	return n
}
