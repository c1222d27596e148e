// Package host declares the narrow interfaces through which the virtual
// memory core consumes everything the spec treats as an external
// collaborator: the physical-memory bump allocator, the software TLB's
// hardware read/write/probe primitives, the interrupt-priority bracket,
// and file-backed images. The interfaces name the contracts the rest of
// the subsystem is built against, the same way the teacher names
// fs.Disk_i, fs.Blockmem_i and mem.Page_i instead of depending on
// concrete types; SimRAM, SimTLB and SimIPL are in-process
// implementations of them for tests and cmd/vmdemo.
package host

import (
	"io"

	"github.com/AngeloCiminos317631/OS161-Project-c1/defs"
)

// RAM is the physical-memory bump allocator consumed by the coremap,
// generalizing ram_getsize()/ram_stealmem() plus the teacher's
// Physmem.Dmap direct map. StealRam returns the physical address of n
// contiguous, never-before-allocated frames, or 0 if the bump region is
// exhausted. Bytes returns a direct-mapped, page-sized-or-larger slice
// backing the frame at pa, the same role mem.Physmem.Dmap plays for the
// teacher's hardware-walked pmap.
type RAM interface {
	Size() uintptr
	StealRam(n int) uintptr
	Bytes(pa defs.PhysAddr, n int) []byte
}

// TLBHardware is the CPU-specific TLB read/write/probe primitive the
// fault handler and the tlb package drive. Indices run [0, N).
type TLBHardware interface {
	N() int
	Read(i int) (hi, lo uint32)
	Write(hi, lo uint32, i int)
	Probe(hi, lo uint32) int
}

// IPL brackets TLB manipulation at the highest interrupt priority level.
// Raise returns a function that restores the previous level; callers are
// expected to `defer restore()`.
type IPL interface {
	Raise() (restore func())
}

// Image is the executable or swap backing file collaborator: absolute
// offset positioned I/O, exactly the "vectored-I/O descriptor" of the
// spec's external interfaces. *os.File satisfies this directly.
type Image interface {
	io.ReaderAt
}

// SwapFile is the swap manager's backing store: read and write at an
// absolute, page-aligned offset. *os.File satisfies this directly.
type SwapFile interface {
	io.ReaderAt
	io.WriterAt
}
