// Package pagetable implements the two-level per-process page table:
// an outer array of fixed length whose entries lazily own an inner
// array, translating a virtual address into a resident frame, a swap
// offset, or neither. Grounded on original_source/kern/include/pt.h's
// 10/10/12 split (outer/inner/offset) and pt.c's lazy inner allocation,
// generalized to a tagged-variant entry per the design note that calls
// for resident/swapped to be a sum type rather than parallel fields
// guarded by convention.
package pagetable

import "github.com/AngeloCiminos317631/OS161-Project-c1/defs"

const (
	outerBits = 10
	innerBits = 10

	// NOuter and NInner are the outer/inner table fanout (1024/1024).
	NOuter = 1 << outerBits
	NInner = 1 << innerBits

	innerShift = defs.PageShift
	outerShift = innerShift + innerBits

	outerMask = uintptr(NOuter-1) << outerShift
	innerMask = uintptr(NInner-1) << innerShift
)

func outerIndex(va uintptr) int { return int((va & outerMask) >> outerShift) }
func innerIndex(va uintptr) int { return int((va & innerMask) >> innerShift) }

// state tags what an entry currently holds. resident and swapped are
// mutually exclusive, enforced by construction rather than by callers
// remembering to keep two fields in sync.
type state int

const (
	unmapped state = iota
	resident
	swapped
)

type entry struct {
	st         state
	pfn        defs.PhysAddr
	swapOffset int64
}

func emptyEntry() entry {
	return entry{st: unmapped, pfn: defs.PFNNone, swapOffset: -1}
}

// Table is a two-level page table. The zero value is not usable; use
// New.
type Table struct {
	outer [NOuter]*[NInner]entry
}

// New allocates an empty page table; every outer slot starts invalid.
func New() *Table {
	return &Table{}
}

// FrameFreer is the narrow capability Destroy needs to return resident
// frames to the physical allocator. *coremap.Coremap satisfies this
// structurally; pagetable never imports coremap.
type FrameFreer interface {
	PageFree(pa defs.PhysAddr)
}

// Destroy frees every resident frame referenced by a valid inner entry
// and drops both levels of the table. Swapped entries are not freed
// here; their swap slot is released by the swap manager separately.
func (t *Table) Destroy(freer FrameFreer) {
	for _, inner := range t.outer {
		if inner == nil {
			continue
		}
		for _, e := range inner {
			if e.st == resident && e.pfn != defs.PFNNone {
				freer.PageFree(e.pfn)
			}
		}
	}
	t.outer = [NOuter]*[NInner]entry{}
}

func (t *Table) lookup(va uintptr) (*entry, bool) {
	inner := t.outer[outerIndex(va)]
	if inner == nil {
		return nil, false
	}
	return &inner[innerIndex(va)], true
}

func (t *Table) lookupOrCreate(va uintptr) *entry {
	oi := outerIndex(va)
	if t.outer[oi] == nil {
		fresh := new([NInner]entry)
		for i := range fresh {
			fresh[i] = emptyEntry()
		}
		t.outer[oi] = fresh
	}
	return &t.outer[oi][innerIndex(va)]
}

// GetPA returns the resident frame for va, or (PFNNone, false) if va is
// unmapped or swapped.
func (t *Table) GetPA(va uintptr) (defs.PhysAddr, bool) {
	e, ok := t.lookup(va)
	if !ok || e.st != resident {
		return defs.PFNNone, false
	}
	return e.pfn, true
}

// SetPA lazily allocates the inner array if absent, marks va resident
// and records pfn. It clears any prior swap offset: resident and
// swapped are exclusive.
func (t *Table) SetPA(va uintptr, pfn defs.PhysAddr) {
	e := t.lookupOrCreate(va)
	e.st = resident
	e.pfn = pfn
	e.swapOffset = -1
}

// GetOffset returns the swap offset for va, or -1 if va is unmapped or
// resident.
func (t *Table) GetOffset(va uintptr) int64 {
	e, ok := t.lookup(va)
	if !ok || e.st != swapped {
		return -1
	}
	return e.swapOffset
}

// SetOffset marks va as swapped at the given offset, lazily allocating
// the inner array if needed, and clears the resident frame.
func (t *Table) SetOffset(va uintptr, off int64) {
	if off < 0 {
		panic("pagetable: negative swap offset")
	}
	e := t.lookupOrCreate(va)
	e.st = swapped
	e.pfn = defs.PFNNone
	e.swapOffset = off
}

// Resident reports whether va currently carries a valid physical frame.
func (t *Table) Resident(va uintptr) bool {
	_, ok := t.GetPA(va)
	return ok
}

// Swapped reports whether va's contents currently live in the swap file.
func (t *Table) Swapped(va uintptr) bool {
	return t.GetOffset(va) >= 0
}
