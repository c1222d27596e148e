// Package addrspace ties a page table to its three segments (code,
// data, stack) and the coremap it draws frames from, and is the
// concrete coremap.Owner every resident frame in a user address space
// points back to. Grounded on original_source/kern/vm/addrspace.c's
// as_create/as_copy/as_destroy/as_define_region/as_define_stack/
// as_get_segment, with as_activate's "invalidate every TLB entry on
// switch" folded into Activate.
package addrspace

import (
	"github.com/AngeloCiminos317631/OS161-Project-c1/coremap"
	"github.com/AngeloCiminos317631/OS161-Project-c1/pagetable"
	"github.com/AngeloCiminos317631/OS161-Project-c1/segment"
	"github.com/AngeloCiminos317631/OS161-Project-c1/tlb"
)

// USERSTACK is the fixed top-of-stack virtual address, matching the
// reference kernel's USERSTACK constant.
const USERSTACK = uintptr(0x80000000)

// StackPages is the fixed number of pages reserved for the stack
// segment (VMC1_STACKPAGES in the reference kernel): stack growth
// beyond this is a BadAddress fault, not dynamic extension, per the
// design note's fixed-region stack growth decision.
const StackPages = 18

// segIndex names the three region slots, mirroring as_define_region's
// seg_n parameter (0=code, 1=data) plus a slot for the stack.
type segIndex int

const (
	segCode segIndex = iota
	segData
	segStack
)

// AddressSpace is one process's virtual memory: three segments sharing
// one page table, allocating frames from a coremap shared across every
// address space in the system.
type AddressSpace struct {
	segs [3]segment.Descriptor
	have [3]bool

	pt  *pagetable.Table
	cm  *coremap.Coremap
	tlb *tlb.Helper
}

// Create returns an address space with an empty page table, backed by
// the given coremap and TLB helper. Both are shared system-wide
// singletons, not owned by the address space.
func Create(cm *coremap.Coremap, t *tlb.Helper) *AddressSpace {
	return &AddressSpace{pt: pagetable.New(), cm: cm, tlb: t}
}

// Copy returns a child address space with the same segment descriptors
// (sharing the parent's image handles, never its frames) but a fresh,
// empty page table: every page faults in again on first touch. This
// resolves the as_copy open question: no copy-on-write, no
// aliased page table, matching design note §9's explicit deferral of
// COW to future work.
func (a *AddressSpace) Copy() *AddressSpace {
	child := Create(a.cm, a.tlb)
	child.segs = a.segs
	child.have = a.have
	return child
}

// Destroy frees every resident frame still held by this address
// space's page table. Swap slots referenced by swapped entries are not
// released here; they are reclaimed individually the next time they
// are read back in, mirroring the reference's decision to let
// swap_shutdown own swap-file lifetime rather than per-address-space
// teardown.
func (a *AddressSpace) Destroy() {
	a.pt.Destroy(a.cm)
}

// Activate invalidates every TLB entry, the handler this subsystem
// uses in place of address-space-ID tagging: without ASIDs, a stale
// entry from the previous address space must never survive a switch.
func (a *AddressSpace) Activate() {
	a.tlb.InvalidateAll()
}

// Deactivate is a placement for symmetry with Activate; single-CPU,
// single-address-space-at-a-time execution needs no action here.
func (a *AddressSpace) Deactivate() {}

// DefineCodeSegment and DefineDataSegment set up the two image-backed
// regions, mirroring as_define_region's seg_n in {0,1}.
func (a *AddressSpace) DefineCodeSegment(d segment.Descriptor) {
	a.segs[segCode], a.have[segCode] = d, true
}

func (a *AddressSpace) DefineDataSegment(d segment.Descriptor) {
	a.segs[segData], a.have[segData] = d, true
}

// DefineStack installs the fixed-size, zero-fill-only stack region
// below USERSTACK and returns the initial user stack pointer.
func (a *AddressSpace) DefineStack() uintptr {
	a.segs[segStack] = segment.DefineStack(USERSTACK, StackPages)
	a.have[segStack] = true
	return USERSTACK
}

// PrepareLoad and CompleteLoad bracket segment loading. Neither needs
// to do anything in this design: frames are demand-paged in by the
// fault handler rather than eagerly loaded, so there is nothing to
// prepare or finalize beyond what DefineCodeSegment/DefineDataSegment
// already recorded.
func (a *AddressSpace) PrepareLoad() error  { return nil }
func (a *AddressSpace) CompleteLoad() error { return nil }

// Segment returns the segment containing va, mirroring
// as_get_segment's three-way range check.
func (a *AddressSpace) Segment(va uintptr) (*segment.Descriptor, bool) {
	for i := range a.segs {
		if !a.have[i] {
			continue
		}
		if a.segs[i].Contains(va) {
			return &a.segs[i], true
		}
	}
	return nil, false
}

// PageTable exposes the address space's page table to the fault
// handler.
func (a *AddressSpace) PageTable() *pagetable.Table { return a.pt }

// Coremap exposes the shared physical-frame allocator this address
// space draws from.
func (a *AddressSpace) Coremap() *coremap.Coremap { return a.cm }

// TLB exposes the shared TLB helper.
func (a *AddressSpace) TLB() *tlb.Helper { return a.tlb }

// Evict implements coremap.Owner: the coremap has already written this
// frame's contents to swapOffset; Evict completes the three-step
// ordering rule by marking the page table entry swapped and removing
// any stale TLB translation for vaddr.
func (a *AddressSpace) Evict(vaddr uintptr, swapOffset int64) {
	a.pt.SetOffset(vaddr, swapOffset)
	a.tlb.RemoveByVA(vaddr)
}

var _ coremap.Owner = (*AddressSpace)(nil)
