// Package vmfault is the fault handler: the orchestrator that ties the
// coremap, page table, segment loader, swap manager, TLB helper and
// statistics counters together into the single entry point the rest of
// the kernel calls on every TLB miss. Grounded on
// original_source/kern/vm/vmc1.c's vm_fault, whose classify/lookup/
// allocate/load/install sequence and exact statistics increments are
// reproduced here; the round-robin RR victim this subsystem's TLB
// helper owns replaces vmc1.c's file-local tlb_get_rr_victim.
package vmfault

import (
	"fmt"

	"github.com/AngeloCiminos317631/OS161-Project-c1/addrspace"
	"github.com/AngeloCiminos317631/OS161-Project-c1/coremap"
	"github.com/AngeloCiminos317631/OS161-Project-c1/defs"
	"github.com/AngeloCiminos317631/OS161-Project-c1/host"
	"github.com/AngeloCiminos317631/OS161-Project-c1/segment"
	"github.com/AngeloCiminos317631/OS161-Project-c1/stats"
	"github.com/AngeloCiminos317631/OS161-Project-c1/swap"
	"github.com/AngeloCiminos317631/OS161-Project-c1/tlb"
)

// Handler is the bootstrapped virtual memory subsystem: one coremap,
// one swap manager, one TLB helper and one statistics bank, shared
// across every address space in the (single-CPU) system.
type Handler struct {
	ram   host.RAM
	cm    *coremap.Coremap
	swap  *swap.Manager
	tlb   *tlb.Helper
	stats *stats.Stats
}

// Bootstrap wires the subsystem together, mirroring vm_bootstrap's
// coremap_init + init_statistics sequence. st is the same counter bank
// callers already handed to swap.Init and tlb.New, so every subsystem's
// increments land in one place.
func Bootstrap(ram host.RAM, sw *swap.Manager, t *tlb.Helper, st *stats.Stats) *Handler {
	return &Handler{
		ram:   ram,
		cm:    coremap.Bootstrap(ram, sw),
		swap:  sw,
		tlb:   t,
		stats: st,
	}
}

// Coremap exposes the shared frame allocator so callers can build
// address spaces against it.
func (h *Handler) Coremap() *coremap.Coremap { return h.cm }

// Stats exposes the statistics bank, mainly for tests.
func (h *Handler) Stats() *stats.Stats { return h.stats }

// Shutdown prints the consistency warnings and the final counter dump
// and deactivates the statistics bank, mirroring vm_shutdown's
// print_all_statistics tail call.
func (h *Handler) Shutdown() {
	for _, w := range h.stats.CheckConsistency() {
		fmt.Println("WARNING:", w)
	}
	fmt.Print(h.stats.Dump())
	h.stats.Shutdown()
}

// Fault resolves one TLB-miss fault for faultAddr in as. It implements
// the eight-step algorithm: classify, reject a missing address space,
// locate the owning segment, consult the page table for resident/
// swapped/cold-miss, enforce the coremap's eviction ordering
// (delegated to coremap.PageAlloc and addrspace.Evict), install the
// page-table entry, write the TLB entry, and restore interrupts (the
// last step lives inside tlb.Helper.WriteEntry's IPL bracket).
func (h *Handler) Fault(as *addrspace.AddressSpace, faultType defs.FaultType, faultAddr uintptr) defs.Err_t {
	switch faultType {
	case defs.FaultReadOnly:
		return defs.EPERM
	case defs.FaultRead, defs.FaultWrite:
	default:
		return defs.EINVAL
	}

	if as == nil {
		return defs.EFAULT
	}

	va := faultAddr &^ (defs.PageSize - 1)

	seg, ok := as.Segment(va)
	if !ok {
		return defs.EFAULT
	}
	if faultType == defs.FaultWrite && seg.Permission&segment.PermWrite == 0 && seg.Permission&segment.PermStack == 0 {
		return defs.EPERM
	}

	pt := as.PageTable()

	pa, resident := pt.GetPA(va)
	if resident {
		h.stats.Inc(stats.TLBReload)
	}
	offset := pt.GetOffset(va)

	isNewPage := false
	switch {
	case !resident && offset < 0:
		pa = h.cm.PageAlloc(as, va)
		pt.SetPA(va, pa)
		isNewPage = true

	case offset >= 0:
		pa = h.cm.PageAlloc(as, va)
		h.swap.In(h.ram.Bytes(pa, defs.PageSize), offset)
		h.stats.Inc(stats.SwapFileRead)
		h.stats.Inc(stats.PageFaultDisk)
		pt.SetPA(va, pa)
	}

	if isNewPage {
		dst := h.ram.Bytes(pa, defs.PageSize)
		if seg.Permission&segment.PermStack != 0 {
			for i := range dst {
				dst[i] = 0
			}
			h.stats.Inc(stats.PageFaultZero)
		} else {
			if errc := seg.LoadPage(dst, va); errc != 0 {
				return errc
			}
			h.stats.Inc(stats.ELFFileRead)
			h.stats.Inc(stats.PageFaultDisk)
		}
	}

	h.stats.Inc(stats.TLBFault)
	writable := seg.Permission&segment.PermWrite != 0 || seg.Permission&segment.PermStack != 0
	if h.tlb.WriteEntry(va, pa, writable) {
		h.stats.Inc(stats.TLBFaultReplace)
	} else {
		h.stats.Inc(stats.TLBFaultFree)
	}

	return 0
}

// TLBShootdown is the single-CPU stub: this design keeps no remote-CPU
// TLB invalidation path, matching original_source's vm_tlbshootdown,
// which panics rather than pretending to support one.
func (h *Handler) TLBShootdown() {
	panic("vmfault: TLB shootdown requested on a single-CPU design")
}
