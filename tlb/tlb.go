// Package tlb is the software TLB helper: installing a translation,
// probing for and invalidating one by virtual address, and sweeping the
// whole array. Grounded on original_source/kern/vm/vm_tlb.c's
// tlb_remove_by_va (probe-then-invalidate under a raised interrupt
// level); entries are only looked up by virtual address, never by
// physical frame. Fill-on-miss adds the round-robin victim slot the
// reference leaves to the MIPS tlb_random instruction, generalized here
// since host.TLBHardware has no hardware-random primitive to lean on.
package tlb

import (
	"github.com/AngeloCiminos317631/OS161-Project-c1/defs"
	"github.com/AngeloCiminos317631/OS161-Project-c1/host"
	"github.com/AngeloCiminos317631/OS161-Project-c1/stats"
)

// Entry flag bits packed into the low word handed to host.TLBHardware.
// These are this package's own encoding, not a real CPU's.
const (
	Valid Lo = 1 << iota
	Writable
)

// Lo is a TLB entry's low word: a page-aligned physical frame number
// plus flag bits.
type Lo uint32

// Helper drives a host.TLBHardware array under a host.IPL bracket.
type Helper struct {
	hw      host.TLBHardware
	ipl     host.IPL
	st      *stats.Stats
	current int // round-robin fill cursor, used only when every slot is valid
}

// New wraps a concrete TLB array and interrupt-level primitive. st
// receives the TLBInvalidate count on every sweep; callers share the
// same *stats.Stats across tlb, swap and vmfault so the ten counters
// stay in one bank.
func New(hw host.TLBHardware, ipl host.IPL, st *stats.Stats) *Helper {
	return &Helper{hw: hw, ipl: ipl, st: st}
}

func pageOf(va uintptr) uint32 { return uint32(va) &^ (defs.PageSize - 1) }

// InvalidateAll clears every entry, used on address-space activation
// (this subsystem keeps no per-address-space ASID tagging).
func (t *Helper) InvalidateAll() {
	restore := t.ipl.Raise()
	defer restore()
	for i := 0; i < t.hw.N(); i++ {
		t.hw.Write(0, 0, i)
	}
	t.st.Inc(stats.TLBInvalidate)
}

// RemoveByVA invalidates the entry mapping va, if any, and reports
// whether one was found.
func (t *Helper) RemoveByVA(va uintptr) bool {
	restore := t.ipl.Raise()
	defer restore()
	idx := t.hw.Probe(pageOf(va), 0)
	if idx < 0 {
		return false
	}
	t.hw.Write(0, 0, idx)
	return true
}

// WriteEntry installs a translation from va's page to pa, preferring an
// already-invalid slot and otherwise evicting the round-robin victim:
// a lone stale entry is never preferable to disturbing one still in
// use, but with every slot valid there is no better signal than
// rotation. It reports whether a live entry had to be replaced, so
// callers can distinguish a free-slot fill from a replacement for their
// own statistics.
func (t *Helper) WriteEntry(va uintptr, pa defs.PhysAddr, writable bool) (replaced bool) {
	restore := t.ipl.Raise()
	defer restore()

	hi := pageOf(va)
	lo := uint32(Valid) | uint32(pa)&^(defs.PageSize-1)
	if writable {
		lo |= uint32(Writable)
	}

	n := t.hw.N()
	for i := 0; i < n; i++ {
		_, elo := t.hw.Read(i)
		if Lo(elo)&Valid == 0 {
			t.hw.Write(hi, lo, i)
			return false
		}
	}

	idx := t.current
	t.current = (t.current + 1) % n
	t.hw.Write(hi, lo, idx)
	return true
}
