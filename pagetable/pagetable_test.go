package pagetable

import (
	"testing"

	"github.com/AngeloCiminos317631/OS161-Project-c1/defs"
)

func TestNewEntriesUnmapped(t *testing.T) {
	pt := New()
	va := uintptr(0x00400000)
	if _, ok := pt.GetPA(va); ok {
		t.Fatalf("fresh table: GetPA(%#x) resident, want unmapped", va)
	}
	if off := pt.GetOffset(va); off != -1 {
		t.Fatalf("fresh table: GetOffset(%#x) = %d, want -1", va, off)
	}
	if pt.Resident(va) || pt.Swapped(va) {
		t.Fatalf("fresh table: Resident/Swapped both false expected")
	}
}

func TestSetPAMapUnmapRoundTrip(t *testing.T) {
	pt := New()
	va := uintptr(0x00401000)
	pt.SetPA(va, defs.PhysAddr(0x2000))

	pa, ok := pt.GetPA(va)
	if !ok || pa != defs.PhysAddr(0x2000) {
		t.Fatalf("GetPA(%#x) = (%v, %v), want (0x2000, true)", va, pa, ok)
	}
	if !pt.Resident(va) {
		t.Fatalf("Resident(%#x) = false, want true", va)
	}
	if pt.Swapped(va) {
		t.Fatalf("Swapped(%#x) = true, want false", va)
	}
}

func TestSetOffsetClearsResident(t *testing.T) {
	pt := New()
	va := uintptr(0x00402000)
	pt.SetPA(va, defs.PhysAddr(0x3000))
	pt.SetOffset(va, 4096)

	if pa, ok := pt.GetPA(va); ok || pa != defs.PFNNone {
		t.Fatalf("GetPA(%#x) after SetOffset = (%v, %v), want (PFNNone, false)", va, pa, ok)
	}
	if off := pt.GetOffset(va); off != 4096 {
		t.Fatalf("GetOffset(%#x) = %d, want 4096", va, off)
	}
	if pt.Resident(va) == pt.Swapped(va) {
		t.Fatalf("resident/swapped must be mutually exclusive")
	}
}

func TestSetPAAfterSwapClearsOffset(t *testing.T) {
	pt := New()
	va := uintptr(0x00403000)
	pt.SetOffset(va, 8192)
	pt.SetPA(va, defs.PhysAddr(0x5000))

	if off := pt.GetOffset(va); off != -1 {
		t.Fatalf("GetOffset after re-residency = %d, want -1", off)
	}
	if !pt.Resident(va) {
		t.Fatalf("expected resident after SetPA following a swap")
	}
}

func TestSetOffsetNegativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("SetOffset(-1) did not panic")
		}
	}()
	New().SetOffset(0x1000, -1)
}

type fakeFreer struct {
	freed []defs.PhysAddr
}

func (f *fakeFreer) PageFree(pa defs.PhysAddr) { f.freed = append(f.freed, pa) }

func TestDestroyFreesOnlyResidentFrames(t *testing.T) {
	pt := New()
	pt.SetPA(0x00400000, defs.PhysAddr(0x1000))
	pt.SetPA(0x00401000, defs.PhysAddr(0x2000))
	pt.SetOffset(0x00500000, 4096) // swapped: must NOT be freed here

	freer := &fakeFreer{}
	pt.Destroy(freer)

	if len(freer.freed) != 2 {
		t.Fatalf("Destroy freed %d frames, want 2 (swapped entries excluded)", len(freer.freed))
	}
}

func TestCrossOuterBoundary(t *testing.T) {
	pt := New()
	// Two VAs that land in different outer-table slots, spec's 10/10/12 split:
	// bit 22 flips the outer index.
	lo := uintptr(0x00000000)
	hi := uintptr(1) << (innerShift + innerBits)
	pt.SetPA(lo, defs.PhysAddr(0x1000))
	pt.SetPA(hi, defs.PhysAddr(0x2000))

	if pa, ok := pt.GetPA(lo); !ok || pa != defs.PhysAddr(0x1000) {
		t.Fatalf("GetPA(lo) = (%v,%v)", pa, ok)
	}
	if pa, ok := pt.GetPA(hi); !ok || pa != defs.PhysAddr(0x2000) {
		t.Fatalf("GetPA(hi) = (%v,%v)", pa, ok)
	}
}
