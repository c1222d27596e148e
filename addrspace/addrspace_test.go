package addrspace

import (
	"testing"

	"github.com/AngeloCiminos317631/OS161-Project-c1/coremap"
	"github.com/AngeloCiminos317631/OS161-Project-c1/host"
	"github.com/AngeloCiminos317631/OS161-Project-c1/segment"
	"github.com/AngeloCiminos317631/OS161-Project-c1/stats"
	"github.com/AngeloCiminos317631/OS161-Project-c1/tlb"
)

func newFixture(t *testing.T) (*coremap.Coremap, *tlb.Helper, *host.SimTLB) {
	t.Helper()
	st := stats.New()
	hw := host.NewSimTLB(4)
	helper := tlb.New(hw, host.SimIPL{}, st)
	cm := coremap.Bootstrap(host.NewSimRAM(8), noopSwap{})
	return cm, helper, hw
}

type noopSwap struct{}

func (noopSwap) Out(data []byte) int64 { return 0 }

func TestSegmentLookupAndBoundary(t *testing.T) {
	cm, helper, _ := newFixture(t)
	as := Create(cm, helper)
	as.DefineCodeSegment(segment.Descriptor{Vaddr: 0x00400000, Memsz: 0x2000, Permission: segment.PermRead | segment.PermExecute})
	as.DefineStack()

	if _, ok := as.Segment(0x00400000); !ok {
		t.Fatalf("Segment(start of code) not found")
	}
	if _, ok := as.Segment(0x00402000); ok {
		t.Fatalf("Segment(vaddr+memsz) found, want it to belong to no segment here")
	}
	sp := as.DefineStack()
	if sp != USERSTACK {
		t.Fatalf("DefineStack() = %#x, want USERSTACK", sp)
	}
	if _, ok := as.Segment(USERSTACK - 1); !ok {
		t.Fatalf("Segment(USERSTACK-1) not found in stack region")
	}
}

func TestCopyIsFreshEmptyPageTable(t *testing.T) {
	cm, helper, _ := newFixture(t)
	parent := Create(cm, helper)
	parent.DefineCodeSegment(segment.Descriptor{Vaddr: 0x00400000, Memsz: 0x1000, Permission: segment.PermRead})
	parent.PageTable().SetPA(0x00400000, 0x1000)

	child := parent.Copy()
	if child.PageTable().Resident(0x00400000) {
		t.Fatalf("child page table aliases the parent's resident mapping")
	}
	if _, ok := child.Segment(0x00400000); !ok {
		t.Fatalf("child lost the parent's segment descriptor")
	}
}

func TestEvictUpdatesPageTableAndTLB(t *testing.T) {
	cm, helper, hw := newFixture(t)
	as := Create(cm, helper)
	as.PageTable().SetPA(0x00400000, 0x1000)
	helper.WriteEntry(0x00400000, 0x1000, false)

	as.Evict(0x00400000, 4096)

	if as.PageTable().Resident(0x00400000) {
		t.Fatalf("Evict left the page table entry resident")
	}
	if off := as.PageTable().GetOffset(0x00400000); off != 4096 {
		t.Fatalf("Evict recorded offset %d, want 4096", off)
	}
	if idx := hw.Probe(uint32(0x00400000), 0); idx >= 0 {
		_, lo := hw.Read(idx)
		if tlb.Lo(lo)&tlb.Valid != 0 {
			t.Fatalf("Evict left a valid TLB entry for the evicted VA")
		}
	}
}

func TestActivateInvalidatesTLB(t *testing.T) {
	cm, helper, hw := newFixture(t)
	as := Create(cm, helper)
	helper.WriteEntry(0x00400000, 0x1000, false)

	as.Activate()

	for i := 0; i < hw.N(); i++ {
		_, lo := hw.Read(i)
		if tlb.Lo(lo)&tlb.Valid != 0 {
			t.Fatalf("entry %d still valid after Activate", i)
		}
	}
}
