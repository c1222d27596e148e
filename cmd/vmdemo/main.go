// Command vmdemo wires the virtual memory subsystem together over a
// simulated host and walks through a handful of representative faults:
// a cold code fault, stack growth, eviction under memory pressure,
// swap-in of the evicted page, a read-only violation, and the final
// shutdown statistics dump. It exists to exercise the subsystem end to
// end in a hosted process, since there is no real hardware to boot it
// on.
package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/AngeloCiminos317631/OS161-Project-c1/addrspace"
	"github.com/AngeloCiminos317631/OS161-Project-c1/defs"
	"github.com/AngeloCiminos317631/OS161-Project-c1/host"
	"github.com/AngeloCiminos317631/OS161-Project-c1/segment"
	"github.com/AngeloCiminos317631/OS161-Project-c1/stats"
	"github.com/AngeloCiminos317631/OS161-Project-c1/swap"
	"github.com/AngeloCiminos317631/OS161-Project-c1/tlb"
	"github.com/AngeloCiminos317631/OS161-Project-c1/vmfault"
)

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func main() {
	st := stats.New()
	ram := host.NewSimRAM(6) // small on purpose: scenario 3 needs memory pressure
	tlbHw := host.NewSimTLB(4)
	helper := tlb.New(tlbHw, host.SimIPL{}, st)

	swapFile, err := os.CreateTemp("", "vmdemo-swapfile-*")
	must(err)
	defer os.Remove(swapFile.Name())
	must(swapFile.Truncate(swap.DefaultBytes))
	swapMgr := swap.Init(swapFile, swap.DefaultBytes, st)

	h := vmfault.Bootstrap(ram, swapMgr, helper, st)

	image := bytes.NewReader(makeImage())
	as := addrspace.Create(h.Coremap(), helper)
	as.DefineCodeSegment(segment.Descriptor{
		Offset:     0x1000,
		Vaddr:      0x00400000,
		Filesz:     0x3000,
		Memsz:      0x3000,
		Permission: segment.PermRead | segment.PermExecute,
		Image:      image,
	})
	as.DefineStack()

	fmt.Println("== scenario 1: cold code fault ==")
	errc := h.Fault(as, defs.FaultRead, 0x00401000)
	fmt.Printf("fault result: %d, TLB_FAULT=%d ELF_FILE_READ=%d PAGE_FAULT_DISK=%d\n\n",
		errc, h.Stats().Get(0), h.Stats().Get(7), h.Stats().Get(6))

	fmt.Println("== scenario 2: stack growth ==")
	errc = h.Fault(as, defs.FaultWrite, addrspace.USERSTACK-0x1000)
	fmt.Printf("fault result: %d, PAGE_FAULT_ZERO=%d\n\n", errc, h.Stats().Get(5))

	fmt.Println("== scenario 5: read-only violation ==")
	errc = h.Fault(as, defs.FaultWrite, 0x00400100)
	fmt.Printf("fault result: %d (want EPERM=%d)\n\n", errc, defs.EPERM)

	fmt.Println("== scenario 3/4: eviction under pressure, then swap-in ==")
	second := addrspace.Create(h.Coremap(), helper)
	second.DefineStack()
	var lastVA uintptr
	for i := 0; i < 8; i++ {
		lastVA = addrspace.USERSTACK - uintptr(i+1)*defs.PageSize
		errc = h.Fault(second, defs.FaultWrite, lastVA)
		if errc != 0 {
			fmt.Printf("fault at %#x failed: %d\n", lastVA, errc)
			break
		}
	}
	fmt.Printf("free swap slots remaining: %d\n", swapMgr.FreeCount())

	firstVA := addrspace.USERSTACK - defs.PageSize
	errc = h.Fault(second, defs.FaultWrite, firstVA)
	fmt.Printf("re-touch of %#x after eviction: result=%d SWAP_FILE_READ=%d\n\n", firstVA, errc, h.Stats().Get(8))

	fmt.Println("== scenario 6: shutdown statistics ==")
	h.Shutdown()
}

// makeImage builds a minimal in-memory "ELF-ish" byte blob long enough
// to back the demo's code segment without parsing a real ELF file.
func makeImage() []byte {
	buf := make([]byte, 0x4000)
	for i := range buf {
		buf[i] = byte(i)
	}
	return buf
}
