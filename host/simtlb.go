package host

// SimTLB is an in-process stand-in for the CPU's hardware TLB array,
// used by tests and cmd/vmdemo. Entries are plain (hi, lo) uint32 pairs
// with no hardware semantics attached; the tlb package defines what the
// bits mean.
type SimTLB struct {
	entries []struct{ hi, lo uint32 }
}

// NewSimTLB allocates a TLB with n entries, all zeroed (invalid, by the
// tlb package's own encoding).
func NewSimTLB(n int) *SimTLB {
	return &SimTLB{entries: make([]struct{ hi, lo uint32 }, n)}
}

func (s *SimTLB) N() int { return len(s.entries) }

func (s *SimTLB) Read(i int) (hi, lo uint32) {
	e := s.entries[i]
	return e.hi, e.lo
}

func (s *SimTLB) Write(hi, lo uint32, i int) {
	s.entries[i].hi = hi
	s.entries[i].lo = lo
}

// Probe returns the index of the entry whose hi matches, ignoring lo,
// or -1 if none matches, mirroring the MIPS tlb_probe(ehi, 0) idiom
// used throughout original_source to look a page up by virtual address
// alone.
func (s *SimTLB) Probe(hi, lo uint32) int {
	_ = lo
	for i, e := range s.entries {
		if e.hi == hi {
			return i
		}
	}
	return -1
}

// SimIPL is a no-op interrupt-priority bracket: there is no real
// interrupt controller in a hosted Go process, so Raise only documents
// where the real kernel would disable interrupts.
type SimIPL struct{}

func (SimIPL) Raise() func() { return func() {} }
