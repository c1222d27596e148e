// Package stats implements the ten named page-fault and TLB counters
// and their shutdown consistency checks. Grounded directly on
// original_source/kern/vm/statistics.c: same ten names and order, same
// spinlock-protected increment, same three consistency equalities
// checked at print time, ported here to return the warnings rather
// than print them, so tests can assert on them.
package stats

import (
	"fmt"
	"sync"
)

// Counter identifies one of the ten tracked events.
type Counter int

const (
	TLBFault Counter = iota
	TLBFaultFree
	TLBFaultReplace
	TLBInvalidate
	TLBReload
	PageFaultZero
	PageFaultDisk
	ELFFileRead
	SwapFileRead
	SwapFileWrite

	numCounters
)

var names = [numCounters]string{
	TLBFault:        "TLB Faults",
	TLBFaultFree:    "TLB Faults with Free",
	TLBFaultReplace: "TLB Faults with Replace",
	TLBInvalidate:   "TLB Invalidations",
	TLBReload:       "TLB Reloads",
	PageFaultZero:   "Page Faults (Zeroed)",
	PageFaultDisk:   "Page Faults (Disk)",
	ELFFileRead:     "Page Faults from ELF",
	SwapFileRead:    "Page Faults from Swapfile",
	SwapFileWrite:   "Swapfile Writes",
}

// Stats is the statistics subsystem: a fixed bank of counters guarded
// by one mutex, active from New until Shutdown has been called.
type Stats struct {
	mu       sync.Mutex
	counters [numCounters]uint64
	active   bool
}

// New returns an active counter bank, every counter at zero.
func New() *Stats {
	return &Stats{active: true}
}

// Inc increments one counter. Increments after Shutdown are silently
// ignored, matching increment_statistics's is_active guard.
func (s *Stats) Inc(c Counter) {
	s.mu.Lock()
	if s.active {
		s.counters[c]++
	}
	s.mu.Unlock()
}

// Get reads one counter's current value.
func (s *Stats) Get(c Counter) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[c]
}

// Dump returns every counter's name and value, one per line.
func (s *Stats) Dump() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := "VM STATISTICS:\n"
	for i, n := range names {
		out += fmt.Sprintf("%25s = %10d\n", n, s.counters[i])
	}
	return out
}

// CheckConsistency evaluates the three equalities the reference prints
// as warnings at shutdown and returns the ones that fail, empty if
// every counter is internally consistent:
//
//   - TLBFault == TLBFaultFree + TLBFaultReplace
//   - TLBFault == TLBReload + PageFaultZero + PageFaultDisk
//   - PageFaultDisk == ELFFileRead + SwapFileRead
func (s *Stats) CheckConsistency() []string {
	s.mu.Lock()
	c := s.counters
	s.mu.Unlock()

	var warnings []string
	if fr := c[TLBFaultFree] + c[TLBFaultReplace]; c[TLBFault] != fr {
		warnings = append(warnings, fmt.Sprintf(
			"TLB Faults (%d) != TLB Faults with Free + TLB Faults with Replace (%d)", c[TLBFault], fr))
	}
	if tpp := c[TLBReload] + c[PageFaultDisk] + c[PageFaultZero]; c[TLBFault] != tpp {
		warnings = append(warnings, fmt.Sprintf(
			"TLB Faults (%d) != TLB Reloads + Page Faults (Zeroed) + Page Faults (Disk) (%d)", c[TLBFault], tpp))
	}
	if es := c[ELFFileRead] + c[SwapFileRead]; c[PageFaultDisk] != es {
		warnings = append(warnings, fmt.Sprintf(
			"Page Faults (Disk) (%d) != ELF File reads + Swapfile reads (%d)", c[PageFaultDisk], es))
	}
	return warnings
}

// Shutdown deactivates the counter bank; subsequent Inc calls are
// no-ops.
func (s *Stats) Shutdown() {
	s.mu.Lock()
	s.active = false
	s.mu.Unlock()
}
