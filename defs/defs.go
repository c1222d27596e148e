// Package defs holds the error codes and fault-type constants shared by
// every package in the virtual-memory subsystem. It imports nothing else
// so that every other package may depend on it without risk of a cycle.
package defs

// PhysAddr is a page-aligned physical frame address. It is a distinct
// type from a plain uintptr so the two address spaces (virtual, used by
// callers of the fault handler, and physical, used inside the coremap
// and page table) can never be silently mixed up.
type PhysAddr uintptr

// PFNNone marks a page-table entry with no resident frame. Physical
// frame 0 is reserved (never handed to a user allocation, never chosen
// as a victim) so it doubles safely as the "not present" sentinel.
const PFNNone PhysAddr = 0

// PageShift/PageSize describe the machine's page geometry: 4 KiB pages.
const (
	PageShift = 12
	PageSize  = 1 << PageShift
)

// Err_t is a kernel-style signed error code. Zero means success.
type Err_t int

// Recoverable error codes returned from Fault and friends.
const (
	EFAULT Err_t = -1 /// no segment contains the faulting address, or no current address space
	ENOMEM Err_t = -2 /// no physical frame or swap slot available
	EINVAL Err_t = -3 /// fault_type is neither read nor write
	EIO    Err_t = -4 /// short read/write on the image or swap file
	ENOSPC Err_t = -5 /// swap file has no free slot
	EPERM  Err_t = -6 /// write to a read-only page
)

// FaultType classifies a TLB miss, mirroring VM_FAULT_READ/WRITE/READONLY.
type FaultType int

const (
	FaultRead     FaultType = iota /// load from an unmapped or swapped page
	FaultWrite                     /// store to an unmapped or swapped page
	FaultReadOnly                  /// store to a page mapped without write permission
)

// String renders a FaultType for diagnostics.
func (f FaultType) String() string {
	switch f {
	case FaultRead:
		return "read"
	case FaultWrite:
		return "write"
	case FaultReadOnly:
		return "readonly"
	default:
		return "unknown"
	}
}
