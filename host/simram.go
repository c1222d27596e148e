package host

import "github.com/AngeloCiminos317631/OS161-Project-c1/defs"

// SimRAM is an in-process stand-in for the hardware bump allocator and
// direct map, used by tests and cmd/vmdemo where no real physical
// memory is available. Grounded on mem.Phys_init's reservation of a
// fixed frame count up front and mem.Physmem.Dmap's pointer-into-the-
// direct-map access pattern, replayed here over a plain Go byte slice.
type SimRAM struct {
	backing []byte
	bump    uintptr
}

// NewSimRAM reserves nframes page-sized frames of simulated RAM. The
// bump cursor starts past frame 0: frame 0 is never a legitimate steal
// result, since the coremap also uses physical address 0 to mean
// "steal_ram failed."
func NewSimRAM(nframes int) *SimRAM {
	return &SimRAM{backing: make([]byte, nframes*defs.PageSize), bump: defs.PageSize}
}

// Size reports the total simulated RAM in bytes.
func (r *SimRAM) Size() uintptr { return uintptr(len(r.backing)) }

// StealRam hands out the next n contiguous, never-before-stolen frames.
// It returns 0 once the backing region is exhausted, exactly like
// ram_stealmem.
func (r *SimRAM) StealRam(n int) uintptr {
	need := uintptr(n) * defs.PageSize
	if r.bump+need > uintptr(len(r.backing)) {
		return 0
	}
	pa := r.bump
	r.bump += need
	return pa
}

// Bytes returns the direct-mapped slice of n bytes at physical address
// pa.
func (r *SimRAM) Bytes(pa defs.PhysAddr, n int) []byte {
	off := uintptr(pa)
	if off+uintptr(n) > uintptr(len(r.backing)) {
		panic("host: SimRAM access out of range")
	}
	return r.backing[off : off+uintptr(n)]
}
