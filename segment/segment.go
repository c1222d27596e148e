// Package segment describes one contiguous region of an address space's
// layout (code, data, or stack) and knows how to fault a single page of
// it in from its backing image. Grounded directly on
// original_source/kern/vm/segments.c's seg_load_page, whose per-page
// offset arithmetic is preserved exactly; seg_create/seg_define/seg_copy
// become a plain Go struct literal and a value copy.
package segment

import (
	"fmt"

	"github.com/AngeloCiminos317631/OS161-Project-c1/defs"
	"github.com/AngeloCiminos317631/OS161-Project-c1/host"
)

// Perm is a segment's access permission bit set, matching the ELF
// program-header permission bits plus the synthetic stack flag
// original_source/kern/include/segments.h reuses PF_S for.
type Perm uint32

const (
	PermRead Perm = 1 << iota
	PermWrite
	PermExecute
	PermStack // synthetic: marks the stack segment, carries implicit R/W
)

func (p Perm) String() string {
	s := ""
	if p&PermRead != 0 {
		s += "r"
	} else {
		s += "-"
	}
	if p&PermWrite != 0 {
		s += "w"
	} else {
		s += "-"
	}
	if p&PermExecute != 0 {
		s += "x"
	} else {
		s += "-"
	}
	return s
}

// Descriptor is one segment of an address space's layout: a window onto
// an image file, or a zero-filled-only region when Image is nil (the
// stack). Fields mirror struct segment one for one.
type Descriptor struct {
	Offset     uint32 // byte offset into Image where this segment's file data starts
	Vaddr      uintptr
	Filesz     uint32 // bytes actually backed by the image
	Memsz      uint32 // bytes the segment occupies in the address space
	Permission Perm
	Image      host.Image // nil for a segment with no file backing (stack)
}

// NumPages reports how many pages this segment spans, counting the
// partial leading page implied by Vaddr's offset within its first page.
func (d *Descriptor) NumPages() uint32 {
	n := uint64(d.Memsz) + uint64(d.Vaddr&(defs.PageSize-1))
	n = (n + defs.PageSize - 1) &^ (defs.PageSize - 1)
	return uint32(n / defs.PageSize)
}

// Contains reports whether va falls within this segment's virtual
// range.
func (d *Descriptor) Contains(va uintptr) bool {
	base := d.Vaddr &^ (defs.PageSize - 1)
	return va >= base && va < base+uintptr(d.NumPages())*defs.PageSize
}

// baseOffset is the segment's starting virtual address, masked down to
// its within-page offset, segments.c's vbaseoffset.
func (d *Descriptor) baseOffset() uint32 {
	return uint32(d.Vaddr) & (defs.PageSize - 1)
}

// LoadPage fills the page-sized slice dst (already zeroed by the
// caller's frame allocation, or zeroed here) with this segment's
// contents for the page containing va. It reproduces seg_load_page's
// three cases (first page, last page, interior page); a Filesz larger
// than the segment's pages is silently clamped to them. dst is zeroed
// before any read, so padding and BSS bytes are always zero.
// va must fall within the segment (see Contains). A read that cannot
// deliver the expected byte count is reported as defs.EIO, which the
// fault handler returns to its caller.
func (d *Descriptor) LoadPage(dst []byte, va uintptr) defs.Err_t {
	if len(dst) != defs.PageSize {
		panic("segment: LoadPage requires exactly one page-sized buffer")
	}
	if !d.Contains(va) {
		panic("segment: LoadPage called for an address outside the segment")
	}

	npages := d.NumPages()
	filesz := d.Filesz
	if filesz > npages*defs.PageSize {
		filesz = npages * defs.PageSize
	}

	base := d.Vaddr &^ (defs.PageSize - 1)
	pageIndex := uint32((va - base) / defs.PageSize)
	vbase := d.baseOffset()

	var destOff, fileOffset, readLen uint32

	switch {
	case pageIndex == 0:
		destOff = vbase
		readLen = defs.PageSize - vbase
		if filesz < readLen {
			readLen = filesz
		}
		fileOffset = d.Offset

	case pageIndex == npages-1:
		voffset := (npages-1)*defs.PageSize - vbase
		destOff = 0
		fileOffset = d.Offset + voffset
		if filesz > voffset {
			readLen = filesz - voffset
		} else {
			readLen = 0
			fileOffset = d.Offset + filesz
		}

	default:
		destOff = 0
		fileOffset = d.Offset + pageIndex*defs.PageSize - vbase
		switch {
		case filesz > (pageIndex+1)*defs.PageSize-vbase:
			readLen = defs.PageSize
		case filesz < pageIndex*defs.PageSize-vbase:
			readLen = 0
			fileOffset = d.Offset + filesz
		default:
			readLen = filesz - (pageIndex*defs.PageSize - vbase)
		}
	}

	for i := range dst {
		dst[i] = 0
	}

	if readLen == 0 || d.Image == nil {
		return 0
	}

	n, err := d.Image.ReadAt(dst[destOff:destOff+readLen], int64(fileOffset))
	if err != nil || uint32(n) != readLen {
		return defs.EIO
	}
	return 0
}

// DefineStack returns the synthetic stack segment: no file backing,
// zero-fill-only, positioned nstackpages below USERSTACK.
func DefineStack(userstack uintptr, nstackpages uint32) Descriptor {
	return Descriptor{
		Vaddr:      userstack - uintptr(nstackpages)*defs.PageSize,
		Memsz:      nstackpages * defs.PageSize,
		Permission: PermStack | PermRead | PermWrite,
	}
}

// Copy returns a value copy of d sharing the same Image handle, the
// equivalent of seg_copy, which duplicates the descriptor's fields but
// never the backing vnode.
func (d Descriptor) Copy() Descriptor { return d }

func (d Descriptor) String() string {
	return fmt.Sprintf("segment{vaddr=%#x memsz=%#x filesz=%#x perm=%s}", d.Vaddr, d.Memsz, d.Filesz, d.Permission)
}
