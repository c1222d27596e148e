package elfimage

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"testing"

	"github.com/AngeloCiminos317631/OS161-Project-c1/segment"
)

// buildMinimalELF32 hand-assembles the smallest valid little-endian
// 32-bit ELF with one PT_LOAD program header, so the test has no
// dependency on a real toolchain-produced binary on disk.
func buildMinimalELF32(entry, vaddr, filesz, memsz, flags uint32, payload []byte) []byte {
	const ehsize = 52
	const phentsize = 32
	phoff := uint32(ehsize)
	dataOff := phoff + phentsize

	buf := &bytes.Buffer{}
	ident := [16]byte{0x7f, 'E', 'L', 'F', 1 /*ELFCLASS32*/, 1 /*ELFDATA2LSB*/, 1 /*EV_CURRENT*/}
	buf.Write(ident[:])

	le := binary.LittleEndian
	write16 := func(v uint16) { b := make([]byte, 2); le.PutUint16(b, v); buf.Write(b) }
	write32 := func(v uint32) { b := make([]byte, 4); le.PutUint32(b, v); buf.Write(b) }

	write16(uint16(elf.ET_EXEC))
	write16(uint16(elf.EM_386))
	write32(uint32(elf.EV_CURRENT))
	write32(entry)
	write32(phoff)
	write32(0) // e_shoff
	write32(0) // e_flags
	write16(ehsize)
	write16(phentsize)
	write16(1) // e_phnum
	write16(0) // e_shentsize
	write16(0) // e_shnum
	write16(0) // e_shstrndx

	write32(uint32(elf.PT_LOAD))
	write32(dataOff) // p_offset
	write32(vaddr)
	write32(vaddr) // p_paddr
	write32(filesz)
	write32(memsz)
	write32(flags)
	write32(0x1000) // p_align

	buf.Write(payload)
	return buf.Bytes()
}

func TestOpenAndLoadableRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte{0x42}, 0x20)
	raw := buildMinimalELF32(0x00401000, 0x00400000, uint32(len(payload)), 0x2000,
		uint32(elf.PF_R|elf.PF_X), payload)

	r := bytes.NewReader(raw)
	f, err := Open(r)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := EntryPoint(f); got != 0x00401000 {
		t.Fatalf("EntryPoint() = %#x, want 0x401000", got)
	}

	descs, err := Loadable(f, r)
	if err != nil {
		t.Fatalf("Loadable: %v", err)
	}
	if len(descs) != 1 {
		t.Fatalf("Loadable returned %d segments, want 1", len(descs))
	}
	d := descs[0]
	if d.Vaddr != 0x00400000 || d.Memsz != 0x2000 || d.Filesz != uint32(len(payload)) {
		t.Fatalf("segment fields mismatch: %+v", d)
	}
	if d.Permission&segment.PermWrite != 0 {
		t.Fatalf("read+execute segment incorrectly carries write permission")
	}
	if d.Permission&segment.PermRead == 0 || d.Permission&segment.PermExecute == 0 {
		t.Fatalf("read+execute permission bits not translated: got %s", d.Permission)
	}
}

func TestOpenRejectsELF64(t *testing.T) {
	// A 64-bit class byte with an otherwise-plausible header must be
	// rejected: this subsystem's PhysAddr/PageShift assume a 32-bit
	// target.
	raw := buildMinimalELF32(0, 0, 0, 0, 0, nil)
	raw[4] = 2 // EI_CLASS = ELFCLASS64, header now self-inconsistent

	_, err := Open(bytes.NewReader(raw))
	if err == nil {
		t.Fatalf("Open accepted a non-32-bit-class header")
	}
}
