package vmm

import (
	"debug/elf"
	"io"
	"rvcore/kernel"
	"rvcore/kernel/mem/addr"
	"rvcore/kernel/platform"
)

var (
	errBadELF = &kernel.Error{Module: "vmm", Message: "not a valid ELF image"}
	errNoLoad = &kernel.Error{Module: "vmm", Message: "ELF image has no loadable segments"}
)

// AddrSpace is a root page table plus the ordered set of map areas that
// populated it. Tearing one down unmaps and frees every area in the
// order it was pushed, then destroys the root table itself.
type AddrSpace struct {
	Table *PageTable
	areas []*MapArea
}

func newEmptyAddrSpace() (*AddrSpace, *kernel.Error) {
	t, err := NewPageTable()
	if err != nil {
		return nil, err
	}
	return &AddrSpace{Table: t}, nil
}

// Push installs area into the address space, optionally seeding it with
// initial bytes, and takes ownership of it.
func (s *AddrSpace) Push(area *MapArea, data []byte) {
	area.Map(s.Table)
	if data != nil {
		area.CopyFromBytes(data)
	}
	s.areas = append(s.areas, area)
}

// SATP returns the satp value that activates this address space's table.
func (s *AddrSpace) SATP() uint64 {
	return s.Table.SATP()
}

// Destroy unmaps and frees every area, then the root table.
func (s *AddrSpace) Destroy() {
	for _, a := range s.areas {
		a.Unmap(s.Table)
	}
	s.areas = nil
	s.Table.Destroy()
}

// RemoveArea unmaps and frees the single area containing vpn, if any. Used
// to tear down a single task's kernel stack without disturbing the rest of
// the kernel address space.
func (s *AddrSpace) RemoveArea(vpn addr.VirtPageNum) {
	for i, a := range s.areas {
		if a.Contains(vpn) {
			a.Unmap(s.Table)
			s.areas = append(s.areas[:i], s.areas[i+1:]...)
			return
		}
	}
}

// Clone duplicates this address space: a fresh root table, and for every
// area a new area of the same range/type/permissions with its own
// byte-for-byte copy of any Framed frames. No physical frame is ever
// shared between the clone and its source.
func (s *AddrSpace) Clone() (*AddrSpace, *kernel.Error) {
	out, err := newEmptyAddrSpace()
	if err != nil {
		return nil, err
	}
	for _, a := range s.areas {
		out.areas = append(out.areas, a.cloneInto(out.Table))
	}
	return out, nil
}

// NewKernel builds the kernel's own address space: an identity map over
// every section of the running image, the rest of physical memory up to
// MemoryEnd, and the fixed MMIO windows. No trampoline page is mapped,
// here or anywhere else in this tree: the trap entry and exit routines are
// ordinary package symbols (see trap.AllTraps).
func NewKernel() (*AddrSpace, *kernel.Error) {
	space, err := newEmptyAddrSpace()
	if err != nil {
		return nil, err
	}

	identity := func(startVA, endVA uint64, perm PTEFlags) {
		space.Push(NewMapArea(addr.VirtAddr(startVA), addr.VirtAddr(endVA), Identical, perm), nil)
	}

	identity(uint64(platform.TextStart()), uint64(platform.TextEnd()), FlagR|FlagX)
	identity(uint64(platform.RodataStart()), uint64(platform.RodataEnd()), FlagR)
	identity(uint64(platform.DataStart()), uint64(platform.DataEnd()), FlagR|FlagW)
	identity(uint64(platform.BSSStart()), uint64(platform.BSSEnd()), FlagR|FlagW)
	identity(uint64(platform.KernelEnd()), platform.MemoryEnd, FlagR|FlagW)
	identity(platform.UARTBase, platform.UARTBase+platform.UARTSize, FlagR|FlagW)
	identity(platform.VirtTest, platform.VirtTest+1, FlagR|FlagW)
	identity(platform.MTime, platform.MTime+1, FlagR|FlagW)
	identity(platform.MTimeCmp, platform.MTimeCmp+1, FlagR|FlagW)

	return space, nil
}

// NewUser parses elfBytes, maps every PT_LOAD segment (Framed, permissions
// from the program header plus FlagU), places an 8KiB user stack one guard
// page above the highest loaded address, and Framed-maps a TrapContext page
// at the fixed TrapContextAddr. It returns the populated space, the initial
// user stack pointer, and the ELF entry point.
func NewUser(elfBytes []byte) (space *AddrSpace, userSP uint64, entry uint64, rErr *kernel.Error) {
	f, ferr := elf.NewFile(byteReaderAt(elfBytes))
	if ferr != nil {
		return nil, 0, 0, errBadELF
	}
	defer f.Close()

	space, err := newEmptyAddrSpace()
	if err != nil {
		return nil, 0, 0, err
	}

	var maxEndVA uint64
	loaded := false
	for _, prog := range f.Progs {
		if prog.Type != elf.PT_LOAD {
			continue
		}
		loaded = true
		perm := FlagU
		if prog.Flags&elf.PF_R != 0 {
			perm |= FlagR
		}
		if prog.Flags&elf.PF_W != 0 {
			perm |= FlagW
		}
		if prog.Flags&elf.PF_X != 0 {
			perm |= FlagX
		}

		data := make([]byte, prog.Filesz)
		if _, rerr := io.ReadFull(prog.Open(), data); rerr != nil && rerr != io.EOF {
			return nil, 0, 0, &kernel.Error{Module: "vmm", Message: "failed to read PT_LOAD segment"}
		}
		if prog.Memsz > prog.Filesz {
			padded := make([]byte, prog.Memsz)
			copy(padded, data)
			data = padded
		}

		area := NewMapArea(addr.VirtAddr(prog.Vaddr), addr.VirtAddr(prog.Vaddr+prog.Memsz), Framed, perm)
		space.Push(area, data)

		if end := prog.Vaddr + prog.Memsz; end > maxEndVA {
			maxEndVA = end
		}
	}
	if !loaded {
		return nil, 0, 0, errNoLoad
	}

	// One guard page, then the user stack.
	stackBottomVA := (addr.VirtAddr(maxEndVA).Ceil().Addr()) + addr.VirtAddr(platform.PageSize)
	stackTopVA := stackBottomVA + addr.VirtAddr(platform.UserStackSize)
	space.Push(NewMapArea(stackBottomVA, stackTopVA, Framed, FlagR|FlagW|FlagU), nil)

	space.Push(NewMapArea(
		addr.VirtAddr(platform.TrapContextAddr),
		addr.VirtAddr(platform.TrapContextAddr+platform.PageSize),
		Framed, FlagR|FlagW,
	), nil)

	return space, uint64(stackTopVA), f.Entry, nil
}

// TrapContextPPN translates the fixed TrapContext virtual address in this
// space to the physical page backing it.
func (s *AddrSpace) TrapContextPPN() (addr.PhysPageNum, bool) {
	pte, ok := s.Table.Translate(addr.VirtAddr(platform.TrapContextAddr).Floor())
	if !ok {
		return 0, false
	}
	return pte.PPN(), true
}

// byteReaderAt adapts a byte slice to io.ReaderAt for debug/elf.
type byteReaderAt []byte

func (b byteReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(b)) {
		return 0, &kernel.Error{Module: "vmm", Message: "ELF read out of range"}
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, errEOF
	}
	return n, nil
}

var errEOF = &kernel.Error{Module: "vmm", Message: "EOF"}
