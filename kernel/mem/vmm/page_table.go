package vmm

import (
	"rvcore/kernel"
	"rvcore/kernel/mem/addr"
	"rvcore/kernel/mem/pmm"
)

var errUnmapInvalid = &kernel.Error{Module: "vmm", Message: "unmap of a VPN with no valid mapping"}

// FrameAllocatorFn is a function that can reserve a zeroed, tracked physical
// frame. PageTable uses it to grow interior tables on demand.
type FrameAllocatorFn func() (*pmm.FrameTracker, *kernel.Error)

// frameAllocator is set once during kernel init; every PageTable shares it.
var frameAllocator FrameAllocatorFn

// SetFrameAllocator registers the function PageTable uses to obtain fresh
// interior-table and root-table frames.
func SetFrameAllocator(fn FrameAllocatorFn) {
	frameAllocator = fn
}

// PageTable is a three-level SV39 page table. It owns its root frame and
// every interior frame it allocated while servicing Map calls, and frees
// them all when Destroy is called. A PageTable built by FromSATP for
// transient user-pointer translation owns nothing and must not be
// destroyed.
type PageTable struct {
	rootPPN addr.PhysPageNum
	frames  []*pmm.FrameTracker
	owned   bool
}

// NewPageTable allocates a root frame and returns an empty page table that
// owns it.
func NewPageTable() (*PageTable, *kernel.Error) {
	root, err := frameAllocator()
	if err != nil {
		return nil, err
	}
	return &PageTable{
		rootPPN: root.PPN,
		frames:  []*pmm.FrameTracker{root},
		owned:   true,
	}, nil
}

// FromSATP builds a transient, non-owning view of the page table whose root
// is encoded in an satp register value. It is used only to translate
// addresses in another task's address space and must never have Map called
// on it nor be destroyed.
func FromSATP(satp uint64) *PageTable {
	return &PageTable{
		rootPPN: addr.PhysPageNum(satp & ((1 << 44) - 1)),
		owned:   false,
	}
}

func writePTE(ppn addr.PhysPageNum, index int, pte PageTableEntry) {
	b := ppn.Bytes()
	off := index * 8
	v := uint64(pte)
	for j := 0; j < 8; j++ {
		b[off+j] = byte(v >> (8 * j))
	}
}

func readPTE(ppn addr.PhysPageNum, index int) PageTableEntry {
	b := ppn.Bytes()
	off := index * 8
	var v uint64
	for j := 0; j < 8; j++ {
		v |= uint64(b[off+j]) << (8 * j)
	}
	return PageTableEntry(v)
}

// walk locates the leaf PTE slot for vpn, optionally allocating interior
// tables along the way. It returns the PPN of the table holding the leaf
// entry and the index within that table.
func (t *PageTable) walk(vpn addr.VirtPageNum, create bool) (addr.PhysPageNum, int, *kernel.Error) {
	idx := vpn.Indices()
	ppn := t.rootPPN
	for level := 0; level < 3; level++ {
		i := int(idx[level])
		if level == 2 {
			return ppn, i, nil
		}
		pte := readPTE(ppn, i)
		if !pte.Valid() {
			if !create {
				return 0, 0, errUnmapInvalid
			}
			frame, err := frameAllocator()
			if err != nil {
				return 0, 0, err
			}
			writePTE(ppn, i, NewPTE(frame.PPN, FlagV))
			t.frames = append(t.frames, frame)
			pte = readPTE(ppn, i)
		}
		ppn = pte.PPN()
	}
	panic("unreachable")
}

// Map installs a mapping from vpn to ppn with the given permission flags
// (FlagV is always implied). It allocates any interior tables needed along
// the way.
func (t *PageTable) Map(vpn addr.VirtPageNum, ppn addr.PhysPageNum, flags PTEFlags) *kernel.Error {
	tablePPN, index, err := t.walk(vpn, true)
	if err != nil {
		return err
	}
	writePTE(tablePPN, index, NewPTE(ppn, flags))
	return nil
}

// Unmap clears the leaf entry for vpn. It returns an error if any level of
// the walk (including the leaf) was not already valid: unmapping something
// that was never mapped is a kernel bug.
func (t *PageTable) Unmap(vpn addr.VirtPageNum) *kernel.Error {
	tablePPN, index, err := t.walk(vpn, false)
	if err != nil {
		return err
	}
	if !readPTE(tablePPN, index).Valid() {
		return errUnmapInvalid
	}
	writePTE(tablePPN, index, PageTableEntry(0))
	return nil
}

// Translate returns the leaf PTE mapped for vpn, if any.
func (t *PageTable) Translate(vpn addr.VirtPageNum) (PageTableEntry, bool) {
	tablePPN, index, err := t.walk(vpn, false)
	if err != nil {
		return 0, false
	}
	pte := readPTE(tablePPN, index)
	if !pte.Valid() {
		return 0, false
	}
	return pte, true
}

// TranslateVA resolves a virtual address to the physical address of the same
// byte, using the page containing it plus the preserved page offset.
func (t *PageTable) TranslateVA(va addr.VirtAddr) (addr.PhysAddr, bool) {
	pte, ok := t.Translate(va.Floor())
	if !ok {
		return 0, false
	}
	return addr.PhysAddr(uint64(pte.PPN().Addr()) | va.PageOffset()), true
}

// satpModeSV39 is the mode field value (bits 60..63) selecting SV39
// translation.
const satpModeSV39 = uint64(8) << 60

// SATP returns the value to load into the satp CSR to activate this table.
func (t *PageTable) SATP() uint64 {
	return satpModeSV39 | uint64(t.rootPPN)
}

// Destroy releases every frame this table owns (root plus all interior
// tables allocated while mapping). It must not be called on a table built by
// FromSATP.
func (t *PageTable) Destroy() {
	if !t.owned {
		return
	}
	for _, f := range t.frames {
		f.Free()
	}
	t.frames = nil
}
