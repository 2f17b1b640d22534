// Package pmm is the kernel's physical frame allocator: a bump pointer over
// the unused tail of physical memory with a LIFO stack of recycled frames,
// plus FrameTracker, the scoped owner of a single frame.
package pmm

import (
	"rvcore/kernel"
	"rvcore/kernel/mem"
	"rvcore/kernel/mem/addr"
	"rvcore/kernel/sync"
)

var errOutOfMemory = &kernel.Error{Module: "pmm", Message: "frame allocator out of memory"}

// Allocator hands out physical page frames one at a time. The zero value is
// not ready for use; call Init with the usable physical range before the
// first Alloc.
type Allocator struct {
	lock     sync.Spinlock
	current  addr.PhysPageNum
	end      addr.PhysPageNum
	recycled []addr.PhysPageNum
}

// Init sets the allocatable range to [start, end). Frames below start (the
// kernel image and anything reserved earlier) and at or above end are never
// handed out.
func (a *Allocator) Init(start, end addr.PhysPageNum) {
	a.lock.Acquire()
	defer a.lock.Release()
	a.current = start
	a.end = end
	a.recycled = a.recycled[:0]
}

// Alloc reserves and returns one physical page frame.
func (a *Allocator) Alloc() (addr.PhysPageNum, *kernel.Error) {
	a.lock.Acquire()
	defer a.lock.Release()

	if n := len(a.recycled); n > 0 {
		ppn := a.recycled[n-1]
		a.recycled = a.recycled[:n-1]
		return ppn, nil
	}
	if a.current >= a.end {
		return 0, errOutOfMemory
	}
	ppn := a.current
	a.current++
	return ppn, nil
}

// Dealloc returns ppn to the pool of frames available for reuse. It panics
// if ppn was never allocated (at or beyond the bump pointer) or has already
// been freed (already on the recycled stack): both indicate a kernel bug, not
// a recoverable condition. The recycled-stack scan is O(n); this is a
// correctness check, not a hot path.
func (a *Allocator) Dealloc(ppn addr.PhysPageNum) {
	a.lock.Acquire()
	defer a.lock.Release()

	if ppn >= a.current {
		panic(&kernel.Error{Module: "pmm", Message: "dealloc of frame that was never allocated"})
	}
	for _, r := range a.recycled {
		if r == ppn {
			panic(&kernel.Error{Module: "pmm", Message: "double free of physical frame"})
		}
	}
	a.recycled = append(a.recycled, ppn)
}

// FrameTracker is the scoped owner of exactly one physical page frame.
// Construction zeroes the frame. Go has no destructors, so unlike the
// reference implementation's Drop impl, callers must explicitly call Free
// when they are done with the frame (typically when a PageTable or MapArea
// that held it is itself torn down).
type FrameTracker struct {
	PPN   addr.PhysPageNum
	alloc *Allocator
}

// AllocTracked reserves a fresh frame, zeroes it, and returns a FrameTracker owning
// it.
func (a *Allocator) AllocTracked() (*FrameTracker, *kernel.Error) {
	ppn, err := a.Alloc()
	if err != nil {
		return nil, err
	}
	kernel.Memset(uintptr(ppn.Addr()), 0, mem.PageSize)
	return &FrameTracker{PPN: ppn, alloc: a}, nil
}

// Free returns the frame to the allocator it came from. Free is not
// idempotent: calling it twice deallocates the same PPN twice, which the
// allocator detects and panics on — callers own the
// frame exactly once and must release it exactly once.
func (t *FrameTracker) Free() {
	t.alloc.Dealloc(t.PPN)
}

// Bytes returns the 4KiB contents of the owned frame.
func (t *FrameTracker) Bytes() []byte {
	return t.PPN.Bytes()
}
