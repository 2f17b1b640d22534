package task

import "rvcore/kernel/sync"

// idAllocator hands out task ids starting at 1 (0 is reserved to mean "no
// task" in places like waitpid's pid argument) and recycles freed ids
// LIFO, same policy as the frame allocator.
type idAllocator struct {
	lock     sync.Spinlock
	current  uint64
	recycled []uint64
}

var taskIDs = idAllocator{current: 1}

func (a *idAllocator) alloc() uint64 {
	a.lock.Acquire()
	defer a.lock.Release()

	if n := len(a.recycled); n > 0 {
		id := a.recycled[n-1]
		a.recycled = a.recycled[:n-1]
		return id
	}
	id := a.current
	a.current++
	return id
}

func (a *idAllocator) dealloc(id uint64) {
	a.lock.Acquire()
	defer a.lock.Release()
	a.recycled = append(a.recycled, id)
}

// AllocID reserves a fresh task id. The caller owns it until it passes it
// to FreeID exactly once, mirroring the pmm.FrameTracker/Free convention.
func AllocID() uint64 {
	return taskIDs.alloc()
}

// FreeID returns id to the pool for reuse.
func FreeID(id uint64) {
	taskIDs.dealloc(id)
}
