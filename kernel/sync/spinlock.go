// Package sync provides the synchronization primitives used to guard the
// kernel's process-wide singletons (heap, frame allocator, task id
// allocator, kernel address space, scheduler, processor and RPC channel).
// On a single hart there is never more than one holder of any given lock at
// a time, but a task holding a lock can still be preempted by the timer
// interrupt, so these are real spinlocks rather than no-ops.
package sync

import "sync/atomic"

// yieldFn is called on each failed acquire attempt. The kernel leaves it as
// a no-op spin hint: on a single hart, the only way the lock ever becomes
// free is a timer interrupt preempting the holder, so there is no other
// task to yield to. Tests substitute runtime.Gosched so that concurrent
// spinlock tests don't starve the Go scheduler's own goroutines.
var yieldFn = func() {}

// Spinlock implements a lock where each task trying to acquire it busy-waits
// till the lock becomes available.
//
// Acquiring a lock already held by the current task deadlocks it: the kernel
// never re-enters a lock it holds. Per the lock ordering documented for the
// kernel's singletons, callers drop every spinlock they hold before invoking
// a context switch.
type Spinlock struct {
	state uint32
}

// Acquire blocks until the lock can be acquired by the currently active task.
func (l *Spinlock) Acquire() {
	for !l.TryToAcquire() {
		yieldFn()
	}
}

// TryToAcquire attempts to acquire the lock and returns true if the lock could
// be acquired or false otherwise.
func (l *Spinlock) TryToAcquire() bool {
	return atomic.CompareAndSwapUint32(&l.state, 0, 1)
}

// Release relinquishes a held lock allowing other tasks to acquire it. Calling
// Release while the lock is free has no effect.
func (l *Spinlock) Release() {
	atomic.StoreUint32(&l.state, 0)
}
