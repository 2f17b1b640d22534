// Package kernel contains types and helpers shared across the kernel's
// subsystems. It sits at the bottom of the import graph: every other
// kernel package may import it but it imports none of them.
package kernel

// Error is a trivial implementation of a kernel error that does not require
// a memory allocation to construct or pass around. Packages that can fail
// before the kernel heap is available (page tables, the frame allocator,
// the buddy heap itself) return *Error instead of the builtin error type.
type Error struct {
	// Module identifies the subsystem that generated the error.
	Module string

	// Message describes what went wrong.
	Message string
}

// Error implements the error interface so that *Error can be passed to
// anything that accepts a standard error value.
func (e *Error) Error() string {
	return "[" + e.Module + "] " + e.Message
}
