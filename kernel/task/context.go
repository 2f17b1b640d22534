package task

// Context is the callee-saved register set preserved across a context
// switch: the return address, stack pointer, and the twelve saved
// registers s0..s11. It is not the user's TrapContext — that lives in the
// task's TrapContext page and is saved/restored by the trampoline, not by
// Switch.
type Context struct {
	RA uint64
	SP uint64
	S  [12]uint64
}

// NewContext builds a context whose first resumption starts at ra with
// stack pointer sp and all saved registers zeroed. Used for a brand new
// task (ra = trap_return); the processor's idle context is a zero-valued
// Context and is not built through NewContext.
func NewContext(ra, sp uint64) Context {
	return Context{RA: ra, SP: sp}
}

// Switch saves the current ra/sp/s0..s11 into old, then restores the same
// registers from new and returns into new's ra with new's sp active.
//
// Implemented in switch_riscv64.s. s11 (X27) has no name in the Go
// assembler on this arch — it is reserved for the goroutine pointer g —
// so its save/restore are two raw WORD-encoded SD/LD instructions rather
// than named MOVs; every other register uses ordinary ABI names.
func Switch(old, new *Context)
