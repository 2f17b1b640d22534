// Package trap implements the user/kernel trap boundary: the saved user
// register frame, the stvec mode switch between trampoline and
// kernel-only handling, and the syscall/timer dispatch that runs on every
// ecall or supervisor timer interrupt taken from user mode.
package trap

// Context is the trap frame saved by the trampoline on every entry from
// user mode and restored on every return to it. Field order and size
// matter: asm_riscv64.s addresses every field by a fixed byte offset from
// a base register, the same convention task.Context uses.
type Context struct {
	// X holds the 32 RISC-V integer registers as the hardware trap entry
	// found them, x[10] (a0) onward usable as syscall id/args and return
	// value.
	X [32]uint64

	Sstatus     uint64
	Sepc        uint64
	KernelSatp  uint64
	TrapHandler uint64
	KernelSp    uint64
}

// New builds a fresh trap context for a task about to start running for
// the first time: the user stack pointer is seeded into x[2], sepc is the
// entry point, and the kernel-side fields point back at the handler that
// will service this task's traps.
func New(userSP, entry, sstatus, kernelSatp, trapHandler, kernelSP uint64) Context {
	cx := Context{
		Sstatus:     sstatus,
		Sepc:        entry,
		KernelSatp:  kernelSatp,
		TrapHandler: trapHandler,
		KernelSp:    kernelSP,
	}
	cx.X[2] = userSP
	return cx
}
