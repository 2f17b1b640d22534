package trap

// readTrapCause returns the current scause and stval CSRs. Implemented in
// asm_riscv64.s as two raw CSR reads (scause=0x142, stval=0x143): neither
// mnemonic is exercised in the installed toolchain's assembler testdata,
// so both go through WORD-encoded instructions rather than named CSRRS.
func readTrapCause() (scause, stval uint64)

// restore installs cx's saved registers and satp, then executes sret,
// resuming execution at cx.Sepc in user mode. Never returns.
func restore(cx *Context, satp uint64)

// ReadSstatus returns the current sstatus CSR, used to seed a new task's
// TrapContext with the sstatus value it should resume into.
func ReadSstatus() uint64

// AllTraps is the trap entry point: hardware lands here (via stvec) with
// the hart still running on the trapping task's resources. It swaps a0
// with sscratch to recover the current task's *Context, saves every other
// general register into it, switches to the kernel's satp and the task's
// kernel stack, and calls Handler. In a true freestanding image this
// routine and restore would be linked onto the shared trampoline page so
// every address space maps them at the same VA; hosted under the Go
// runtime there is no custom linker script to place them there, so they
// are ordinary package symbols instead.
func AllTraps()
