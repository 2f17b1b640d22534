// Package cpu exposes the handful of privileged operations the rest of the
// kernel needs from the riscv64 hart: halting, masking interrupts and
// flushing address-translation caches. These are thin wrappers so the
// higher layers (vmm, kfmt, proc) never spell out inline assembly
// themselves.
package cpu

// haltFn stops the hart. It is a variable so tests can observe a halt
// without actually stopping the test binary.
var haltFn = platformHalt

// Halt stops instruction execution on this hart. It never returns.
func Halt() {
	haltFn()
}

// EnableInterrupts sets sstatus.SIE, allowing the supervisor timer and
// external interrupts to be taken.
func EnableInterrupts() {
	platformEnableInterrupts()
}

// DisableInterrupts clears sstatus.SIE. The trap entry trampoline already
// runs interrupt-free (the hardware clears SIE on trap entry); this is used
// by code that needs to extend that window, such as the scheduler's
// run-to-idle handoff.
func DisableInterrupts() {
	platformDisableInterrupts()
}

// FlushTLBEntry invalidates any cached address translation for virtAddr via
// SFENCE.VMA. It must be called after any PTE mutation that could be
// observed by a stale TLB entry (unmap, permission downgrade, address space
// switch).
func FlushTLBEntry(virtAddr uintptr) {
	platformFlushTLBEntry(virtAddr)
}

// platformHalt, platformEnableInterrupts, platformDisableInterrupts and
// platformFlushTLBEntry are implemented in cpu_riscv64.s. They are
// declared here with no body, exactly like the privileged-instruction
// wrappers they replace: the Go compiler emits a call to the assembly
// symbol of the same name.
func platformHalt()
func platformEnableInterrupts()
func platformDisableInterrupts()
func platformFlushTLBEntry(virtAddr uintptr)
