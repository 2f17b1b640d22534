package platform

// EnterSupervisorMode transitions the hart from M-mode to S-mode and jumps
// to entry. It must be called exactly once, immediately after the hart's
// M-mode reset handler has set up a stack, and never returns: it sets mepc
// to entry, delegates all exceptions and interrupts to S-mode, configures
// physical memory protection to permit the whole address space, and
// executes mret.
//
// Implemented in boot_riscv64.s: the CSR writes involved (mstatus, mepc,
// medeleg, mideleg, sie, pmpaddr0, pmpcfg0, satp) have no mnemonic support
// worth trusting without a toolchain to verify against, so each is a raw
// WORD-encoded instruction, same convention as cpu_riscv64.s.
func EnterSupervisorMode(entry uintptr)
