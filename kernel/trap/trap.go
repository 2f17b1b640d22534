package trap

import "rvcore/kernel/platform"

// The functions below are wired by kmain at boot, the same
// inversion-of-control idiom as vmm.SetFrameAllocator: trap cannot import
// proc or syscall (they import trap to drive the handler), so it calls
// back through package-level hooks instead.
var (
	currentTrapCxFn  func() *Context
	currentUserSatpFn func() uint64
	dispatchFn       func(id uint64, args [4]uint64) uint64
	yieldFn          func()
)

// SetHooks wires trap to the rest of the kernel. Called once during boot.
func SetHooks(currentTrapCx func() *Context, currentUserSatp func() uint64, dispatch func(id uint64, args [4]uint64) uint64, yield func()) {
	currentTrapCxFn = currentTrapCx
	currentUserSatpFn = currentUserSatp
	dispatchFn = dispatch
	yieldFn = yield
}

const (
	scauseUserEnvCall     = 8
	scauseSupervisorTimer = 0x8000000000000005
)

// SetKernelStvec and SetUserStvec write the address of TrapFromKernel and
// AllTraps respectively straight into stvec via raw CSR writes (see
// asm_riscv64.s); Handler and Return call them.

// SetKernelStvec redirects traps taken while already in the kernel to the
// panic-only handler: nothing the kernel does should ever itself trap.
func SetKernelStvec()

// SetUserStvec redirects traps to AllTraps, the entry point used while
// running user code.
func SetUserStvec()

// Handler is invoked by AllTraps after it has
// saved the user registers into the current task's Context and switched
// to the kernel's satp and stack. It never returns: it always ends by
// calling Return.
//
//go:nosplit
func Handler() {
	SetKernelStvec()
	cx := currentTrapCxFn()
	scause, stval := readTrapCause()

	switch scause {
	case scauseUserEnvCall:
		cx.Sepc += 4
		var args [4]uint64
		args[0] = cx.X[11]
		args[1] = cx.X[12]
		args[2] = cx.X[13]
		args[3] = cx.X[14]
		cx.X[10] = dispatchFn(cx.X[10], args)
		if platform.TimerExpired() {
			yieldFn()
		}
	case scauseSupervisorTimer:
		cx.Sepc += 4
		yieldFn()
	default:
		panic("unsupported trap, scause=" + itohex(scause) + " stval=" + itohex(stval) +
			" sepc=" + itohex(cx.Sepc) + " inst=" + decodeFaultingInstruction(cx.Sepc))
	}
	Return()
}

// Return restores the user stvec and jumps to the trampoline's restore
// stub with a0 pointing at the current task's Context and a1 holding its
// user satp. It never returns.
func Return() {
	SetUserStvec()
	cx := currentTrapCxFn()
	restore(cx, currentUserSatpFn())
}

// TrapFromKernel is installed as stvec while executing in the kernel. A
// trap taken here is always a kernel bug.
func TrapFromKernel() {
	panic("trap taken from kernel mode")
}

func itohex(v uint64) string {
	const digits = "0123456789abcdef"
	if v == 0 {
		return "0x0"
	}
	buf := make([]byte, 0, 18)
	for v > 0 {
		buf = append([]byte{digits[v&0xf]}, buf...)
		v >>= 4
	}
	return "0x" + string(buf)
}
