// Package syscall implements the kernel's syscall dispatcher: the single
// entry point trap.Handler calls on every UserEnvCall trap, and the
// sys_* bodies it dispatches to. It sits above task/sched/proc/ipc/loader
// in the import graph and is wired into trap via trap.SetHooks at boot.
package syscall

// Dispatch is trap.SetHooks' dispatch callback: it receives the syscall
// id from x10 and its four argument registers (x11..x14) and returns the
// value to write back into x10.
func Dispatch(id uint64, args [4]uint64) uint64 {
	switch id {
	case WRITE:
		return sysWrite(args[0], args[1], args[2])
	case EXIT:
		return sysExit(args[0])
	case YIELD:
		return sysYield()
	case RECV:
		return sysRecv(args[0], args[1])
	case SENDRECV:
		return sysSendRecv(args[0], args[1], args[2], args[3])
	case FORK:
		return sysFork()
	case EXEC:
		return sysExec(args[0], args[1])
	case WAITPID:
		return sysWaitpid(args[0], args[1])
	case READ:
		return sysRead(args[0], args[1], args[2])
	case GETPID:
		return sysGetpid()
	case GETTIME:
		return sysGettime()
	default:
		panic("unsupported syscall id")
	}
}
