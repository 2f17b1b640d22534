package syscall

// Syscall ids, dispatched on x10 by trap.Handler. WRITE/EXIT/YIELD are
// the three the teacher's prototype implemented; RECV through GETTIME
// are this kernel's additions for the process-manager/RPC model and the
// read/time syscalls the user-space shell and init need.
const (
	WRITE = 1
	EXIT  = 2
	YIELD = 3

	RECV     = 4
	SENDRECV = 5
	FORK     = 6
	EXEC     = 7
	WAITPID  = 8

	READ    = 9
	GETPID  = 10
	GETTIME = 11
)
