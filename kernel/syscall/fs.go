package syscall

import (
	"rvcore/kernel/driver/uart"
	"rvcore/kernel/kfmt"
	"rvcore/kernel/mem/vmm"
	"rvcore/kernel/proc"
)

const fdStdout = 1
const fdStdin = 0

func sysWrite(fd, bufPtr, length uint64) uint64 {
	if fd != fdStdout {
		panic("unsupported fd in sys_write")
	}
	data := vmm.CopyBytesFromUser(proc.CurrentUserSATP(), bufPtr, length)
	kfmt.Printf("%s", string(data))
	return length
}

// sysRead serves exactly one byte from the UART to fd=STDIN, matching
// READ's len=1-only contract. Since the UART is polled, this polls for a
// character, yielding the hart (SuspendCurrentAndRunNext) between polls,
// rather than blocking the task.
func sysRead(fd, bufPtr, length uint64) uint64 {
	if fd != fdStdin || length != 1 {
		panic("unsupported fd/len in sys_read")
	}
	var c byte
	for {
		if b, ok := uart.Getc(); ok {
			c = b
			break
		}
		proc.SuspendCurrentAndRunNext()
	}
	vmm.CopyBytesToUser(proc.CurrentUserSATP(), []byte{c}, bufPtr)
	return 1
}
