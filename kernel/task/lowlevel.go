package task

import (
	"reflect"
	"rvcore/kernel/mem/addr"
	"rvcore/kernel/trap"
	"unsafe"
)

// trapCxPointer reinterprets the physical page backing ppn as the address
// of a trap.Context, the same raw-memory-as-typed-struct trick pmm and vmm
// already use for page tables and frame contents.
func trapCxPointer(ppn addr.PhysPageNum) unsafe.Pointer {
	b := ppn.Bytes()
	return unsafe.Pointer(&b[0])
}

// trapHandlerAddr and trapReturnAddr resolve the entry address of
// trap.Handler/trap.Return for the TrapContext's trap_handler field and a
// new task's initial return address. reflect.ValueOf(fn).Pointer() is the
// ordinary way to get a function's code address out of the Go runtime;
// there is no freestanding linker here to hand us the symbol directly.
func trapHandlerAddr() uint64 {
	return uint64(reflect.ValueOf(trap.Handler).Pointer())
}

func trapReturnAddr() uint64 {
	return uint64(reflect.ValueOf(trap.Return).Pointer())
}

func readSstatus() uint64 {
	return trap.ReadSstatus()
}
