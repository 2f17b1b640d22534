// Package kmain wires every kernel subsystem together and runs the
// scheduler loop. It is the riscv64 analogue of the teacher's own
// kernel/kmain package: the one Go entry point a bootstrap assembly stub
// calls into once the hart has reached S-mode with a stack.
package kmain

import (
	"io/fs"
	"strings"

	"rvcore/kernel"
	"rvcore/kernel/cpu"
	"rvcore/kernel/driver/uart"
	"rvcore/kernel/ipc"
	"rvcore/kernel/kfmt"
	"rvcore/kernel/loader"
	"rvcore/kernel/mem/addr"
	"rvcore/kernel/mem/pmm"
	"rvcore/kernel/mem/vmm"
	"rvcore/kernel/platform"
	"rvcore/kernel/proc"
	"rvcore/kernel/sched"
	"rvcore/kernel/syscall"
	"rvcore/kernel/task"
	"rvcore/kernel/trap"
)

var errKmainReturned = &kernel.Error{Module: "kmain", Message: "Kmain returned"}

var frameAllocator pmm.Allocator

// Kmain brings the kernel up: console, frame and virtual memory
// allocators, the kernel address space, the trap and syscall wiring, the
// RPC channel, and the embedded applications, then starts the
// process_manager and init tasks and hands off to the scheduler.
//
// Kmain is not expected to return. If it does, that is itself a kernel
// bug and it panics rather than falling off the end into undefined
// behavior.
//
//go:noinline
func Kmain() {
	uart.Init()
	kfmt.SetOutputSink(uart.Writer{})
	kfmt.Printf("booting\n")

	frameAllocator.Init(addr.PhysAddrFrom(uint64(platform.KernelEnd())).Ceil(), addr.PhysAddrFrom(platform.MemoryEnd).Floor())
	vmm.SetFrameAllocator(frameAllocator.AllocTracked)

	if err := vmm.InitKernelSpace(); err != nil {
		kfmt.Panic(err)
	}

	trap.SetHooks(proc.CurrentTrapCx, proc.CurrentUserSATP, syscall.Dispatch, proc.SuspendCurrentAndRunNext)
	trap.SetFaultReader(readFaultingWord)
	ipc.Init()
	registerApps()

	startInitialTasks()

	trap.SetKernelStvec()
	cpu.EnableInterrupts()
	platform.SetTimer(platform.GetTime() + platform.TimeInterval)
	proc.RunTasks()

	kfmt.Panic(errKmainReturned)
}

// registerApps walks the embedded application images and hands each to
// loader under its base name, stripped of the .elf suffix.
func registerApps() {
	entries, err := fs.ReadDir(appFS, "apps")
	if err != nil {
		kfmt.Printf("kmain: no embedded apps: %s\n", err.Error())
		return
	}
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, ".elf") {
			continue
		}
		data, err := fs.ReadFile(appFS, "apps/"+name)
		if err != nil {
			kfmt.Printf("kmain: reading %s: %s\n", name, err.Error())
			continue
		}
		loader.Register(strings.TrimSuffix(name, ".elf"), data)
	}
}

// readFaultingWord reads 4 bytes at a user virtual address through the
// current task's page table, for trap.SetFaultReader. The address named
// in an unsupported-trap scause is whatever the fault happened to leave in
// sepc, so it may well be unmapped; recover converts that into ok=false
// rather than turning a diagnostic read into a second panic.
func readFaultingWord(vaddr uint64) (word [4]byte, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	data := vmm.CopyBytesFromUser(proc.CurrentUserSATP(), vaddr, 4)
	copy(word[:], data)
	return word, true
}

// startInitialTasks creates the process_manager server (SERVICE priority,
// always served ahead of user tasks) and the init task (USER priority),
// and enqueues both. process_manager must exist before any task can
// sys_exit, sys_fork or sys_waitpid, since every one of those RPCs it.
func startInitialTasks() {
	pmData := loader.GetAppDataByName("process_manager")
	if pmData == nil {
		kfmt.Panic(&kernel.Error{Module: "kmain", Message: "no process_manager image"})
	}
	pm, err := task.New(pmData, task.PriorityService)
	if err != nil {
		kfmt.Panic(err)
	}
	sched.AddTask(pm)

	initData := loader.GetAppDataByName("init")
	if initData == nil {
		kfmt.Panic(&kernel.Error{Module: "kmain", Message: "no init image"})
	}
	initTask, err := task.New(initData, task.PriorityUser)
	if err != nil {
		kfmt.Panic(err)
	}
	sched.AddTask(initTask)
}
