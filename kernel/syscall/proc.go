package syscall

import (
	"rvcore/kernel/ipc"
	"rvcore/kernel/loader"
	"rvcore/kernel/mem/vmm"
	"rvcore/kernel/platform"
	"rvcore/kernel/proc"
	"rvcore/kernel/sched"
	"rvcore/kernel/task"
)

// processManagerID is the fixed task id of the "process_manager" server
// every EXIT/FORK/WAITPID notification is routed to.
const processManagerID = 1

func sysExit(exitCode uint64) uint64 {
	t := proc.CurrentTask()
	id := t.ID
	ipc.Call(processManagerID, []uint64{EXIT, id, exitCode})
	proc.ExitCurrentAndRunNext()
	panic("unreachable after sys_exit")
}

func sysYield() uint64 {
	proc.SuspendCurrentAndRunNext()
	return 0
}

func sysGetpid() uint64 {
	return proc.CurrentTask().ID
}

func sysGettime() uint64 {
	return platform.GetTimeMs()
}

func sysFork() uint64 {
	current := proc.CurrentTask()
	child, err := current.Fork()
	if err != nil {
		panic(err)
	}
	child.TrapCx().X[10] = 0
	ipc.Call(processManagerID, []uint64{FORK, current.ID, child.ID})
	sched.AddTask(child)
	return child.ID
}

func sysExec(namePtr, nameLen uint64) uint64 {
	satp := proc.CurrentUserSATP()
	name := string(vmm.CopyBytesFromUser(satp, namePtr, nameLen))
	if name == "process_manager" {
		return negOne
	}
	data := loader.GetAppDataByName(name)
	if data == nil {
		return negOne
	}
	if err := proc.CurrentTask().Exec(data); err != nil {
		panic(err)
	}
	return 0
}

// negOne is -1 reinterpreted as uint64, the isize-return-value idiom this
// whole dispatcher uses: x10 is an unsigned register, but a "negative"
// return is just its two's-complement bit pattern.
const negOne = ^uint64(0)

func sysWaitpid(pid, exitCodePtr uint64) uint64 {
	current := proc.CurrentTask()
	reply := ipc.Call(processManagerID, []uint64{WAITPID, current.ID, pid})
	ret := reply[0]
	if ret != negOne && ret != negTwo {
		satp := proc.CurrentUserSATP()
		vmm.CopyBytesToUser(satp, wordsToBytes(reply[1:2])[:4], exitCodePtr)
		// The reaped child's numeric id is only returned to the pool here,
		// on a successful reap — not at sys_exit. Until this runs, the id
		// stays reserved as a zombie entry in the scheduler's id2task index.
		sched.RecycleID(ret)
		task.FreeID(ret)
	}
	return ret
}

// negTwo is WAITPID's "not yet exited" sentinel.
const negTwo = ^uint64(0) - 1
