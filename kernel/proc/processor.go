// Package proc implements the single-hart processor: the "idle" switch
// context that every task switch passes through, the current-task slot,
// and the suspend/block/exit transitions that take a task out of
// Running.
package proc

import (
	"rvcore/kernel/platform"
	"rvcore/kernel/sched"
	"rvcore/kernel/sync"
	"rvcore/kernel/task"
	"rvcore/kernel/trap"
)

// RPCCalleeEmptyFn reports whether the RPC channel's callee slot is
// empty. SuspendCurrentAndRunNext only re-enqueues the outgoing task when
// this is true — otherwise the task is the callee of an in-flight RPC and
// is re-entered through the RPC fast path instead. Set once at boot by
// ipc.Init; nil (treated as "empty") before wiring, since RPC cannot be
// in flight before ipc exists.
var RPCCalleeEmptyFn func() bool

type processor struct {
	lock    sync.Spinlock
	current *task.ControlBlock
	idleCx  task.Context
}

var p processor

// CurrentTask returns the task presently assigned to the processor, or
// nil if it is idling.
func CurrentTask() *task.ControlBlock {
	p.lock.Acquire()
	defer p.lock.Release()
	return p.current
}

// TakeCurrentTask clears and returns the processor's current task.
func TakeCurrentTask() *task.ControlBlock {
	p.lock.Acquire()
	defer p.lock.Release()
	t := p.current
	p.current = nil
	return t
}

// CurrentUserSATP returns the satp of the currently running task's
// address space.
func CurrentUserSATP() uint64 {
	return CurrentTask().UserSATP()
}

// CurrentTrapCx returns the currently running task's TrapContext.
func CurrentTrapCx() *trap.Context {
	return CurrentTask().TrapCx()
}

// RunTasks is the processor's idle loop: fetch the next ready task, mark
// it Running, record it as current, and switch into its kernel context
// through the idle context. It never returns: when fetch finds no ready
// task it polls again.
func RunTasks() {
	for {
		t := sched.FetchTask()
		if t == nil {
			continue
		}

		p.lock.Acquire()
		t.Lock()
		nextCx := t.Cx()
		t.SetStatus(task.Running)
		t.Unlock()
		p.current = t
		idleCxPtr := &p.idleCx
		p.lock.Release()

		platform.SetTimer(platform.GetTime() + platform.TimeInterval)
		task.Switch(idleCxPtr, nextCx)
	}
}

// Schedule saves the caller's context into savedCx and resumes the idle
// context, returning control to RunTasks' loop.
func Schedule(savedCx *task.Context) {
	p.lock.Acquire()
	idleCxPtr := &p.idleCx
	p.lock.Release()
	task.Switch(savedCx, idleCxPtr)
}

func rpcCalleeEmpty() bool {
	if RPCCalleeEmptyFn == nil {
		return true
	}
	return RPCCalleeEmptyFn()
}

// SuspendCurrentAndRunNext takes the current task out of the processor,
// marks it Ready, re-enqueues it unless it is the callee of an in-flight
// RPC, and schedules.
func SuspendCurrentAndRunNext() {
	t := TakeCurrentTask()
	t.Lock()
	cx := t.Cx()
	t.SetStatus(task.Ready)
	t.Unlock()

	if rpcCalleeEmpty() {
		sched.PushTask(t)
	}
	Schedule(cx)
}

// BlockCurrentAndRunNext takes the current task out without re-enqueuing
// it; whatever blocked it (RPC, waitpid) is responsible for waking it.
func BlockCurrentAndRunNext() {
	t := TakeCurrentTask()
	t.Lock()
	cx := t.Cx()
	t.SetStatus(task.Blocked)
	t.Unlock()
	Schedule(cx)
}

// ExitCurrentAndRunNext marks the current task Exited, tears down its
// resources, and schedules without saving its context anywhere (it is
// never resumed).
func ExitCurrentAndRunNext() {
	t := TakeCurrentTask()
	t.Lock()
	t.SetStatus(task.Exited)
	t.Unlock()
	t.Exit()

	var unused task.Context
	Schedule(&unused)
}
