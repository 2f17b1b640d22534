// Package ipc implements the single process-wide RPC rendezvous: one
// client ("caller") and one server ("callee") may have a request/reply in
// flight at a time, mediated entirely through the scheduler's fetch order
// rather than a wait queue.
package ipc

import (
	"rvcore/kernel/proc"
	"rvcore/kernel/sched"
	"rvcore/kernel/sync"
	"rvcore/kernel/task"
)

type channel struct {
	lock   sync.Spinlock
	caller *task.ControlBlock
	callee *task.ControlBlock
	data   []uint64
}

var c channel

// Init wires the scheduler's RPC fast path and the processor's
// re-enqueue rule to this channel. Must be called once during boot,
// before any task is scheduled.
func Init() {
	sched.RPCFetchFn = fetchFn
	proc.RPCCalleeEmptyFn = calleeEmptyFn
}

func fetchFn() *task.ControlBlock {
	c.lock.Acquire()
	defer c.lock.Release()
	if c.callee != nil {
		return c.callee
	}
	if c.caller != nil {
		t := c.caller
		c.caller = nil
		return t
	}
	return nil
}

func calleeEmptyFn() bool {
	c.lock.Acquire()
	defer c.lock.Release()
	return c.callee == nil
}

// Call performs a synchronous RPC to calleeID with args, blocking the
// calling task until the callee produces a reply, and returns the reply
// words.
//
// Any caller already mid-RPC when this one starts (there should be at
// most one, since this is itself called from a blocked task) is
// preserved across the call and restored on return, matching the
// original rendezvous's nested-call discipline.
func Call(calleeID uint64, args []uint64) []uint64 {
	c.lock.Acquire()
	prevCaller := c.caller
	current := proc.CurrentTask()
	c.caller = current
	c.callee = sched.ID2Task(calleeID)
	c.data = args
	c.lock.Release()

	proc.BlockCurrentAndRunNext()

	c.lock.Acquire()
	reply := c.data
	c.caller = prevCaller
	c.lock.Release()
	return reply
}

// Recv is the server's side of receiving a request: it clears callee
// (so the fetch rule re-runs the caller on the next schedule) and blocks
// until woken, then returns the request data that was waiting for it.
func Recv() []uint64 {
	c.lock.Acquire()
	c.callee = nil
	c.lock.Release()

	proc.BlockCurrentAndRunNext()

	c.lock.Acquire()
	data := c.data
	c.lock.Release()
	return data
}

// SendRecv is the server's side of replying and waiting for the next
// request in one step: it installs reply as the channel's data, clears
// callee, blocks, and on the next wake returns whatever request arrived
// in the meantime.
func SendRecv(reply []uint64) []uint64 {
	c.lock.Acquire()
	c.data = reply
	c.callee = nil
	c.lock.Release()

	proc.BlockCurrentAndRunNext()

	c.lock.Acquire()
	next := c.data
	c.lock.Release()
	return next
}
