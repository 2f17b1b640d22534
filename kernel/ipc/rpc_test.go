package ipc

import (
	"rvcore/kernel/proc"
	"rvcore/kernel/sched"
	"rvcore/kernel/task"
	"testing"
)

// Call/Recv/SendRecv all end in proc.BlockCurrentAndRunNext, which (like
// everything in kernel/proc beyond its bookkeeping accessors) bottoms out
// in a real asm context switch with no hosted stand-in. These tests cover
// the channel's pure fetch/callee-empty logic that sched and proc wire to,
// directly against the unexported channel state.

func resetChannel() {
	c.caller = nil
	c.callee = nil
	c.data = nil
}

func TestFetchFnPrefersCalleeThenCaller(t *testing.T) {
	resetChannel()
	if got := fetchFn(); got != nil {
		t.Fatalf("expected nil fetch on an empty channel, got %v", got)
	}

	caller := task.NewStub(1, task.PriorityUser)
	c.caller = caller
	if got := fetchFn(); got != caller {
		t.Fatalf("expected the caller to be fetched, got %v", got)
	}
	if c.caller != nil {
		t.Fatal("expected fetchFn to consume the caller slot")
	}

	resetChannel()
	callee := task.NewStub(2, task.PriorityService)
	caller2 := task.NewStub(3, task.PriorityUser)
	c.callee = callee
	c.caller = caller2
	if got := fetchFn(); got != callee {
		t.Fatalf("expected callee to take priority over caller, got %v", got)
	}
	if c.callee == nil {
		t.Fatal("fetchFn must not consume the callee slot; the wake path clears it")
	}
}

func TestCalleeEmptyFn(t *testing.T) {
	resetChannel()
	if !calleeEmptyFn() {
		t.Fatal("expected calleeEmptyFn true on an empty channel")
	}

	c.callee = task.NewStub(5, task.PriorityUser)
	if calleeEmptyFn() {
		t.Fatal("expected calleeEmptyFn false once callee is set")
	}
}

func TestInitWiresSchedAndProcHooks(t *testing.T) {
	resetChannel()
	sched.RPCFetchFn = nil
	proc.RPCCalleeEmptyFn = nil

	Init()

	if sched.RPCFetchFn == nil {
		t.Fatal("expected Init to wire sched.RPCFetchFn")
	}
	if proc.RPCCalleeEmptyFn == nil {
		t.Fatal("expected Init to wire proc.RPCCalleeEmptyFn")
	}
}
