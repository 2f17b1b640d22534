package proc

import (
	"rvcore/kernel/task"
	"testing"
)

// These tests cover the processor's bookkeeping surface only. RunTasks,
// Schedule, and the suspend/block/exit transitions all end in task.Switch,
// a real asm context switch with no hosted-Go stand-in — exercising those
// means actually jumping through a task's saved context, which only makes
// sense cross-compiled for riscv64 and run on (or under an emulator for)
// real hardware, not in a unit test process.

func TestCurrentTaskAndTakeCurrentTask(t *testing.T) {
	stub := task.NewStub(3, task.PriorityUser)
	p.lock.Acquire()
	p.current = stub
	p.lock.Release()

	if got := CurrentTask(); got != stub {
		t.Fatalf("expected CurrentTask to return the stub, got %v", got)
	}

	taken := TakeCurrentTask()
	if taken != stub {
		t.Fatalf("expected TakeCurrentTask to return the stub, got %v", taken)
	}
	if CurrentTask() != nil {
		t.Fatal("expected CurrentTask to be nil after TakeCurrentTask")
	}
}

func TestRpcCalleeEmptyDefaultsToTrue(t *testing.T) {
	RPCCalleeEmptyFn = nil
	if !rpcCalleeEmpty() {
		t.Fatal("expected rpcCalleeEmpty to default to true when unwired")
	}

	RPCCalleeEmptyFn = func() bool { return false }
	defer func() { RPCCalleeEmptyFn = nil }()
	if rpcCalleeEmpty() {
		t.Fatal("expected rpcCalleeEmpty to reflect the wired hook")
	}
}
