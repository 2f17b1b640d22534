// Package sched implements the two-priority FIFO ready queue plus the
// id->task index used by waitpid and the RPC channel to look a task up by
// id without holding a direct reference to it.
package sched

import (
	"rvcore/kernel/sync"
	"rvcore/kernel/task"
)

// RPCFetchFn lets the ipc package insert its fast path ahead of the two
// priority queues without sched importing ipc (which imports sched back
// for ID2Task): FetchTask calls it first and, if it returns a non-nil
// task, returns that task immediately. Set once at boot by ipc.Init.
var RPCFetchFn func() *task.ControlBlock

type scheduler struct {
	lock    sync.Spinlock
	queue   [2][]*task.ControlBlock
	id2task map[uint64]*task.ControlBlock
}

var s = scheduler{id2task: make(map[uint64]*task.ControlBlock)}

// AddTask enqueues task in its priority's FIFO and records it in the id
// index.
func AddTask(t *task.ControlBlock) {
	s.lock.Acquire()
	defer s.lock.Release()
	s.queue[t.Priority] = append(s.queue[t.Priority], t)
	s.id2task[t.ID] = t
}

// PushTask re-enqueues an already-indexed task, e.g. one returning to
// Ready from Running.
func PushTask(t *task.ControlBlock) {
	s.lock.Acquire()
	defer s.lock.Release()
	s.queue[t.Priority] = append(s.queue[t.Priority], t)
}

// FetchTask returns the next task to run: the RPC fast path if one
// applies, else the head of SERVICE's queue, else the head of USER's.
func FetchTask() *task.ControlBlock {
	if RPCFetchFn != nil {
		if t := RPCFetchFn(); t != nil {
			return t
		}
	}

	s.lock.Acquire()
	defer s.lock.Release()
	for p := range s.queue {
		if len(s.queue[p]) > 0 {
			t := s.queue[p][0]
			s.queue[p] = s.queue[p][1:]
			return t
		}
	}
	return nil
}

// ID2Task looks a task up by id, independent of which queue (or neither)
// it currently sits in.
func ID2Task(id uint64) *task.ControlBlock {
	s.lock.Acquire()
	defer s.lock.Release()
	return s.id2task[id]
}

// RecycleID drops the id index's reference to id's task. Once no other
// holder (queue, processor, RPC channel) references it either, the task
// control block becomes garbage.
func RecycleID(id uint64) {
	s.lock.Acquire()
	defer s.lock.Release()
	delete(s.id2task, id)
}
