package task

import (
	"rvcore/kernel"
	"rvcore/kernel/mem/addr"
	"rvcore/kernel/mem/vmm"
	"rvcore/kernel/sync"
	"rvcore/kernel/trap"
)

// Priority selects which of the scheduler's two FIFOs a task waits in.
// SERVICE tasks (the process manager) always run ahead of USER tasks.
type Priority int

const (
	PriorityService Priority = iota
	PriorityUser
)

// Status is a task's place in its own lifecycle.
type Status int

const (
	Ready Status = iota
	Running
	Blocked
	Exited
)

// ControlBlock is the kernel's per-task state: the user address space, the
// kernel stack it runs on while trapped, its saved switch context, and its
// lifecycle status. Mutable fields live behind lock so that the scheduler
// and the owning task's own trap path never race on status or context.
type ControlBlock struct {
	ID       uint64
	Priority Priority

	lock sync.Spinlock

	status      Status
	cx          Context
	space       *vmm.AddrSpace
	trapCxPPN   addr.PhysPageNum
	kernelStack *KernelStack
}

// NewStub builds a ControlBlock carrying only an id, priority and Ready
// status, with no backing address space or kernel stack. It exists so
// sched/proc/ipc tests can build scheduler fixtures without a real ELF
// image; callers must not call TrapCx, Fork, Exec or Exit on a stub.
func NewStub(id uint64, priority Priority) *ControlBlock {
	return &ControlBlock{ID: id, Priority: priority, status: Ready}
}

// New builds a task from an ELF image: a fresh user address space, a
// kernel stack at this task's fixed slot, a switch context that resumes
// into trap.Return, and a TrapContext seeded with the entry point and
// user stack top.
func New(elfData []byte, priority Priority) (*ControlBlock, *kernel.Error) {
	space, userSP, entry, err := vmm.NewUser(elfData)
	if err != nil {
		return nil, err
	}
	trapCxPPN, ok := space.TrapContextPPN()
	if !ok {
		return nil, &kernel.Error{Module: "task", Message: "new task has no TrapContext mapping"}
	}

	id := AllocID()
	kstack := NewKernelStack(id, vmm.KernelSpace)
	kernelTop := kstack.Top()

	tcb := &ControlBlock{
		ID:          id,
		Priority:    priority,
		status:      Ready,
		cx:          NewContext(trapReturnAddr(), kernelTop),
		space:       space,
		trapCxPPN:   trapCxPPN,
		kernelStack: kstack,
	}

	*tcb.TrapCx() = trap.New(
		userSP,
		entry,
		readSstatus(),
		vmm.KernelSpace.SATP(),
		trapHandlerAddr(),
		kernelTop,
	)
	return tcb, nil
}

// TrapCx returns the live TrapContext for this task: the physical page it
// lives on, reinterpreted as a *trap.Context.
func (t *ControlBlock) TrapCx() *trap.Context {
	return (*trap.Context)(trapCxPointer(t.trapCxPPN))
}

// Lock/Unlock guard status and cx across the scheduler, the trap path, and
// fork/exec.
func (t *ControlBlock) Lock()   { t.lock.Acquire() }
func (t *ControlBlock) Unlock() { t.lock.Release() }

func (t *ControlBlock) Status() Status     { return t.status }
func (t *ControlBlock) SetStatus(s Status) { t.status = s }
func (t *ControlBlock) Cx() *Context       { return &t.cx }
func (t *ControlBlock) Space() *vmm.AddrSpace {
	return t.space
}

// UserSATP returns the satp value that activates this task's address
// space.
func (t *ControlBlock) UserSATP() uint64 {
	return t.space.SATP()
}

// Fork duplicates the caller's user address space (byte-for-byte, never
// aliasing frames), allocates a fresh id and kernel stack, and clones the
// TrapContext with kernel_sp rewritten to the new stack. The caller is
// responsible for zeroing the child's a0 (its fork return value) and
// enqueuing it; the returned task starts Ready.
func (t *ControlBlock) Fork() (*ControlBlock, *kernel.Error) {
	space, err := t.space.Clone()
	if err != nil {
		return nil, err
	}
	trapCxPPN, ok := space.TrapContextPPN()
	if !ok {
		return nil, &kernel.Error{Module: "task", Message: "forked task has no TrapContext mapping"}
	}

	id := AllocID()
	kstack := NewKernelStack(id, vmm.KernelSpace)
	kernelTop := kstack.Top()

	child := &ControlBlock{
		ID:          id,
		Priority:    t.Priority,
		status:      Ready,
		cx:          NewContext(trapReturnAddr(), kernelTop),
		space:       space,
		trapCxPPN:   trapCxPPN,
		kernelStack: kstack,
	}
	*child.TrapCx() = *t.TrapCx()
	child.TrapCx().KernelSp = kernelTop
	return child, nil
}

// Exec replaces this task's user address space in place with a freshly
// loaded ELF image, re-locating the TrapContext and rewriting it exactly
// as New does. The task id, priority and kernel stack are unchanged.
func (t *ControlBlock) Exec(elfData []byte) *kernel.Error {
	space, userSP, entry, err := vmm.NewUser(elfData)
	if err != nil {
		return err
	}
	trapCxPPN, ok := space.TrapContextPPN()
	if !ok {
		return &kernel.Error{Module: "task", Message: "exec'd task has no TrapContext mapping"}
	}

	t.Lock()
	old := t.space
	t.space = space
	t.trapCxPPN = trapCxPPN
	kernelTop := t.kernelStack.Top()
	t.Unlock()

	old.Destroy()

	*t.TrapCx() = trap.New(
		userSP,
		entry,
		readSstatus(),
		vmm.KernelSpace.SATP(),
		trapHandlerAddr(),
		kernelTop,
	)
	return nil
}

// Exit tears down everything this task owned: its user address space and
// its kernel stack. The task's numeric id outlives this call — it stays
// reserved in the scheduler's id2task index as a zombie entry until its
// parent reaps it through waitpid, which is what actually returns the id
// to the pool (see sched.RecycleID's caller in syscall/proc.go). Freeing
// it here would let a task created before the reap collide with the
// zombie's still-live id2task entry.
func (t *ControlBlock) Exit() {
	t.space.Destroy()
	t.kernelStack.Destroy(vmm.KernelSpace)
}
