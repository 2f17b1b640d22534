package task

import (
	"rvcore/kernel/mem/addr"
	"rvcore/kernel/mem/vmm"
	"rvcore/kernel/platform"
)

// KernelStack is the Framed MapArea carved out of the kernel address space
// for one task, at the fixed slot platform.KernelStackPos(id) computes. It
// is exclusively owned: no other task's stack overlaps it, and destroying
// it unmaps the area from the kernel space.
type KernelStack struct {
	id uint64
}

// NewKernelStack maps a fresh kernel stack for id into kernelSpace.
func NewKernelStack(id uint64, kernelSpace *vmm.AddrSpace) *KernelStack {
	bottom, top := platform.KernelStackPos(id)
	kernelSpace.Push(vmm.NewMapArea(addr.VirtAddr(bottom), addr.VirtAddr(top), vmm.Framed, vmm.FlagR|vmm.FlagW), nil)
	return &KernelStack{id: id}
}

// Top returns the initial stack pointer for this stack.
func (k *KernelStack) Top() uint64 {
	_, top := platform.KernelStackPos(k.id)
	return top
}

// Destroy unmaps the stack's area from kernelSpace. Must be called exactly
// once, when the owning task exits.
func (k *KernelStack) Destroy(kernelSpace *vmm.AddrSpace) {
	bottom, _ := platform.KernelStackPos(k.id)
	kernelSpace.RemoveArea(addr.VirtAddr(bottom).Floor())
}
