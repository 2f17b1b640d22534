package vmm

import "rvcore/kernel"

// KernelSpace is the process-wide kernel address space, built once at boot
// by InitKernelSpace and shared by every task's kernel stack, trap path and
// page-table lookups that need to fall back into kernel mappings.
var KernelSpace *AddrSpace

// InitKernelSpace builds the kernel's identity-mapped address space. Must
// be called exactly once, before any task is created.
func InitKernelSpace() *kernel.Error {
	space, err := NewKernel()
	if err != nil {
		return err
	}
	KernelSpace = space
	return nil
}
