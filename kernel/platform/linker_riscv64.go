package platform

// The following return the virtual addresses of section boundaries defined
// by the kernel's linker script. Each is implemented in linker_riscv64.s as
// a zero-instruction function that simply materializes the address of a
// linker-defined symbol of the same name, exactly as cpu_riscv64.go declares
// its assembly-backed primitives.
func TextStart() uintptr
func TextEnd() uintptr
func RodataStart() uintptr
func RodataEnd() uintptr
func DataStart() uintptr
func DataEnd() uintptr
func BSSStart() uintptr
func BSSEnd() uintptr

// KernelEnd is the first address past the end of the kernel image (.bss
// included), where the frame allocator's free range begins.
func KernelEnd() uintptr
