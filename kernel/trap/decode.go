package trap

// readFaultingWordFn reads the 4 bytes at a user virtual address through
// the faulting task's own page table, returning ok=false if the address
// isn't mapped. Wired by kmain at boot; trap cannot import vmm/proc
// directly (they import trap), so this follows the same hook idiom as
// currentTrapCxFn.
var readFaultingWordFn func(vaddr uint64) (word [4]byte, ok bool)

// SetFaultReader wires the user-memory reader used to render the
// instruction at a faulting sepc for the unsupported-trap panic message.
func SetFaultReader(read func(vaddr uint64) ([4]byte, bool)) {
	readFaultingWordFn = read
}

// decodeFaultingInstruction renders the raw instruction word at sepc for a
// panic banner. golang.org/x/arch ships disassemblers for arm, arm64,
// ppc64 and x86 but none for riscv64, so there is no pack-grounded
// disassembler to call here; this prints the raw encoding instead of
// pulling in a full instruction-table generator for one diagnostic line.
// It never itself panics — this runs on the already-fatal unsupported-trap
// path and must not obscure the original fault.
func decodeFaultingInstruction(sepc uint64) string {
	if readFaultingWordFn == nil {
		return "<no fault reader wired>"
	}
	word, ok := readFaultingWordFn(sepc)
	if !ok {
		return "<unmapped>"
	}
	raw := uint64(word[0]) | uint64(word[1])<<8 | uint64(word[2])<<16 | uint64(word[3])<<24
	return "raw=" + itohex(raw)
}
