package kfmt

import (
	"rvcore/kernel"
	"rvcore/kernel/cpu"
)

// haltFn is swapped out in tests; the compiler inlines the real cpu.Halt
// at every other call site.
var haltFn = cpu.Halt

// unknownCause is the *kernel.Error substituted in when Panic is handed a
// plain error or string instead of one of its own.
var unknownCause = &kernel.Error{Module: "rt", Message: "unknown cause"}

// Panic prints a banner describing e, then halts the CPU; it never
// returns. Nothing in this tree acts on the go:redirect-from directive
// below, so the runtime's own panic path does not reach Panic.
//go:redirect-from runtime.gopanic
func Panic(e interface{}) {
	var cause *kernel.Error

	switch v := e.(type) {
	case *kernel.Error:
		cause = v
	case string:
		reportAndHalt(withMessage(v))
		return
	case error:
		cause = withMessage(v.Error())
	}

	reportAndHalt(cause)
}

func withMessage(msg string) *kernel.Error {
	unknownCause.Message = msg
	return unknownCause
}

func reportAndHalt(cause *kernel.Error) {
	Printf("\n-----------------------------------\n")
	if cause != nil {
		Printf("[%s] unrecoverable error: %s\n", cause.Module, cause.Message)
	}
	Printf("*** kernel panic: system halted ***")
	Printf("\n-----------------------------------")

	haltFn()
}

// panicString reports a bare string message and halts. Nothing in this tree
// acts on its go:redirect-from directive, so runtime.throw does not reach it.
//go:redirect-from runtime.throw
func panicString(msg string) {
	reportAndHalt(withMessage(msg))
}
