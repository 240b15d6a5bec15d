package machine

import "fmt"

// FaultKind names one of the fault categories spec.md §7 defines. All
// faults are unrecoverable: they terminate the machine with a non-zero
// status and no partial state is preserved beyond what already landed in
// registers/memory before the fault was raised.
type FaultKind string

const (
	FaultInvalidOpcode FaultKind = "invalid-opcode"
	FaultDivideByZero  FaultKind = "divide-by-zero"
	FaultSegment       FaultKind = "segment"
	FaultFetch         FaultKind = "fetch"
	FaultIO            FaultKind = "io"
	FaultProgram       FaultKind = "malformed-program"
)

// Fault is the error type returned by every handler and by the
// execution loop on any unrecoverable condition.
type Fault struct {
	Kind FaultKind
	msg  string

	hasInstruction bool
	instruction    Word
}

func newFault(kind FaultKind, format string, args ...any) *Fault {
	return &Fault{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// withInstruction annotates the fault with the instruction word that
// was executing when it occurred, so Error can name both the fault kind
// and the offending mnemonic (SPEC_FULL.md Supplemented Features #3).
func (f *Fault) withInstruction(instruction Word) *Fault {
	f.hasInstruction = true
	f.instruction = instruction
	return f
}

func (f *Fault) Error() string {
	if f.hasInstruction {
		return fmt.Sprintf("%s fault: %s (at %s)", f.Kind, f.msg, Disassemble(f.instruction))
	}
	return fmt.Sprintf("%s fault: %s", f.Kind, f.msg)
}

// Halted is returned by Step when the machine executes a HALT
// instruction; Run translates it to nil. It is not a fault: the process
// should exit 0.
var Halted = fmt.Errorf("machine: halted")
