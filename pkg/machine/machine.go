package machine

import (
	"errors"
	"io"
)

// Machine holds the full state of one running Universal Machine: its
// register file, program counter, and segment store, plus the stdio
// streams its IN/OUT operations read and write.
//
// A Machine is single-threaded and cooperative: Run owns the dispatch
// loop and there is no internal scheduling or suspension point other
// than the blocking stdin read performed by execIn.
type Machine struct {
	regs     RegisterFile
	pc       Word
	segments *SegmentStore

	stdin  io.Reader
	stdout io.Writer
}

// New constructs a Machine whose segment 0 holds a copy of program.
// Registers start at zero, PC starts at zero, and the free list starts
// empty.
func New(program []Word, stdin io.Reader, stdout io.Writer) *Machine {
	return &Machine{
		segments: NewSegmentStore(program),
		stdin:    stdin,
		stdout:   stdout,
	}
}

// PC returns the current program counter. Exposed for diagnostics and
// tests; never mutated from outside Run/Step.
func (m *Machine) PC() Word {
	return m.pc
}

// Register returns the current value of register i (0..7), for tests
// and diagnostics.
func (m *Machine) Register(i uint32) Word {
	return m.regs.Get(i)
}

// SegmentStats exposes SegmentStore.Stats for observability; see
// SPEC_FULL.md's Supplemented Features.
func (m *Machine) SegmentStats() (mapped, free int) {
	return m.segments.Stats()
}

// Run repeatedly fetches, decodes, and dispatches instructions from
// segment 0 starting at the current PC, until the machine halts or a
// fault occurs. It returns nil on HALT and a non-nil *Fault on any
// fault; Halted itself is never returned (Run translates it to nil).
func (m *Machine) Run() error {
	for {
		if err := m.Step(); err != nil {
			if errors.Is(err, Halted) {
				return nil
			}
			return err
		}
	}
}

// Step fetches, decodes, and executes exactly one instruction, advancing
// PC by one before dispatch (so that LOADP's unconditional PC write
// always wins, matching spec.md §4.3's PC-advancement rule). It returns
// Halted on HALT and a *Fault on any fault.
func (m *Machine) Step() error {
	instruction, err := m.segments.FetchCode(m.pc)
	if err != nil {
		return err
	}
	m.pc++
	if err := m.dispatch(instruction); err != nil {
		if f, ok := err.(*Fault); ok {
			return f.withInstruction(instruction)
		}
		return err
	}
	return nil
}

// dispatch is the hot path: decode the opcode, then a dense switch to
// the corresponding handler. Opcodes 14 and 15 are invalid and fault.
func (m *Machine) dispatch(instruction Word) error {
	op := DecodeOpcode(instruction)
	if op == OpLoadValue {
		return m.execLoadValue(DecodeImmediateForm(instruction))
	}
	if !op.Valid() {
		return newFault(FaultInvalidOpcode, "opcode %d at instruction %#08x", uint32(op), instruction)
	}

	f := DecodeRegisterForm(instruction)
	switch op {
	case OpCMov:
		return m.execCMov(f)
	case OpLoad:
		return m.execLoad(f)
	case OpStore:
		return m.execStore(f)
	case OpAdd:
		return m.execAdd(f)
	case OpMul:
		return m.execMul(f)
	case OpDiv:
		return m.execDiv(f)
	case OpNand:
		return m.execNand(f)
	case OpHalt:
		return Halted
	case OpMap:
		return m.execMap(f)
	case OpUnmap:
		return m.execUnmap(f)
	case OpOut:
		return m.execOut(f)
	case OpIn:
		return m.execIn(f)
	case OpLoadProgram:
		return m.execLoadProgram(f)
	default:
		return newFault(FaultInvalidOpcode, "opcode %d at instruction %#08x", uint32(op), instruction)
	}
}
