package machine

import (
	"errors"
	"io"
)

// flusher is satisfied by writers (e.g. *bufio.Writer) that buffer
// output and need an explicit flush. OUT must make each byte observable
// immediately, which matters for interactive programs driven by the UM,
// so Machine flushes after every OUT when the configured writer supports
// it.
type flusher interface {
	Flush() error
}

// execCMov implements opcode 0: if R[C] != 0 then R[A] <- R[B].
func (m *Machine) execCMov(f RegisterForm) error {
	if m.regs.Get(f.C) != 0 {
		m.regs.Set(f.A, m.regs.Get(f.B))
	}
	return nil
}

// execLoad implements opcode 1: R[A] <- read(R[B], R[C]).
func (m *Machine) execLoad(f RegisterForm) error {
	value, err := m.segments.Read(m.regs.Get(f.B), m.regs.Get(f.C))
	if err != nil {
		return err
	}
	m.regs.Set(f.A, value)
	return nil
}

// execStore implements opcode 2: write(R[A], R[B], R[C]).
func (m *Machine) execStore(f RegisterForm) error {
	return m.segments.Write(m.regs.Get(f.A), m.regs.Get(f.B), m.regs.Get(f.C))
}

// execAdd implements opcode 3: R[A] <- R[B] + R[C] (wrapping).
func (m *Machine) execAdd(f RegisterForm) error {
	m.regs.Set(f.A, m.regs.Get(f.B)+m.regs.Get(f.C))
	return nil
}

// execMul implements opcode 4: R[A] <- R[B] * R[C] (wrapping).
func (m *Machine) execMul(f RegisterForm) error {
	m.regs.Set(f.A, m.regs.Get(f.B)*m.regs.Get(f.C))
	return nil
}

// execDiv implements opcode 5: R[A] <- R[B] / R[C] (unsigned). Faults
// on division by zero rather than silently no-op'ing or panicking; see
// DESIGN.md's resolution of the corresponding Open Question.
func (m *Machine) execDiv(f RegisterForm) error {
	divisor := m.regs.Get(f.C)
	if divisor == 0 {
		return newFault(FaultDivideByZero, "division by zero at register %d", f.C)
	}
	m.regs.Set(f.A, m.regs.Get(f.B)/divisor)
	return nil
}

// execNand implements opcode 6: R[A] <- ^(R[B] & R[C]).
func (m *Machine) execNand(f RegisterForm) error {
	m.regs.Set(f.A, ^(m.regs.Get(f.B) & m.regs.Get(f.C)))
	return nil
}

// execMap implements opcode 8: R[B] <- SegmentStore.Map(R[C]).
func (m *Machine) execMap(f RegisterForm) error {
	id := m.segments.Map(m.regs.Get(f.C))
	m.regs.Set(f.B, id)
	return nil
}

// execUnmap implements opcode 9: SegmentStore.Unmap(R[C]).
func (m *Machine) execUnmap(f RegisterForm) error {
	return m.segments.Unmap(m.regs.Get(f.C))
}

// execOut implements opcode 10: write the low byte of R[C] to stdout,
// flushing immediately.
func (m *Machine) execOut(f RegisterForm) error {
	b := byte(m.regs.Get(f.C) & 0xff)
	if _, err := m.stdout.Write([]byte{b}); err != nil {
		return newFault(FaultIO, "stdout write failed: %s", err)
	}
	if fl, ok := m.stdout.(flusher); ok {
		if err := fl.Flush(); err != nil {
			return newFault(FaultIO, "stdout flush failed: %s", err)
		}
	}
	return nil
}

// execIn implements opcode 11: read one byte from stdin into R[C],
// zero-extended. EOF yields 0xFFFFFFFF.
func (m *Machine) execIn(f RegisterForm) error {
	var buf [1]byte
	_, err := io.ReadFull(m.stdin, buf[:])
	switch {
	case err == nil:
		m.regs.Set(f.C, Word(buf[0]))
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		m.regs.Set(f.C, 0xFFFFFFFF)
	default:
		return newFault(FaultIO, "stdin read failed: %s", err)
	}
	return nil
}

// execLoadProgram implements opcode 12: if R[B] != 0, replace segment 0
// with a deep copy of segment R[B]; then unconditionally set PC <- R[C].
//
// The deep copy is required, not an optimisation target: the source
// segment may still be read/written by the program after the jump, so
// it must not be moved or aliased into segment 0. See spec.md §9.
func (m *Machine) execLoadProgram(f RegisterForm) error {
	source := m.regs.Get(f.B)
	if source != 0 {
		if err := m.segments.ReplaceZero(source); err != nil {
			return err
		}
	}
	m.pc = m.regs.Get(f.C)
	return nil
}

// execLoadValue implements opcode 13: R[A'] <- V.
func (m *Machine) execLoadValue(f ImmediateForm) error {
	m.regs.Set(f.A, f.Value)
	return nil
}
