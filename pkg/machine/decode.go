package machine

// Opcode identifies one of the fourteen operations. Values 14 and 15
// are reserved and always decode to an invalid instruction.
type Opcode uint32

// The following constants define the opcodes, matching spec.md's §4.3
// numbering exactly.
const (
	OpCMov Opcode = iota
	OpLoad
	OpStore
	OpAdd
	OpMul
	OpDiv
	OpNand
	OpHalt
	OpMap
	OpUnmap
	OpOut
	OpIn
	OpLoadProgram
	OpLoadValue

	opInvalidLow  = 14
	opInvalidHigh = 15
)

// field describes a bitfield by its width and the index of its least
// significant bit, following the Field{width, lsb} table this
// instruction layout was distilled from.
type field struct {
	width uint32
	lsb   uint32
}

var (
	fieldOpcode = field{width: 4, lsb: 28}
	fieldA      = field{width: 3, lsb: 6}
	fieldB      = field{width: 3, lsb: 3}
	fieldC      = field{width: 3, lsb: 0}
	fieldLoadA  = field{width: 3, lsb: 25}
	fieldValue  = field{width: 25, lsb: 0}
)

func mask(bits uint32) uint32 {
	return (1 << bits) - 1
}

func (f field) get(instruction Word) uint32 {
	return (instruction >> f.lsb) & mask(f.width)
}

// DecodeOpcode extracts the 4-bit opcode field from an instruction word.
func DecodeOpcode(instruction Word) Opcode {
	return Opcode(fieldOpcode.get(instruction))
}

// RegisterForm holds the three 3-bit register fields used by opcodes 0
// through 12.
type RegisterForm struct {
	A, B, C uint32
}

// DecodeRegisterForm decodes the A/B/C register fields of instruction.
func DecodeRegisterForm(instruction Word) RegisterForm {
	return RegisterForm{
		A: fieldA.get(instruction),
		B: fieldB.get(instruction),
		C: fieldC.get(instruction),
	}
}

// ImmediateForm holds the fields used by opcode 13 (load value): a
// 3-bit target register and a 25-bit zero-extended immediate.
type ImmediateForm struct {
	A     uint32
	Value Word
}

// DecodeImmediateForm decodes the A/Value fields of instruction.
func DecodeImmediateForm(instruction Word) ImmediateForm {
	return ImmediateForm{
		A:     fieldLoadA.get(instruction),
		Value: fieldValue.get(instruction),
	}
}

// Valid reports whether opcode names one of the fourteen defined
// operations. Opcodes 14 and 15 are invalid and must fault.
func (op Opcode) Valid() bool {
	return uint32(op) != opInvalidLow && uint32(op) < opInvalidHigh
}

// String returns the mnemonic for op, or "invalid" if op is out of range.
func (op Opcode) String() string {
	if int(op) >= 0 && int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return "invalid"
}

var opcodeNames = [...]string{
	OpCMov:        "cmov",
	OpLoad:        "load",
	OpStore:       "store",
	OpAdd:         "add",
	OpMul:         "mul",
	OpDiv:         "div",
	OpNand:        "nand",
	OpHalt:        "halt",
	OpMap:         "map",
	OpUnmap:       "unmap",
	OpOut:         "out",
	OpIn:          "in",
	OpLoadProgram: "loadp",
	OpLoadValue:   "loadv",
}
