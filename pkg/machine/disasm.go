package machine

import "fmt"

// Disassemble renders instruction as a short mnemonic string, used only
// to enrich fault diagnostics (spec.md §7 recommends naming the fault
// kind on stderr); it is never used for tracing or stepping, both of
// which are explicit Non-goals.
func Disassemble(instruction Word) string {
	op := DecodeOpcode(instruction)
	if op == OpLoadValue {
		f := DecodeImmediateForm(instruction)
		return fmt.Sprintf("loadv r%d, %d", f.A, f.Value)
	}
	if !op.Valid() {
		return fmt.Sprintf("<invalid opcode %d>", uint32(op))
	}
	f := DecodeRegisterForm(instruction)
	switch op {
	case OpCMov:
		return fmt.Sprintf("cmov r%d, r%d, r%d", f.A, f.B, f.C)
	case OpLoad:
		return fmt.Sprintf("load r%d, r%d, r%d", f.A, f.B, f.C)
	case OpStore:
		return fmt.Sprintf("store r%d, r%d, r%d", f.A, f.B, f.C)
	case OpAdd:
		return fmt.Sprintf("add r%d, r%d, r%d", f.A, f.B, f.C)
	case OpMul:
		return fmt.Sprintf("mul r%d, r%d, r%d", f.A, f.B, f.C)
	case OpDiv:
		return fmt.Sprintf("div r%d, r%d, r%d", f.A, f.B, f.C)
	case OpNand:
		return fmt.Sprintf("nand r%d, r%d, r%d", f.A, f.B, f.C)
	case OpHalt:
		return "halt"
	case OpMap:
		return fmt.Sprintf("map r%d, r%d", f.B, f.C)
	case OpUnmap:
		return fmt.Sprintf("unmap r%d", f.C)
	case OpOut:
		return fmt.Sprintf("out r%d", f.C)
	case OpIn:
		return fmt.Sprintf("in r%d", f.C)
	case OpLoadProgram:
		return fmt.Sprintf("loadp r%d, r%d", f.B, f.C)
	default:
		return fmt.Sprintf("<invalid opcode %d>", uint32(op))
	}
}
