package insts

import "fmt"

// Disassemble renders a decoded instruction fetched from pc as one line of
// assembly, without a trailing newline. Branch targets are shown as absolute
// addresses.
func Disassemble(inst Instruction, pc uint32) string {
	switch i := inst.(type) {
	case *RInst:
		return disasmR(i)
	case *IInst:
		return disasmI(i, pc)
	case *JInst:
		return fmt.Sprintf("%s\t0x%08x", i.Kind, i.Target)
	default:
		return OpUnknown.String()
	}
}

func disasmR(i *RInst) string {
	switch i.Kind {
	case OpSLL, OpSRL:
		return fmt.Sprintf("%s\t$%d, $%d, %d", i.Kind, i.Rd, i.Rt, i.Shamt)
	case OpJR:
		return fmt.Sprintf("%s\t$%d", i.Kind, i.Rs)
	default:
		return fmt.Sprintf("%s\t$%d, $%d, $%d", i.Kind, i.Rd, i.Rs, i.Rt)
	}
}

func disasmI(i *IInst, pc uint32) string {
	switch i.Kind {
	case OpBEQ, OpBNE:
		target := pc + 4 + uint32(i.Imm<<2)
		return fmt.Sprintf("%s\t$%d, $%d, 0x%08x", i.Kind, i.Rs, i.Rt, target)
	case OpADDIU:
		return fmt.Sprintf("%s\t$%d, $%d, %d", i.Kind, i.Rt, i.Rs, i.Imm)
	case OpANDI, OpORI:
		return fmt.Sprintf("%s\t$%d, $%d, 0x%x", i.Kind, i.Rt, i.Rs, uint32(i.Imm))
	case OpLUI:
		return fmt.Sprintf("%s\t$%d, 0x%x", i.Kind, i.Rt, uint32(i.Imm))
	case OpLW, OpSW:
		return fmt.Sprintf("%s\t$%d, %d($%d)", i.Kind, i.Rt, i.Imm, i.Rs)
	default:
		return i.Kind.String()
	}
}
