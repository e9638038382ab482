package emu

import "github.com/sarchlab/mipsim/insts"

// ALU computes the primary result of an instruction. What the result means
// depends on the operation: an arithmetic value, a branch offset, a return
// address or an effective address.
type ALU struct{}

// NewALU creates a new ALU.
func NewALU() *ALU {
	return &ALU{}
}

// Execute computes the result of inst from the decode-time register
// snapshot. pc is the address of inst. All arithmetic wraps around.
func (a *ALU) Execute(inst insts.Instruction, regs RegSnapshot, pc uint32) int32 {
	switch i := inst.(type) {
	case *insts.RInst:
		return a.executeR(i, regs)
	case *insts.IInst:
		return a.executeI(i, regs)
	case *insts.JInst:
		if i.Kind == insts.OpJAL {
			return int32(pc + 4)
		}
	}
	return 0
}

func (a *ALU) executeR(inst *insts.RInst, regs RegSnapshot) int32 {
	switch inst.Kind {
	case insts.OpSLL:
		return regs.Rt << inst.Shamt
	case insts.OpSRL:
		return int32(uint32(regs.Rt) >> inst.Shamt)
	case insts.OpJR:
		return regs.Rs
	case insts.OpADDU:
		return regs.Rs + regs.Rt
	case insts.OpSUBU:
		return regs.Rs - regs.Rt
	case insts.OpAND:
		return regs.Rs & regs.Rt
	case insts.OpOR:
		return regs.Rs | regs.Rt
	case insts.OpSLT:
		if regs.Rs-regs.Rt < 0 {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func (a *ALU) executeI(inst *insts.IInst, regs RegSnapshot) int32 {
	switch inst.Kind {
	case insts.OpBEQ:
		if regs.Rs == regs.Rt {
			return inst.Imm << 2
		}
		return 0
	case insts.OpBNE:
		if regs.Rs == regs.Rt {
			return 0
		}
		return inst.Imm << 2
	case insts.OpADDIU, insts.OpLW, insts.OpSW:
		return regs.Rs + inst.Imm
	case insts.OpANDI:
		return regs.Rs & inst.Imm
	case insts.OpORI:
		return regs.Rs | inst.Imm
	case insts.OpLUI:
		return inst.Imm << 16
	default:
		return 0
	}
}
