package emu

import "github.com/sarchlab/mipsim/insts"

// WritebackStage handles register file writeback.
type WritebackStage struct {
	regFile *RegFile
}

// NewWritebackStage creates a new writeback stage.
func NewWritebackStage(regFile *RegFile) *WritebackStage {
	return &WritebackStage{regFile: regFile}
}

// Writeback commits value to the destination register of inst. It returns
// the register written, or false if the instruction writes none.
func (s *WritebackStage) Writeback(inst insts.Instruction, value int32) (uint8, bool) {
	reg, ok := destination(inst)
	if !ok || reg == RegZero {
		return 0, false
	}

	s.regFile.WriteReg(reg, value)

	return reg, true
}

func destination(inst insts.Instruction) (uint8, bool) {
	switch i := inst.(type) {
	case *insts.RInst:
		if i.Kind == insts.OpJR {
			return 0, false
		}
		return i.Rd, true
	case *insts.IInst:
		switch i.Kind {
		case insts.OpADDIU, insts.OpANDI, insts.OpORI, insts.OpLUI, insts.OpLW:
			return i.Rt, true
		}
	case *insts.JInst:
		if i.Kind == insts.OpJAL {
			return RegRA, true
		}
	}
	return 0, false
}
