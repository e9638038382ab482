package emu

import "github.com/sarchlab/mipsim/insts"

// BranchUnit updates the program counter at the end of a cycle.
type BranchUnit struct {
	regFile *RegFile
}

// NewBranchUnit creates a new BranchUnit connected to the given register file.
func NewBranchUnit(regFile *RegFile) *BranchUnit {
	return &BranchUnit{regFile: regFile}
}

// UpdatePC advances the PC past inst and then applies any redirect.
// result is the executor output: the JR target, or the taken branch
// offset (0 when not taken).
func (b *BranchUnit) UpdatePC(inst insts.Instruction, result int32) {
	b.regFile.PC += 4

	switch i := inst.(type) {
	case *insts.RInst:
		if i.Kind == insts.OpJR {
			b.regFile.PC = uint32(result)
		}
	case *insts.JInst:
		b.regFile.PC = i.Target
	case *insts.IInst:
		if i.Kind == insts.OpBEQ || i.Kind == insts.OpBNE {
			b.regFile.PC += uint32(result)
		}
	}
}
