package emu

import "github.com/sarchlab/mipsim/insts"

// FetchStage handles instruction fetch from memory.
type FetchStage struct {
	memory *Memory
}

// NewFetchStage creates a new fetch stage.
func NewFetchStage(memory *Memory) *FetchStage {
	return &FetchStage{memory: memory}
}

// Fetch reads the instruction at the given PC. It returns false if the PC
// does not address a word inside the memory image.
func (s *FetchStage) Fetch(pc uint32) (uint32, bool) {
	if !s.memory.Contains(pc) {
		return 0, false
	}
	return s.memory.Read32(pc), true
}

// RegSnapshot holds the source register values read at decode time. Later
// stages use these values instead of re-reading the register file.
type RegSnapshot struct {
	Rs int32
	Rt int32
	Rd int32
}

// DecodeResult holds the result of the decode stage.
type DecodeResult struct {
	Inst insts.Instruction
	Regs RegSnapshot
}

// DecodeStage handles instruction decode and register read.
type DecodeStage struct {
	regFile *RegFile
	decoder *insts.Decoder
}

// NewDecodeStage creates a new decode stage.
func NewDecodeStage(regFile *RegFile) *DecodeStage {
	return &DecodeStage{
		regFile: regFile,
		decoder: insts.NewDecoder(),
	}
}

// Decode decodes the instruction and snapshots the registers it reads.
// Errors from the decoder (end of program, unknown instruction) are
// returned unchanged.
func (s *DecodeStage) Decode(word, pc uint32) (DecodeResult, error) {
	inst, err := s.decoder.Decode(word, pc)
	if err != nil {
		return DecodeResult{}, err
	}

	result := DecodeResult{Inst: inst}

	switch i := inst.(type) {
	case *insts.RInst:
		result.Regs = RegSnapshot{
			Rs: s.regFile.ReadReg(i.Rs),
			Rt: s.regFile.ReadReg(i.Rt),
			Rd: s.regFile.ReadReg(i.Rd),
		}
	case *insts.IInst:
		result.Regs = RegSnapshot{
			Rs: s.regFile.ReadReg(i.Rs),
			Rt: s.regFile.ReadReg(i.Rt),
		}
	}

	return result, nil
}
