// Package emu provides functional MIPS emulation.
package emu

import (
	"errors"
	"fmt"
	"io"

	"github.com/k0kubun/pp/v3"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sirupsen/logrus"

	"github.com/sarchlab/mipsim/insts"
)

// Hook positions invoked by the emulator during a cycle.
var (
	// HookPosFetch fires after an instruction word is fetched.
	// The item is a FetchEvent.
	HookPosFetch = &sim.HookPos{Name: "Fetch"}

	// HookPosDecode fires after a word decodes to a supported instruction.
	// The item is a DecodeEvent.
	HookPosDecode = &sim.HookPos{Name: "Decode"}

	// HookPosRetire fires after an instruction completes. The item is a
	// *CycleReport.
	HookPosRetire = &sim.HookPos{Name: "Retire"}
)

// ErrCycleLimit is returned when the configured instruction limit is hit.
var ErrCycleLimit = errors.New("max instructions reached")

// FetchEvent describes a fetched instruction word.
type FetchEvent struct {
	PC   uint32
	Word uint32
}

// DecodeEvent describes a decoded instruction.
type DecodeEvent struct {
	PC   uint32
	Inst insts.Instruction

	// Text is the disassembly of Inst.
	Text string
}

// CycleReport summarises the architectural changes of one retired
// instruction.
type CycleReport struct {
	Cycle uint64
	PC    uint32
	Word  uint32
	Inst  insts.Instruction
	NewPC uint32

	// RegWritten is true if register Reg was updated to RegValue.
	RegWritten bool
	Reg        uint8
	RegValue   int32

	// MemWritten is true if the word at MemAddr was updated to MemValue.
	MemWritten bool
	MemAddr    uint32
	MemValue   uint32
}

// HaltReason tells why the emulator stopped.
type HaltReason int

// Halt reasons.
const (
	HaltNone HaltReason = iota
	HaltEndOfProgram
	HaltInvalidInstruction
	HaltMemoryFault
	HaltQuit
	HaltCycleLimit
)

func (r HaltReason) String() string {
	switch r {
	case HaltNone:
		return "running"
	case HaltEndOfProgram:
		return "end of program"
	case HaltInvalidInstruction:
		return "invalid instruction"
	case HaltMemoryFault:
		return "memory fault"
	case HaltQuit:
		return "quit"
	case HaltCycleLimit:
		return "cycle limit"
	default:
		return fmt.Sprintf("HaltReason(%d)", int(r))
	}
}

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Halted is true if the cycle ended the simulation.
	Halted bool

	// Reason is set if Halted is true.
	Reason HaltReason

	// Report describes the retired instruction. It is nil if the cycle
	// halted before retiring.
	Report *CycleReport

	// Err carries the terminating condition, if any.
	Err error
}

// Gate is consulted before every cycle of Run. Returning false stops the
// run cleanly.
type Gate interface {
	Proceed() bool
}

// Emulator executes MIPS instructions functionally, one per cycle.
type Emulator struct {
	*sim.HookableBase

	regFile *RegFile
	memory  *Memory

	// Stages
	fetch      *FetchStage
	decode     *DecodeStage
	alu        *ALU
	lsu        *LoadStoreUnit
	writeback  *WritebackStage
	branchUnit *BranchUnit

	gate   Gate
	logger *logrus.Logger
	dumper *pp.PrettyPrinter

	// Execution state
	instructionCount uint64
	maxInstructions  uint64 // 0 means no limit
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *logrus.Logger) EmulatorOption {
	return func(e *Emulator) {
		e.logger = logger
	}
}

// WithGate sets a gate consulted before every cycle of Run.
func WithGate(gate Gate) EmulatorOption {
	return func(e *Emulator) {
		e.gate = gate
	}
}

// WithMaxInstructions sets the maximum number of instructions to execute.
// A value of 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = max
	}
}

// NewEmulator creates a new MIPS emulator in its reset state.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		HookableBase: sim.NewHookableBase(),
		regFile:      NewRegFile(),
		memory:       NewMemory(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = logrus.New()
		e.logger.SetOutput(io.Discard)
	}

	e.dumper = pp.New()
	e.dumper.SetColoringEnabled(false)

	e.fetch = NewFetchStage(e.memory)
	e.decode = NewDecodeStage(e.regFile)
	e.alu = NewALU()
	e.lsu = NewLoadStoreUnit(e.memory)
	e.writeback = NewWritebackStage(e.regFile)
	e.branchUnit = NewBranchUnit(e.regFile)

	return e
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Memory returns the emulator's memory.
func (e *Emulator) Memory() *Memory {
	return e.memory
}

// InstructionCount returns the number of instructions retired.
func (e *Emulator) InstructionCount() uint64 {
	return e.instructionCount
}

// LoadProgram loads program words into the instruction region and points
// the PC at TextBase.
func (e *Emulator) LoadProgram(words []uint32) error {
	if err := e.memory.LoadProgram(words); err != nil {
		return err
	}
	e.regFile.PC = TextBase
	return nil
}

// Step executes a single instruction.
// Returns a StepResult indicating whether execution should continue.
func (e *Emulator) Step() StepResult {
	if e.maxInstructions > 0 && e.instructionCount >= e.maxInstructions {
		return halt(HaltCycleLimit, ErrCycleLimit)
	}

	pc := e.regFile.PC

	// 1. Fetch
	word, ok := e.fetch.Fetch(pc)
	if !ok {
		return halt(HaltMemoryFault, &MemoryAccessError{PC: pc, Addr: pc})
	}
	e.invokeHook(HookPosFetch, FetchEvent{PC: pc, Word: word})

	// 2. Decode
	decoded, err := e.decode.Decode(word, pc)
	if err != nil {
		if errors.Is(err, insts.ErrEndOfProgram) {
			return halt(HaltEndOfProgram, err)
		}
		return halt(HaltInvalidInstruction, err)
	}
	e.traceDecoded(pc, word, decoded)
	if e.NumHooks() > 0 {
		e.invokeHook(HookPosDecode, DecodeEvent{
			PC:   pc,
			Inst: decoded.Inst,
			Text: insts.Disassemble(decoded.Inst, pc),
		})
	}

	// 3. Execute
	result := e.alu.Execute(decoded.Inst, decoded.Regs, pc)

	// 4. Memory
	mem, err := e.lsu.Access(decoded.Inst, result, decoded.Regs, pc)
	if err != nil {
		return halt(HaltMemoryFault, err)
	}

	// 5. Writeback
	reg, written := e.writeback.Writeback(decoded.Inst, mem.Value)

	// 6. PC update
	e.branchUnit.UpdatePC(decoded.Inst, result)

	e.instructionCount++

	report := &CycleReport{
		Cycle:      e.instructionCount,
		PC:         pc,
		Word:       word,
		Inst:       decoded.Inst,
		NewPC:      e.regFile.PC,
		RegWritten: written,
		Reg:        reg,
		RegValue:   e.regFile.ReadReg(reg),
		MemWritten: mem.Changed,
		MemAddr:    mem.Addr,
	}
	if mem.Changed {
		report.MemValue = e.memory.Read32(mem.Addr)
	}
	e.invokeHook(HookPosRetire, report)

	return StepResult{Report: report}
}

// Run executes instructions until the program halts.
//
// Reaching the end-of-program word, an unsupported instruction, or a
// closed gate is a clean stop and returns a nil error. A memory access
// fault returns a *MemoryAccessError; hitting the instruction limit
// returns ErrCycleLimit.
func (e *Emulator) Run() (HaltReason, error) {
	for {
		if e.gate != nil && !e.gate.Proceed() {
			e.logger.Debug("stopped by console")
			return HaltQuit, nil
		}

		result := e.Step()
		if !result.Halted {
			continue
		}

		e.logger.WithFields(logrus.Fields{
			"reason":       result.Reason.String(),
			"instructions": e.instructionCount,
		}).WithError(result.Err).Debug("halted")

		switch result.Reason {
		case HaltEndOfProgram, HaltInvalidInstruction:
			return result.Reason, nil
		default:
			return result.Reason, result.Err
		}
	}
}

func halt(reason HaltReason, err error) StepResult {
	return StepResult{Halted: true, Reason: reason, Err: err}
}

func (e *Emulator) invokeHook(pos *sim.HookPos, item interface{}) {
	if e.NumHooks() == 0 {
		return
	}
	e.InvokeHook(sim.HookCtx{
		Domain: e,
		Pos:    pos,
		Item:   item,
	})
}

func (e *Emulator) traceDecoded(pc, word uint32, decoded DecodeResult) {
	if !e.logger.IsLevelEnabled(logrus.DebugLevel) {
		return
	}

	e.logger.WithFields(logrus.Fields{
		"cycle": e.instructionCount + 1,
		"pc":    fmt.Sprintf("0x%08x", pc),
		"word":  fmt.Sprintf("0x%08x", word),
		"op":    decoded.Inst.Op().String(),
	}).Debug("step")
	e.logger.Debugf("decoded %s regs %s",
		e.dumper.Sprint(decoded.Inst), e.dumper.Sprint(decoded.Regs))
}
