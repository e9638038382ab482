package emu

import (
	"fmt"

	"github.com/sarchlab/mipsim/insts"
)

// MemoryAccessError reports a load or store outside the data region or not
// aligned to a word.
type MemoryAccessError struct {
	// PC is the address of the faulting instruction.
	PC uint32
	// Addr is the offending effective address.
	Addr uint32
}

func (e *MemoryAccessError) Error() string {
	return fmt.Sprintf("memory access exception at 0x%08x: address 0x%08x", e.PC, e.Addr)
}

// MemoryResult holds the result of the memory-access stage.
type MemoryResult struct {
	// Value is forwarded to writeback: the loaded word for LW, the
	// executor result otherwise.
	Value int32

	// Changed is true if a store updated Addr.
	Changed bool
	Addr    uint32
}

// LoadStoreUnit implements the memory-access stage.
type LoadStoreUnit struct {
	memory *Memory
}

// NewLoadStoreUnit creates a new LoadStoreUnit connected to the given
// memory.
func NewLoadStoreUnit(memory *Memory) *LoadStoreUnit {
	return &LoadStoreUnit{memory: memory}
}

// Access performs the load or store of inst, if any. result is the
// executor's output, regs the decode-time snapshot and pc the address of
// inst. An invalid address is detected before memory is touched.
func (lsu *LoadStoreUnit) Access(
	inst insts.Instruction,
	result int32,
	regs RegSnapshot,
	pc uint32,
) (MemoryResult, error) {
	switch inst.Op() {
	case insts.OpLW:
		addr := uint32(result)
		if !IsDataAddr(addr) {
			return MemoryResult{}, &MemoryAccessError{PC: pc, Addr: addr}
		}
		return MemoryResult{Value: int32(lsu.memory.Read32(addr))}, nil

	case insts.OpSW:
		addr := uint32(result)
		if !IsDataAddr(addr) {
			return MemoryResult{}, &MemoryAccessError{PC: pc, Addr: addr}
		}
		lsu.memory.Write32(addr, uint32(regs.Rt))
		return MemoryResult{Value: result, Changed: true, Addr: addr}, nil

	default:
		return MemoryResult{Value: result}, nil
	}
}
