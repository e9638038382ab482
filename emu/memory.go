package emu

import (
	"errors"
	"fmt"
)

// Address space layout. The data bounds are derived from the capacities so
// the two can never disagree.
const (
	// TextBase is the address of the first instruction word.
	TextBase uint32 = 0x00400000

	// WordSize is the size of a memory word in bytes.
	WordSize uint32 = 4

	// MaxInstructions is the capacity of the instruction region in words.
	MaxInstructions = 1024

	// MaxDataWords is the capacity of the data region in words.
	MaxDataWords = 3072

	// DataBase is the address of the first data word.
	DataBase = TextBase + MaxInstructions*WordSize

	// DataEnd is one past the address of the last data word.
	DataEnd = DataBase + MaxDataWords*WordSize

	// StackTop is the initial stack pointer: one past the end of memory.
	StackTop = DataEnd
)

// ErrProgramTooLarge is returned when a program does not fit in the
// instruction region.
var ErrProgramTooLarge = errors.New("program too big")

// Memory is a flat, word-addressed image of the instruction and data
// regions starting at TextBase.
type Memory struct {
	words []uint32
}

// NewMemory creates a zero-filled memory image.
func NewMemory() *Memory {
	return &Memory{
		words: make([]uint32, MaxInstructions+MaxDataWords),
	}
}

// Contains reports whether addr is a word-aligned address inside the
// memory image.
func (m *Memory) Contains(addr uint32) bool {
	return addr >= TextBase && addr < DataEnd && addr%WordSize == 0
}

// IsDataAddr reports whether addr is a word-aligned address inside the
// data region, the only region loads and stores may touch.
func IsDataAddr(addr uint32) bool {
	return addr >= DataBase && addr < DataEnd && addr%WordSize == 0
}

// Read32 returns the word at addr. Addresses outside the image read as 0.
func (m *Memory) Read32(addr uint32) uint32 {
	if !m.Contains(addr) {
		return 0
	}
	return m.words[(addr-TextBase)/WordSize]
}

// Write32 stores a word at addr. Writes outside the image are dropped.
func (m *Memory) Write32(addr, value uint32) {
	if !m.Contains(addr) {
		return
	}
	m.words[(addr-TextBase)/WordSize] = value
}

// LoadProgram copies words into the instruction region starting at
// TextBase and clears the rest of the region.
func (m *Memory) LoadProgram(words []uint32) error {
	if len(words) > MaxInstructions {
		return fmt.Errorf("%w: %d words, limit %d",
			ErrProgramTooLarge, len(words), MaxInstructions)
	}

	text := m.words[:MaxInstructions]
	n := copy(text, words)
	clear(text[n:])

	return nil
}
