package emu

// Register conventions.
const (
	// RegZero is never written by the writeback stage.
	RegZero uint8 = 0
	// RegSP is the stack pointer.
	RegSP uint8 = 29
	// RegRA is the link register written by JAL.
	RegRA uint8 = 31

	// NumRegs is the number of general-purpose registers.
	NumRegs = 32
)

// RegFile represents the MIPS register file and program counter.
type RegFile struct {
	// R holds general-purpose registers $0-$31.
	// R[0] stays zero because writeback never targets it; the storage
	// itself does not enforce this.
	R [NumRegs]int32

	// PC is the program counter. It is always word-aligned while the
	// program runs sequentially.
	PC uint32
}

// NewRegFile returns a register file in its reset state: PC at TextBase,
// the stack pointer one past the end of memory and every other register
// zero.
func NewRegFile() *RegFile {
	r := &RegFile{PC: TextBase}
	r.R[RegSP] = int32(StackTop)
	return r
}

// ReadReg reads a register value. Registers >= 32 return 0.
func (r *RegFile) ReadReg(reg uint8) int32 {
	if reg >= NumRegs {
		return 0
	}
	return r.R[reg]
}

// WriteReg writes a value to a register. Writes to registers >= 32 are
// ignored.
func (r *RegFile) WriteReg(reg uint8, value int32) {
	if reg >= NumRegs {
		return
	}
	r.R[reg] = value
}
