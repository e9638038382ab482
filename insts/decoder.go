package insts

import (
	"errors"
	"fmt"
)

// Op represents a MIPS operation, resolved once at decode time from the
// opcode and, for the R format, the funct field.
type Op uint8

// MIPS operations.
const (
	OpUnknown Op = iota
	OpSLL
	OpSRL
	OpJR
	OpADDU
	OpSUBU
	OpAND
	OpOR
	OpSLT
	OpJ
	OpJAL
	OpBEQ
	OpBNE
	OpADDIU
	OpANDI
	OpORI
	OpLUI
	OpLW
	OpSW
)

var opNames = [...]string{
	OpUnknown: "unknown",
	OpSLL:     "sll",
	OpSRL:     "srl",
	OpJR:      "jr",
	OpADDU:    "addu",
	OpSUBU:    "subu",
	OpAND:     "and",
	OpOR:      "or",
	OpSLT:     "slt",
	OpJ:       "j",
	OpJAL:     "jal",
	OpBEQ:     "beq",
	OpBNE:     "bne",
	OpADDIU:   "addiu",
	OpANDI:    "andi",
	OpORI:     "ori",
	OpLUI:     "lui",
	OpLW:      "lw",
	OpSW:      "sw",
}

// String returns the assembler mnemonic of the operation.
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return opNames[OpUnknown]
}

// Format represents an instruction encoding format.
type Format uint8

// Instruction formats.
const (
	FormatUnknown Format = iota
	FormatR              // Register
	FormatI              // Immediate
	FormatJ              // Jump
)

// Primary opcodes (bits [31:26]).
const (
	OpcodeSpecial uint8 = 0
	OpcodeJ       uint8 = 2
	OpcodeJAL     uint8 = 3
	OpcodeBEQ     uint8 = 4
	OpcodeBNE     uint8 = 5
	OpcodeADDIU   uint8 = 9
	OpcodeANDI    uint8 = 12
	OpcodeORI     uint8 = 13
	OpcodeLUI     uint8 = 15
	OpcodeLW      uint8 = 35
	OpcodeSW      uint8 = 43
)

// Funct codes for the R format (bits [5:0]).
const (
	FunctSLL  uint8 = 0
	FunctSRL  uint8 = 2
	FunctJR   uint8 = 8
	FunctADDU uint8 = 33
	FunctSUBU uint8 = 35
	FunctAND  uint8 = 36
	FunctOR   uint8 = 37
	FunctSLT  uint8 = 42
)

var rOps = map[uint8]Op{
	FunctSLL:  OpSLL,
	FunctSRL:  OpSRL,
	FunctJR:   OpJR,
	FunctADDU: OpADDU,
	FunctSUBU: OpSUBU,
	FunctAND:  OpAND,
	FunctOR:   OpOR,
	FunctSLT:  OpSLT,
}

var iOps = map[uint8]Op{
	OpcodeBEQ:   OpBEQ,
	OpcodeBNE:   OpBNE,
	OpcodeADDIU: OpADDIU,
	OpcodeANDI:  OpANDI,
	OpcodeORI:   OpORI,
	OpcodeLUI:   OpLUI,
	OpcodeLW:    OpLW,
	OpcodeSW:    OpSW,
}

var jOps = map[uint8]Op{
	OpcodeJ:   OpJ,
	OpcodeJAL: OpJAL,
}

// Instruction is a decoded MIPS instruction. It is implemented by exactly
// three types: *RInst, *IInst and *JInst.
type Instruction interface {
	// Op returns the operation resolved at decode time.
	Op() Op
	// Format returns the encoding format.
	Format() Format

	isInstruction()
}

// RInst is an R-format instruction (opcode 0).
type RInst struct {
	Kind  Op
	Funct uint8
	Shamt uint8
	Rd    uint8
	Rs    uint8
	Rt    uint8
}

// Op returns the operation.
func (i *RInst) Op() Op { return i.Kind }

// Format returns FormatR.
func (i *RInst) Format() Format { return FormatR }

func (i *RInst) isInstruction() {}

// IInst is an I-format instruction.
type IInst struct {
	Kind   Op
	Opcode uint8
	Rs     uint8
	Rt     uint8

	// Imm is the 16-bit immediate, sign-extended to 32 bits.
	Imm int32
}

// Op returns the operation.
func (i *IInst) Op() Op { return i.Kind }

// Format returns FormatI.
func (i *IInst) Format() Format { return FormatI }

func (i *IInst) isInstruction() {}

// JInst is a J-format instruction.
type JInst struct {
	Kind   Op
	Opcode uint8

	// Target is the absolute jump address. Its top 4 bits come from the PC
	// of the jump itself.
	Target uint32
}

// Op returns the operation.
func (i *JInst) Op() Op { return i.Kind }

// Format returns FormatJ.
func (i *JInst) Format() Format { return FormatJ }

func (i *JInst) isInstruction() {}

// ErrEndOfProgram is returned when the all-zero sentinel word is decoded.
var ErrEndOfProgram = errors.New("end of program")

// UnknownInstructionError is returned for words outside the supported
// instruction set.
type UnknownInstructionError struct {
	Word   uint32
	Opcode uint8
	Funct  uint8
}

func (e *UnknownInstructionError) Error() string {
	if e.Opcode == OpcodeSpecial {
		return fmt.Sprintf("unknown instruction 0x%08x (opcode %d, funct %d)",
			e.Word, e.Opcode, e.Funct)
	}
	return fmt.Sprintf("unknown instruction 0x%08x (opcode %d)", e.Word, e.Opcode)
}

// Decoder decodes MIPS machine code into instructions.
type Decoder struct{}

// NewDecoder creates a new MIPS instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit MIPS instruction word fetched from pc.
//
// The zero word yields ErrEndOfProgram. Any word outside the supported
// instruction set yields an *UnknownInstructionError.
func (d *Decoder) Decode(word, pc uint32) (Instruction, error) {
	if word == 0 {
		return nil, ErrEndOfProgram
	}

	opcode := uint8(word >> 26) // bits [31:26]

	if opcode == OpcodeSpecial {
		return d.decodeR(word)
	}
	if op, ok := iOps[opcode]; ok {
		return d.decodeI(word, opcode, op), nil
	}
	if op, ok := jOps[opcode]; ok {
		return d.decodeJ(word, pc, opcode, op), nil
	}

	return nil, &UnknownInstructionError{Word: word, Opcode: opcode}
}

// decodeR decodes register-format instructions.
// Format: 000000 | rs | rt | rd | shamt | funct
func (d *Decoder) decodeR(word uint32) (Instruction, error) {
	funct := uint8(word & 0x3F)    // bits [5:0]
	shamt := uint8(word>>6) & 0x1F // bits [10:6]
	rd := uint8(word>>11) & 0x1F   // bits [15:11]
	rt := uint8(word>>16) & 0x1F   // bits [20:16]
	rs := uint8(word>>21) & 0x1F   // bits [25:21]

	op, ok := rOps[funct]
	if !ok {
		return nil, &UnknownInstructionError{Word: word, Funct: funct}
	}

	return &RInst{
		Kind:  op,
		Funct: funct,
		Shamt: shamt,
		Rd:    rd,
		Rs:    rs,
		Rt:    rt,
	}, nil
}

// decodeI decodes immediate-format instructions.
// Format: opcode | rs | rt | imm16
func (d *Decoder) decodeI(word uint32, opcode uint8, op Op) *IInst {
	return &IInst{
		Kind:   op,
		Opcode: opcode,
		Rs:     uint8(word>>21) & 0x1F,
		Rt:     uint8(word>>16) & 0x1F,
		Imm:    SignExtend16(word & 0xFFFF),
	}
}

// decodeJ decodes jump-format instructions.
// Format: opcode | target26
func (d *Decoder) decodeJ(word, pc uint32, opcode uint8, op Op) *JInst {
	return &JInst{
		Kind:   op,
		Opcode: opcode,
		Target: (word&0x3FFFFFF)<<2 + pc&0xF0000000,
	}
}

// SignExtend16 sign-extends the low 16 bits of v to 32 bits.
func SignExtend16(v uint32) int32 {
	v &= 0xFFFF
	if v&0x8000 != 0 {
		v |= 0xFFFF0000
	}
	return int32(v)
}
