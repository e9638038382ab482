// Package insts provides MIPS instruction definitions and decoding.
//
// This package implements decoding of 32-bit MIPS machine words into one of
// three structural formats. It supports:
//   - R format: SLL, SRL, JR, ADDU, SUBU, AND, OR, SLT
//   - I format: BEQ, BNE, ADDIU, ANDI, ORI, LUI, LW, SW
//   - J format: J, JAL
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst, err := decoder.Decode(0x24010005, 0x00400000) // addiu $1, $0, 5
//	fmt.Println(insts.Disassemble(inst, 0x00400000))
package insts
