package emu_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipsim/emu"
)

var _ = Describe("Machine State", func() {
	Describe("Address space", func() {
		It("should derive the data region from the capacities", func() {
			Expect(emu.DataBase).To(Equal(uint32(0x00401000)))
			Expect(emu.DataEnd).To(Equal(uint32(0x00404000)))
			Expect(emu.StackTop).To(Equal(emu.DataEnd))
		})

		It("should accept only aligned data addresses", func() {
			Expect(emu.IsDataAddr(emu.DataBase)).To(BeTrue())
			Expect(emu.IsDataAddr(emu.DataEnd - 4)).To(BeTrue())
			Expect(emu.IsDataAddr(emu.DataBase - 4)).To(BeFalse())
			Expect(emu.IsDataAddr(emu.DataBase + 2)).To(BeFalse())
			Expect(emu.IsDataAddr(emu.DataEnd)).To(BeFalse())
			Expect(emu.IsDataAddr(emu.TextBase)).To(BeFalse())
		})
	})

	Describe("RegFile", func() {
		It("should start with PC at the text base and SP at the top", func() {
			regFile := emu.NewRegFile()

			Expect(regFile.PC).To(Equal(emu.TextBase))
			Expect(regFile.ReadReg(emu.RegSP)).To(Equal(int32(0x00404000)))
			for i := uint8(0); i < emu.NumRegs; i++ {
				if i != emu.RegSP {
					Expect(regFile.ReadReg(i)).To(BeZero())
				}
			}
		})

		It("should ignore out-of-range registers", func() {
			regFile := emu.NewRegFile()

			regFile.WriteReg(40, 7)

			Expect(regFile.ReadReg(40)).To(BeZero())
		})
	})

	Describe("Memory", func() {
		var memory *emu.Memory

		BeforeEach(func() {
			memory = emu.NewMemory()
		})

		It("should be zero-initialised", func() {
			Expect(memory.Read32(emu.TextBase)).To(BeZero())
			Expect(memory.Read32(emu.DataBase)).To(BeZero())
		})

		It("should read back written words", func() {
			memory.Write32(emu.DataBase+8, 0xDEADBEEF)

			Expect(memory.Read32(emu.DataBase + 8)).To(Equal(uint32(0xDEADBEEF)))
		})

		It("should drop accesses outside the image", func() {
			memory.Write32(emu.DataEnd, 1)

			Expect(memory.Read32(emu.DataEnd)).To(BeZero())
			Expect(memory.Contains(emu.TextBase - 4)).To(BeFalse())
		})

		It("should load a program into the instruction region", func() {
			Expect(memory.LoadProgram([]uint32{1, 2, 3})).To(Succeed())

			Expect(memory.Read32(emu.TextBase)).To(Equal(uint32(1)))
			Expect(memory.Read32(emu.TextBase + 8)).To(Equal(uint32(3)))
			Expect(memory.Read32(emu.TextBase + 12)).To(BeZero())
		})

		It("should accept a program that fills the region exactly", func() {
			words := make([]uint32, emu.MaxInstructions)
			words[emu.MaxInstructions-1] = 0xFFFFFFFF

			Expect(memory.LoadProgram(words)).To(Succeed())
			Expect(memory.Read32(emu.DataBase - 4)).To(Equal(uint32(0xFFFFFFFF)))
			Expect(memory.Read32(emu.DataBase)).To(BeZero())
		})

		It("should reject a program larger than the region", func() {
			err := memory.LoadProgram(make([]uint32, emu.MaxInstructions+1))

			Expect(errors.Is(err, emu.ErrProgramTooLarge)).To(BeTrue())
		})
	})
})
