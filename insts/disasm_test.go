package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipsim/insts"
)

var _ = Describe("Disassemble", func() {
	const pc = uint32(0x00400008)

	disasm := func(word uint32) string {
		inst, err := insts.NewDecoder().Decode(word, pc)
		Expect(err).NotTo(HaveOccurred())
		return insts.Disassemble(inst, pc)
	}

	DescribeTable("should render each operand layout",
		func(word uint32, text string) {
			Expect(disasm(word)).To(Equal(text))
		},
		Entry("shift", insts.EncodeR(insts.FunctSLL, 0, 3, 2, 4), "sll\t$2, $3, 4"),
		Entry("logical shift right", insts.EncodeR(insts.FunctSRL, 0, 9, 8, 31), "srl\t$8, $9, 31"),
		Entry("jump register", insts.EncodeR(insts.FunctJR, 31, 0, 0, 0), "jr\t$31"),
		Entry("three registers", uint32(0x00221821), "addu\t$3, $1, $2"),
		Entry("set less than", insts.EncodeR(insts.FunctSLT, 4, 5, 6, 0), "slt\t$6, $4, $5"),
		Entry("add immediate", uint32(0x2401FFFB), "addiu\t$1, $0, -5"),
		Entry("and immediate", insts.EncodeI(insts.OpcodeANDI, 2, 3, 0xFF), "andi\t$3, $2, 0xff"),
		Entry("or immediate", insts.EncodeI(insts.OpcodeORI, 2, 3, 0x1234), "ori\t$3, $2, 0x1234"),
		Entry("upper immediate", insts.EncodeI(insts.OpcodeLUI, 0, 1, 0x1001), "lui\t$1, 0x1001"),
		Entry("load", uint32(0x8FA80004), "lw\t$8, 4($29)"),
		Entry("store", insts.EncodeI(insts.OpcodeSW, 29, 8, -8), "sw\t$8, -8($29)"),
		Entry("jump", insts.EncodeJ(insts.OpcodeJ, 0x00400100), "j\t0x00400100"),
		Entry("jump and link", insts.EncodeJ(insts.OpcodeJAL, 0x00400040), "jal\t0x00400040"),
	)

	It("should show branch targets as absolute addresses", func() {
		// beq $1, $2, 3 at 0x00400008 -> 0x00400008 + 4 + 12
		Expect(disasm(insts.EncodeI(insts.OpcodeBEQ, 1, 2, 3))).
			To(Equal("beq\t$1, $2, 0x00400018"))
		// bne $1, $2, -1 at 0x00400008 -> 0x00400008
		Expect(disasm(0x1422FFFF)).To(Equal("bne\t$1, $2, 0x00400008"))
	})

	It("should render a nil instruction as unknown", func() {
		Expect(insts.Disassemble(nil, pc)).To(Equal("unknown"))
	})
})
