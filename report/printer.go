// Package report renders the per-cycle simulation trace and drives the
// interactive console.
package report

import (
	"fmt"
	"io"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/mipsim/emu"
)

// Printer writes a human-readable trace of every simulated cycle. It is
// attached to an emulator as an akita hook.
type Printer struct {
	out     io.Writer
	regFile *emu.RegFile
	memory  *emu.Memory

	allRegisters bool
	allMemory    bool
}

// PrinterOption configures a Printer.
type PrinterOption func(*Printer)

// WithAllRegisters prints the whole register file after every cycle.
func WithAllRegisters(enabled bool) PrinterOption {
	return func(p *Printer) {
		p.allRegisters = enabled
	}
}

// WithAllMemory prints every nonzero data word after every cycle.
func WithAllMemory(enabled bool) PrinterOption {
	return func(p *Printer) {
		p.allMemory = enabled
	}
}

// NewPrinter creates a Printer that reads state from the given emulator.
func NewPrinter(out io.Writer, e *emu.Emulator, opts ...PrinterOption) *Printer {
	p := &Printer{
		out:     out,
		regFile: e.RegFile(),
		memory:  e.Memory(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Func implements sim.Hook.
func (p *Printer) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case emu.HookPosFetch:
		ev := ctx.Item.(emu.FetchEvent)
		fmt.Fprintf(p.out, "Executing instruction at %08x: %08x\n", ev.PC, ev.Word)
	case emu.HookPosDecode:
		ev := ctx.Item.(emu.DecodeEvent)
		fmt.Fprintln(p.out, ev.Text)
	case emu.HookPosRetire:
		p.printInfo(ctx.Item.(*emu.CycleReport))
	}
}

func (p *Printer) printInfo(r *emu.CycleReport) {
	fmt.Fprintf(p.out, "New pc = %08x\n", r.NewPC)
	p.printRegisters(r)
	p.printMemory(r)
}

func (p *Printer) printRegisters(r *emu.CycleReport) {
	switch {
	case p.allRegisters:
		for k := 0; k < emu.NumRegs; k++ {
			fmt.Fprintf(p.out, "r%02d: %08x  ", k, uint32(p.regFile.R[k]))
			if (k+1)%4 == 0 {
				fmt.Fprintln(p.out)
			}
		}
	case r.RegWritten:
		fmt.Fprintf(p.out, "Updated r%02d to %08x\n", r.Reg, uint32(r.RegValue))
	default:
		fmt.Fprintln(p.out, "No register was updated.")
	}
}

func (p *Printer) printMemory(r *emu.CycleReport) {
	switch {
	case p.allMemory:
		fmt.Fprintln(p.out, "Nonzero memory")
		fmt.Fprintln(p.out, "ADDR\t  CONTENTS")
		for addr := emu.DataBase; addr < emu.DataEnd; addr += emu.WordSize {
			if v := p.memory.Read32(addr); v != 0 {
				fmt.Fprintf(p.out, "%08x  %08x\n", addr, v)
			}
		}
	case r.MemWritten:
		fmt.Fprintf(p.out, "Updated memory at address %08x to %08x\n",
			r.MemAddr, r.MemValue)
	default:
		fmt.Fprintln(p.out, "No memory location was updated.")
	}
}

// PrintFault writes the diagnostic for a memory access fault.
func PrintFault(out io.Writer, err *emu.MemoryAccessError) {
	fmt.Fprintf(out, "Memory Access Exception at 0x%08x: address 0x%08x\n",
		err.PC, err.Addr)
}
