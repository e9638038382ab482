// Package main provides the mipsim command, a functional simulator for a
// subset of 32-bit MIPS.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sarchlab/mipsim/config"
	"github.com/sarchlab/mipsim/emu"
	"github.com/sarchlab/mipsim/loader"
	"github.com/sarchlab/mipsim/report"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// execute runs the command line and returns the process exit status.
func execute(args []string, in io.Reader, out, errOut io.Writer) int {
	cmd := newRootCmd(in, out, errOut)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		if errors.Is(err, loader.ErrProgramTooLarge) {
			fmt.Fprintln(errOut, "Program too big.")
		} else {
			fmt.Fprintf(errOut, "Error: %v\n", err)
		}
		return 1
	}

	return 0
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	var (
		registers   bool
		memory      bool
		debug       bool
		interactive bool
		maxCycles   uint64
		configPath  string
		saveConfig  string
	)

	cmd := &cobra.Command{
		Use:           "mipsim [flags] <image>",
		Short:         "Functional simulator for a subset of 32-bit MIPS",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultRunConfig()
			if configPath != "" {
				loaded, err := config.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			flags := cmd.Flags()
			if flags.Changed("registers") {
				cfg.PrintRegisters = registers
			}
			if flags.Changed("memory") {
				cfg.PrintMemory = memory
			}
			if flags.Changed("debug") {
				cfg.Debug = debug
			}
			if flags.Changed("interactive") {
				cfg.Interactive = interactive
			}
			if flags.Changed("max-cycles") {
				cfg.MaxCycles = maxCycles
			}

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid run config: %w", err)
			}

			if saveConfig != "" {
				if err := cfg.SaveConfig(saveConfig); err != nil {
					return err
				}
			}

			return simulate(cfg, args[0], in, out, errOut)
		},
	}

	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	cmd.Flags().BoolVarP(&registers, "registers", "r", false, "Print all registers after every instruction")
	cmd.Flags().BoolVarP(&memory, "memory", "m", false, "Print all nonzero data memory after every instruction")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "Enable debug tracing on stderr")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Wait for a line before every instruction ('q' quits)")
	cmd.Flags().Uint64Var(&maxCycles, "max-cycles", 0, "Stop after this many instructions (0 = no limit)")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to run configuration JSON file")
	cmd.Flags().StringVar(&saveConfig, "save-config", "", "Write the effective run configuration to this JSON file")

	return cmd
}

// simulate loads the image at path and runs it to completion.
func simulate(
	cfg *config.RunConfig,
	path string,
	in io.Reader,
	out, errOut io.Writer,
) error {
	logger := logrus.New()
	logger.SetOutput(errOut)
	logger.SetLevel(cfg.Level())

	prog, err := loader.LoadFile(path)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"image": path,
		"words": len(prog.Words),
	}).Debug("loaded")

	opts := []emu.EmulatorOption{
		emu.WithLogger(logger),
		emu.WithMaxInstructions(cfg.MaxCycles),
	}
	if cfg.Interactive {
		opts = append(opts, emu.WithGate(report.NewConsole(in, out)))
	}

	e := emu.NewEmulator(opts...)
	if err := e.LoadProgram(prog.Words); err != nil {
		return err
	}
	e.AcceptHook(report.NewPrinter(out, e,
		report.WithAllRegisters(cfg.PrintRegisters),
		report.WithAllMemory(cfg.PrintMemory),
	))

	reason, err := e.Run()

	var fault *emu.MemoryAccessError
	switch {
	case errors.As(err, &fault):
		report.PrintFault(out, fault)
	case errors.Is(err, emu.ErrCycleLimit):
		logger.WithField("instructions", e.InstructionCount()).
			Warn("stopped at the instruction limit")
	case err != nil:
		return err
	}

	logger.WithFields(logrus.Fields{
		"reason":       reason.String(),
		"instructions": e.InstructionCount(),
	}).Debug("simulation finished")

	return nil
}
