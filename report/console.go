package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Console gates an emulator run on user input. Before every cycle it prints
// a prompt and waits for a line. A line starting with 'q', or the end of
// input, stops the run.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole creates a Console reading from in and prompting on out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Proceed implements emu.Gate.
func (c *Console) Proceed() bool {
	fmt.Fprint(c.out, "> ")

	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	return !strings.HasPrefix(line, "q")
}
