// Package loader provides loading of flat big-endian MIPS program images.
package loader

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/mipsim/emu"
)

// ErrProgramTooLarge is returned when an image holds more words than the
// instruction region can take.
var ErrProgramTooLarge = emu.ErrProgramTooLarge

// Program represents a loaded image ready for execution.
type Program struct {
	// Words contains the instruction words in load order.
	Words []uint32
}

// Load reads consecutive 4-byte big-endian words from r. A trailing
// partial word is ignored.
func Load(r io.Reader) (*Program, error) {
	prog := &Program{}
	buf := make([]byte, emu.WordSize)

	for {
		_, err := io.ReadFull(r, buf)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read word %d: %w", len(prog.Words), err)
		}

		if len(prog.Words) == emu.MaxInstructions {
			return nil, fmt.Errorf("%w: more than %d words",
				ErrProgramTooLarge, emu.MaxInstructions)
		}

		prog.Words = append(prog.Words, binary.BigEndian.Uint32(buf))
	}

	return prog, nil
}

// LoadFile opens and loads the image at path.
func LoadFile(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open program image: %w", err)
	}
	defer func() { _ = f.Close() }()

	prog, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	return prog, nil
}
