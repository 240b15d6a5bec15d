// Package loader turns a raw byte stream into the initial instruction
// vector for segment 0. This is the "external collaborator" spec.md §1
// excludes from the core: it owns the file format, the core only
// consumes the resulting []machine.Word.
package loader

import (
	"fmt"
	"io"

	"github.com/basso-um/um/pkg/machine"
)

// Load reads every byte from r, which must form a sequence of 32-bit
// big-endian words (spec.md §6): every 4 consecutive bytes form one
// instruction, most-significant byte first. It returns an error if the
// byte count is not a multiple of 4 or if r fails.
func Load(r io.Reader) ([]machine.Word, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("loader: cannot read program: %w", err)
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("loader: malformed program: length %d is not a multiple of 4", len(raw))
	}
	words := make([]machine.Word, len(raw)/4)
	for i := range words {
		off := i * 4
		words[i] = machine.Word(raw[off])<<24 |
			machine.Word(raw[off+1])<<16 |
			machine.Word(raw[off+2])<<8 |
			machine.Word(raw[off+3])
	}
	return words, nil
}
