package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// Opcode represents a line of assembled code with its source location and generated bytes.
type Opcode struct {
	LineNo    int
	Address   int
	Words     []string
	Bytes     []byte
	LinkLabel string
}

// Program is an assembled listing.
type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int
}

// Debug finds the opcode that generated the byte at address.
func (prog *Program) Debug(address int) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if address >= op.Address && address < op.Address+len(op.Bytes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  address - op.Address,
			}
			break
		}
	}

	return
}

// Size returns the number of bytes in the memory image.
func (prog *Program) Size() int {
	if len(prog.Opcodes) == 0 {
		return 0
	}

	last := prog.Opcodes[len(prog.Opcodes)-1]
	return last.Address + len(last.Bytes)
}

// Binary returns the memory image of the program.
func (prog *Program) Binary() (image []byte) {
	image = make([]byte, prog.Size())
	for address, value := range prog.Bytes() {
		image[address] = value
	}

	return
}

// Bytes iterates over every address and byte of the program.
func (prog *Program) Bytes() iter.Seq2[int, byte] {
	return func(yield func(address int, value byte) bool) {
		for _, op := range prog.Opcodes {
			for n, value := range op.Bytes {
				if !yield(op.Address+n, value) {
					return
				}
			}
		}
	}
}

// LS8 renders the program as binary literal text, one byte per line,
// with the source of each opcode as a comment.
func (prog *Program) LS8() string {
	var sb strings.Builder

	for _, op := range prog.Opcodes {
		for n, value := range op.Bytes {
			fmt.Fprintf(&sb, "%08b", value)
			if n == 0 {
				fmt.Fprintf(&sb, " # %v", strings.Join(op.Words, " "))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
