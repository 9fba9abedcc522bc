package cpu

import (
	"log"
)

// AluOp is an ALU operation type.
type AluOp int

//go:generate go tool stringer -linecomment -type=AluOp
const (
	ALU_OP_ADD = AluOp(0) // add
	ALU_OP_SUB = AluOp(1) // sub
	ALU_OP_MUL = AluOp(2) // mul
	ALU_OP_DIV = AluOp(3) // div
	ALU_OP_CMP = AluOp(4) // cmp
)

// Alu performs op on the contents of registers reg_a and reg_b.
// Arithmetic results replace reg_a, modulo 256. ALU_OP_CMP only
// updates the flags register.
func (cpu *Cpu) Alu(op AluOp, reg_a, reg_b byte) (err error) {
	a, err := cpu.Register.Get(reg_a)
	if err != nil {
		return
	}
	b, err := cpu.Register.Get(reg_b)
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("alu: %v %d and %d", op, a, b)
	}

	var output byte
	switch op {
	case ALU_OP_ADD:
		output = a + b
	case ALU_OP_SUB:
		output = a - b
	case ALU_OP_MUL:
		output = a * b
	case ALU_OP_DIV:
		if b == 0 {
			err = ErrDivisionByZero
			return
		}
		output = a / b
	case ALU_OP_CMP:
		cpu.Flag = compare(a, b)
		return
	default:
		err = ErrAluUnsupported
		return
	}

	cpu.Register[reg_a] = output
	return
}
