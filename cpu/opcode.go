package cpu

import (
	"fmt"
	"strings"
)

// Code is an instruction opcode byte.
type Code byte

const (
	OP_HLT  = Code(0b00000001)
	OP_LDI  = Code(0b10000010)
	OP_PRN  = Code(0b01000111)
	OP_ADD  = Code(0b10100000)
	OP_SUB  = Code(0b10100001)
	OP_MUL  = Code(0b10100010)
	OP_DIV  = Code(0b10100011)
	OP_CMP  = Code(0b10100111)
	OP_PUSH = Code(0b01000101)
	OP_POP  = Code(0b01000110)
	OP_CALL = Code(0b01010000)
	OP_RET  = Code(0b00010001)
	OP_JMP  = Code(0b01010100)
	OP_JEQ  = Code(0b01010101)
	OP_JNE  = Code(0b01010110)
)

// String returns the mnemonic of the opcode.
func (code Code) String() string {
	ins, ok := Lookup(code)
	if !ok {
		return fmt.Sprintf("Code(0x%02x)", byte(code))
	}
	return ins.Mnemonic
}

// Operand is the decode type of an operand byte: a register index
// or an immediate value.
type Operand int

//go:generate go tool stringer -linecomment -type=Operand
const (
	OPERAND_REG = Operand(0) // reg
	OPERAND_IMM = Operand(1) // imm
)

// PcPolicy determines how the program counter moves after an instruction.
// PC_ADVANCE steps over the operands, PC_EXPLICIT takes the next PC from
// the handler, and PC_STOP leaves the PC on the halting instruction.
type PcPolicy int

//go:generate go tool stringer -linecomment -type=PcPolicy
const (
	PC_ADVANCE  = PcPolicy(0) // advance
	PC_EXPLICIT = PcPolicy(1) // explicit
	PC_STOP     = PcPolicy(2) // stop
)

// Instruction is a single entry of the instruction table.
type Instruction struct {
	Code     Code
	Mnemonic string
	Operands []Operand
	Policy   PcPolicy

	// exec runs the instruction with its operand bytes. For PC_EXPLICIT
	// instructions, next is the new program counter.
	exec func(cpu *Cpu, a, b byte) (next int, err error)
}

// Size returns the encoded length of the instruction in bytes.
func (ins *Instruction) Size() int {
	return 1 + len(ins.Operands)
}

// Format returns the assembly language text of the instruction.
func (ins *Instruction) Format(a, b byte) string {
	if len(ins.Operands) == 0 {
		return ins.Mnemonic
	}

	args := make([]string, 0, len(ins.Operands))
	for n, kind := range ins.Operands {
		value := a
		if n == 1 {
			value = b
		}
		switch kind {
		case OPERAND_REG:
			args = append(args, fmt.Sprintf("R%d", value))
		case OPERAND_IMM:
			args = append(args, fmt.Sprintf("%d", value))
		}
	}

	return ins.Mnemonic + " " + strings.Join(args, ",")
}

var (
	regs0 = []Operand{}
	regs1 = []Operand{OPERAND_REG}
	regs2 = []Operand{OPERAND_REG, OPERAND_REG}
)

// _instructions is the static instruction table, indexed by opcode.
var _instructions [256]*Instruction

func init() {
	table := []Instruction{
		{OP_HLT, "HLT", regs0, PC_STOP, (*Cpu).opHlt},
		{OP_LDI, "LDI", []Operand{OPERAND_REG, OPERAND_IMM}, PC_ADVANCE, (*Cpu).opLdi},
		{OP_PRN, "PRN", regs1, PC_ADVANCE, (*Cpu).opPrn},
		{OP_ADD, "ADD", regs2, PC_ADVANCE, aluHandler(ALU_OP_ADD)},
		{OP_SUB, "SUB", regs2, PC_ADVANCE, aluHandler(ALU_OP_SUB)},
		{OP_MUL, "MUL", regs2, PC_ADVANCE, aluHandler(ALU_OP_MUL)},
		{OP_DIV, "DIV", regs2, PC_ADVANCE, aluHandler(ALU_OP_DIV)},
		{OP_CMP, "CMP", regs2, PC_ADVANCE, aluHandler(ALU_OP_CMP)},
		{OP_PUSH, "PUSH", regs1, PC_ADVANCE, (*Cpu).opPush},
		{OP_POP, "POP", regs1, PC_ADVANCE, (*Cpu).opPop},
		{OP_CALL, "CALL", regs1, PC_EXPLICIT, (*Cpu).opCall},
		{OP_RET, "RET", regs0, PC_EXPLICIT, (*Cpu).opRet},
		{OP_JMP, "JMP", regs1, PC_EXPLICIT, (*Cpu).opJmp},
		{OP_JEQ, "JEQ", regs1, PC_EXPLICIT, (*Cpu).opJeq},
		{OP_JNE, "JNE", regs1, PC_EXPLICIT, (*Cpu).opJne},
	}

	for n := range table {
		ins := &table[n]
		_instructions[ins.Code] = ins
		_mnemonics[ins.Mnemonic] = ins
		_cpu_defines["OP_"+ins.Mnemonic] = fmt.Sprintf("0x%02x", byte(ins.Code))
	}
}

// _mnemonics maps an upper case mnemonic to its instruction.
var _mnemonics = map[string]*Instruction{}

// Lookup returns the instruction table entry for an opcode.
func Lookup(code Code) (ins *Instruction, ok bool) {
	ins = _instructions[code]
	ok = ins != nil
	return
}

// LookupMnemonic returns the instruction table entry for a mnemonic.
func LookupMnemonic(mnemonic string) (ins *Instruction, ok bool) {
	ins, ok = _mnemonics[strings.ToUpper(mnemonic)]
	return
}

// aluHandler adapts an ALU operation on two register indexes to an
// instruction handler.
func aluHandler(op AluOp) func(cpu *Cpu, a, b byte) (int, error) {
	return func(cpu *Cpu, a, b byte) (next int, err error) {
		err = cpu.Alu(op, a, b)
		return
	}
}
