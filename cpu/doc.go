// Package cpu implements the LS8 microprocessor and its assembler.
//
// The CPU consists of a 256 byte flat memory, a program counter (PC), eight
// 8-bit registers (R0-R7, with R7 doubling as the stack pointer), an ALU,
// and a flags register holding the result of the last comparison. The stack
// lives in the same memory as the program, growing down from STACK_TOP.
//
// The assembler provides a small mnemonic language for the LS8 instruction
// set, supporting labels, equates, raw data, and compile-time expression
// evaluation.
package cpu
