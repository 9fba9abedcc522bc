package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted          = errors.New(f("halted"))
	ErrOpcodeUnknown   = errors.New(f("unknown instruction"))
	ErrAluUnsupported  = errors.New(f("unsupported alu operation"))
	ErrDivisionByZero  = errors.New(f("division by zero"))
	ErrStackFull       = errors.New(f("stack full"))
	ErrStackEmpty      = errors.New(f("no stack to pop"))
	ErrAddress         = errors.New(f("address out of range"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrChannelInvalid  = errors.New(f("channel invalid"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrProgramSize        = errors.New(f("program exceeds memory"))
	ErrLabelRange         = errors.New(f("label address outside memory"))
)

// ErrOpcode is raised when the dispatcher fetches a byte that is not
// in the instruction table.
type ErrOpcode struct {
	Opcode  Code
	Address int
}

func (eo ErrOpcode) Error() string {
	return f("unknown instruction 0x%02x at address 0x%02x", byte(eo.Opcode), eo.Address)
}

func (eo ErrOpcode) Unwrap() error {
	return ErrOpcodeUnknown
}

// ErrAccess is raised on a memory access outside of the address space.
type ErrAccess int

func (ea ErrAccess) Error() string {
	return f("address 0x%x out of range", int(ea))
}

func (ea ErrAccess) Unwrap() error {
	return ErrAddress
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a byte value", string(err))
}

type ErrParseRegister string

func (err ErrParseRegister) Error() string {
	return f("'%v' is not a register", string(err))
}

func (err ErrParseRegister) Unwrap() error {
	return ErrRegisterInvalid
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
