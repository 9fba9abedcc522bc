package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/ls8/internal"
	"github.com/ezrec/ls8/io"
)

// Channel is the output collaborator for PRN and notices.
type Channel io.Channel

var _cpu_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%v", MEMORY_SIZE),
	"STACK_TOP":   fmt.Sprintf("0x%02x", STACK_TOP),
	"REG_SP":      fmt.Sprintf("%v", REG_SP),
}

var _flag_defines = map[string]string{
	"FLAG_EQUAL":   fmt.Sprintf("%v", int(FLAG_EQUAL)),
	"FLAG_GREATER": fmt.Sprintf("%v", int(FLAG_GREATER)),
	"FLAG_LESS":    fmt.Sprintf("%v", int(FLAG_LESS)),
}

// Cpu is the simulation context for one LS8 machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.
	Trace   bool // Set to log a trace line before each instruction.

	Memory   Memory    // Flat memory.
	Register Registers // Register bank; R7 is the stack pointer.
	Pc       int       // Program counter.
	Flag     Flag      // Outcome of the most recent comparison.
	Halted   bool      // Set once HLT has executed.

	Ticks int // Instructions executed.

	channel Channel // Output channel.
}

// NewCpu creates a new CPU, with the stack pointer at STACK_TOP.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Register[REG_SP] = STACK_TOP

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_cpu_defines), maps.All(_flag_defines))
}

// SetChannel sets the output channel.
func (cpu *Cpu) SetChannel(channel Channel) {
	cpu.channel = channel
}

// Load writes a program image into memory, starting at address 0.
func (cpu *Cpu) Load(image []byte) (err error) {
	return cpu.Memory.Load(image)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %02X\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 5s: %v\n", "fl", cpu.Flag)
	for n, val := range cpu.Register {
		name := fmt.Sprintf("r%d", n)
		if n == REG_SP {
			name = "sp"
		}
		text += fmt.Sprintf("% 5s: %02X\n", name, val)
	}

	return
}

// peek reads memory for display, with out of range addresses as zero.
func (cpu *Cpu) peek(address int) byte {
	value, _ := cpu.Memory.Read(address)
	return value
}

// TraceLine returns the PC, the three bytes at PC, and all registers as hex.
func (cpu *Cpu) TraceLine() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "TRACE: %02X | %02X %02X %02X |",
		cpu.Pc,
		cpu.peek(cpu.Pc),
		cpu.peek(cpu.Pc+1),
		cpu.peek(cpu.Pc+2))

	for _, val := range cpu.Register {
		fmt.Fprintf(&sb, " %02X", val)
	}

	return sb.String()
}

// Disassemble returns the assembly text and size of the instruction at address.
func (cpu *Cpu) Disassemble(address int) (text string, size int) {
	code := Code(cpu.peek(address))
	ins, ok := Lookup(code)
	if !ok {
		return fmt.Sprintf(".byte 0x%02x", byte(code)), 1
	}

	return ins.Format(cpu.peek(address+1), cpu.peek(address+2)), ins.Size()
}

// Fetched is an opcode and the operand window that followed it.
type Fetched struct {
	Address int     // Address of the opcode.
	Bytes   [3]byte // Opcode, then the next two bytes.
	Valid   int     // Count of Bytes that were inside memory.
}

// Code returns the opcode of the fetch.
func (fe Fetched) Code() Code {
	return Code(fe.Bytes[0])
}

// Fetch reads the opcode at PC and the two bytes after it, whether or not
// the instruction uses them. Bytes past the end of memory are not valid.
func (cpu *Cpu) Fetch() (fetched Fetched, err error) {
	fetched.Address = cpu.Pc

	for n := range fetched.Bytes {
		value, rerr := cpu.Memory.Read(cpu.Pc + n)
		if rerr != nil {
			if n == 0 {
				err = rerr
				return
			}
			break
		}
		fetched.Bytes[n] = value
		fetched.Valid++
	}

	return
}

// Tick executes a single fetch-decode-execute cycle.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	if cpu.Trace {
		log.Print(cpu.TraceLine())
	}

	fetched, err := cpu.Fetch()
	if err != nil {
		return
	}

	return cpu.Execute(fetched)
}

// Execute executes a single fetched instruction.
func (cpu *Cpu) Execute(fetched Fetched) (err error) {
	code := fetched.Code()

	ins, ok := Lookup(code)
	if !ok {
		err = ErrOpcode{Opcode: code, Address: fetched.Address}
		return
	}

	// The operand window may run off the end of memory; that is only a
	// fault when the instruction needs the missing bytes.
	if fetched.Valid < ins.Size() {
		err = ErrAccess(fetched.Address + fetched.Valid)
		return
	}

	if cpu.Verbose {
		log.Printf("%02x: %v", fetched.Address, ins.Format(fetched.Bytes[1], fetched.Bytes[2]))
	}

	next, err := ins.exec(cpu, fetched.Bytes[1], fetched.Bytes[2])
	if err != nil {
		return
	}

	cpu.Ticks++

	switch ins.Policy {
	case PC_ADVANCE:
		cpu.Pc = fetched.Address + ins.Size()
	case PC_EXPLICIT:
		cpu.Pc = next
	case PC_STOP:
		// pass
	}

	return
}

// notice reports a message on the output channel.
func (cpu *Cpu) notice(text string) (err error) {
	if cpu.Verbose {
		log.Printf("cpu: %v", text)
	}

	if cpu.channel == nil {
		return
	}

	return cpu.channel.Notice(text)
}

func (cpu *Cpu) opHlt(a, b byte) (next int, err error) {
	cpu.Halted = true
	err = cpu.notice(f("halt!"))
	return
}

func (cpu *Cpu) opLdi(a, b byte) (next int, err error) {
	err = cpu.Register.Set(a, b)
	return
}

func (cpu *Cpu) opPrn(a, b byte) (next int, err error) {
	value, err := cpu.Register.Get(a)
	if err != nil {
		return
	}

	if cpu.channel == nil {
		err = ErrChannelInvalid
		return
	}

	err = cpu.channel.Print(value)
	return
}

// jumpIf returns the contents of register a when taken, otherwise the
// address after the two byte jump instruction.
func (cpu *Cpu) jumpIf(taken bool, a byte) (next int, err error) {
	if !taken {
		next = cpu.Pc + 2
		return
	}

	target, err := cpu.Register.Get(a)
	next = int(target)
	return
}

func (cpu *Cpu) opJmp(a, b byte) (next int, err error) {
	return cpu.jumpIf(true, a)
}

func (cpu *Cpu) opJeq(a, b byte) (next int, err error) {
	return cpu.jumpIf(cpu.Flag == FLAG_EQUAL, a)
}

func (cpu *Cpu) opJne(a, b byte) (next int, err error) {
	return cpu.jumpIf(cpu.Flag != FLAG_EQUAL, a)
}
