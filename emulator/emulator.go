// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"log"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/io"
)

// Emulator state. One machine, its output tape, and the loaded program.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	Trace    bool         // If set, logs a trace line per instruction.
	MaxTicks int          // If non-zero, the limit of instructions per run.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the loaded program listing, if any.

	Tape io.Tape // Output channel.
}

// NewEmulator creates a new emulator with an empty machine.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	emu.Cpu.SetChannel(&emu.Tape)

	return
}

// Load replaces the machine with a fresh one holding image.
func (emu *Emulator) Load(image []byte) (err error) {
	return emu.LoadProgram(&cpu.Program{
		Opcodes: []cpu.Opcode{{Address: 0, Bytes: image}},
	})
}

// LoadProgram replaces the machine with a fresh one holding an assembled program.
func (emu *Emulator) LoadProgram(prog *cpu.Program) (err error) {
	machine := cpu.NewCpu()
	machine.SetChannel(&emu.Tape)

	err = machine.Load(prog.Binary())
	if err != nil {
		return
	}

	emu.Cpu = machine
	emu.Program = prog
	emu.Tape.Rewind()

	if emu.Verbose {
		log.Printf("emulator: loaded %d bytes", prog.Size())
	}

	return
}

// LineNo returns the source line of the instruction at the program counter,
// or zero when the program has no listing.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.Opcode.LineNo
}

// Tick performs a single instruction of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Trace = emu.Trace

	address := emu.Cpu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Address: address, LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrHalted) {
		err = nil
		done = true
		return
	}
	if err != nil {
		return
	}

	done = emu.Cpu.Halted
	return
}

// Run ticks until the machine halts or faults.
func (emu *Emulator) Run() (err error) {
	for {
		if emu.MaxTicks > 0 && emu.Cpu.Ticks >= emu.MaxTicks {
			err = &ErrRuntime{Address: emu.Cpu.Pc, LineNo: emu.LineNo(), Err: ErrTickLimit}
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}

// String returns the machine state.
func (emu *Emulator) String() string {
	text, _ := emu.Cpu.Disassemble(emu.Cpu.Pc)
	return fmt.Sprintf("%v% 5s: %v\n", emu.Cpu.String(), "next", text)
}
