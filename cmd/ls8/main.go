// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/emulator"
	"github.com/ezrec/ls8/loader"
	"github.com/ezrec/ls8/translate"
)

var f = translate.From

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run executes the command line, and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	var verbose bool
	var trace bool
	var assemble bool
	var save bool
	var maxTicks int

	logger := log.New(stderr, "", 0)
	log.SetOutput(stderr)
	log.SetFlags(0)

	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.BoolVar(&verbose, "v", false, "Verbose mode")
	flags.BoolVar(&trace, "t", false, "Trace each instruction")
	flags.BoolVar(&assemble, "a", false, "Input is assembly source, not LS8 binary text")
	flags.BoolVar(&save, "s", false, "Print the LS8 text of an assembled program, do not execute")
	flags.IntVar(&maxTicks, "max", 0, "Instruction limit, 0 for none")
	flags.Usage = func() {
		fmt.Fprint(stderr, f("usage: %v [-v] [-t] [-a [-s]] [-max N] program.ls8\n", args[0]))
		flags.PrintDefaults()
	}

	err := flags.Parse(args[1:])
	if err != nil {
		return 1
	}

	if flags.NArg() != 1 {
		logger.Print(f("%v: exactly one program file path is required", args[0]))
		flags.Usage()
		return 1
	}

	path := flags.Arg(0)
	inf, err := os.Open(path)
	if err != nil {
		logger.Printf("%v: %v", path, err)
		return 1
	}
	defer inf.Close()

	prog := &cpu.Program{}
	if assemble {
		asm := &cpu.Assembler{Verbose: verbose}
		prog, err = asm.Parse(inf)
		if err != nil {
			logger.Printf("%v: %v", path, err)
			return 1
		}
		if save {
			fmt.Fprint(stdout, prog.LS8())
			return 0
		}
	} else {
		var image []byte
		image, err = loader.ParseNamed(path, inf)
		if err != nil {
			logger.Printf("%v: %v", path, err)
			return 1
		}
		prog.Opcodes = []cpu.Opcode{{Address: 0, Bytes: image}}
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Trace = trace
	emu.MaxTicks = maxTicks
	emu.Tape.Output = stdout

	err = emu.LoadProgram(prog)
	if err != nil {
		logger.Printf("%v: %v", path, err)
		return 1
	}

	err = emu.Run()
	if err != nil {
		logger.Printf("%v: %v", path, err)
		if verbose {
			logger.Print(emu.String())
		}
		return 1
	}

	return 0
}
