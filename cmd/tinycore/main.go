// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/tinycore/cpu"
	"github.com/ezrec/tinycore/emulator"
	"github.com/ezrec/tinycore/io"
)

func main() {
	var compile string
	var rom string
	var save bool
	var batch bool
	var input string
	var output string
	var ticks int
	var verbose bool

	flag.StringVar(&compile, "c", "", ".tc file to compile")
	flag.StringVar(&rom, "r", "", ".rom image to use")
	flag.BoolVar(&save, "s", false, "Save image to rom, do not execute")
	flag.BoolVar(&batch, "b", false, "Batch mode (8-bit program store)")
	flag.StringVar(&input, "i", "", "Tape input of port A/B samples, '-' for stdin")
	flag.StringVar(&output, "o", "", "Tape output of port values, '-' for stdout")
	flag.IntVar(&ticks, "n", emulator.TICK_LIMIT, "Tick limit per run")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	mode := cpu.MODE_INTERACTIVE
	if batch {
		mode = cpu.MODE_BATCH
	}

	emu := emulator.NewEmulator(mode)
	emu.Verbose = verbose
	emu.TickLimit = ticks

	prog := &cpu.Program{Mode: mode}

	if len(compile) != 0 {
		// Compile a new instruction stream.
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Mode: mode, Verbose: verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	} else if len(rom) != 0 {
		// Load an existing image.
		inf, err := os.Open(rom)
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}
		defer inf.Close()

		image := &io.Rom{}
		if mode == cpu.MODE_BATCH {
			image.Capacity = cpu.STORE_SIZE
		}
		err = image.Unmarshal(inf)
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}

		prog, err = cpu.NewProgramImage(mode, image.Data)
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}
	}

	if save {
		if len(rom) == 0 {
			log.Fatalf("%v: -s requires -r", os.Args[0])
		}

		ouf, err := os.Create(rom)
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}
		defer ouf.Close()

		image := &io.Rom{Data: prog.Image()}
		err = image.Marshal(ouf)
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}

		if verbose {
			for _, op := range prog.Opcodes {
				log.Printf("%02d: %v", op.Ip, op.Code)
			}
		}
		return
	}

	emu.Program = prog

	switch input {
	case "":
	case "-":
		emu.Tape.Input = os.Stdin
	default:
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		emu.Tape.Input = inf
	}

	switch output {
	case "":
	case "-":
		emu.Tape.Output = os.Stdout
	default:
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		emu.Tape.Output = ouf
	}

	runs, err := emu.Process()
	if err != nil {
		log.Fatalf("%v: %v", emu.LineNo(), err)
	}

	if emu.Tape.Output == nil {
		out := emu.Cpu.Output()
		fmt.Printf("out: %d\n", out.Out)
		fmt.Printf("pc: %d\n", out.IoOut>>3)
		fmt.Printf("state: %v\n", cpu.FsmState(out.IoOut&0x7))
	}

	if verbose {
		log.Printf("%d runs, %d ticks", runs, emu.Cpu.Ticks)
		log.Print(emu.Cpu.String())
	}
}
