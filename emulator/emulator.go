// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/tinycore/cpu"
	"github.com/ezrec/tinycore/internal"
	"github.com/ezrec/tinycore/io"
)

const (
	RESET_TICKS   = 2    // Ticks reset is held low.
	EXECUTE_TICKS = 4    // Ticks from a loaded instruction to its writeback.
	TICK_LIMIT    = 4096 // Default run tick limit.
)

var _emulator_defines = map[string]string{
	"RESET_TICKS":   fmt.Sprintf("%v", RESET_TICKS),
	"EXECUTE_TICKS": fmt.Sprintf("%v", EXECUTE_TICKS),
}

// Emulator state. Core + host side of the pins.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the core simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Pins      cpu.Bus // Pin levels driven by the host.
	TickLimit int     // Ticks before Run gives up.

	Tape io.Tape // Port input samples and output values.

	portA uint8
	portB uint8
}

// NewEmulator creates a new emulator.
func NewEmulator(mode cpu.Mode) (emu *Emulator) {
	emu = &Emulator{
		Cpu:       cpu.NewCpu(mode),
		Program:   &cpu.Program{Mode: mode},
		Pins:      cpu.Bus{Enable: true, ResetN: true},
		TickLimit: TICK_LIMIT,
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Clock ticks the core with the current pins.
func (emu *Emulator) Clock(ticks int) {
	emu.Cpu.Verbose = emu.Verbose
	for range ticks {
		emu.Cpu.Tick(emu.Pins)
	}
}

// Reset holds reset low, then releases it with the data pins idle.
func (emu *Emulator) Reset() {
	emu.Pins = cpu.Bus{Enable: true, ResetN: false}
	emu.Clock(RESET_TICKS)

	emu.Pins.ResetN = true
	emu.idle()
	emu.Clock(1)

	emu.Cpu.Ticks = 0
}

// idle drives the input ports onto the data pins, with the flag clear.
func (emu *Emulator) idle() {
	emu.Pins.In = emu.portA & cpu.BUS_PAYLOAD
	emu.Pins.IoIn = emu.portB
}

// SetPorts sets the values presented on input ports A and B.
// Port A is 7 bits wide, as bit 7 is the load flag.
func (emu *Emulator) SetPorts(a, b uint8) {
	emu.portA = a
	emu.portB = b
	emu.idle()
}

// Load delivers an instruction word through the two-phase loader:
// lower half with the flag, upper half with the flag held, then the
// flag dropped.
func (emu *Emulator) Load(word uint16) (err error) {
	if emu.Cpu.Mode != cpu.MODE_INTERACTIVE {
		err = ErrModeMismatch
		return
	}

	if (word & cpu.BUS_FLAG) != 0 {
		err = ErrLoadWord
		return
	}

	emu.Pins.In = cpu.BUS_FLAG | uint8(word&cpu.BUS_PAYLOAD)
	emu.Clock(1)

	emu.Pins.IoIn = uint8(word >> 8)
	emu.Clock(1)

	emu.idle()
	emu.Clock(1)

	return
}

// Execute loads an instruction word and clocks it through writeback.
func (emu *Emulator) Execute(word uint16) (err error) {
	err = emu.Load(word)
	if err != nil {
		return
	}

	emu.Clock(EXECUTE_TICKS)

	return
}

// Write stages an image into the program store, then releases write-enable.
func (emu *Emulator) Write(image []byte) (err error) {
	if emu.Cpu.Mode != cpu.MODE_BATCH {
		err = ErrModeMismatch
		return
	}

	if len(image) > cpu.STORE_SIZE {
		err = ErrImageSize
		return
	}

	for addr, data := range image {
		emu.Pins.In = cpu.BUS_FLAG | uint8(addr)
		emu.Pins.IoIn = data
		emu.Clock(1)
	}

	emu.idle()
	emu.Clock(1)

	return
}

// Boot resets the core and, in batch mode, writes the program store.
func (emu *Emulator) Boot() (err error) {
	if emu.Program.Mode != emu.Cpu.Mode {
		err = ErrModeMismatch
		return
	}

	emu.Reset()

	if emu.Cpu.Mode == cpu.MODE_BATCH {
		err = emu.Write(emu.Program.Image())
	}

	return
}

// Code returns the program code at the current program counter.
func (emu *Emulator) Code() (code cpu.Code, ok bool) {
	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Opcode == nil {
		return
	}

	return dbg.Code, true
}

// LineNo returns the source line number at the current program counter.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Run executes the program until the core halts.
//
// In batch mode the core fetches from its program store. In interactive
// mode the host follows the program counter on the output pins, loading
// the instruction at that address, and stops when the program counter
// leaves the program.
func (emu *Emulator) Run() (done bool, err error) {
	defer func() {
		if err != nil {
			err = &ErrRuntime{Tick: emu.Cpu.Ticks, Err: err}
		}
	}()

	for !emu.Cpu.Halted() {
		if emu.Cpu.Ticks >= emu.TickLimit {
			err = ErrTickLimit
			return
		}

		if emu.Cpu.Mode == cpu.MODE_BATCH {
			emu.Clock(1)
			continue
		}

		pc := emu.Cpu.Output().IoOut >> 3
		dbg := emu.Program.Debug(pc)
		if dbg.Opcode == nil {
			if emu.Verbose {
				log.Printf("emulator: pc %d outside program", pc)
			}
			return
		}

		err = emu.Execute(dbg.Code.Word)
		if err != nil {
			return
		}
	}

	done = true

	return
}

// Process boots and runs the program once per tape input sample, with the
// sample on the input ports, and sends the output port value of each run to
// the tape output. Without tape input, the program runs once with the
// current ports.
func (emu *Emulator) Process() (runs int, err error) {
	run := func() (err error) {
		err = emu.Boot()
		if err != nil {
			return
		}

		_, err = emu.Run()
		if err != nil {
			return
		}

		runs++

		if emu.Tape.Output != nil {
			err = emu.Tape.Send(emu.Cpu.Output().Out)
		}

		return
	}

	if emu.Tape.Input == nil {
		err = run()
		return
	}

	emu.Tape.Rewind()
	for a, b := range emu.Tape.Receive() {
		emu.SetPorts(a, b)
		err = run()
		if err != nil {
			return
		}
	}

	return
}
