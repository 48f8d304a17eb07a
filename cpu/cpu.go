package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
)

var _cpu_defines = map[string]string{
	"PC_MASK":        fmt.Sprintf("%#x", PC_MASK),
	"STORE_SIZE":     fmt.Sprintf("%v", STORE_SIZE),
	"REGISTER_COUNT": fmt.Sprintf("%v", REGISTER_COUNT),
	"BUS_FLAG":       fmt.Sprintf("%#x", BUS_FLAG),
}

// State is the committed register state of the core. Every tick computes a
// new State from the previous one, so all reads observe pre-tick values.
type State struct {
	Bus Bus // Pins sampled on the last tick.

	Pc       uint8        // Program counter.
	Fsm      FsmState     // Control sequencer state.
	Register RegisterFile // Register bank.
	Selected CodeReg      // Register shown on the output port.

	Loader Loader // Interactive mode instruction latch.
	Store  Store  // Batch mode program store.

	Code Code        // Instruction latched by FETCH.
	Inst Instruction // Instruction latched by DECODE.
	Exec Execution   // Result latched by EXECUTE.
}

// Cpu is the simulation context for the core.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.
	Mode    Mode // Instruction source.

	State

	Ticks int // Clock ticks counter.
}

// NewCpu creates a new core in the given mode.
func NewCpu(mode Mode) (cpu *Cpu) {
	cpu = &Cpu{
		Mode: mode,
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	out := cpu.Output()

	text += fmt.Sprintf("% 9s: %v\n", "mode", cpu.Mode)
	text += fmt.Sprintf("% 9s: %v\n", "state", cpu.Fsm)
	text += fmt.Sprintf("% 9s: %02d\n", "pc", cpu.Pc)
	for n, val := range cpu.Register {
		text += fmt.Sprintf("% 9s: 0x%02x\n", CodeReg(n), val)
	}
	text += fmt.Sprintf("% 9s: %v\n", "selected", cpu.Selected)
	text += fmt.Sprintf("% 9s: %v\n", "loader", cpu.Loader.Phase)
	text += fmt.Sprintf("% 9s: 0x%02x 0x%02x 0x%02x\n", "out", out.Out, out.IoOut, out.IoOe)

	return
}

// Reset the CPU state and the tick counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.State.Reset()
	cpu.Ticks = 0
}

// Halted returns true once the core has entered HALT.
func (cpu *Cpu) Halted() bool {
	return cpu.Fsm == STATE_HALT
}

// Tick advances the core by a single clock edge with the given pins.
//
// Reset is synchronous and unconditional. With enable low, all state is
// frozen. Otherwise the loader (or program store) samples the bus, and the
// sequencer performs the work of its current state.
func (cpu *Cpu) Tick(bus Bus) {
	cpu.Ticks++

	if bus.InReset() {
		if cpu.Verbose && !cpu.Bus.InReset() {
			log.Printf("cpu: reset")
		}
		cpu.State.Reset()
		cpu.Bus = bus
		return
	}

	if !bus.Enable {
		return
	}

	cpu.State = cpu.State.next(cpu.Mode, bus, cpu.Verbose)
}

// Reset clears the committed state: registers, program counter and output
// selection are zeroed, the sequencer returns to FETCH, and the loader latch
// and program store are emptied.
func (st *State) Reset() {
	st.Bus = Bus{}
	st.Pc = 0
	st.Fsm = STATE_FETCH
	st.Register.Reset()
	st.Selected = REG_R0
	st.Loader.Reset()
	st.Store.Reset()
	st.Code = Code{}
	st.Inst = Instruction{}
	st.Exec = Execution{}
}

// next computes the state following st for a single tick.
func (st State) next(mode Mode, bus Bus, verbose bool) (next State) {
	next = st
	next.Bus = bus

	if st.Fsm == STATE_HALT {
		return
	}

	switch mode {
	case MODE_BATCH:
		next.Store = st.Store.Next(bus)
		if bus.Flag() {
			// Hold the sequencer while the program is written.
			next.Pc = 0
			next.Fsm = STATE_FETCH
			return
		}
	default:
		consumed := st.Fsm == STATE_FETCH && st.Loader.Valid
		next.Loader = st.Loader.Next(bus, consumed)
	}

	event := EVENT_ADVANCE

	switch st.Fsm {
	case STATE_FETCH:
		switch {
		case mode == MODE_BATCH && st.Store.Armed:
			next.Code = Code{Mode: mode, Word: uint16(st.Store.Fetch(st.Pc))}
		case mode != MODE_BATCH && st.Loader.Valid:
			next.Code = Code{Mode: mode, Word: st.Loader.Pending}
		default:
			event = EVENT_STALL
		}
	case STATE_DECODE:
		next.Inst = st.Code.Decode()
		if verbose {
			log.Printf("cpu: %02d: %v", st.Pc, st.Code)
		}
	case STATE_EXECUTE:
		next.Exec = Execute(st.Inst, &st.Register, st.Pc, bus)
	case STATE_WRITEBACK:
		ex := st.Exec
		if ex.Halt {
			event = EVENT_HALT
			if verbose {
				log.Printf("cpu: %02d: halt", st.Pc)
			}
			break
		}
		if ex.Write {
			next.Register.Write(st.Inst.Rd, ex.Result)
			next.Selected = st.Inst.Rd
		}
		if ex.Publish {
			next.Selected = st.Inst.Rs1
		}
		if ex.Taken {
			next.Pc = ex.Target
		} else {
			next.Pc = NextPc(st.Pc)
		}
	}

	next.Fsm = Transition(st.Fsm, event)

	return
}
