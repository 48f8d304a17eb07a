// Package cpu implements the control core and assembler for the tinycore system.
//
// The core is a clocked model of a pin-constrained processor: eight 8-bit
// general-purpose registers (r0-r7), a 5-bit program counter, an ALU with a
// branch unit, and a FETCH/DECODE/EXECUTE/WRITEBACK/HALT sequencer. Instructions
// arrive either one at a time through a two-phase loader on the input pins
// (interactive mode), or are staged into a 16-slot program store and then run
// from address 0 (batch mode).
//
// The assembler provides a small assembly language for both instruction forms,
// supporting labels, equates, macros, and compile-time expression evaluation.
package cpu
