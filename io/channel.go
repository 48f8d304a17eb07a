// Package io provides the host side of the tinycore pins for the emulator.
// It includes the port tape, which feeds input port samples and records
// output port values, and the ROM, which carries program images.
package io

import (
	"iter"
)

// Port defines the interface for the host side of the data pins.
type Port interface {
	// Rewind resets the port to its initial state.
	Rewind()
	// Receive returns an iterator that yields input port A and B samples.
	Receive() iter.Seq2[uint8, uint8]
	// Send records a value seen on the output port.
	Send(value uint8) error
}
