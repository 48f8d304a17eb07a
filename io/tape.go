package io

import (
	"io"
	"iter"
)

// Tape provides sequential port I/O over byte streams.
// Input is consumed two bytes at a time, as the port A and port B samples;
// each output port value is written as a single byte.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	samples int
}

var _ Port = (*Tape)(nil)

// Rewind is not possible on a tape; it only clears the sample count.
func (tc *Tape) Rewind() {
	tc.samples = 0
}

// Samples returns the number of port samples read.
func (tc *Tape) Samples() int {
	return tc.samples
}

// Receive returns an iterator that yields port samples from the input
// stream until it is exhausted. A trailing odd byte is dropped.
func (tc *Tape) Receive() iter.Seq2[uint8, uint8] {
	return func(yield func(a, b uint8) bool) {
		if tc.Input == nil {
			return
		}
		for {
			var pair [2]byte
			_, err := io.ReadFull(tc.Input, pair[:])
			if err != nil {
				return
			}
			tc.samples++
			if !yield(pair[0], pair[1]) {
				return
			}
		}
	}
}

// Send writes an output port value to the output stream.
func (tc *Tape) Send(value uint8) (err error) {
	if tc.Output == nil {
		err = ErrPortOutput
		return
	}

	_, err = tc.Output.Write([]byte{value})

	return
}
