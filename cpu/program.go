package cpu

import (
	"iter"
	"strings"
)

// Opcode represents a line of assembled code with its source location and
// generated instruction.
type Opcode struct {
	LineNo    int
	Ip        int
	Words     []string
	Inst      Instruction
	Code      Code
	LinkLabel string
}

// Program is an assembled instruction listing for one mode.
type Program struct {
	Mode    Mode
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
}

// Debug returns the opcode at ip, if any.
func (prog *Program) Debug(ip uint8) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if int(ip) == op.Ip {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
			}
			break
		}
	}

	return
}

// Codes returns an iterator over the instruction pointer and code of each opcode.
func (prog *Program) Codes() iter.Seq2[uint8, Code] {
	return func(yield func(ip uint8, code Code) bool) {
		for _, op := range prog.Opcodes {
			if !yield(uint8(op.Ip), op.Code) {
				return
			}
		}
	}
}

// Words returns the instruction words in program order.
func (prog *Program) Words() (words []uint16) {
	for _, code := range prog.Codes() {
		words = append(words, code.Word)
	}

	return
}

// Image returns the binary image of the program.
// Batch programs are one byte per instruction; interactive programs are
// two bytes per instruction, lower half first.
func (prog *Program) Image() (image []byte) {
	for _, word := range prog.Words() {
		if prog.Mode == MODE_BATCH {
			image = append(image, uint8(word))
		} else {
			image = append(image, uint8(word), uint8(word>>8))
		}
	}

	return
}

// programLimit returns the number of instructions reachable in a mode.
func programLimit(mode Mode) int {
	if mode == MODE_BATCH {
		return STORE_SIZE
	}

	return PC_MASK + 1
}

// NewProgramImage creates a program from a binary image.
func NewProgramImage(mode Mode, image []byte) (prog *Program, err error) {
	prog = &Program{Mode: mode}

	var words []uint16
	switch mode {
	case MODE_BATCH:
		for _, b := range image {
			words = append(words, uint16(b))
		}
	default:
		if len(image)%2 != 0 {
			err = ErrImageLength
			return
		}
		for n := 0; n < len(image); n += 2 {
			words = append(words, uint16(image[n])|uint16(image[n+1])<<8)
		}
	}

	if len(words) > programLimit(mode) {
		err = ErrProgramFull
		return
	}

	for ip, word := range words {
		code := Code{Mode: mode, Word: word}
		inst := code.Decode()
		prog.Opcodes = append(prog.Opcodes, Opcode{
			Ip:    ip,
			Words: strings.Fields(inst.String()),
			Inst:  inst,
			Code:  code,
		})
	}

	return
}
