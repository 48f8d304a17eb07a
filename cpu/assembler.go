// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Assembler is a single pass macro assembler for the tinycore system.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Mode    Mode     // Instruction encoding to emit.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string   // Predefines
	Label     map[string]int      // Map of jump labels to opcode indexes.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// regMap is a map of register names to register codes.
var regMap = map[string]CodeReg{
	"r0": REG_R0, "x0": REG_R0,
	"r1": REG_R1, "x1": REG_R1,
	"r2": REG_R2, "x2": REG_R2,
	"r3": REG_R3, "x3": REG_R3,
	"r4": REG_R4, "x4": REG_R4,
	"r5": REG_R5, "x5": REG_R5,
	"r6": REG_R6, "x6": REG_R6,
	"r7": REG_R7, "x7": REG_R7,
}

// aluMap maps register-register opcode names.
var aluMap = map[string]CodeAluOp{
	"add": ALU_OP_ADD,
	"sub": ALU_OP_SUB,
	"and": ALU_OP_AND,
	"xor": ALU_OP_XOR,
	"slt": ALU_OP_SLT,
}

// branchMap maps branch opcode names.
var branchMap = map[string]CodeBranchOp{
	"beq": BRANCH_OP_EQ,
	"bne": BRANCH_OP_NE,
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int, err error) {
	invert := false
	if len(word) > 1 && word[0] == '~' {
		invert = true
		word = word[1:]
	}

	v64, err := strconv.ParseInt(strings.ReplaceAll(word, "_", ""), 0, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)
	if invert {
		value = ^value
	}

	return
}

// regOf returns the register named by word.
func (asm *Assembler) regOf(word string) (reg CodeReg, err error) {
	reg, ok := regMap[word]
	if !ok {
		err = ErrRegisterInvalid
	}
	return
}

// immOf returns the 8-bit immediate of word. Negative values are stored
// as two's complement.
func (asm *Assembler) immOf(word string) (imm uint8, err error) {
	value, err := asm.valueOf(word)
	if err != nil {
		return
	}

	if value < -0x80 || value > 0xff {
		err = ErrOpcodeImm
		return
	}

	imm = uint8(value)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v int
		v, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(v)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// parseLine parses a single line as an opcode.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	re := regexp.MustCompile(`'\\?[^']'`)
	line = re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	re = regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	line = strings.ReplaceAll(line, ",", " ")
	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.currentIp()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = words[1+n]
		}
		defer func() { asm.Equate = old_equate }()

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", fmt.Sprintf("%v_%v_", name, lineno))
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// currentIp gets the current Ip
func (asm *Assembler) currentIp() int {
	return len(asm.Opcode)
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(_cpu_defines)
	asm.Equate["LINENO"] = "0"
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	if len(asm.Opcode) > programLimit(asm.Mode) {
		err = ErrProgramFull
		return
	}

	// Final linking of branch labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		label := op.LinkLabel
		ip, ok := asm.Label[label]
		if !ok {
			lineno, line = op.LineNo, strings.Join(op.Words, " ")
			err = ErrLabelMissing(label)
			return
		}
		op.Inst.Offset, err = asm.branchOffset(op.Ip, ip)
		if err == nil {
			op.Code, err = op.Inst.Encode(asm.Mode)
		}
		if err != nil {
			lineno, line = op.LineNo, strings.Join(op.Words, " ")
			return
		}
	}

	prog = &Program{
		Mode:    asm.Mode,
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// branchOffset returns the offset of a branch at ip to target.
func (asm *Assembler) branchOffset(ip int, target int) (offset int8, err error) {
	delta := target - (ip + 1)
	if delta < -0x80 || delta > 0x7f {
		err = errors.Join(ErrTargetInvalid, ErrOpcodeOffset)
		return
	}

	offset = int8(delta)
	return
}

// operands checks the operand count of an instruction.
func operands(words []string, count int) (err error) {
	if len(words) < count+1 {
		err = ErrOpcodeMissing
	} else if len(words) > count+1 {
		err = ErrOpcodeExtraArgs
	}
	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var inst Instruction
	var code Code
	var label string
	var raw bool

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if err != nil {
			return
		}
		if label == "" && !raw {
			code, err = inst.Encode(asm.Mode)
			if err != nil {
				return
			}
		}
		opcode := Opcode{LineNo: lineno, Ip: asm.currentIp(), Words: initial_words, Inst: inst, Code: code, LinkLabel: label}
		asm.Opcode = append(asm.Opcode, opcode)
	}()

	mnemonic := strings.ToLower(words[0])

	if op, ok := aluMap[mnemonic]; ok {
		err = operands(words, 3)
		if err != nil {
			return
		}
		var regs [3]CodeReg
		for n := range regs {
			regs[n], err = asm.regOf(words[1+n])
			if err != nil {
				return
			}
		}
		inst = MakeCodeAlu(op, regs[0], regs[1], regs[2])
		return
	}

	if op, ok := branchMap[mnemonic]; ok {
		err = operands(words, 3)
		if err != nil {
			return
		}
		var rs1, rs2 CodeReg
		rs1, err = asm.regOf(words[1])
		if err != nil {
			return
		}
		rs2, err = asm.regOf(words[2])
		if err != nil {
			return
		}
		inst = MakeCodeBranch(op, rs1, rs2, 0)

		target := words[3]
		value, verr := asm.valueOf(target)
		if verr != nil {
			// Not a number, so it must be a label.
			label = target
			return
		}
		if value < -0x80 || value > 0x7f {
			err = ErrOpcodeOffset
			return
		}
		inst.Offset = int8(value)
		return
	}

	switch mnemonic {
	case "li", "addi":
		err = operands(words, 2)
		if err != nil {
			return
		}
		var rd CodeReg
		rd, err = asm.regOf(words[1])
		if err != nil {
			return
		}
		var imm uint8
		imm, err = asm.immOf(words[2])
		if err != nil {
			return
		}
		op := IMM_OP_LI
		if mnemonic == "addi" {
			op = IMM_OP_ADDI
		}
		inst = MakeCodeImm(op, rd, imm)
	case "ina", "inb":
		err = operands(words, 1)
		if err != nil {
			return
		}
		var rd CodeReg
		rd, err = asm.regOf(words[1])
		if err != nil {
			return
		}
		op := IMM_OP_INA
		if mnemonic == "inb" {
			op = IMM_OP_INB
		}
		inst = MakeCodeImm(op, rd, 0)
	case "out":
		err = operands(words, 1)
		if err != nil {
			return
		}
		var rs CodeReg
		rs, err = asm.regOf(words[1])
		if err != nil {
			return
		}
		inst = MakeCodeStore(STORE_OP_OUT, rs)
	case "nop":
		err = operands(words, 0)
		if err != nil {
			return
		}
		inst = MakeCodeStore(STORE_OP_NOP, REG_R0)
	case "halt":
		err = operands(words, 0)
		if err != nil {
			return
		}
		inst = MakeCodeHalt()
	case ".word":
		err = operands(words, 1)
		if err != nil {
			return
		}
		var value int
		value, err = asm.valueOf(words[1])
		if err != nil {
			return
		}
		limit := 0xffff
		if asm.Mode == MODE_BATCH {
			limit = 0xff
		}
		if value < 0 || value > limit {
			err = ErrOpcodeImm
			return
		}
		if asm.Mode == MODE_INTERACTIVE && (value&BUS_FLAG) != 0 {
			// The loader carries its flag in bit 7.
			err = ErrOpcodeImm
			return
		}
		code = Code{Mode: asm.Mode, Word: uint16(value)}
		inst = code.Decode()
		raw = true
	default:
		err = ErrInstructionInvalid
	}

	return
}
