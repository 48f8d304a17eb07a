package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Opcodes))
	assert.Equal(MODE_INTERACTIVE, prog.Mode)

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal("0x1f", asm.Equate["PC_MASK"])
	assert.Equal("16", asm.Equate["STORE_SIZE"])
	assert.Equal("8", asm.Equate["REGISTER_COUNT"])
	assert.Equal("0x80", asm.Equate["BUS_FLAG"])
}

func TestAssemblerInteractive(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"; five plus seven",
		"li r2, 5",
		"li x3, 7  ; alias",
		"add r1, r2, r3",
		"out r1",
		"halt",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	assert.Equal([]uint16{0x0509, 0x070d, 0x1a04, 0x0006, 0x0042}, prog.Words())

	op := prog.Opcodes[1]
	assert.Equal(3, op.LineNo)
	assert.Equal(1, op.Ip)
	assert.Equal([]string{"li", "x3", "7"}, op.Words)
	assert.Equal(MakeCodeImm(IMM_OP_LI, REG_R3, 7), op.Inst)
}

func TestAssemblerLabels(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		".equ COUNT 3",
		"    li r1, COUNT",
		"    li r2, 0",
		"loop:",
		"    addi r2, 1",
		"    addi r1, -1",
		"    bne r1, r0, loop",
		"    beq r0, r0, done",
		"    nop",
		"done: out r2",
		"    halt",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	assert.Equal(2, asm.Label["loop"])
	assert.Equal(7, asm.Label["done"])

	bne := prog.Opcodes[4]
	assert.Equal("loop", bne.LinkLabel)
	assert.Equal(int8(-3), bne.Inst.Offset)
	assert.Equal(uint16(0xe827), bne.Code.Word)

	beq := prog.Opcodes[5]
	assert.Equal(int8(1), beq.Inst.Offset)

	assert.Equal(MakeCodeImm(IMM_OP_ADDI, REG_R1, 0xff), prog.Opcodes[3].Inst)
}

func TestAssemblerBranchOffset(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader("beq r1 r2 +2\nbne r1 r2 -16"))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	assert.Equal([]uint16{0x1207, 0x8227}, prog.Words())
}

func TestAssemblerBatch(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{Mode: MODE_BATCH}

	program := []string{
		"ina x1",
		"inb x2",
		"add x3, x1, x2",
		"out x3",
		"halt",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	assert.Equal(MODE_BATCH, prog.Mode)
	assert.Equal([]byte{0x25, 0x39, 0x9c, 0x0e, 0x42}, prog.Image())
}

func TestAssemblerMacro(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("BASE", "4")

	program := []string{
		".macro inc reg",
		"addi reg, 1",
		".endm",
		"li r1, $(2 * 3)",
		"inc r1",
		"li r2, 'A'",
		"li r3, BASE",
		".word 0x1a04",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	assert.Equal([]uint16{0x0605, 0x0125, 0x4109, 0x040d, 0x1a04}, prog.Words())
	assert.Equal(2, prog.Opcodes[1].LineNo)
	assert.Equal(MakeCodeAlu(ALU_OP_ADD, REG_R1, REG_R2, REG_R3), prog.Opcodes[4].Inst)
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		mode    Mode
		program string
		err     error
		lineno  int
	}){
		{"invalid", MODE_INTERACTIVE, "nop\nfoo r1", ErrInstructionInvalid, 2},
		{"register", MODE_INTERACTIVE, "li r9 1", ErrRegisterInvalid, 1},
		{"missing", MODE_INTERACTIVE, "li r1", ErrOpcodeMissing, 1},
		{"extra", MODE_INTERACTIVE, "out r1 r2", ErrOpcodeExtraArgs, 1},
		{"number", MODE_INTERACTIVE, "li r1 five", ErrParseNumber("five"), 1},
		{"imm", MODE_INTERACTIVE, "li r1 256", ErrOpcodeImm, 1},
		{"label", MODE_INTERACTIVE, "nop\nbne r1 r0 nowhere\nhalt", ErrLabelMissing("nowhere"), 2},
		{"offset", MODE_INTERACTIVE, "beq r1 r2 16", ErrOpcodeOffset, 1},
		{"equ_dup", MODE_INTERACTIVE, ".equ A 1\n.equ A 2", ErrEquateDuplicate, 2},
		{"equ_syntax", MODE_INTERACTIVE, ".equ A", ErrEquateSyntax, 1},
		{"label_dup", MODE_INTERACTIVE, "a: nop\na: nop", ErrLabelDuplicate, 2},
		{"macro_lonely", MODE_INTERACTIVE, ".macro x\nnop", ErrMacroLonely, 2},
		{"endm_lonely", MODE_INTERACTIVE, ".endm", ErrMacroLonelyEndm, 1},
		{"macro_nesting", MODE_INTERACTIVE, ".macro x\n.macro y", ErrMacroNesting, 2},
		{"narrow_sub", MODE_BATCH, "sub r1 r2 r3", ErrOpcodeFunct, 1},
		{"narrow_imm", MODE_BATCH, "li r1 4", ErrOpcodeImm, 1},
		{"narrow_word", MODE_BATCH, ".word 0x100", ErrOpcodeImm, 1},
		{"full", MODE_BATCH, strings.Repeat("nop\n", STORE_SIZE+1), ErrProgramFull, STORE_SIZE + 1},
		{"full_interactive", MODE_INTERACTIVE, strings.Repeat("nop\n", PC_MASK+1) + "halt", ErrProgramFull, PC_MASK + 2},
		{"word_flag", MODE_INTERACTIVE, ".word 0x0080", ErrOpcodeImm, 1},
	}

	for _, entry := range table {
		asm := &Assembler{Mode: entry.mode}
		_, err := asm.Parse(strings.NewReader(entry.program))
		assert.ErrorIs(err, entry.err, entry.name)

		var syntax *ErrSyntax
		if assert.True(errors.As(err, &syntax), entry.name) {
			assert.Equal(entry.lineno, syntax.LineNo, entry.name)
		}
	}
}

func TestAssemblerMacroError(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		".macro bad",
		"li r8 1",
		".endm",
		"bad",
	}

	_, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.ErrorIs(err, ErrRegisterInvalid)

	var macro *ErrMacro
	if assert.ErrorAs(err, &macro) {
		assert.Equal("bad", macro.Macro)
		assert.Equal(2, macro.Line)
	}
}

func TestAssemblerProgramLimit(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	// The last reachable instruction is at PC_MASK.
	prog, err := asm.Parse(strings.NewReader(strings.Repeat("nop\n", PC_MASK) + "halt"))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(PC_MASK+1, len(prog.Opcodes))
	assert.True(prog.Opcodes[PC_MASK].Inst.IsHalt())

	asm = &Assembler{Mode: MODE_BATCH}
	prog, err = asm.Parse(strings.NewReader(strings.Repeat("nop\n", STORE_SIZE-1) + "halt"))
	assert.NoError(err)
	if err == nil {
		assert.Equal(STORE_SIZE, len(prog.Opcodes))
	}
}
