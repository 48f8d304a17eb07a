package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcodeEncodeWide(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		inst Instruction
		word uint16
		text string
	}){
		{MakeCodeImm(IMM_OP_LI, REG_R2, 5), 0x0509, "li r2 5"},
		{MakeCodeImm(IMM_OP_LI, REG_R3, 7), 0x070d, "li r3 7"},
		{MakeCodeAlu(ALU_OP_ADD, REG_R1, REG_R2, REG_R3), 0x1a04, "add r1 r2 r3"},
		{MakeCodeAlu(ALU_OP_SUB, REG_R1, REG_R2, REG_R3), 0x5a04, "sub r1 r2 r3"},
		{MakeCodeImm(IMM_OP_ADDI, REG_R1, 0xff), 0xff25, "addi r1 255"},
		{MakeCodeImm(IMM_OP_INA, REG_R1, 0), 0x0045, "ina r1"},
		{MakeCodeImm(IMM_OP_INB, REG_R2, 0), 0x0069, "inb r2"},
		{MakeCodeStore(STORE_OP_OUT, REG_R1), 0x0006, "out r1"},
		{MakeCodeHalt(), 0x0042, "halt"},
		{MakeCodeBranch(BRANCH_OP_EQ, REG_R1, REG_R2, 2), 0x1207, "beq r1 r2 +2"},
		{MakeCodeBranch(BRANCH_OP_NE, REG_R1, REG_R0, -1), 0xf827, "bne r1 r0 -1"},
	}

	for _, entry := range table {
		code, err := entry.inst.Encode(MODE_INTERACTIVE)
		assert.NoError(err, entry.text)
		assert.Equal(entry.word, code.Word, entry.text)
		assert.Zero(code.Word&BUS_FLAG, entry.text)

		inst := code.Decode()
		assert.Equal(entry.inst, inst, entry.text)
		assert.Equal(entry.text, inst.String())
	}
}

func TestOpcodeEncodeNarrow(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		inst Instruction
		word uint16
		text string
	}){
		{MakeCodeImm(IMM_OP_INA, REG_R1, 0), 0x25, "ina r1"},
		{MakeCodeImm(IMM_OP_INB, REG_R2, 0), 0x39, "inb r2"},
		{MakeCodeAlu(ALU_OP_ADD, REG_R3, REG_R1, REG_R2), 0x9c, "add r3 r1 r2"},
		{MakeCodeStore(STORE_OP_OUT, REG_R3), 0x0e, "out r3"},
		{MakeCodeHalt(), 0x42, "halt"},
		{MakeCodeImm(IMM_OP_LI, REG_R1, 3), 0xc5, "li r1 3"},
		{MakeCodeImm(IMM_OP_ADDI, REG_R1, 1), 0x55, "addi r1 1"},
		{MakeCodeBranch(BRANCH_OP_NE, REG_R1, REG_R0, -1), 0xf7, "bne r1 r0 -1"},
		{MakeCodeBranch(BRANCH_OP_EQ, REG_R2, REG_R0, 3), 0x6b, "beq r2 r0 +3"},
	}

	for _, entry := range table {
		code, err := entry.inst.Encode(MODE_BATCH)
		assert.NoError(err, entry.text)
		assert.Equal(entry.word, code.Word, entry.text)

		inst := code.Decode()
		assert.Equal(entry.inst, inst, entry.text)
		assert.Equal(entry.text, inst.String())
	}
}

func TestOpcodeEncodeErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		mode Mode
		inst Instruction
		err  error
	}){
		{"wide_offset_high", MODE_INTERACTIVE, MakeCodeBranch(BRANCH_OP_EQ, REG_R1, REG_R2, 16), ErrOpcodeOffset},
		{"wide_offset_low", MODE_INTERACTIVE, MakeCodeBranch(BRANCH_OP_EQ, REG_R1, REG_R2, -17), ErrOpcodeOffset},
		{"wide_funct", MODE_INTERACTIVE, Instruction{Class: CLASS_I, Funct: 4}, ErrOpcodeFunct},
		{"wide_rd", MODE_INTERACTIVE, MakeCodeImm(IMM_OP_LI, CodeReg(8), 0), ErrOpcodeRd},
		{"narrow_sub", MODE_BATCH, MakeCodeAlu(ALU_OP_SUB, REG_R1, REG_R2, REG_R3), ErrOpcodeFunct},
		{"narrow_rd", MODE_BATCH, MakeCodeAlu(ALU_OP_ADD, REG_R4, REG_R2, REG_R3), ErrOpcodeRd},
		{"narrow_imm", MODE_BATCH, MakeCodeImm(IMM_OP_LI, REG_R1, 4), ErrOpcodeImm},
		{"narrow_rs2", MODE_BATCH, MakeCodeBranch(BRANCH_OP_EQ, REG_R1, REG_R2, 0), ErrOpcodeRs2},
		{"narrow_offset", MODE_BATCH, MakeCodeBranch(BRANCH_OP_EQ, REG_R1, REG_R0, 4), ErrOpcodeOffset},
		{"class", MODE_BATCH, Instruction{Class: CodeClass(4)}, ErrOpcodeClass},
	}

	for _, entry := range table {
		_, err := entry.inst.Encode(entry.mode)
		assert.ErrorIs(err, entry.err, entry.name)
		assert.ErrorIs(err, ErrOpcode{}, entry.name)
	}
}

func TestOpcodeDecodeReserved(t *testing.T) {
	assert := assert.New(t)

	// Every word decodes, and bit 7 is never needed to select a function.
	for word := range 0x10000 {
		if word&BUS_FLAG != 0 {
			continue
		}
		code := Code{Mode: MODE_INTERACTIVE, Word: uint16(word)}
		inst := code.Decode()
		again, err := inst.Encode(MODE_INTERACTIVE)
		assert.NoError(err)
		assert.Equal(inst, again.Decode())
	}

	inst := Code{Mode: MODE_INTERACTIVE, Word: 0x5a44}.Decode()
	assert.Equal(CLASS_R, inst.Class)
	assert.Equal(uint8(6), inst.Funct)
	assert.Equal("r.6 r1 r2 r3", inst.String())

	inst = Code{Mode: MODE_INTERACTIVE, Word: 0x0062}.Decode()
	assert.Equal("s.3 r0", inst.String())

	inst = Code{Mode: MODE_INTERACTIVE, Word: 0x1247}.Decode()
	assert.Equal("b.2 r1 r2 +2", inst.String())
}

func TestCodeString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("1a04 add r1 r2 r3", Code{Mode: MODE_INTERACTIVE, Word: 0x1a04}.String())
	assert.Equal("42 halt", Code{Mode: MODE_BATCH, Word: 0x42}.String())
	assert.Equal(CLASS_B, Code{Mode: MODE_BATCH, Word: 0xf7}.Class())
}
