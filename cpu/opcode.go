package cpu

import (
	"errors"
	"fmt"
)

// Mode selects the instruction source and encoding of the core.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_INTERACTIVE = Mode(0) // interactive
	MODE_BATCH       = Mode(1) // batch
)

// CodeClass is the type of opcode class.
type CodeClass int

//go:generate go tool stringer -linecomment -type=CodeClass
const (
	CLASS_R = CodeClass(0) // r
	CLASS_I = CodeClass(1) // i
	CLASS_S = CodeClass(2) // s
	CLASS_B = CodeClass(3) // b
)

// CodeAluOp is a register-register ALU function. Values above ALU_OP_SUB
// are reserved and execute as no-ops.
type CodeAluOp int

//go:generate go tool stringer -linecomment -type=CodeAluOp
const (
	ALU_OP_ADD = CodeAluOp(0) // add
	ALU_OP_AND = CodeAluOp(1) // and
	ALU_OP_XOR = CodeAluOp(2) // xor
	ALU_OP_SLT = CodeAluOp(3) // slt
	ALU_OP_SUB = CodeAluOp(4) // sub
)

// CodeImmOp is a register-immediate function.
type CodeImmOp int

//go:generate go tool stringer -linecomment -type=CodeImmOp
const (
	IMM_OP_LI   = CodeImmOp(0) // li
	IMM_OP_ADDI = CodeImmOp(1) // addi
	IMM_OP_INA  = CodeImmOp(2) // ina
	IMM_OP_INB  = CodeImmOp(3) // inb
)

// CodeStoreOp is a store/output function.
type CodeStoreOp int

//go:generate go tool stringer -linecomment -type=CodeStoreOp
const (
	STORE_OP_OUT  = CodeStoreOp(0) // out
	STORE_OP_NOP  = CodeStoreOp(1) // nop
	STORE_OP_HALT = CodeStoreOp(2) // halt
)

// CodeBranchOp is a branch comparison function.
type CodeBranchOp int

//go:generate go tool stringer -linecomment -type=CodeBranchOp
const (
	BRANCH_OP_EQ = CodeBranchOp(0) // beq
	BRANCH_OP_NE = CodeBranchOp(1) // bne
)

// CodeReg is a register index.
type CodeReg uint8

//go:generate go tool stringer -linecomment -type=CodeReg
const (
	REG_R0 = CodeReg(0) // r0
	REG_R1 = CodeReg(1) // r1
	REG_R2 = CodeReg(2) // r2
	REG_R3 = CodeReg(3) // r3
	REG_R4 = CodeReg(4) // r4
	REG_R5 = CodeReg(5) // r5
	REG_R6 = CodeReg(6) // r6
	REG_R7 = CodeReg(7) // r7
)

// Field limits of the two encodings.
const (
	WIDE_OFFSET_MIN   = -16
	WIDE_OFFSET_MAX   = 15
	NARROW_OFFSET_MIN = -4
	NARROW_OFFSET_MAX = 3
	NARROW_REG_LIMIT  = 4 // Registers r0-r3 for R, I and B forms.
	NARROW_IMM_LIMIT  = 4 // Immediates 0-3.
)

// Instruction is a decoded instruction, common to both encodings.
type Instruction struct {
	Class  CodeClass
	Funct  uint8 // Class specific function code.
	Rd     CodeReg
	Rs1    CodeReg
	Rs2    CodeReg
	Imm    uint8
	Offset int8
}

// Code is a single encoded instruction word.
type Code struct {
	Mode Mode
	Word uint16
}

// MakeCodeAlu creates a register-register instruction.
func MakeCodeAlu(op CodeAluOp, rd, rs1, rs2 CodeReg) Instruction {
	return Instruction{Class: CLASS_R, Funct: uint8(op), Rd: rd, Rs1: rs1, Rs2: rs2}
}

// MakeCodeImm creates a register-immediate instruction.
func MakeCodeImm(op CodeImmOp, rd CodeReg, imm uint8) Instruction {
	return Instruction{Class: CLASS_I, Funct: uint8(op), Rd: rd, Imm: imm}
}

// MakeCodeStore creates a store/output instruction.
func MakeCodeStore(op CodeStoreOp, rs CodeReg) Instruction {
	return Instruction{Class: CLASS_S, Funct: uint8(op), Rs1: rs}
}

// MakeCodeHalt creates the halt instruction.
func MakeCodeHalt() Instruction {
	return MakeCodeStore(STORE_OP_HALT, REG_R0)
}

// MakeCodeBranch creates a branch instruction.
func MakeCodeBranch(op CodeBranchOp, rs1, rs2 CodeReg, offset int8) Instruction {
	return Instruction{Class: CLASS_B, Funct: uint8(op), Rs1: rs1, Rs2: rs2, Offset: offset}
}

// AluOp returns the R-type function.
func (inst Instruction) AluOp() CodeAluOp {
	return CodeAluOp(inst.Funct)
}

// ImmOp returns the I-type function.
func (inst Instruction) ImmOp() CodeImmOp {
	return CodeImmOp(inst.Funct)
}

// StoreOp returns the S-type function.
func (inst Instruction) StoreOp() CodeStoreOp {
	return CodeStoreOp(inst.Funct)
}

// BranchOp returns the B-type function.
func (inst Instruction) BranchOp() CodeBranchOp {
	return CodeBranchOp(inst.Funct)
}

// IsHalt returns true for the halt sentinel.
func (inst Instruction) IsHalt() bool {
	return inst.Class == CLASS_S && inst.StoreOp() == STORE_OP_HALT
}

// Encode packs the instruction into the word format of the mode.
func (inst Instruction) Encode(mode Mode) (code Code, err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(inst), err)
		}
	}()

	code.Mode = mode
	if mode == MODE_BATCH {
		code.Word, err = inst.encodeNarrow()
	} else {
		code.Word, err = inst.encodeWide()
	}

	return
}

// encodeWide packs the 16-bit interactive form. Bit 7 is never set, as the
// loader carries the load-enable flag there.
func (inst Instruction) encodeWide() (word uint16, err error) {
	if inst.Rd > REG_R7 {
		return 0, ErrOpcodeRd
	}
	if inst.Rs1 > REG_R7 {
		return 0, ErrOpcodeRs1
	}
	if inst.Rs2 > REG_R7 {
		return 0, ErrOpcodeRs2
	}

	word = uint16(inst.Class)

	switch inst.Class {
	case CLASS_R:
		if inst.Funct > 7 {
			return 0, ErrOpcodeFunct
		}
		word |= uint16(inst.Rd) << 2
		word |= uint16(inst.Funct&3) << 5
		word |= uint16(inst.Rs1) << 8
		word |= uint16(inst.Rs2) << 11
		word |= uint16((inst.Funct>>2)&1) << 14
	case CLASS_I:
		if inst.Funct > 3 {
			return 0, ErrOpcodeFunct
		}
		word |= uint16(inst.Rd) << 2
		word |= uint16(inst.Funct) << 5
		word |= uint16(inst.Imm) << 8
	case CLASS_S:
		if inst.Funct > 3 {
			return 0, ErrOpcodeFunct
		}
		word |= uint16(inst.Rs1) << 2
		word |= uint16(inst.Funct) << 5
	case CLASS_B:
		if inst.Funct > 3 {
			return 0, ErrOpcodeFunct
		}
		if inst.Offset < WIDE_OFFSET_MIN || inst.Offset > WIDE_OFFSET_MAX {
			return 0, ErrOpcodeOffset
		}
		word |= uint16(inst.Rs1) << 2
		word |= uint16(inst.Funct) << 5
		word |= uint16(inst.Rs2) << 8
		word |= uint16(uint8(inst.Offset)&0x1f) << 11
	default:
		return 0, ErrOpcodeClass
	}

	return
}

// encodeNarrow packs the 8-bit batch form.
func (inst Instruction) encodeNarrow() (word uint16, err error) {
	word = uint16(inst.Class)

	switch inst.Class {
	case CLASS_R:
		if inst.AluOp() != ALU_OP_ADD {
			return 0, ErrOpcodeFunct
		}
		if inst.Rd >= NARROW_REG_LIMIT {
			return 0, ErrOpcodeRd
		}
		if inst.Rs1 >= NARROW_REG_LIMIT {
			return 0, ErrOpcodeRs1
		}
		if inst.Rs2 >= NARROW_REG_LIMIT {
			return 0, ErrOpcodeRs2
		}
		word |= uint16(inst.Rd) << 2
		word |= uint16(inst.Rs1) << 4
		word |= uint16(inst.Rs2) << 6
	case CLASS_I:
		if inst.Funct > 3 {
			return 0, ErrOpcodeFunct
		}
		if inst.Rd >= NARROW_REG_LIMIT {
			return 0, ErrOpcodeRd
		}
		if inst.Imm >= NARROW_IMM_LIMIT {
			return 0, ErrOpcodeImm
		}
		word |= uint16(inst.Rd) << 2
		word |= uint16(inst.Funct) << 4
		word |= uint16(inst.Imm) << 6
	case CLASS_S:
		if inst.Funct > 3 {
			return 0, ErrOpcodeFunct
		}
		if inst.Rs1 > REG_R7 {
			return 0, ErrOpcodeRs1
		}
		word |= uint16(inst.Rs1) << 2
		word |= uint16(inst.Funct) << 5
	case CLASS_B:
		if inst.Funct > 1 {
			return 0, ErrOpcodeFunct
		}
		if inst.Rs1 >= NARROW_REG_LIMIT {
			return 0, ErrOpcodeRs1
		}
		if inst.Rs2 != REG_R0 {
			return 0, ErrOpcodeRs2
		}
		if inst.Offset < NARROW_OFFSET_MIN || inst.Offset > NARROW_OFFSET_MAX {
			return 0, ErrOpcodeOffset
		}
		word |= uint16(inst.Rs1) << 2
		word |= uint16(inst.Funct) << 4
		word |= uint16(uint8(inst.Offset)&0x7) << 5
	default:
		return 0, ErrOpcodeClass
	}

	return
}

// Class returns the operation class from the instruction word.
func (code Code) Class() CodeClass {
	return CodeClass(code.Word & 0x3)
}

// Decode unpacks the instruction word. Every word decodes; reserved
// functions are carried through in Funct.
func (code Code) Decode() (inst Instruction) {
	if code.Mode == MODE_BATCH {
		return decodeNarrow(uint8(code.Word))
	}

	return decodeWide(code.Word)
}

func decodeWide(word uint16) (inst Instruction) {
	inst.Class = CodeClass(word & 0x3)
	funct := uint8((word >> 5) & 0x3)

	switch inst.Class {
	case CLASS_R:
		inst.Rd = CodeReg((word >> 2) & 0x7)
		inst.Rs1 = CodeReg((word >> 8) & 0x7)
		inst.Rs2 = CodeReg((word >> 11) & 0x7)
		inst.Funct = funct | uint8((word>>14)&1)<<2
	case CLASS_I:
		inst.Rd = CodeReg((word >> 2) & 0x7)
		inst.Funct = funct
		inst.Imm = uint8(word >> 8)
	case CLASS_S:
		inst.Rs1 = CodeReg((word >> 2) & 0x7)
		inst.Funct = funct
	case CLASS_B:
		inst.Rs1 = CodeReg((word >> 2) & 0x7)
		inst.Rs2 = CodeReg((word >> 8) & 0x7)
		inst.Funct = funct
		// Sign extend bits 15:11.
		inst.Offset = int8(uint8(word>>8)) >> 3
	}

	return
}

func decodeNarrow(word uint8) (inst Instruction) {
	inst.Class = CodeClass(word & 0x3)

	switch inst.Class {
	case CLASS_R:
		inst.Funct = uint8(ALU_OP_ADD)
		inst.Rd = CodeReg((word >> 2) & 0x3)
		inst.Rs1 = CodeReg((word >> 4) & 0x3)
		inst.Rs2 = CodeReg((word >> 6) & 0x3)
	case CLASS_I:
		inst.Rd = CodeReg((word >> 2) & 0x3)
		inst.Funct = (word >> 4) & 0x3
		inst.Imm = (word >> 6) & 0x3
	case CLASS_S:
		inst.Rs1 = CodeReg((word >> 2) & 0x7)
		inst.Funct = (word >> 5) & 0x3
	case CLASS_B:
		inst.Rs1 = CodeReg((word >> 2) & 0x3)
		inst.Rs2 = REG_R0
		inst.Funct = (word >> 4) & 0x1
		// Sign extend bits 7:5.
		inst.Offset = int8(word) >> 5
	}

	return
}

// String returns the assembly language representation of this instruction.
func (inst Instruction) String() (out string) {
	switch inst.Class {
	case CLASS_R:
		op := inst.AluOp()
		if op > ALU_OP_SUB {
			return fmt.Sprintf("r.%d %v %v %v", inst.Funct, inst.Rd, inst.Rs1, inst.Rs2)
		}
		out = fmt.Sprintf("%v %v %v %v", op, inst.Rd, inst.Rs1, inst.Rs2)
	case CLASS_I:
		switch op := inst.ImmOp(); op {
		case IMM_OP_INA, IMM_OP_INB:
			out = fmt.Sprintf("%v %v", op, inst.Rd)
		default:
			out = fmt.Sprintf("%v %v %d", op, inst.Rd, inst.Imm)
		}
	case CLASS_S:
		switch op := inst.StoreOp(); op {
		case STORE_OP_OUT:
			out = fmt.Sprintf("%v %v", op, inst.Rs1)
		case STORE_OP_NOP, STORE_OP_HALT:
			out = op.String()
		default:
			out = fmt.Sprintf("s.%d %v", inst.Funct, inst.Rs1)
		}
	case CLASS_B:
		op := inst.BranchOp()
		if op > BRANCH_OP_NE {
			return fmt.Sprintf("b.%d %v %v %+d", inst.Funct, inst.Rs1, inst.Rs2, inst.Offset)
		}
		out = fmt.Sprintf("%v %v %v %+d", op, inst.Rs1, inst.Rs2, inst.Offset)
	default:
		out = fmt.Sprintf("%v?", inst.Class)
	}

	return
}

// String returns the disassembly of the instruction word.
func (code Code) String() string {
	if code.Mode == MODE_BATCH {
		return fmt.Sprintf("%02x %v", uint8(code.Word), code.Decode())
	}
	return fmt.Sprintf("%04x %v", code.Word, code.Decode())
}
