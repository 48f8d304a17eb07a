package cpu

import (
	"errors"

	"github.com/ezrec/tinycore/translate"
)

var f = translate.From

var (
	// Instruction encode errors
	ErrOpcodeClass  = errors.New(f("class"))
	ErrOpcodeFunct  = errors.New(f("funct"))
	ErrOpcodeRd     = errors.New(f("rd"))
	ErrOpcodeRs1    = errors.New(f("rs1"))
	ErrOpcodeRs2    = errors.New(f("rs2"))
	ErrOpcodeImm    = errors.New(f("imm"))
	ErrOpcodeOffset = errors.New(f("offset"))

	// Program errors
	ErrProgramFull  = errors.New(f("program full"))
	ErrImageLength  = errors.New(f("image length"))
	ErrModeMismatch = errors.New(f("mode mismatch"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeMissing      = errors.New(f("operand missing"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrTargetInvalid      = errors.New(f("target invalid"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrOpcode reports an instruction that could not be encoded.
type ErrOpcode Instruction

func (eo ErrOpcode) Error() string {
	return f("bad instruction %v", Instruction(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
