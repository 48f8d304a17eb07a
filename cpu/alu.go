package cpu

const (
	PC_BITS = 5                  // Width of the program counter.
	PC_MASK = (1 << PC_BITS) - 1 // Mask of the program counter.
)

// Alu performs the requested ALU function, and returns the output value.
// Reserved functions return ok as false and a zero output.
func Alu(op CodeAluOp, a, b uint8) (output uint8, ok bool) {
	ok = true

	switch op {
	case ALU_OP_ADD:
		output = a + b
	case ALU_OP_SUB:
		output = a - b
	case ALU_OP_AND:
		output = a & b
	case ALU_OP_XOR:
		output = a ^ b
	case ALU_OP_SLT: // unsigned
		if a < b {
			output = 1
		}
	default:
		ok = false
	}

	return
}

// Branch evaluates the branch condition.
// Reserved functions return ok as false and are never taken.
func Branch(op CodeBranchOp, a, b uint8) (taken bool, ok bool) {
	ok = true

	switch op {
	case BRANCH_OP_EQ:
		taken = a == b
	case BRANCH_OP_NE:
		taken = a != b
	default:
		ok = false
	}

	return
}

// BranchTarget returns pc + 1 + offset, wrapped to the program counter width.
func BranchTarget(pc uint8, offset int8) uint8 {
	return uint8(int(pc)+1+int(offset)) & PC_MASK
}

// NextPc returns pc + 1, wrapped to the program counter width.
func NextPc(pc uint8) uint8 {
	return (pc + 1) & PC_MASK
}
