package cpu

// Execution is the result of the EXECUTE stage, committed at WRITEBACK.
type Execution struct {
	Result  uint8 // ALU result for Rd.
	Write   bool  // Result is committed to Rd.
	Publish bool  // Rs1 is selected onto the output port.
	Taken   bool  // Branch taken.
	Target  uint8 // Branch target.
	Halt    bool  // Enter HALT.
}

// Execute computes the effect of the decoded instruction against the
// register file, program counter and input bus. Reserved functions produce
// an empty Execution, which only advances the program counter.
func Execute(inst Instruction, regs *RegisterFile, pc uint8, bus Bus) (ex Execution) {
	switch inst.Class {
	case CLASS_R:
		ex.Result, ex.Write = Alu(inst.AluOp(), regs.Read(inst.Rs1), regs.Read(inst.Rs2))
	case CLASS_I:
		ex.Write = true
		switch inst.ImmOp() {
		case IMM_OP_LI:
			ex.Result = inst.Imm
		case IMM_OP_ADDI:
			ex.Result, _ = Alu(ALU_OP_ADD, regs.Read(inst.Rd), inst.Imm)
		case IMM_OP_INA:
			ex.Result = bus.Payload()
		case IMM_OP_INB:
			ex.Result = bus.Secondary()
		default:
			ex.Write = false
		}
	case CLASS_S:
		switch {
		case inst.IsHalt():
			ex.Halt = true
		case inst.StoreOp() == STORE_OP_OUT:
			ex.Publish = true
		}
	case CLASS_B:
		ex.Taken, _ = Branch(inst.BranchOp(), regs.Read(inst.Rs1), regs.Read(inst.Rs2))
		ex.Target = BranchTarget(pc, inst.Offset)
	}

	return
}
