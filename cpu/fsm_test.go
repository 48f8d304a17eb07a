package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransition(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		state FsmState
		event FsmEvent
		next  FsmState
	}){
		{STATE_FETCH, EVENT_STALL, STATE_FETCH},
		{STATE_FETCH, EVENT_ADVANCE, STATE_DECODE},
		{STATE_DECODE, EVENT_ADVANCE, STATE_EXECUTE},
		{STATE_EXECUTE, EVENT_ADVANCE, STATE_WRITEBACK},
		{STATE_WRITEBACK, EVENT_ADVANCE, STATE_FETCH},
		{STATE_WRITEBACK, EVENT_HALT, STATE_HALT},
		{STATE_HALT, EVENT_ADVANCE, STATE_HALT},
		{STATE_HALT, EVENT_STALL, STATE_HALT},
		{FsmState(5), EVENT_ADVANCE, STATE_FETCH},
		{FsmState(7), EVENT_STALL, STATE_FETCH},
		{STATE_DECODE, FsmEvent(9), STATE_EXECUTE},
	}

	for _, entry := range table {
		assert.Equal(entry.next, Transition(entry.state, entry.event), entry.state.String())
	}
}

func TestRegisterFile(t *testing.T) {
	assert := assert.New(t)

	var regs RegisterFile
	regs.Write(REG_R7, 0x42)
	assert.Equal(uint8(0x42), regs.Read(REG_R7))
	assert.Equal(uint8(0x42), regs.Read(CodeReg(15)))

	regs.Write(REG_R0, 1)
	assert.Equal(uint8(1), regs.Read(REG_R0))

	regs.Reset()
	assert.Equal(RegisterFile{}, regs)
}
