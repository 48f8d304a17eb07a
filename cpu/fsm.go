package cpu

// FsmState is the control sequencer state.
type FsmState int

//go:generate go tool stringer -linecomment -type=FsmState
const (
	STATE_FETCH     = FsmState(0) // fetch
	STATE_DECODE    = FsmState(1) // decode
	STATE_EXECUTE   = FsmState(2) // execute
	STATE_WRITEBACK = FsmState(3) // writeback
	STATE_HALT      = FsmState(4) // halt
)

// FsmEvent is the outcome of a state's work for one tick.
type FsmEvent int

const (
	EVENT_STALL   = FsmEvent(0) // No instruction available.
	EVENT_ADVANCE = FsmEvent(1) // Stage complete.
	EVENT_HALT    = FsmEvent(2) // Halt instruction committed.
)

// fsmTable is indexed by [state][event].
var fsmTable = [...][3]FsmState{
	STATE_FETCH:     {STATE_FETCH, STATE_DECODE, STATE_FETCH},
	STATE_DECODE:    {STATE_EXECUTE, STATE_EXECUTE, STATE_EXECUTE},
	STATE_EXECUTE:   {STATE_WRITEBACK, STATE_WRITEBACK, STATE_WRITEBACK},
	STATE_WRITEBACK: {STATE_FETCH, STATE_FETCH, STATE_HALT},
	STATE_HALT:      {STATE_HALT, STATE_HALT, STATE_HALT},
}

// Transition returns the state following state on event.
// Unknown states fall back to STATE_FETCH; unknown events stall.
func Transition(state FsmState, event FsmEvent) FsmState {
	if state < 0 || int(state) >= len(fsmTable) {
		return STATE_FETCH
	}
	if event < 0 || int(event) >= len(fsmTable[state]) {
		event = EVENT_STALL
	}

	return fsmTable[state][event]
}
