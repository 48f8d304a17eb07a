package cpu

// LoaderPhase is the phase of the two-phase instruction loader.
type LoaderPhase int

//go:generate go tool stringer -linecomment -type=LoaderPhase
const (
	PHASE_AWAIT_LOWER = LoaderPhase(0) // lower
	PHASE_AWAIT_UPPER = LoaderPhase(1) // upper
	PHASE_READY       = LoaderPhase(2) // ready
)

// Loader assembles a 16-bit instruction word from two halves delivered on
// consecutive ticks while the bus flag is held, and raises Valid on the tick
// the flag drops with both halves present.
type Loader struct {
	Lower uint8
	Upper uint8
	Phase LoaderPhase

	Pending uint16 // Word awaiting FETCH.
	Valid   bool   // Set if Pending has not been consumed.
}

// Word returns the latched halves as an instruction word.
func (ld Loader) Word() uint16 {
	return uint16(ld.Upper)<<8 | uint16(ld.Lower)
}

// Next returns the loader state after a tick with the bus sampled.
// If consumed is set, FETCH took the pending word on this tick; a word
// completed on the same tick still replaces it.
func (ld Loader) Next(bus Bus, consumed bool) (next Loader) {
	next = ld

	if consumed {
		next.Valid = false
	}

	if bus.Flag() {
		switch ld.Phase {
		case PHASE_AWAIT_LOWER:
			next.Lower = bus.Payload()
			next.Phase = PHASE_AWAIT_UPPER
		case PHASE_AWAIT_UPPER:
			next.Upper = bus.Secondary()
			next.Phase = PHASE_READY
		case PHASE_READY:
			// Hold until the flag drops.
		default:
			next.Phase = PHASE_AWAIT_LOWER
		}
		return
	}

	if ld.Phase == PHASE_READY {
		// Last write wins.
		next.Pending = ld.Word()
		next.Valid = true
	}

	// A drop after only the lower half discards it.
	next.Phase = PHASE_AWAIT_LOWER
	next.Lower = 0
	next.Upper = 0

	return
}

// Reset clears the latch and any pending word.
func (ld *Loader) Reset() {
	*ld = Loader{}
}
