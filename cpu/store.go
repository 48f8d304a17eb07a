package cpu

// STORE_SIZE is the number of program store slots.
const STORE_SIZE = 16

// Store is the batch mode program store.
//
// While the bus flag (write-enable) is high, the payload of the primary
// input is the slot address and the secondary input is the data byte.
// Addresses beyond the store are ignored. Releasing write-enable arms the
// store, and fetch begins from address 0.
type Store struct {
	Slot    [STORE_SIZE]uint8
	Writing bool // Write-enable was high on the last tick.
	Armed   bool // Program released for fetch.
}

// Next returns the store state after a tick with the bus sampled.
func (st Store) Next(bus Bus) (next Store) {
	next = st

	if bus.Flag() {
		address := bus.Payload()
		if address < STORE_SIZE {
			next.Slot[address] = bus.Secondary()
		}
		next.Writing = true
		next.Armed = false
		return
	}

	if st.Writing {
		next.Writing = false
		next.Armed = true
	}

	return
}

// Fetch returns the slot for the program counter. The program counter is
// wider than the store, so fetch wraps.
func (st *Store) Fetch(pc uint8) uint8 {
	return st.Slot[pc%STORE_SIZE]
}

// Reset clears the store and disarms it.
func (st *Store) Reset() {
	*st = Store{}
}
