package cpu

const (
	BUS_FLAG    = 0x80 // Load-enable / write-enable flag of the primary input.
	BUS_PAYLOAD = 0x7f // Payload bits of the primary input.
)

// Bus is the raw pin state sampled on a clock edge.
type Bus struct {
	In     uint8 // Primary input byte (ui_in).
	IoIn   uint8 // Secondary input byte (uio_in).
	Enable bool  // ena
	ResetN bool  // rst_n, active low.
}

// Flag returns the load-enable / write-enable bit.
func (bus Bus) Flag() bool {
	return (bus.In & BUS_FLAG) != 0
}

// Payload returns the data bits of the primary input.
func (bus Bus) Payload() uint8 {
	return bus.In & BUS_PAYLOAD
}

// Secondary returns the secondary input byte.
func (bus Bus) Secondary() uint8 {
	return bus.IoIn
}

// InReset returns true while reset is asserted.
func (bus Bus) InReset() bool {
	return !bus.ResetN
}
