package cpu

// REGISTER_COUNT is the number of general-purpose registers.
const REGISTER_COUNT = 8

// RegisterFile is the general-purpose register bank. There is no
// hardwired zero register.
type RegisterFile [REGISTER_COUNT]uint8

// Read a register. Index bits above the file size are ignored.
func (rf *RegisterFile) Read(reg CodeReg) uint8 {
	return rf[reg%REGISTER_COUNT]
}

// Write a register. Index bits above the file size are ignored.
func (rf *RegisterFile) Write(reg CodeReg, value uint8) {
	rf[reg%REGISTER_COUNT] = value
}

// Reset clears every register.
func (rf *RegisterFile) Reset() {
	clear(rf[:])
}
