package cpu

// Outputs is the pin state driven by the core.
type Outputs struct {
	Out   uint8 // Primary output byte (uo_out).
	IoOut uint8 // Secondary output byte (uio_out).
	IoOe  uint8 // Secondary output enables (uio_oe).
}

// Output maps the committed state to the output pins:
//   - Out is the value of the selected register.
//   - IoOut is the program counter in bits 7:3 and the FSM state in bits 2:0.
//   - IoOe releases the secondary bus while the host holds the flag.
func (st *State) Output() (out Outputs) {
	out.Out = st.Register.Read(st.Selected)
	out.IoOut = (st.Pc&PC_MASK)<<3 | uint8(st.Fsm)&0x7
	out.IoOe = 0xff
	if st.Bus.Flag() {
		out.IoOe = 0x00
	}

	return
}
