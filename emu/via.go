package emu

// VIA register indices (65C22 register file).
const (
	viaIORB  = 0x0
	viaIORA  = 0x1
	viaDDRB  = 0x2
	viaDDRA  = 0x3
	viaT1CL  = 0x4
	viaT1CH  = 0x5
	viaT1LL  = 0x6
	viaT1LH  = 0x7
	viaT2CL  = 0x8
	viaT2CH  = 0x9
	viaSR    = 0xA
	viaACR   = 0xB
	viaPCR   = 0xC
	viaIFR   = 0xD
	viaIER   = 0xE
	viaORANH = 0xF
)

// VIA models the 65C22 interface adapter at $2800-$280F as a raw
// register file. The console wires port A to the flash cartridge's
// bank-select shift register, so the bus replays a before/after
// snapshot of every register write into the cartridge. Timers and
// the VIA's own interrupt sources are not modeled.
type VIA struct {
	regs [16]byte
}

// ReadRegister reads a VIA register. The 16 registers mirror through
// the whole $2800-$280F range.
func (v *VIA) ReadRegister(addr uint16) byte {
	return v.regs[addr&0xF]
}

// WriteRegister updates a register and returns the before and after
// snapshots for the cartridge hook.
func (v *VIA) WriteRegister(addr uint16, val byte) (before, after [16]byte) {
	before = v.regs
	v.regs[addr&0xF] = val
	after = v.regs
	return before, after
}
