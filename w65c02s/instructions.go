package w65c02s

// Instruction handlers. Each receives its resolved effective address
// from the dispatch switch in opcodes.go. checkIRQEdge sits right
// before the operand's final access (for read-modify-write, between
// the read and the write), which is where the part decides whether the
// next cycle starts an interrupt sequence.

func (c *CPU) lda(addr uint16) {
	c.checkIRQEdge()
	c.reg.A = c.busRead(addr)
	c.setNZ(c.reg.A)
}

func (c *CPU) ldx(addr uint16) {
	c.checkIRQEdge()
	c.reg.X = c.busRead(addr)
	c.setNZ(c.reg.X)
}

func (c *CPU) ldy(addr uint16) {
	c.checkIRQEdge()
	c.reg.Y = c.busRead(addr)
	c.setNZ(c.reg.Y)
}

func (c *CPU) sta(addr uint16) {
	c.checkIRQEdge()
	c.busWrite(addr, c.reg.A)
}

func (c *CPU) stx(addr uint16) {
	c.checkIRQEdge()
	c.busWrite(addr, c.reg.X)
}

func (c *CPU) sty(addr uint16) {
	c.checkIRQEdge()
	c.busWrite(addr, c.reg.Y)
}

func (c *CPU) stz(addr uint16) {
	c.checkIRQEdge()
	c.busWrite(addr, 0)
}

func (c *CPU) ora(addr uint16) {
	c.checkIRQEdge()
	c.reg.A |= c.busRead(addr)
	c.setNZ(c.reg.A)
}

func (c *CPU) and(addr uint16) {
	c.checkIRQEdge()
	c.reg.A &= c.busRead(addr)
	c.setNZ(c.reg.A)
}

func (c *CPU) eor(addr uint16) {
	c.checkIRQEdge()
	c.reg.A ^= c.busRead(addr)
	c.setNZ(c.reg.A)
}

// bit sets Z from A&M and copies the operand's top two bits into N
// and V.
func (c *CPU) bit(addr uint16) {
	c.checkIRQEdge()
	v := c.busRead(addr)
	c.reg.P = c.reg.P&^(FlagN|FlagV|FlagZ) | v&(FlagN|FlagV)
	if c.reg.A&v == 0 {
		c.reg.P |= FlagZ
	}
}

// bitImm is BIT #imm, which affects only Z.
func (c *CPU) bitImm(addr uint16) {
	c.checkIRQEdge()
	v := c.busRead(addr)
	if c.reg.A&v == 0 {
		c.reg.P |= FlagZ
	} else {
		c.reg.P &^= FlagZ
	}
}

func (c *CPU) adc(addr uint16) {
	c.checkIRQEdge()
	v := c.busRead(addr)
	if c.reg.P&FlagD != 0 {
		c.adcDecimal(v)
	} else {
		c.addBinary(v)
	}
}

func (c *CPU) sbc(addr uint16) {
	c.checkIRQEdge()
	v := c.busRead(addr)
	if c.reg.P&FlagD != 0 {
		c.sbcDecimal(v)
	} else {
		c.addBinary(^v)
	}
}

// addBinary is the shared binary-mode core of ADC and SBC; subtraction
// adds the operand's complement.
func (c *CPU) addBinary(v uint8) {
	sum := uint16(c.reg.A) + uint16(v)
	if c.reg.P&FlagC != 0 {
		sum++
	}
	c.setV((c.reg.A^uint8(sum))&(v^uint8(sum))&0x80 != 0)
	c.reg.A = uint8(sum)
	c.setCNZ(sum >= 0x100, c.reg.A)
}

// adcDecimal adds in BCD. Carry propagates per nibble with the 0x06
// and 0x60 adjustments; V is computed from the sign-extended halves
// before the high nibble is corrected, matching silicon.
func (c *CPU) adcDecimal(v uint8) {
	carry := uint16(0)
	if c.reg.P&FlagC != 0 {
		carry = 1
	}
	al := uint16(c.reg.A&0x0F) + uint16(v&0x0F) + carry
	if al > 9 {
		al = (al+6)&0x0F | 0x10
	}
	sv := uint16(int16(int8(c.reg.A)))&0xFFF0 + uint16(int16(int8(v)))&0xFFF0 + al
	c.setV(sv >= 0x80 && sv < 0xFF80)
	sum := uint16(c.reg.A&0xF0) + uint16(v&0xF0) + al
	if sum > 0x9F {
		sum = (sum + 0x60) | 0x100
	}
	c.reg.A = uint8(sum)
	c.setCNZ(sum >= 0x100, c.reg.A)
}

// sbcDecimal subtracts in BCD. The 0x60 and 0x06 corrections apply
// after the binary difference, and N/Z reflect the corrected result.
func (c *CPU) sbcDecimal(v uint8) {
	borrow := uint8(1)
	if c.reg.P&FlagC != 0 {
		borrow = 0
	}
	al := c.reg.A&0x0F - v&0x0F - borrow
	diff := uint16(c.reg.A) - uint16(v) - uint16(borrow)
	c.setV((uint16(c.reg.A)^diff)&(uint16(v)^0xFF^diff)&0x80 != 0)
	if diff&0x8000 != 0 {
		diff -= 0x60
		c.reg.P &^= FlagC
	} else {
		c.reg.P |= FlagC
	}
	if al >= 0x80 {
		diff -= 0x06
	}
	c.reg.A = uint8(diff)
	c.setNZ(c.reg.A)
}

func (c *CPU) cmp(addr uint16) { c.compare(c.reg.A, addr) }
func (c *CPU) cpx(addr uint16) { c.compare(c.reg.X, addr) }
func (c *CPU) cpy(addr uint16) { c.compare(c.reg.Y, addr) }

func (c *CPU) compare(reg uint8, addr uint16) {
	c.checkIRQEdge()
	v := c.busRead(addr)
	diff := uint16(reg) + uint16(^v) + 1
	c.setCNZ(diff >= 0x100, uint8(diff))
}

// Memory read-modify-write instructions.

func (c *CPU) aslMem(addr uint16) {
	v := c.busRead(addr)
	r := v << 1
	c.checkIRQEdge()
	c.busWrite(addr, r)
	c.setCNZ(v&0x80 != 0, r)
}

func (c *CPU) lsrMem(addr uint16) {
	v := c.busRead(addr)
	r := v >> 1
	c.checkIRQEdge()
	c.busWrite(addr, r)
	c.setCNZ(v&0x01 != 0, r)
}

func (c *CPU) rolMem(addr uint16) {
	v := c.busRead(addr)
	r := v<<1 | c.reg.P&FlagC
	c.checkIRQEdge()
	c.busWrite(addr, r)
	c.setCNZ(v&0x80 != 0, r)
}

func (c *CPU) rorMem(addr uint16) {
	v := c.busRead(addr)
	r := v >> 1
	if c.reg.P&FlagC != 0 {
		r |= 0x80
	}
	c.checkIRQEdge()
	c.busWrite(addr, r)
	c.setCNZ(v&0x01 != 0, r)
}

func (c *CPU) incMem(addr uint16) {
	v := c.busRead(addr)
	c.checkIRQEdge()
	v++
	c.busWrite(addr, v)
	c.setNZ(v)
}

func (c *CPU) decMem(addr uint16) {
	v := c.busRead(addr)
	c.checkIRQEdge()
	v--
	c.busWrite(addr, v)
	c.setNZ(v)
}

// trb clears the accumulator's bits in memory; Z reports whether any
// were set beforehand.
func (c *CPU) trb(addr uint16) {
	v := c.busRead(addr)
	c.checkIRQEdge()
	c.busWrite(addr, v&^c.reg.A)
	if v&c.reg.A == 0 {
		c.reg.P |= FlagZ
	} else {
		c.reg.P &^= FlagZ
	}
}

func (c *CPU) tsb(addr uint16) {
	v := c.busRead(addr)
	c.checkIRQEdge()
	c.busWrite(addr, v|c.reg.A)
	if v&c.reg.A == 0 {
		c.reg.P |= FlagZ
	} else {
		c.reg.P &^= FlagZ
	}
}

// rmb and smb clear or set a single zero-page bit without touching any
// flags.

func (c *CPU) rmb(addr uint16, mask uint8) {
	v := c.busRead(addr)
	c.checkIRQEdge()
	c.busWrite(addr, v&^mask)
}

func (c *CPU) smb(addr uint16, mask uint8) {
	v := c.busRead(addr)
	c.checkIRQEdge()
	c.busWrite(addr, v|mask)
}

// Accumulator and register forms.

func (c *CPU) aslA() {
	c.checkIRQEdge()
	v := c.reg.A
	c.reg.A = v << 1
	c.setCNZ(v&0x80 != 0, c.reg.A)
}

func (c *CPU) lsrA() {
	c.checkIRQEdge()
	v := c.reg.A
	c.reg.A = v >> 1
	c.setCNZ(v&0x01 != 0, c.reg.A)
}

func (c *CPU) rolA() {
	c.checkIRQEdge()
	v := c.reg.A
	c.reg.A = v<<1 | c.reg.P&FlagC
	c.setCNZ(v&0x80 != 0, c.reg.A)
}

func (c *CPU) rorA() {
	c.checkIRQEdge()
	v := c.reg.A
	c.reg.A = v >> 1
	if c.reg.P&FlagC != 0 {
		c.reg.A |= 0x80
	}
	c.setCNZ(v&0x01 != 0, c.reg.A)
}

func (c *CPU) incA() {
	c.checkIRQEdge()
	c.reg.A++
	c.setNZ(c.reg.A)
}

func (c *CPU) decA() {
	c.checkIRQEdge()
	c.reg.A--
	c.setNZ(c.reg.A)
}

func (c *CPU) inx() {
	c.checkIRQEdge()
	c.reg.X++
	c.setNZ(c.reg.X)
}

func (c *CPU) iny() {
	c.checkIRQEdge()
	c.reg.Y++
	c.setNZ(c.reg.Y)
}

func (c *CPU) dex() {
	c.checkIRQEdge()
	c.reg.X--
	c.setNZ(c.reg.X)
}

func (c *CPU) dey() {
	c.checkIRQEdge()
	c.reg.Y--
	c.setNZ(c.reg.Y)
}

// Register transfers.

func (c *CPU) tax() {
	c.checkIRQEdge()
	c.reg.X = c.reg.A
	c.setNZ(c.reg.X)
}

func (c *CPU) tay() {
	c.checkIRQEdge()
	c.reg.Y = c.reg.A
	c.setNZ(c.reg.Y)
}

func (c *CPU) txa() {
	c.checkIRQEdge()
	c.reg.A = c.reg.X
	c.setNZ(c.reg.A)
}

func (c *CPU) tya() {
	c.checkIRQEdge()
	c.reg.A = c.reg.Y
	c.setNZ(c.reg.A)
}

func (c *CPU) tsx() {
	c.checkIRQEdge()
	c.reg.X = c.reg.S
	c.setNZ(c.reg.X)
}

func (c *CPU) txs() {
	c.checkIRQEdge()
	c.reg.S = c.reg.X
}

// Stack operations. Pushed status always carries B and the unused bit;
// pulls route through setP which strips them back out.

func (c *CPU) php() {
	c.checkIRQEdge()
	c.push(c.reg.P | FlagB | FlagU)
}

func (c *CPU) plp() {
	c.checkIRQEdge()
	c.setP(c.pop())
}

func (c *CPU) pha() {
	c.checkIRQEdge()
	c.push(c.reg.A)
}

func (c *CPU) pla() {
	c.checkIRQEdge()
	c.reg.A = c.pop()
	c.setNZ(c.reg.A)
}

func (c *CPU) phx() {
	c.checkIRQEdge()
	c.push(c.reg.X)
}

func (c *CPU) plx() {
	c.checkIRQEdge()
	c.reg.X = c.pop()
	c.setNZ(c.reg.X)
}

func (c *CPU) phy() {
	c.checkIRQEdge()
	c.push(c.reg.Y)
}

func (c *CPU) ply() {
	c.checkIRQEdge()
	c.reg.Y = c.pop()
	c.setNZ(c.reg.Y)
}

// Control flow.

func (c *CPU) jmp(addr uint16) {
	c.checkIRQEdge()
	c.reg.PC = addr
}

// jsr pushes the address of its own final byte; RTS adds one on the
// way back.
func (c *CPU) jsr() {
	lo := uint16(c.fetch())
	c.push(uint8(c.reg.PC >> 8))
	c.push(uint8(c.reg.PC))
	c.checkIRQEdge()
	hi := uint16(c.busRead(c.reg.PC))
	c.reg.PC = hi<<8 | lo
}

func (c *CPU) rts() {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	c.checkIRQEdge()
	c.reg.PC = (hi<<8 | lo) + 1
}

func (c *CPU) rti() {
	c.setP(c.pop())
	lo := uint16(c.pop())
	c.checkIRQEdge()
	hi := uint16(c.pop())
	c.reg.PC = hi<<8 | lo
}

// brk pushes the address past its signature byte, stacks the status
// with B set, and vectors through 0xFFFE with IRQs masked and decimal
// mode cleared. No edge check: a pending IRQ rides through into the
// handler.
func (c *CPU) brk() {
	c.reg.PC++
	c.push(uint8(c.reg.PC >> 8))
	c.push(uint8(c.reg.PC))
	c.push(c.reg.P | FlagB)
	c.reg.P = (c.reg.P | FlagI) &^ FlagD
	c.reg.PC = c.busRead16(VectorIRQ)
}

func (c *CPU) branch(cond bool) {
	disp := c.fetch()
	c.checkIRQEdge()
	if cond {
		c.reg.PC += uint16(int16(int8(disp)))
	}
}

// bbr and bbs test a zero-page bit and branch on its state without
// affecting any flags.

func (c *CPU) bbr(mask uint8) {
	zp := uint16(c.fetch())
	c.checkIRQEdge()
	v := c.busRead(zp)
	disp := c.fetch()
	if v&mask == 0 {
		c.reg.PC += uint16(int16(int8(disp)))
	}
}

func (c *CPU) bbs(mask uint8) {
	zp := uint16(c.fetch())
	c.checkIRQEdge()
	v := c.busRead(zp)
	disp := c.fetch()
	if v&mask != 0 {
		c.reg.PC += uint16(int16(int8(disp)))
	}
}

// Reserved opcodes execute as NOPs of varying length. None of them
// read their operand, so only the operand bytes fetched from the
// instruction stream cost cycles.

func (c *CPU) nopImplied() {
	c.checkIRQEdge()
}

// nopImm skips its operand byte without reading it.
func (c *CPU) nopImm() {
	c.reg.PC++
	c.checkIRQEdge()
}

func (c *CPU) nopZp() {
	c.fetch()
	c.checkIRQEdge()
}

func (c *CPU) nopAbs() {
	c.modeAbs()
	c.checkIRQEdge()
}
