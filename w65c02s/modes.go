package w65c02s

// Addressing mode resolvers. Each consumes the instruction's operand
// bytes at PC and returns the effective address the handler operates
// on. Immediate mode hands back the program counter itself, so the
// handler's operand read doubles as the operand fetch.

func (c *CPU) modeImm() uint16 {
	addr := c.reg.PC
	c.reg.PC++
	return addr
}

func (c *CPU) modeZp() uint16 {
	return uint16(c.fetch())
}

// Zero-page indexing wraps within the page.

func (c *CPU) modeZpX() uint16 {
	return uint16(c.fetch() + c.reg.X)
}

func (c *CPU) modeZpY() uint16 {
	return uint16(c.fetch() + c.reg.Y)
}

func (c *CPU) modeAbs() uint16 {
	lo := uint16(c.fetch())
	hi := uint16(c.fetch())
	return hi<<8 | lo
}

func (c *CPU) modeAbsX() uint16 {
	return c.modeAbs() + uint16(c.reg.X)
}

func (c *CPU) modeAbsY() uint16 {
	return c.modeAbs() + uint16(c.reg.Y)
}

// zpPointer reads a 16-bit pointer out of the zero page; the high byte
// wraps within the page.
func (c *CPU) zpPointer(zp uint8) uint16 {
	lo := uint16(c.busRead(uint16(zp)))
	hi := uint16(c.busRead(uint16(zp + 1)))
	return hi<<8 | lo
}

// modeZpInd resolves (zp), the 65C02 indirect without indexing.
func (c *CPU) modeZpInd() uint16 {
	return c.zpPointer(c.fetch())
}

// modeIndX resolves (zp,X): the index applies to the pointer location.
func (c *CPU) modeIndX() uint16 {
	return c.zpPointer(c.fetch() + c.reg.X)
}

// modeIndY resolves (zp),Y: the index applies to the pointed-to
// address.
func (c *CPU) modeIndY() uint16 {
	return c.zpPointer(c.fetch()) + uint16(c.reg.Y)
}

// modeAbsInd resolves the JMP (abs) pointer. The CMOS part carries the
// pointer increment across a page boundary instead of wrapping like
// the NMOS 6502 did.
func (c *CPU) modeAbsInd() uint16 {
	return c.busRead16(c.modeAbs())
}

// modeAbsIndX resolves the JMP (abs,X) pointer.
func (c *CPU) modeAbsIndX() uint16 {
	return c.busRead16(c.modeAbs() + uint16(c.reg.X))
}
