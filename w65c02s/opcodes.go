package w65c02s

// execute dispatches one fetched opcode to its handler with the
// addressing mode resolved inline. Opcodes WDC left undefined fall
// through to nopReserved. The flag instructions (CLC..SED), BRK, WAI
// and STP deliberately skip the IRQ edge check; everything else
// samples the line once, so interrupt masking changes always take
// effect one instruction late.
func (c *CPU) execute(op uint8) {
	switch op {
	case 0x00: // BRK
		c.brk()
	case 0x01: // ORA (zp,X)
		c.ora(c.modeIndX())
	case 0x04: // TSB zp
		c.tsb(c.modeZp())
	case 0x05: // ORA zp
		c.ora(c.modeZp())
	case 0x06: // ASL zp
		c.aslMem(c.modeZp())
	case 0x07: // RMB0 zp
		c.rmb(c.modeZp(), 0x01)
	case 0x08: // PHP
		c.php()
	case 0x09: // ORA #imm
		c.ora(c.modeImm())
	case 0x0A: // ASL A
		c.aslA()
	case 0x0C: // TSB abs
		c.tsb(c.modeAbs())
	case 0x0D: // ORA abs
		c.ora(c.modeAbs())
	case 0x0E: // ASL abs
		c.aslMem(c.modeAbs())
	case 0x0F: // BBR0
		c.bbr(0x01)

	case 0x10: // BPL
		c.branch(c.reg.P&FlagN == 0)
	case 0x11: // ORA (zp),Y
		c.ora(c.modeIndY())
	case 0x12: // ORA (zp)
		c.ora(c.modeZpInd())
	case 0x14: // TRB zp
		c.trb(c.modeZp())
	case 0x15: // ORA zp,X
		c.ora(c.modeZpX())
	case 0x16: // ASL zp,X
		c.aslMem(c.modeZpX())
	case 0x17: // RMB1 zp
		c.rmb(c.modeZp(), 0x02)
	case 0x18: // CLC
		c.reg.P &^= FlagC
	case 0x19: // ORA abs,Y
		c.ora(c.modeAbsY())
	case 0x1A: // INC A
		c.incA()
	case 0x1C: // TRB abs
		c.trb(c.modeAbs())
	case 0x1D: // ORA abs,X
		c.ora(c.modeAbsX())
	case 0x1E: // ASL abs,X
		c.aslMem(c.modeAbsX())
	case 0x1F: // BBR1
		c.bbr(0x02)

	case 0x20: // JSR abs
		c.jsr()
	case 0x21: // AND (zp,X)
		c.and(c.modeIndX())
	case 0x24: // BIT zp
		c.bit(c.modeZp())
	case 0x25: // AND zp
		c.and(c.modeZp())
	case 0x26: // ROL zp
		c.rolMem(c.modeZp())
	case 0x27: // RMB2 zp
		c.rmb(c.modeZp(), 0x04)
	case 0x28: // PLP
		c.plp()
	case 0x29: // AND #imm
		c.and(c.modeImm())
	case 0x2A: // ROL A
		c.rolA()
	case 0x2C: // BIT abs
		c.bit(c.modeAbs())
	case 0x2D: // AND abs
		c.and(c.modeAbs())
	case 0x2E: // ROL abs
		c.rolMem(c.modeAbs())
	case 0x2F: // BBR2
		c.bbr(0x04)

	case 0x30: // BMI
		c.branch(c.reg.P&FlagN != 0)
	case 0x31: // AND (zp),Y
		c.and(c.modeIndY())
	case 0x32: // AND (zp)
		c.and(c.modeZpInd())
	case 0x34: // BIT zp,X
		c.bit(c.modeZpX())
	case 0x35: // AND zp,X
		c.and(c.modeZpX())
	case 0x36: // ROL zp,X
		c.rolMem(c.modeZpX())
	case 0x37: // RMB3 zp
		c.rmb(c.modeZp(), 0x08)
	case 0x38: // SEC
		c.reg.P |= FlagC
	case 0x39: // AND abs,Y
		c.and(c.modeAbsY())
	case 0x3A: // DEC A
		c.decA()
	case 0x3C: // BIT abs,X
		c.bit(c.modeAbsX())
	case 0x3D: // AND abs,X
		c.and(c.modeAbsX())
	case 0x3E: // ROL abs,X
		c.rolMem(c.modeAbsX())
	case 0x3F: // BBR3
		c.bbr(0x08)

	case 0x40: // RTI
		c.rti()
	case 0x41: // EOR (zp,X)
		c.eor(c.modeIndX())
	case 0x45: // EOR zp
		c.eor(c.modeZp())
	case 0x46: // LSR zp
		c.lsrMem(c.modeZp())
	case 0x47: // RMB4 zp
		c.rmb(c.modeZp(), 0x10)
	case 0x48: // PHA
		c.pha()
	case 0x49: // EOR #imm
		c.eor(c.modeImm())
	case 0x4A: // LSR A
		c.lsrA()
	case 0x4C: // JMP abs
		c.jmp(c.modeAbs())
	case 0x4D: // EOR abs
		c.eor(c.modeAbs())
	case 0x4E: // LSR abs
		c.lsrMem(c.modeAbs())
	case 0x4F: // BBR4
		c.bbr(0x10)

	case 0x50: // BVC
		c.branch(c.reg.P&FlagV == 0)
	case 0x51: // EOR (zp),Y
		c.eor(c.modeIndY())
	case 0x52: // EOR (zp)
		c.eor(c.modeZpInd())
	case 0x55: // EOR zp,X
		c.eor(c.modeZpX())
	case 0x56: // LSR zp,X
		c.lsrMem(c.modeZpX())
	case 0x57: // RMB5 zp
		c.rmb(c.modeZp(), 0x20)
	case 0x58: // CLI
		c.reg.P &^= FlagI
	case 0x59: // EOR abs,Y
		c.eor(c.modeAbsY())
	case 0x5A: // PHY
		c.phy()
	case 0x5D: // EOR abs,X
		c.eor(c.modeAbsX())
	case 0x5E: // LSR abs,X
		c.lsrMem(c.modeAbsX())
	case 0x5F: // BBR5
		c.bbr(0x20)

	case 0x60: // RTS
		c.rts()
	case 0x61: // ADC (zp,X)
		c.adc(c.modeIndX())
	case 0x64: // STZ zp
		c.stz(c.modeZp())
	case 0x65: // ADC zp
		c.adc(c.modeZp())
	case 0x66: // ROR zp
		c.rorMem(c.modeZp())
	case 0x67: // RMB6 zp
		c.rmb(c.modeZp(), 0x40)
	case 0x68: // PLA
		c.pla()
	case 0x69: // ADC #imm
		c.adc(c.modeImm())
	case 0x6A: // ROR A
		c.rorA()
	case 0x6C: // JMP (abs)
		c.jmp(c.modeAbsInd())
	case 0x6D: // ADC abs
		c.adc(c.modeAbs())
	case 0x6E: // ROR abs
		c.rorMem(c.modeAbs())
	case 0x6F: // BBR6
		c.bbr(0x40)

	case 0x70: // BVS
		c.branch(c.reg.P&FlagV != 0)
	case 0x71: // ADC (zp),Y
		c.adc(c.modeIndY())
	case 0x72: // ADC (zp)
		c.adc(c.modeZpInd())
	case 0x74: // STZ zp,X
		c.stz(c.modeZpX())
	case 0x75: // ADC zp,X
		c.adc(c.modeZpX())
	case 0x76: // ROR zp,X
		c.rorMem(c.modeZpX())
	case 0x77: // RMB7 zp
		c.rmb(c.modeZp(), 0x80)
	case 0x78: // SEI
		c.reg.P |= FlagI
	case 0x79: // ADC abs,Y
		c.adc(c.modeAbsY())
	case 0x7A: // PLY
		c.ply()
	case 0x7C: // JMP (abs,X)
		c.jmp(c.modeAbsIndX())
	case 0x7D: // ADC abs,X
		c.adc(c.modeAbsX())
	case 0x7E: // ROR abs,X
		c.rorMem(c.modeAbsX())
	case 0x7F: // BBR7
		c.bbr(0x80)

	case 0x80: // BRA
		c.branch(true)
	case 0x81: // STA (zp,X)
		c.sta(c.modeIndX())
	case 0x84: // STY zp
		c.sty(c.modeZp())
	case 0x85: // STA zp
		c.sta(c.modeZp())
	case 0x86: // STX zp
		c.stx(c.modeZp())
	case 0x87: // SMB0 zp
		c.smb(c.modeZp(), 0x01)
	case 0x88: // DEY
		c.dey()
	case 0x89: // BIT #imm
		c.bitImm(c.modeImm())
	case 0x8A: // TXA
		c.txa()
	case 0x8C: // STY abs
		c.sty(c.modeAbs())
	case 0x8D: // STA abs
		c.sta(c.modeAbs())
	case 0x8E: // STX abs
		c.stx(c.modeAbs())
	case 0x8F: // BBS0
		c.bbs(0x01)

	case 0x90: // BCC
		c.branch(c.reg.P&FlagC == 0)
	case 0x91: // STA (zp),Y
		c.sta(c.modeIndY())
	case 0x92: // STA (zp)
		c.sta(c.modeZpInd())
	case 0x94: // STY zp,X
		c.sty(c.modeZpX())
	case 0x95: // STA zp,X
		c.sta(c.modeZpX())
	case 0x96: // STX zp,Y
		c.stx(c.modeZpY())
	case 0x97: // SMB1 zp
		c.smb(c.modeZp(), 0x02)
	case 0x98: // TYA
		c.tya()
	case 0x99: // STA abs,Y
		c.sta(c.modeAbsY())
	case 0x9A: // TXS
		c.txs()
	case 0x9C: // STZ abs
		c.stz(c.modeAbs())
	case 0x9D: // STA abs,X
		c.sta(c.modeAbsX())
	case 0x9E: // STZ abs,X
		c.stz(c.modeAbsX())
	case 0x9F: // BBS1
		c.bbs(0x02)

	case 0xA0: // LDY #imm
		c.ldy(c.modeImm())
	case 0xA1: // LDA (zp,X)
		c.lda(c.modeIndX())
	case 0xA2: // LDX #imm
		c.ldx(c.modeImm())
	case 0xA4: // LDY zp
		c.ldy(c.modeZp())
	case 0xA5: // LDA zp
		c.lda(c.modeZp())
	case 0xA6: // LDX zp
		c.ldx(c.modeZp())
	case 0xA7: // SMB2 zp
		c.smb(c.modeZp(), 0x04)
	case 0xA8: // TAY
		c.tay()
	case 0xA9: // LDA #imm
		c.lda(c.modeImm())
	case 0xAA: // TAX
		c.tax()
	case 0xAC: // LDY abs
		c.ldy(c.modeAbs())
	case 0xAD: // LDA abs
		c.lda(c.modeAbs())
	case 0xAE: // LDX abs
		c.ldx(c.modeAbs())
	case 0xAF: // BBS2
		c.bbs(0x04)

	case 0xB0: // BCS
		c.branch(c.reg.P&FlagC != 0)
	case 0xB1: // LDA (zp),Y
		c.lda(c.modeIndY())
	case 0xB2: // LDA (zp)
		c.lda(c.modeZpInd())
	case 0xB4: // LDY zp,X
		c.ldy(c.modeZpX())
	case 0xB5: // LDA zp,X
		c.lda(c.modeZpX())
	case 0xB6: // LDX zp,Y
		c.ldx(c.modeZpY())
	case 0xB7: // SMB3 zp
		c.smb(c.modeZp(), 0x08)
	case 0xB8: // CLV
		c.reg.P &^= FlagV
	case 0xB9: // LDA abs,Y
		c.lda(c.modeAbsY())
	case 0xBA: // TSX
		c.tsx()
	case 0xBC: // LDY abs,X
		c.ldy(c.modeAbsX())
	case 0xBD: // LDA abs,X
		c.lda(c.modeAbsX())
	case 0xBE: // LDX abs,Y
		c.ldx(c.modeAbsY())
	case 0xBF: // BBS3
		c.bbs(0x08)

	case 0xC0: // CPY #imm
		c.cpy(c.modeImm())
	case 0xC1: // CMP (zp,X)
		c.cmp(c.modeIndX())
	case 0xC4: // CPY zp
		c.cpy(c.modeZp())
	case 0xC5: // CMP zp
		c.cmp(c.modeZp())
	case 0xC6: // DEC zp
		c.decMem(c.modeZp())
	case 0xC7: // SMB4 zp
		c.smb(c.modeZp(), 0x10)
	case 0xC8: // INY
		c.iny()
	case 0xC9: // CMP #imm
		c.cmp(c.modeImm())
	case 0xCA: // DEX
		c.dex()
	case 0xCB: // WAI
		c.state = AwaitingInterrupt
	case 0xCC: // CPY abs
		c.cpy(c.modeAbs())
	case 0xCD: // CMP abs
		c.cmp(c.modeAbs())
	case 0xCE: // DEC abs
		c.decMem(c.modeAbs())
	case 0xCF: // BBS4
		c.bbs(0x10)

	case 0xD0: // BNE
		c.branch(c.reg.P&FlagZ == 0)
	case 0xD1: // CMP (zp),Y
		c.cmp(c.modeIndY())
	case 0xD2: // CMP (zp)
		c.cmp(c.modeZpInd())
	case 0xD5: // CMP zp,X
		c.cmp(c.modeZpX())
	case 0xD6: // DEC zp,X
		c.decMem(c.modeZpX())
	case 0xD7: // SMB5 zp
		c.smb(c.modeZp(), 0x20)
	case 0xD8: // CLD
		c.reg.P &^= FlagD
	case 0xD9: // CMP abs,Y
		c.cmp(c.modeAbsY())
	case 0xDA: // PHX
		c.phx()
	case 0xDB: // STP
		c.state = Stopped
	case 0xDD: // CMP abs,X
		c.cmp(c.modeAbsX())
	case 0xDE: // DEC abs,X
		c.decMem(c.modeAbsX())
	case 0xDF: // BBS5
		c.bbs(0x20)

	case 0xE0: // CPX #imm
		c.cpx(c.modeImm())
	case 0xE1: // SBC (zp,X)
		c.sbc(c.modeIndX())
	case 0xE4: // CPX zp
		c.cpx(c.modeZp())
	case 0xE5: // SBC zp
		c.sbc(c.modeZp())
	case 0xE6: // INC zp
		c.incMem(c.modeZp())
	case 0xE7: // SMB6 zp
		c.smb(c.modeZp(), 0x40)
	case 0xE8: // INX
		c.inx()
	case 0xE9: // SBC #imm
		c.sbc(c.modeImm())
	case 0xEA: // NOP
		c.nopImplied()
	case 0xEC: // CPX abs
		c.cpx(c.modeAbs())
	case 0xED: // SBC abs
		c.sbc(c.modeAbs())
	case 0xEE: // INC abs
		c.incMem(c.modeAbs())
	case 0xEF: // BBS6
		c.bbs(0x40)

	case 0xF0: // BEQ
		c.branch(c.reg.P&FlagZ != 0)
	case 0xF1: // SBC (zp),Y
		c.sbc(c.modeIndY())
	case 0xF2: // SBC (zp)
		c.sbc(c.modeZpInd())
	case 0xF5: // SBC zp,X
		c.sbc(c.modeZpX())
	case 0xF6: // INC zp,X
		c.incMem(c.modeZpX())
	case 0xF7: // SMB7 zp
		c.smb(c.modeZp(), 0x80)
	case 0xF8: // SED
		c.reg.P |= FlagD
	case 0xF9: // SBC abs,Y
		c.sbc(c.modeAbsY())
	case 0xFA: // PLX
		c.plx()
	case 0xFD: // SBC abs,X
		c.sbc(c.modeAbsX())
	case 0xFE: // INC abs,X
		c.incMem(c.modeAbsX())
	case 0xFF: // BBS7
		c.bbs(0x80)

	default:
		c.nopReserved(op)
	}
}

// nopReserved handles the opcodes WDC left undefined. All execute as
// NOPs; their length follows the column of the opcode matrix they sit
// in, so the right number of operand bytes is skipped.
func (c *CPU) nopReserved(op uint8) {
	switch op & 0x0F {
	case 0x02:
		c.nopImm()
	case 0x04:
		c.nopZp()
	case 0x0C:
		c.nopAbs()
	default:
		c.nopImplied()
	}
}
