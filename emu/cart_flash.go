package emu

// Flash geometry: 128 16KB banks of SST39SF040-style flash, erased in
// 35 non-uniform blocks.
const (
	flashBankSize  = 0x4000
	flashBankCount = 128
	flashTotalSize = flashBankSize * flashBankCount
)

// VIA port A bits driving the bank-select shift register.
const (
	flashCLK   byte = 0x01 // PA0: shift clock
	flashDATA  byte = 0x02 // PA1: serial data
	flashLATCH byte = 0x04 // PA2: commit latch
)

var (
	blockLengths = buildBlockLengths()
	blockStarts  = buildBlockStarts()
	bankBlocks   = buildBankBlocks()
)

// buildBlockLengths lists the erase block sizes: thirty-one 64KB
// blocks, then one 32KB, two 8KB and one 16KB block at the top.
func buildBlockLengths() [35]int {
	var lengths [35]int
	for i := 0; i < 31; i++ {
		lengths[i] = 0x10000
	}
	lengths[31] = 0x8000
	lengths[32] = 0x2000
	lengths[33] = 0x2000
	lengths[34] = 0x4000
	return lengths
}

// buildBlockStarts is the byte offset of each erase block.
func buildBlockStarts() [35]int {
	var starts [35]int
	offset := 0
	for i, length := range blockLengths {
		starts[i] = offset
		offset += length
	}
	return starts
}

// buildBankBlocks maps each 16KB bank to the erase block owning it.
// Blocks shorter than a bank advance the block cursor one block per
// bank, so the two 8KB blocks land on consecutive banks.
func buildBankBlocks() [flashBankCount]int {
	var banks [flashBankCount]int
	block, offset := 0, 0
	for bank := 0; bank < flashBankCount && block < len(blockLengths); bank++ {
		banks[bank] = block
		offset += flashBankSize
		if offset >= blockLengths[block] {
			block++
			offset = 0
		}
	}
	return banks
}

// flashWrite is one cartridge-space write observed by the command
// machine.
type flashWrite struct {
	addr uint16
	data byte
}

// flashCommand identifies a matched SST39SF040 command sequence.
type flashCommand int

const (
	flashProgram flashCommand = iota
	flashChipErase
	flashBlockErase
	flashBypassEnter
	flashBypassProgram
	flashBypassReset
)

// flashOp is a matched command plus its operands.
type flashOp struct {
	cmd  flashCommand
	addr uint16
	data byte
}

// flashState tracks the command machine's long-lived mode. Command
// execution itself is synchronous with the triggering write.
type flashState int

const (
	flashIdle flashState = iota
	flashBypass
)

// flashMachine matches the most recent cartridge writes against the
// flash command sequences. It keeps a six-entry history; a matched
// command consumes the whole history.
type flashMachine struct {
	state   flashState
	history []flashWrite
}

// addInput records a write and reports a matched command, if any.
func (m *flashMachine) addInput(addr uint16, data byte) (flashOp, bool) {
	m.history = append(m.history, flashWrite{addr, data})
	if len(m.history) > 6 {
		m.history = m.history[len(m.history)-6:]
	}

	switch m.state {
	case flashIdle:
		return m.detect()
	case flashBypass:
		// in bypass mode only the two-write program and reset
		// sequences are recognized
		if len(m.history) >= 2 {
			last := m.history[len(m.history)-2:]
			if last[0].data == 0xA0 {
				return flashOp{cmd: flashBypassProgram, addr: last[1].addr, data: last[1].data}, true
			}
			if last[0].data == 0x90 && last[1].data == 0x00 {
				return flashOp{cmd: flashBypassReset}, true
			}
		}
	}
	return flashOp{}, false
}

// detect scans suffix windows of the history, longest first, so a full
// erase sequence is not misread as the shorter program command buried
// in its tail.
func (m *flashMachine) detect() (flashOp, bool) {
	n := len(m.history)
	if n > 6 {
		n = 6
	}
	for size := n; size >= 2; size-- {
		if op, ok := matchFlashCommand(m.history[len(m.history)-size:]); ok {
			return op, true
		}
	}
	return flashOp{}, false
}

// matchFlashCommand matches a command sequence at the start of seq.
func matchFlashCommand(seq []flashWrite) (flashOp, bool) {
	is := func(w flashWrite, addr uint16, data byte) bool {
		return w.addr == addr && w.data == data
	}
	unlock := len(seq) >= 2 && is(seq[0], 0xAAA, 0xAA) && is(seq[1], 0x555, 0x55)
	erasePrefix := len(seq) >= 5 && unlock && is(seq[2], 0xAAA, 0x80) &&
		is(seq[3], 0xAAA, 0xAA) && is(seq[4], 0x555, 0x55)

	switch {
	// block erase: AAA:AA, 555:55, AAA:80, AAA:AA, 555:55, block:30
	case len(seq) >= 6 && erasePrefix && seq[5].data == 0x30:
		return flashOp{cmd: flashBlockErase, addr: seq[5].addr}, true

	// byte program: AAA:AA, 555:55, AAA:A0, addr:data
	case len(seq) >= 4 && unlock && is(seq[2], 0xAAA, 0xA0):
		return flashOp{cmd: flashProgram, addr: seq[3].addr, data: seq[3].data}, true

	// unlock bypass entry: AAA:AA, 555:55, AAA:20
	case len(seq) >= 3 && unlock && is(seq[2], 0xAAA, 0x20):
		return flashOp{cmd: flashBypassEnter}, true

	// chip erase: AAA:AA, 555:55, AAA:80, AAA:AA, 555:55, AAA:10
	case len(seq) >= 6 && erasePrefix && is(seq[5], 0xAAA, 0x10):
		return flashOp{cmd: flashChipErase}, true

	// bypass program outside bypass mode: addr:A0, addr:data with a
	// non-magic first address
	case len(seq) >= 2 && seq[0].data == 0xA0 && seq[0].addr != 0xAAA && seq[0].addr != 0x555:
		return flashOp{cmd: flashBypassProgram, addr: seq[1].addr, data: seq[1].data}, true

	// bypass reset: addr:90, addr:00 with a non-magic first address
	case len(seq) >= 2 && seq[0].data == 0x90 && seq[1].data == 0x00 &&
		seq[0].addr != 0xAAA && seq[0].addr != 0x555:
		return flashOp{cmd: flashBypassReset}, true
	}
	return flashOp{}, false
}

// CartFlash2M is the 2MB flash cartridge: 128 16KB banks behind a
// bank-select shift register driven from the VIA. CPU address
// $C000-$FFFF (cartridge-relative $4000-$7FFF) always reads the last
// bank; the lower half reads the bank picked by the mask register.
type CartFlash2M struct {
	data        []byte
	bankShifter byte
	bankMask    byte
	machine     flashMachine
}

// NewCartFlash2M creates a flash cartridge from an image. Images
// shorter than 2MB are zero padded.
func NewCartFlash2M(rom []byte) *CartFlash2M {
	data := make([]byte, flashTotalSize)
	copy(data, rom)
	return &CartFlash2M{
		data:     data,
		bankMask: 0x7E,
	}
}

// BankMask returns the active bank-select mask.
func (c *CartFlash2M) BankMask() byte {
	return c.bankMask
}

// ReadByte reads a cartridge byte through the bank decode.
func (c *CartFlash2M) ReadByte(addr uint16) byte {
	if addr >= 0x4000 {
		return c.data[(flashBankCount-1)*flashBankSize+int(addr&0x3FFF)]
	}
	bank := int(c.bankMask & 0x7F)
	return c.data[bank*flashBankSize+int(addr&0x3FFF)]
}

// WriteByte feeds the flash command machine. Writes never change the
// array directly; only matched commands do.
func (c *CartFlash2M) WriteByte(addr uint16, data byte) {
	if op, ok := c.machine.addInput(addr, data); ok {
		c.execute(op)
		c.machine.history = c.machine.history[:0]
	}
}

// execute applies a matched command to the backing array.
func (c *CartFlash2M) execute(op flashOp) {
	switch op.cmd {
	case flashProgram, flashBypassProgram:
		// programming can only clear bits until the block is erased
		bank := int(c.bankMask & 0x7F)
		offset := int(op.addr & 0x3FFF)
		c.data[bank*flashBankSize+offset] &= op.data

	case flashChipErase:
		for i := range c.data {
			c.data[i] = 0xFF
		}

	case flashBlockErase:
		// the bank-select mask names the target block; the address
		// operand carries no block information through the bank decode
		block := bankBlocks[int(c.bankMask&0x7F)]
		start := blockStarts[block]
		end := start + blockLengths[block]
		for i := start; i < end; i++ {
			c.data[i] = 0xFF
		}

	case flashBypassEnter:
		c.machine.state = flashBypass

	case flashBypassReset:
		c.machine.state = flashIdle
	}
}

// UpdateVIA feeds port A edges into the bank shifter. A clock rising
// edge shifts in the data bit; a latch rising edge commits the shifter
// to the bank mask. Clock wins when both rise in one write.
func (c *CartFlash2M) UpdateVIA(before, after [16]byte) {
	if after[viaDDRA] == 1 {
		return
	}

	prev, cur := before[viaIORA], after[viaIORA]
	changed := prev ^ cur

	switch {
	case cur&flashCLK != 0 && changed&flashCLK != 0:
		c.bankShifter = c.bankShifter<<1 | (cur&flashDATA)>>1
	case cur&flashLATCH != 0 && changed&flashLATCH != 0:
		c.bankMask = c.bankShifter
	}
}
