// Package w65c02s implements a WDC W65C02S CPU emulator.
//
// The W65C02S is an 8-bit CMOS microprocessor with:
//   - Three 8-bit registers (A, X, Y), an 8-bit stack pointer fixed to
//     page 1, and a 16-bit program counter
//   - An 8-bit status register with binary and decimal (BCD) arithmetic
//   - The full CMOS opcode set: the 65C02 additions (PHX/PLX, STZ,
//     TRB/TSB, BRA, (zp) addressing) plus the Rockwell/WDC bit
//     instructions (RMBn/SMBn/BBRn/BBSn) and the WAI/STP power states
//   - A level-sensitive IRQ input and an edge-sensitive NMI input
//
// Cycle counts reflect bus traffic only: every Read or Write on the Bus
// costs one cycle and the internal dead cycles of the physical part are
// not modeled, so Step reports the number of bus accesses it made.
package w65c02s

// Bus provides byte access to the 64KB address space. Every CPU memory
// access routes through it, including stack and vector reads.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, data uint8)
}

// Registers holds the programmer-visible state of the W65C02S.
type Registers struct {
	A  uint8  // accumulator
	X  uint8  // index X
	Y  uint8  // index Y
	S  uint8  // stack pointer, offset into page 1
	P  uint8  // status flags
	PC uint16 // program counter
}

// Status register flag bits.
const (
	FlagC uint8 = 1 << 0 // carry
	FlagZ uint8 = 1 << 1 // zero
	FlagI uint8 = 1 << 2 // IRQ disable
	FlagD uint8 = 1 << 3 // decimal mode
	FlagB uint8 = 1 << 4 // break mark, exists only on stacked copies
	FlagU uint8 = 1 << 5 // unused, reads as 1
	FlagV uint8 = 1 << 6 // overflow
	FlagN uint8 = 1 << 7 // negative
)

// State is the execution state of the CPU.
type State int

const (
	// Running executes one instruction per Step.
	Running State = iota
	// AwaitingInterrupt is entered by WAI and left when an interrupt
	// line is asserted.
	AwaitingInterrupt
	// Stopped is entered by STP and left only by Reset.
	Stopped
)

// Hardware vector addresses.
const (
	VectorNMI   uint16 = 0xFFFA
	VectorReset uint16 = 0xFFFC
	VectorIRQ   uint16 = 0xFFFE
)

// CPU is the W65C02S processor.
type CPU struct {
	reg Registers
	bus Bus

	state State

	irqLine    bool // level of the IRQB input
	nmiLine    bool // level of the NMIB input
	irqPending bool // IRQ recognized at the last edge check
	nmiPending bool // NMI edge latched, not yet serviced

	cycles  uint64
	stepCyc int // bus accesses made by the current Step
	deficit int
}

// New creates a CPU wired to the given bus and performs a hardware
// reset, leaving PC at the vector stored at 0xFFFC.
func New(bus Bus) *CPU {
	c := &CPU{bus: bus}
	c.Reset()
	return c
}

// Reset performs a hardware reset: the stack pointer drops by 3 without
// any writes, decimal mode clears, IRQs are masked, and execution
// resumes at the reset vector. A stopped or waiting CPU returns to
// Running.
func (c *CPU) Reset() {
	c.reg.S -= 3
	c.reg.P = (c.reg.P | FlagI | FlagU) &^ FlagD
	c.reg.PC = c.busRead16(VectorReset)
	c.state = Running
	c.irqPending = false
	c.nmiPending = false
}

// Step executes a single instruction and returns the number of bus
// cycles consumed. A latched interrupt is serviced instead of the next
// opcode fetch. A stopped or waiting CPU burns one idle cycle per Step
// so callers draining a cycle budget always make progress.
func (c *CPU) Step() int {
	c.stepCyc = 0

	switch c.state {
	case Stopped:
		c.cycles++
		return 1
	case AwaitingInterrupt:
		if !c.nmiPending && !c.irqLine {
			c.cycles++
			return 1
		}
		// WAI ends on any asserted line. Sampling here means an IRQ
		// arriving with the I flag set resumes execution without
		// vectoring, which is how WAI-with-SEI polling works.
		c.state = Running
		c.checkIRQEdge()
	}

	if c.nmiPending {
		// Treat NMI as a pulse: servicing releases the line so the
		// next assertion registers as a fresh edge.
		c.nmiPending = false
		c.nmiLine = false
		c.interrupt(VectorNMI)
		return c.stepCyc
	}
	if c.irqPending {
		c.irqPending = false
		c.interrupt(VectorIRQ)
		return c.stepCyc
	}

	c.execute(c.fetch())
	return c.stepCyc
}

// StepCycles executes a single instruction within the given cycle
// budget. If a previous instruction's cost exceeded its budget, the
// deficit is paid down first without executing a new instruction. When
// a new instruction executes and its cost exceeds the budget, the
// excess is stored as a deficit to be charged on subsequent calls.
// Returns the number of cycles consumed from this call's budget.
func (c *CPU) StepCycles(budget int) int {
	// Pay down deficit from a previous instruction that exceeded its
	// budget.
	if c.deficit > 0 {
		if budget >= c.deficit {
			n := c.deficit
			c.deficit = 0
			return n
		}
		c.deficit -= budget
		return budget
	}

	cost := c.Step()

	if cost <= budget {
		return cost
	}

	c.deficit = cost - budget
	return budget
}

// Deficit returns the remaining cycle deficit from a previous
// StepCycles call where the instruction cost exceeded the budget.
func (c *CPU) Deficit() int {
	return c.deficit
}

// Cycles returns the total cycle count since the CPU was created.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// AddCycles advances the cycle counter by n without executing any
// instruction. Used to account for external bus-hold periods.
func (c *CPU) AddCycles(n uint64) {
	c.cycles += n
}

// Registers returns a snapshot of the current register state.
func (c *CPU) Registers() Registers {
	return c.reg
}

// SetState sets all programmer-visible registers directly without
// performing a hardware reset. This is intended for testing, where
// exact CPU state must be established before executing an instruction.
func (c *CPU) SetState(regs Registers) {
	c.reg = regs
	c.reg.P = (c.reg.P | FlagU) &^ FlagB
	c.state = Running
	c.cycles = 0
	c.deficit = 0
}

// State reports the execution state: Running, AwaitingInterrupt after
// WAI, or Stopped after STP.
func (c *CPU) State() State {
	return c.state
}

// SetIRQ drives the level-sensitive IRQB input. The line must still be
// asserted at an instruction's recognition point for the interrupt to
// be taken.
func (c *CPU) SetIRQ(asserted bool) {
	c.irqLine = asserted
}

// SetNMI drives the edge-sensitive NMIB input. A rising edge latches a
// pending NMI that is serviced before the next instruction.
func (c *CPU) SetNMI(asserted bool) {
	if asserted && !c.nmiLine {
		c.nmiPending = true
	}
	c.nmiLine = asserted
}

// interrupt runs the IRQ/NMI service sequence: push PC and status with
// B clear, mask IRQs, clear decimal mode, and jump through the vector.
func (c *CPU) interrupt(vector uint16) {
	c.push(uint8(c.reg.PC >> 8))
	c.push(uint8(c.reg.PC))
	c.push(c.reg.P &^ FlagB)
	c.reg.P = (c.reg.P | FlagI) &^ FlagD
	c.reg.PC = c.busRead16(vector)
}

// checkIRQEdge samples the IRQ line at the single recognition point
// inside an instruction. The result decides whether Step services an
// IRQ before the next opcode fetch; instructions without a check (CLC
// through SEI, BRK, STP) leave the previous sample in place, which is
// why CLI and SEI take effect one instruction late.
func (c *CPU) checkIRQEdge() {
	c.irqPending = c.irqLine && c.reg.P&FlagI == 0
}

func (c *CPU) busRead(addr uint16) uint8 {
	c.cycles++
	c.stepCyc++
	return c.bus.Read(addr)
}

func (c *CPU) busWrite(addr uint16, data uint8) {
	c.cycles++
	c.stepCyc++
	c.bus.Write(addr, data)
}

// busRead16 reads a little-endian word; the high byte follows the low
// byte with a plain 16-bit increment.
func (c *CPU) busRead16(addr uint16) uint16 {
	lo := uint16(c.busRead(addr))
	hi := uint16(c.busRead(addr + 1))
	return hi<<8 | lo
}

// fetch reads the byte at PC and advances PC.
func (c *CPU) fetch() uint8 {
	v := c.busRead(c.reg.PC)
	c.reg.PC++
	return v
}

func (c *CPU) push(data uint8) {
	c.busWrite(0x0100|uint16(c.reg.S), data)
	c.reg.S--
}

func (c *CPU) pop() uint8 {
	c.reg.S++
	return c.busRead(0x0100 | uint16(c.reg.S))
}

// setP installs a status byte pulled from the stack. B exists only on
// stacked copies and the unused bit always reads as 1.
func (c *CPU) setP(p uint8) {
	c.reg.P = (p | FlagU) &^ FlagB
}

func (c *CPU) setNZ(v uint8) {
	c.reg.P = c.reg.P&^(FlagN|FlagZ) | v&FlagN
	if v == 0 {
		c.reg.P |= FlagZ
	}
}

func (c *CPU) setCNZ(carry bool, v uint8) {
	if carry {
		c.reg.P |= FlagC
	} else {
		c.reg.P &^= FlagC
	}
	c.setNZ(v)
}

func (c *CPU) setV(v bool) {
	if v {
		c.reg.P |= FlagV
	} else {
		c.reg.P &^= FlagV
	}
}
