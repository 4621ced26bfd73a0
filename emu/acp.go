package emu

import "github.com/user-none/egt/w65c02s"

// Compile-time interface check.
var _ w65c02s.Bus = (*AcpBus)(nil)

// aramSize is the 4KB audio RAM shared between the CPU and the audio
// coprocessor.
const aramSize = 0x1000

// AcpBus implements w65c02s.Bus for the audio coprocessor address
// space.
//
// ACP memory map (16-bit):
//
//	0x0000-0x0FFF  Audio RAM (4KB, shared with the CPU at $3000)
//	0x1000-0xFFFF  Audio RAM mirrors (only 12 address lines are wired)
//	0x8000-0xFFFF  Writes also load the DAC sample latch
//
// The coprocessor fetches code, vectors and data all from the same 4KB,
// so the main CPU stages programs through its $3000-$3FFF window.
type AcpBus struct {
	bus    *CpuBus
	sample byte // last byte latched into the DAC
}

// NewAcpBus creates an AcpBus connected to the given CpuBus.
func NewAcpBus(bus *CpuBus) *AcpBus {
	return &AcpBus{bus: bus}
}

// Read reads a byte from the ACP address space.
func (b *AcpBus) Read(addr uint16) uint8 {
	return b.bus.aram[addr&(aramSize-1)]
}

// Write writes a byte to the ACP address space. A write with A15 high
// lands in the mirrored audio RAM and loads the DAC latch.
func (b *AcpBus) Write(addr uint16, val uint8) {
	b.bus.aram[addr&(aramSize-1)] = val
	if addr >= 0x8000 {
		b.sample = val
	}
}
