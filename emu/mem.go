package emu

import (
	"log"

	"github.com/user-none/egt/w65c02s"
)

// Compile-time interface check.
var _ w65c02s.Bus = (*CpuBus)(nil)

const (
	ramBankSize = 0x2000 // 8KB per system RAM bank
	ramBanks    = 4
)

// MemRegion classifies an address for side-effect-free inspection.
type MemRegion int

const (
	MemZeroPage MemRegion = iota
	MemStack
	MemRAM
	MemRegister
	MemAudioRAM
	MemBlitter
	MemFramebuffer
	MemVRAM
	MemCartridge
	MemUnmapped
)

var memRegionNames = [...]string{
	"zero page", "stack", "ram", "register", "audio ram",
	"blitter", "framebuffer", "vram", "cartridge", "unmapped",
}

func (r MemRegion) String() string {
	if int(r) < len(memRegionNames) {
		return memRegionNames[r]
	}
	return "unknown"
}

// CpuBus implements w65c02s.Bus with the full GameTank memory map.
//
// Address map (CPU view):
//
//	0x0000-0x1FFF  system RAM, one of four 8KB banks
//	0x2000-0x2009  system control registers
//	0x2800-0x280F  65C22 VIA register file
//	0x3000-0x3FFF  audio RAM (4KB, shared with the coprocessor)
//	0x4000-0x7FFF  graphics window: blitter registers, framebuffer or
//	               VRAM quadrant, resolved per access from the DMA and
//	               banking flags
//	0x8000-0xFFFF  cartridge
type CpuBus struct {
	sysctl  *SysControl
	blitter BlitterRegs
	via     VIA
	cart    Cartridge

	ram          [ramBanks][ramBankSize]byte
	aram         [aramSize]byte
	framebuffers [2][fbSize]byte
	vram         [vramPages][vramPageSize]byte
}

// NewCpuBus creates the bus in its power-on state with the given
// cartridge.
func NewCpuBus(cart Cartridge) *CpuBus {
	bus := &CpuBus{
		sysctl: NewSysControl(),
		cart:   cart,
	}

	// The blit registers power up with full-screen geometry and the
	// offwhite color.
	bus.blitter.width = 127
	bus.blitter.height = 127
	bus.blitter.color = 0b101_00_000

	// Framebuffer 1 powers up lit, framebuffer 0 dark.
	for i := range bus.framebuffers[1] {
		bus.framebuffers[1][i] = 0xFF
	}
	return bus
}

// Read implements w65c02s.Bus.
func (b *CpuBus) Read(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.ram[b.sysctl.ramBank()][addr]
	case addr <= 0x2009:
		return b.sysctl.ReadRegister(addr)
	case addr >= 0x2800 && addr <= 0x280F:
		return b.via.ReadRegister(addr)
	case addr >= 0x3000 && addr <= 0x3FFF:
		return b.aram[addr-0x3000]
	case addr >= 0x4000 && addr <= 0x7FFF:
		return b.readGraphics(addr)
	case addr >= 0x8000:
		return b.cart.ReadByte(addr - 0x8000)
	default:
		return 0
	}
}

// Write implements w65c02s.Bus. Every VIA write replays a before/after
// register snapshot into the cartridge: the flash cartridge's bank
// shifter hangs off VIA port A.
func (b *CpuBus) Write(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		b.ram[b.sysctl.ramBank()][addr] = val
	case addr <= 0x2009:
		b.sysctl.WriteRegister(addr, val)
	case addr >= 0x2800 && addr <= 0x280F:
		before, after := b.via.WriteRegister(addr, val)
		b.cart.UpdateVIA(before, after)
	case addr >= 0x3000 && addr <= 0x3FFF:
		b.aram[addr-0x3000] = val
	case addr >= 0x4000 && addr <= 0x7FFF:
		b.writeGraphics(addr, val)
	case addr >= 0x8000:
		b.cart.WriteByte(addr-0x8000, val)
	default:
		log.Printf("[bus] write to unmapped address $%04X = $%02X", addr, val)
	}
}

// readGraphics resolves a $4000-$7FFF read. The window is recomputed on
// every access: flipping the DMA or banking flags between instructions
// retargets it immediately.
func (b *CpuBus) readGraphics(addr uint16) uint8 {
	switch b.sysctl.graphicsMap() {
	case graphicsBlitter:
		return b.blitter.ReadRegister(addr)
	case graphicsFramebuffer:
		return b.framebuffers[b.sysctl.framebufferIn()][addr-0x4000]
	default:
		return b.vram[b.sysctl.vramPage()][b.vramOffset(addr)]
	}
}

// writeGraphics resolves a $4000-$7FFF write.
func (b *CpuBus) writeGraphics(addr uint16, val uint8) {
	switch b.sysctl.graphicsMap() {
	case graphicsBlitter:
		b.blitter.WriteRegister(addr, val)
	case graphicsFramebuffer:
		b.framebuffers[b.sysctl.framebufferIn()][addr-0x4000] = val
	default:
		b.vram[b.sysctl.vramPage()][b.vramOffset(addr)] = val
	}
}

// vramOffset maps a window address into the VRAM page. The window spans
// one 128x128 quadrant, selected by the high bits of the blit source
// registers.
func (b *CpuBus) vramOffset(addr uint16) int {
	return int(addr-0x4000) + b.blitter.vramQuadrant()*fbSize
}

// Peek reads a byte with no side effects and classifies the address.
// Gamepad select lines do not advance and the blit IRQ is not
// acknowledged, so inspectors can walk the whole map freely.
func (b *CpuBus) Peek(addr uint16) (byte, MemRegion) {
	switch {
	case addr < 0x0100:
		return b.ram[b.sysctl.ramBank()][addr], MemZeroPage
	case addr < 0x0200:
		return b.ram[b.sysctl.ramBank()][addr], MemStack
	case addr < 0x2000:
		return b.ram[b.sysctl.ramBank()][addr], MemRAM
	case addr <= 0x2009:
		return b.sysctl.PeekRegister(addr), MemRegister
	case addr >= 0x2800 && addr <= 0x280F:
		return b.via.ReadRegister(addr), MemRegister
	case addr >= 0x3000 && addr <= 0x3FFF:
		return b.aram[addr-0x3000], MemAudioRAM
	case addr >= 0x4000 && addr <= 0x7FFF:
		switch b.sysctl.graphicsMap() {
		case graphicsBlitter:
			return 0, MemBlitter
		case graphicsFramebuffer:
			return b.framebuffers[b.sysctl.framebufferIn()][addr-0x4000], MemFramebuffer
		default:
			return b.vram[b.sysctl.vramPage()][b.vramOffset(addr)], MemVRAM
		}
	case addr >= 0x8000:
		return b.cart.ReadByte(addr - 0x8000), MemCartridge
	default:
		return 0, MemUnmapped
	}
}
