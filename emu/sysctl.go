package emu

// Banking register bits ($2005).
const (
	bankVRAMPageMask byte = 0x07 // bits 0-2: VRAM page mapped at $4000
	bankFramebuffer  byte = 0x08 // bit 3: framebuffer visible to CPU writes
	bankClipX        byte = 0x10 // bit 4: blit X coordinates clip at 128
	bankClipY        byte = 0x20 // bit 5: blit Y coordinates clip at 128
	bankRAMShift          = 6    // bits 6-7: system RAM bank at $0000
)

// DMA control flags ($2007).
const (
	dmaEnable    byte = 0x01 // blitter owns the $4000 window and may write pixels
	dmaPageOut   byte = 0x02 // framebuffer sent to the video out
	dmaVBlankNMI byte = 0x04 // NMI the CPU at vertical blank
	dmaColorFill byte = 0x08 // blit a solid color instead of VRAM data
	dmaGCarry    byte = 0x10 // carry between source tiles; off tiles 16x16
	dmaCPUToVRAM byte = 0x20 // CPU writes at $4000 land in the framebuffer
	dmaIRQ       byte = 0x40 // IRQ the CPU when a blit completes
	dmaOpaque    byte = 0x80 // copy color 0 instead of treating it as transparent
)

// graphicsMap selects what the $4000-$7FFF window addresses.
type graphicsMap int

const (
	graphicsBlitter graphicsMap = iota
	graphicsFramebuffer
	graphicsVRAM
)

// SysControl models the system control registers at $2000-$2009.
//
//	$2000  write  audio coprocessor reset strobe (bit 0)
//	$2001  write  audio coprocessor NMI strobe (bit 0)
//	$2005  write  banking register
//	$2006  write  audio enable (bit 7) / sample rate divider
//	$2007  write  DMA control flags
//	$2008  read   gamepad 1 data
//	$2009  read   gamepad 2 data
//
// The ACP strobes latch until the scheduler drains them. Reading a
// gamepad register flips that pad's multiplexer select line and pulls
// the other pad's select low, so games interleave reads per port.
type SysControl struct {
	InputP1 Input
	InputP2 Input

	resetACP  byte
	nmiACP    byte
	banking   byte
	audioCtl  byte
	dmaFlags  byte
	padSelect [2]bool
}

// NewSysControl creates the register file in its power-on state.
// Every DMA flag except opaque starts set, matching the pull-ups on
// the real board.
func NewSysControl() *SysControl {
	return &SysControl{dmaFlags: 0x7F}
}

// WriteRegister writes a system control register by address.
func (sc *SysControl) WriteRegister(addr uint16, val byte) {
	switch addr {
	case 0x2000:
		sc.resetACP = val
	case 0x2001:
		sc.nmiACP = val
	case 0x2005:
		sc.banking = val
	case 0x2006:
		sc.audioCtl = val
	case 0x2007:
		sc.dmaFlags = val
	}
}

// ReadRegister reads a system control register by address. Gamepad
// reads advance the multiplexer select lines.
func (sc *SysControl) ReadRegister(addr uint16) byte {
	switch addr {
	case 0x2008:
		return sc.readPad(0)
	case 0x2009:
		return sc.readPad(1)
	default:
		return 0
	}
}

// PeekRegister reads a register without side effects.
func (sc *SysControl) PeekRegister(addr uint16) byte {
	switch addr {
	case 0x2008:
		return sc.padInput(0).dataByte(sc.padSelect[0])
	case 0x2009:
		return sc.padInput(1).dataByte(sc.padSelect[1])
	default:
		return 0
	}
}

// readPad returns the pad's data byte for the select level in effect
// before the read, then toggles that pad's select line and forces the
// other pad's select low.
func (sc *SysControl) readPad(pad int) byte {
	val := sc.padInput(pad).dataByte(sc.padSelect[pad])
	sc.padSelect[pad^1] = false
	sc.padSelect[pad] = !sc.padSelect[pad]
	return val
}

func (sc *SysControl) padInput(pad int) *Input {
	if pad == 0 {
		return &sc.InputP1
	}
	return &sc.InputP2
}

// ramBank returns the system RAM bank selected at $0000-$1FFF.
func (sc *SysControl) ramBank() int {
	return int(sc.banking >> bankRAMShift & 0x03)
}

// vramPage returns the VRAM page addressed through the $4000 window.
func (sc *SysControl) vramPage() int {
	return int(sc.banking & bankVRAMPageMask)
}

// framebufferIn returns the framebuffer CPU accesses map to.
func (sc *SysControl) framebufferIn() int {
	return int(sc.banking & bankFramebuffer >> 3)
}

// framebufferOut returns the framebuffer currently sent to video out.
func (sc *SysControl) framebufferOut() int {
	return int(sc.dmaFlags & dmaPageOut >> 1)
}

// graphicsMap resolves what the $4000-$7FFF window currently addresses.
// The blitter registers take priority when DMA is enabled, then direct
// framebuffer access, then VRAM.
func (sc *SysControl) graphicsMap() graphicsMap {
	if sc.dmaFlags&dmaEnable != 0 {
		return graphicsBlitter
	}
	if sc.dmaFlags&dmaCPUToVRAM != 0 {
		return graphicsFramebuffer
	}
	return graphicsVRAM
}

func (sc *SysControl) dmaEnabled() bool {
	return sc.dmaFlags&dmaEnable != 0
}

func (sc *SysControl) vblankNMIEnabled() bool {
	return sc.dmaFlags&dmaVBlankNMI != 0
}

func (sc *SysControl) colorFillEnabled() bool {
	return sc.dmaFlags&dmaColorFill != 0
}

func (sc *SysControl) gcarryEnabled() bool {
	return sc.dmaFlags&dmaGCarry != 0
}

func (sc *SysControl) blitIRQEnabled() bool {
	return sc.dmaFlags&dmaIRQ != 0
}

func (sc *SysControl) blitOpaque() bool {
	return sc.dmaFlags&dmaOpaque != 0
}

// acpEnabled reports whether the audio coprocessor is clocked.
func (sc *SysControl) acpEnabled() bool {
	return sc.audioCtl&0x80 != 0
}

// sampleRate returns the raw audio rate divider byte. The DAC interrupt
// period is this value times four ACP cycles.
func (sc *SysControl) sampleRate() byte {
	return sc.audioCtl
}

// consumeACPReset clears the ACP reset strobe and reports whether it
// was pending.
func (sc *SysControl) consumeACPReset() bool {
	reset := sc.resetACP & 0x01
	sc.resetACP = 0
	return reset == 1
}

// consumeACPNMI clears the ACP NMI strobe and reports whether it was
// pending.
func (sc *SysControl) consumeACPNMI() bool {
	nmi := sc.nmiACP & 0x01
	sc.nmiACP = 0
	return nmi == 1
}
