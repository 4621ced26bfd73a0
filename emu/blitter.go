package emu

// blitStart tracks CPU accesses to the blit start register. A write of
// an odd value arms the next blit, and any access at all acknowledges a
// pending blit interrupt. The engine consumes both signals on its next
// cycle.
type blitStart struct {
	write     byte
	addressed bool
}

// readOnce returns the armed bit and whether the register was touched
// since the last engine cycle, clearing both.
func (bs *blitStart) readOnce() (armed, addressed bool) {
	armed, addressed = bs.write&1 == 1, bs.addressed
	bs.write = 0
	bs.addressed = false
	return armed, addressed
}

// BlitterRegs is the register window mapped at $4000-$4007 while DMA is
// enabled.
//
//	$4000  VX      destination X
//	$4001  VY      destination Y
//	$4002  GX      source X; high bit also selects the CPU VRAM quadrant
//	$4003  GY      source Y; high bit also selects the CPU VRAM quadrant
//	$4004  WIDTH   run width; bit 7 mirrors the source horizontally
//	$4005  HEIGHT  run height; bit 7 mirrors the source vertically
//	$4006  START   bit 0 arms the blit; any access acks the blit IRQ
//	$4007  COLOR   fill color, written inverted
type BlitterRegs struct {
	vx, vy byte
	gx, gy byte
	width  byte
	height byte
	start  blitStart
	color  byte
}

// ReadRegister reads a blitter register. The window is write-only; a
// read of the start register still acknowledges the blit IRQ.
func (br *BlitterRegs) ReadRegister(addr uint16) byte {
	if addr == 0x4006 {
		br.start.addressed = true
	}
	return 0
}

// WriteRegister writes a blitter register by address.
func (br *BlitterRegs) WriteRegister(addr uint16, val byte) {
	switch addr {
	case 0x4000:
		br.vx = val
	case 0x4001:
		br.vy = val
	case 0x4002:
		br.gx = val
	case 0x4003:
		br.gy = val
	case 0x4004:
		br.width = val
	case 0x4005:
		br.height = val
	case 0x4006:
		br.start.write = val
		br.start.addressed = true
	case 0x4007:
		br.color = val
	}
}

// vramQuadrant selects the quadrant of the current VRAM page the CPU
// window addresses, taken from the high bits of the blit source
// registers.
func (br *BlitterRegs) vramQuadrant() int {
	quadrant := 0
	if br.gx >= 128 {
		quadrant++
	}
	if br.gy >= 128 {
		quadrant += 2
	}
	return quadrant
}

// Blitter is the pixel DMA engine. It runs once per CPU cycle and moves
// at most one pixel per cycle from VRAM, or from the color register,
// into the framebuffer not being displayed. The counters keep running
// while DMA access is switched off, so a blit still finishes on
// schedule even when the CPU has taken the window back.
type Blitter struct {
	srcY   byte
	dstY   byte
	height byte
	flipY  bool

	srcX  byte
	dstX  byte
	width byte
	flipX bool

	offsetX byte
	offsetY byte

	colorFill bool
	color     byte

	blitting   bool
	irqTrigger bool
}

// NewBlitter creates an idle blitter.
func NewBlitter() *Blitter {
	return &Blitter{}
}

// IRQAsserted reports whether a completed blit is holding the IRQ line.
// The line stays asserted until the CPU touches the start register.
func (bl *Blitter) IRQAsserted() bool {
	return bl.irqTrigger
}

// Blitting reports whether a blit is in flight.
func (bl *Blitter) Blitting() bool {
	return bl.blitting
}

// Cycle advances the engine by one CPU cycle against the given bus.
func (bl *Blitter) Cycle(bus *CpuBus) {
	armed, addressed := bus.blitter.start.readOnce()
	if addressed {
		bl.irqTrigger = false
	}

	// latch parameters when a blit starts
	if !bl.blitting && armed {
		bl.srcY = bus.blitter.gy
		bl.dstY = bus.blitter.vy
		bl.height = bus.blitter.height & 0x7F
		bl.flipY = bus.blitter.height&0x80 != 0
		bl.color = ^bus.blitter.color
		bl.colorFill = bus.sysctl.colorFillEnabled()
		bl.blitting = true

		// first line
		bl.srcX = bus.blitter.gx
		bl.dstX = bus.blitter.vx
		bl.width = bus.blitter.width & 0x7F
		bl.flipX = bus.blitter.width&0x80 != 0
	}

	if !bl.blitting {
		return
	}

	// row parameters hold steady mid-line
	if bl.offsetX == 0 {
		bl.srcY = bus.blitter.gy
		bl.dstY = bus.blitter.vy
		bl.height = bus.blitter.height & 0x7F
		bl.flipY = bus.blitter.height&0x80 != 0
	}

	if bl.offsetX >= bl.width {
		bl.offsetX = 0
		bl.offsetY++
	}

	if bl.offsetY >= bl.height {
		bl.offsetY = 0
		bl.blitting = false
		if bus.sysctl.blitIRQEnabled() {
			bl.irqTrigger = true
		}
		return
	}

	// with DMA access off the cursor advances but nothing is written
	if !bus.sysctl.dmaEnabled() {
		bl.offsetX++
		return
	}

	color := bl.color
	if !bl.colorFill {
		page := bus.sysctl.vramPage()

		srcX := bl.srcX
		srcY := bl.srcY
		var x, y byte
		if bl.flipX {
			srcX = ^srcX
			x = srcX - bl.offsetX
		} else {
			x = srcX + bl.offsetX
		}
		if bl.flipY {
			srcY = ^srcY
			y = srcY - bl.offsetY
		} else {
			y = srcY + bl.offsetY
		}

		// with gcarry off, blits tile the source 16x16
		if !bus.sysctl.gcarryEnabled() {
			x = srcX + bl.offsetX%16
			y = srcY + bl.offsetY%16
		}

		ix, iy := int(x), int(y)
		quad := 0
		if ix >= 128 {
			quad += 128*128 - 128
		}
		if iy >= 128 {
			quad += 128 * 128
		}
		color = bus.vram[page][ix+iy*128+quad]
	}

	outX := int(bl.dstX + bl.offsetX)
	outY := int(bl.dstY + bl.offsetY)
	outFB := bus.sysctl.framebufferOut() ^ 1

	// destinations past the screen edge are skipped, not wrapped
	if outX >= 128 || outY >= 128 {
		bl.offsetX++
		return
	}

	// color 0 is transparent unless the opaque flag is set
	if bus.sysctl.blitOpaque() || color != 0 {
		bus.framebuffers[outFB][outX+outY*128] = color
	}

	bl.offsetX++
}
