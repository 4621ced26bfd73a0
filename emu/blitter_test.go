package emu

import "testing"

// makeBlitTest builds a bus with the given DMA flags and an idle
// blitter. The flags must include the DMA enable bit for register
// writes through the graphics window to land.
func makeBlitTest(flags byte) (*CpuBus, *Blitter) {
	bus := makeTestBus()
	bus.Write(0x2007, flags)
	return bus, NewBlitter()
}

// startBlit programs the blit registers through the graphics window
// and arms the engine.
func startBlit(bus *CpuBus, vx, vy, gx, gy, width, height byte) {
	bus.Write(0x4000, vx)
	bus.Write(0x4001, vy)
	bus.Write(0x4002, gx)
	bus.Write(0x4003, gy)
	bus.Write(0x4004, width)
	bus.Write(0x4005, height)
	bus.Write(0x4006, 1)
}

func TestBlitter_ColorFillTiming(t *testing.T) {
	bus, bl := makeBlitTest(dmaEnable | dmaColorFill | dmaGCarry | dmaIRQ)
	bus.Write(0x4007, 0xAA) // color is written inverted; fills 0x55
	startBlit(bus, 5, 5, 0, 0, 10, 10)

	// One pixel lands per cycle
	for i := 0; i < 100; i++ {
		bl.Cycle(bus)
	}
	if !bl.Blitting() {
		t.Fatal("engine should still be busy after 100 cycles")
	}
	if bl.IRQAsserted() {
		t.Error("IRQ should not assert before completion")
	}

	count := 0
	for i, px := range bus.framebuffers[1] {
		if px == 0x55 {
			count++
			x, y := i%128, i/128
			if x < 5 || x > 14 || y < 5 || y > 14 {
				t.Fatalf("pixel outside the 10x10 rect at (%d,%d)", x, y)
			}
		}
	}
	if count != 100 {
		t.Errorf("expected 100 pixels filled, got %d", count)
	}

	// The cycle after the last pixel retires the blit and raises IRQ
	bl.Cycle(bus)
	if bl.Blitting() {
		t.Error("engine should be idle after 101 cycles")
	}
	if !bl.IRQAsserted() {
		t.Error("IRQ should assert on completion")
	}
}

func TestBlitter_StartAccessAcksIRQ(t *testing.T) {
	bus, bl := makeBlitTest(dmaEnable | dmaColorFill | dmaGCarry | dmaIRQ)
	startBlit(bus, 0, 0, 0, 0, 2, 2)
	for i := 0; i < 5; i++ {
		bl.Cycle(bus)
	}
	if !bl.IRQAsserted() {
		t.Fatal("IRQ should be asserted after the blit")
	}

	// Any access to the start register acknowledges, a read included
	bus.Read(0x4006)
	bl.Cycle(bus)
	if bl.IRQAsserted() {
		t.Error("IRQ should clear after the start register was read")
	}
}

func TestBlitter_IRQDisabled(t *testing.T) {
	bus, bl := makeBlitTest(dmaEnable | dmaColorFill | dmaGCarry)
	startBlit(bus, 0, 0, 0, 0, 2, 2)
	for i := 0; i < 5; i++ {
		bl.Cycle(bus)
	}
	if bl.Blitting() {
		t.Fatal("engine should be idle")
	}
	if bl.IRQAsserted() {
		t.Error("IRQ flag disabled: completion should not assert")
	}
}

func TestBlitter_VRAMCopy(t *testing.T) {
	bus, bl := makeBlitTest(dmaEnable | dmaGCarry | dmaIRQ)

	// Source pattern at (10,20) in VRAM page 0
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			bus.vram[0][(10+x)+(20+y)*128] = byte(0x30 + y*4 + x)
		}
	}
	startBlit(bus, 40, 60, 10, 20, 4, 2)
	for i := 0; i < 9; i++ {
		bl.Cycle(bus)
	}

	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			want := byte(0x30 + y*4 + x)
			got := bus.framebuffers[1][(40+x)+(60+y)*128]
			if got != want {
				t.Errorf("pixel (%d,%d): expected 0x%02X, got 0x%02X", x, y, want, got)
			}
		}
	}
}

func TestBlitter_TransparentZero(t *testing.T) {
	bus, bl := makeBlitTest(dmaEnable | dmaGCarry | dmaIRQ)

	bus.vram[0][0] = 0x00
	bus.vram[0][1] = 0x77
	bus.framebuffers[1][0] = 0x11
	bus.framebuffers[1][1] = 0x11

	startBlit(bus, 0, 0, 0, 0, 2, 1)
	for i := 0; i < 3; i++ {
		bl.Cycle(bus)
	}

	if got := bus.framebuffers[1][0]; got != 0x11 {
		t.Errorf("color 0 should be transparent: expected 0x11, got 0x%02X", got)
	}
	if got := bus.framebuffers[1][1]; got != 0x77 {
		t.Errorf("opaque pixel: expected 0x77, got 0x%02X", got)
	}
}

func TestBlitter_OpaqueZero(t *testing.T) {
	bus, bl := makeBlitTest(dmaEnable | dmaGCarry | dmaIRQ | dmaOpaque)

	bus.vram[0][0] = 0x00
	bus.framebuffers[1][0] = 0x11

	startBlit(bus, 0, 0, 0, 0, 1, 1)
	for i := 0; i < 2; i++ {
		bl.Cycle(bus)
	}

	if got := bus.framebuffers[1][0]; got != 0x00 {
		t.Errorf("opaque flag set: expected 0x00, got 0x%02X", got)
	}
}

func TestBlitter_FlipX(t *testing.T) {
	bus, bl := makeBlitTest(dmaEnable | dmaGCarry | dmaIRQ)

	// Mirrored reads walk down from the complement of the source X
	bus.vram[0][0] = 0x01
	bus.vram[0][1] = 0x02
	bus.vram[0][2] = 0x03
	bus.vram[0][3] = 0x04

	startBlit(bus, 0, 0, 252, 0, 4|0x80, 1)
	for i := 0; i < 5; i++ {
		bl.Cycle(bus)
	}

	want := []byte{0x04, 0x03, 0x02, 0x01}
	for i, w := range want {
		if got := bus.framebuffers[1][i]; got != w {
			t.Errorf("pixel %d: expected 0x%02X, got 0x%02X", i, w, got)
		}
	}
}

func TestBlitter_FlipY(t *testing.T) {
	bus, bl := makeBlitTest(dmaEnable | dmaGCarry | dmaIRQ)

	bus.vram[0][0*128] = 0x01
	bus.vram[0][1*128] = 0x02
	bus.vram[0][2*128] = 0x03

	startBlit(bus, 0, 0, 0, 253, 1, 3|0x80)
	for i := 0; i < 4; i++ {
		bl.Cycle(bus)
	}

	want := []byte{0x03, 0x02, 0x01}
	for i, w := range want {
		if got := bus.framebuffers[1][i*128]; got != w {
			t.Errorf("row %d: expected 0x%02X, got 0x%02X", i, w, got)
		}
	}
}

func TestBlitter_TileRepeatWithoutGCarry(t *testing.T) {
	bus, bl := makeBlitTest(dmaEnable | dmaIRQ)

	// Without the carry flag the source coordinates wrap every 16
	// pixels, tiling the blit
	for x := 0; x < 16; x++ {
		bus.vram[0][x] = byte(x + 1)
	}
	startBlit(bus, 0, 0, 0, 0, 32, 1)
	for i := 0; i < 33; i++ {
		bl.Cycle(bus)
	}

	for x := 0; x < 32; x++ {
		want := byte(x%16 + 1)
		if got := bus.framebuffers[1][x]; got != want {
			t.Errorf("pixel %d: expected 0x%02X, got 0x%02X", x, want, got)
		}
	}
}

func TestBlitter_OffscreenPixelsSkipped(t *testing.T) {
	bus, bl := makeBlitTest(dmaEnable | dmaColorFill | dmaGCarry | dmaIRQ)
	bus.Write(0x4007, ^byte(0x22))

	startBlit(bus, 126, 0, 0, 0, 4, 1)
	for i := 0; i < 5; i++ {
		bl.Cycle(bus)
	}

	if bus.framebuffers[1][126] != 0x22 || bus.framebuffers[1][127] != 0x22 {
		t.Error("on-screen pixels should be written")
	}
	// The overflow does not wrap to the next row
	if bus.framebuffers[1][128] == 0x22 || bus.framebuffers[1][129] == 0x22 {
		t.Error("off-screen pixels should be skipped, not wrapped")
	}
}

func TestBlitter_CursorRunsWithDMAOff(t *testing.T) {
	bus, bl := makeBlitTest(dmaEnable | dmaColorFill | dmaGCarry | dmaIRQ)
	bus.Write(0x4007, ^byte(0x33))
	startBlit(bus, 0, 0, 0, 0, 4, 4)

	// Taking the window back mid-blit stops pixel writes but the
	// counters keep running, so the blit still retires on schedule
	bus.Write(0x2007, dmaColorFill|dmaGCarry|dmaIRQ)
	for i := 0; i < 17; i++ {
		bl.Cycle(bus)
	}

	if bl.Blitting() {
		t.Error("engine should have finished on schedule")
	}
	if !bl.IRQAsserted() {
		t.Error("completion IRQ should still fire")
	}
	for i, px := range bus.framebuffers[1] {
		if px == 0x33 {
			t.Fatalf("no pixels should be written with DMA off, found one at %d", i)
		}
	}
}

func TestBlitter_DestinationFollowsPageOut(t *testing.T) {
	bus, bl := makeBlitTest(dmaEnable | dmaColorFill | dmaGCarry | dmaIRQ | dmaPageOut)
	bus.Write(0x4007, ^byte(0x44))

	// With framebuffer 1 paged out, blits land in framebuffer 0
	startBlit(bus, 0, 0, 0, 0, 1, 1)
	for i := 0; i < 2; i++ {
		bl.Cycle(bus)
	}

	if got := bus.framebuffers[0][0]; got != 0x44 {
		t.Errorf("framebuffer 0: expected 0x44, got 0x%02X", got)
	}
	if got := bus.framebuffers[1][0]; got == 0x44 {
		t.Error("framebuffer 1 is displayed and should not receive the blit")
	}
}

func TestBlitter_SourceQuadrants(t *testing.T) {
	bus, bl := makeBlitTest(dmaEnable | dmaGCarry | dmaIRQ)

	// Engine coordinates (130,5) live in the right-hand quadrant of
	// the page, at window offset 2 + 5*128 of quadrant 1
	bus.vram[0][(5*128+2)+fbSize] = 0x66
	startBlit(bus, 0, 0, 130, 5, 1, 1)
	for i := 0; i < 2; i++ {
		bl.Cycle(bus)
	}

	if got := bus.framebuffers[1][0]; got != 0x66 {
		t.Errorf("expected 0x66 from quadrant 1, got 0x%02X", got)
	}
}

func TestBlitter_RestartAfterCompletion(t *testing.T) {
	bus, bl := makeBlitTest(dmaEnable | dmaColorFill | dmaGCarry | dmaIRQ)
	bus.Write(0x4007, ^byte(0x50))
	startBlit(bus, 0, 0, 0, 0, 2, 1)
	for i := 0; i < 3; i++ {
		bl.Cycle(bus)
	}

	bus.Write(0x4007, ^byte(0x60))
	startBlit(bus, 10, 0, 0, 0, 2, 1)
	for i := 0; i < 3; i++ {
		bl.Cycle(bus)
	}

	if got := bus.framebuffers[1][10]; got != 0x60 {
		t.Errorf("second blit: expected 0x60, got 0x%02X", got)
	}
	if got := bus.framebuffers[1][0]; got != 0x50 {
		t.Errorf("first blit result should persist, got 0x%02X", got)
	}
}
