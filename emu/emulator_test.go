package emu

import (
	"testing"
	"time"

	emucore "github.com/user-none/eblitui/api"
)

// makeBootROM builds a 32KB image whose program spins at $8000 and
// whose NMI handler counts interrupts in zero page at $10.
func makeBootROM() []byte {
	rom := make([]byte, cartSize32K)

	// $8000: JMP $8000
	rom[0x0000] = 0x4C
	rom[0x0001] = 0x00
	rom[0x0002] = 0x80

	// $8010: INC $10 / RTI
	rom[0x0010] = 0xE6
	rom[0x0011] = 0x10
	rom[0x0012] = 0x40

	// Vectors: NMI $8010, reset $8000, IRQ $8000
	rom[0x7FFA] = 0x10
	rom[0x7FFB] = 0x80
	rom[0x7FFC] = 0x00
	rom[0x7FFD] = 0x80
	rom[0x7FFE] = 0x00
	rom[0x7FFF] = 0x80
	return rom
}

func makeTestEmulator(t *testing.T) *Emulator {
	t.Helper()
	e, err := NewEmulator(makeBootROM(), RegionNTSC)
	if err != nil {
		t.Fatalf("NewEmulator: %v", err)
	}
	return &e
}

// nmiCount reads the handler's zero page counter.
func nmiCount(e *Emulator) byte {
	var buf [1]byte
	e.ReadMemory(0x0010, buf[:])
	return buf[0]
}

func TestNewEmulator_RejectsBadImages(t *testing.T) {
	if _, err := NewEmulator(make([]byte, 1000), RegionNTSC); err == nil {
		t.Error("expected an error for an off-size image")
	}
	if _, err := NewEmulator(make([]byte, cartSize32K), RegionNTSC); err == nil {
		t.Error("expected an error for an image without a reset vector")
	}
}

func TestEmulator_VBlankNMI(t *testing.T) {
	e := makeTestEmulator(t)

	// The power-on DMA flags enable the vblank NMI. One interrupt is
	// latched at the end of every frame; service can slip into the
	// next frame's first instructions.
	for i := 0; i < 4; i++ {
		e.RunFrame()
	}
	if got := nmiCount(e); got < 2 {
		t.Errorf("expected at least 2 vblank interrupts after 4 frames, got %d", got)
	}
}

func TestEmulator_VBlankNMIDisabled(t *testing.T) {
	e := makeTestEmulator(t)
	e.bus.Write(0x2007, 0x7F&^dmaVBlankNMI)

	for i := 0; i < 4; i++ {
		e.RunFrame()
	}
	if got := nmiCount(e); got != 0 {
		t.Errorf("expected no interrupts with the flag clear, got %d", got)
	}
}

func TestEmulator_PauseStopsFrames(t *testing.T) {
	e := makeTestEmulator(t)
	e.RunFrame()
	cycles := e.cpu.Cycles()

	e.Pause()
	e.RunFrame()
	if got := e.cpu.Cycles(); got != cycles {
		t.Errorf("paused frame ran %d cycles", got-cycles)
	}
	if got := e.GetAudioSamples(); len(got) != 0 {
		t.Errorf("paused frame produced %d samples", len(got))
	}

	e.Play()
	e.RunFrame()
	if got := e.cpu.Cycles(); got == cycles {
		t.Error("resumed frame should run")
	}
}

func TestEmulator_SoftReset(t *testing.T) {
	e := makeTestEmulator(t)
	e.RunFrame()
	e.bus.Write(0x0040, 0x5A)

	e.SoftReset()
	if got := e.cpu.Registers().PC; got != 0x8000 {
		t.Errorf("expected PC at the reset vector, got $%04X", got)
	}
	if got := e.bus.Read(0x0040); got != 0x5A {
		t.Errorf("soft reset should preserve RAM, got 0x%02X", got)
	}
}

func TestEmulator_HardReset(t *testing.T) {
	e := makeTestEmulator(t)
	e.RunFrame()
	e.bus.Write(0x0040, 0x5A)

	e.HardReset()
	if got := e.bus.Read(0x0040); got != 0x00 {
		t.Errorf("hard reset should clear RAM, got 0x%02X", got)
	}
	if got := e.bus.Read(0x8000); got != 0x4C {
		t.Errorf("cartridge should survive, got 0x%02X", got)
	}
	if got := e.bus.sysctl.dmaFlags; got != 0x7F {
		t.Errorf("registers should return to power-on state, got 0x%02X", got)
	}
}

func TestEmulator_HardResetKeepsProgrammedFlash(t *testing.T) {
	e, err := NewEmulator(makeFlashROM(), RegionNTSC)
	if err != nil {
		t.Fatalf("NewEmulator: %v", err)
	}

	// Erase and program through CPU addresses, then power cycle
	e.bus.Write(0x8AAA, 0xAA)
	e.bus.Write(0x8555, 0x55)
	e.bus.Write(0x8AAA, 0x80)
	e.bus.Write(0x8AAA, 0xAA)
	e.bus.Write(0x8555, 0x55)
	e.bus.Write(0x8AAA, 0x10)

	e.bus.Write(0x8AAA, 0xAA)
	e.bus.Write(0x8555, 0x55)
	e.bus.Write(0x8AAA, 0xA0)
	e.bus.Write(0x8100, 0x42)

	e.HardReset()
	if got := e.bus.Read(0x8100); got != 0x42 {
		t.Errorf("programmed flash should survive a power cycle, got 0x%02X", got)
	}
}

func TestEmulator_SetInputReachesPads(t *testing.T) {
	e := makeTestEmulator(t)

	e.SetInput(0, 1<<0|1<<4) // up + A
	if got := e.bus.Read(0x2008); got != 0xEF {
		t.Errorf("pad 1 select low: expected 0xEF, got 0x%02X", got)
	}
	if got := e.bus.Read(0x2008); got != 0xF7 {
		t.Errorf("pad 1 select high: expected 0xF7, got 0x%02X", got)
	}

	e.SetInput(1, 1<<7) // start
	if got := e.bus.Read(0x2009); got != 0xDF {
		t.Errorf("pad 2 select low: expected 0xDF, got 0x%02X", got)
	}
}

func TestBudgetCycles(t *testing.T) {
	nsPerCycle := 1e9 / float64(NTSCTiming.CPUClockHz)

	// One frame of elapsed time buys about one frame of cycles
	got := budgetCycles(16667*time.Microsecond, nsPerCycle)
	if got < 59000 || got > 60500 {
		t.Errorf("frame budget: got %d", got)
	}

	// A long host stall collapses to one nominal frame
	got = budgetCycles(5*time.Second, nsPerCycle)
	if got < 59000 || got > 60500 {
		t.Errorf("clamped budget: got %d", got)
	}

	if got := budgetCycles(-time.Millisecond, nsPerCycle); got != 0 {
		t.Errorf("negative elapsed: expected 0, got %d", got)
	}

	got = budgetCycles(time.Millisecond, nsPerCycle)
	if got < 3500 || got > 3650 {
		t.Errorf("1ms budget: got %d", got)
	}
}

func TestEmulator_TickPacesByWallClock(t *testing.T) {
	e := makeTestEmulator(t)
	base := time.Unix(100, 0)

	// The first tick only arms the clock
	e.Tick(base)
	start := e.cpu.Cycles()

	e.Tick(base.Add(16667 * time.Microsecond))
	ran := e.cpu.Cycles() - start
	if ran < 59000 || ran > 60500 {
		t.Errorf("one frame of wall clock ran %d cycles", ran)
	}
}

func TestEmulator_TickClampsStalls(t *testing.T) {
	e := makeTestEmulator(t)
	base := time.Unix(100, 0)
	e.Tick(base)
	start := e.cpu.Cycles()

	// Five seconds away from the emulator must not replay five seconds
	e.Tick(base.Add(5 * time.Second))
	ran := e.cpu.Cycles() - start
	if ran > 61000 {
		t.Errorf("stalled tick ran %d cycles", ran)
	}
}

func TestEmulator_TickWhilePaused(t *testing.T) {
	e := makeTestEmulator(t)
	base := time.Unix(100, 0)
	e.Tick(base)
	e.Pause()

	e.Tick(base.Add(time.Second))
	start := e.cpu.Cycles()

	// Resuming picks up from the pause, not from the armed clock
	e.Play()
	e.Tick(base.Add(time.Second + 16667*time.Microsecond))
	ran := e.cpu.Cycles() - start
	if ran < 59000 || ran > 60500 {
		t.Errorf("first resumed tick ran %d cycles", ran)
	}
}

func TestEmulator_AudioPacing(t *testing.T) {
	e := makeTestEmulator(t)
	e.bus.Write(0x2006, 0xFF) // enable the coprocessor, slowest rate

	e.RunFrame()
	samples := e.GetAudioSamples()

	// One frame at the slowest DAC rate resamples to about a frame of
	// host audio (48000/60 stereo pairs)
	if len(samples) < 1400 || len(samples) > 1800 {
		t.Errorf("expected about 1600 samples, got %d", len(samples))
	}
	if len(samples)%2 != 0 {
		t.Fatalf("sample count must be even, got %d", len(samples))
	}
	for i := 0; i+1 < len(samples); i += 2 {
		if samples[i] != samples[i+1] {
			t.Fatalf("mono output should match across channels at %d", i)
		}
	}
}

func TestEmulator_NoAudioWhileACPDisabled(t *testing.T) {
	e := makeTestEmulator(t)
	e.RunFrame()
	if got := e.GetAudioSamples(); len(got) != 0 {
		t.Errorf("expected no samples with the coprocessor disabled, got %d", len(got))
	}
}

func TestEmulator_GetFramebuffer(t *testing.T) {
	e := makeTestEmulator(t)

	frame := e.GetFramebuffer()
	if len(frame) != ScreenWidth*MaxScreenHeight*4 {
		t.Fatalf("expected %d bytes, got %d", ScreenWidth*MaxScreenHeight*4, len(frame))
	}

	// The page-out flag starts on framebuffer 1, which powers up lit
	if frame[0] != 0xFF || frame[1] != 0xFF || frame[2] != 0xFF || frame[3] != 0xFF {
		t.Errorf("expected a white pixel, got %v", frame[:4])
	}

	if got := e.GetFramebufferStride(); got != ScreenWidth*4 {
		t.Errorf("stride: expected %d, got %d", ScreenWidth*4, got)
	}
	if got := e.GetActiveHeight(); got != MaxScreenHeight {
		t.Errorf("active height: expected %d, got %d", MaxScreenHeight, got)
	}
}

func TestEmulator_SetOption(t *testing.T) {
	e := makeTestEmulator(t)

	e.SetOption("audio_filter", "false")
	if e.audioFilter {
		t.Error("filter should be disabled")
	}
	e.SetOption("audio_filter", "true")
	if !e.audioFilter {
		t.Error("filter should be enabled")
	}

	// Unknown keys are ignored
	e.SetOption("bogus", "true")
}

func TestEmulator_ReadMemory(t *testing.T) {
	e := makeTestEmulator(t)

	var buf [4]byte
	if got := e.ReadMemory(0x8000, buf[:1]); got != 1 {
		t.Fatalf("expected 1 byte, got %d", got)
	}
	if buf[0] != 0x4C {
		t.Errorf("expected 0x4C at $8000, got 0x%02X", buf[0])
	}

	// Reads stop at the top of the address space
	if got := e.ReadMemory(0xFFFE, buf[:]); got != 2 {
		t.Errorf("expected 2 bytes at the boundary, got %d", got)
	}
	if buf[1] != 0x80 {
		t.Errorf("expected the vector high byte, got 0x%02X", buf[1])
	}
}

func TestEmulator_SystemRAMRegion(t *testing.T) {
	e := makeTestEmulator(t)

	regions := e.MemoryMap()
	if len(regions) != 1 {
		t.Fatalf("expected 1 region, got %d", len(regions))
	}
	if regions[0].Type != emucore.MemorySystemRAM || regions[0].Size != ramBanks*ramBankSize {
		t.Errorf("unexpected region %+v", regions[0])
	}

	data := make([]byte, ramBanks*ramBankSize)
	for i := range data {
		data[i] = byte(i)
	}
	e.WriteRegion(regions[0].Type, data)

	// The flat layout spans all four banks
	if got := e.bus.ram[1][0]; got != byte(ramBankSize&0xFF) {
		t.Errorf("bank 1 start: expected 0x%02X, got 0x%02X", byte(ramBankSize&0xFF), got)
	}

	back := e.ReadRegion(regions[0].Type)
	for i := range back {
		if back[i] != data[i] {
			t.Fatalf("round trip mismatch at %d", i)
		}
	}
}
