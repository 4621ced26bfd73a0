package emu

import (
	"time"

	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/egt/w65c02s"
)

// Compile-time interface checks.
var _ emucore.Emulator = (*Emulator)(nil)
var _ emucore.MemoryInspector = (*Emulator)(nil)
var _ emucore.MemoryMapper = (*Emulator)(nil)

// Core identity reported to the frontends.
const (
	Name    = "egt"
	Version = "1.0.0"
)

// Wall-clock tick limits: a tick longer than two frames runs one
// nominal frame instead, so emulation does not sprint to catch up after
// the host stalls.
const (
	maxTickElapsed   = 33 * time.Millisecond
	nominalFrameTime = 16667 * time.Microsecond
)

// playState gates the scheduler.
type playState int

const (
	stateInit playState = iota
	statePaused
	statePlaying
)

// Emulator ties the CPU, the audio coprocessor, the blitter and the bus
// together and paces them against a cycle budget.
type Emulator struct {
	cpu     *w65c02s.CPU
	acp     *w65c02s.CPU
	bus     *CpuBus
	acpBus  *AcpBus
	blitter *Blitter

	region Region
	timing RegionTiming

	nsPerCycle     float64
	cyclesPerFrame int
	vblankCycles   int // countdown to the next vertical blank
	acpIRQCycles   int // countdown to the next DAC interrupt, in ACP cycles

	playState playState
	lastTick  time.Time

	// Audio path: the scheduler pushes DAC bytes, the frame drain
	// resamples them into audioBuffer.
	samples     *dacRing
	resampler   *resampler
	dacSourceHz int
	audioFilter bool
	audioBuffer []int16
	filterPrev  float64

	frame []byte // RGBA conversion of the displayed framebuffer
}

// NewEmulator creates and initializes the console around a cartridge
// image. The image size selects the cartridge variant; an image without
// a reset vector is rejected.
func NewEmulator(rom []byte, region Region) (Emulator, error) {
	cart, err := NewCartridge(rom)
	if err != nil {
		return Emulator{}, err
	}

	timing := GetTimingForRegion(region)
	e := Emulator{
		region:         region,
		timing:         timing,
		nsPerCycle:     1e9 / float64(timing.CPUClockHz),
		cyclesPerFrame: timing.CyclesPerFrame,
		samples:        &dacRing{},
		audioFilter:    true,
		audioBuffer:    make([]int16, 0, 2048),
		frame:          make([]byte, fbSize*4),
	}
	e.powerOn(cart)
	return e, nil
}

// powerOn builds the console around the cartridge and brings the CPU
// out of reset.
func (e *Emulator) powerOn(cart Cartridge) {
	e.bus = NewCpuBus(cart)
	e.acpBus = NewAcpBus(e.bus)
	e.cpu = w65c02s.New(e.bus)
	e.acp = w65c02s.New(e.acpBus)
	e.blitter = NewBlitter()
	e.vblankCycles = e.cyclesPerFrame
	e.acpIRQCycles = 0
	e.dacSourceHz = 0
	e.samples.reset()
	e.filterPrev = 0

	// Execute the first instruction so the console is past the reset
	// fetch before the host starts budgeting cycles.
	e.cpu.Step()
}

// RunFrame executes one video frame of emulation.
func (e *Emulator) RunFrame() {
	if e.playState == stateInit {
		e.playState = statePlaying
	}
	e.audioBuffer = e.audioBuffer[:0]
	if e.playState != statePlaying {
		return
	}
	e.runCycles(e.cyclesPerFrame)
	e.drainAudio()
}

// Tick advances emulation by the wall-clock time since the previous
// call. The first tick only arms the clock, and a paused console keeps
// the clock current so resuming does not replay the pause.
func (e *Emulator) Tick(now time.Time) {
	switch e.playState {
	case stateInit:
		e.playState = statePlaying
		e.lastTick = now
		return
	case statePaused:
		e.lastTick = now
		return
	}

	elapsed := now.Sub(e.lastTick)
	e.lastTick = now

	e.audioBuffer = e.audioBuffer[:0]
	e.runCycles(budgetCycles(elapsed, e.nsPerCycle))
	e.drainAudio()
}

// budgetCycles converts elapsed wall-clock time into a CPU cycle
// budget. Elapsed time beyond two frames collapses to one frame.
func budgetCycles(elapsed time.Duration, nsPerCycle float64) int {
	if elapsed > maxTickElapsed {
		elapsed = nominalFrameTime
	}
	if elapsed < 0 {
		return 0
	}
	return int(float64(elapsed.Nanoseconds()) / nsPerCycle)
}

// runCycles drains a CPU cycle budget, interleaving the coprocessor,
// the blitter and interrupt delivery at instruction boundaries.
func (e *Emulator) runCycles(budget int) {
	acpCycles := 0
	for budget > 0 {
		cycles := e.cpu.Step()
		budget -= cycles

		// The coprocessor runs at four times the CPU clock. Cycles
		// accrue even while it is disabled, so enabling it starts from
		// the backlog.
		acpCycles += cycles * 4
		if e.bus.sysctl.acpEnabled() {
			acpCycles = e.runACP(acpCycles)
		}

		for i := 0; i < cycles; i++ {
			e.blitter.Cycle(e.bus)
		}
		e.cpu.SetIRQ(e.blitter.IRQAsserted())

		e.vblankCycles -= cycles
		if e.vblankCycles <= 0 {
			e.vblankCycles += e.cyclesPerFrame
			if e.bus.sysctl.vblankNMIEnabled() {
				// Pulse: the rising edge latches in the CPU.
				e.cpu.SetNMI(true)
				e.cpu.SetNMI(false)
			}
		}
	}
}

// runACP drains accumulated coprocessor cycles and returns the
// remainder. The DAC interrupt counter reloads from the whole $2006
// byte, enable bit included, times the four-to-one clock ratio.
func (e *Emulator) runACP(acpCycles int) int {
	if e.bus.sysctl.consumeACPReset() {
		e.acp.Reset()
	}
	if e.bus.sysctl.consumeACPNMI() {
		e.acp.SetNMI(true)
	}

	for acpCycles > 0 {
		cycles := e.acp.Step()
		acpCycles -= cycles
		e.acpIRQCycles -= cycles
		e.acp.SetIRQ(false)
		e.acp.SetNMI(false)

		if e.acpIRQCycles <= 0 {
			rate := int(e.bus.sysctl.sampleRate())
			e.acpIRQCycles += rate * 4
			e.acp.SetIRQ(true)
			e.setDACRate(e.timing.CPUClockHz / rate)
			e.samples.push(e.acpBus.sample)
		}
	}
	return acpCycles
}

// Play starts or resumes emulation.
func (e *Emulator) Play() {
	e.playState = statePlaying
}

// Pause halts emulation until Play. Frames and audio stop advancing.
func (e *Emulator) Pause() {
	e.playState = statePaused
}

// SoftReset re-vectors the CPU. Memory, peripherals and the coprocessor
// are left as the game set them.
func (e *Emulator) SoftReset() {
	e.cpu.Reset()
}

// HardReset rebuilds the console around the loaded cartridge, as a
// power cycle would. Programmed flash cartridge contents survive.
func (e *Emulator) HardReset() {
	e.powerOn(e.bus.cart)
}

// SetInput unpacks a button bitmask and sets controller state for the
// given player.
func (e *Emulator) SetInput(player int, buttons uint32) {
	up := buttons&(1<<emucore.ButtonUp) != 0
	down := buttons&(1<<emucore.ButtonDown) != 0
	left := buttons&(1<<emucore.ButtonLeft) != 0
	right := buttons&(1<<emucore.ButtonRight) != 0
	btnA := buttons&(1<<4) != 0
	btnB := buttons&(1<<5) != 0
	btnC := buttons&(1<<6) != 0
	start := buttons&(1<<7) != 0

	switch player {
	case 0:
		e.bus.sysctl.InputP1.Set(up, down, left, right, btnA, btnB, btnC, start)
	case 1:
		e.bus.sysctl.InputP2.Set(up, down, left, right, btnA, btnB, btnC, start)
	}
}

// GetFramebuffer returns raw RGBA pixel data for the displayed
// framebuffer, selected by the page-out flag.
func (e *Emulator) GetFramebuffer() []byte {
	renderRGBA(&e.bus.framebuffers[e.bus.sysctl.framebufferOut()], e.frame)
	return e.frame
}

// GetFramebufferStride returns the stride (bytes per row) of the framebuffer.
func (e *Emulator) GetFramebufferStride() int {
	return ScreenWidth * 4
}

// GetActiveHeight returns the active display height in pixels.
func (e *Emulator) GetActiveHeight() int {
	return MaxScreenHeight
}

// GetRegion returns the emulator's region setting.
func (e *Emulator) GetRegion() Region {
	return e.region
}

// SetRegion updates the emulator's region configuration. Every region
// maps to the console's NTSC timing.
func (e *Emulator) SetRegion(region Region) {
	e.region = region
	e.timing = GetTimingForRegion(region)
	e.cyclesPerFrame = e.timing.CyclesPerFrame
	e.nsPerCycle = 1e9 / float64(e.timing.CPUClockHz)
}

// GetTiming returns FPS and scanline count for the current region.
func (e *Emulator) GetTiming() emucore.Timing {
	return emucore.Timing{
		FPS:       e.timing.FPS,
		Scanlines: e.timing.Scanlines,
	}
}

// SetOption applies a core option change identified by key.
func (e *Emulator) SetOption(key string, value string) {
	switch key {
	case "audio_filter":
		e.SetAudioFilter(value == "true")
	}
}

// Close releases any resources held by the emulator.
func (e *Emulator) Close() {}

// ReadMemory reads from a flat address into buf and returns the number
// of bytes read. The flat map is the CPU's own 64KB address space,
// peeked without side effects.
func (e *Emulator) ReadMemory(addr uint32, buf []byte) uint32 {
	var count uint32
	for i := range buf {
		cur := addr + uint32(i)
		if cur > 0xFFFF {
			return count
		}
		b, _ := e.bus.Peek(uint16(cur))
		buf[i] = b
		count++
	}
	return count
}

// MemoryMap returns a list of available memory regions with sizes.
func (e *Emulator) MemoryMap() []emucore.MemoryRegion {
	return []emucore.MemoryRegion{
		{Type: emucore.MemorySystemRAM, Size: ramBanks * ramBankSize},
	}
}

// ReadRegion returns a copy of the specified memory region.
func (e *Emulator) ReadRegion(regionType int) []byte {
	switch regionType {
	case emucore.MemorySystemRAM:
		return e.GetSystemRAM()
	default:
		return nil
	}
}

// WriteRegion writes data to the specified memory region.
func (e *Emulator) WriteRegion(regionType int, data []byte) {
	switch regionType {
	case emucore.MemorySystemRAM:
		e.SetSystemRAM(data)
	}
}

// GetSystemRAM returns a copy of the system RAM with the four banks
// laid out flat.
func (e *Emulator) GetSystemRAM() []byte {
	out := make([]byte, 0, ramBanks*ramBankSize)
	for i := range e.bus.ram {
		out = append(out, e.bus.ram[i][:]...)
	}
	return out
}

// SetSystemRAM writes data across the four RAM banks.
func (e *Emulator) SetSystemRAM(data []byte) {
	for i := range e.bus.ram {
		n := copy(e.bus.ram[i][:], data)
		data = data[n:]
		if len(data) == 0 {
			break
		}
	}
}
