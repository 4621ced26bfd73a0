package emu

import emucore "github.com/user-none/eblitui/api"

// Region is an alias for emucore.Region so internal code compiles unchanged.
type Region = emucore.Region

const (
	RegionNTSC = emucore.RegionNTSC
	RegionPAL  = emucore.RegionPAL
)

// RegionTiming holds timing constants for the console. The GameTank is an
// NTSC-only design: the CPU runs at the NTSC colorburst frequency and the
// audio coprocessor at four times that.
type RegionTiming struct {
	CPUClockHz     int // W65C02S clock frequency (NTSC colorburst)
	ACPClockHz     int // audio coprocessor clock frequency (4x CPU)
	CyclesPerFrame int // CPU cycles between vblank interrupts
	Scanlines      int // Total scanlines per frame
	FPS            int // Frames per second
}

// NTSC timing: CPU 3.579545 MHz, ACP 14.31818 MHz, 262 scanlines, 60 Hz
var NTSCTiming = RegionTiming{
	CPUClockHz:     3579545,
	ACPClockHz:     14318180,
	CyclesPerFrame: 59659,
	Scanlines:      262,
	FPS:            60,
}

// GetTimingForRegion returns the appropriate timing constants. The console
// has no PAL variant, so every region maps to NTSC timing.
func GetTimingForRegion(r Region) RegionTiming {
	return NTSCTiming
}

// DetectRegion returns the display timing region for a ROM. GameTank
// cartridges carry no region field and all boards are NTSC.
func DetectRegion(rom []byte) Region {
	return RegionNTSC
}

// DefaultRegion returns the default region (NTSC).
func DefaultRegion() Region {
	return RegionNTSC
}
