package adapter

import (
	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/egt/emu"
)

// Compile-time interface check.
var _ emucore.CoreFactory = (*Factory)(nil)

// Factory implements emucore.CoreFactory for the GameTank emulator.
type Factory struct{}

// SystemInfo returns system metadata for UI configuration.
func (f *Factory) SystemInfo() emucore.SystemInfo {
	return emucore.SystemInfo{
		Name:            "egt",
		ConsoleName:     "GameTank",
		Extensions:      []string{".gtr", ".bin"},
		ScreenWidth:     emu.ScreenWidth,
		MaxScreenHeight: emu.MaxScreenHeight,
		AspectRatio:     1.0,
		SampleRate:      48000,
		Buttons: []emucore.Button{
			{Name: "A", ID: 4, DefaultKey: "J", DefaultPad: "A"},
			{Name: "B", ID: 5, DefaultKey: "K", DefaultPad: "B"},
			{Name: "C", ID: 6, DefaultKey: "L", DefaultPad: "X"},
			{Name: "Start", ID: 7, DefaultKey: "Enter", DefaultPad: "Start"},
		},
		Players: 2,
		CoreOptions: []emucore.CoreOption{
			{
				Key:         "audio_filter",
				Label:       "Audio Low-Pass Filter",
				Description: "Smooth the DAC output with an RC low-pass filter",
				Type:        emucore.CoreOptionBool,
				Default:     "true",
			},
		},
		DataDirName: "egt",
		CoreName:    emu.Name,
		CoreVersion: emu.Version,
	}
}

// CreateEmulator creates a new emulator instance with the given ROM and region.
func (f *Factory) CreateEmulator(rom []byte, region emucore.Region) (emucore.Emulator, error) {
	e, err := emu.NewEmulator(rom, region)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// DetectRegion auto-detects the region from ROM header data. The bool
// return is false since GameTank boards are NTSC-only and no ROM
// database lookup is needed.
func (f *Factory) DetectRegion(rom []byte) (emucore.Region, bool) {
	return emu.DetectRegion(rom), false
}
