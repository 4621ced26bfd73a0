package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	emubridge "github.com/user-none/egt/bridge/ebiten"
	"github.com/user-none/egt/cli"
	"github.com/user-none/egt/emu"
)

func main() {
	romPath := flag.String("rom", "", "path to ROM file (required)")
	audioFilter := flag.Bool("audiofilter", true, "enable the DAC low-pass filter")
	flag.Parse()

	if *romPath == "" {
		log.Fatal("ROM path is required. Usage: egt -rom <path>")
	}

	romData, err := os.ReadFile(*romPath)
	if err != nil {
		log.Fatalf("Failed to load ROM: %v", err)
	}

	// All GameTank boards are NTSC
	region := emu.DetectRegion(romData)

	e, err := emubridge.NewEmulator(romData, region)
	if err != nil {
		log.Fatalf("Failed to initialize emulator: %v", err)
	}

	e.SetAudioFilter(*audioFilter)

	ebiten.SetWindowSize(emu.ScreenWidth*4, emu.MaxScreenHeight*4)
	ebiten.SetWindowTitle(emu.Name)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(emu.ScreenWidth, emu.MaxScreenHeight, -1, -1)
	ebiten.SetTPS(60)

	runner := cli.NewRunner(e)
	defer runner.Close()
	defer e.Close()

	if err := ebiten.RunGame(runner); err != nil {
		log.Fatal(err)
	}
}
