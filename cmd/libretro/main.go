package main

import (
	libretro "github.com/user-none/eblitui/libretro"
	"github.com/user-none/egt/adapter"
)

func init() {
	libretro.RegisterFactory(&adapter.Factory{}, []libretro.RetropadMapping{
		{RetroID: libretro.JoypadY, BitID: 4},     // A
		{RetroID: libretro.JoypadB, BitID: 5},     // B
		{RetroID: libretro.JoypadA, BitID: 6},     // C
		{RetroID: libretro.JoypadStart, BitID: 7}, // Start
	})
}

func main() {}
