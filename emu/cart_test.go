package emu

import "testing"

func TestNewCartridge_SizeDispatch(t *testing.T) {
	for _, size := range []int{cartSize8K, cartSize16K, cartSize32K} {
		rom := make([]byte, size)
		rom[size-4] = 0x00
		rom[size-3] = 0x80
		cart, err := NewCartridge(rom)
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		if _, ok := cart.(*CartFlat); !ok {
			t.Errorf("size %d: expected a flat cartridge, got %T", size, cart)
		}
	}

	cart, err := NewCartridge(makeFlashROM())
	if err != nil {
		t.Fatalf("2MB image: %v", err)
	}
	if _, ok := cart.(*CartFlash2M); !ok {
		t.Errorf("2MB image: expected a flash cartridge, got %T", cart)
	}
}

func TestNewCartridge_RejectsUnknownSize(t *testing.T) {
	if _, err := NewCartridge(make([]byte, 1000)); err == nil {
		t.Error("expected an error for a 1000-byte image")
	}
	if _, err := NewCartridge(nil); err == nil {
		t.Error("expected an error for an empty image")
	}
	if _, err := NewCartridge(make([]byte, cartSize32K+1)); err == nil {
		t.Error("expected an error for an off-size image")
	}
}

func TestNewCartridge_RejectsMissingResetVector(t *testing.T) {
	// All zeroes reads vector $0000
	if _, err := NewCartridge(make([]byte, cartSize32K)); err == nil {
		t.Error("expected an error for a zeroed image")
	}

	// All ones reads vector $FFFF
	rom := make([]byte, cartSize32K)
	for i := range rom {
		rom[i] = 0xFF
	}
	if _, err := NewCartridge(rom); err == nil {
		t.Error("expected an error for an all-ones image")
	}
}

func TestCartFlat_Mirroring(t *testing.T) {
	rom := makeFlatROM(cartSize8K)
	rom[0x0000] = 0x11
	rom[0x1FFF] = 0x22
	cart, err := NewCartridge(rom)
	if err != nil {
		t.Fatalf("NewCartridge: %v", err)
	}

	// An 8KB image repeats four times through the 32KB window
	for _, base := range []uint16{0x0000, 0x2000, 0x4000, 0x6000} {
		if got := cart.ReadByte(base); got != 0x11 {
			t.Errorf("mirror at $%04X: expected 0x11, got 0x%02X", base, got)
		}
		if got := cart.ReadByte(base + 0x1FFF); got != 0x22 {
			t.Errorf("mirror at $%04X: expected 0x22, got 0x%02X", base+0x1FFF, got)
		}
	}
}

func TestCartFlat_16KMirroring(t *testing.T) {
	rom := makeFlatROM(cartSize16K)
	rom[0x0123] = 0x33
	cart, err := NewCartridge(rom)
	if err != nil {
		t.Fatalf("NewCartridge: %v", err)
	}

	if got := cart.ReadByte(0x0123); got != 0x33 {
		t.Errorf("expected 0x33, got 0x%02X", got)
	}
	if got := cart.ReadByte(0x4123); got != 0x33 {
		t.Errorf("mirror: expected 0x33, got 0x%02X", got)
	}
}

func TestCartFlat_WritesIgnored(t *testing.T) {
	rom := makeFlatROM(cartSize32K)
	rom[0x100] = 0x44
	cart, err := NewCartridge(rom)
	if err != nil {
		t.Fatalf("NewCartridge: %v", err)
	}

	cart.WriteByte(0x100, 0x99)
	if got := cart.ReadByte(0x100); got != 0x44 {
		t.Errorf("ROM should be read-only: expected 0x44, got 0x%02X", got)
	}
}

func TestCartFlat_ImageIsCopied(t *testing.T) {
	rom := makeFlatROM(cartSize32K)
	rom[0x200] = 0x55
	cart, err := NewCartridge(rom)
	if err != nil {
		t.Fatalf("NewCartridge: %v", err)
	}

	// Mutating the caller's slice must not reach the cartridge
	rom[0x200] = 0x00
	if got := cart.ReadByte(0x200); got != 0x55 {
		t.Errorf("expected 0x55, got 0x%02X", got)
	}
}
