package emu

import "fmt"

// Cartridge image sizes accepted by NewCartridge.
const (
	cartSize8K  = 0x2000
	cartSize16K = 0x4000
	cartSize32K = 0x8000
	cartSize2M  = 0x200000
)

// Cartridge is the bus-facing contract for every cartridge variant.
// Addresses are cartridge-relative: the bus subtracts the $8000 window
// base before dispatching. Static variants ignore writes and VIA
// traffic.
type Cartridge interface {
	ReadByte(addr uint16) byte
	WriteByte(addr uint16, data byte)
	UpdateVIA(before, after [16]byte)
}

// NewCartridge selects a cartridge variant from the image size and
// checks that the image carries a plausible reset vector.
func NewCartridge(rom []byte) (Cartridge, error) {
	var cart Cartridge
	switch len(rom) {
	case cartSize8K:
		cart = newCartFlat(rom, 0x1FFF)
	case cartSize16K:
		cart = newCartFlat(rom, 0x3FFF)
	case cartSize32K:
		cart = newCartFlat(rom, 0x7FFF)
	case cartSize2M:
		cart = NewCartFlash2M(rom)
	default:
		return nil, fmt.Errorf("unrecognized cartridge image size %d bytes", len(rom))
	}

	// reset vector sits at $FFFC-$FFFD, cartridge-relative $7FFC
	vector := uint16(cart.ReadByte(0x7FFD))<<8 | uint16(cart.ReadByte(0x7FFC))
	if vector == 0x0000 || vector == 0xFFFF {
		return nil, fmt.Errorf("cartridge image has no reset vector (read $%04X)", vector)
	}
	return cart, nil
}

// CartFlat is a static ROM-only cartridge (8K, 16K or 32K image). The
// address decode is partial, so smaller images mirror through the whole
// $8000-$FFFF window.
type CartFlat struct {
	data []byte
	mask uint16
}

func newCartFlat(rom []byte, mask uint16) *CartFlat {
	data := make([]byte, len(rom))
	copy(data, rom)
	return &CartFlat{data: data, mask: mask}
}

// ReadByte reads a cartridge byte.
func (c *CartFlat) ReadByte(addr uint16) byte {
	return c.data[addr&c.mask]
}

// WriteByte ignores writes; the ROM is not writable.
func (c *CartFlat) WriteByte(addr uint16, data byte) {}

// UpdateVIA ignores VIA traffic; there is no bank shifter to drive.
func (c *CartFlat) UpdateVIA(before, after [16]byte) {}
