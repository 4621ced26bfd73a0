package emu

import "testing"

func TestAcpBus_RAMIsMirrored(t *testing.T) {
	bus := makeTestBus()
	acp := NewAcpBus(bus)

	acp.Write(0x0005, 0x42)
	for _, addr := range []uint16{0x0005, 0x1005, 0x8005, 0xF005} {
		if got := acp.Read(addr); got != 0x42 {
			t.Errorf("$%04X: expected 0x42, got 0x%02X", addr, got)
		}
	}

	// A mirrored write lands in the same 4KB
	acp.Write(0x2010, 0x77)
	if got := acp.Read(0x0010); got != 0x77 {
		t.Errorf("expected 0x77, got 0x%02X", got)
	}
}

func TestAcpBus_HighWritesLatchSample(t *testing.T) {
	bus := makeTestBus()
	acp := NewAcpBus(bus)

	acp.Write(0x8000, 0x80)
	if acp.sample != 0x80 {
		t.Errorf("expected sample 0x80, got 0x%02X", acp.sample)
	}

	// Low writes do not touch the latch
	acp.Write(0x0123, 0x55)
	if acp.sample != 0x80 {
		t.Errorf("sample should hold 0x80, got 0x%02X", acp.sample)
	}

	acp.Write(0xFFFF, 0x7F)
	if acp.sample != 0x7F {
		t.Errorf("expected sample 0x7F, got 0x%02X", acp.sample)
	}
	// The write also lands in the mirrored RAM
	if got := bus.Read(0x3FFF); got != 0x7F {
		t.Errorf("expected 0x7F in audio RAM, got 0x%02X", got)
	}
}

func TestAcpBus_VectorsComeFromAudioRAM(t *testing.T) {
	bus := makeTestBus()
	acp := NewAcpBus(bus)

	// The CPU stages the coprocessor's reset vector through its own
	// audio RAM window
	bus.Write(0x3FFC, 0x34)
	bus.Write(0x3FFD, 0x12)

	if got := acp.Read(0xFFFC); got != 0x34 {
		t.Errorf("vector low: expected 0x34, got 0x%02X", got)
	}
	if got := acp.Read(0xFFFD); got != 0x12 {
		t.Errorf("vector high: expected 0x12, got 0x%02X", got)
	}
}
