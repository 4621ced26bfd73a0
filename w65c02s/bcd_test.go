package w65c02s

import "testing"

// bcd converts 0-99 to its packed BCD byte.
func bcd(n int) uint8 {
	return uint8(n/10<<4 | n%10)
}

// TestCPU_ADCDecimalSweep exercises every valid BCD operand pair with
// both carry states and checks the result against plain decimal
// arithmetic.
func TestCPU_ADCDecimalSweep(t *testing.T) {
	c, bus := newTestCPU()
	for a := 0; a < 100; a++ {
		for b := 0; b < 100; b++ {
			for carry := 0; carry < 2; carry++ {
				p := FlagU | FlagD
				if carry == 1 {
					p |= FlagC
				}
				c.SetState(Registers{PC: 0x0200, S: 0xFD, P: p, A: bcd(a)})
				bus.mem[0x0200] = 0x69 // ADC #imm
				bus.mem[0x0201] = bcd(b)
				c.Step()

				sum := a + b + carry
				want := bcd(sum % 100)
				wantC := sum >= 100
				r := c.Registers()
				if r.A != want {
					t.Fatalf("ADC %02d+%02d+%d: expected A=0x%02X, got 0x%02X",
						a, b, carry, want, r.A)
				}
				if gotC := r.P&FlagC != 0; gotC != wantC {
					t.Fatalf("ADC %02d+%02d+%d: expected C=%v, got %v",
						a, b, carry, wantC, gotC)
				}
				if gotZ := r.P&FlagZ != 0; gotZ != (want == 0) {
					t.Fatalf("ADC %02d+%02d+%d: expected Z=%v, got %v",
						a, b, carry, want == 0, gotZ)
				}
				if gotN := r.P&FlagN != 0; gotN != (want&0x80 != 0) {
					t.Fatalf("ADC %02d+%02d+%d: expected N=%v, got %v",
						a, b, carry, want&0x80 != 0, gotN)
				}
			}
		}
	}
}

// TestCPU_SBCDecimalSweep is the subtraction counterpart; carry clear
// means borrow.
func TestCPU_SBCDecimalSweep(t *testing.T) {
	c, bus := newTestCPU()
	for a := 0; a < 100; a++ {
		for b := 0; b < 100; b++ {
			for carry := 0; carry < 2; carry++ {
				p := FlagU | FlagD
				if carry == 1 {
					p |= FlagC
				}
				c.SetState(Registers{PC: 0x0200, S: 0xFD, P: p, A: bcd(a)})
				bus.mem[0x0200] = 0xE9 // SBC #imm
				bus.mem[0x0201] = bcd(b)
				c.Step()

				diff := a - b - (1 - carry)
				want := bcd((diff%100 + 100) % 100)
				wantC := diff >= 0
				r := c.Registers()
				if r.A != want {
					t.Fatalf("SBC %02d-%02d-%d: expected A=0x%02X, got 0x%02X",
						a, b, 1-carry, want, r.A)
				}
				if gotC := r.P&FlagC != 0; gotC != wantC {
					t.Fatalf("SBC %02d-%02d-%d: expected C=%v, got %v",
						a, b, 1-carry, wantC, gotC)
				}
			}
		}
	}
}

func TestCPU_ADCDecimalWrap(t *testing.T) {
	// 99+1 wraps to 00 with carry out and Z set.
	c, _ := newTestCPU(0x69, 0x01)
	c.SetState(Registers{PC: 0x0200, S: 0xFD, P: FlagU | FlagD, A: 0x99})
	c.Step()
	r := c.Registers()
	if r.A != 0x00 {
		t.Errorf("expected A=0x00, got 0x%02X", r.A)
	}
	if r.P&FlagC == 0 || r.P&FlagZ == 0 {
		t.Errorf("expected C and Z set, got P=0x%02X", r.P)
	}
	if r.P&FlagV != 0 {
		t.Errorf("expected V clear, got P=0x%02X", r.P)
	}
}

func TestCPU_ADCDecimalOverflowFlag(t *testing.T) {
	// 50+50 lands in the sign bit before the high-nibble fixup, which
	// is what V reports in decimal mode.
	c, _ := newTestCPU(0x69, 0x50)
	c.SetState(Registers{PC: 0x0200, S: 0xFD, P: FlagU | FlagD, A: 0x50})
	c.Step()
	r := c.Registers()
	if r.A != 0x00 || r.P&FlagC == 0 {
		t.Errorf("expected A=0x00 with carry, got A=0x%02X P=0x%02X", r.A, r.P)
	}
	if r.P&FlagV == 0 {
		t.Errorf("expected V set, got P=0x%02X", r.P)
	}
}

func TestCPU_SBCDecimalBorrow(t *testing.T) {
	// 00-01 with borrow in wraps to 98 with borrow out.
	c, _ := newTestCPU(0xE9, 0x01)
	c.SetState(Registers{PC: 0x0200, S: 0xFD, P: FlagU | FlagD, A: 0x00})
	c.Step()
	r := c.Registers()
	if r.A != 0x98 {
		t.Errorf("expected A=0x98, got 0x%02X", r.A)
	}
	if r.P&FlagC != 0 {
		t.Errorf("expected C clear (borrow), got P=0x%02X", r.P)
	}
}

func TestCPU_DecimalModeOnlyAffectsADCSBC(t *testing.T) {
	// CMP ignores D and stays binary.
	c, _ := newTestCPU(0xC9, 0x05)
	c.SetState(Registers{PC: 0x0200, S: 0xFD, P: FlagU | FlagD, A: 0x15})
	c.Step()
	r := c.Registers()
	if r.P&FlagC == 0 || r.P&FlagZ != 0 {
		t.Errorf("expected binary compare result, got P=0x%02X", r.P)
	}
	if r.A != 0x15 {
		t.Errorf("expected A untouched, got 0x%02X", r.A)
	}
}
