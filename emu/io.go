package emu

// Input holds the state of a GameTank controller port.
type Input struct {
	up, down, left, right bool
	btnA, btnB, btnC      bool
	start                 bool
}

// Set sets controller state.
func (inp *Input) Set(up, down, left, right, btnA, btnB, btnC, start bool) {
	inp.up = up
	inp.down = down
	inp.left = left
	inp.right = right
	inp.btnA = btnA
	inp.btnB = btnB
	inp.btnC = btnC
	inp.start = start
}

// dataByte composes the pad's data byte for the given select-line level.
// Each pad sits behind a 74HC157 multiplexer, so a full poll takes two
// reads: one per half of the button set. Buttons are active low
// (0 = pressed, 1 = released).
//
//	select=0: bit 5 = Start, bit 4 = A
//	select=1: bit 5 = C, bit 4 = B, bit 3 = Up, bit 2 = Down,
//	          bit 1 = Left, bit 0 = Right
func (inp *Input) dataByte(sel bool) byte {
	var val byte = 0xFF
	if !sel {
		if inp.start {
			val &^= 0x20
		}
		if inp.btnA {
			val &^= 0x10
		}
		return val
	}
	if inp.btnC {
		val &^= 0x20
	}
	if inp.btnB {
		val &^= 0x10
	}
	if inp.up {
		val &^= 0x08
	}
	if inp.down {
		val &^= 0x04
	}
	if inp.left {
		val &^= 0x02
	}
	if inp.right {
		val &^= 0x01
	}
	return val
}
