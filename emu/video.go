package emu

// Framebuffer and VRAM geometry. Each framebuffer holds one 128x128
// screen of composite color bytes. A VRAM page is a 256x256 sheet the
// hardware treats as four 128x128 quadrants, selected by the high bit
// of each blit source coordinate.
const (
	fbWidth  = 128
	fbHeight = 128
	fbSize   = fbWidth * fbHeight

	vramPageSize = 256 * 256
	vramPages    = 8
)

// Screen geometry exported for the frontends.
const (
	ScreenWidth     = fbWidth
	MaxScreenHeight = fbHeight
)

// renderRGBA expands a framebuffer of composite color bytes into the
// RGBA pixel buffer handed to the frontends.
func renderRGBA(fb *[fbSize]byte, out []byte) {
	for i := 0; i < fbSize; i++ {
		copy(out[i*4:i*4+4], palette[fb[i]][:])
	}
}
