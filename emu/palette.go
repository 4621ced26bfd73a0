package emu

import "math"

// Framebuffer pixels are composite color bytes laid out as LLLSSHHH:
// three bits of luminance, two of saturation, three of hue (chroma
// phase). Saturation zero suppresses the colorburst, giving an eight
// step grayscale ramp. The console generates color on the analog side,
// so the table is synthesized with an HSL conversion, one RGBA entry
// per possible byte.
var palette = buildPalette()

func buildPalette() [256][4]uint8 {
	var p [256][4]uint8
	for i := 0; i < 256; i++ {
		lum := float64(i>>5&0x07) / 7
		sat := float64(i>>3&0x03) / 3
		hue := float64(i&0x07) * 45

		var r, g, b uint8
		if i>>3&0x03 == 0 {
			gray := uint8(math.Round(lum * 255))
			r, g, b = gray, gray, gray
		} else {
			r, g, b = hslToRGB(hue, sat, lum)
		}
		p[i] = [4]uint8{r, g, b, 0xFF}
	}
	return p
}

// hslToRGB converts hue in degrees and saturation/lightness in [0,1]
// to 8-bit RGB channels.
func hslToRGB(h, s, l float64) (uint8, uint8, uint8) {
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	toByte := func(v float64) uint8 {
		return uint8(math.Round((v + m) * 255))
	}
	return toByte(r), toByte(g), toByte(b)
}
