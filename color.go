package bctex

import "image/color"

// Color565 is a packed 16-bit color, [R:5][G:6][B:5] from high to low bits.
type Color565 uint16

// Color888 is an RGB color with 8 bits per channel.
type Color888 struct {
	R, G, B uint8
}

// Channels returns the raw 5-bit red, 6-bit green and 5-bit blue fields.
func (c Color565) Channels() (r, g, b uint8) {
	return uint8(c >> 11), uint8((c >> 5) & 0x3f), uint8(c & 0x1f)
}

// Expand converts c to 8 bits per channel, rounding to nearest.
func (c Color565) Expand() Color888 {
	r, g, b := c.Channels()
	return Color888{R: expand5(r), G: expand6(g), B: expand5(b)}
}

// expand5 maps a 5-bit value onto 0..255; equal to round(v*255/31).
func expand5(v uint8) uint8 {
	return uint8((uint16(v)*527 + 23) >> 6)
}

// expand6 maps a 6-bit value onto 0..255; equal to round(v*255/63).
func expand6(v uint8) uint8 {
	return uint8((uint16(v)*259 + 33) >> 6)
}

// RGBA implements color.Color. Color888 is always opaque.
func (c Color888) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// lerpThird returns (2*a + b) / 3 per channel, truncated.
func lerpThird(a, b Color888) Color888 {
	return Color888{
		R: uint8((2*uint16(a.R) + uint16(b.R)) / 3),
		G: uint8((2*uint16(a.G) + uint16(b.G)) / 3),
		B: uint8((2*uint16(a.B) + uint16(b.B)) / 3),
	}
}

// average returns (a + b) / 2 per channel, truncated.
func average(a, b Color888) Color888 {
	return Color888{
		R: uint8((uint16(a.R) + uint16(b.R)) / 2),
		G: uint8((uint16(a.G) + uint16(b.G)) / 2),
		B: uint8((uint16(a.B) + uint16(b.B)) / 2),
	}
}
