package hal

import "image/color"

// RGB565 packs an 8-bit-per-channel colour into rrrrrggggggbbbbb.
func RGB565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

// RGB888From565 expands an RGB565 pixel.
func RGB888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}

// RGBAFrom565 expands an RGB565 pixel to an opaque color.RGBA.
func RGBAFrom565(p uint16) color.RGBA {
	r, g, b := RGB888From565(p)
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// Panel colours as the ILI9341 reference code names them.
const (
	ColorBlack uint16 = 0x0000
	ColorWhite uint16 = 0xFFFF
	ColorRed   uint16 = 0xF800
)
