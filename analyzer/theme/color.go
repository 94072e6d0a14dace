package theme

import "picospectrum/hal"

// ReferenceGray is the colour of the radial ring and the mirror centre line.
var ReferenceGray = hal.RGB565(50, 50, 50)

func ramp(t float32) uint8 { return uint8(clamp01(t) * 255) }

// BarColor runs green to yellow to red, switching at 0.5.
func BarColor(a float32) uint16 {
	a = clamp01(a)
	if a < 0.5 {
		return hal.RGB565(ramp(a*2), 255, 0)
	}
	return hal.RGB565(255, ramp(1-(a-0.5)*2), 0)
}

// MirrorColor runs green to yellow to red, switching at 0.6.
func MirrorColor(a float32) uint16 {
	a = clamp01(a)
	if a < 0.6 {
		return hal.RGB565(ramp(a/0.6), 255, 0)
	}
	return hal.RGB565(255, ramp(1-(a-0.6)/0.4), 0)
}

// HeatColor is the five-step waterfall scale black, blue, cyan, green,
// yellow, red.
func HeatColor(a float32) uint16 {
	a = clamp01(a)
	switch {
	case a < 0.2:
		return hal.RGB565(0, 0, ramp(a/0.2))
	case a < 0.4:
		return hal.RGB565(0, ramp((a-0.2)/0.2), 255)
	case a < 0.6:
		return hal.RGB565(0, 255, ramp(1-(a-0.4)/0.2))
	case a < 0.8:
		return hal.RGB565(ramp((a-0.6)/0.2), 255, 0)
	default:
		return hal.RGB565(255, ramp(1-(a-0.8)/0.2), 0)
	}
}

// RadialColor is the four-step scale blue, cyan, green, yellow, red.
func RadialColor(a float32) uint16 {
	a = clamp01(a)
	switch {
	case a < 0.25:
		return hal.RGB565(0, ramp(a/0.25), 255)
	case a < 0.5:
		return hal.RGB565(0, 255, ramp(1-(a-0.25)/0.25))
	case a < 0.75:
		return hal.RGB565(ramp((a-0.5)/0.25), 255, 0)
	default:
		return hal.RGB565(255, ramp(1-(a-0.75)/0.25), 0)
	}
}
