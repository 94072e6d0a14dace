package theme

import (
	"math"

	"picospectrum/hal"
)

func drawPixel(s hal.FrameSink, x, y int, c uint16) {
	if x < 0 || y < 0 || x >= s.Width() || y >= s.Height() {
		return
	}
	s.FillRect(x, y, 1, 1, c)
}

// drawLine is Bresenham's line, endpoints included, clipped per pixel.
func drawLine(s hal.FrameSink, x0, y0, x1, y1 int, c uint16) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		drawPixel(s, x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawThickLine draws thickness parallel lines offset along the normal of
// the segment.
func drawThickLine(s hal.FrameSink, x0, y0, x1, y1 int, c uint16, thickness int) {
	if thickness <= 1 {
		drawLine(s, x0, y0, x1, y1, c)
		return
	}
	perp := math.Atan2(float64(y1-y0), float64(x1-x0)) + math.Pi/2
	cos, sin := math.Cos(perp), math.Sin(perp)
	for o := -(thickness - 1) / 2; o <= thickness/2; o++ {
		dx := int(float64(o) * cos)
		dy := int(float64(o) * sin)
		drawLine(s, x0+dx, y0+dy, x1+dx, y1+dy, c)
	}
}

// drawRect outlines a w x h rectangle one pixel wide.
func drawRect(s hal.FrameSink, x, y, w, h int, c uint16) {
	if w <= 0 || h <= 0 {
		return
	}
	s.FillRect(x, y, w, 1, c)
	s.FillRect(x, y+h-1, w, 1, c)
	s.FillRect(x, y, 1, h, c)
	s.FillRect(x+w-1, y, 1, h, c)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
