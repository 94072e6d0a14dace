package theme

import (
	"math"

	"picospectrum/hal"
)

const (
	radialMinRadius = 30
	radialMaxRadius = 110
)

// RadialTheme draws bands as spokes around the screen centre. The frame is
// cleared on every render.
type RadialTheme struct{}

func (t *RadialTheme) Init() {}

func radialThickness(nb int) int {
	switch {
	case nb <= 8:
		return 5
	case nb <= 16:
		return 3
	default:
		return 2
	}
}

func (t *RadialTheme) Render(f Frame, s hal.FrameSink) {
	nb := f.bands()
	if nb == 0 {
		return
	}
	cx, cy := s.Width()/2, s.Height()/2
	s.FillScreen(Background)

	for r := radialMinRadius - 2; r <= radialMinRadius; r++ {
		for deg := 0; deg < 360; deg += 2 {
			rad := float64(deg) * math.Pi / 180
			x := cx + int(float64(r)*math.Cos(rad))
			y := cy + int(float64(r)*math.Sin(rad))
			drawPixel(s, x, y, ReferenceGray)
		}
	}

	thick := radialThickness(nb)
	for b := 0; b < nb; b++ {
		lv := f.level(b)
		length := float64(lv) * (radialMaxRadius - radialMinRadius)
		if length < 1 {
			continue
		}
		angle := 2 * math.Pi * float64(b) / float64(nb)
		cos, sin := math.Cos(angle), math.Sin(angle)
		x0 := cx + int(radialMinRadius*cos)
		y0 := cy + int(radialMinRadius*sin)
		x1 := cx + int((radialMinRadius+length)*cos)
		y1 := cy + int((radialMinRadius+length)*sin)
		drawThickLine(s, x0, y0, x1, y1, RadialColor(lv), thick)
	}
}

func (t *RadialTheme) Clear(s hal.FrameSink) {
	s.FillScreen(Background)
	t.Init()
}
