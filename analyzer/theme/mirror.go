package theme

import "picospectrum/hal"

const (
	mirrorMaxWidth = 20
	mirrorSpacing  = 2
)

// MirrorTheme draws bars growing up and down from the horizontal centre
// line with white peak markers on both sides.
type MirrorTheme struct {
	col [mirrorMaxWidth]uint16
}

func (t *MirrorTheme) Init() {}

// layout returns the bar width and the x of the first bar.
func (t *MirrorTheme) layout(s hal.FrameSink, nb int) (bw, x0 int) {
	w := s.Width()
	bw = min(w/nb, mirrorMaxWidth)
	if bw > mirrorSpacing {
		bw -= mirrorSpacing
	}
	x0 = (w - (bw+mirrorSpacing)*nb) / 2
	return bw, x0
}

func (t *MirrorTheme) Render(f Frame, s hal.FrameSink) {
	nb := f.bands()
	if nb == 0 {
		return
	}
	bw, x0 := t.layout(s, nb)
	cy := s.Height() / 2
	maxH := s.Height()/2 - 5
	if bw < 1 || maxH < 1 {
		return
	}

	s.FillScreen(Background)
	s.FillRect(0, cy-1, s.Width(), 2, ReferenceGray)

	px := t.col[:bw]
	for b := 0; b < nb; b++ {
		x := x0 + b*(bw+mirrorSpacing)
		barH := int(f.level(b) * float32(maxH))
		peakH := int(f.peak(b) * float32(maxH))

		if barH > 0 {
			// Upper half, streamed top down: row r is distance barH-1-r.
			s.SetAddrWindow(x, cy-barH, x+bw-1, cy-1)
			s.BeginWrite()
			for r := 0; r < barH; r++ {
				t.fill(px, barH-1-r, maxH)
				s.WritePixels(px)
			}
			s.EndWrite()

			s.SetAddrWindow(x, cy, x+bw-1, cy+barH-1)
			s.BeginWrite()
			for r := 0; r < barH; r++ {
				t.fill(px, r, maxH)
				s.WritePixels(px)
			}
			s.EndWrite()
		}

		if peakH > barH && peakH > 2 {
			s.FillRect(x, cy-peakH-1, bw, 2, hal.ColorWhite)
			s.FillRect(x, cy+peakH-1, bw, 2, hal.ColorWhite)
		}
	}
}

func (t *MirrorTheme) fill(px []uint16, dist, maxH int) {
	c := MirrorColor(float32(dist) / float32(maxH))
	for i := range px {
		px[i] = c
	}
}

func (t *MirrorTheme) Clear(s hal.FrameSink) {
	s.FillScreen(Background)
	t.Init()
}
