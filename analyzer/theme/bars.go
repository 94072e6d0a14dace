package theme

import "picospectrum/hal"

const (
	barMargin    = 10
	barSpacing   = 2
	barSegment   = 10
	barPeakFloor = 0.05
)

// BarsTheme draws one vertical column per band, bottom up, in 10-pixel
// gradient segments with a 2-pixel peak marker. Only the column area above
// each bar is cleared per frame.
type BarsTheme struct{}

func (t *BarsTheme) Init() {}

// layout returns the column width, the usable height and the baseline for
// nb bands on s.
func (t *BarsTheme) layout(s hal.FrameSink, nb int) (bw, maxH, bottom int) {
	total := s.Width() - 2*barMargin
	bw = (total - (nb-1)*barSpacing) / nb
	maxH = s.Height() - 40
	bottom = s.Height() - barMargin
	return bw, maxH, bottom
}

func (t *BarsTheme) Render(f Frame, s hal.FrameSink) {
	nb := f.bands()
	if nb == 0 {
		return
	}
	bw, maxH, bottom := t.layout(s, nb)
	if bw < 1 || maxH < 1 {
		return
	}
	top := bottom - maxH

	for b := 0; b < nb; b++ {
		lv := f.level(b)
		x := barMargin + b*(bw+barSpacing)
		barH := int(lv * float32(maxH))
		barY := bottom - barH

		if barY > top {
			s.FillRect(x, top, bw, barY-top, Background)
		}

		if barH > 0 {
			segs := (barH + barSegment - 1) / barSegment
			for seg := 0; seg < segs; seg++ {
				y := bottom - (seg+1)*barSegment
				h := barSegment
				if seg == segs-1 {
					h = barH - seg*barSegment
					y = barY
				}
				amp := float32(seg+1) / float32(segs) * lv
				s.FillRect(x, y, bw, h, BarColor(amp))
			}
		}

		if pk := f.peak(b); pk > barPeakFloor {
			y := bottom - int(pk*float32(maxH))
			s.FillRect(x, y, bw, 2, BarColor(pk))
		}
	}
}

func (t *BarsTheme) Clear(s hal.FrameSink) {
	s.FillScreen(Background)
	t.Init()
}
