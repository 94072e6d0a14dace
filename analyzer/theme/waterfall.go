package theme

import (
	"picospectrum/analyzer"
	"picospectrum/hal"
)

// HistoryRows is the depth of the waterfall history.
const HistoryRows = 200

// WaterfallTheme keeps HistoryRows past frames as colour cells and redraws
// them oldest first from the top of the screen, one row per line.
type WaterfallTheme struct {
	history [HistoryRows][analyzer.MaxBands]uint16
	head    int // next row to write; also the oldest row
	nb      int
	line    []uint16
}

func (t *WaterfallTheme) Init() {
	t.history = [HistoryRows][analyzer.MaxBands]uint16{}
	t.head = 0
	t.nb = 0
}

func (t *WaterfallTheme) Render(f Frame, s hal.FrameSink) {
	nb := f.bands()
	if nb == 0 {
		return
	}
	if nb != t.nb {
		t.Init()
		t.nb = nb
	}

	row := &t.history[t.head]
	for b := 0; b < nb; b++ {
		row[b] = HeatColor(f.level(b))
	}
	t.head = (t.head + 1) % HistoryRows

	w := s.Width()
	if w <= 0 {
		return
	}
	if len(t.line) != w {
		t.line = make([]uint16, w)
	}
	bw := w / nb
	rows := min(HistoryRows, s.Height())
	for y := 0; y < rows; y++ {
		cells := &t.history[(t.head+y)%HistoryRows]
		x := 0
		for b := 0; b < nb; b++ {
			for i := 0; i < bw; i++ {
				t.line[x] = cells[b]
				x++
			}
		}
		for ; x < w; x++ {
			t.line[x] = Background
		}
		s.SetAddrWindow(0, y, w-1, y)
		s.BeginWrite()
		s.WritePixels(t.line)
		s.EndWrite()
	}
}

// Row returns the colour cells of the row drawn at screen line y, where 0
// is the oldest.
func (t *WaterfallTheme) Row(y int) []uint16 {
	if y < 0 || y >= HistoryRows {
		return nil
	}
	return t.history[(t.head+y)%HistoryRows][:t.nb]
}

func (t *WaterfallTheme) Clear(s hal.FrameSink) {
	s.FillScreen(Background)
	t.Init()
}
