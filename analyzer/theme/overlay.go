package theme

import (
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"picospectrum/hal"
)

const (
	overlayPadding    = 10
	overlayTextHeight = 16
	overlayBaseline   = 12
)

var overlayFont tinyfont.Fonter = &proggy.TinySZ8pt7b

type rect struct {
	x, y, w, h int
}

// overlayBox centres the name box horizontally, 40 pixels above the bottom
// edge.
func overlayBox(s hal.FrameSink, name string) (box rect, textX, textY int) {
	_, outbox := tinyfont.LineWidth(overlayFont, name)
	tw := int(outbox)
	textX = (s.Width() - tw) / 2
	textY = s.Height() - 40
	box = rect{
		x: textX - overlayPadding,
		y: textY - overlayPadding,
		w: tw + 2*overlayPadding,
		h: overlayTextHeight + 2*overlayPadding,
	}
	return box, textX, textY
}

// drawOverlay paints name in a black box with a white border and returns
// the box.
func drawOverlay(s hal.FrameSink, name string) rect {
	box, tx, ty := overlayBox(s, name)
	s.FillRect(box.x, box.y, box.w, box.h, Background)
	drawRect(s, box.x, box.y, box.w, box.h, hal.ColorWhite)
	tinyfont.WriteLine(hal.Displayer{Sink: s}, overlayFont, int16(tx), int16(ty+overlayBaseline), name, hal.RGBAFrom565(hal.ColorWhite))
	return box
}
