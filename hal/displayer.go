package hal

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// Displayer lets tinygo.org/x/drivers consumers such as tinyfont draw onto a
// FrameSink. Pixels outside the sink are dropped.
type Displayer struct {
	Sink FrameSink
}

var _ drivers.Displayer = Displayer{}

func (d Displayer) Size() (x, y int16) {
	return int16(d.Sink.Width()), int16(d.Sink.Height())
}

func (d Displayer) SetPixel(x, y int16, c color.RGBA) {
	ix, iy := int(x), int(y)
	if ix < 0 || iy < 0 || ix >= d.Sink.Width() || iy >= d.Sink.Height() {
		return
	}
	d.Sink.FillRect(ix, iy, 1, 1, RGB565(c.R, c.G, c.B))
}

func (d Displayer) Display() error { return nil }
