//go:build tinygo && baremetal

package hal

import (
	"errors"
	"machine"

	"tinygo.org/x/drivers/ili9341"
)

// ili9341Sink streams address-window writes to the panel one row at a
// time.
type ili9341Sink struct {
	dev *ili9341.Device

	wx0, wy0, wx1, wy1 int
	row                []uint16
	n                  int
	y                  int
}

func newILI9341() (*ili9341Sink, error) {
	spi := machine.SPI0
	if err := spi.Configure(machine.SPIConfig{
		SCK:       machine.GP18,
		SDO:       machine.GP19,
		SDI:       machine.GP16,
		Frequency: 32_000_000,
	}); err != nil {
		return nil, err
	}
	dev := ili9341.NewSPI(spi, machine.GP20, machine.GP17, machine.GP21)
	dev.Configure(ili9341.Config{
		Width:    240,
		Height:   320,
		Rotation: ili9341.Rotation90,
	})
	w, h := dev.Size()
	if int(w) != ScreenWidth || int(h) != ScreenHeight {
		return nil, errors.New("ili9341: panel is not in landscape")
	}
	return &ili9341Sink{dev: dev, row: make([]uint16, ScreenWidth)}, nil
}

func (d *ili9341Sink) Width() int  { return ScreenWidth }
func (d *ili9341Sink) Height() int { return ScreenHeight }

func (d *ili9341Sink) SetAddrWindow(x0, y0, x1, y1 int) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	d.wx0 = clampInt(x0, 0, ScreenWidth-1)
	d.wy0 = clampInt(y0, 0, ScreenHeight-1)
	d.wx1 = clampInt(x1, 0, ScreenWidth-1)
	d.wy1 = clampInt(y1, 0, ScreenHeight-1)
	d.n = 0
	d.y = d.wy0
}

func (d *ili9341Sink) BeginWrite() { d.n = 0 }

func (d *ili9341Sink) WritePixel(c uint16) {
	w := d.wx1 - d.wx0 + 1
	if d.y > d.wy1 {
		d.y = d.wy0
	}
	d.row[d.n] = c
	d.n++
	if d.n == w {
		d.flush()
	}
}

func (d *ili9341Sink) WritePixels(px []uint16) {
	for _, c := range px {
		d.WritePixel(c)
	}
}

func (d *ili9341Sink) EndWrite() {
	if d.n > 0 {
		d.flush()
	}
}

func (d *ili9341Sink) flush() {
	d.dev.DrawRGBBitmap(int16(d.wx0), int16(d.y), d.row[:d.n], int16(d.n), 1)
	d.n = 0
	d.y++
}

func (d *ili9341Sink) FillRect(x, y, w, h int, c uint16) {
	x0, y0 := clampInt(x, 0, ScreenWidth), clampInt(y, 0, ScreenHeight)
	x1, y1 := clampInt(x+w, 0, ScreenWidth), clampInt(y+h, 0, ScreenHeight)
	if x1 <= x0 || y1 <= y0 {
		return
	}
	d.dev.FillRectangle(int16(x0), int16(y0), int16(x1-x0), int16(y1-y0), RGBAFrom565(c))
}

func (d *ili9341Sink) FillScreen(c uint16) {
	d.FillRect(0, 0, ScreenWidth, ScreenHeight, c)
}
