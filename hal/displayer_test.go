package hal

import (
	"image/color"
	"testing"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

func TestDisplayerClipsAndConverts(t *testing.T) {
	d := NewMemoryDisplay(4, 3)
	td := Displayer{Sink: d}
	if w, h := td.Size(); w != 4 || h != 3 {
		t.Fatalf("Size() = %d, %d", w, h)
	}
	td.SetPixel(1, 2, color.RGBA{R: 0xFF, A: 0xFF})
	td.SetPixel(-1, 0, color.RGBA{G: 0xFF, A: 0xFF})
	td.SetPixel(4, 0, color.RGBA{G: 0xFF, A: 0xFF})
	if got := d.Pixel(1, 2); got != ColorRed {
		t.Fatalf("pixel = %#04x, want %#04x", got, ColorRed)
	}
	if n := d.PixelWrites(); n != 1 {
		t.Fatalf("%d pixel writes, want 1", n)
	}
	if err := td.Display(); err != nil {
		t.Fatalf("Display: %v", err)
	}
}

func TestDisplayerDrawsText(t *testing.T) {
	d := NewMemoryDisplay(64, 16)
	tinyfont.WriteLine(Displayer{Sink: d}, &proggy.TinySZ8pt7b, 2, 12, "Hi", RGBAFrom565(ColorWhite))
	lit := 0
	for y := 0; y < 16; y++ {
		for x := 0; x < 64; x++ {
			switch d.Pixel(x, y) {
			case ColorWhite:
				lit++
			case ColorBlack:
			default:
				t.Fatalf("pixel (%d,%d) = %#04x", x, y, d.Pixel(x, y))
			}
		}
	}
	if lit == 0 {
		t.Fatal("no glyph pixels drawn")
	}
}

func TestRGBAFrom565(t *testing.T) {
	if c := RGBAFrom565(ColorWhite); c != (color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}) {
		t.Fatalf("white = %v", c)
	}
	if c := RGBAFrom565(ColorRed); c != (color.RGBA{R: 0xFF, A: 0xFF}) {
		t.Fatalf("red = %v", c)
	}
}
