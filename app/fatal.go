package app

import (
	"strings"
	"unicode/utf8"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"picospectrum/hal"
)

var fatalFont tinyfont.Fonter = &proggy.TinySZ8pt7b

const (
	fatalLineHeight = 12
	fatalBaseline   = 10
	fatalMargin     = 4
)

// Fatal reports err on the board and halts.
func Fatal(b hal.Board, err error) {
	ShowFatal(b, err)
	select {}
}

// ShowFatal logs err and paints it, white on red, onto the board display.
func ShowFatal(b hal.Board, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	if b == nil {
		return
	}
	if l := b.Logger(); l != nil {
		l.WriteLineString("FATAL: " + msg)
	}
	sink := b.Display()
	if sink == nil {
		return
	}
	drawFatal(sink, []string{"picospectrum halted", "", msg})
}

func drawFatal(sink hal.FrameSink, lines []string) {
	sink.FillScreen(hal.ColorRed)

	_, outbox := tinyfont.LineWidth(fatalFont, "0")
	charW := int(outbox)
	if charW <= 0 {
		return
	}
	cols := (sink.Width() - 2*fatalMargin) / charW
	if cols <= 0 {
		cols = 1
	}

	d := hal.Displayer{Sink: sink}
	fg := hal.RGBAFrom565(hal.ColorWhite)
	y := fatalMargin
	for _, line := range lines {
		if line == "" {
			y += fatalLineHeight
			continue
		}
		for len(line) > 0 {
			if y+fatalLineHeight > sink.Height() {
				return
			}
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(d, fatalFont, int16(fatalMargin), int16(y+fatalBaseline), chunk, fg)
			y += fatalLineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
