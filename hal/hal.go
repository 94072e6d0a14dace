package hal

import (
	"context"
	"errors"
	"time"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// FrameSink is the pixel interface of an RGB565 panel.
//
// SetAddrWindow takes inclusive corners. Pixels written between BeginWrite and
// EndWrite fill the window left to right, top to bottom. Width and Height
// reflect the active rotation. A FrameSink is not safe for concurrent use.
type FrameSink interface {
	Width() int
	Height() int
	SetAddrWindow(x0, y0, x1, y1 int)
	BeginWrite()
	WritePixel(c uint16)
	WritePixels(px []uint16)
	EndWrite()
	FillRect(x, y, w, h int, c uint16)
	FillScreen(c uint16)
}

// ADC is a single-channel 12-bit converter.
type ADC interface {
	// Configure selects the input channel and the intended conversion rate.
	Configure(channel uint8, rateHz uint32) error
	// Read performs one conversion. Only the low 12 bits are meaningful.
	Read() uint16
	// SetRunning enables or disables free-running conversion.
	SetRunning(on bool)
}

// PeriodicTimer calls fn once per interval until stopped.
//
// Deadlines are absolute (start + k*interval) so late wake-ups do not
// accumulate drift. Stop returns only after the last callback has finished.
type PeriodicTimer interface {
	Start(interval time.Duration, fn func()) error
	Stop()
}

// Clock is the frame-pacing time source.
type Clock interface {
	Now() time.Time
	SleepUntil(ctx context.Context, t time.Time) error
}

// TouchPoint is a raw panel reading. X and Y are 12-bit panel units, Z is
// the pressure estimate.
type TouchPoint struct {
	X, Y, Z int
}

// Touch provides raw resistive panel readings.
type Touch interface {
	// Read returns the current point and whether the pen-down line is active.
	Read() (TouchPoint, bool)
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyTab
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Board is the only contact point between the analyzer and the hardware.
type Board interface {
	Logger() Logger
	Display() FrameSink
	ADC() ADC
	Timer() PeriodicTimer
	Clock() Clock
	Touch() Touch
	Keyboard() Keyboard
	GPIO() GPIO
}

// Screen geometry of the analyzer panel in landscape.
const (
	ScreenWidth  = 320
	ScreenHeight = 240
)

// Pin names used by the analyzer board.
const (
	PinInputSelect = "GP10"
)
