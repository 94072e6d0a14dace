// Package gesture turns raw resistive touch readings into discrete gestures.
package gesture

import (
	"time"

	"picospectrum/hal"
)

type Gesture uint8

const (
	None Gesture = iota
	Tap
	LongPress
	SwipeLeft
	SwipeRight
	SwipeUp
	SwipeDown
)

var gestureNames = [...]string{"none", "tap", "long-press", "swipe-left", "swipe-right", "swipe-up", "swipe-down"}

func (g Gesture) String() string {
	if int(g) < len(gestureNames) {
		return gestureNames[g]
	}
	return "unknown"
}

const (
	LongPressTime  = 1000 * time.Millisecond
	SwipeTimeout   = 500 * time.Millisecond
	SwipeThreshold = 50 // pixels
	MinPressure    = 400
)

// Point is a touch position in screen pixels.
type Point struct {
	X, Y int
}

// Recognizer classifies a touch when it is released. The zero value is
// ready to use.
type Recognizer struct {
	touching bool
	start    Point
	last     Point
	since    time.Time
}

// Update feeds one sample. It returns None except on the sample that ends
// a touch.
func (r *Recognizer) Update(now time.Time, p Point, touched bool) Gesture {
	switch {
	case touched && !r.touching:
		r.touching = true
		r.start, r.last = p, p
		r.since = now
		return None
	case touched:
		r.last = p
		return None
	case !r.touching:
		return None
	}

	r.touching = false
	d := now.Sub(r.since)
	dx := r.last.X - r.start.X
	dy := r.last.Y - r.start.Y
	moved := dx*dx+dy*dy >= SwipeThreshold*SwipeThreshold

	switch {
	case d > LongPressTime && !moved:
		return LongPress
	case d < SwipeTimeout && !moved:
		return Tap
	case d < SwipeTimeout:
		if abs(dx) > abs(dy) {
			if dx > 0 {
				return SwipeRight
			}
			return SwipeLeft
		}
		if dy > 0 {
			return SwipeDown
		}
		return SwipeUp
	}
	return None
}

// Touching reports whether a touch is in progress.
func (r *Recognizer) Touching() bool { return r.touching }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Calibration maps raw 12-bit panel readings onto the screen.
type Calibration struct {
	MinX, MaxX, MinY, MaxY int
	Width, Height          int
}

// DefaultCalibration covers the 200..3900 raw span on both axes.
func DefaultCalibration(width, height int) Calibration {
	return Calibration{MinX: 200, MaxX: 3900, MinY: 200, MaxY: 3900, Width: width, Height: height}
}

// Map converts a raw reading to a clamped screen point.
func (c Calibration) Map(rawX, rawY int) Point {
	return Point{
		X: scale(rawX, c.MinX, c.MaxX, c.Width),
		Y: scale(rawY, c.MinY, c.MaxY, c.Height),
	}
}

// Raw is the inverse of Map, used to feed screen positions through the
// panel path.
func (c Calibration) Raw(p Point) (x, y int) {
	unscale := func(v, lo, hi, size int) int {
		if size <= 0 {
			return lo
		}
		return lo + (v*(hi-lo)+size-1)/size
	}
	return unscale(p.X, c.MinX, c.MaxX, c.Width), unscale(p.Y, c.MinY, c.MaxY, c.Height)
}

func scale(v, lo, hi, size int) int {
	if hi <= lo || size <= 0 {
		return 0
	}
	s := (v - lo) * size / (hi - lo)
	if s < 0 {
		return 0
	}
	if s >= size {
		return size - 1
	}
	return s
}

// Source polls a touch panel and recognizes gestures on it.
type Source struct {
	touch hal.Touch
	clock hal.Clock
	cal   Calibration
	rec   Recognizer
	last  Point
}

func NewSource(t hal.Touch, clock hal.Clock, cal Calibration) *Source {
	return &Source{touch: t, clock: clock, cal: cal}
}

// Poll samples the panel once. Readings under MinPressure count as
// released.
func (s *Source) Poll() Gesture {
	if s.touch == nil {
		return None
	}
	tp, ok := s.touch.Read()
	touched := ok && tp.Z > MinPressure
	if touched {
		s.last = s.cal.Map(tp.X, tp.Y)
	}
	return s.rec.Update(s.clock.Now(), s.last, touched)
}

// Last returns the most recent touched position.
func (s *Source) Last() Point { return s.last }
