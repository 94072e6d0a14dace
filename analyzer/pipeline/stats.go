package pipeline

import (
	"fmt"
	"time"
)

// Stats summarizes the frames rendered since Since.
type Stats struct {
	Since       time.Time
	Window      time.Duration
	Frames      uint64
	FFTRuns     uint64
	Underruns   uint64
	FFTFailures uint64
	MinFrame    time.Duration
	MaxFrame    time.Duration
	TotalFrame  time.Duration
	RingFill    int
}

func (s *Stats) record(d time.Duration) {
	if s.Frames == 0 || d < s.MinFrame {
		s.MinFrame = d
	}
	if d > s.MaxFrame {
		s.MaxFrame = d
	}
	s.TotalFrame += d
	s.Frames++
}

func (s Stats) AvgFrame() time.Duration {
	if s.Frames == 0 {
		return 0
	}
	return s.TotalFrame / time.Duration(s.Frames)
}

func (s Stats) FPS() float64 {
	if s.Window <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Window.Seconds()
}

func (s Stats) String() string {
	return fmt.Sprintf("frames=%d fps=%.1f frame avg=%v min=%v max=%v ring=%d underruns=%d fft=%d failures=%d",
		s.Frames, s.FPS(), s.AvgFrame(), s.MinFrame, s.MaxFrame, s.RingFill, s.Underruns, s.FFTRuns, s.FFTFailures)
}

// TakeStats returns the counters accumulated since the last call and starts
// a new window at now.
func (p *Pipeline) TakeStats(now time.Time) Stats {
	s := p.stats
	s.Window = now.Sub(s.Since)
	s.RingFill = p.src.Available()
	p.stats = Stats{Since: now}
	return s
}
