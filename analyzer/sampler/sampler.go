// Package sampler drives an ADC from a periodic timer and queues the
// conversions in a ring.
package sampler

import (
	"fmt"
	"time"

	"picospectrum/analyzer"
	"picospectrum/analyzer/ring"
	"picospectrum/hal"
	"picospectrum/internal/log"
)

const (
	MaxChannel = 3
	MaxRate    = 500_000
)

// State is the sampler lifecycle position.
type State uint8

const (
	StateUninit State = iota
	StateConfigured
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateUninit:
		return "uninit"
	case StateConfigured:
		return "configured"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// Sampler owns the producer side of a ring. Methods must be called from the
// processing context; only the timer callback runs in the acquisition
// context.
type Sampler struct {
	adc   hal.ADC
	timer hal.PeriodicTimer
	ring  *ring.Ring
	log   *log.Logger

	state   State
	channel uint8
	rate    uint32
}

// New returns an uninitialized sampler writing into r.
func New(adc hal.ADC, timer hal.PeriodicTimer, r *ring.Ring, l *log.Logger) *Sampler {
	return &Sampler{adc: adc, timer: timer, ring: r, log: l.With("sampler")}
}

// Init selects the channel and the rate, clears the ring and leaves the
// sampler stopped. A running sampler is stopped first.
func (s *Sampler) Init(channel uint8, rateHz uint32) error {
	if channel > MaxChannel {
		return fmt.Errorf("sampler: channel %d out of range 0..%d: %w", channel, MaxChannel, analyzer.ErrConfiguration)
	}
	if rateHz == 0 || rateHz > MaxRate {
		return fmt.Errorf("sampler: rate %d Hz out of range (0, %d]: %w", rateHz, MaxRate, analyzer.ErrConfiguration)
	}
	if s.adc == nil || s.timer == nil || s.ring == nil {
		return fmt.Errorf("sampler: missing adc, timer or ring: %w", analyzer.ErrConfiguration)
	}
	s.Stop()

	if err := s.adc.Configure(channel, rateHz); err != nil {
		return fmt.Errorf("sampler: adc channel %d: %w", channel, err)
	}
	s.ring.Reset()
	s.channel = channel
	s.rate = rateHz
	s.state = StateConfigured
	s.log.Debugf("initialized CH%d @ %d Hz", channel, rateHz)
	return nil
}

// Interval returns the conversion period, floor(1e6/rate) microseconds.
func (s *Sampler) Interval() time.Duration {
	if s.rate == 0 {
		return 0
	}
	return time.Duration(1_000_000/s.rate) * time.Microsecond
}

// Start schedules conversions. It is a no-op while running.
func (s *Sampler) Start() error {
	switch s.state {
	case StateRunning:
		return nil
	case StateUninit:
		return fmt.Errorf("sampler: start before init: %w", analyzer.ErrConfiguration)
	}
	s.adc.SetRunning(true)
	if err := s.timer.Start(s.Interval(), s.sample); err != nil {
		s.adc.SetRunning(false)
		return fmt.Errorf("sampler: timer: %w", err)
	}
	s.state = StateRunning
	s.log.Debugf("started, interval %v", s.Interval())
	return nil
}

// sample is the timer callback: one conversion, one push.
func (s *Sampler) sample() {
	s.ring.Push(s.adc.Read() & analyzer.SampleMask)
}

// Stop cancels the timer and waits for an in-flight callback. It is a no-op
// unless running.
func (s *Sampler) Stop() {
	if s.state != StateRunning {
		return
	}
	s.timer.Stop()
	s.adc.SetRunning(false)
	s.state = StateConfigured
	s.log.Debugf("stopped")
}

// Available reports queued samples.
func (s *Sampler) Available() int { return s.ring.Available() }

// Read drains up to len(dst) samples.
func (s *Sampler) Read(dst []uint16) int {
	if len(dst) == 0 {
		return 0
	}
	return s.ring.ReadInto(dst)
}

func (s *Sampler) Rate() uint32   { return s.rate }
func (s *Sampler) Channel() uint8 { return s.channel }
func (s *Sampler) State() State   { return s.state }
