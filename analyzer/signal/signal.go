// Package signal synthesizes 12-bit ADC sample streams: tones, logarithmic
// sweeps, noise and a music-like mix. The host board feeds them to the
// sampler in place of a microphone, and tests use them as fixtures.
package signal

import (
	"math"
	"math/rand"

	"picospectrum/analyzer"
)

const tau = 2 * math.Pi

// Source yields one sample offset from the DC bias per call, in ADC counts.
type Source interface {
	Next() float64
}

// Tone is a phase-continuous sinusoid.
type Tone struct {
	Amp   float64
	step  float64
	phase float64
}

func NewTone(freq, amp float64, rate float64) *Tone {
	return &Tone{Amp: amp, step: tau * freq / rate}
}

func (t *Tone) Next() float64 {
	v := t.Amp * math.Sin(t.phase)
	t.phase += t.step
	if t.phase >= tau {
		t.phase -= tau
	}
	return v
}

// Sweep glides logarithmically from lo to hi Hz over period seconds, then
// starts again.
type Sweep struct {
	Amp    float64
	lo, hi float64
	rate   float64
	n      int
	length int
	phase  float64
}

func NewSweep(lo, hi, period, amp, rate float64) *Sweep {
	length := int(period * rate)
	if length < 1 {
		length = 1
	}
	return &Sweep{Amp: amp, lo: lo, hi: hi, rate: rate, length: length}
}

// Freq returns the instantaneous frequency of the next sample.
func (s *Sweep) Freq() float64 {
	x := float64(s.n) / float64(s.length)
	return s.lo * math.Pow(s.hi/s.lo, x)
}

func (s *Sweep) Next() float64 {
	v := s.Amp * math.Sin(s.phase)
	s.phase = math.Mod(s.phase+tau*s.Freq()/s.rate, tau)
	s.n++
	if s.n >= s.length {
		s.n = 0
	}
	return v
}

// Noise is uniform white noise from a seeded generator.
type Noise struct {
	Amp float64
	rng *rand.Rand
}

func NewNoise(amp float64, seed int64) *Noise {
	return &Noise{Amp: amp, rng: rand.New(rand.NewSource(seed))}
}

func (n *Noise) Next() float64 {
	return n.Amp * (2*n.rng.Float64() - 1)
}

// Mix sums its sources.
type Mix []Source

func (m Mix) Next() float64 {
	var v float64
	for _, s := range m {
		v += s.Next()
	}
	return v
}

// Pulse gates a source with a decaying envelope retriggered every period
// seconds, like a kick drum.
type Pulse struct {
	Src    Source
	n      int
	length int
	decay  float64
}

func NewPulse(src Source, period, rate float64) *Pulse {
	length := int(period * rate)
	if length < 1 {
		length = 1
	}
	return &Pulse{Src: src, length: length, decay: 8 / float64(length)}
}

func (p *Pulse) Next() float64 {
	env := math.Exp(-p.decay * float64(p.n))
	p.n++
	if p.n >= p.length {
		p.n = 0
	}
	return env * p.Src.Next()
}

// Music returns a bass pulse, a held A-major chord and a noise floor.
func Music(rate float64, seed int64) Source {
	return Mix{
		NewPulse(NewTone(60, 900, rate), 0.5, rate),
		NewTone(440, 220, rate),
		NewTone(554.37, 180, rate),
		NewTone(659.25, 160, rate),
		NewPulse(NewTone(3520, 250, rate), 0.25, rate),
		NewNoise(40, seed),
	}
}

// Quantize converts a bias-relative value to a clamped 12-bit sample.
func Quantize(v float64) uint16 {
	s := math.Round(analyzer.BiasLevel + v)
	if s < 0 {
		return 0
	}
	if s > analyzer.SampleMask {
		return analyzer.SampleMask
	}
	return uint16(s)
}

// Fill writes len(dst) quantized samples from src.
func Fill(dst []uint16, src Source) {
	for i := range dst {
		dst[i] = Quantize(src.Next())
	}
}

// Inputs returns the synthetic board inputs: Music on channel 0 and a
// 100 Hz to 11 kHz sweep every 4 s on channel 1. Other channels have
// nothing connected and yield nil.
func Inputs(seed int64) func(channel uint8, rateHz uint32) func() uint16 {
	return func(channel uint8, rateHz uint32) func() uint16 {
		rate := float64(rateHz)
		var src Source
		switch channel {
		case 0:
			src = Music(rate, seed)
		case 1:
			src = NewSweep(100, 11000, 4, 1500, rate)
		default:
			return nil
		}
		return func() uint16 { return Quantize(src.Next()) }
	}
}
