// Package animator smooths successive band vectors and keeps a per-band
// peak-hold trace.
package animator

import (
	"fmt"
	"time"

	"picospectrum/analyzer"
)

// HoldPolicy selects the unit of the peak-hold countdown.
type HoldPolicy uint8

const (
	HoldFrames HoldPolicy = iota
	HoldDuration
)

// PeakSource selects what the peak trace follows.
type PeakSource uint8

const (
	// PeakFromLevel tracks the smoothed level.
	PeakFromLevel PeakSource = iota
	// PeakFromInput tracks the raw target, so a one-frame spike registers at
	// full height even though the level only rises by AttackUp.
	PeakFromInput
)

type Config struct {
	AttackUp  float32
	DecayDown float32
	PeakDecay float32
	SnapFloor float32

	Policy       HoldPolicy
	HoldFrames   int
	HoldDuration time.Duration
	PeakSource   PeakSource
}

// DefaultConfig is the frame-counted hold used by the bar display.
func DefaultConfig() Config {
	return Config{
		AttackUp:     0.3,
		DecayDown:    0.85,
		PeakDecay:    0.99,
		SnapFloor:    0.01,
		Policy:       HoldFrames,
		HoldFrames:   20,
		HoldDuration: 1500 * time.Millisecond,
		PeakSource:   PeakFromLevel,
	}
}

// WallClockConfig holds peaks for 1.5 s and decays them by 0.95 per frame.
func WallClockConfig() Config {
	cfg := DefaultConfig()
	cfg.Policy = HoldDuration
	cfg.PeakDecay = 0.95
	return cfg
}

func (c Config) Validate() error {
	in01 := func(v float32) bool { return v > 0 && v <= 1 }
	switch {
	case !in01(c.AttackUp):
		return fmt.Errorf("animator: attack %v outside (0, 1]: %w", c.AttackUp, analyzer.ErrConfiguration)
	case !in01(c.DecayDown) || c.DecayDown == 1:
		return fmt.Errorf("animator: decay %v outside (0, 1): %w", c.DecayDown, analyzer.ErrConfiguration)
	case !in01(c.PeakDecay) || c.PeakDecay == 1:
		return fmt.Errorf("animator: peak decay %v outside (0, 1): %w", c.PeakDecay, analyzer.ErrConfiguration)
	case c.SnapFloor < 0 || c.SnapFloor >= 1:
		return fmt.Errorf("animator: snap floor %v outside [0, 1): %w", c.SnapFloor, analyzer.ErrConfiguration)
	case c.Policy == HoldFrames && c.HoldFrames < 0:
		return fmt.Errorf("animator: negative hold frames: %w", analyzer.ErrConfiguration)
	case c.Policy == HoldDuration && c.HoldDuration < 0:
		return fmt.Errorf("animator: negative hold duration: %w", analyzer.ErrConfiguration)
	case c.Policy > HoldDuration:
		return fmt.Errorf("animator: hold policy %d: %w", c.Policy, analyzer.ErrConfiguration)
	}
	return nil
}

// Animator holds level, peak and hold state for up to MaxBands bands.
type Animator struct {
	cfg Config
	n   int

	level     [analyzer.MaxBands]float32
	peak      [analyzer.MaxBands]float32
	holdLeft  [analyzer.MaxBands]int
	holdUntil [analyzer.MaxBands]time.Time
}

func New(cfg Config) (*Animator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Animator{cfg: cfg}, nil
}

func (a *Animator) Config() Config { return a.cfg }

// Reconfigure swaps the coefficients and clears all bands.
func (a *Animator) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.Reset()
	return nil
}

// Reset zeroes every band.
func (a *Animator) Reset() {
	a.n = 0
	a.level = [analyzer.MaxBands]float32{}
	a.peak = [analyzer.MaxBands]float32{}
	a.holdLeft = [analyzer.MaxBands]int{}
	a.holdUntil = [analyzer.MaxBands]time.Time{}
}

// Update advances one frame toward targets and returns the smoothed levels.
// Targets are clamped to [0, 1]; bands beyond MaxBands are ignored. A change
// in band count restarts from zero. The returned slice is reused.
func (a *Animator) Update(targets []float32, now time.Time) []float32 {
	n := min(len(targets), analyzer.MaxBands)
	if n != a.n {
		a.Reset()
		a.n = n
	}
	c := &a.cfg
	for b := 0; b < n; b++ {
		t := clamp01(targets[b])

		lv := a.level[b]
		if t > lv {
			lv += c.AttackUp * (t - lv)
		} else {
			lv *= c.DecayDown
		}
		if lv < c.SnapFloor {
			lv = 0
		}
		lv = clamp01(lv)
		a.level[b] = lv

		cand := lv
		if c.PeakSource == PeakFromInput && t > cand {
			cand = t
		}

		// Touching the peak again re-arms the hold, so a held input never
		// lets its own peak decay.
		pk := a.peak[b]
		if cand >= pk {
			pk = cand
			a.holdLeft[b] = c.HoldFrames
			a.holdUntil[b] = now.Add(c.HoldDuration)
		} else if a.holdExpired(b, now) {
			pk *= c.PeakDecay
		}
		if pk < c.SnapFloor {
			pk = 0
		}
		if pk < lv {
			pk = lv
		}
		a.peak[b] = clamp01(pk)
	}
	return a.level[:n]
}

// holdExpired counts the frame hold down and reports whether band b may
// decay this frame.
func (a *Animator) holdExpired(b int, now time.Time) bool {
	if a.cfg.Policy == HoldDuration {
		return !now.Before(a.holdUntil[b])
	}
	if a.holdLeft[b] > 0 {
		a.holdLeft[b]--
		return false
	}
	return true
}

// Levels returns the current smoothed levels.
func (a *Animator) Levels() []float32 { return a.level[:a.n] }

// Peaks returns the current peak trace.
func (a *Animator) Peaks() []float32 { return a.peak[:a.n] }

// Bands reports the band count of the last update.
func (a *Animator) Bands() int { return a.n }

func clamp01(v float32) float32 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
