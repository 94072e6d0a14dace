// Package theme renders band vectors onto a hal.FrameSink. The four
// visualizations are a closed set selected through Manager.
package theme

import (
	"fmt"
	"strings"
	"time"

	"picospectrum/analyzer"
	"picospectrum/analyzer/animator"
	"picospectrum/hal"
)

// Kind names a visualization.
type Kind uint8

const (
	Bars Kind = iota
	Waterfall
	Radial
	Mirror

	kindCount
)

// Count is the number of visualizations.
const Count = int(kindCount)

var kindNames = [kindCount]string{
	Bars:      "Classic Bars",
	Waterfall: "Waterfall",
	Radial:    "Radial",
	Mirror:    "Mirror Mode",
}

var kindKeys = [kindCount]string{"bars", "waterfall", "radial", "mirror"}

// String returns the display name shown in the overlay.
func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Key returns the short lower-case name accepted by ParseKind.
func (k Kind) Key() string {
	if k >= kindCount {
		return ""
	}
	return kindKeys[k]
}

func (k Kind) Valid() bool { return k < kindCount }

// Next and Prev step through the kinds cyclically.
func (k Kind) Next() Kind { return (k + 1) % kindCount }

func (k Kind) Prev() Kind {
	if k == 0 || k >= kindCount {
		return kindCount - 1
	}
	return k - 1
}

// ParseKind accepts either the short key or the display name.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	for k := Kind(0); k < kindCount; k++ {
		if strings.EqualFold(s, kindKeys[k]) || strings.EqualFold(s, kindNames[k]) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("theme: unknown theme %q: %w", s, analyzer.ErrConfiguration)
}

// AnimatorConfig applies the peak-hold policy of k to base. Mirror holds on
// the wall clock for 1.5 s and decays by 0.95; the others hold for 20
// frames and decay by 0.99.
func (k Kind) AnimatorConfig(base animator.Config) animator.Config {
	cfg := base
	if k == Mirror {
		cfg.Policy = animator.HoldDuration
		cfg.HoldDuration = 1500 * time.Millisecond
		cfg.PeakDecay = 0.95
		return cfg
	}
	cfg.Policy = animator.HoldFrames
	cfg.HoldFrames = 20
	cfg.PeakDecay = 0.99
	return cfg
}

// Frame is one render input. Peaks may be shorter than Levels; missing
// peaks read as zero.
type Frame struct {
	Levels []float32
	Peaks  []float32
}

func (f Frame) bands() int { return min(len(f.Levels), analyzer.MaxBands) }

func (f Frame) level(b int) float32 { return clamp01(f.Levels[b]) }

func (f Frame) peak(b int) float32 {
	if b >= len(f.Peaks) {
		return 0
	}
	return clamp01(f.Peaks[b])
}

// Background is the colour every theme clears to.
const Background = hal.ColorBlack

func clamp01(v float32) float32 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
