// Package pipeline runs the processing loop: drain a sample window, compute
// bands, animate them and render the current theme at a fixed frame rate.
package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"picospectrum/analyzer"
	"picospectrum/analyzer/animator"
	"picospectrum/analyzer/fft"
	"picospectrum/analyzer/theme"
	"picospectrum/hal"
	"picospectrum/internal/log"
)

// DefaultFPS is the reference frame rate.
const DefaultFPS = 30

// Source yields acquired samples. *sampler.Sampler satisfies it.
type Source interface {
	Available() int
	Read(dst []uint16) int
}

type Config struct {
	Bands int
	FPS   int
	// Frames stops Run after that many frames; 0 runs until stopped.
	Frames int
}

func DefaultConfig() Config {
	return Config{Bands: 16, FPS: DefaultFPS}
}

func (c Config) Validate() error {
	if c.Bands < 1 || c.Bands > analyzer.MaxBands {
		return fmt.Errorf("pipeline: bands %d out of range 1..%d: %w", c.Bands, analyzer.MaxBands, analyzer.ErrConfiguration)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("pipeline: fps %d must be positive: %w", c.FPS, analyzer.ErrConfiguration)
	}
	if c.Frames < 0 {
		return fmt.Errorf("pipeline: frame limit %d is negative: %w", c.Frames, analyzer.ErrConfiguration)
	}
	return nil
}

// Period is the time between frames.
func (c Config) Period() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// Pipeline owns the processing context. None of its methods may be called
// from the acquisition context.
type Pipeline struct {
	cfg    Config
	src    Source
	fft    *fft.Processor
	anim   *animator.Animator
	themes *theme.Manager
	clock  hal.Clock
	log    *log.Logger

	window []uint16
	raw    [analyzer.MaxBands]float32

	running  atomic.Bool
	stopped  atomic.Bool
	rendered int
	stats    Stats

	// BeforeFrame, when set, runs at the start of every frame with the
	// frame's timestamp. The app polls input and logs stats from it.
	BeforeFrame func(now time.Time)
}

func New(cfg Config, src Source, proc *fft.Processor, anim *animator.Animator, themes *theme.Manager, clock hal.Clock, l *log.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil || proc == nil || anim == nil || themes == nil || clock == nil {
		return nil, fmt.Errorf("pipeline: missing component: %w", analyzer.ErrConfiguration)
	}
	p := &Pipeline{
		cfg:    cfg,
		src:    src,
		fft:    proc,
		anim:   anim,
		themes: themes,
		clock:  clock,
		log:    l.With("pipeline"),
		window: make([]uint16, proc.Size()),
	}
	p.stats.Since = clock.Now()
	return p, nil
}

func (p *Pipeline) Config() Config { return p.cfg }

// Bands returns the raw band vector of the last successful FFT.
func (p *Pipeline) Bands() []float32 { return p.raw[:p.cfg.Bands] }

// Frame renders one frame stamped now. When fewer than one window of
// samples is buffered the previous bands are reused.
func (p *Pipeline) Frame(now time.Time) {
	if p.BeforeFrame != nil {
		p.BeforeFrame(now)
	}
	bands := p.raw[:p.cfg.Bands]

	if p.src.Available() >= len(p.window) && p.src.Read(p.window) == len(p.window) {
		if err := p.fft.Compute(p.window, bands); err != nil {
			p.stats.FFTFailures++
			p.log.Debugf("fft: %v", err)
		} else {
			p.stats.FFTRuns++
		}
	} else {
		p.stats.Underruns++
	}

	levels := p.anim.Update(bands, now)
	if err := p.themes.Render(theme.Frame{Levels: levels, Peaks: p.anim.Peaks()}); err != nil {
		p.log.Debugf("render: %v", err)
	}
	p.themes.UpdateOverlay(now)

	p.stats.record(p.clock.Now().Sub(now))
	p.rendered++
}

// Run renders frames until ctx ends, Stop is called or the frame limit is
// reached. A frame that finishes after its successor was due starts the
// next one immediately and drops the deficit.
func (p *Pipeline) Run(ctx context.Context) error {
	p.running.Store(true)
	defer p.running.Store(false)

	period := p.cfg.Period()
	next := p.clock.Now()
	p.log.Infof("running %d bands at %d fps", p.cfg.Bands, p.cfg.FPS)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if p.stopped.Load() {
			return nil
		}
		p.Frame(p.clock.Now())
		if p.cfg.Frames > 0 && p.rendered >= p.cfg.Frames {
			return nil
		}

		next = next.Add(period)
		if now := p.clock.Now(); now.After(next) {
			next = now
			continue
		}
		if err := p.clock.SleepUntil(ctx, next); err != nil {
			return err
		}
	}
}

// Stop asks Run to return after the current frame. It may be called from
// any goroutine and is final: a Run that starts afterwards returns without
// rendering.
func (p *Pipeline) Stop() { p.stopped.Store(true) }

// Running reports whether Run is executing.
func (p *Pipeline) Running() bool { return p.running.Load() }

// Rendered is the number of frames drawn since New.
func (p *Pipeline) Rendered() int { return p.rendered }
