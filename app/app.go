// Package app wires a hal.Board to the analyzer: sampler, FFT, animator,
// themes and the frame loop, plus the touch and keyboard controls.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"picospectrum/analyzer/animator"
	"picospectrum/analyzer/fft"
	"picospectrum/analyzer/gesture"
	"picospectrum/analyzer/pipeline"
	"picospectrum/analyzer/ring"
	"picospectrum/analyzer/sampler"
	"picospectrum/analyzer/theme"
	"picospectrum/hal"
	"picospectrum/internal/log"
)

// System is a wired analyzer. Everything except the sampler's timer
// callback runs on the goroutine that calls Run.
type System struct {
	board hal.Board
	cfg   Config
	root  *log.Logger
	log   *log.Logger

	sampler  *sampler.Sampler
	fft      *fft.Processor
	anim     *animator.Animator
	themes   *theme.Manager
	pipe     *pipeline.Pipeline
	gestures *gesture.Source
	keys     <-chan hal.KeyEvent
	selPin   hal.GPIOPin

	input     Input
	lastStats time.Time
}

// New builds the analyzer on b. Every error wraps analyzer.ErrConfiguration
// or comes from the board; the caller must not continue after one.
func New(b hal.Board, cfg Config) (*System, error) {
	if b == nil {
		return nil, fmt.Errorf("app: nil board")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	root := log.New(b.Logger())
	root.SetLevel(cfg.LogLevel)
	s := &System{board: b, cfg: cfg, root: root, log: root.With("app"), input: cfg.Input}

	r, err := ring.New(cfg.RingCapacity)
	if err != nil {
		return nil, err
	}
	s.sampler = sampler.New(b.ADC(), b.Timer(), r, root)

	if s.fft, err = fft.New(cfg.fftConfig(), root); err != nil {
		return nil, err
	}
	s.logBandTable()

	if s.anim, err = animator.New(cfg.Animator); err != nil {
		return nil, err
	}
	sink := b.Display()
	if s.themes, err = theme.NewManager(sink, s.anim, root); err != nil {
		return nil, err
	}
	clock := b.Clock()
	s.themes.Set(cfg.Theme, clock.Now())

	if s.pipe, err = pipeline.New(cfg.pipelineConfig(), s.sampler, s.fft, s.anim, s.themes, clock, root); err != nil {
		return nil, err
	}
	s.pipe.BeforeFrame = s.beforeFrame

	s.gestures = gesture.NewSource(b.Touch(), clock, gesture.DefaultCalibration(sink.Width(), sink.Height()))
	if kb := b.Keyboard(); kb != nil {
		s.keys = kb.Events()
	}

	if p := hal.PinByName(b.GPIO(), hal.PinInputSelect); p != nil {
		if err := p.Configure(hal.GPIOModeOutput, hal.GPIOPullNone); err != nil {
			return nil, fmt.Errorf("app: input select pin: %w", err)
		}
		s.selPin = p
	} else {
		s.log.Warnf("no %s pin, input switching only changes the ADC channel", hal.PinInputSelect)
	}
	return s, nil
}

func (s *System) logBandTable() {
	if !s.log.Enabled(log.LevelDebug) {
		return
	}
	for b := 0; b < s.cfg.Bands; b++ {
		lo, hi := s.fft.BandRange(b, s.cfg.Bands)
		klo, khi := s.fft.BinRange(b, s.cfg.Bands)
		s.log.Debugf("band %2d: %7.1f - %7.1f Hz, bins %d..%d", b, lo, hi, klo, khi)
	}
}

// Run starts acquisition on the configured input and renders until ctx
// ends or the frame limit is reached. The sampler is stopped on return.
func (s *System) Run(ctx context.Context) error {
	if err := s.SetInput(s.input); err != nil {
		return err
	}
	defer s.sampler.Stop()
	s.lastStats = s.board.Clock().Now()
	s.log.Infof("started: %d Hz, N=%d, %d bands, %s, %s input", s.cfg.SampleRate, s.cfg.FFTSize, s.cfg.Bands, s.themes.Current(), s.input)
	err := s.pipe.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Stop ends Run after the current frame.
func (s *System) Stop() { s.pipe.Stop() }

// SetInput routes in to the ADC: the sampler is stopped, the selector pin
// driven, and acquisition restarted on the new channel with an empty ring.
func (s *System) SetInput(in Input) error {
	s.sampler.Stop()
	if s.selPin != nil {
		if err := s.selPin.Write(in.SelectLevel()); err != nil {
			return fmt.Errorf("app: input select: %w", err)
		}
	}
	if err := s.sampler.Init(in.Channel(), s.cfg.SampleRate); err != nil {
		return err
	}
	if err := s.sampler.Start(); err != nil {
		return err
	}
	if in != s.input {
		s.log.Infof("input %s", in)
	}
	s.input = in
	return nil
}

func (s *System) Input() Input                 { return s.input }
func (s *System) Themes() *theme.Manager       { return s.themes }
func (s *System) Pipeline() *pipeline.Pipeline { return s.pipe }
func (s *System) Sampler() *sampler.Sampler    { return s.sampler }

// Logger returns the root logger, for CLI level changes.
func (s *System) Logger() *log.Logger { return s.root }

func (s *System) beforeFrame(now time.Time) {
	if g := s.gestures.Poll(); g != gesture.None {
		s.handleGesture(g, now)
	}
	for drained := false; !drained; {
		select {
		case ev := <-s.keys:
			if ev.Press {
				s.handleKey(ev.Code, now)
			}
		default:
			drained = true
		}
	}
	if s.cfg.StatsEvery > 0 && now.Sub(s.lastStats) >= s.cfg.StatsEvery {
		st := s.pipe.TakeStats(now)
		s.log.Infof("stats: %v", st)
		s.lastStats = now
	}
}

func (s *System) handleGesture(g gesture.Gesture, now time.Time) {
	s.log.Debugf("gesture %s at %+v", g, s.gestures.Last())
	switch g {
	case gesture.Tap, gesture.SwipeLeft:
		s.themes.Next(now)
	case gesture.SwipeRight:
		s.themes.Prev(now)
	case gesture.LongPress:
		s.themes.ShowName(now, theme.NameDuration)
	case gesture.SwipeUp, gesture.SwipeDown:
		s.toggleInput()
	}
}

func (s *System) handleKey(code hal.KeyCode, now time.Time) {
	switch code {
	case hal.KeyRight:
		s.themes.Next(now)
	case hal.KeyLeft:
		s.themes.Prev(now)
	case hal.KeyUp, hal.KeyDown:
		s.themes.ShowName(now, theme.NameDuration)
	case hal.KeyTab:
		s.toggleInput()
	}
}

func (s *System) toggleInput() {
	if err := s.SetInput(s.input.Toggle()); err != nil {
		s.log.Errorf("switch input: %v", err)
	}
}

// Run is the firmware entry point: it builds and runs the analyzer on b
// and never returns. Start-up errors and panics end on the fatal screen.
func Run(b hal.Board, cfg Config) {
	defer func() {
		if r := recover(); r != nil {
			Fatal(b, fmt.Errorf("panic: %v", r))
		}
	}()
	s, err := New(b, cfg)
	if err != nil {
		Fatal(b, err)
	}
	if err := s.Run(context.Background()); err != nil {
		Fatal(b, err)
	}
	select {}
}
