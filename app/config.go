package app

import (
	"fmt"
	"strings"
	"time"

	"picospectrum/analyzer"
	"picospectrum/analyzer/animator"
	"picospectrum/analyzer/fft"
	"picospectrum/analyzer/pipeline"
	"picospectrum/analyzer/ring"
	"picospectrum/analyzer/theme"
	"picospectrum/internal/log"
)

// Input selects the analog front end.
type Input uint8

const (
	// InputMic is the electret microphone on ADC0 (GPIO 26), selector high.
	InputMic Input = iota
	// InputJack is the line input on ADC1 (GPIO 27), selector low.
	InputJack
)

func (in Input) String() string {
	switch in {
	case InputMic:
		return "mic"
	case InputJack:
		return "jack"
	default:
		return fmt.Sprintf("Input(%d)", uint8(in))
	}
}

// Channel is the ADC channel of in.
func (in Input) Channel() uint8 { return uint8(in) }

// SelectLevel is the selector pin level that routes in to the ADC.
func (in Input) SelectLevel() bool { return in == InputMic }

func (in Input) Toggle() Input {
	if in == InputMic {
		return InputJack
	}
	return InputMic
}

func ParseInput(s string) (Input, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mic", "microphone", "":
		return InputMic, nil
	case "jack", "line":
		return InputJack, nil
	default:
		return 0, fmt.Errorf("app: unknown input %q: %w", s, analyzer.ErrConfiguration)
	}
}

// Config collects the start-up constants of the analyzer.
type Config struct {
	SampleRate   uint32
	FFTSize      int
	Bands        int
	MinHz        float32
	MaxHz        float32
	Gain         float32
	FPS          int
	RingCapacity int
	Theme        theme.Kind
	Input        Input
	Backend      fft.Backend
	Animator     animator.Config

	// Frames stops the loop after that many frames; 0 runs forever.
	Frames     int
	LogLevel   log.Level
	StatsEvery time.Duration
}

func DefaultConfig() Config {
	f := fft.DefaultConfig()
	return Config{
		SampleRate:   f.SampleRate,
		FFTSize:      f.Size,
		Bands:        16,
		MinHz:        f.MinHz,
		MaxHz:        f.MaxHz,
		Gain:         f.Gain,
		FPS:          pipeline.DefaultFPS,
		RingCapacity: ring.DefaultCapacity,
		Theme:        theme.Bars,
		Input:        InputMic,
		Backend:      fft.BackendRadix2,
		Animator:     animator.DefaultConfig(),
		LogLevel:     log.LevelInfo,
		StatsEvery:   5 * time.Second,
	}
}

func (c Config) Validate() error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("app: "+format+": %w", append(args, analyzer.ErrConfiguration)...)
	}
	switch c.FFTSize {
	case 64, 128, 256:
	default:
		return bad("fft size %d not in {64, 128, 256}", c.FFTSize)
	}
	if c.Bands < 4 || c.Bands > analyzer.MaxBands {
		return bad("bands %d out of range 4..%d", c.Bands, analyzer.MaxBands)
	}
	if c.SampleRate == 0 {
		return bad("zero sample rate")
	}
	if c.MinHz <= 0 || c.MinHz >= c.MaxHz || c.MaxHz > float32(c.SampleRate)/2 {
		return bad("frequency window %v..%v Hz invalid for %d Hz", c.MinHz, c.MaxHz, c.SampleRate)
	}
	if c.Gain <= 0 {
		return bad("gain %v must be positive", c.Gain)
	}
	if c.FPS <= 0 {
		return bad("fps %d must be positive", c.FPS)
	}
	if c.RingCapacity < c.FFTSize || c.RingCapacity&(c.RingCapacity-1) != 0 {
		return bad("ring capacity %d must be a power of two >= %d", c.RingCapacity, c.FFTSize)
	}
	if !c.Theme.Valid() {
		return bad("invalid theme %d", c.Theme)
	}
	if c.Input > InputJack {
		return bad("invalid input %d", c.Input)
	}
	if c.Frames < 0 {
		return bad("frame limit %d is negative", c.Frames)
	}
	return c.Animator.Validate()
}

func (c Config) fftConfig() fft.Config {
	return fft.Config{
		SampleRate: c.SampleRate,
		Size:       c.FFTSize,
		MinHz:      c.MinHz,
		MaxHz:      c.MaxHz,
		Gain:       c.Gain,
		Backend:    c.Backend,
	}
}

func (c Config) pipelineConfig() pipeline.Config {
	return pipeline.Config{Bands: c.Bands, FPS: c.FPS, Frames: c.Frames}
}
