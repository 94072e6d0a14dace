//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"time"
)

// Raw span of the resistive panel. The host mouse is reported in these
// units so the touch path matches the hardware.
const (
	touchRawMin = 200
	touchRawMax = 3900
)

// adcIdle is the mid-scale reading of an idle input.
const adcIdle = 2048

// SynthSource returns the sample generator for channel at rateHz, or nil
// when the channel has nothing connected.
type SynthSource func(channel uint8, rateHz uint32) func() uint16

// HostConfig selects the host backends.
type HostConfig struct {
	// Source is "synth" or "portaudio".
	Source string
	// Synth feeds the "synth" source. Without it every channel reads idle.
	Synth SynthSource
}

type hostBoard struct {
	logger  *hostLogger
	display *MemoryDisplay
	adc     ADC
	timer   PeriodicTimer
	touch   *hostTouch
	kbd     *hostKeyboard
	gpio    GPIO
}

// New returns a host board whose synthetic ADC reads idle on every channel.
func New() Board {
	b, _ := NewHost(HostConfig{Source: "synth"})
	return b
}

// NewHost returns a host board for cfg.
func NewHost(cfg HostConfig) (Board, error) {
	return newHostBoard(cfg)
}

func newHostBoard(cfg HostConfig) (*hostBoard, error) {
	logger := &hostLogger{w: os.Stdout}
	return newHostBoardLogger(cfg, logger)
}

func newHostBoardLogger(cfg HostConfig, logger *hostLogger) (*hostBoard, error) {

	var adc ADC
	switch cfg.Source {
	case "", "synth":
		adc = newSynthADC(cfg.Synth)
	case "portaudio":
		pa, err := newPortAudioADC(logger)
		if err != nil {
			return nil, err
		}
		adc = pa
	default:
		return nil, fmt.Errorf("hal: unknown sample source %q", cfg.Source)
	}

	sel := newVirtualPin(PinInputSelect, GPIOCapInput|GPIOCapOutput)
	sel.onWrite = func(level bool) {
		logger.WriteLineString(fmt.Sprintf("gpio: %s %s", PinInputSelect, levelName(level)))
	}
	pins := []GPIOPin{sel}
	for _, name := range []string{"GP11", "GP22", "GP25"} {
		pins = append(pins, newVirtualPin(name, GPIOCapInput|GPIOCapOutput|GPIOCapPullUp|GPIOCapPullDown))
	}

	return &hostBoard{
		logger:  logger,
		display: NewMemoryDisplay(ScreenWidth, ScreenHeight),
		adc:     adc,
		timer:   NewPeriodicTimer(),
		touch:   &hostTouch{},
		kbd:     newHostKeyboard(),
		gpio:    newVirtualGPIO(pins),
	}, nil
}

func (h *hostBoard) Logger() Logger       { return h.logger }
func (h *hostBoard) Display() FrameSink   { return h.display }
func (h *hostBoard) ADC() ADC             { return h.adc }
func (h *hostBoard) Timer() PeriodicTimer { return h.timer }
func (h *hostBoard) Clock() Clock         { return SystemClock{} }
func (h *hostBoard) Touch() Touch         { return h.touch }
func (h *hostBoard) Keyboard() Keyboard   { return h.kbd }
func (h *hostBoard) GPIO() GPIO           { return h.gpio }

// close releases the board once the app has returned.
func (h *hostBoard) close() {
	if c, ok := h.adc.(io.Closer); ok {
		if err := c.Close(); err != nil {
			h.logger.WriteLineString("adc: close: " + err.Error())
		}
	}
}

func levelName(level bool) string {
	if level {
		return "high"
	}
	return "low"
}

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, time.Now().Format("15:04:05.000"), s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.WriteLineString(string(b))
}

// synthADC reads samples from a SynthSource. A stopped converter and an
// unconnected channel read adcIdle.
type synthADC struct {
	mu      sync.Mutex
	synth   SynthSource
	next    func() uint16
	running bool
}

func newSynthADC(synth SynthSource) *synthADC {
	return &synthADC{synth: synth}
}

func (a *synthADC) Configure(channel uint8, rateHz uint32) error {
	if rateHz == 0 {
		return fmt.Errorf("adc: zero rate")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.next = nil
	if a.synth != nil {
		a.next = a.synth(channel, rateHz)
	}
	return nil
}

func (a *synthADC) Read() uint16 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.next == nil || !a.running {
		return adcIdle
	}
	return a.next() & 0x0FFF
}

func (a *synthADC) SetRunning(on bool) {
	a.mu.Lock()
	a.running = on
	a.mu.Unlock()
}

// quantizeFloat maps a [-1, 1] capture sample onto the 12-bit ADC scale.
func quantizeFloat(v float32) uint16 {
	s := math.Round(adcIdle + float64(v)*2047)
	if s < 0 {
		return 0
	}
	if s > 0x0FFF {
		return 0x0FFF
	}
	return uint16(s)
}

// hostTouch reports the mouse as a touch panel.
type hostTouch struct {
	mu   sync.Mutex
	x, y int
	down bool
}

// set records the pointer in screen pixels.
func (t *hostTouch) set(x, y int, down bool) {
	t.mu.Lock()
	t.x, t.y, t.down = x, y, down
	t.mu.Unlock()
}

func (t *hostTouch) Read() (TouchPoint, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.down {
		return TouchPoint{}, false
	}
	return TouchPoint{
		X: screenToRaw(t.x, ScreenWidth),
		Y: screenToRaw(t.y, ScreenHeight),
		Z: 1000,
	}, true
}

func screenToRaw(v, size int) int {
	v = clampInt(v, 0, size-1)
	span := touchRawMax - touchRawMin
	return touchRawMin + (v*span+size-1)/size
}
