//go:build !tinygo && portaudio

package hal

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const portAudioBuffer = 8192

// portAudioADC captures the default input device. The stream callback
// queues converted samples that Read takes one conversion at a time; when
// the queue is empty the last value repeats, and when it is full new
// samples are dropped.
type portAudioADC struct {
	mu      sync.Mutex
	log     Logger
	dev     *portaudio.DeviceInfo
	stream  *portaudio.Stream
	queue   chan uint16
	last    uint16
	started bool
	closed  bool
}

func newPortAudioADC(l Logger) (ADC, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio: initialize: %w", err)
	}
	dev, err := portaudio.DefaultInputDevice()
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("portaudio: default input: %w", err)
	}
	return &portAudioADC{
		log:   l,
		dev:   dev,
		queue: make(chan uint16, portAudioBuffer),
		last:  adcIdle,
	}, nil
}

// Configure reopens the stream at rateHz. Every channel maps to the
// default input device.
func (a *portAudioADC) Configure(channel uint8, rateHz uint32) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return errors.New("portaudio: closed")
	}
	a.closeStreamLocked()

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   a.dev,
			Channels: 1,
			Latency:  a.dev.DefaultLowInputLatency,
		},
		Output: portaudio.StreamDeviceParameters{
			Channels: 0,
			Device:   nil,
		},
		SampleRate:      float64(rateHz),
		FramesPerBuffer: 256,
	}
	stream, err := portaudio.OpenStream(params, a.capture)
	if err != nil {
		return fmt.Errorf("portaudio: open %s at %d Hz: %w", a.dev.Name, rateHz, err)
	}
	a.stream = stream
	a.drain()
	return nil
}

func (a *portAudioADC) capture(in []float32) {
	for _, v := range in {
		select {
		case a.queue <- quantizeFloat(v):
		default:
		}
	}
}

func (a *portAudioADC) Read() uint16 {
	select {
	case v := <-a.queue:
		a.last = v
	default:
	}
	return a.last
}

func (a *portAudioADC) SetRunning(on bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stream == nil || on == a.started {
		return
	}
	if on {
		if err := a.stream.Start(); err != nil {
			a.logf("portaudio: start: %v", err)
			return
		}
		a.started = true
		return
	}
	a.stopLocked()
}

func (a *portAudioADC) stopLocked() {
	if !a.started {
		return
	}
	a.started = false
	if err := a.stream.Stop(); err != nil {
		a.logf("portaudio: stop: %v", err)
	}
}

// Close closes the stream and terminates portaudio. Further calls do
// nothing.
func (a *portAudioADC) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil
	}
	a.closed = true
	a.closeStreamLocked()
	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("portaudio: terminate: %w", err)
	}
	return nil
}

func (a *portAudioADC) closeStreamLocked() {
	if a.stream == nil {
		return
	}
	a.stopLocked()
	if err := a.stream.Close(); err != nil {
		a.logf("portaudio: close: %v", err)
	}
	a.stream = nil
}

func (a *portAudioADC) drain() {
	for {
		select {
		case <-a.queue:
		default:
			return
		}
	}
}

func (a *portAudioADC) logf(format string, args ...any) {
	if a.log != nil {
		a.log.WriteLineString(fmt.Sprintf(format, args...))
	}
}
