//go:build !tinygo && !portaudio

package hal

import "fmt"

func newPortAudioADC(Logger) (ADC, error) {
	return nil, fmt.Errorf("hal: portaudio source requires the portaudio build tag: %w", ErrNotImplemented)
}
