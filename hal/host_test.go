//go:build !tinygo

package hal

import (
	"bytes"
	"context"
	"errors"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
	"testing"
)

// rampSynth counts up from 100*channel+1 on channels 0 and 1.
func rampSynth(channel uint8, rateHz uint32) func() uint16 {
	if channel > 1 {
		return nil
	}
	v := uint16(channel)*100 + 1
	return func() uint16 {
		r := v
		v++
		return r
	}
}

func TestSynthADCChannels(t *testing.T) {
	a := newSynthADC(rampSynth)
	if err := a.Configure(0, 22050); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if got := a.Read(); got != adcIdle {
		t.Fatalf("stopped ADC read %d, want idle", got)
	}
	a.SetRunning(true)
	for ch := uint8(0); ch < 2; ch++ {
		if err := a.Configure(ch, 22050); err != nil {
			t.Fatalf("Configure(%d): %v", ch, err)
		}
		for i := 0; i < 3; i++ {
			if got, want := a.Read(), uint16(ch)*100+1+uint16(i); got != want {
				t.Fatalf("channel %d read %d: got %d, want %d", ch, i, got, want)
			}
		}
	}
	a.Configure(2, 22050)
	if got := a.Read(); got != adcIdle {
		t.Fatalf("unconnected channel read %d", got)
	}
	if err := a.Configure(0, 0); err == nil {
		t.Fatal("zero rate accepted")
	}
}

func TestSynthADCWithoutSource(t *testing.T) {
	a := newSynthADC(nil)
	a.SetRunning(true)
	if err := a.Configure(0, 22050); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if got := a.Read(); got != adcIdle {
		t.Fatalf("read %d, want idle", got)
	}
}

func TestQuantizeFloat(t *testing.T) {
	cases := []struct {
		in   float32
		want uint16
	}{
		{0, 2048}, {1, 4095}, {-1, 1}, {2, 4095}, {-2, 0}, {0.5, 3072},
	}
	for _, tc := range cases {
		if got := quantizeFloat(tc.in); got != tc.want {
			t.Fatalf("quantizeFloat(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

type closingADC struct {
	synthADC
	closed int
	err    error
}

func (c *closingADC) Close() error {
	c.closed++
	return c.err
}

func TestHostBoardCloseReleasesADC(t *testing.T) {
	var out bytes.Buffer
	b, err := newHostBoardLogger(HostConfig{}, &hostLogger{w: &out})
	if err != nil {
		t.Fatalf("newHostBoardLogger: %v", err)
	}
	adc := &closingADC{err: errors.New("device gone")}
	b.adc = adc
	b.close()
	if adc.closed != 1 {
		t.Fatalf("Close called %d times", adc.closed)
	}
	if !strings.Contains(out.String(), "adc: close: device gone") {
		t.Fatalf("close error not logged: %q", out.String())
	}

	// The synthetic ADC holds nothing to release.
	b, _ = newHostBoardLogger(HostConfig{}, &hostLogger{w: &out})
	b.close()
}

func TestHalStaysBelowAnalyzer(t *testing.T) {
	files, err := filepath.Glob("*.go")
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	fset := token.NewFileSet()
	for _, name := range files {
		f, err := parser.ParseFile(fset, name, nil, parser.ImportsOnly)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		for _, imp := range f.Imports {
			if strings.HasPrefix(strings.Trim(imp.Path.Value, `"`), "picospectrum/analyzer") {
				t.Fatalf("%s imports %s", name, imp.Path.Value)
			}
		}
	}
}

func TestHostTouchRawUnits(t *testing.T) {
	var tp hostTouch
	if _, ok := tp.Read(); ok {
		t.Fatal("idle mouse reported a touch")
	}
	tp.set(0, 0, true)
	p, ok := tp.Read()
	if !ok || p.X != touchRawMin || p.Y != touchRawMin || p.Z <= 400 {
		t.Fatalf("corner reading %+v %v", p, ok)
	}
	tp.set(ScreenWidth+50, ScreenHeight-1, true)
	p, _ = tp.Read()
	if p.X > touchRawMax || p.Y > touchRawMax || p.X < 3800 {
		t.Fatalf("far corner reading %+v", p)
	}
}

func TestHostBoard(t *testing.T) {
	if _, err := NewHost(HostConfig{Source: "tape"}); err == nil {
		t.Fatal("unknown source accepted")
	}
	var got Board
	err := RunHeadless(context.Background(), HostConfig{}, func(_ context.Context, b Board) error {
		got = b
		return errors.New("done")
	})
	if err == nil || err.Error() != "done" {
		t.Fatalf("RunHeadless returned %v", err)
	}
	if got.Display().Width() != ScreenWidth || got.Display().Height() != ScreenHeight {
		t.Fatal("host display geometry")
	}
	sel := PinByName(got.GPIO(), PinInputSelect)
	if sel == nil {
		t.Fatal("input select pin missing")
	}
	if err := sel.Configure(GPIOModeOutput, GPIOPullNone); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if err := sel.Write(true); err != nil {
		t.Fatalf("Write: %v", err)
	}
}

func TestNewDefaultsToSynth(t *testing.T) {
	b := New()
	if b == nil {
		t.Fatal("New returned nil")
	}
	if _, ok := b.ADC().(*synthADC); !ok {
		t.Fatalf("default ADC is %T", b.ADC())
	}
	if b.Keyboard().Events() == nil {
		t.Fatal("host keyboard has no event channel")
	}
}
