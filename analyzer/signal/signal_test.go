package signal

import (
	"math"
	"testing"
)

func TestQuantizeClamps(t *testing.T) {
	cases := []struct {
		in   float64
		want uint16
	}{
		{0, 2048},
		{-5000, 0},
		{5000, 4095},
		{1.4, 2049},
		{-2048, 0},
	}
	for _, tc := range cases {
		if got := Quantize(tc.in); got != tc.want {
			t.Fatalf("Quantize(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestToneMatchesClosedForm(t *testing.T) {
	const rate = 22050
	tone := NewTone(1000, 1500, rate)
	for i := 0; i < 256; i++ {
		want := 1500 * math.Sin(2*math.Pi*1000*float64(i)/rate)
		if got := tone.Next(); math.Abs(got-want) > 1e-6 {
			t.Fatalf("sample %d = %v, want %v", i, got, want)
		}
	}
}

func TestSweepSpansRange(t *testing.T) {
	s := NewSweep(100, 10000, 1, 1000, 1000)
	if f := s.Freq(); math.Abs(f-100) > 1e-9 {
		t.Fatalf("start freq %v", f)
	}
	for i := 0; i < 500; i++ {
		s.Next()
	}
	if f := s.Freq(); math.Abs(f-1000) > 1e-6 {
		t.Fatalf("mid freq %v, want 1000", f)
	}
	for i := 0; i < 500; i++ {
		s.Next()
	}
	if f := s.Freq(); math.Abs(f-100) > 1e-9 {
		t.Fatalf("sweep did not restart, freq %v", f)
	}
}

func TestNoiseDeterministic(t *testing.T) {
	a := NewNoise(100, 7)
	b := NewNoise(100, 7)
	for i := 0; i < 64; i++ {
		va, vb := a.Next(), b.Next()
		if va != vb {
			t.Fatalf("sample %d differs: %v vs %v", i, va, vb)
		}
		if math.Abs(va) > 100 {
			t.Fatalf("sample %d out of range: %v", i, va)
		}
	}
}

func TestMusicStaysInRange(t *testing.T) {
	src := Music(22050, 1)
	buf := make([]uint16, 22050)
	Fill(buf, src)
	var lo, hi uint16 = 4095, 0
	for _, v := range buf {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi > 4095 {
		t.Fatalf("sample above 12 bits: %d", hi)
	}
	if hi-lo < 500 {
		t.Fatalf("mix is too quiet: range %d..%d", lo, hi)
	}
}

func TestInputsPerChannel(t *testing.T) {
	inputs := Inputs(1)
	for ch := uint8(0); ch < 2; ch++ {
		next := inputs(ch, 22050)
		if next == nil {
			t.Fatalf("channel %d has no source", ch)
		}
		var lo, hi uint16 = 4095, 0
		for i := 0; i < 2048; i++ {
			v := next()
			if v > 4095 {
				t.Fatalf("channel %d: %d exceeds 12 bits", ch, v)
			}
			lo, hi = min(lo, v), max(hi, v)
		}
		if hi-lo < 500 {
			t.Fatalf("channel %d: swing %d..%d too small", ch, lo, hi)
		}
	}
	for _, ch := range []uint8{2, 3} {
		if inputs(ch, 22050) != nil {
			t.Fatalf("channel %d should be unconnected", ch)
		}
	}
}
