package fft

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"gonum.org/v1/gonum/dsp/fourier"

	"picospectrum/analyzer"
	"picospectrum/analyzer/signal"
)

func newProcessor(t *testing.T, mutate func(*Config)) *Processor {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	p, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func toneWindow(n int, freq, amp float64) []uint16 {
	s := make([]uint16, n)
	for i := range s {
		s[i] = uint16(2048 + amp*math.Sin(2*math.Pi*freq*float64(i)/22050))
	}
	return s
}

func bandContaining(p *Processor, f float32, n int) int {
	for b := 0; b < n; b++ {
		lo, hi := p.BandRange(b, n)
		if f >= lo && f < hi {
			return b
		}
	}
	return -1
}

func TestNewValidates(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero rate", func(c *Config) { c.SampleRate = 0 }},
		{"size not power of two", func(c *Config) { c.Size = 100 }},
		{"size too small", func(c *Config) { c.Size = 2 }},
		{"inverted window", func(c *Config) { c.MinHz, c.MaxHz = 5000, 100 }},
		{"zero min", func(c *Config) { c.MinHz = 0 }},
		{"zero gain", func(c *Config) { c.Gain = 0 }},
		{"bad backend", func(c *Config) { c.Backend = 9 }},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(&cfg)
		if _, err := New(cfg, nil); !errors.Is(err, analyzer.ErrConfiguration) {
			t.Fatalf("%s: expected ErrConfiguration, got %v", tc.name, err)
		}
	}
}

func TestComputeRejectsBadBuffers(t *testing.T) {
	p := newProcessor(t, nil)
	bands := make([]float32, 16)
	for i := range bands {
		bands[i] = 0.5
	}
	if err := p.Compute(make([]uint16, 10), bands); !errors.Is(err, analyzer.ErrInvalidArgument) {
		t.Fatalf("short window: got %v", err)
	}
	if err := p.Compute(make([]uint16, 64), nil); !errors.Is(err, analyzer.ErrInvalidArgument) {
		t.Fatalf("no bands: got %v", err)
	}
	if err := p.Compute(make([]uint16, 64), make([]float32, 33)); !errors.Is(err, analyzer.ErrInvalidArgument) {
		t.Fatalf("too many bands: got %v", err)
	}
	for i, v := range bands {
		if v != 0.5 {
			t.Fatalf("rejected call modified band %d", i)
		}
	}
}

func TestSilence(t *testing.T) {
	bias := make([]uint16, 64)
	for i := range bias {
		bias[i] = 2048
	}
	inputs := []struct {
		name    string
		samples []uint16
	}{
		{"bias", bias},
		{"zeros", make([]uint16, 64)},
	}
	for _, backend := range []Backend{BackendRadix2, BackendGonum} {
		p := newProcessor(t, func(c *Config) { c.Backend = backend })
		for _, in := range inputs {
			bands := make([]float32, 16)
			for i := range bands {
				bands[i] = 0.5
			}
			if err := p.Compute(in.samples, bands); err != nil {
				t.Fatalf("Compute: %v", err)
			}
			for b, v := range bands {
				if v != 0 {
					t.Fatalf("%s %s: band %d = %v, want 0", backend, in.name, b, v)
				}
			}
		}
	}
}

func TestZeroWindowAfterTone(t *testing.T) {
	p := newProcessor(t, nil)
	bands := make([]float32, 16)
	if err := p.Compute(toneWindow(64, 1000, 1500), bands); err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if err := p.Compute(make([]uint16, 64), bands); err != nil {
		t.Fatalf("Compute: %v", err)
	}
	for b, v := range bands {
		if v != 0 {
			t.Fatalf("band %d = %v after zero window", b, v)
		}
	}
	for k, m := range p.Magnitudes() {
		if m != 0 {
			t.Fatalf("bin %d = %v after zero window", k, m)
		}
	}
}

func TestHannWindow(t *testing.T) {
	for _, n := range []int{4, 64, 256} {
		w := Hann(n)
		if len(w) != n {
			t.Fatalf("Hann(%d) has %d points", n, len(w))
		}
		for i, v := range w {
			want := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
			if math.Abs(float64(v)-want) > 1e-6 {
				t.Fatalf("Hann(%d)[%d] = %v, want %v", n, i, v, want)
			}
		}
		if w[0] > 1e-6 || w[n-1] > 1e-6 {
			t.Fatalf("Hann(%d) endpoints %v %v", n, w[0], w[n-1])
		}
	}
}

func TestToneAt1kHz(t *testing.T) {
	p := newProcessor(t, nil)
	bands := make([]float32, 16)
	if err := p.Compute(toneWindow(64, 1000, 1500), bands); err != nil {
		t.Fatalf("Compute: %v", err)
	}

	target := bandContaining(p, 1000, 16)
	if target < 0 {
		t.Fatal("no band contains 1 kHz")
	}
	if bands[target] <= 0.3 {
		t.Fatalf("band %d = %v, want > 0.3", target, bands[target])
	}
	for b, v := range bands {
		if v > bands[target] {
			t.Fatalf("band %d (%v) exceeds target band %d (%v)", b, v, target, bands[target])
		}
	}
}

func TestToneNeighboursStrictlyLower(t *testing.T) {
	p := newProcessor(t, func(c *Config) { c.Size = 256 })
	const freq = 30 * 22050.0 / 256
	samples := make([]uint16, 256)
	tone := signal.NewTone(freq, 200, 22050)
	signal.Fill(samples, tone)

	bands := make([]float32, 16)
	if err := p.Compute(samples, bands); err != nil {
		t.Fatalf("Compute: %v", err)
	}
	target := bandContaining(p, freq, 16)
	if target != 11 {
		t.Fatalf("tone landed in band %d, want 11", target)
	}
	loudest := 0
	for b := range bands {
		if bands[b] > bands[loudest] {
			loudest = b
		}
	}
	if loudest != target {
		t.Fatalf("loudest band %d, want %d (%v)", loudest, target, bands)
	}
	if !(bands[target-1] < bands[target]) || !(bands[target+1] < bands[target]) {
		t.Fatalf("neighbours not strictly lower: %v %v %v", bands[target-1], bands[target], bands[target+1])
	}
}

func TestComputeDeterministic(t *testing.T) {
	p := newProcessor(t, nil)
	samples := make([]uint16, 64)
	signal.Fill(samples, signal.Music(22050, 3))

	a := make([]float32, 16)
	b := make([]float32, 16)
	if err := p.Compute(samples, a); err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if err := p.Compute(samples, b); err != nil {
		t.Fatalf("Compute: %v", err)
	}
	for i := range a {
		if math.Float32bits(a[i]) != math.Float32bits(b[i]) {
			t.Fatalf("band %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestBackendsAgree(t *testing.T) {
	for _, size := range []int{64, 128, 256} {
		ref := newProcessor(t, func(c *Config) { c.Size = size })
		alt := newProcessor(t, func(c *Config) { c.Size = size; c.Backend = BackendGonum })

		samples := make([]uint16, size)
		signal.Fill(samples, signal.Music(22050, int64(size)))
		for _, nb := range []int{4, 16, 32} {
			a := make([]float32, nb)
			b := make([]float32, nb)
			if err := ref.Compute(samples, a); err != nil {
				t.Fatalf("Compute: %v", err)
			}
			if err := alt.Compute(samples, b); err != nil {
				t.Fatalf("Compute: %v", err)
			}
			for i := range a {
				if d := math.Abs(float64(a[i] - b[i])); d > 0.05 {
					t.Fatalf("size %d bands %d: band %d differs by %v", size, nb, i, d)
				}
			}
		}
	}
}

func TestRadix2MatchesGonum(t *testing.T) {
	const n = 64
	re := make([]float32, n)
	im := make([]float32, n)
	seq := make([]float64, n)
	for i := range re {
		v := math.Sin(0.3*float64(i)) + 0.5*math.Cos(1.7*float64(i))
		re[i] = float32(v)
		seq[i] = float64(re[i])
	}
	Radix2(re, im)
	coeff := fourier.NewFFT(n).Coefficients(nil, seq)
	for k := 0; k <= n/2; k++ {
		got := complex(float64(re[k]), float64(im[k]))
		if d := cmplx.Abs(got - coeff[k]); d > 1e-3 {
			t.Fatalf("bin %d: got %v, want %v", k, got, coeff[k])
		}
	}
}

func TestBinRangeClamp(t *testing.T) {
	p := newProcessor(t, nil)
	half := p.Size() / 2
	for _, nb := range []int{4, 16, 32} {
		for b := 0; b < nb; b++ {
			lo, hi := p.BinRange(b, nb)
			if lo < 0 || lo > half-1 || hi <= lo || hi > half {
				t.Fatalf("bands %d: band %d bins [%d, %d)", nb, b, lo, hi)
			}
		}
	}
	lo, hi := p.BandRange(0, 16)
	if math.Abs(float64(lo)-100) > 1e-3 {
		t.Fatalf("first band starts at %v", lo)
	}
	lo, hi = p.BandRange(15, 16)
	if math.Abs(float64(hi)-11000) > 0.1 || lo >= hi {
		t.Fatalf("last band is [%v, %v)", lo, hi)
	}
}

func TestParseBackend(t *testing.T) {
	for in, want := range map[string]Backend{"radix2": BackendRadix2, "GONUM": BackendGonum, "": BackendRadix2} {
		got, err := ParseBackend(in)
		if err != nil || got != want {
			t.Fatalf("ParseBackend(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseBackend("fftw"); !errors.Is(err, analyzer.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}
