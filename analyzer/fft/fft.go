// Package fft turns a window of 12-bit samples into a vector of
// logarithmically spaced band levels in [0, 1].
package fft

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"

	"picospectrum/analyzer"
	"picospectrum/internal/log"
)

// Backend selects the transform implementation.
type Backend uint8

const (
	// BackendRadix2 is the in-place float32 reference transform.
	BackendRadix2 Backend = iota
	// BackendGonum uses gonum's real FFT in float64.
	BackendGonum
)

func (b Backend) String() string {
	switch b {
	case BackendRadix2:
		return "radix2"
	case BackendGonum:
		return "gonum"
	default:
		return "unknown"
	}
}

// ParseBackend accepts the names printed by Backend.String.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "radix2", "reference", "":
		return BackendRadix2, nil
	case "gonum":
		return BackendGonum, nil
	default:
		return 0, fmt.Errorf("fft: unknown backend %q: %w", s, analyzer.ErrConfiguration)
	}
}

// Config fixes the transform geometry.
type Config struct {
	SampleRate uint32
	Size       int
	MinHz      float32
	MaxHz      float32
	// Gain divides the mean bin magnitude before log compression.
	Gain    float32
	Backend Backend
}

func DefaultConfig() Config {
	return Config{
		SampleRate: 22050,
		Size:       64,
		MinHz:      100,
		MaxHz:      11000,
		Gain:       5.0,
		Backend:    BackendRadix2,
	}
}

// MaxSize bounds the window length.
const MaxSize = 4096

var ln11 = float32(math.Log(11))

// Processor holds the window table and the transform scratch buffers.
// It is not safe for concurrent use.
type Processor struct {
	cfg    Config
	window []float32
	re, im []float32
	mag    []float32

	gonum *fourier.FFT
	seq   []float64
	coeff []complex128

	// bin spans cached for the last band count
	spans  [analyzer.MaxBands][2]int
	nSpans int
}

// New validates cfg and precomputes the Hann window.
func New(cfg Config, l *log.Logger) (*Processor, error) {
	if cfg.SampleRate == 0 {
		return nil, fmt.Errorf("fft: zero sample rate: %w", analyzer.ErrConfiguration)
	}
	if cfg.Size < 4 || cfg.Size > MaxSize || cfg.Size&(cfg.Size-1) != 0 {
		return nil, fmt.Errorf("fft: size %d is not a power of two in [4, %d]: %w", cfg.Size, MaxSize, analyzer.ErrConfiguration)
	}
	if !(cfg.MinHz > 0) || !(cfg.MaxHz > cfg.MinHz) {
		return nil, fmt.Errorf("fft: frequency window %v..%v Hz: %w", cfg.MinHz, cfg.MaxHz, analyzer.ErrConfiguration)
	}
	if !(cfg.Gain > 0) {
		return nil, fmt.Errorf("fft: gain %v must be positive: %w", cfg.Gain, analyzer.ErrConfiguration)
	}

	n := cfg.Size
	p := &Processor{
		cfg:    cfg,
		window: Hann(n),
		re:     make([]float32, n),
		im:     make([]float32, n),
		mag:    make([]float32, n/2),
	}
	switch cfg.Backend {
	case BackendRadix2:
	case BackendGonum:
		p.gonum = fourier.NewFFT(n)
		p.seq = make([]float64, n)
		p.coeff = make([]complex128, n/2+1)
	default:
		return nil, fmt.Errorf("fft: backend %d: %w", cfg.Backend, analyzer.ErrConfiguration)
	}
	l.With("fft").Infof("initialized: %d Hz, size %d, %s backend", cfg.SampleRate, n, cfg.Backend)
	return p, nil
}

// Hann returns the n-point window 0.5*(1-cos(2*pi*i/(n-1))).
func Hann(n int) []float32 {
	w := make([]float32, n)
	if n == 1 {
		w[0] = 1
	}
	if n < 2 {
		return w
	}
	coeffs := make([]float64, n)
	for i := range coeffs {
		coeffs[i] = 1
	}
	window.Hann(coeffs)
	for i, c := range coeffs {
		w[i] = float32(c)
	}
	return w
}

func (p *Processor) Config() Config { return p.cfg }
func (p *Processor) Size() int      { return p.cfg.Size }

// Compute fills bands from the first Size samples. It returns an
// ErrInvalidArgument error without touching bands when the sample window is
// short or the band count is outside 1..MaxBands.
func (p *Processor) Compute(samples []uint16, bands []float32) error {
	n := p.cfg.Size
	if len(samples) < n {
		return fmt.Errorf("fft: %d samples, need %d: %w", len(samples), n, analyzer.ErrInvalidArgument)
	}
	if len(bands) == 0 || len(bands) > analyzer.MaxBands {
		return fmt.Errorf("fft: %d bands, want 1..%d: %w", len(bands), analyzer.MaxBands, analyzer.ErrInvalidArgument)
	}

	// An all-zero window is a dead input, not a full-scale negative level.
	live := false
	for i := 0; i < n; i++ {
		if samples[i] != 0 {
			live = true
		}
		x := (float32(samples[i]) - analyzer.BiasLevel) / analyzer.BiasLevel
		p.re[i] = x * p.window[i]
		p.im[i] = 0
	}
	if !live {
		for k := range p.mag {
			p.mag[k] = 0
		}
		for b := range bands {
			bands[b] = 0
		}
		return nil
	}

	if p.gonum != nil {
		for i := 0; i < n; i++ {
			p.seq[i] = float64(p.re[i])
		}
		p.gonum.Coefficients(p.coeff, p.seq)
		for k := range p.mag {
			p.mag[k] = float32(cmplx.Abs(p.coeff[k]))
		}
	} else {
		Radix2(p.re, p.im)
		for k := range p.mag {
			re, im := float64(p.re[k]), float64(p.im[k])
			p.mag[k] = float32(math.Sqrt(re*re + im*im))
		}
	}

	p.aggregate(bands)
	return nil
}

func (p *Processor) aggregate(bands []float32) {
	nb := len(bands)
	if p.nSpans != nb {
		for b := 0; b < nb; b++ {
			p.spans[b][0], p.spans[b][1] = p.BinRange(b, nb)
		}
		p.nSpans = nb
	}

	half := len(p.mag)
	for b := 0; b < nb; b++ {
		lo, hi := p.spans[b][0], p.spans[b][1]
		var sum float32
		count := 0
		for k := lo; k < hi && k < half; k++ {
			sum += p.mag[k]
			count++
		}
		var v float32
		if count > 0 {
			v = sum / float32(count)
		}
		v /= p.cfg.Gain
		if v > 0 {
			v = float32(math.Log(1+10*float64(v))) / ln11
		}
		if !(v > 0) {
			v = 0
		} else if v > 1 {
			v = 1
		}
		bands[b] = v
	}
}

// BandRange returns [lo, hi) in Hz for band b of n.
func (p *Processor) BandRange(b, n int) (lo, hi float32) {
	if n <= 0 {
		return 0, 0
	}
	lmin := math.Log(float64(p.cfg.MinHz))
	lmax := math.Log(float64(p.cfg.MaxHz))
	lo = float32(math.Exp(lmin + float64(b)/float64(n)*(lmax-lmin)))
	hi = float32(math.Exp(lmin + float64(b+1)/float64(n)*(lmax-lmin)))
	return lo, hi
}

// BinRange returns the spectrum bins [lo, hi) averaged into band b of n.
// Both ends are clamped to the last bin and the span is never empty; hi may
// equal Size/2.
func (p *Processor) BinRange(b, n int) (lo, hi int) {
	flo, fhi := p.BandRange(b, n)
	size := float32(p.cfg.Size)
	rate := float32(p.cfg.SampleRate)
	last := p.cfg.Size/2 - 1

	lo = int(flo * size / rate)
	hi = int(fhi * size / rate)
	lo = max(0, min(lo, last))
	hi = max(0, min(hi, last))
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// Magnitudes returns the spectrum of the last Compute call. The slice is
// reused by the next call.
func (p *Processor) Magnitudes() []float32 { return p.mag }

// Radix2 is an in-place iterative radix-2 transform. len(re) must equal
// len(im) and be a power of two.
func Radix2(re, im []float32) {
	n := len(re)
	if n < 2 || len(im) != n {
		return
	}

	bits := 0
	for t := n; t > 1; t >>= 1 {
		bits++
	}
	for i := 0; i < n; i++ {
		j := reverseBits(i, bits)
		if j > i {
			re[i], re[j] = re[j], re[i]
			im[i], im[j] = im[j], im[i]
		}
	}

	for size := 2; size <= n; size <<= 1 {
		angle := -2 * math.Pi / float64(size)
		wlr := float32(math.Cos(angle))
		wli := float32(math.Sin(angle))
		half := size / 2
		for i := 0; i < n; i += size {
			var wr, wi float32 = 1, 0
			for j := 0; j < half; j++ {
				a, b := i+j, i+j+half
				vr := re[b]*wr - im[b]*wi
				vi := re[b]*wi + im[b]*wr
				ur, ui := re[a], im[a]
				re[a], im[a] = ur+vr, ui+vi
				re[b], im[b] = ur-vr, ui-vi
				wr, wi = wr*wlr-wi*wli, wr*wli+wi*wlr
			}
		}
	}
}

func reverseBits(x, bits int) int {
	r := 0
	for i := 0; i < bits; i++ {
		r = r<<1 | x&1
		x >>= 1
	}
	return r
}
