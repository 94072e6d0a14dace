//go:build !tinygo

// Command bands prints the band table the analyzer computes for a sample
// rate, window size and band count. With --tone it also runs one window of
// a synthetic sinusoid through the transform and dumps the spectrum.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"picospectrum/analyzer/fft"
	"picospectrum/analyzer/signal"
)

func main() {
	if err := newCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCmd(out io.Writer) *cobra.Command {
	cfg := fft.DefaultConfig()
	bands := 16
	var rate uint32
	var tone, amp float64
	var backend string

	cmd := &cobra.Command{
		Use:           "bands",
		Short:         "Print the logarithmic band table",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.SampleRate = rate
			var err error
			if cfg.Backend, err = fft.ParseBackend(backend); err != nil {
				return err
			}
			p, err := fft.New(cfg, nil)
			if err != nil {
				return err
			}
			if err := writeTable(out, p, bands); err != nil {
				return err
			}
			if tone > 0 {
				return writeTone(out, p, bands, tone, amp)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.Uint32VarP(&rate, "rate", "r", cfg.SampleRate, "Sample rate in Hz.")
	f.IntVarP(&cfg.Size, "size", "n", cfg.Size, "FFT window length.")
	f.IntVarP(&bands, "bands", "b", bands, "Band count.")
	f.Float32Var(&cfg.MinHz, "min", cfg.MinHz, "Lowest band edge in Hz.")
	f.Float32Var(&cfg.MaxHz, "max", cfg.MaxHz, "Highest band edge in Hz.")
	f.StringVar(&backend, "fft-backend", cfg.Backend.String(), "FFT implementation for --tone: radix2 or gonum.")
	f.Float64Var(&tone, "tone", 0, "Dump the spectrum of a sinusoid at this frequency in Hz.")
	f.Float64Var(&amp, "amp", 1500, "Tone amplitude in ADC counts.")
	return cmd
}

func writeTable(w io.Writer, p *fft.Processor, bands int) error {
	cfg := p.Config()
	if bands < 1 || bands > 32 {
		return fmt.Errorf("bands: %d out of range 1..32", bands)
	}
	res := float32(cfg.SampleRate) / float32(cfg.Size)
	fmt.Fprintf(w, "rate %d Hz, N=%d, %.1f Hz/bin, %d bands\n", cfg.SampleRate, cfg.Size, res, bands)
	fmt.Fprintln(w, "band     f_lo     f_hi  k_lo  k_hi")
	for b := 0; b < bands; b++ {
		lo, hi := p.BandRange(b, bands)
		klo, khi := p.BinRange(b, bands)
		if _, err := fmt.Fprintf(w, "%4d %8.1f %8.1f %5d %5d\n", b, lo, hi, klo, khi); err != nil {
			return err
		}
	}
	return nil
}

// writeTone feeds one window of a freq Hz tone through p and prints the bin
// magnitudes followed by the band levels.
func writeTone(w io.Writer, p *fft.Processor, bands int, freq, amp float64) error {
	cfg := p.Config()
	samples := make([]uint16, cfg.Size)
	signal.Fill(samples, signal.NewTone(freq, amp, float64(cfg.SampleRate)))
	levels := make([]float32, bands)
	if err := p.Compute(samples, levels); err != nil {
		return err
	}

	res := float64(cfg.SampleRate) / float64(cfg.Size)
	fmt.Fprintf(w, "tone %.1f Hz, amplitude %.0f, %s backend\n", freq, amp, cfg.Backend)
	fmt.Fprintln(w, " bin     f_hz      mag")
	for k, m := range p.Magnitudes() {
		fmt.Fprintf(w, "%4d %8.1f %8.4f\n", k, float64(k)*res, m)
	}
	fmt.Fprintln(w, "band  level")
	for b, v := range levels {
		if _, err := fmt.Fprintf(w, "%4d %6.3f\n", b, v); err != nil {
			return err
		}
	}
	return nil
}
