//go:build !tinygo

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"picospectrum/analyzer/fft"
	synth "picospectrum/analyzer/signal"
	"picospectrum/analyzer/theme"
	"picospectrum/app"
	"picospectrum/hal"
	"picospectrum/internal/buildinfo"
	"picospectrum/internal/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	headless bool
	theme    string
	input    string
	backend  string
	level    string
	source   string
	seed     int64
}

func newRootCmd() *cobra.Command {
	cfg := app.DefaultConfig()
	var opts options

	cmd := &cobra.Command{
		Use:           "picospectrum",
		Short:         "Real-time audio spectrum analyzer on a simulated 320x240 panel",
		Version:       buildinfo.Short(),
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.apply(&cfg); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			hc := hal.HostConfig{Source: opts.source, Synth: synth.Inputs(opts.seed)}
			run := func(ctx context.Context, b hal.Board) error {
				s, err := app.New(b, cfg)
				if err != nil {
					app.ShowFatal(b, err)
					return err
				}
				return s.Run(ctx)
			}
			if opts.headless {
				return hal.RunHeadless(ctx, hc, run)
			}
			return hal.RunWindow(ctx, hc, run)
		},
	}
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	f := cmd.Flags()
	f.BoolVar(&opts.headless, "headless", false, "Run without a window.")
	f.IntVarP(&cfg.Frames, "frames", "n", 0, "Stop after N frames (0 = run until interrupted).")
	f.StringVarP(&opts.theme, "theme", "t", theme.Bars.Key(), "Initial theme: bars, waterfall, radial or mirror.")
	f.StringVarP(&opts.input, "input", "i", app.InputMic.String(), "Input source: mic or jack.")
	f.StringVar(&opts.backend, "fft-backend", fft.BackendRadix2.String(), "FFT implementation: radix2 or gonum.")
	f.StringVar(&opts.level, "log-level", log.LevelInfo.String(), "Log level: debug, info, warn or error.")
	f.StringVar(&opts.source, "source", "synth", "Sample source: synth or portaudio.")
	f.Int64Var(&opts.seed, "seed", 1, "Seed of the synthetic noise floor.")
	f.IntVarP(&cfg.Bands, "bands", "b", cfg.Bands, "Band count, 4 to 32.")
	f.IntVar(&cfg.FFTSize, "fft-size", cfg.FFTSize, "FFT window: 64, 128 or 256.")
	f.IntVar(&cfg.FPS, "fps", cfg.FPS, "Target frame rate.")
	f.DurationVar(&cfg.StatsEvery, "stats", cfg.StatsEvery, "Interval between stats lines (0 disables).")
	return cmd
}

func (o options) apply(cfg *app.Config) error {
	var err error
	if cfg.Theme, err = theme.ParseKind(o.theme); err != nil {
		return err
	}
	if cfg.Input, err = app.ParseInput(o.input); err != nil {
		return err
	}
	if cfg.Backend, err = fft.ParseBackend(o.backend); err != nil {
		return err
	}
	level, ok := log.ParseLevel(o.level)
	if !ok {
		return fmt.Errorf("unknown log level %q", o.level)
	}
	cfg.LogLevel = level
	return cfg.Validate()
}
