//go:build !tinygo

package main

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"

	"picospectrum/analyzer"
)

func TestBandTable(t *testing.T) {
	var out bytes.Buffer
	cmd := newCmd(&out)
	cmd.SetArgs([]string{"--bands", "4"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "rate 22050 Hz, N=64") {
		t.Fatalf("header %q", lines[0])
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[2]), "0    100.0") {
		t.Fatalf("first band %q", lines[2])
	}
	if !strings.Contains(lines[5], "11000.0") {
		t.Fatalf("last band %q", lines[5])
	}
}

func TestBandTableRejectsZeroRate(t *testing.T) {
	var out bytes.Buffer
	cmd := newCmd(&out)
	cmd.SetArgs([]string{"--rate", "0"})
	if err := cmd.Execute(); !errors.Is(err, analyzer.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	cmd = newCmd(&out)
	cmd.SetArgs([]string{"--bands", "40"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("40 bands accepted")
	}
}

func TestToneSpectrum(t *testing.T) {
	for _, backend := range []string{"radix2", "gonum"} {
		var out bytes.Buffer
		cmd := newCmd(&out)
		cmd.SetArgs([]string{"--bands", "4", "--tone", "1000", "--fft-backend", backend})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("%s: Execute: %v", backend, err)
		}
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		// table (6) + tone header + bin header + 32 bins + band header + 4 bands
		if len(lines) != 6+2+32+1+4 {
			t.Fatalf("%s: got %d lines:\n%s", backend, len(lines), out.String())
		}
		if !strings.HasPrefix(lines[6], "tone 1000.0 Hz") {
			t.Fatalf("%s: tone header %q", backend, lines[6])
		}

		loudest, top := -1, -1.0
		for k, line := range lines[8 : 8+32] {
			fields := strings.Fields(line)
			if len(fields) != 3 || fields[0] != strconv.Itoa(k) {
				t.Fatalf("%s: bin line %q", backend, line)
			}
			mag, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				t.Fatalf("%s: bin line %q: %v", backend, line, err)
			}
			if mag > top {
				loudest, top = k, mag
			}
		}
		// 1000 Hz sits at bin 2.9 of a 64-point window at 22050 Hz.
		if loudest != 3 {
			t.Fatalf("%s: loudest bin %d, want 3", backend, loudest)
		}
	}
}

func TestToneRejectsUnknownBackend(t *testing.T) {
	var out bytes.Buffer
	cmd := newCmd(&out)
	cmd.SetArgs([]string{"--tone", "1000", "--fft-backend", "fftw"})
	if err := cmd.Execute(); !errors.Is(err, analyzer.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}
