package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/snd"
	"github.com/go-audio/aiff"
)

func TestRunGeneratesAIFFFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "sine.aif")

	err := run([]string{"-output", outPath, "-length", "0.01", "-frequency", "220"})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("open generated file: %v", err)
	}
	defer f.Close()

	dec := aiff.NewDecoder(f)
	if !dec.IsValidFile() {
		t.Fatalf("generated file is not a valid aiff")
	}

	if int(dec.SampleRate) != 48000 {
		t.Fatalf("sample rate=%d, want 48000", dec.SampleRate)
	}

	if int(dec.BitDepth) != 16 {
		t.Fatalf("bit depth=%d, want 16", dec.BitDepth)
	}

	if int(dec.NumChans) != 1 {
		t.Fatalf("channels=%d, want 1", dec.NumChans)
	}
}

func TestRunGeneratesText(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "sine.cs229")

	err := run([]string{"-output", outPath, "-format", "cs229", "-length", "0.005",
		"-rate", "8000", "-bits", "8", "-channels", "2", "-frequency", "1000"})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	s, err := snd.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read generated file: %v", err)
	}

	// 0.005 sec * 8000 Hz = 40 frames
	if s.Frames != 40 || s.Channels != 2 {
		t.Fatalf("frames=%d channels=%d, want 40 and 2", s.Frames, s.Channels)
	}

	// a quarter period of 1 kHz at 8 kHz lands on the peak
	if s.Samples[4] != 127 || s.Samples[5] != 127 {
		t.Fatalf("frame 2=%v, want the 8-bit peak on both channels", s.Frame(2))
	}

	if s.Samples[0] != 0 {
		t.Fatalf("first sample=%d, want 0", s.Samples[0])
	}
}

func TestRunFlagParseError(t *testing.T) {
	err := run([]string{"-length", "not-a-number"})
	if err == nil {
		t.Fatalf("expected failure for invalid flag value")
	}
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	err := run([]string{"-format", "wav", "-output", filepath.Join(t.TempDir(), "x")})
	if !errors.Is(err, snd.ErrUnrecognizedFormat) {
		t.Fatalf("expected ErrUnrecognizedFormat, got %v", err)
	}
}

func TestRunRejectsBitDepth(t *testing.T) {
	err := run([]string{"-bits", "24", "-length", "0.001", "-output", filepath.Join(t.TempDir(), "x.aif")})
	if !errors.Is(err, snd.ErrUnsupportedBitDepth) {
		t.Fatalf("expected ErrUnsupportedBitDepth, got %v", err)
	}
}

func TestRunInvalidOutputPath(t *testing.T) {
	err := run([]string{"-output", "/nonexistent/dir/file.aif", "-length", "0.001"})
	if err == nil {
		t.Fatal("expected error for invalid output path")
	}
}
