package main

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/cwbudde/snd"
)

const stereoText = "CS229\n" +
	"# two frames of stereo\n" +
	"SampleRate 8000\n" +
	"Channels 2\n" +
	"BitDepth 16\n" +
	"Samples 2\n" +
	"StartData\n" +
	"100 -100\n" +
	"-32768 32767\n"

func TestRunConvertsToOppositeFormat(t *testing.T) {
	var aiff bytes.Buffer

	err := run(nil, strings.NewReader(stereoText), &aiff)
	if err != nil {
		t.Fatalf("text to aiff: %v", err)
	}

	if !bytes.HasPrefix(aiff.Bytes(), []byte("FORM")) {
		t.Fatalf("expected AIFF output, got %q", aiff.Bytes()[:min(aiff.Len(), 12)])
	}

	var text bytes.Buffer

	err = run(nil, bytes.NewReader(aiff.Bytes()), &text)
	if err != nil {
		t.Fatalf("aiff to text: %v", err)
	}

	want := "CS229\nSampleRate 8000\nBitDepth 16\nChannels 2\nSamples 2\nStartData\n100\t-100\n-32768\t32767\n"
	if text.String() != want {
		t.Fatalf("unexpected CS229 output:\n%q\nwant:\n%q", text.String(), want)
	}
}

func TestRunForcedFormat(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		prefix string
	}{
		{name: "force text", args: []string{"-c"}, prefix: "CS229\n"},
		{name: "force aiff", args: []string{"-a"}, prefix: "FORM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			err := run(tt.args, strings.NewReader(stereoText), &out)
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}

			if !strings.HasPrefix(out.String(), tt.prefix) {
				t.Fatalf("output should start with %q", tt.prefix)
			}

			got, err := snd.Decode(&out)
			if err != nil {
				t.Fatalf("decode output: %v", err)
			}

			want := []int{100, -100, -32768, 32767}
			if !reflect.DeepEqual(got.Samples, want) {
				t.Fatalf("samples=%v, want %v", got.Samples, want)
			}
		})
	}
}

func TestRunConflictingFlags(t *testing.T) {
	err := run([]string{"-a", "-c"}, strings.NewReader(stereoText), &bytes.Buffer{})
	if !errors.Is(err, errConflictingFormats) {
		t.Fatalf("expected errConflictingFormats, got %v", err)
	}
}

func TestRunInvalidInput(t *testing.T) {
	var out bytes.Buffer

	err := run(nil, strings.NewReader("CS229\nSampleRate 8000\nStartData\n"), &out)
	if !errors.Is(err, snd.ErrMissingKeyword) {
		t.Fatalf("expected ErrMissingKeyword, got %v", err)
	}

	if out.Len() != 0 {
		t.Fatalf("nothing should be written on failure, got %d bytes", out.Len())
	}
}
