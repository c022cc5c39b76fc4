// This tool writes a sine tone as an AIFF or CS229 file.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strings"
	"time"

	"github.com/cwbudde/snd"
	"github.com/go-audio/audio"
)

func main() {
	err := run(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("sndgen", flag.ContinueOnError)

	output := flagSet.String("output", "output.aif", "filename to write to")
	format := flagSet.String("format", "aiff", "output format: aiff or cs229")
	frequency := flagSet.Float64("frequency", 440, "frequency in hertz to generate")
	length := flagSet.Float64("length", 5, "length in seconds of output file")
	sampleRate := flagSet.Int("rate", 48000, "sample rate in hertz")
	bitDepth := flagSet.Int("bits", 16, "bit depth: 8, 16 or 32")
	channels := flagSet.Int("channels", 1, "number of channels, all carrying the tone")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	target, err := parseFormat(*format)
	if err != nil {
		return err
	}

	if *sampleRate <= 0 || *channels <= 0 {
		return fmt.Errorf("%w: rate %d, channels %d", snd.ErrInvalidValue, *sampleRate, *channels)
	}

	log.Printf("generating a %f sec sine %s at %f hz", *length, target, *frequency)

	frames := snd.FramesFromDuration(time.Duration(*length*float64(time.Second)), *sampleRate)
	if frames*(*channels) > snd.MaxSamples {
		return fmt.Errorf("%w: %d frames of %d channels", snd.ErrAllocationFailure, frames, *channels)
	}

	_, peak := snd.SampleBounds(*bitDepth)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: *channels, SampleRate: *sampleRate},
		Data:           make([]int, frames*(*channels)),
		SourceBitDepth: *bitDepth,
	}

	for i := 0; i < frames; i++ {
		fv := math.Sin(float64(i) / float64(*sampleRate) * *frequency * 2 * math.Pi)
		v := int(math.Round(fv * float64(peak)))

		for ch := 0; ch < *channels; ch++ {
			buf.Data[i*(*channels)+ch] = v
		}
	}

	sound, err := snd.FromIntBuffer(buf, target)
	if err != nil {
		return err
	}

	err = snd.WriteFile(*output, sound, target)
	if err != nil {
		return fmt.Errorf("error writing %s: %w", *output, err)
	}

	return nil
}

func parseFormat(name string) (snd.Format, error) {
	switch strings.ToLower(name) {
	case "aiff", "aif":
		return snd.FormatAIFF, nil
	case "cs229", "text":
		return snd.FormatText, nil
	default:
		return snd.FormatUnknown, fmt.Errorf("%w: %q", snd.ErrUnrecognizedFormat, name)
	}
}
