// This tool prints the header information of AIFF and CS229 sound files.
// With no arguments the sound is read from standard input.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/cwbudde/snd"
	"github.com/cwbudde/snd/internal/display"
)

const (
	stdinName = "(standard input)"
	separator = "----------------------------------------------------------------------"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("sndinfo: ")

	err := run(os.Args[1:], os.Stdin, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdin io.Reader, out io.Writer) error {
	if len(args) == 0 {
		return describe(stdinName, stdin, out)
	}

	for _, path := range args {
		err := describeFile(path, out)
		if err != nil {
			return err
		}
	}

	return nil
}

func describeFile(path string, out io.Writer) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return describe(path, file, out)
}

func describe(name string, r io.Reader, out io.Writer) error {
	br := bufio.NewReader(r)

	format, err := snd.DetectFormat(br)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	var (
		sound   *snd.SoundFile
		skipped [][4]byte
	)

	if format == snd.FormatAIFF {
		dec := snd.NewAIFFDecoder(br)

		sound, err = dec.Decode()
		skipped = dec.SkippedChunks
	} else {
		sound, err = snd.Parse(br, format)
	}

	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	fmt.Fprintln(out, separator)
	fmt.Fprintf(out, "Filename: %s\n", name)
	fmt.Fprintf(out, "Format: %s\n", sound.Format)
	fmt.Fprintf(out, "Sample Rate: %d\n", sound.SampleRate)
	fmt.Fprintf(out, "Bit Depth: %d\n", sound.BitDepth)
	fmt.Fprintf(out, "Channels: %d\n", sound.Channels)
	fmt.Fprintf(out, "Samples: %d\n", sound.Frames)
	fmt.Fprintf(out, "Duration: %s\n", display.Length(sound.Frames, sound.SampleRate))

	if len(skipped) > 0 {
		ids := make([]string, len(skipped))
		for i, id := range skipped {
			ids[i] = string(id[:])
		}

		fmt.Fprintf(out, "Skipped chunks: %s\n", strings.Join(ids, ", "))
	}

	fmt.Fprintln(out, separator)

	return nil
}
