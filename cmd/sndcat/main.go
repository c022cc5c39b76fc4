// This tool concatenates the sample data of the sound files passed as
// arguments and writes the result to standard output. All inputs must share
// sample rate, bit depth and channel count. The output uses the format of
// the first input unless -a or -c is given. With no files, standard input
// is copied through.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cwbudde/snd"
)

var errConflictingFormats = errors.New("-a and -c are mutually exclusive")

func main() {
	log.SetFlags(0)
	log.SetPrefix("sndcat: ")

	err := run(os.Args[1:], os.Stdin, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string, in io.Reader, out io.Writer) error {
	flagSet := flag.NewFlagSet("sndcat", flag.ContinueOnError)

	forceAIFF := flagSet.Bool("a", false, "write AIFF")
	forceText := flagSet.Bool("c", false, "write CS229")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if *forceAIFF && *forceText {
		return errConflictingFormats
	}

	sounds, err := readInputs(flagSet.Args(), in)
	if err != nil {
		return err
	}

	combined, err := snd.Concat(sounds...)
	if err != nil {
		return err
	}

	target := combined.Format

	switch {
	case *forceAIFF:
		target = snd.FormatAIFF
	case *forceText:
		target = snd.FormatText
	}

	return snd.Write(out, combined, target)
}

func readInputs(paths []string, in io.Reader) ([]*snd.SoundFile, error) {
	if len(paths) == 0 {
		sound, err := snd.Decode(in)
		if err != nil {
			return nil, fmt.Errorf("standard input: %w", err)
		}

		return []*snd.SoundFile{sound}, nil
	}

	sounds := make([]*snd.SoundFile, 0, len(paths))

	for _, path := range paths {
		sound, err := snd.ReadFile(path)
		if err != nil {
			return nil, err
		}

		sounds = append(sounds, sound)
	}

	return sounds, nil
}
