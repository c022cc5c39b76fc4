// This tool reads a sound from standard input and writes it to standard
// output in the other container format: AIFF becomes CS229 and CS229
// becomes AIFF. -a or -c forces the output format instead.
package main

import (
	"errors"
	"flag"
	"io"
	"log"
	"os"

	"github.com/cwbudde/snd"
)

var errConflictingFormats = errors.New("-a and -c are mutually exclusive")

func main() {
	log.SetFlags(0)
	log.SetPrefix("sndconv: ")

	err := run(os.Args[1:], os.Stdin, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string, in io.Reader, out io.Writer) error {
	flagSet := flag.NewFlagSet("sndconv", flag.ContinueOnError)

	forceAIFF := flagSet.Bool("a", false, "write AIFF whatever the input format")
	forceText := flagSet.Bool("c", false, "write CS229 whatever the input format")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	target, err := outputFormat(*forceAIFF, *forceText, snd.FormatUnknown)
	if err != nil {
		return err
	}

	sound, err := snd.Decode(in)
	if err != nil {
		return err
	}

	if target == snd.FormatUnknown {
		target = sound.Format.Opposite()
	}

	return snd.Write(out, sound, target)
}

// outputFormat resolves the -a/-c switches, falling back to def.
func outputFormat(forceAIFF, forceText bool, def snd.Format) (snd.Format, error) {
	switch {
	case forceAIFF && forceText:
		return snd.FormatUnknown, errConflictingFormats
	case forceAIFF:
		return snd.FormatAIFF, nil
	case forceText:
		return snd.FormatText, nil
	default:
		return def, nil
	}
}
