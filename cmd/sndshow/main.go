// This tool reads a sound from standard input and draws its sample data as
// ASCII bars, one line per channel and frame.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cwbudde/snd"
	"github.com/cwbudde/snd/internal/display"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("sndshow: ")

	err := run(os.Args[1:], os.Stdin, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
}

const usage = `usage: sndshow [-c channel] [-w width] [-z zoom] < sound

With -z n each line covers n frames and is labelled with the number of the
first frame of its group (0, n, 2n, ...), not with the line index.

`

func run(args []string, in io.Reader, out io.Writer) error {
	flagSet := flag.NewFlagSet("sndshow", flag.ContinueOnError)
	flagSet.SetOutput(out)
	flagSet.Usage = func() {
		fmt.Fprint(flagSet.Output(), usage)
		flagSet.PrintDefaults()
	}

	channel := flagSet.Int("c", 0, "show only this channel (1-based), 0 shows all")
	width := flagSet.Int("w", display.DefaultWidth, "total output width, even and at least 20")
	zoom := flagSet.Int("z", 1, "zoom out: one line per n frames labelled with its first frame, showing the largest magnitude")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	sound, err := snd.Decode(in)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(out)

	err = display.Render(bw, sound, display.Options{
		Channel: *channel,
		Width:   *width,
		Zoom:    *zoom,
	})
	if err != nil {
		return err
	}

	return bw.Flush()
}
