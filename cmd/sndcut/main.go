// This tool reads a sound from standard input and writes it back to
// standard output in the same format, without the frames named by the
// low..high arguments. Both bounds are inclusive.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/snd"
)

var errBadRange = errors.New("ranges must be written as low..high")

func main() {
	log.SetFlags(0)
	log.SetPrefix("sndcut: ")

	err := run(os.Args[1:], os.Stdin, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string, in io.Reader, out io.Writer) error {
	flagSet := flag.NewFlagSet("sndcut", flag.ContinueOnError)
	flagSet.Usage = func() {
		fmt.Fprintln(flagSet.Output(), "usage: sndcut [low..high ...] < in > out")
	}

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	ranges := make([]snd.Range, 0, flagSet.NArg())

	for _, arg := range flagSet.Args() {
		r, err := parseRange(arg)
		if err != nil {
			return err
		}

		ranges = append(ranges, r)
	}

	sound, err := snd.Decode(in)
	if err != nil {
		return err
	}

	cut, err := snd.Cut(sound, ranges)
	if err != nil {
		return err
	}

	return snd.Write(out, cut, sound.Format)
}

func parseRange(arg string) (snd.Range, error) {
	lo, hi, ok := strings.Cut(arg, "..")
	if !ok {
		return snd.Range{}, fmt.Errorf("%w: %q", errBadRange, arg)
	}

	low, err := parseFrame(lo)
	if err != nil {
		return snd.Range{}, fmt.Errorf("%w: %q", errBadRange, arg)
	}

	high, err := parseFrame(hi)
	if err != nil {
		return snd.Range{}, fmt.Errorf("%w: %q", errBadRange, arg)
	}

	if low > high {
		return snd.Range{}, &snd.RangeError{Low: low, High: high}
	}

	return snd.Range{Low: low, High: high}, nil
}

func parseFrame(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}

	if n < 0 {
		return 0, fmt.Errorf("negative frame %d", n)
	}

	return n, nil
}
