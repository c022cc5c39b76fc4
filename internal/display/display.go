// Package display renders sample values as horizontal ASCII bars, the way
// sndshow and sndedit draw a sound.
//
// A line is a 9 column right aligned frame number and a pipe, followed by the
// bar: the negative half, a pipe standing for zero, the positive half and a
// closing pipe. Each half is filled with dashes proportionally to the
// sample's magnitude relative to the largest value of its bit depth.
package display

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cwbudde/snd"
)

const (
	// MinWidth is the narrowest line Render accepts.
	MinWidth = 20
	// DefaultWidth is the line width used when none is given.
	DefaultWidth = 80
	// labelWidth covers the frame number and its pipe.
	labelWidth = 10
)

var (
	// ErrWidth is returned for line widths below MinWidth.
	ErrWidth = errors.New("display width too small")
	// ErrZoom is returned for zoom factors below 1.
	ErrZoom = errors.New("zoom factor must be at least 1")
	// ErrChannel is returned when the selected channel doesn't exist.
	ErrChannel = errors.New("no such channel")
)

// Options controls Render.
type Options struct {
	// Channel selects a single channel, 1-based. Zero shows every channel.
	Channel int
	// Width is the total line width. Odd widths are rounded down.
	Width int
	// Zoom merges that many consecutive frames into one line, keeping the
	// value of largest magnitude.
	Zoom int
}

// HalfWidth returns how many columns each half of a bar gets when lines are
// width columns wide.
func HalfWidth(width int) int {
	return max((width-labelWidth-2)/2, 0)
}

// Dashes returns how many of the half columns a sample fills.
func Dashes(value, bitDepth, half int) int {
	_, hi := snd.SampleBounds(bitDepth)
	if hi == 0 || half <= 0 {
		return 0
	}

	mag := int64(value)
	if mag < 0 {
		mag = -mag
	}

	n := int(float64(mag)/float64(hi)*float64(half) + 0.5)

	return min(n, half)
}

// Bar renders the bar part of a line: negative half, zero pipe, positive
// half and the closing pipe.
func Bar(value, bitDepth, half int) string {
	d := Dashes(value, bitDepth, half)

	var b strings.Builder

	b.Grow(2*half + 2)

	if value < 0 {
		b.WriteString(strings.Repeat(" ", half-d))
		b.WriteString(strings.Repeat("-", d))
		b.WriteByte('|')
		b.WriteString(strings.Repeat(" ", half))
	} else {
		b.WriteString(strings.Repeat(" ", half))
		b.WriteByte('|')
		b.WriteString(strings.Repeat("-", d))
		b.WriteString(strings.Repeat(" ", half-d))
	}

	b.WriteByte('|')

	return b.String()
}

// Label returns the frame number column. A negative frame gives the blank
// label used for the second and later channels of a frame.
func Label(frame int) string {
	if frame < 0 {
		return strings.Repeat(" ", labelWidth-1) + "|"
	}

	return fmt.Sprintf("%9d|", frame)
}

// Zoom returns the value of largest magnitude of channel ch (0-based) over
// the n frames starting at start. Frames past the end are ignored; ties keep
// the earliest value.
func Zoom(s *snd.SoundFile, ch, start, n int) int {
	best := 0
	bestMag := int64(-1)

	for f := start; f < start+n && f < s.Frames; f++ {
		v := s.Samples[f*s.Channels+ch]

		mag := int64(v)
		if mag < 0 {
			mag = -mag
		}

		if mag > bestMag {
			best, bestMag = v, mag
		}
	}

	return best
}

// Length formats the playing time of frames at rate as h:m:s.ss.
func Length(frames, rate int) string {
	if rate <= 0 {
		return "0:0:0.00"
	}

	secs := float64(frames) / float64(rate)
	hrs := int(secs / 3600)
	secs -= float64(hrs * 3600)
	mins := int(secs / 60)
	secs -= float64(mins * 60)

	return fmt.Sprintf("%d:%d:%.2f", hrs, mins, secs)
}

// Render writes the bar chart of s to w.
func Render(w io.Writer, s *snd.SoundFile, opts Options) error {
	width := opts.Width
	if width == 0 {
		width = DefaultWidth
	}

	width -= width % 2
	if width < MinWidth {
		return fmt.Errorf("%w: %d, need at least %d", ErrWidth, opts.Width, MinWidth)
	}

	zoom := opts.Zoom
	if zoom == 0 {
		zoom = 1
	}

	if zoom < 1 {
		return fmt.Errorf("%w: %d", ErrZoom, opts.Zoom)
	}

	if opts.Channel < 0 || opts.Channel > s.Channels {
		return fmt.Errorf("%w: %d of %d", ErrChannel, opts.Channel, s.Channels)
	}

	half := HalfWidth(width)

	for start := 0; start < s.Frames; start += zoom {
		first := true

		for ch := 0; ch < s.Channels; ch++ {
			if opts.Channel != 0 && ch != opts.Channel-1 {
				continue
			}

			label := Label(-1)
			if first {
				label = Label(start)
				first = false
			}

			_, err := fmt.Fprintf(w, "%s%s\n", label, Bar(Zoom(s, ch, start, zoom), s.BitDepth, half))
			if err != nil {
				return err
			}
		}
	}

	return nil
}
