package snd

import (
	"fmt"
	"time"
)

// MaxSamples caps the number of interleaved sample values a single sound may
// hold.
const MaxSamples = 1 << 30

// Format identifies one of the two supported containers.
type Format int

const (
	// FormatUnknown is the zero value and never produced by a parser.
	FormatUnknown Format = iota
	// FormatText is the line oriented CS229 container.
	FormatText
	// FormatAIFF is the chunk based binary container.
	FormatAIFF
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "CS229"
	case FormatAIFF:
		return "AIFF"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Opposite returns the other container kind, used by converters.
func (f Format) Opposite() Format {
	if f == FormatText {
		return FormatAIFF
	}

	return FormatText
}

// SoundFile is the canonical in-memory sound. Samples are interleaved
// frame-major: frame 0 channel 0, frame 0 channel 1, ..., frame 1 channel 0.
type SoundFile struct {
	Format     Format
	SampleRate int
	BitDepth   int
	Channels   int
	Frames     int
	Samples    []int
}

// SampleBounds returns the smallest and largest value a signed sample of the
// given bit depth can hold.
func SampleBounds(bitDepth int) (int, int) {
	if bitDepth <= 0 || bitDepth > 32 {
		return 0, 0
	}

	hi := int(int64(1)<<(bitDepth-1)) - 1

	return -hi - 1, hi
}

func validBitDepth(bitDepth int) bool {
	switch bitDepth {
	case 8, 16, 32:
		return true
	default:
		return false
	}
}

func checkSample(v int64, bitDepth, pos int) error {
	lo, hi := SampleBounds(bitDepth)
	if v < int64(lo) || v > int64(hi) {
		return &SampleRangeError{Value: v, BitDepth: bitDepth, Position: pos}
	}

	return nil
}

// Validate checks every SoundFile invariant.
func (s *SoundFile) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil sound", ErrInvalidValue)
	}

	if s.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidValue, s.SampleRate)
	}

	if !validBitDepth(s.BitDepth) {
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, s.BitDepth)
	}

	if s.Channels <= 0 {
		return fmt.Errorf("%w: channels %d", ErrInvalidValue, s.Channels)
	}

	if s.Frames < 0 || len(s.Samples) != s.Frames*s.Channels {
		return &CountMismatchError{Declared: s.Frames * s.Channels, Actual: len(s.Samples), Unit: "samples"}
	}

	for i, v := range s.Samples {
		if err := checkSample(int64(v), s.BitDepth, i); err != nil {
			return err
		}
	}

	return nil
}

// Clone returns a deep copy.
func (s *SoundFile) Clone() *SoundFile {
	if s == nil {
		return nil
	}

	out := *s
	out.Samples = append([]int(nil), s.Samples...)

	return &out
}

// NumBytes is the size of the sample data once encoded as AIFF.
func (s *SoundFile) NumBytes() int {
	return s.Frames * s.Channels * (s.BitDepth / 8)
}

// Frame returns the samples of frame i, one per channel. The slice aliases
// the sound's buffer.
func (s *SoundFile) Frame(i int) []int {
	if i < 0 || i >= s.Frames {
		return nil
	}

	return s.Samples[i*s.Channels : (i+1)*s.Channels]
}

// Duration returns the playing time of the sound.
func (s *SoundFile) Duration() time.Duration {
	if s == nil || s.SampleRate <= 0 {
		return 0
	}

	return time.Duration(s.Frames) * time.Second / time.Duration(s.SampleRate)
}

// String implements the Stringer interface.
func (s *SoundFile) String() string {
	return fmt.Sprintf("%s: %d Hz @ %d bits, %d channel(s), %d frames, duration: %s",
		s.Format, s.SampleRate, s.BitDepth, s.Channels, s.Frames, s.Duration())
}

// FramesFromDuration returns how many whole frames fit in dur at sampleRate.
func FramesFromDuration(dur time.Duration, sampleRate int) int {
	if sampleRate <= 0 || dur <= 0 {
		return 0
	}

	whole := int64(dur / time.Second)
	rest := int64(dur % time.Second)

	return int(whole*int64(sampleRate) + rest*int64(sampleRate)/int64(time.Second))
}
