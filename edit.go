package snd

import "fmt"

// Range is an inclusive span of frame indexes.
type Range struct {
	Low  int
	High int
}

func (r Range) contains(i int) bool {
	return i >= r.Low && i <= r.High
}

// Cut returns a copy of s without every frame that falls inside one of the
// ranges. Ranges may be unsorted, overlap or reach past the last frame. s is
// left untouched; on error nothing is allocated.
func Cut(s *SoundFile, ranges []Range) (*SoundFile, error) {
	err := s.Validate()
	if err != nil {
		return nil, err
	}

	for _, r := range ranges {
		if r.Low > r.High {
			return nil, &RangeError{Low: r.Low, High: r.High}
		}
	}

	out := make([]int, 0, len(s.Samples))

	for i := 0; i < s.Frames; {
		high, cut := matchRange(ranges, i)
		if cut {
			if high >= s.Frames-1 {
				break
			}

			// the whole matched interval goes in one step
			i = high + 1

			continue
		}

		out = append(out, s.Frame(i)...)
		i++
	}

	res := *s
	res.Samples = out[:len(out):len(out)]
	res.Frames = len(out) / s.Channels

	return &res, nil
}

func matchRange(ranges []Range, frame int) (int, bool) {
	for _, r := range ranges {
		if r.contains(frame) {
			return r.High, true
		}
	}

	return 0, false
}

// Splice returns a copy of s with block, a run of interleaved frames,
// inserted right before frame insertAt. insertAt is clamped to
// [0, s.Frames]; the frames from insertAt on move right by the block length.
func Splice(s *SoundFile, insertAt int, block []int) (*SoundFile, error) {
	err := s.Validate()
	if err != nil {
		return nil, err
	}

	if len(block)%s.Channels != 0 {
		return nil, fmt.Errorf("%w: block of %d samples for %d channels", ErrTruncatedFrame, len(block), s.Channels)
	}

	for i, v := range block {
		err := checkSample(int64(v), s.BitDepth, i)
		if err != nil {
			return nil, err
		}
	}

	total := len(s.Samples) + len(block)
	if total > MaxSamples {
		return nil, fmt.Errorf("%w: %d samples after splice", ErrAllocationFailure, total)
	}

	insertAt = max(0, min(insertAt, s.Frames))
	split := insertAt * s.Channels

	out := make([]int, 0, total)
	out = append(out, s.Samples[:split]...)
	out = append(out, block...)
	out = append(out, s.Samples[split:]...)

	res := *s
	res.Samples = out
	res.Frames = total / s.Channels

	return &res, nil
}

// CopyFrames returns a copy of the interleaved samples of frames low..high.
// The range is clipped to the sound.
func CopyFrames(s *SoundFile, low, high int) ([]int, error) {
	if low > high {
		return nil, &RangeError{Low: low, High: high}
	}

	err := s.Validate()
	if err != nil {
		return nil, err
	}

	low = max(low, 0)
	high = min(high, s.Frames-1)

	if low > high {
		return []int{}, nil
	}

	return append([]int(nil), s.Samples[low*s.Channels:(high+1)*s.Channels]...), nil
}

// Concat joins the sample data of sounds in order. All sounds must share
// sample rate, bit depth and channel count; the result keeps the format of
// the first one.
func Concat(sounds ...*SoundFile) (*SoundFile, error) {
	if len(sounds) == 0 {
		return nil, fmt.Errorf("%w: nothing to concatenate", ErrInvalidValue)
	}

	first := sounds[0]
	total := 0

	for i, s := range sounds {
		err := s.Validate()
		if err != nil {
			return nil, fmt.Errorf("sound %d: %w", i, err)
		}

		if s.SampleRate != first.SampleRate || s.BitDepth != first.BitDepth || s.Channels != first.Channels {
			return nil, fmt.Errorf("%w: sound %d is %d Hz/%d bits/%d channels, want %d Hz/%d bits/%d channels",
				ErrFormatMismatch, i, s.SampleRate, s.BitDepth, s.Channels,
				first.SampleRate, first.BitDepth, first.Channels)
		}

		total += len(s.Samples)
		if total > MaxSamples {
			return nil, fmt.Errorf("%w: %d samples after concatenation", ErrAllocationFailure, total)
		}
	}

	out := make([]int, 0, total)
	for _, s := range sounds {
		out = append(out, s.Samples...)
	}

	res := *first
	res.Samples = out
	res.Frames = total / first.Channels

	return &res, nil
}
