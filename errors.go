package snd

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedFormat is returned when the leading bytes match neither
	// the AIFF nor the CS229 signature.
	ErrUnrecognizedFormat = errors.New("unrecognized sound format")
	// ErrUnsupportedFormType is returned for FORM containers that are not AIFF
	// (AIFC for instance).
	ErrUnsupportedFormType = errors.New("unsupported FORM type")
	// ErrTruncatedInput is returned when the stream ends before a declared
	// field or chunk could be read.
	ErrTruncatedInput = errors.New("truncated input")
	// ErrTruncatedHeader is returned when a CS229 stream ends before StartData.
	ErrTruncatedHeader = errors.New("end of input before StartData")
	// ErrTruncatedFrame is returned when a sample block ends in the middle of
	// a frame.
	ErrTruncatedFrame = errors.New("incomplete sample frame")
	// ErrDuplicateKeyword is returned when a CS229 header keyword is repeated.
	ErrDuplicateKeyword = errors.New("duplicate keyword")
	// ErrDuplicateChunk is returned when a COMM or SSND chunk is repeated.
	ErrDuplicateChunk = errors.New("duplicate chunk")
	// ErrMissingKeyword is returned when SampleRate, BitDepth or Channels is
	// not set by the time StartData is reached.
	ErrMissingKeyword = errors.New("missing required keyword")
	// ErrMissingChunk is returned when an AIFF container lacks COMM or SSND.
	ErrMissingChunk = errors.New("missing required chunk")
	// ErrUnknownKeyword is returned for unexpected CS229 header tokens.
	ErrUnknownKeyword = errors.New("unknown keyword")
	// ErrInvalidValue is returned for malformed or out of domain header values.
	ErrInvalidValue = errors.New("invalid value")
	// ErrUnsupportedBitDepth is returned for bit depths other than 8, 16 and 32.
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
	// ErrSampleOutOfRange is matched by every *SampleRangeError.
	ErrSampleOutOfRange = errors.New("sample out of range")
	// ErrSampleCountMismatch is matched by every *CountMismatchError.
	ErrSampleCountMismatch = errors.New("sample count mismatch")
	// ErrInvalidRange is matched by every *RangeError.
	ErrInvalidRange = errors.New("invalid range")
	// ErrAllocationFailure is returned when a buffer would exceed MaxSamples.
	ErrAllocationFailure = errors.New("sample buffer too large")
	// ErrFormatMismatch is returned when sounds with different rate, depth or
	// channel count are combined.
	ErrFormatMismatch = errors.New("sound formats do not match")
)

// SampleRangeError reports a sample value that does not fit its bit depth.
type SampleRangeError struct {
	Value    int64
	BitDepth int
	// Position is the index of the sample in the interleaved buffer.
	Position int
}

func (e *SampleRangeError) Error() string {
	lo, hi := SampleBounds(e.BitDepth)

	return fmt.Sprintf("sample %d at position %d outside [%d, %d] for %d-bit audio",
		e.Value, e.Position, lo, hi, e.BitDepth)
}

// Is makes errors.Is(err, ErrSampleOutOfRange) succeed.
func (e *SampleRangeError) Is(target error) bool {
	return target == ErrSampleOutOfRange
}

// CountMismatchError reports a disagreement between a declared and an actual
// amount of sample data.
type CountMismatchError struct {
	Declared int
	Actual   int
	// Unit is "samples" for CS229 tables and "bytes" for SSND payloads.
	Unit string
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("sample count mismatch: declared %d %s, found %d", e.Declared, e.Unit, e.Actual)
}

// Is makes errors.Is(err, ErrSampleCountMismatch) succeed.
func (e *CountMismatchError) Is(target error) bool {
	return target == ErrSampleCountMismatch
}

// RangeError reports an inclusive frame range whose low bound is above its
// high bound.
type RangeError struct {
	Low  int
	High int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid range %d..%d: low is greater than high", e.Low, e.High)
}

// Is makes errors.Is(err, ErrInvalidRange) succeed.
func (e *RangeError) Is(target error) bool {
	return target == ErrInvalidRange
}
