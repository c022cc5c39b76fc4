package snd

import (
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

var (
	// CIDForm is the ID of the outer container.
	CIDForm = [4]byte{'F', 'O', 'R', 'M'}
	// CIDAiff is the FORM type of uncompressed AIFF.
	CIDAiff = [4]byte{'A', 'I', 'F', 'F'}
	// CIDComm is the chunk ID of the common (metadata) chunk.
	CIDComm = [4]byte{'C', 'O', 'M', 'M'}
	// CIDSsnd is the chunk ID of the sound data chunk.
	CIDSsnd = [4]byte{'S', 'S', 'N', 'D'}
)

// AIFFDecoder parses an AIFF stream. The reader is consumed strictly
// forward so pipes and sockets work as well as files.
type AIFFDecoder struct {
	r      io.Reader
	chunks *ChunkRegistry

	NumChans        int
	BitDepth        int
	SampleRate      int64
	NumSampleFrames int64
	// Offset and BlockAlign are the SSND fields as found in the stream.
	Offset     int64
	BlockAlign int64
	// FormSize is the size declared by the FORM header.
	FormSize uint32
	// SkippedChunks lists, in order, the chunks no handler claimed.
	SkippedChunks [][4]byte

	sawComm    bool
	sawSsnd    bool
	rawSamples []byte
}

// NewAIFFDecoder creates a decoder for the passed AIFF reader.
func NewAIFFDecoder(r io.Reader) *AIFFDecoder {
	return &AIFFDecoder{
		r:      r,
		chunks: newDefaultChunkRegistry(),
	}
}

// Registry exposes the chunk handlers so callers can claim extra chunk IDs.
func (d *AIFFDecoder) Registry() *ChunkRegistry {
	if d.chunks == nil {
		d.chunks = newDefaultChunkRegistry()
	}

	return d.chunks
}

// ParseAIFF reads a complete AIFF stream, magic included.
func ParseAIFF(r io.Reader) (*SoundFile, error) {
	return NewAIFFDecoder(r).Decode()
}

// Decode reads the whole container and returns the sound it holds. Nothing
// is returned on failure.
func (d *AIFFDecoder) Decode() (*SoundFile, error) {
	err := d.readHeader()
	if err != nil {
		return nil, err
	}

	remaining := int64(d.FormSize) - 4
	for remaining > 0 {
		if remaining < 8 {
			return nil, fmt.Errorf("%w: %d stray bytes at the end of FORM", ErrTruncatedInput, remaining)
		}

		chunk, body, err := d.NextChunk()
		if err != nil {
			return nil, err
		}

		remaining -= 8 + body.N
		if remaining < 0 {
			return nil, fmt.Errorf("%w: chunk %q overruns the FORM size", ErrTruncatedInput, chunk.ID[:])
		}

		handled, err := d.Registry().Decode(d, chunk)
		if err != nil {
			return nil, err
		}

		if !handled {
			d.SkippedChunks = append(d.SkippedChunks, chunk.ID)
		}

		err = skip(body, body.N)
		if err != nil {
			return nil, fmt.Errorf("failed to skip the rest of chunk %q: %w", chunk.ID[:], err)
		}
	}

	return d.sound()
}

func (d *AIFFDecoder) readHeader() error {
	var id [4]byte

	err := readFull(d.r, id[:])
	if err != nil {
		return fmt.Errorf("failed to read FORM id: %w", err)
	}

	if id != CIDForm {
		return fmt.Errorf("%w: found %q instead of FORM", ErrUnrecognizedFormat, id[:])
	}

	size, err := readBEUint(d.r, 4)
	if err != nil {
		return fmt.Errorf("failed to read FORM size: %w", err)
	}

	d.FormSize = uint32(size)

	err = readFull(d.r, id[:])
	if err != nil {
		return fmt.Errorf("failed to read FORM type: %w", err)
	}

	if id != CIDAiff {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormType, id[:])
	}

	return nil
}

// NextChunk reads the next chunk header. The returned chunk reader is
// limited to the payload plus its pad byte; body tracks what is left.
func (d *AIFFDecoder) NextChunk() (*riff.Chunk, *io.LimitedReader, error) {
	var id [4]byte

	err := readFull(d.r, id[:])
	if err != nil {
		return nil, nil, fmt.Errorf("error reading chunk id: %w", err)
	}

	size, err := readBEUint(d.r, 4)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading chunk size: %w", err)
	}

	// chunks are word aligned; an odd payload is followed by a pad byte
	// that the declared size doesn't include.
	padded := int64(size)
	if padded%2 == 1 {
		padded++
	}

	body := &io.LimitedReader{R: d.r, N: padded}

	chnk := &riff.Chunk{
		ID:   id,
		Size: int(size),
		R:    body,
	}

	return chnk, body, nil
}

func (d *AIFFDecoder) sound() (*SoundFile, error) {
	if !d.sawComm {
		return nil, fmt.Errorf("%w: COMM", ErrMissingChunk)
	}

	if !d.sawSsnd {
		return nil, fmt.Errorf("%w: SSND", ErrMissingChunk)
	}

	if d.NumChans <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidValue, d.NumChans)
	}

	if !validBitDepth(d.BitDepth) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, d.BitDepth)
	}

	if d.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidValue, d.SampleRate)
	}

	numSamples := int64(d.NumChans) * d.NumSampleFrames
	bPerSample := d.BitDepth / 8

	expected := numSamples * int64(bPerSample)
	if expected != int64(len(d.rawSamples)) {
		return nil, &CountMismatchError{Declared: int(expected), Actual: len(d.rawSamples), Unit: "bytes"}
	}

	// the SSND payload is already bounded, this only guards the decoded table
	if numSamples > MaxSamples {
		return nil, fmt.Errorf("%w: %d samples declared", ErrAllocationFailure, numSamples)
	}

	samples := make([]int, numSamples)
	for i := range samples {
		v := decodeSample(d.rawSamples[i*bPerSample:(i+1)*bPerSample], d.BitDepth)

		err := checkSample(v, d.BitDepth, i)
		if err != nil {
			return nil, err
		}

		samples[i] = int(v)
	}

	d.rawSamples = nil

	return &SoundFile{
		Format:     FormatAIFF,
		SampleRate: int(d.SampleRate),
		BitDepth:   d.BitDepth,
		Channels:   d.NumChans,
		Frames:     int(d.NumSampleFrames),
		Samples:    samples,
	}, nil
}

// decodeSample reads a big-endian field as an unsigned magnitude and applies
// two's complement when bit bitDepth-1 is set.
func decodeSample(b []byte, bitDepth int) int64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}

	if v&(uint64(1)<<(bitDepth-1)) == 0 {
		return int64(v)
	}

	mask := uint64(1)<<bitDepth - 1

	return -int64((v - 1) ^ mask)
}
