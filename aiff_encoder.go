package snd

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

var (
	errNilWriter     = errors.New("can't write to a nil writer")
	errAlreadyClosed = errors.New("encoder already wrote a sound")
)

// AIFFEncoder writes a SoundFile as an AIFF container. All sizes are known
// from the in-memory sound, so the output is produced in a single forward
// pass and the writer doesn't need to seek.
type AIFFEncoder struct {
	w *bufio.Writer

	WrittenBytes int
	done         bool
}

// NewAIFFEncoder creates an encoder writing to w.
func NewAIFFEncoder(w io.Writer) *AIFFEncoder {
	if w == nil {
		return &AIFFEncoder{}
	}

	return &AIFFEncoder{w: bufio.NewWriter(w)}
}

// WriteAIFF encodes s to w.
func WriteAIFF(w io.Writer, s *SoundFile) error {
	return NewAIFFEncoder(w).Write(s)
}

// AddBE serializes and adds the passed value using big endian.
func (e *AIFFEncoder) AddBE(src any) error {
	e.WrittenBytes += binary.Size(src)

	err := binary.Write(e.w, binary.BigEndian, src)
	if err != nil {
		return fmt.Errorf("failed to write big endian: %w", err)
	}

	return nil
}

// aiffLayout holds the sizes computed before anything is written.
type aiffLayout struct {
	formSize   int64
	ssndSize   int64
	blockAlign uint32
}

func layoutFor(s *SoundFile) aiffLayout {
	ssndSize := int64(s.NumBytes()) + 8

	var blockAlign uint32
	if ssndSize%2 == 1 {
		// the pad byte is counted in the declared size and flagged through
		// the block alignment field
		ssndSize++
		blockAlign = 1
	}

	return aiffLayout{
		formSize:   4 + 8 + commPayloadSize + 8 + ssndSize,
		ssndSize:   ssndSize,
		blockAlign: blockAlign,
	}
}

// Write encodes the sound. An encoder writes exactly one sound.
func (e *AIFFEncoder) Write(s *SoundFile) error {
	if e == nil || e.w == nil {
		return errNilWriter
	}

	if e.done {
		return errAlreadyClosed
	}

	err := s.Validate()
	if err != nil {
		return fmt.Errorf("invalid sound: %w", err)
	}

	if s.Channels > math.MaxInt16 {
		return fmt.Errorf("%w: %d channels don't fit an AIFF COMM chunk", ErrInvalidValue, s.Channels)
	}

	if int64(s.SampleRate) > math.MaxUint32 {
		return fmt.Errorf("%w: sample rate %d doesn't fit 32 bits", ErrInvalidValue, s.SampleRate)
	}

	layout := layoutFor(s)
	if layout.formSize > math.MaxUint32 {
		return fmt.Errorf("%w: %d bytes exceed the AIFF size limit", ErrAllocationFailure, layout.formSize)
	}

	e.done = true

	err = e.writeHeader(layout)
	if err != nil {
		return err
	}

	err = e.writeCommChunk(s)
	if err != nil {
		return err
	}

	err = e.writeSoundChunk(s, layout)
	if err != nil {
		return err
	}

	err = e.w.Flush()
	if err != nil {
		return fmt.Errorf("failed to flush AIFF output: %w", err)
	}

	return nil
}

func (e *AIFFEncoder) writeHeader(layout aiffLayout) error {
	err := e.AddBE(CIDForm)
	if err != nil {
		return err
	}

	err = e.AddBE(uint32(layout.formSize))
	if err != nil {
		return fmt.Errorf("error encoding the FORM size - %w", err)
	}

	return e.AddBE(CIDAiff)
}

func (e *AIFFEncoder) writeCommChunk(s *SoundFile) error {
	err := e.AddBE(CIDComm)
	if err != nil {
		return err
	}

	err = e.AddBE(uint32(commPayloadSize))
	if err != nil {
		return err
	}

	err = e.AddBE(uint16(s.Channels))
	if err != nil {
		return fmt.Errorf("error encoding the number of channels - %w", err)
	}

	err = e.AddBE(uint32(s.Frames))
	if err != nil {
		return fmt.Errorf("error encoding the number of frames - %w", err)
	}

	err = e.AddBE(uint16(s.BitDepth))
	if err != nil {
		return fmt.Errorf("error encoding the bit depth - %w", err)
	}

	err = e.AddBE(SampleRateToExtended(uint32(s.SampleRate)))
	if err != nil {
		return fmt.Errorf("error encoding the sample rate - %w", err)
	}

	return nil
}

func (e *AIFFEncoder) writeSoundChunk(s *SoundFile, layout aiffLayout) error {
	err := e.AddBE(CIDSsnd)
	if err != nil {
		return err
	}

	err = e.AddBE(uint32(layout.ssndSize))
	if err != nil {
		return err
	}

	// offset
	err = e.AddBE(uint32(0))
	if err != nil {
		return err
	}

	err = e.AddBE(layout.blockAlign)
	if err != nil {
		return err
	}

	width := s.BitDepth / 8
	// samples go out in batches of about 4 KiB
	buf := make([]byte, 0, 4096)

	for _, v := range s.Samples {
		buf = AppendBigEndianInt(buf, int64(v), width)
		if len(buf) >= 4096-4 {
			n, err := e.w.Write(buf)
			e.WrittenBytes += n

			if err != nil {
				return fmt.Errorf("failed to write sample data: %w", err)
			}

			buf = buf[:0]
		}
	}

	if layout.blockAlign == 1 {
		buf = append(buf, 0)
	}

	n, err := e.w.Write(buf)
	e.WrittenBytes += n

	if err != nil {
		return fmt.Errorf("failed to write sample data: %w", err)
	}

	return nil
}
