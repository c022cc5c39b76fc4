package snd

import (
	"fmt"

	"github.com/go-audio/audio"
)

// IntBuffer exposes the sound as a go-audio buffer. The sample slice is
// copied so the buffer can be modified freely.
func (s *SoundFile) IntBuffer() *audio.IntBuffer {
	return &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: s.Channels,
			SampleRate:  s.SampleRate,
		},
		Data:           append([]int(nil), s.Samples...),
		SourceBitDepth: s.BitDepth,
	}
}

// FromIntBuffer builds a sound from a go-audio buffer. The buffer's
// SourceBitDepth must be one of the supported depths and every value must
// fit it; a trailing partial frame is rejected.
func FromIntBuffer(buf *audio.IntBuffer, f Format) (*SoundFile, error) {
	if buf == nil || buf.Format == nil {
		return nil, fmt.Errorf("%w: buffer without format", ErrInvalidValue)
	}

	channels := buf.Format.NumChannels
	if channels <= 0 {
		return nil, fmt.Errorf("%w: channels %d", ErrInvalidValue, channels)
	}

	if len(buf.Data)%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples do not divide into %d channels",
			ErrTruncatedFrame, len(buf.Data), channels)
	}

	if len(buf.Data) > MaxSamples {
		return nil, fmt.Errorf("%w: %d samples", ErrAllocationFailure, len(buf.Data))
	}

	s := &SoundFile{
		Format:     f,
		SampleRate: buf.Format.SampleRate,
		BitDepth:   buf.SourceBitDepth,
		Channels:   channels,
		Frames:     len(buf.Data) / channels,
		Samples:    append([]int(nil), buf.Data...),
	}

	err := s.Validate()
	if err != nil {
		return nil, err
	}

	return s, nil
}
