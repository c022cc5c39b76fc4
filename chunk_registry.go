package snd

import (
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

// commPayloadSize is the COMM payload this package reads and writes:
// channels(2) frames(4) bit depth(2) sample rate(10).
const commPayloadSize = 18

// ChunkHandler decodes one kind of AIFF chunk into the decoder state.
// Decode receives a chunk whose reader is limited to the padded payload;
// whatever the handler leaves unread is skipped by the decoder.
type ChunkHandler interface {
	CanHandle(chunkID [4]byte) bool
	Decode(d *AIFFDecoder, ch *riff.Chunk) error
}

// ChunkRegistry resolves chunks to handlers.
type ChunkRegistry struct {
	handlers []ChunkHandler
}

func newDefaultChunkRegistry() *ChunkRegistry {
	return &ChunkRegistry{
		handlers: []ChunkHandler{
			&commChunkHandler{},
			&ssndChunkHandler{},
		},
	}
}

// Register appends a handler to the registry. Handlers registered later
// never shadow COMM and SSND.
func (r *ChunkRegistry) Register(handler ChunkHandler) {
	if r == nil || handler == nil {
		return
	}

	r.handlers = append(r.handlers, handler)
}

// Decode dispatches a chunk to the first matching handler.
func (r *ChunkRegistry) Decode(dec *AIFFDecoder, chnk *riff.Chunk) (bool, error) {
	if r == nil || chnk == nil {
		return false, nil
	}

	for _, handler := range r.handlers {
		if handler.CanHandle(chnk.ID) {
			err := handler.Decode(dec, chnk)
			if err != nil {
				return true, fmt.Errorf("%s chunk: %w", chnk.ID[:], err)
			}

			return true, nil
		}
	}

	return false, nil
}

type commChunkHandler struct{}

func (h *commChunkHandler) CanHandle(chunkID [4]byte) bool {
	return chunkID == CIDComm
}

// Decode reads the fixed COMM fields through the chunk so its position
// tracks what was consumed; longer variants are drained.
func (h *commChunkHandler) Decode(d *AIFFDecoder, ch *riff.Chunk) error {
	if d.sawComm {
		return ErrDuplicateChunk
	}

	d.sawComm = true

	if ch.Size < commPayloadSize {
		return fmt.Errorf("%w: payload of %d bytes, need %d", ErrTruncatedInput, ch.Size, commPayloadSize)
	}

	channels, err := readBEInt(ch, 2)
	if err != nil {
		return fmt.Errorf("failed to read channels: %w", err)
	}

	frames, err := readBEUint(ch, 4)
	if err != nil {
		return fmt.Errorf("failed to read frame count: %w", err)
	}

	bitDepth, err := readBEInt(ch, 2)
	if err != nil {
		return fmt.Errorf("failed to read bit depth: %w", err)
	}

	var ext [10]byte

	err = readFull(ch, ext[:])
	if err != nil {
		return fmt.Errorf("failed to read sample rate: %w", err)
	}

	rate, err := ExtendedToSampleRate(ext)
	if err != nil {
		return fmt.Errorf("failed to decode sample rate: %w", err)
	}

	d.NumChans = int(channels)
	d.NumSampleFrames = int64(frames)
	d.BitDepth = int(bitDepth)
	d.SampleRate = int64(rate)

	ch.Drain()

	return nil
}

type ssndChunkHandler struct{}

func (h *ssndChunkHandler) CanHandle(chunkID [4]byte) bool {
	return chunkID == CIDSsnd
}

func (h *ssndChunkHandler) Decode(d *AIFFDecoder, ch *riff.Chunk) error {
	if d.sawSsnd {
		return ErrDuplicateChunk
	}

	d.sawSsnd = true

	offset, err := readBEUint(ch, 4)
	if err != nil {
		return fmt.Errorf("failed to read offset: %w", err)
	}

	blockAlign, err := readBEUint(ch, 4)
	if err != nil {
		return fmt.Errorf("failed to read block size: %w", err)
	}

	dataLen := int64(ch.Size) - 8 - int64(offset) - int64(blockAlign)
	if dataLen < 0 {
		return fmt.Errorf("%w: offset %d and block size %d exceed chunk size %d",
			ErrInvalidValue, offset, blockAlign, ch.Size)
	}

	if dataLen > 4*MaxSamples {
		return fmt.Errorf("%w: %d bytes of sample data", ErrAllocationFailure, dataLen)
	}

	err = skip(ch, int64(offset))
	if err != nil {
		return fmt.Errorf("failed to skip offset: %w", err)
	}

	// grows with the bytes actually present rather than the declared size
	data, err := io.ReadAll(io.LimitReader(ch, dataLen))
	if err != nil {
		return fmt.Errorf("failed to read sample data: %w", err)
	}

	if int64(len(data)) < dataLen {
		return fmt.Errorf("%w: sample data has %d of %d bytes", ErrTruncatedInput, len(data), dataLen)
	}

	d.rawSamples = data
	d.Offset = int64(offset)
	d.BlockAlign = int64(blockAlign)

	// trailing alignment bytes; a stream cut short here surfaces when the
	// decoder skips the rest of the chunk
	ch.Drain()

	return nil
}
