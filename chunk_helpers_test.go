package snd

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

type testChunk struct {
	id   string
	size uint32
	data []byte
}

type chunkInventoryEntry struct {
	id   string
	size uint32
}

var (
	errFileTooSmall         = errors.New("file too small")
	errInvalidFormAiffHdr   = errors.New("invalid form/aiff header")
	errChunkExceedsFileSize = errors.New("chunk exceeds file size")
)

func parseAiffChunks(data []byte) ([]testChunk, error) {
	if len(data) < 12 {
		return nil, errFileTooSmall
	}

	if string(data[0:4]) != "FORM" || string(data[8:12]) != "AIFF" {
		return nil, errInvalidFormAiffHdr
	}

	chunks := make([]testChunk, 0)

	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := binary.BigEndian.Uint32(data[offset+4 : offset+8])
		offset += 8

		end := offset + int(size)
		if end > len(data) {
			return nil, fmt.Errorf("%w: %q", errChunkExceedsFileSize, id)
		}

		payload := append([]byte(nil), data[offset:end]...)
		chunks = append(chunks, testChunk{id: id, size: size, data: payload})

		offset = end
		if size%2 == 1 {
			offset++
		}
	}

	return chunks, nil
}

func parseAiffChunksFromFile(path string) ([]testChunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return parseAiffChunks(data)
}

func findChunk(chunks []testChunk, id string) (*testChunk, int) {
	for i := range chunks {
		if chunks[i].id == id {
			return &chunks[i], i
		}
	}

	return nil, -1
}

func buildChunkInventory(chunks []testChunk) []chunkInventoryEntry {
	out := make([]chunkInventoryEntry, 0, len(chunks))
	for _, ch := range chunks {
		out = append(out, chunkInventoryEntry{id: ch.id, size: ch.size})
	}

	return out
}

// buildAiff assembles a FORM/AIFF container around the chunks. A chunk whose
// size is zero gets the length of its data; odd payloads are padded.
func buildAiff(chunks ...testChunk) []byte {
	var body []byte

	for _, ch := range chunks {
		size := ch.size
		if size == 0 {
			size = uint32(len(ch.data))
		}

		body = append(body, ch.id...)
		body = binary.BigEndian.AppendUint32(body, size)
		body = append(body, ch.data...)

		if len(ch.data)%2 == 1 {
			body = append(body, 0)
		}
	}

	out := []byte("FORM")
	out = binary.BigEndian.AppendUint32(out, uint32(4+len(body)))
	out = append(out, "AIFF"...)

	return append(out, body...)
}

func commChunk(channels int16, frames uint32, bitDepth int16, rate uint32) testChunk {
	data := binary.BigEndian.AppendUint16(nil, uint16(channels))
	data = binary.BigEndian.AppendUint32(data, frames)
	data = binary.BigEndian.AppendUint16(data, uint16(bitDepth))

	ext := SampleRateToExtended(rate)
	data = append(data, ext[:]...)

	return testChunk{id: "COMM", data: data}
}

func ssndChunk(offset, blockAlign uint32, samples []byte) testChunk {
	data := binary.BigEndian.AppendUint32(nil, offset)
	data = binary.BigEndian.AppendUint32(data, blockAlign)
	data = append(data, make([]byte, offset)...)
	data = append(data, samples...)
	data = append(data, make([]byte, blockAlign)...)

	return testChunk{id: "SSND", data: data}
}
