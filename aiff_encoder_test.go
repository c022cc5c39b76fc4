package snd

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestWriteAIFFPadsOddSoundData(t *testing.T) {
	s := &SoundFile{SampleRate: 8000, BitDepth: 8, Channels: 1, Frames: 3, Samples: []int{1, -2, 3}}

	var buf bytes.Buffer

	err := WriteAIFF(&buf, s)
	if err != nil {
		t.Fatalf("WriteAIFF: %v", err)
	}

	want := buildAiff(commChunk(1, 3, 8, 8000), ssndChunk(0, 1, []byte{0x01, 0xFE, 0x03}))
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("unexpected bytes:\n got % x\nwant % x", buf.Bytes(), want)
	}

	chunks, err := parseAiffChunks(buf.Bytes())
	if err != nil {
		t.Fatalf("parse chunks: %v", err)
	}

	inventory := buildChunkInventory(chunks)
	wantInventory := []chunkInventoryEntry{{id: "COMM", size: 18}, {id: "SSND", size: 12}}

	if !reflect.DeepEqual(inventory, wantInventory) {
		t.Fatalf("inventory=%v, want %v", inventory, wantInventory)
	}

	back, err := ParseAIFF(&buf)
	if err != nil {
		t.Fatalf("parse written file: %v", err)
	}

	if !reflect.DeepEqual(back.Samples, s.Samples) {
		t.Fatalf("samples=%v, want %v", back.Samples, s.Samples)
	}
}

func TestWriteAIFFRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		bitDepth int
		channels int
		rate     int
	}{
		{name: "8bit mono", bitDepth: 8, channels: 1, rate: 11025},
		{name: "16bit stereo", bitDepth: 16, channels: 2, rate: 44100},
		{name: "32bit three channels", bitDepth: 32, channels: 3, rate: 96000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := SampleBounds(tt.bitDepth)

			frames := 101
			samples := make([]int, frames*tt.channels)

			for i := range samples {
				switch i % 4 {
				case 0:
					samples[i] = lo
				case 1:
					samples[i] = hi
				case 2:
					samples[i] = i - 50
				default:
					samples[i] = -i
				}
			}

			s := &SoundFile{
				Format:     FormatAIFF,
				SampleRate: tt.rate,
				BitDepth:   tt.bitDepth,
				Channels:   tt.channels,
				Frames:     frames,
				Samples:    samples,
			}

			var buf bytes.Buffer

			enc := NewAIFFEncoder(&buf)

			err := enc.Write(s)
			if err != nil {
				t.Fatalf("Write: %v", err)
			}

			if enc.WrittenBytes != buf.Len() {
				t.Fatalf("WrittenBytes=%d, output is %d bytes", enc.WrittenBytes, buf.Len())
			}

			back, err := ParseAIFF(&buf)
			if err != nil {
				t.Fatalf("ParseAIFF: %v", err)
			}

			if !reflect.DeepEqual(back, s) {
				t.Fatalf("round trip changed the sound: got %s", back)
			}
		})
	}
}

func TestWriteAIFFLargeBuffer(t *testing.T) {
	// more than one internal batch of sample bytes
	s := &SoundFile{SampleRate: 48000, BitDepth: 32, Channels: 2, Frames: 3000, Samples: make([]int, 6000)}
	for i := range s.Samples {
		s.Samples[i] = i * 1000
	}

	var buf bytes.Buffer
	if err := WriteAIFF(&buf, s); err != nil {
		t.Fatalf("WriteAIFF: %v", err)
	}

	if buf.Len() != 12+26+16+s.NumBytes() {
		t.Fatalf("output is %d bytes", buf.Len())
	}

	back, err := ParseAIFF(&buf)
	if err != nil {
		t.Fatalf("ParseAIFF: %v", err)
	}

	if !reflect.DeepEqual(back.Samples, s.Samples) {
		t.Fatalf("samples changed")
	}
}

func TestAIFFEncoderErrors(t *testing.T) {
	valid := &SoundFile{SampleRate: 8000, BitDepth: 8, Channels: 1, Frames: 1, Samples: []int{0}}

	if err := WriteAIFF(nil, valid); !errors.Is(err, errNilWriter) {
		t.Fatalf("expected errNilWriter, got %v", err)
	}

	var buf bytes.Buffer

	enc := NewAIFFEncoder(&buf)
	if err := enc.Write(valid); err != nil {
		t.Fatalf("first write: %v", err)
	}

	if err := enc.Write(valid); !errors.Is(err, errAlreadyClosed) {
		t.Fatalf("expected errAlreadyClosed, got %v", err)
	}

	tests := []struct {
		name string
		s    *SoundFile
		want error
	}{
		{name: "nil sound", s: nil, want: ErrInvalidValue},
		{name: "bad depth", s: &SoundFile{SampleRate: 8000, BitDepth: 12, Channels: 1}, want: ErrUnsupportedBitDepth},
		{name: "out of range sample", s: &SoundFile{SampleRate: 8000, BitDepth: 8, Channels: 1, Frames: 1, Samples: []int{-129}}, want: ErrSampleOutOfRange},
		{name: "count mismatch", s: &SoundFile{SampleRate: 8000, BitDepth: 8, Channels: 2, Frames: 1, Samples: []int{0}}, want: ErrSampleCountMismatch},
		{name: "too many channels", s: &SoundFile{SampleRate: 8000, BitDepth: 8, Channels: math.MaxInt16 + 1}, want: ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			err := WriteAIFF(&out, tt.s)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}

			if out.Len() != 0 {
				t.Fatalf("nothing should be written on failure, got %d bytes", out.Len())
			}
		})
	}
}
