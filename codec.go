package snd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// Peeker returns upcoming bytes without consuming them. *bufio.Reader
// satisfies it.
type Peeker interface {
	Peek(n int) ([]byte, error)
}

// DetectFormat sniffs the container kind from the first bytes: FORM is
// AIFF, CS229 is the text format. Nothing is consumed.
func DetectFormat(p Peeker) (Format, error) {
	head, err := p.Peek(4)
	if err != nil && !errors.Is(err, io.EOF) {
		return FormatUnknown, fmt.Errorf("failed to sniff format: %w", err)
	}

	switch {
	case bytes.Equal(head, CIDForm[:]):
		return FormatAIFF, nil
	case bytes.Equal(head, []byte(textTag[:4])):
		head, _ = p.Peek(5)
		if len(head) == 5 && head[4] == textTag[4] {
			return FormatText, nil
		}
	}

	return FormatUnknown, fmt.Errorf("%w: leading bytes %q", ErrUnrecognizedFormat, head)
}

// Parse reads a sound stored in the given format. The stream must start
// with the format's signature.
func Parse(r io.Reader, f Format) (*SoundFile, error) {
	switch f {
	case FormatText:
		return ParseText(r)
	case FormatAIFF:
		return ParseAIFF(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnrecognizedFormat, f)
	}
}

// Decode sniffs the format of r and parses it.
func Decode(r io.Reader) (*SoundFile, error) {
	br := asBufioReader(r)

	f, err := DetectFormat(br)
	if err != nil {
		return nil, err
	}

	return Parse(br, f)
}

// Write encodes s in the given format. s is validated first and is never
// modified.
func Write(w io.Writer, s *SoundFile, f Format) error {
	switch f {
	case FormatText:
		return WriteText(w, s)
	case FormatAIFF:
		return WriteAIFF(w, s)
	default:
		return fmt.Errorf("%w: %s", ErrUnrecognizedFormat, f)
	}
}

// ReadFile opens and decodes the sound stored at path.
func ReadFile(path string) (*SoundFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	s, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// WriteFile encodes s to path, replacing any existing file.
func WriteFile(path string, s *SoundFile, f Format) error {
	var buf bytes.Buffer

	// a failed encode leaves the existing file untouched
	err := Write(&buf, s, f)
	if err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}

	_, err = buf.WriteTo(out)
	if err != nil {
		out.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := out.Sync(); err != nil {
		out.Close()
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}

	return out.Close()
}
