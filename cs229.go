package snd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CS229 header tokens.
const (
	textTag       = "CS229"
	kwSampleRate  = "SampleRate"
	kwBitDepth    = "BitDepth"
	kwChannels    = "Channels"
	kwSamples     = "Samples"
	kwStartData   = "StartData"
	commentPrefix = "#"
)

// maxSampleToken bounds a single sample token; the widest legal value is
// "-2147483648".
const maxSampleToken = 256

// maxHeaderLine bounds a header or comment line, terminator included.
const maxHeaderLine = 4096

// textParser holds the header state while a CS229 stream is parsed.
// Numeric fields stay at -1 until their keyword is seen.
type textParser struct {
	r    *bufio.Reader
	line int

	sampleRate int
	bitDepth   int
	channels   int
	samples    int
	seen       map[string]bool
}

// ParseText reads a complete CS229 stream, tag line included.
func ParseText(r io.Reader) (*SoundFile, error) {
	p := &textParser{
		r:          asBufioReader(r),
		sampleRate: -1,
		bitDepth:   -1,
		channels:   -1,
		samples:    -1,
		seen:       make(map[string]bool, 4),
	}

	err := p.readTag()
	if err != nil {
		return nil, err
	}

	err = p.readHeader()
	if err != nil {
		return nil, err
	}

	return p.readData()
}

func asBufioReader(r io.Reader) *bufio.Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return br
	}

	return bufio.NewReader(r)
}

// readLine returns the next line without its terminator. io.EOF is only
// returned once no more content is left. Lines longer than maxHeaderLine
// are rejected before they are buffered whole.
func (p *textParser) readLine() (string, error) {
	var line []byte

	for {
		part, err := p.r.ReadSlice('\n')
		line = append(line, part...)

		if len(line) > maxHeaderLine {
			return "", fmt.Errorf("%w: line %d is longer than %d bytes", ErrInvalidValue, p.line+1, maxHeaderLine)
		}

		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}

		if errors.Is(err, io.EOF) && len(line) == 0 {
			return "", io.EOF
		}

		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read line %d: %w", p.line+1, err)
		}

		break
	}

	p.line++

	return strings.TrimRight(string(line), "\r\n"), nil
}

func (p *textParser) readTag() error {
	line, err := p.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty input", ErrUnrecognizedFormat)
		}

		return err
	}

	if strings.TrimSpace(line) != textTag {
		return fmt.Errorf("%w: first line %q is not %s", ErrUnrecognizedFormat, line, textTag)
	}

	return nil
}

func (p *textParser) readHeader() error {
	for {
		line, err := p.readLine()
		if errors.Is(err, io.EOF) {
			return ErrTruncatedHeader
		}

		if err != nil {
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], commentPrefix) {
			continue
		}

		switch keyword := fields[0]; keyword {
		case kwStartData:
			if len(fields) > 1 {
				return fmt.Errorf("%w: line %d: unexpected %q after %s",
					ErrInvalidValue, p.line, fields[1], kwStartData)
			}

			return p.checkRequired()
		case kwSampleRate, kwBitDepth, kwChannels, kwSamples:
			if p.seen[keyword] {
				return fmt.Errorf("%w: line %d: %s", ErrDuplicateKeyword, p.line, keyword)
			}

			p.seen[keyword] = true

			value, err := p.keywordValue(keyword, fields)
			if err != nil {
				return err
			}

			p.assign(keyword, value)
		default:
			return fmt.Errorf("%w: line %d: %q", ErrUnknownKeyword, p.line, keyword)
		}
	}
}

func (p *textParser) keywordValue(keyword string, fields []string) (int, error) {
	if len(fields) != 2 {
		return 0, fmt.Errorf("%w: line %d: %s takes exactly one integer", ErrInvalidValue, p.line, keyword)
	}

	value, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: %s value %q", ErrInvalidValue, p.line, keyword, fields[1])
	}

	// Samples may be zero, every other keyword must be positive
	if value < 0 || (value == 0 && keyword != kwSamples) {
		return 0, fmt.Errorf("%w: line %d: %s must be positive, got %d", ErrInvalidValue, p.line, keyword, value)
	}

	return value, nil
}

func (p *textParser) assign(keyword string, value int) {
	switch keyword {
	case kwSampleRate:
		p.sampleRate = value
	case kwBitDepth:
		p.bitDepth = value
	case kwChannels:
		p.channels = value
	case kwSamples:
		p.samples = value
	}
}

func (p *textParser) checkRequired() error {
	var missing []string

	if p.sampleRate < 0 {
		missing = append(missing, kwSampleRate)
	}

	if p.bitDepth < 0 {
		missing = append(missing, kwBitDepth)
	}

	if p.channels < 0 {
		missing = append(missing, kwChannels)
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingKeyword, strings.Join(missing, ", "))
	}

	if !validBitDepth(p.bitDepth) {
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, p.bitDepth)
	}

	if p.samples > 0 && p.samples > MaxSamples/p.channels {
		return fmt.Errorf("%w: %d frames of %d channels declared", ErrAllocationFailure, p.samples, p.channels)
	}

	return nil
}

func (p *textParser) readData() (*SoundFile, error) {
	declared := p.samples >= 0
	want := 0

	if declared {
		want = p.samples * p.channels
	}

	sc := bufio.NewScanner(p.r)
	sc.Split(bufio.ScanWords)
	sc.Buffer(make([]byte, 0, 64), maxSampleToken)

	// the table grows with what is read; declared counts only bound it
	samples := make([]int, 0, min(want, 1<<16))
	count := 0

	for sc.Scan() {
		tok := sc.Text()

		v, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: sample %d: %q is not an integer", ErrInvalidValue, count, tok)
		}

		err = checkSample(v, p.bitDepth, count)
		if err != nil {
			return nil, err
		}

		if !declared && count >= MaxSamples {
			return nil, fmt.Errorf("%w: more than %d samples", ErrAllocationFailure, MaxSamples)
		}

		if !declared || count < want {
			samples = append(samples, int(v))
		}

		count++
	}

	err := sc.Err()
	if errors.Is(err, bufio.ErrTooLong) {
		return nil, fmt.Errorf("%w: sample %d: token longer than %d bytes", ErrInvalidValue, count, maxSampleToken)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read sample data: %w", err)
	}

	frames := p.samples
	if declared {
		if count != want {
			return nil, &CountMismatchError{Declared: want, Actual: count, Unit: "samples"}
		}
	} else {
		if count%p.channels != 0 {
			return nil, fmt.Errorf("%w: %d samples do not divide into %d channels",
				ErrTruncatedFrame, count, p.channels)
		}

		frames = count / p.channels
	}

	return &SoundFile{
		Format:     FormatText,
		SampleRate: p.sampleRate,
		BitDepth:   p.bitDepth,
		Channels:   p.channels,
		Frames:     frames,
		Samples:    samples,
	}, nil
}

// WriteText encodes s as CS229: the tag, the four keywords, StartData and
// one tab separated line per frame.
func WriteText(w io.Writer, s *SoundFile) error {
	if w == nil {
		return errNilWriter
	}

	err := s.Validate()
	if err != nil {
		return fmt.Errorf("invalid sound: %w", err)
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s\n", textTag)
	fmt.Fprintf(bw, "%s %d\n", kwSampleRate, s.SampleRate)
	fmt.Fprintf(bw, "%s %d\n", kwBitDepth, s.BitDepth)
	fmt.Fprintf(bw, "%s %d\n", kwChannels, s.Channels)
	fmt.Fprintf(bw, "%s %d\n", kwSamples, s.Frames)
	fmt.Fprintf(bw, "%s\n", kwStartData)

	line := make([]byte, 0, 12*s.Channels)
	for i := 0; i < s.Frames; i++ {
		line = line[:0]

		for j, v := range s.Frame(i) {
			if j > 0 {
				line = append(line, '\t')
			}

			line = strconv.AppendInt(line, int64(v), 10)
		}

		line = append(line, '\n')

		// bufio.Writer errors are sticky and surface on Flush
		_, _ = bw.Write(line)
	}

	err = bw.Flush()
	if err != nil {
		return fmt.Errorf("failed to write CS229 output: %w", err)
	}

	return nil
}
