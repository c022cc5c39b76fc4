package snd

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const extendedBias = 16383

var errFieldWidth = errors.New("big endian field must be 1 to 4 bytes")

// ReadBigEndianInt interprets a 1 to 4 byte big-endian two's complement field.
func ReadBigEndianInt(b []byte) (int64, error) {
	u, err := ReadBigEndianUint(b)
	if err != nil {
		return 0, err
	}

	bits := uint(len(b) * 8)
	if u&(1<<(bits-1)) != 0 {
		return int64(u) - int64(1)<<bits, nil
	}

	return int64(u), nil
}

// ReadBigEndianUint interprets a 1 to 4 byte big-endian unsigned field.
func ReadBigEndianUint(b []byte) (uint64, error) {
	if len(b) == 0 || len(b) > 4 {
		return 0, fmt.Errorf("%w: got %d", errFieldWidth, len(b))
	}

	var u uint64
	for _, c := range b {
		u = u<<8 | uint64(c)
	}

	return u, nil
}

// AppendBigEndianInt appends v as a width byte big-endian field, keeping
// only the low width*8 bits. Width must be 1, 2 or 4.
func AppendBigEndianInt(dst []byte, v int64, width int) []byte {
	switch width {
	case 1:
		return append(dst, byte(v))
	case 2:
		return binary.BigEndian.AppendUint16(dst, uint16(v))
	case 4:
		return binary.BigEndian.AppendUint32(dst, uint32(v))
	default:
		panic(fmt.Sprintf("snd: unsupported field width %d", width))
	}
}

// readBEInt reads an n byte signed field from r.
func readBEInt(r io.Reader, n int) (int64, error) {
	var buf [4]byte

	if err := readFull(r, buf[:n]); err != nil {
		return 0, err
	}

	return ReadBigEndianInt(buf[:n])
}

// readBEUint reads an n byte unsigned field from r.
func readBEUint(r io.Reader, n int) (uint64, error) {
	var buf [4]byte

	if err := readFull(r, buf[:n]); err != nil {
		return 0, err
	}

	return ReadBigEndianUint(buf[:n])
}

func readFull(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: wanted %d bytes", ErrTruncatedInput, len(buf))
	}

	return err
}

// skip discards n bytes from r.
func skip(r io.Reader, n int64) error {
	if n <= 0 {
		return nil
	}

	copied, err := io.CopyN(io.Discard, r, n)
	if errors.Is(err, io.EOF) || (err == nil && copied < n) {
		return fmt.Errorf("%w: could only skip %d of %d bytes", ErrTruncatedInput, copied, n)
	}

	return err
}

// ExtendedToSampleRate converts the 80 bit extended precision sample rate
// of a COMM chunk to an integer, rounding on the last bit shifted out.
//
// The low byte of the exponent carries the shift: the top 32 mantissa bits
// are shifted right by 30 - exponentByte. Exponents written with the usual
// 16383 bias (high byte 0x40 for audio rates) give the same shift.
func ExtendedToSampleRate(b [10]byte) (uint32, error) {
	if b[0]&0x80 != 0 {
		return 0, fmt.Errorf("%w: negative sample rate", ErrInvalidValue)
	}

	mantissa := uint64(binary.BigEndian.Uint32(b[2:6]))
	if mantissa == 0 {
		return 0, nil
	}

	var shift int

	exp := int(binary.BigEndian.Uint16(b[0:2]))
	if b[0] == 0 {
		// one byte exponent convention
		shift = 30 - int(b[1])
	} else {
		shift = 31 - (exp - extendedBias)
	}

	if shift < 0 {
		return 0, fmt.Errorf("%w: sample rate exponent %#04x overflows 32 bits", ErrInvalidValue, exp)
	}

	if shift > 32 {
		return 0, nil
	}

	rate := mantissa >> uint(shift)
	if shift > 0 && (mantissa>>uint(shift-1))&1 == 1 {
		rate++
	}

	if rate > 0xFFFFFFFF {
		return 0, fmt.Errorf("%w: sample rate overflows 32 bits", ErrInvalidValue)
	}

	return uint32(rate), nil
}

// SampleRateToExtended is the inverse of ExtendedToSampleRate. The value is
// normalized by left shifts until its top bit is set; the exponent records
// the shift count.
func SampleRateToExtended(rate uint32) [10]byte {
	var out [10]byte

	if rate == 0 {
		return out
	}

	shifts := 0
	for rate&0x80000000 == 0 {
		rate <<= 1
		shifts++
	}

	binary.BigEndian.PutUint16(out[0:2], uint16(extendedBias+31-shifts))
	binary.BigEndian.PutUint32(out[2:6], rate)

	return out
}
