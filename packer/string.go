package packer

import (
	"io"
	"math"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// LengthPrefix is the size of the big-endian length in front of strings,
// byte strings and sequences.
const LengthPrefix = 4

type charset uint8

const (
	charsetASCII charset = iota + 1
	charsetUTF8
)

// StringPacker encodes a string as a 4-byte byte count followed by the
// encoded bytes.
type StringPacker struct {
	charset charset
	maxLen  uint32
}

var (
	// ASCII accepts only 7-bit bytes in both directions.
	ASCII = StringPacker{charset: charsetASCII}
	// UTF8 accepts only well-formed UTF-8 in both directions.
	UTF8 = StringPacker{charset: charsetUTF8}
)

// WithMaxLen returns a copy of p that rejects payloads longer than n bytes
// with ErrLengthOverflow. Zero means no limit beyond the prefix range.
func (p StringPacker) WithMaxLen(n uint32) StringPacker {
	p.maxLen = n
	return p
}

func (p StringPacker) Pack(s string) ([]byte, error) {
	if err := p.check(s, ErrEncoding); err != nil {
		return nil, err
	}
	return packFramed([]byte(s), p.maxLen)
}

func (p StringPacker) Unpack(buf []byte, offset int) (string, int, error) {
	b, next, err := unpackFramed(buf, offset, p.maxLen)
	if err != nil {
		return "", offset, err
	}
	s := string(b)
	if err := p.check(s, ErrDecoding); err != nil {
		return "", offset, err
	}
	return s, next, nil
}

func (p StringPacker) Recv(r io.Reader) (string, error) {
	b, err := recvFramed(r, p.maxLen)
	if err != nil {
		return "", err
	}
	s := string(b)
	if err := p.check(s, ErrDecoding); err != nil {
		return "", err
	}
	return s, nil
}

func (p StringPacker) Size(s string) int { return LengthPrefix + len(s) }

func (p StringPacker) check(s string, kind error) error {
	switch p.charset {
	case charsetASCII:
		for i := 0; i < len(s); i++ {
			if s[i] >= utf8.RuneSelf {
				return errors.Wrapf(kind, "byte 0x%02x at %d is not ascii", s[i], i)
			}
		}
	case charsetUTF8:
		if !utf8.ValidString(s) {
			return errors.Wrap(kind, "invalid utf-8")
		}
	}
	return nil
}

// BytesPacker uses the string framing for opaque bytes. It performs no
// character validation. Decoded slices never alias the input buffer.
type BytesPacker struct {
	maxLen uint32
}

var Bytes = BytesPacker{}

func (p BytesPacker) WithMaxLen(n uint32) BytesPacker {
	p.maxLen = n
	return p
}

func (p BytesPacker) Pack(b []byte) ([]byte, error) { return packFramed(b, p.maxLen) }

func (p BytesPacker) Unpack(buf []byte, offset int) ([]byte, int, error) {
	b, next, err := unpackFramed(buf, offset, p.maxLen)
	if err != nil {
		return nil, offset, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, next, nil
}

func (p BytesPacker) Recv(r io.Reader) ([]byte, error) { return recvFramed(r, p.maxLen) }

func (p BytesPacker) Size(b []byte) int { return LengthPrefix + len(b) }

func checkLen(n uint64, maxLen uint32) error {
	if n > math.MaxUint32 {
		return errors.Wrapf(ErrLengthOverflow, "length %d exceeds prefix range", n)
	}
	if maxLen > 0 && n > uint64(maxLen) {
		return errors.Wrapf(ErrLengthOverflow, "length %d exceeds limit %d", n, maxLen)
	}
	return nil
}

func packFramed(payload []byte, maxLen uint32) ([]byte, error) {
	if err := checkLen(uint64(len(payload)), maxLen); err != nil {
		return nil, err
	}
	out := make([]byte, LengthPrefix+len(payload))
	be.PutUint32(out, uint32(len(payload)))
	copy(out[LengthPrefix:], payload)
	return out, nil
}

// unpackFramed returns a slice of buf holding the payload.
func unpackFramed(buf []byte, offset int, maxLen uint32) ([]byte, int, error) {
	n, next, err := Uint32.Unpack(buf, offset)
	if err != nil {
		return nil, offset, err
	}
	if err := checkLen(uint64(n), maxLen); err != nil {
		return nil, offset, err
	}
	b, err := span(buf, next, int(n))
	if err != nil {
		return nil, offset, err
	}
	return b, next + int(n), nil
}

func recvFramed(r io.Reader, maxLen uint32) ([]byte, error) {
	n, err := Uint32.Recv(r)
	if err != nil {
		return nil, err
	}
	if err := checkLen(uint64(n), maxLen); err != nil {
		return nil, err
	}
	return RecvExact(r, int(n))
}
