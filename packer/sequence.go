package packer

import (
	"io"

	"github.com/pkg/errors"
)

// recvPrealloc caps the capacity reserved up front for a streamed sequence.
const recvPrealloc = 1024

// SequencePacker encodes a slice as a 4-byte element count followed by
// each element.
//
// Element codecs must encode to at least one byte. Unpack rejects a count
// larger than the bytes that remain with ErrTruncated before allocating, so
// a sequence of zero-size elements does not round trip.
type SequencePacker[T any] struct {
	elem   Packer[T]
	maxLen uint32
}

func Sequence[T any](elem Packer[T]) SequencePacker[T] {
	return SequencePacker[T]{elem: elem}
}

// WithMaxLen returns a copy of p that rejects more than n elements.
func (p SequencePacker[T]) WithMaxLen(n uint32) SequencePacker[T] {
	p.maxLen = n
	return p
}

func (p SequencePacker[T]) Pack(v []T) ([]byte, error) {
	if err := checkLen(uint64(len(v)), p.maxLen); err != nil {
		return nil, err
	}
	out := make([]byte, LengthPrefix, p.Size(v))
	be.PutUint32(out, uint32(len(v)))
	for i, e := range v {
		b, err := p.elem.Pack(e)
		if err != nil {
			return nil, errors.WithMessagef(err, "element %d", i)
		}
		out = append(out, b...)
	}
	return out, nil
}

func (p SequencePacker[T]) Unpack(buf []byte, offset int) ([]T, int, error) {
	n, off, err := Uint32.Unpack(buf, offset)
	if err != nil {
		return nil, offset, err
	}
	if err := checkLen(uint64(n), p.maxLen); err != nil {
		return nil, offset, err
	}
	// Every element occupies at least one byte.
	if uint64(n) > uint64(len(buf)-off) {
		return nil, offset, truncated(int(n), off, len(buf)-off)
	}
	if n == 0 {
		return nil, off, nil
	}
	out := make([]T, 0, n)
	for i := 0; i < int(n); i++ {
		var e T
		if e, off, err = p.elem.Unpack(buf, off); err != nil {
			return nil, offset, errors.WithMessagef(err, "element %d", i)
		}
		out = append(out, e)
	}
	return out, off, nil
}

func (p SequencePacker[T]) Recv(r io.Reader) ([]T, error) {
	n, err := Uint32.Recv(r)
	if err != nil {
		return nil, err
	}
	if err := checkLen(uint64(n), p.maxLen); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	out := make([]T, 0, min(n, recvPrealloc))
	for i := 0; i < int(n); i++ {
		e, err := p.elem.Recv(r)
		if err != nil {
			return nil, errors.WithMessagef(err, "element %d", i)
		}
		out = append(out, e)
	}
	return out, nil
}

func (p SequencePacker[T]) Size(v []T) int {
	n := LengthPrefix
	for _, e := range v {
		n += p.elem.Size(e)
	}
	return n
}
