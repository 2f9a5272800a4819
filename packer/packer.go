package packer

import (
	"io"

	"github.com/pkg/errors"
)

// Packer converts values of type T to and from their wire encoding.
//
// Unpack decodes one value starting at offset and returns the offset just
// past it. On failure it returns the zero value and the offset it was given.
// Recv decodes one value by reading exactly its encoding from r.
// Size reports len(Pack(v)) without encoding.
type Packer[T any] interface {
	Pack(v T) ([]byte, error)
	Unpack(buf []byte, offset int) (T, int, error)
	Recv(r io.Reader) (T, error)
	Size(v T) int
}

// Write packs v and writes the whole encoding to w.
func Write[T any](w io.Writer, p Packer[T], v T) error {
	b, err := p.Pack(v)
	if err != nil {
		return err
	}
	n, err := w.Write(b)
	if err != nil {
		return errors.Wrapf(err, "packer: write %d bytes", len(b))
	}
	if n != len(b) {
		return io.ErrShortWrite
	}
	return nil
}

// Decode unpacks a single value that must occupy all of buf.
func Decode[T any](p Packer[T], buf []byte) (T, error) {
	v, n, err := p.Unpack(buf, 0)
	if err != nil {
		var zero T
		return zero, err
	}
	if n != len(buf) {
		var zero T
		return zero, errors.Wrapf(ErrTrailingBytes, "%d bytes left", len(buf)-n)
	}
	return v, nil
}

var (
	_ Packer[int32]    = Int32
	_ Packer[bool]     = Bool
	_ Packer[uint64]   = UintPacker{}
	_ Packer[string]   = ASCII
	_ Packer[[]byte]   = Bytes
	_ Packer[[]int32]  = SequencePacker[int32]{}
	_ Packer[*float64] = OptionalPacker[float64]{}
)
