package packer

import (
	"io"

	"github.com/pkg/errors"
)

// OptionalPacker encodes a nil-able value as a presence byte, followed by
// the value when present.
type OptionalPacker[T any] struct {
	elem Packer[T]
}

func Optional[T any](elem Packer[T]) OptionalPacker[T] {
	return OptionalPacker[T]{elem: elem}
}

func (p OptionalPacker[T]) Pack(v *T) ([]byte, error) {
	if v == nil {
		return Bool.Pack(false)
	}
	b, err := p.elem.Pack(*v)
	if err != nil {
		return nil, errors.WithMessage(err, "optional")
	}
	return append([]byte{1}, b...), nil
}

func (p OptionalPacker[T]) Unpack(buf []byte, offset int) (*T, int, error) {
	present, off, err := Bool.Unpack(buf, offset)
	if err != nil || !present {
		return nil, off, err
	}
	v, off, err := p.elem.Unpack(buf, off)
	if err != nil {
		return nil, offset, errors.WithMessage(err, "optional")
	}
	return &v, off, nil
}

func (p OptionalPacker[T]) Recv(r io.Reader) (*T, error) {
	present, err := Bool.Recv(r)
	if err != nil || !present {
		return nil, err
	}
	v, err := p.elem.Recv(r)
	if err != nil {
		return nil, errors.WithMessage(err, "optional")
	}
	return &v, nil
}

func (p OptionalPacker[T]) Size(v *T) int {
	if v == nil {
		return 1
	}
	return 1 + p.elem.Size(*v)
}
