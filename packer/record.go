package packer

import (
	"io"

	"github.com/pkg/errors"
)

// Field binds one member of a record type T to the codec for that member.
// Fields are created with FieldOf.
type Field[T any] interface {
	Name() string

	pack(dst []byte, rec *T) ([]byte, error)
	unpack(buf []byte, offset int, rec *T) (int, error)
	recv(r io.Reader, rec *T) error
	size(rec *T) int
}

type field[T, F any] struct {
	name string
	ref  func(*T) *F
	p    Packer[F]
}

// FieldOf declares a record member. ref must return the address of the
// member inside the record it is given.
func FieldOf[T, F any](name string, ref func(*T) *F, p Packer[F]) Field[T] {
	return field[T, F]{name: name, ref: ref, p: p}
}

func (f field[T, F]) Name() string { return f.name }

func (f field[T, F]) pack(dst []byte, rec *T) ([]byte, error) {
	b, err := f.p.Pack(*f.ref(rec))
	if err != nil {
		return nil, errors.WithMessagef(err, "field %s", f.name)
	}
	return append(dst, b...), nil
}

func (f field[T, F]) unpack(buf []byte, offset int, rec *T) (int, error) {
	v, next, err := f.p.Unpack(buf, offset)
	if err != nil {
		return offset, errors.WithMessagef(err, "field %s", f.name)
	}
	*f.ref(rec) = v
	return next, nil
}

func (f field[T, F]) recv(r io.Reader, rec *T) error {
	v, err := f.p.Recv(r)
	if err != nil {
		return errors.WithMessagef(err, "field %s", f.name)
	}
	*f.ref(rec) = v
	return nil
}

func (f field[T, F]) size(rec *T) int { return f.p.Size(*f.ref(rec)) }

// RecordPacker encodes the declared fields of T back to back, in
// declaration order. The order is part of the wire contract.
type RecordPacker[T any] struct {
	name   string
	fields []Field[T]
}

func Record[T any](name string, fields ...Field[T]) RecordPacker[T] {
	return RecordPacker[T]{name: name, fields: fields}
}

func (p RecordPacker[T]) Name() string { return p.name }

func (p RecordPacker[T]) Pack(v T) ([]byte, error) {
	out := make([]byte, 0, p.Size(v))
	var err error
	for _, f := range p.fields {
		if out, err = f.pack(out, &v); err != nil {
			return nil, errors.WithMessage(err, p.name)
		}
	}
	return out, nil
}

func (p RecordPacker[T]) Unpack(buf []byte, offset int) (T, int, error) {
	var v T
	off := offset
	var err error
	for _, f := range p.fields {
		if off, err = f.unpack(buf, off, &v); err != nil {
			var zero T
			return zero, offset, errors.WithMessage(err, p.name)
		}
	}
	return v, off, nil
}

func (p RecordPacker[T]) Recv(r io.Reader) (T, error) {
	var v T
	for _, f := range p.fields {
		if err := f.recv(r, &v); err != nil {
			var zero T
			return zero, errors.WithMessage(err, p.name)
		}
	}
	return v, nil
}

func (p RecordPacker[T]) Size(v T) int {
	var n int
	for _, f := range p.fields {
		n += f.size(&v)
	}
	return n
}
