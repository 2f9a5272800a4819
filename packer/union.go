package packer

import (
	"io"

	"github.com/pkg/errors"
)

// Case maps one discriminant value to the record member that carries the
// variant payload. A nil Field marks a variant without payload.
type Case[T any, K comparable] struct {
	Tag   K
	Field Field[T]
}

// UnionPacker encodes a tagged union held in a record type T: the
// discriminant member first, then only the member of the active variant.
type UnionPacker[T any, K comparable] struct {
	name  string
	tag   Field[T]
	tagOf func(*T) *K
	cases map[K]Field[T]
}

// Union declares a tagged union. tag is the discriminant member of T and
// tagPacker its fixed-width codec. The case table is read only after
// construction.
func Union[T any, K comparable](name string, tag func(*T) *K, tagPacker Packer[K], cases ...Case[T, K]) UnionPacker[T, K] {
	m := make(map[K]Field[T], len(cases))
	for _, c := range cases {
		m[c.Tag] = c.Field
	}
	return UnionPacker[T, K]{
		name:  name,
		tag:   FieldOf(name+".tag", tag, tagPacker),
		tagOf: tag,
		cases: m,
	}
}

func (p UnionPacker[T, K]) Name() string { return p.name }

func (p UnionPacker[T, K]) variant(v *T) (Field[T], error) {
	k := *p.tagOf(v)
	f, ok := p.cases[k]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownVariant, "%s tag %v", p.name, k)
	}
	return f, nil
}

func (p UnionPacker[T, K]) Pack(v T) ([]byte, error) {
	f, err := p.variant(&v)
	if err != nil {
		return nil, err
	}
	out, err := p.tag.pack(make([]byte, 0, p.Size(v)), &v)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return out, nil
	}
	out, err = f.pack(out, &v)
	if err != nil {
		return nil, errors.WithMessage(err, p.name)
	}
	return out, nil
}

func (p UnionPacker[T, K]) Unpack(buf []byte, offset int) (T, int, error) {
	var v, zero T
	off, err := p.tag.unpack(buf, offset, &v)
	if err != nil {
		return zero, offset, err
	}
	f, err := p.variant(&v)
	if err != nil {
		return zero, offset, err
	}
	if f == nil {
		return v, off, nil
	}
	if off, err = f.unpack(buf, off, &v); err != nil {
		return zero, offset, errors.WithMessage(err, p.name)
	}
	return v, off, nil
}

func (p UnionPacker[T, K]) Recv(r io.Reader) (T, error) {
	var v, zero T
	if err := p.tag.recv(r, &v); err != nil {
		return zero, err
	}
	f, err := p.variant(&v)
	if err != nil {
		return zero, err
	}
	if f == nil {
		return v, nil
	}
	if err := f.recv(r, &v); err != nil {
		return zero, errors.WithMessage(err, p.name)
	}
	return v, nil
}

// Size of a value whose tag has no case counts only the tag.
func (p UnionPacker[T, K]) Size(v T) int {
	n := p.tag.size(&v)
	if f, ok := p.cases[*p.tagOf(&v)]; ok && f != nil {
		n += f.size(&v)
	}
	return n
}
