package packer

import (
	"io"

	"github.com/pkg/errors"
)

// MaxUintWidth is the widest arbitrary-width integer, in bytes.
const MaxUintWidth = 8

// PackUint encodes the low 8n bits of v in n bytes, most significant first.
// Higher bits are dropped without error.
func PackUint(n int, v uint64) ([]byte, error) {
	if err := checkWidth(n); err != nil {
		return nil, err
	}
	b := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		b[n-1-i] = byte(v >> (8 * uint(i)))
	}
	return b, nil
}

// UnpackUint decodes an n-byte big-endian unsigned integer at offset.
func UnpackUint(n int, buf []byte, offset int) (uint64, int, error) {
	if err := checkWidth(n); err != nil {
		return 0, offset, err
	}
	b, err := span(buf, offset, n)
	if err != nil {
		return 0, offset, err
	}
	var v uint64
	for i := n - 1; i >= 0; i-- {
		v |= uint64(b[n-1-i]) << (8 * uint(i))
	}
	return v, offset + n, nil
}

// RecvUint reads n bytes from r and decodes them as UnpackUint does.
func RecvUint(n int, r io.Reader) (uint64, error) {
	if err := checkWidth(n); err != nil {
		return 0, err
	}
	b, err := RecvExact(r, n)
	if err != nil {
		return 0, err
	}
	v, _, err := UnpackUint(n, b, 0)
	return v, err
}

func checkWidth(n int) error {
	if n < 1 || n > MaxUintWidth {
		return errors.Wrapf(ErrInvalidWidth, "width %d not in 1..%d", n, MaxUintWidth)
	}
	return nil
}

// UintPacker is the Packer form of the arbitrary-width integer codec.
type UintPacker struct {
	width int
}

// UintN returns a codec for n-byte unsigned integers. An out of range width
// is reported by every operation as ErrInvalidWidth.
func UintN(n int) UintPacker { return UintPacker{width: n} }

func (p UintPacker) Width() int { return p.width }

func (p UintPacker) Pack(v uint64) ([]byte, error) { return PackUint(p.width, v) }

func (p UintPacker) Unpack(buf []byte, offset int) (uint64, int, error) {
	return UnpackUint(p.width, buf, offset)
}

func (p UintPacker) Recv(r io.Reader) (uint64, error) { return RecvUint(p.width, r) }

func (p UintPacker) Size(uint64) int { return p.width }

// Integer is the set of types an enum may be declared over.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// EnumPacker encodes an enumeration as an unsigned integer of a declared
// width. Enumerators must be non-negative and fit both the width and E; a
// wire value that does not convert back to itself is ErrUnknownVariant.
type EnumPacker[E Integer] struct {
	width int
}

func Enum[E Integer](width int) EnumPacker[E] { return EnumPacker[E]{width: width} }

func (p EnumPacker[E]) Width() int { return p.width }

func (p EnumPacker[E]) Pack(v E) ([]byte, error) {
	if err := checkWidth(p.width); err != nil {
		return nil, err
	}
	if v < 0 || (p.width < MaxUintWidth && uint64(v)>>(8*uint(p.width)) != 0) {
		return nil, errors.Wrapf(ErrUnknownVariant, "enumerator %d does not fit %d bytes", v, p.width)
	}
	return PackUint(p.width, uint64(v))
}

func (p EnumPacker[E]) Unpack(buf []byte, offset int) (E, int, error) {
	v, next, err := UnpackUint(p.width, buf, offset)
	if err != nil {
		return 0, offset, err
	}
	e, err := p.convert(v)
	if err != nil {
		return 0, offset, err
	}
	return e, next, nil
}

func (p EnumPacker[E]) Recv(r io.Reader) (E, error) {
	v, err := RecvUint(p.width, r)
	if err != nil {
		return 0, err
	}
	return p.convert(v)
}

func (p EnumPacker[E]) Size(E) int { return p.width }

func (p EnumPacker[E]) convert(v uint64) (E, error) {
	e := E(v)
	if e < 0 || uint64(e) != v {
		return 0, errors.Wrapf(ErrUnknownVariant, "value %d out of range for %d-byte enum", v, p.width)
	}
	return e, nil
}
