package packer

import (
	"encoding/binary"
	"io"
	"math"
)

var be = binary.BigEndian

// Fixed is a fixed-width primitive codec. Its fields are set once at
// package init and never change.
type Fixed[T any] struct {
	width int
	put   func([]byte, T)
	get   func([]byte) T
}

var (
	Int8 = Fixed[int8]{
		width: 1,
		put:   func(b []byte, v int8) { b[0] = byte(v) },
		get:   func(b []byte) int8 { return int8(b[0]) },
	}
	Int16 = Fixed[int16]{
		width: 2,
		put:   func(b []byte, v int16) { be.PutUint16(b, uint16(v)) },
		get:   func(b []byte) int16 { return int16(be.Uint16(b)) },
	}
	Int32 = Fixed[int32]{
		width: 4,
		put:   func(b []byte, v int32) { be.PutUint32(b, uint32(v)) },
		get:   func(b []byte) int32 { return int32(be.Uint32(b)) },
	}
	Int64 = Fixed[int64]{
		width: 8,
		put:   func(b []byte, v int64) { be.PutUint64(b, uint64(v)) },
		get:   func(b []byte) int64 { return int64(be.Uint64(b)) },
	}
	Uint8 = Fixed[uint8]{
		width: 1,
		put:   func(b []byte, v uint8) { b[0] = v },
		get:   func(b []byte) uint8 { return b[0] },
	}
	Uint16 = Fixed[uint16]{
		width: 2,
		put:   be.PutUint16,
		get:   be.Uint16,
	}
	Uint32 = Fixed[uint32]{
		width: 4,
		put:   be.PutUint32,
		get:   be.Uint32,
	}
	Uint64 = Fixed[uint64]{
		width: 8,
		put:   be.PutUint64,
		get:   be.Uint64,
	}
	Float32 = Fixed[float32]{
		width: 4,
		put:   func(b []byte, v float32) { be.PutUint32(b, math.Float32bits(v)) },
		get:   func(b []byte) float32 { return math.Float32frombits(be.Uint32(b)) },
	}
	Float64 = Fixed[float64]{
		width: 8,
		put:   func(b []byte, v float64) { be.PutUint64(b, math.Float64bits(v)) },
		get:   func(b []byte) float64 { return math.Float64frombits(be.Uint64(b)) },
	}
	// Bool packs true as 0x01. Any nonzero byte decodes as true.
	Bool = Fixed[bool]{
		width: 1,
		put: func(b []byte, v bool) {
			if v {
				b[0] = 1
			} else {
				b[0] = 0
			}
		},
		get: func(b []byte) bool { return b[0] != 0 },
	}
)

// Width returns the encoded size in bytes.
func (f Fixed[T]) Width() int { return f.width }

func (f Fixed[T]) Pack(v T) ([]byte, error) {
	b := make([]byte, f.width)
	f.put(b, v)
	return b, nil
}

func (f Fixed[T]) Unpack(buf []byte, offset int) (T, int, error) {
	b, err := span(buf, offset, f.width)
	if err != nil {
		var zero T
		return zero, offset, err
	}
	return f.get(b), offset + f.width, nil
}

func (f Fixed[T]) Recv(r io.Reader) (T, error) {
	b, err := RecvExact(r, f.width)
	if err != nil {
		var zero T
		return zero, err
	}
	return f.get(b), nil
}

func (f Fixed[T]) Size(T) int { return f.width }
