package packer

import (
	"bytes"
	"errors"
	"testing"
)

func TestPackUintWidths(t *testing.T) {
	cases := []struct {
		n    int
		v    uint64
		want []byte
	}{
		{1, 0x7F, []byte{0x7F}},
		{2, 0x0001, []byte{0x00, 0x01}},
		{3, 0x123456, []byte{0x12, 0x34, 0x56}},
		{5, 0x0102030405, []byte{0x01, 0x02, 0x03, 0x04, 0x05}},
		{8, 0x0102030405060708, []byte{1, 2, 3, 4, 5, 6, 7, 8}},
	}
	for _, tc := range cases {
		got, err := PackUint(tc.n, tc.v)
		if err != nil {
			t.Fatalf("pack n=%d: %v", tc.n, err)
		}
		if !bytes.Equal(got, tc.want) {
			t.Fatalf("pack n=%d: got % x want % x", tc.n, got, tc.want)
		}
		v, off, err := UnpackUint(tc.n, got, 0)
		if err != nil || v != tc.v || off != tc.n {
			t.Fatalf("unpack n=%d: v=%x off=%d err=%v", tc.n, v, off, err)
		}
	}
}

func TestPackUintTruncatesOverflow(t *testing.T) {
	got, err := PackUint(2, 0xABCDEF)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if !bytes.Equal(got, []byte{0xCD, 0xEF}) {
		t.Fatalf("got % x", got)
	}
}

func TestUintInvalidWidth(t *testing.T) {
	for _, n := range []int{0, -1, 9} {
		if _, err := PackUint(n, 1); !errors.Is(err, ErrInvalidWidth) {
			t.Fatalf("pack n=%d: expected ErrInvalidWidth, got %v", n, err)
		}
		if _, _, err := UnpackUint(n, make([]byte, 16), 0); !errors.Is(err, ErrInvalidWidth) {
			t.Fatalf("unpack n=%d: expected ErrInvalidWidth, got %v", n, err)
		}
		if _, err := UintN(n).Recv(bytes.NewReader(make([]byte, 16))); !errors.Is(err, ErrInvalidWidth) {
			t.Fatalf("recv n=%d: expected ErrInvalidWidth, got %v", n, err)
		}
	}
}

func TestUnpackUintTruncated(t *testing.T) {
	_, off, err := UnpackUint(3, []byte{0x01, 0x02, 0x03, 0x04}, 2)
	if !errors.Is(err, ErrTruncated) || off != 2 {
		t.Fatalf("expected ErrTruncated at 2, got off=%d err=%v", off, err)
	}
}

func TestRecvUint(t *testing.T) {
	r := bytes.NewReader([]byte{0x00, 0x00, 0x2A, 0xFF})
	v, err := RecvUint(3, r)
	if err != nil || v != 42 {
		t.Fatalf("v=%d err=%v", v, err)
	}
	if _, err := RecvUint(3, r); !errors.Is(err, ErrConnectionLost) {
		t.Fatalf("expected ErrConnectionLost, got %v", err)
	}
}

type color uint16

const (
	colorRed color = iota + 1
	colorGreen
)

func TestEnumUsesDeclaredWidth(t *testing.T) {
	p := Enum[color](3)
	b, err := p.Pack(colorGreen)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if !bytes.Equal(b, []byte{0x00, 0x00, 0x02}) {
		t.Fatalf("got % x", b)
	}
	v, off, err := p.Unpack(b, 0)
	if err != nil || v != colorGreen || off != 3 {
		t.Fatalf("v=%d off=%d err=%v", v, off, err)
	}
	v, err = p.Recv(bytes.NewReader([]byte{0, 0, 1}))
	if err != nil || v != colorRed {
		t.Fatalf("recv v=%d err=%v", v, err)
	}
}

func TestEnumRejectsValuesOutsideType(t *testing.T) {
	p := Enum[uint8](2)
	if _, _, err := p.Unpack([]byte{0x01, 0x00}, 0); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
	if _, err := p.Recv(bytes.NewReader([]byte{0x01, 0x00})); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
	v, off, err := p.Unpack([]byte{0x00, 0xFF}, 0)
	if err != nil || v != 0xFF || off != 2 {
		t.Fatalf("v=%d off=%d err=%v", v, off, err)
	}

	s := Enum[int8](1)
	if _, _, err := s.Unpack([]byte{0x80}, 0); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant for negative enumerator, got %v", err)
	}
}

func TestEnumPackRejectsUnrepresentable(t *testing.T) {
	if _, err := Enum[int16](2).Pack(-1); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant for negative value, got %v", err)
	}
	if _, err := Enum[uint16](1).Pack(0x100); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant for wide value, got %v", err)
	}
	b, err := Enum[uint64](8).Pack(^uint64(0))
	if err != nil || len(b) != 8 {
		t.Fatalf("b=% x err=%v", b, err)
	}
}
