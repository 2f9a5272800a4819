package objects

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/danmuck/wirepack/packer"
)

func sampleWire() []byte {
	var b bytes.Buffer
	b.WriteString("\x00\x00\x00\x04")
	// line
	b.WriteString("\x00\x00\x00\x06A line")
	b.WriteString("\x01\x00\x00\x00\x04\xC3\x98ve")
	b.WriteString("\x01\x00\x01")
	b.WriteString("\x00\x00\x00\x01\x00\x00\x00\x02\x00\x00\x00\x03")
	b.WriteString("\x00\x00\x00\x04\x00\x00\x00\x05\x00\x00\x00\x06")
	// polygon
	b.WriteString("\x00\x00\x00\x09A polygon")
	b.WriteString("\x01\x00\x00\x00\x06Bj\xC3\xB6rk")
	b.WriteString("\x01\x00\x02\x00\x00\x00\x03")
	b.WriteString("\x00\x00\x00\x01\x00\x00\x00\x01\x00\x00\x00\x00")
	b.WriteString("\xFF\xFF\xFF\xFF\x00\x00\x00\x01\x00\x00\x00\x00")
	b.WriteString("\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x02")
	// plane
	b.WriteString("\x00\x00\x00\x07A plane")
	b.WriteString("\x01\x00\x00\x00\x05Jos\xC3\xA9")
	b.WriteString("\x00\x12\x34")
	b.WriteString("\x00\x00\x00\x01\x00\x00\x00\x02\x00\x00\x00\x03")
	b.WriteString("\xFF\xFF\xFF\xFF\xFF\xFF\xFF\xFE\xFF\xFF\xFF\xFD")
	// sphere
	b.WriteString("\x00\x00\x00\x08A sphere")
	b.WriteString("\x00\x00\x43\x21")
	b.WriteString("\x00\x00\x00\x01\x00\x00\x00\x02\x00\x00\x00\x03\x00\x00\x00\x0A")
	return b.Bytes()
}

func TestSampleWireFormat(t *testing.T) {
	objs := Sample()
	want := sampleWire()
	require.Len(t, want, 197)
	require.Equal(t, 197, ObjectsPacker.Size(objs))

	got, err := ObjectsPacker.Pack(objs)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestSampleRoundTrip(t *testing.T) {
	objs := Sample()
	buf, err := ObjectsPacker.Pack(objs)
	require.NoError(t, err)

	out, pos, err := ObjectsPacker.Unpack(buf, 0)
	require.NoError(t, err)
	require.Equal(t, len(buf), pos)
	if diff := cmp.Diff(objs, Objects(out)); diff != "" {
		t.Fatalf("unpacked objects mismatch (-want +got):\n%s", diff)
	}

	again, err := ObjectsPacker.Pack(out)
	require.NoError(t, err)
	require.Equal(t, buf, again)
}

func TestSampleRecvChunked(t *testing.T) {
	buf := sampleWire()
	out, err := ObjectsPacker.Recv(iotest.OneByteReader(bytes.NewReader(buf)))
	require.NoError(t, err)
	if diff := cmp.Diff(Sample(), Objects(out)); diff != "" {
		t.Fatalf("received objects mismatch (-want +got):\n%s", diff)
	}
}

func TestSphereObjectSequence(t *testing.T) {
	one := Object{Name: "A", Visible: true, Shape: NewSphere(Sphere{C: Vector{1, 2, 3}, R: 4})}
	require.Equal(t, 25, ObjectPacker.Size(one))

	rec, err := ObjectPacker.Pack(one)
	require.NoError(t, err)
	require.Len(t, rec, 25)

	buf, err := ObjectsPacker.Pack(Objects{one, one, one})
	require.NoError(t, err)
	require.Len(t, buf, 79)
	require.Equal(t, []byte{0, 0, 0, 3}, buf[:4])
	for i := 0; i < 3; i++ {
		require.Equal(t, rec, buf[4+i*25:4+(i+1)*25])
	}

	out, pos, err := ObjectsPacker.Unpack(buf, 0)
	require.NoError(t, err)
	require.Equal(t, 79, pos)
	require.Len(t, out, 3)
}

func TestObjectsTruncated(t *testing.T) {
	buf := sampleWire()
	for cut := 0; cut < len(buf); cut++ {
		_, _, err := ObjectsPacker.Unpack(buf[:cut], 0)
		if !errors.Is(err, packer.ErrTruncated) {
			t.Fatalf("cut %d: expected ErrTruncated, got %v", cut, err)
		}
	}
}

func TestShapeUnknownType(t *testing.T) {
	buf := []byte{0x00, 0x09}
	_, _, err := ShapePacker.Unpack(buf, 0)
	if !errors.Is(err, packer.ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}

	_, err = ShapePacker.Pack(Shape{Type: ShapeType(9)})
	if !errors.Is(err, packer.ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestShapeNoneIsTagOnly(t *testing.T) {
	buf, err := ShapePacker.Pack(Shape{})
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0}, buf)
}

func TestObjectNameMustBeASCII(t *testing.T) {
	_, err := ObjectPacker.Pack(Object{Name: "Øve", Shape: Shape{}})
	if !errors.Is(err, packer.ErrEncoding) {
		t.Fatalf("expected ErrEncoding, got %v", err)
	}
	require.Contains(t, err.Error(), "name")
}

func TestFormat(t *testing.T) {
	out := Format(Sample())
	require.True(t, strings.HasPrefix(out, "Objects (4) {\n"))
	require.Contains(t, out, `creator: "Björk"`)
	require.Contains(t, out, "creator: <none>")
	require.Contains(t, out, "shape: ST_PLANE {")
	require.Contains(t, out, "vector[1]: { x: -1, y: 1, z: 0 }")
	require.Contains(t, out, "r: 10")

	var b bytes.Buffer
	require.NoError(t, Fprint(&b, Sample()))
	require.Equal(t, out, b.String())
}

func TestObjectsLimits(t *testing.T) {
	buf := sampleWire()

	_, _, err := NewObjectsPacker(Limits{MaxSequenceLen: 3}).Unpack(buf, 0)
	if !errors.Is(err, packer.ErrLengthOverflow) {
		t.Fatalf("expected ErrLengthOverflow for object count, got %v", err)
	}

	_, _, err = NewObjectsPacker(Limits{MaxStringLen: 8}).Unpack(buf, 0)
	if !errors.Is(err, packer.ErrLengthOverflow) {
		t.Fatalf("expected ErrLengthOverflow for name length, got %v", err)
	}

	out, pos, err := NewObjectsPacker(Limits{MaxStringLen: 9, MaxSequenceLen: 4}).Unpack(buf, 0)
	require.NoError(t, err)
	require.Equal(t, len(buf), pos)
	require.Len(t, out, 4)
}
