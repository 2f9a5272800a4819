package packer

import (
	"bytes"
	"errors"
	"io"
	"net"
	"os"
	"testing"
	"time"
)

// chunkReader hands out at most chunk bytes per Read.
type chunkReader struct {
	data  []byte
	chunk int
	reads int
}

func (r *chunkReader) Read(p []byte) (int, error) {
	r.reads++
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := min(len(p), r.chunk, len(r.data))
	copy(p, r.data[:n])
	r.data = r.data[n:]
	return n, nil
}

// stallReader returns a fixed prefix, then zero bytes with no error.
type stallReader struct {
	data []byte
}

func (r *stallReader) Read(p []byte) (int, error) {
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

type failReader struct{ err error }

func (r failReader) Read([]byte) (int, error) { return 0, r.err }

func TestRecvExactRetriesShortReads(t *testing.T) {
	r := &chunkReader{data: []byte{1, 2, 3, 4, 5, 6, 7}, chunk: 2}
	got, err := RecvExact(r, 7)
	if err != nil {
		t.Fatalf("recv: %v", err)
	}
	if !bytes.Equal(got, []byte{1, 2, 3, 4, 5, 6, 7}) {
		t.Fatalf("got % x", got)
	}
	if r.reads != 4 {
		t.Fatalf("expected 4 reads, got %d", r.reads)
	}
}

func TestRecvExactZeroCount(t *testing.T) {
	got, err := RecvExact(failReader{err: errors.New("must not read")}, 0)
	if err != nil || len(got) != 0 {
		t.Fatalf("got=%v err=%v", got, err)
	}
}

func TestRecvExactConnectionLost(t *testing.T) {
	if _, err := RecvExact(bytes.NewReader([]byte{1, 2}), 4); !errors.Is(err, ErrConnectionLost) {
		t.Fatalf("eof: expected ErrConnectionLost, got %v", err)
	}
	if _, err := RecvExact(&stallReader{data: []byte{1}}, 4); !errors.Is(err, ErrConnectionLost) {
		t.Fatalf("empty read: expected ErrConnectionLost, got %v", err)
	}
	if _, err := RecvExact(failReader{err: net.ErrClosed}, 1); !errors.Is(err, ErrConnectionLost) {
		t.Fatalf("closed: expected ErrConnectionLost, got %v", err)
	}
}

func TestRecvExactKeepsForeignErrors(t *testing.T) {
	_, err := RecvExact(failReader{err: os.ErrDeadlineExceeded}, 1)
	if !errors.Is(err, os.ErrDeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if errors.Is(err, ErrConnectionLost) {
		t.Fatalf("deadline must not be reported as connection loss")
	}
}

func TestRecvExactOverPipe(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	go func() {
		for _, b := range [][]byte{{0x00, 0x00}, {0x00, 0x05, 'h'}, {'e', 'l', 'l', 'o'}} {
			client.Write(b)
		}
		client.Close()
	}()

	server.SetReadDeadline(time.Now().Add(2 * time.Second))
	s, err := UTF8.Recv(server)
	if err != nil || s != "hello" {
		t.Fatalf("s=%q err=%v", s, err)
	}
	if _, err := Int32.Recv(server); !errors.Is(err, ErrConnectionLost) {
		t.Fatalf("expected ErrConnectionLost after close, got %v", err)
	}
}

func TestWriteAndDecode(t *testing.T) {
	var buf bytes.Buffer
	if err := Write[string](&buf, UTF8, "hi"); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := Decode[string](UTF8, buf.Bytes())
	if err != nil || s != "hi" {
		t.Fatalf("s=%q err=%v", s, err)
	}
	if _, err := Decode[string](UTF8, append(buf.Bytes(), 0)); !errors.Is(err, ErrTrailingBytes) {
		t.Fatalf("expected trailing bytes error, got %v", err)
	}
}
