package packer

import (
	"io"
	"net"
	"slices"

	"github.com/pkg/errors"
)

// recvChunk bounds how far the buffer grows ahead of the bytes actually
// received, so a large announced length costs memory only as data arrives.
const recvChunk = 64 << 10

// RecvExact reads exactly n bytes from r.
//
// Short reads are retried with the remaining count. A read that makes no
// progress, or that reports end of stream before n bytes arrived, fails with
// ErrConnectionLost and is not retried. Other read errors, such as an
// expired deadline installed by the caller, are returned wrapped with their
// identity intact.
func RecvExact(r io.Reader, n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrLengthOverflow, "negative read size %d", n)
	}
	buf := make([]byte, 0, min(n, recvChunk))
	for len(buf) < n {
		if len(buf) == cap(buf) {
			buf = slices.Grow(buf, min(n-len(buf), max(len(buf), recvChunk)))
		}
		m, err := r.Read(buf[len(buf):min(cap(buf), n)])
		if m > 0 {
			buf = buf[:len(buf)+m]
		}
		if len(buf) == n {
			return buf, nil
		}
		if err != nil {
			if closed(err) {
				return nil, errors.Wrapf(ErrConnectionLost, "read %d of %d bytes", len(buf), n)
			}
			return nil, errors.Wrapf(err, "packer: read %d of %d bytes", len(buf), n)
		}
		if m == 0 {
			return nil, errors.Wrapf(ErrConnectionLost, "empty read after %d of %d bytes", len(buf), n)
		}
	}
	return buf, nil
}

func closed(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, net.ErrClosed)
}
