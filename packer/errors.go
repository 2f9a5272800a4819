package packer

import "github.com/pkg/errors"

var (
	ErrTruncated      = errors.New("packer: truncated data")
	ErrConnectionLost = errors.New("packer: connection lost")
	ErrEncoding       = errors.New("packer: value not representable in encoding")
	ErrDecoding       = errors.New("packer: invalid encoded string")
	ErrUnknownVariant = errors.New("packer: unknown variant")
	ErrInvalidWidth   = errors.New("packer: invalid integer width")
	ErrLengthOverflow = errors.New("packer: length overflow")
	ErrTrailingBytes  = errors.New("packer: trailing bytes after value")
)

func truncated(need, offset, have int) error {
	if have < 0 {
		have = 0
	}
	return errors.Wrapf(ErrTruncated, "need %d bytes at offset %d, have %d", need, offset, have)
}

// span returns buf[offset:offset+n] or ErrTruncated.
func span(buf []byte, offset, n int) ([]byte, error) {
	if offset < 0 || n < 0 || offset > len(buf) || len(buf)-offset < n {
		return nil, truncated(n, offset, len(buf)-offset)
	}
	return buf[offset : offset+n], nil
}
