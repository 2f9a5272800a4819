package observability

import (
	"errors"

	"github.com/danmuck/wirepack/packer"
)

var classes = []struct {
	err   error
	label string
}{
	{packer.ErrConnectionLost, "connection_lost"},
	{packer.ErrTruncated, "truncated"},
	{packer.ErrDecoding, "decoding"},
	{packer.ErrEncoding, "encoding"},
	{packer.ErrUnknownVariant, "unknown_variant"},
	{packer.ErrLengthOverflow, "length_overflow"},
	{packer.ErrTrailingBytes, "trailing_bytes"},
	{packer.ErrInvalidWidth, "invalid_width"},
}

// ErrorClass maps a packer error onto a short metric label.
func ErrorClass(err error) string {
	if err == nil {
		return "none"
	}
	for _, c := range classes {
		if errors.Is(err, c.err) {
			return c.label
		}
	}
	return "other"
}
