package exchange

import (
	"fmt"

	"github.com/danmuck/wirepack/packer"
)

// SendValue packs v with p and sends it as one message.
func SendValue[T any](s *Session, p packer.Packer[T], msgType, version uint32, v T) error {
	payload, err := p.Pack(v)
	if err != nil {
		return fmt.Errorf("send type %d: %w", msgType, err)
	}
	return s.Send(msgType, version, payload)
}

// RecvValue receives one message of msgType and decodes its payload with p.
// The payload must hold exactly one value.
func RecvValue[T any](s *Session, p packer.Packer[T], msgType uint32) (T, Header, error) {
	var zero T
	msg, err := s.Recv()
	if err != nil {
		return zero, Header{}, err
	}
	if msg.Type != msgType {
		return zero, msg.Header, fmt.Errorf("recv: got type %d, want %d: %w", msg.Type, msgType, ErrUnexpectedType)
	}
	v, err := packer.Decode(p, msg.Payload)
	if err != nil {
		return zero, msg.Header, s.recvFailed(fmt.Errorf("decode type %d: %w", msgType, err))
	}
	return v, msg.Header, nil
}
