package exchange

import "errors"

var (
	ErrPayloadTooLarge = errors.New("exchange: payload exceeds limit")
	ErrSessionClosed   = errors.New("exchange: session closed")
	ErrDialExhausted   = errors.New("exchange: dial attempts exhausted")
	ErrUnexpectedType  = errors.New("exchange: unexpected message type")
)
