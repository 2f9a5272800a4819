package exchange

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/danmuck/wirepack/internal/observability"
	"github.com/danmuck/wirepack/packer"
)

// Session exchanges framed messages over one connection or stream. Send and
// Recv may be called from different goroutines; each side handles one
// message at a time.
type Session struct {
	id     uuid.UUID
	node   string
	conn   net.Conn
	cfg    Config
	logger zerolog.Logger

	sendMu sync.Mutex
	recvMu sync.Mutex

	closeOnce sync.Once
	closeErr  error
	done      chan struct{}
}

func NewSession(conn net.Conn, node string, cfg Config, logger zerolog.Logger) *Session {
	id := uuid.New()
	return &Session{
		id:     id,
		node:   node,
		conn:   conn,
		cfg:    cfg.WithDefaults(),
		logger: logger.With().Str("session", id.String()).Logger(),
		done:   make(chan struct{}),
	}
}

func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) RemoteAddr() net.Addr { return s.conn.RemoteAddr() }

// Done is closed once Close has been called.
func (s *Session) Done() <-chan struct{} { return s.done }

func (s *Session) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Send writes one message. The header Size is always len(payload).
func (s *Session) Send(msgType, version uint32, payload []byte) error {
	if uint64(len(payload)) > uint64(s.cfg.MaxPayload) {
		return fmt.Errorf("send type %d: %d bytes: %w", msgType, len(payload), ErrPayloadTooLarge)
	}
	buf, err := frame(msgType, version, payload)
	if err != nil {
		return fmt.Errorf("send type %d: %w", msgType, err)
	}

	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if s.closed() {
		return ErrSessionClosed
	}
	if s.cfg.WriteTimeout > 0 {
		_ = s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	}
	n, err := s.conn.Write(buf)
	if err == nil && n != len(buf) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return fmt.Errorf("send type %d: %w", msgType, err)
	}

	observability.RecordMessage(s.node, observability.DirectionOut, typeLabel(msgType), len(buf), len(payload))
	s.logger.Debug().Uint32("type", msgType).Uint32("version", version).Int("bytes", len(payload)).Msg("message sent")
	return nil
}

// Recv reads one message. A header announcing more than MaxPayload bytes
// fails with packer.ErrLengthOverflow before the payload is read.
func (s *Session) Recv() (Message, error) {
	s.recvMu.Lock()
	defer s.recvMu.Unlock()
	if s.closed() {
		return Message{}, ErrSessionClosed
	}
	if s.cfg.ReadTimeout > 0 {
		_ = s.conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	}

	cr := &countingReader{r: s.conn}
	hdr, err := HeaderPacker.Recv(cr)
	if err != nil {
		if cr.n == 0 && errors.Is(err, packer.ErrConnectionLost) {
			// peer closed between messages
			return Message{}, err
		}
		return Message{}, s.recvFailed(err)
	}
	if hdr.Size > s.cfg.MaxPayload {
		err := fmt.Errorf("recv type %d: size %d over %d: %w", hdr.Type, hdr.Size, s.cfg.MaxPayload, packer.ErrLengthOverflow)
		return Message{}, s.recvFailed(err)
	}
	payload, err := packer.RecvExact(s.conn, int(hdr.Size))
	if err != nil {
		return Message{}, s.recvFailed(err)
	}

	observability.RecordMessage(s.node, observability.DirectionIn, typeLabel(hdr.Type), HeaderSize+len(payload), len(payload))
	s.logger.Debug().Uint32("type", hdr.Type).Uint32("version", hdr.Version).Int("bytes", len(payload)).Msg("message received")
	return Message{Header: hdr, Payload: payload}, nil
}

func (s *Session) recvFailed(err error) error {
	observability.RecordDecodeFailure(s.node, err)
	return err
}

func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.closeErr = s.conn.Close()
	})
	return s.closeErr
}

func typeLabel(t uint32) string { return strconv.FormatUint(uint64(t), 10) }


type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}
