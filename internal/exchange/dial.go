package exchange

import (
	"context"
	"fmt"
	"math/rand"
	"net"
	"sync"
	"time"

	"github.com/hashicorp/yamux"
	"github.com/rs/zerolog"
)

// Client is a dialed connection. With Config.Multiplex each Open starts a
// new yamux stream; otherwise every Open returns the same session.
type Client struct {
	node   string
	cfg    Config
	logger zerolog.Logger
	conn   net.Conn
	mux    *yamux.Session

	mu     sync.Mutex
	single *Session
}

// Dial connects to addr, retrying with exponential backoff until
// Backoff.MaxAttempts is spent or ctx ends.
func Dial(ctx context.Context, addr, node string, cfg Config, logger zerolog.Logger) (*Client, error) {
	cfg = cfg.WithDefaults()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	dialer := net.Dialer{Timeout: cfg.ConnectTimeout}

	var conn net.Conn
	err := retry(ctx, cfg.Backoff, rng, func(attempt int) error {
		c, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			logger.Warn().Err(err).Str("addr", addr).Int("attempt", attempt).Msg("dial failed")
			return err
		}
		conn = c
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("dial %s: %w", addr, err)
		}
		return nil, fmt.Errorf("dial %s: %w: %w", addr, ErrDialExhausted, err)
	}

	c := &Client{node: node, cfg: cfg, logger: logger, conn: conn}
	if cfg.Multiplex {
		mux, err := yamux.Client(conn, nil)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("dial %s: yamux client: %w", addr, err)
		}
		c.mux = mux
	}
	logger.Info().Str("addr", addr).Bool("multiplex", cfg.Multiplex).Msg("connected")
	return c, nil
}

func (c *Client) Open() (*Session, error) {
	if c.mux != nil {
		stream, err := c.mux.Open()
		if err != nil {
			return nil, fmt.Errorf("open stream: %w", err)
		}
		return NewSession(stream, c.node, c.cfg, c.logger), nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.single == nil {
		c.single = NewSession(c.conn, c.node, c.cfg, c.logger)
	}
	return c.single, nil
}

func (c *Client) Close() error {
	if c.mux != nil {
		return c.mux.Close()
	}
	return c.conn.Close()
}
