package exchange

import (
	"context"
	"errors"
	"net"
	"sync"

	"github.com/hashicorp/yamux"
	"github.com/rs/zerolog"

	"github.com/danmuck/wirepack/packer"
)

// Handler serves one session. The session is closed when it returns.
type Handler func(ctx context.Context, s *Session) error

type Server struct {
	node    string
	cfg     Config
	logger  zerolog.Logger
	handler Handler
	hub     *Hub
	wg      sync.WaitGroup
}

func NewServer(node string, cfg Config, logger zerolog.Logger, handler Handler) *Server {
	return &Server{
		node:    node,
		cfg:     cfg.WithDefaults(),
		logger:  logger,
		handler: handler,
		hub:     NewHub(),
	}
}

// Hub holds every session currently being served.
func (s *Server) Hub() *Hub { return s.hub }

// Serve accepts connections from ln until ctx ends, then closes ln and waits
// for running handlers. It returns nil after a ctx-driven shutdown. Any
// other accept error cancels the running handlers before it is returned.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.wg.Wait()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	s.logger.Info().Str("addr", ln.Addr().String()).Bool("multiplex", s.cfg.Multiplex).Msg("listening")
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if s.cfg.Multiplex {
				s.serveMux(ctx, conn)
				return
			}
			s.serveSession(ctx, conn)
		}()
	}
}

func (s *Server) serveMux(ctx context.Context, conn net.Conn) {
	mux, err := yamux.Server(conn, nil)
	if err != nil {
		s.logger.Error().Err(err).Str("remote", conn.RemoteAddr().String()).Msg("yamux server")
		conn.Close()
		return
	}
	go func() {
		<-ctx.Done()
		mux.Close()
	}()

	var streams sync.WaitGroup
	defer streams.Wait()
	for {
		stream, err := mux.Accept()
		if err != nil {
			mux.Close()
			return
		}
		streams.Add(1)
		go func() {
			defer streams.Done()
			s.serveSession(ctx, stream)
		}()
	}
}

func (s *Server) serveSession(ctx context.Context, conn net.Conn) {
	sess := NewSession(conn, s.node, s.cfg, s.logger)
	s.hub.Add(sess)
	defer func() {
		s.hub.Remove(sess)
		sess.Close()
	}()
	go func() {
		select {
		case <-ctx.Done():
			sess.Close()
		case <-sess.Done():
		}
	}()

	log := s.logger.With().Str("session", sess.ID().String()).Str("remote", conn.RemoteAddr().String()).Logger()
	log.Info().Msg("session open")
	err := s.handler(ctx, sess)
	switch {
	case err == nil, errors.Is(err, packer.ErrConnectionLost), errors.Is(err, ErrSessionClosed):
		log.Info().Msg("session closed")
	default:
		log.Warn().Err(err).Msg("session ended")
	}
}
