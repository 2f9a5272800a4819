package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/danmuck/wirepack/internal/config"
	"github.com/danmuck/wirepack/internal/exchange"
	"github.com/danmuck/wirepack/internal/logging"
	"github.com/danmuck/wirepack/internal/objects"
	"github.com/danmuck/wirepack/internal/observability"
)

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	path := fs.String("config", "", "config path (defaults apply when empty)")
	listen := fs.String("listen", "", "override listen_addr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*path)
	if err != nil {
		return err
	}
	if *listen != "" {
		cfg.ListenAddr = *listen
	}

	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return err
	}
	return serve(ctx, cfg, ln, logging.New("packctl.serve"), nil)
}

// serve runs the exchange server on ln and, when configured, the metrics
// endpoint. Each decoded object set is passed to onObjects if it is non-nil.
func serve(ctx context.Context, cfg config.Config, ln net.Listener, logger zerolog.Logger, onObjects func(objects.Objects)) error {
	codec := objects.NewObjectsPacker(cfg.Limits)
	handler := func(_ context.Context, s *exchange.Session) error {
		for {
			objs, hdr, err := exchange.RecvValue[[]objects.Object](s, codec, msgObjects)
			switch {
			case err == nil:
			case errors.Is(err, exchange.ErrUnexpectedType):
				logger.Warn().Err(err).Str("session", s.ID().String()).Msg("skipping message")
				continue
			default:
				return err
			}
			logger.Info().
				Str("session", s.ID().String()).
				Uint32("version", hdr.Version).
				Int("objects", len(objs)).
				Msg("objects received")
			logger.Debug().Msg(objects.Format(objs))
			if onObjects != nil {
				onObjects(objs)
			}
		}
	}

	srv := exchange.NewServer(cfg.NodeID, cfg.Exchange, logger, handler)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Serve(ctx, ln)
	})

	if cfg.MetricsAddr != "" {
		httpSrv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           observability.MetricsHandler(logger),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logger.Info().Str("addr", cfg.MetricsAddr).Msg("metrics listening")
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpSrv.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}
