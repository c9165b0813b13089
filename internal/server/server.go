// Package server exposes the conversion facade over HTTP for pointd.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/danmuck/pointcode/internal/config"
	"github.com/danmuck/pointcode/internal/convert"
	"github.com/danmuck/pointcode/internal/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const shutdownGrace = 10 * time.Second

type Server struct {
	cfg      config.ServerConfig
	conv     *convert.Converter
	logger   zerolog.Logger
	router   chi.Router
	appeared time.Time
}

// New builds the router. conv should already carry its observer; New does
// not attach one.
func New(cfg config.ServerConfig, conv *convert.Converter, logger zerolog.Logger) *Server {
	if conv == nil {
		conv = convert.New(nil)
	}
	s := &Server{
		cfg:      cfg,
		conv:     conv,
		logger:   logger,
		appeared: time.Now(),
	}
	s.router = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(observability.RequestID)
	r.Use(observability.RequestLogger(s.logger))
	if s.cfg.Metrics {
		observability.RegisterMetrics()
		r.Use(observability.RequestMetricsMiddleware(s.cfg.Name))
	}
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	if s.cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/schemas", s.handleSchemas)
		r.Get("/schemas/{id}", s.handleSchema)
		r.Post("/convert", s.handleConvert)
		r.Get("/representations", s.handleRepresentations)
		r.Get("/radix", s.handleRadix)
	})
	return r
}

// Run listens on the configured addr and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then drains in-flight requests.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      2 * s.cfg.ReadTimeout,
	}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()
	s.logger.Info().Str("addr", ln.Addr().String()).Msg("pointd listening")

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info().Msg("pointd stopped")
	return nil
}
