// Package server exposes formula validation, weighing and the formula catalog
// over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/leapstack-labs/stoich/internal/elements"
	"github.com/leapstack-labs/stoich/internal/molecule"
	"github.com/leapstack-labs/stoich/pkg/formula"
	"golang.org/x/sync/errgroup"
)

// Server is the HTTP API server.
type Server struct {
	service  *molecule.Service
	source   *elements.Source
	addr     string
	watch    bool
	logger   *slog.Logger
	notifier *Notifier
}

// Config holds configuration for the API server.
type Config struct {
	Service *molecule.Service
	// Source is the element source behind Service. It is only watched when
	// Watch is set and the source is file backed.
	Source *elements.Source
	Addr   string
	Watch  bool
	Logger *slog.Logger
}

// New creates a new API server instance.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		service:  cfg.Service,
		source:   cfg.Source,
		addr:     cfg.Addr,
		watch:    cfg.Watch,
		logger:   logger,
		notifier: NewNotifier(),
	}
}

// Notifier returns the server's event notifier.
func (s *Server) Notifier() *Notifier {
	return s.notifier
}

// Handler builds the router with all API routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		s.requestLogger,
		middleware.Recoverer,
	)

	h := &handlers{service: s.service, notifier: s.notifier, logger: s.logger}

	r.Get("/healthz", h.health)
	r.Route("/elements", func(r chi.Router) {
		r.Get("/", h.listElements)
		r.Get("/{symbol}", h.getElement)
	})
	r.Post("/weigh", h.weigh)
	r.Post("/normalize", h.normalize)
	r.Route("/molecules", func(r chi.Router) {
		r.Get("/", h.listMolecules)
		r.Post("/", h.saveMolecule)
		r.Get("/{formula}", h.recallMolecule)
	})
	r.Get("/events", h.events)

	return r
}

// Serve starts the server and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	s.logger.Info("starting API server", "addr", "http://"+ln.Addr().String())

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watch && s.source != nil && s.source.Path() != "" {
		s.source.OnReload(func(tbl *formula.Table) {
			s.notifier.Broadcast(Event{Kind: EventElementsChanged, Count: tbl.Len()})
		})
		eg.Go(func() error {
			return s.source.Watch(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down API server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// requestLogger logs each request through slog.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
