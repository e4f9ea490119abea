package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/automata/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Option configures the handler.
type Option func(*server)

type server struct {
	gatherer prometheus.Gatherer
	registry ports.PathRegistry
	logger   *slog.Logger
}

// WithRegistry exposes the accepted path names under GET /paths.
func WithRegistry(registry ports.PathRegistry) Option {
	return func(s *server) {
		s.registry = registry
	}
}

// WithLogger sets the logger used for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *server) {
		s.logger = logger
	}
}

// NewHandler creates the operational HTTP handler:
//
//	GET /healthz   liveness probe
//	GET /metrics   Prometheus exposition of gatherer
//	GET /paths     accepted path names (only with WithRegistry)
func NewHandler(gatherer prometheus.Gatherer, opts ...Option) http.Handler {
	s := &server{
		gatherer: gatherer,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	if s.registry != nil {
		r.Get("/paths", s.listPaths)
	}
	return r
}

func (s *server) listPaths(w http.ResponseWriter, r *http.Request) {
	names, err := s.registry.List(r.Context())
	if err != nil {
		s.logger.Error("Failed to list transition paths", "err", err)
		http.Error(w, "failed to list paths", http.StatusInternalServerError)
		return
	}
	if names == nil {
		names = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"paths": names})
}

// Serve runs handler on addr until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
