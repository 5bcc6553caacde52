// Package server hosts the static site and its health-data document for
// local preview, with the same middleware stack the published site's CDN
// provides (compression, request IDs, access logs).
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Lucov/healthcard/internal/config"
	"github.com/Lucov/healthcard/internal/xhttp"
	"github.com/Lucov/healthcard/internal/xhttp/middleware"
	"github.com/Lucov/healthcard/internal/xslog"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

type Server struct {
	cfg      config.ServeConfig
	dataPath string
	logger   *slog.Logger
}

func New(cfg config.ServeConfig, dataPath string, logger *slog.Logger) *Server {
	return &Server{
		cfg:      cfg,
		dataPath: dataPath,
		logger:   logger,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(withLogger(s.logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.Gzip)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/api/health-data", s.handleHealthData)
	r.Handle("/*", http.FileServer(http.Dir(s.cfg.SiteDir)))

	return r
}

// Run serves until ctx is cancelled, then drains connections.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(s.cfg.Port)),
		Handler:           s.Routes(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.InfoContext(ctx, "serving site", slog.Int("port", s.cfg.Port), xslog.Path(s.cfg.SiteDir))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	xhttp.WriteOK(w, map[string]string{"status": "ok"})
}

// handleHealthData serves the snapshot file directly so the document can
// live outside the site directory.
func (s *Server) handleHealthData(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(s.dataPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			xhttp.Error(w, http.StatusNotFound)
			return
		}
		xslog.FromContext(r.Context()).ErrorContext(r.Context(), "failed to read health data", xslog.Error(err))
		xhttp.Error(w, http.StatusInternalServerError)
		return
	}

	xhttp.SetHeaderContentTypeApplicationJSON(w)
	_, _ = w.Write(data)
}

func withLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(xslog.WithLogger(r.Context(), logger)))
		})
	}
}
