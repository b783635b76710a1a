// Package server renders the tools hub page over HTTP for people who would
// rather use a browser than the terminal.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/legacycrew/toolshub/internal/catalog"
	"github.com/legacycrew/toolshub/internal/filter"
	"github.com/legacycrew/toolshub/internal/render"
	"github.com/legacycrew/toolshub/internal/request"
)

// DefaultAddr is used when no listen address is given.
const DefaultAddr = "127.0.0.1:8080"

const shutdownTimeout = 5 * time.Second

// Server serves one immutable catalog. Each request builds its own filter
// state, so handlers share nothing mutable.
type Server struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// New returns a server for c.
func New(c *catalog.Catalog, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{catalog: c, logger: logger}
}

// Handler returns the routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /request", s.handleRequestPage)
	mux.HandleFunc("GET /request.txt", s.handleRequestText)
	mux.HandleFunc("GET /catalog.yaml", s.handleCatalog)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	return s.logRequests(mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("tools hub listening", zap.String("addr", addr), zap.Int("tools", s.catalog.Len()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err, ok := <-errChan:
		if !ok {
			return nil
		}
		return fmt.Errorf("tools hub server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("shutdown error", zap.Error(err))
			return err
		}
		s.logger.Info("tools hub stopped")
		return nil
	}
}

// stateFrom reads the filter state from ?q= and ?division=.
func (s *Server) stateFrom(r *http.Request) filter.State {
	q := r.URL.Query()
	state := filter.NewState().SetSearch(q.Get("q"))
	division := q.Get("division")
	if chip, ok := s.catalog.IsChip(division); ok {
		division = chip
	}
	return state.SetDivision(division)
}

func draftFrom(r *http.Request) request.Draft {
	q := r.URL.Query()
	return request.Draft{
		Name:        q.Get("name"),
		Description: q.Get("description"),
		Users:       q.Get("users"),
	}
}

func (s *Server) writePage(w http.ResponseWriter, page render.Page) {
	var buf bytes.Buffer
	if err := render.WritePage(&buf, page); err != nil {
		s.logger.Error("render failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.writePage(w, render.NewPage(s.catalog, s.stateFrom(r), render.PageOptions{Base: "/"}))
}

// hasDraft reports whether the request form was submitted. The form always
// sends all three fields, even blank ones.
func hasDraft(r *http.Request) bool {
	q := r.URL.Query()
	return q.Has("name") || q.Has("description") || q.Has("users")
}

func (s *Server) handleRequestPage(w http.ResponseWriter, r *http.Request) {
	draft := draftFrom(r)
	var text string
	if hasDraft(r) {
		text = request.Generate(s.catalog.Title(), draft)
	}
	s.writePage(w, render.NewPage(s.catalog, s.stateFrom(r), render.PageOptions{
		Base:        "/",
		Draft:       draft,
		RequestText: text,
	}))
}

func (s *Server) handleRequestText(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(request.Generate(s.catalog.Title(), draftFrom(r)) + "\n"))
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	raw := s.catalog.Raw()
	if len(raw) == 0 {
		http.NotFound(w, nil)
		return
	}
	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	_, _ = w.Write(raw)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("query", r.URL.RawQuery),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}
