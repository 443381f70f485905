// Package web serves the movie browser as HTML pages.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/thesavant42/cinesearch/internal/library"
	"github.com/thesavant42/cinesearch/internal/models"
)

// MovieSource is the OMDb lookup surface the pages need
type MovieSource interface {
	Search(ctx context.Context, term string, page int) (*models.SearchResult, error)
	Detail(ctx context.Context, id string) (*models.MovieDetail, error)
}

// Server renders pages backed by OMDb and the local library
type Server struct {
	source MovieSource
	lib    *library.Library
	logger *log.Logger
	now    func() time.Time
}

// NewServer creates a Server. logger may be nil.
func NewServer(source MovieSource, lib *library.Library, logger *log.Logger) *Server {
	return &Server{source: source, lib: lib, logger: logger, now: time.Now}
}

// Router returns the HTTP handler with all routes mounted
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleSearch)
	r.Get("/movie/{id}", s.handleDetail)
	r.Post("/favorites/{id}", s.handleToggleFavorite)
	r.Get("/favorites", s.handleFavorites)
	r.Get("/history", s.handleHistory)
	r.Post("/history/{index}/delete", s.handleRemoveHistory)
	r.Post("/history/clear", s.handleClearHistory)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.info("Web server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.info("Shutting down web server")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		if s.logger != nil {
			s.logger.Info("HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}
	})
}

func (s *Server) info(msg string, keyvals ...interface{}) {
	if s.logger != nil {
		s.logger.Info(msg, keyvals...)
	}
}

func (s *Server) warn(msg string, keyvals ...interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, keyvals...)
	}
}
