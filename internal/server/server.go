// Package server exposes the diagram engine over HTTP.
//
// Routes:
//
//	GET    /healthz
//	GET    /shapes
//	POST   /compile                  diagram JSON in, document out
//	GET    /diagrams                 stored keys
//	POST   /diagrams                 store a new diagram under a fresh key
//	GET    /diagrams/{key}
//	PUT    /diagrams/{key}
//	DELETE /diagrams/{key}
//	POST   /diagrams/{key}/ops/{op}  add, decorate, remove, undecorate, cut, cancel, paste
//	GET    /diagrams/{key}/svg
//
// Errors are JSON objects carrying the pkg/errors code and message.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/isostack/pkg/errors"
	"github.com/matzehuels/isostack/pkg/pipeline"
	"github.com/matzehuels/isostack/pkg/store"
)

// Server serves the HTTP API.
type Server struct {
	cfg    Config
	store  store.Store
	runner *pipeline.Runner
	logger *log.Logger
	locks  keyLocks
}

// New creates a server. A nil logger uses log.Default().
func New(cfg Config, st store.Store, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		cfg:    cfg,
		store:  st,
		runner: runner,
		logger: logger.WithPrefix("http"),
	}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Get("/shapes", s.listShapes)
	r.Post("/compile", s.compile)

	r.Route("/diagrams", func(r chi.Router) {
		r.Get("/", s.listDiagrams)
		r.Post("/", s.createDiagram)
		r.Route("/{key}", func(r chi.Router) {
			r.Get("/", s.getDiagram)
			r.Put("/", s.putDiagram)
			r.Delete("/", s.deleteDiagram)
			r.Get("/svg", s.diagramSVG)
			r.Post("/ops/{op}", s.applyOp)
		})
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "listen on %s", s.cfg.Addr)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "shutdown")
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		kv := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()),
		}
		if status >= http.StatusInternalServerError {
			s.logger.Error("request", kv...)
			return
		}
		s.logger.Debug("request", kv...)
	})
}
