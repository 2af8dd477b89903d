// Package api serves the layout engine over HTTP.
//
// # Endpoints
//
//	POST /v1/layout   body: diagram JSON, response: layout result JSON
//	POST /v1/render   body: diagram JSON, response: SVG preview
//	GET  /healthz     response: "ok"
//
// Both POST endpoints accept an optional "ranker" query parameter that
// overrides the server's configured ranker for that request. Every response
// carries an X-Request-ID header and a Server header with the build version;
// layout responses also carry X-Cache ("hit" or "miss").
//
// Errors are returned as JSON objects with the error code and message:
//
//	{"code": "DUPLICATE_ID", "message": "component id \"db\" already used by a cell"}
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/archlayout/pkg/buildinfo"
	"github.com/matzehuels/archlayout/pkg/diagram"
	"github.com/matzehuels/archlayout/pkg/engine"
	"github.com/matzehuels/archlayout/pkg/errors"
	"github.com/matzehuels/archlayout/pkg/observability"
	"github.com/matzehuels/archlayout/pkg/pipeline"
)

// MaxBodyBytes bounds the size of a request body.
const MaxBodyBytes = 8 << 20

// Header names.
const (
	HeaderRequestID = "X-Request-ID"
	HeaderCache     = "X-Cache"
)

// Server is the HTTP front end of a pipeline runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New builds a server around runner.
func New(runner *pipeline.Runner) *Server {
	s := &Server{runner: runner, logger: runner.Logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Server", buildinfo.Product()))
	r.Use(s.requestID)
	r.Use(s.instrument)
	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	runner, d, err := s.prepare(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, hit, err := runner.LayoutWithCacheInfo(r.Context(), d)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(HeaderCache, cacheHeader(hit))
	if err := diagram.WriteResult(res, w); err != nil {
		s.logger.Error("write response", "err", err)
	}
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	runner, d, err := s.prepare(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, hit, err := runner.LayoutWithCacheInfo(r.Context(), d)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := runner.Render(r.Context(), res, pipeline.FormatSVG, r.URL.Query().Get("labels") != "false")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set(HeaderCache, cacheHeader(hit))
	_, _ = w.Write(data)
}

// prepare decodes the request body and picks the runner for the request.
func (s *Server) prepare(r *http.Request) (*pipeline.Runner, diagram.Diagram, error) {
	runner := s.runner
	if name := r.URL.Query().Get("ranker"); name != "" {
		eng, err := runner.Engine.Configure(engine.WithRanker(name))
		if err != nil {
			return nil, diagram.Diagram{}, err
		}
		runner = &pipeline.Runner{Cache: runner.Cache, Keyer: runner.Keyer, Engine: eng, Logger: runner.Logger}
	}

	d, err := diagram.ReadDiagram(http.MaxBytesReader(nil, r.Body, MaxBodyBytes))
	if err != nil {
		return nil, diagram.Diagram{}, err
	}
	return runner, d, nil
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", w.Header().Get(HeaderRequestID), "err", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "code", code, "err", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Code: code, Message: errors.UserMessage(err)})
}

// requestID echoes a client-supplied X-Request-ID or assigns a new one.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r)
	})
}

// instrument reports every request to the HTTP hooks.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}

func cacheHeader(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
