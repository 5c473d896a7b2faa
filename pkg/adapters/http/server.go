package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/ecoguia"
	"github.com/aretw0/ecoguia/pkg/domain"
	"github.com/aretw0/ecoguia/pkg/runner"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/runtime"
)

// FrontendFile is served at "/" when a static directory is configured.
const FrontendFile = "eco_guia_frontend.html"

//go:embed openapi.yaml
var rawSpec []byte

var (
	swaggerOnce sync.Once
	swaggerDoc  *openapi3.T
	swaggerErr  error
)

// GetSwagger returns the embedded API contract, parsed and validated once.
func GetSwagger() (*openapi3.T, error) {
	swaggerOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(rawSpec)
		if err != nil {
			swaggerErr = fmt.Errorf("failed to parse openapi spec: %w", err)
			return
		}
		if err := doc.Validate(loader.Context); err != nil {
			swaggerErr = fmt.Errorf("invalid openapi spec: %w", err)
			return
		}
		swaggerDoc = doc
	})
	return swaggerDoc, swaggerErr
}

// Engine defines the part of the EcoGuía facade served over HTTP.
type Engine interface {
	StartConversation(ctx context.Context) (domain.NodePayload, error)
	Step(ctx context.Context, nodeID, optionID, userInput string) (domain.NodePayload, error)
	SearchReservations(ctx context.Context, query string) []domain.Record
	Definition() any
}

// StepRequest is the body of POST /api/step.
type StepRequest struct {
	NodeID    string `json:"node_id"`
	OptionID  string `json:"option_id"`
	UserInput string `json:"user_input"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server holds the handlers of the HTTP API.
type Server struct {
	Engine    Engine
	Logger    *slog.Logger
	Metrics   http.Handler
	StaticDir string
}

// HandlerOption configures the Server built by NewHandler.
type HandlerOption func(*Server)

// WithLogger sets the logger used for request and error logs.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMetrics mounts a metrics handler at /metrics.
func WithMetrics(h http.Handler) HandlerOption {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithStaticDir serves the web frontend and its assets from dir.
func WithStaticDir(dir string) HandlerOption {
	return func(s *Server) {
		s.StaticDir = dir
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...HandlerOption) http.Handler {
	server := &Server{Engine: engine}
	for _, opt := range opts {
		opt(server)
	}
	if server.Logger == nil {
		server.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(server.logRequests)
	r.Use(middleware.Recoverer)

	r.Post("/api/start", server.StartConversation)
	r.Post("/api/step", server.Step)
	r.Get("/api/bot", server.GetBot)
	r.Get("/api/reservas", server.SearchReservations)

	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	if server.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.Metrics)
	}

	r.Get("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	if server.StaticDir != "" {
		r.Get("/", server.serveFrontend)
		r.Get("/*", server.serveStatic)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		server.writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		server.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.Logger.Debug("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="es">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>EcoGuía API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// StartConversation handles POST /api/start.
func (s *Server) StartConversation(w http.ResponseWriter, r *http.Request) {
	payload, err := s.Engine.StartConversation(r.Context())
	if err != nil {
		s.fail(w, "StartConversation", err)
		return
	}
	s.writeJSON(w, http.StatusOK, payload)
}

// Step handles POST /api/step.
func (s *Server) Step(w http.ResponseWriter, r *http.Request) {
	var body StepRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		s.Logger.Warn("Step: Invalid request body", "error", err)
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if body.NodeID == "" {
		s.writeError(w, http.StatusBadRequest, "Missing 'node_id'")
		return
	}

	// Free text never selects a transition; unusable text is dropped.
	input, discarded := runner.SanitizeQuery(body.UserInput)
	if discarded {
		s.Logger.Warn("Step: Input discarded", "size", len(body.UserInput))
	}

	payload, err := s.Engine.Step(r.Context(), body.NodeID, body.OptionID, input)
	if err != nil {
		s.fail(w, "Step", err)
		return
	}
	s.writeJSON(w, http.StatusOK, payload)
}

// GetBot handles GET /api/bot.
func (s *Server) GetBot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Engine.Definition())
}

// SearchReservations handles GET /api/reservas?q=.
func (s *Server) SearchReservations(w http.ResponseWriter, r *http.Request) {
	var q string
	if err := runtime.BindQueryParameter("form", true, false, "q", r.URL.Query(), &q); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid format for parameter q: %v", err))
		return
	}

	clean, discarded := runner.SanitizeQuery(q)
	if discarded {
		s.Logger.Warn("SearchReservations: Query discarded", "size", len(q))
	}

	s.writeJSON(w, http.StatusOK, s.Engine.SearchReservations(r.Context(), clean))
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "ecoguia-http",
		"version":     strings.TrimSpace(ecoguia.Version),
		"api_version": apiVersion,
	})
}

func (s *Server) serveFrontend(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(s.StaticDir, FrontendFile))
}

func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request) {
	// http.Dir rejects paths escaping the root.
	name := chi.URLParam(r, "*")
	f, err := http.Dir(s.StaticDir).Open("/" + name)
	if err != nil {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

// fail maps engine errors to status codes: input errors are the client's
// fault, unknown references are 404 and anything else is a server problem.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "error", err)
	} else {
		s.Logger.Warn(op+" rejected", "error", err, "status", status)
	}
	s.writeError(w, status, err.Error())
}

// StatusFor returns the HTTP status for an engine error.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, ErrorResponse{Error: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}
