// Package api exposes the generation pipeline over HTTP.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/deckgen/internal/config"
	"github.com/dgallion1/deckgen/internal/llm"
	"github.com/dgallion1/deckgen/internal/pipeline"
)

// maxBodyBytes bounds JSON request bodies. Documents are referenced by path,
// never uploaded.
const maxBodyBytes = 1 << 20

// Server is the HTTP API server for deckgen.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	gemini       *llm.GeminiClient
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. gemini may be nil when no
// credential is configured.
func NewServer(orch *pipeline.Orchestrator, gemini *llm.GeminiClient, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		gemini:       gemini,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/", s.handleToolCall)
		r.Post("/api/export/{format}", s.handleExport)
		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"model":  s.orchestrator.HasModel(),
	})
}
