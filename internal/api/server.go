package api

import (
	"log/slog"
	"net/http"

	"github.com/bramble-partners/screener/internal/config"
	"github.com/bramble-partners/screener/internal/llm"
	"github.com/bramble-partners/screener/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for the screener.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	claude       *llm.Client
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, claude *llm.Client, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		claude:       claude,
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

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.ScreenerAPIKey, s.log))

		r.Post("/api/screen", s.handleScreen)
		r.Get("/api/screen/{jobID}/status", s.handleScreenStatus)

		r.Get("/api/memos", s.handleListMemos)
		r.Get("/api/memos/{name}", s.handleGetMemo)
		r.Delete("/api/memos/{name}", s.handleDeleteMemo)

		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
