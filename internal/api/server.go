package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/vidbrief/internal/backend"
	"github.com/dgallion1/vidbrief/internal/config"
	"github.com/dgallion1/vidbrief/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for vidbrief.
type Server struct {
	router   chi.Router
	backend  *backend.Client
	sessions *session.Store
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(client *backend.Client, sessions *session.Store, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		backend:  client,
		sessions: sessions,
		log:      log,
		cfg:      cfg,
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
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}
		if s.cfg.RateLimitRPS > 0 {
			r.Use(RateLimit(s.cfg.RateLimitRPS, s.cfg.RateLimitBurst, s.log))
		}

		r.Post("/api/render", s.handleRender)

		r.Get("/api/videos/metadata", s.handleMetadata)
		r.Route("/api/videos/{videoID}", func(r chi.Router) {
			r.Get("/summary", s.handleSummary)
			r.Post("/ask", s.handleAsk)
			r.Get("/insights", s.handleInsights)
			r.Get("/entities", s.handleEntities)
		})

		r.Get("/api/stats/backend", s.handleBackendStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
