package api

import (
	"log/slog"
	"net/http"

	"github.com/dtnitsch/llm-content-optimizer/pkg/detector"
	"github.com/dtnitsch/llm-content-optimizer/pkg/optimizer"
	"github.com/dtnitsch/llm-content-optimizer/pkg/segmenter"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config holds the HTTP server settings.
type Config struct {
	// MaxBodyBytes caps the request body size for /optimize.
	MaxBodyBytes int64
}

// DefaultMaxBodyBytes allows generous pages without letting a client stream
// unbounded input into memory.
const DefaultMaxBodyBytes = 16 << 20

// Server is the HTTP front end to the optimizer.
type Server struct {
	router chi.Router
	opt    *optimizer.Optimizer
	det    *detector.Detector
	log    *slog.Logger
	cfg    Config
}

// NewServer creates and configures the HTTP server.
func NewServer(optCfg optimizer.Config, log *slog.Logger, cfg Config) *Server {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	var seg optimizer.Segmenter
	if optCfg.EnableCJKSegmentation {
		s, err := segmenter.New()
		if err != nil {
			log.Warn("CJK segmenter unavailable, falling back to bigrams", "error", err)
		} else {
			seg = s
		}
	}

	srv := &Server{
		opt: optimizer.New(optCfg, seg),
		det: detector.New(),
		log: log,
		cfg: cfg,
	}
	srv.setupRoutes()
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/optimize", s.handleOptimize)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
