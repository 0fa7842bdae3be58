package web

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/edvin/backupdesk/internal/config"
)

// Server fronts the browser console: it serves the built SPA bundle and
// proxies API calls to the backup orchestration backend, translating the
// session cookie to the backend's token header on the way through.
type Server struct {
	router chi.Router
	logger zerolog.Logger
	cfg    *config.Config
}

func NewServer(logger zerolog.Logger, cfg *config.Config) (*Server, error) {
	target, err := url.Parse(cfg.BackendURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend URL: %w", err)
	}

	tlsConfig, err := cfg.BackendTLS()
	if err != nil {
		return nil, fmt.Errorf("configure backend TLS: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		logger: logger,
		cfg:    cfg,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(RequestLogger(logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(Metrics)

	proxy := newBackendProxy(target, tlsConfig, logger)

	s.router.Handle("/metrics", promhttp.Handler())
	s.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	s.router.Handle("/api/*", proxy)

	s.router.NotFound(spaHandler{staticDir: cfg.StaticDir}.ServeHTTP)

	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) ListenAndServe() error {
	s.logger.Info().
		Str("listen_addr", s.cfg.HTTPListenAddr).
		Str("backend_url", s.cfg.BackendURL).
		Str("static_dir", s.cfg.StaticDir).
		Msg("console web server listening")
	return http.ListenAndServe(s.cfg.HTTPListenAddr, s.router)
}
