// Package server exposes the computed views and event mutations over a
// small JSON API, plus an ICS feed of the local mirror.
package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/calgrid/calgrid/config"
	"github.com/calgrid/calgrid/internal/service"
)

type Server struct {
	cfg  *config.Config
	svc  *service.ViewService
	log  *logrus.Entry
	mux  *http.ServeMux
	http *http.Server
}

// APIResponse is the JSON envelope shared by all API endpoints.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func New(cfg *config.Config, svc *service.ViewService, log *logrus.Entry) *Server {
	s := &Server{
		cfg: cfg,
		svc: svc,
		log: log,
		mux: http.NewServeMux(),
	}
	s.registerRoutes()
	s.http = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      s.mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)

	s.mux.HandleFunc("/api/view", s.basicAuth(s.handleView))
	s.mux.HandleFunc("/api/navigate", s.basicAuth(s.handleNavigate))
	s.mux.HandleFunc("/api/events", s.basicAuth(s.handleEvents))
	s.mux.HandleFunc("/api/event/", s.basicAuth(s.handleEvent))

	s.mux.HandleFunc("/calendar.ics", s.basicAuth(s.handleICS))
}

func (s *Server) Start() error {
	s.log.WithField("addr", s.cfg.ListenAddr).Info("http server started")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// basicAuth wraps a handler with HTTP basic auth when credentials are
// configured; /health stays open either way.
func (s *Server) basicAuth(next http.HandlerFunc) http.HandlerFunc {
	if s.cfg.APIUsername == "" || s.cfg.APIPassword == "" {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || !secureCompare(user, s.cfg.APIUsername) || !secureCompare(pass, s.cfg.APIPassword) {
			w.Header().Set("WWW-Authenticate", `Basic realm="calgrid", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(APIResponse{Success: true, Data: data}); err != nil {
		s.log.WithError(err).Error("write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(APIResponse{Success: false, Error: err.Error()})
}
