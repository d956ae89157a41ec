package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/ignite/social-api/internal/config"
	"github.com/ignite/social-api/internal/service/account"
	"github.com/ignite/social-api/internal/service/message"
	"github.com/redis/go-redis/v9"
)

// Deps are the collaborators the API needs. DB and Redis are only used by
// the health checks; Redis may be nil.
type Deps struct {
	Accounts *account.Service
	Messages *message.Service
	DB       *sql.DB
	Redis    *redis.Client
}

// Server represents the API server
type Server struct {
	config  config.ServerConfig
	handler http.Handler
	server  *http.Server
}

// NewServer creates a new API server
func NewServer(cfg config.ServerConfig, cors config.CORSConfig, deps Deps) *Server {
	h := NewHandlers(deps.Accounts, deps.Messages)
	health := NewHealthChecker(deps.DB, deps.Redis)

	return &Server{
		config:  cfg,
		handler: SetupRoutes(h, health, cors.AllowedOrigins),
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	s.server = &http.Server{
		Addr:              s.config.Addr(),
		Handler:           s.handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler returns the HTTP handler for testing
func (s *Server) Handler() http.Handler {
	return s.handler
}
