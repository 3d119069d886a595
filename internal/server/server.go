package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/schoolhub/backend/internal/bootstrap"
	"github.com/schoolhub/backend/internal/config"
	"github.com/schoolhub/backend/internal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and its dependencies.
type Server struct {
	config *config.Config
	router *gin.Engine
	dbPool *pgxpool.Pool
	logger zerolog.Logger
	http   *http.Server
}

// NewServer loads configuration, connects to the database, and wires the
// full dependency graph.
func NewServer() (*Server, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("No .env file found, relying on environment variables")
	}

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	dbPool, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, dbPool, lgr)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to build dependencies: %w", err)
	}

	router := bootstrap.SetupRouter(cfg, deps, lgr)

	return &Server{
		config: cfg,
		router: router,
		dbPool: dbPool,
		logger: lgr,
		http: &http.Server{
			Addr:    ":" + cfg.Server.Port,
			Handler: router,
		},
	}, nil
}

// Run starts the HTTP server and blocks until a shutdown signal is
// received or the server fails.
func (s *Server) Run() error {
	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info().Str("port", s.config.Server.Port).Msg("Starting HTTP server")
		serverErrors <- s.http.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-quit:
		s.logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
		return s.Shutdown()
	}
}

// Shutdown gracefully stops the HTTP server and closes the database pool.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Error().Err(err).Msg("HTTP server shutdown error")
		s.dbPool.Close()
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.dbPool.Close()
	s.logger.Info().Msg("Server stopped gracefully")
	return nil
}
