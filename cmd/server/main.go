package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/ridopark/stoxcore/internal/config"
	"github.com/ridopark/stoxcore/internal/logger"
	"github.com/ridopark/stoxcore/pkg/api/handlers"
)

const version = "1.0.0"

// Server wires the HTTP transport around the compute core: indicator
// batch/listing and options-analytics handlers behind CORS, request
// logging, correlation IDs, and a per-request timeout.
type Server struct {
	config *config.Config
	logger zerolog.Logger

	httpServer *http.Server
	router     *mux.Router
}

func main() {
	server, err := initializeServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize server: %v\n", err)
		os.Exit(1)
	}

	if err := server.Start(); err != nil {
		server.logger.Fatal().Err(err).Msg("Failed to start server")
	}

	server.WaitForShutdown()
}

func initializeServer() (*Server, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.New(cfg.Environment, cfg.LogLevel)
	appLogger.Info().
		Str("version", version).
		Msg("Initializing stoxcore server")

	router := mux.NewRouter()
	server := &Server{
		config: cfg,
		logger: appLogger,
		router: router,
	}
	server.setupRoutes()

	server.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      server.router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	return server, nil
}

// setupRoutes configures CORS, request logging, the per-request compute
// timeout, and the indicator/options/health routes.
func (s *Server) setupRoutes() {
	if s.config.Server.EnableCORS {
		s.router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Access-Control-Allow-Origin", "*")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

				if r.Method == "OPTIONS" {
					w.WriteHeader(http.StatusOK)
					return
				}
				next.ServeHTTP(w, r)
			})
		})
	}

	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)

			s.logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("remote_addr", r.RemoteAddr).
				Dur("duration", time.Since(start)).
				Msg("HTTP request")
		})
	})

	requestTimeout := time.Duration(s.config.Server.RequestTimeout) * time.Second
	s.router.Use(func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, requestTimeout, "request timed out")
	})

	s.router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		handlers.NewHealthHandler(version).GetHealth(w, r)
	}).Methods("GET")

	apiRouter := s.router.PathPrefix("/api/v1").Subrouter()

	indicatorHandler := handlers.NewIndicatorHandler()
	apiRouter.HandleFunc("/indicators/compute", indicatorHandler.Compute).Methods("POST")
	apiRouter.HandleFunc("/indicators/schema", indicatorHandler.Schema).Methods("GET")

	optionsHandler := handlers.NewOptionsHandler()
	apiRouter.HandleFunc("/options/analyze", optionsHandler.Analyze).Methods("POST")

	apiRouter.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		handlers.NewHealthHandler(version).GetHealth(w, r)
	}).Methods("GET")

	s.logger.Info().Msg("Routes configured")
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.httpServer.Addr).Msg("Starting server")

	go func() {
		s.logger.Info().Msg("HTTP server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	return nil
}

// WaitForShutdown blocks until an interrupt signal arrives, then drains
// in-flight requests within a bounded grace period.
func (s *Server) WaitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	s.logger.Info().Msg("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error().Err(err).Msg("HTTP server shutdown error")
	}

	s.logger.Info().Msg("Server shutdown complete")
}
