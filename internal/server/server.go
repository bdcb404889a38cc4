package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/apply-autofill/internal/catalog"
	"github.com/jonathan/apply-autofill/internal/db"
	"github.com/jonathan/apply-autofill/internal/engine"
	"github.com/jonathan/apply-autofill/internal/matching"
	"github.com/jonathan/apply-autofill/internal/server/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	engine      *engine.Engine
	rateLimiter *ratelimit.Limiter
	log         *zap.Logger
}

// Config holds server configuration
type Config struct {
	Port               int
	DatabaseURL        string
	FuzzyThreshold     float64
	RateLimitPerMinute int
	RateLimitBurst     int
	Logger             *zap.Logger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	// Connect to database
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Load the catalog snapshot once at startup. An unseeded database
	// falls back to the built-in seed set so the engine still resolves.
	templates, err := database.ListTemplates(context.Background())
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to load template catalog: %w", err)
	}
	if len(templates) == 0 {
		log.Warn("template table is empty, using built-in seed catalog")
		templates = catalog.SeedTemplates()
	}
	cat := catalog.New(templates)

	var matcherOpts []matching.Option
	if cfg.FuzzyThreshold > 0 {
		matcherOpts = append(matcherOpts, matching.WithThreshold(cfg.FuzzyThreshold))
	}

	s := &Server{
		db:          database,
		engine:      engine.New(database, cat, log, matcherOpts...),
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst),
		log:         log,
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Resolution endpoints (the extension's entry points)
	mux.HandleFunc("POST /users/{id}/resolve", s.handleResolve)
	mux.HandleFunc("POST /users/{id}/resolve/batch", s.handleResolveBatch)

	// Answer endpoints
	mux.HandleFunc("GET /users/{id}/answers", s.handleListAnswers)
	mux.HandleFunc("PUT /users/{id}/answers/{template_id}", s.handleSubmitAnswer)
	mux.HandleFunc("DELETE /users/{id}/answers/{template_id}", s.handleDeleteAnswer)

	// Profile endpoints
	mux.HandleFunc("GET /users/{id}/profile", s.handleGetProfile)
	mux.HandleFunc("PUT /users/{id}/profile", s.handleUpsertProfile)
	mux.HandleFunc("GET /users/{id}/completion", s.handleGetCompletion)
	mux.HandleFunc("DELETE /users/{id}", s.handleDeleteUserData)

	// Work experience endpoints
	mux.HandleFunc("GET /users/{id}/work-experiences", s.handleListWorkExperience)
	mux.HandleFunc("POST /users/{id}/work-experiences", s.handleCreateWorkExperience)
	mux.HandleFunc("PUT /work-experiences/{id}", s.handleUpdateWorkExperience)
	mux.HandleFunc("DELETE /work-experiences/{id}", s.handleDeleteWorkExperience)

	// Education endpoints
	mux.HandleFunc("GET /users/{id}/education", s.handleListEducation)
	mux.HandleFunc("POST /users/{id}/education", s.handleCreateEducation)
	mux.HandleFunc("PUT /education/{id}", s.handleUpdateEducation)
	mux.HandleFunc("DELETE /education/{id}", s.handleDeleteEducation)

	// Template catalog endpoints
	mux.HandleFunc("GET /templates", s.handleListTemplates)
	mux.HandleFunc("GET /templates/{id}", s.handleGetTemplate)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}

	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	s.db.Close()
	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := s.rateLimiter.Allow(s.extractClientID(r))
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		}
		if !info.Allowed {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
			s.errorResponse(w, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractClientID extracts the client identifier from the request.
// Uses the IP from RemoteAddr; X-Forwarded-For would only be safe
// behind a trusted proxy.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
