// Package server provides the HTTP API for resume editing sessions, rendering and saved applications.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-studio/internal/applications"
	"github.com/jonathan/resume-studio/internal/assistant"
	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/fetch"
	"github.com/jonathan/resume-studio/internal/observability"
	"github.com/jonathan/resume-studio/internal/server/ratelimit"
	"github.com/jonathan/resume-studio/internal/suggest"
	"github.com/jonathan/resume-studio/internal/types"
	"github.com/jonathan/resume-studio/internal/validation"
)

// PDFPrinter prints a document to PDF bytes
type PDFPrinter func(ctx context.Context, doc *types.ResumeDocument) ([]byte, error)

// HealthCheck reports whether a dependency is reachable
type HealthCheck func(ctx context.Context) error

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	cfg         Config
	deps        Deps
	sessions    *SessionRegistry
	assistant   *assistant.Assistant
	validate    *validator.Validate
	rateLimiter *ratelimit.Limiter
	metrics     *observability.Metrics
}

// Config holds server configuration
type Config struct {
	Port             int
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	CORSOrigin       string
	SessionIdleTTL   time.Duration
	MaxSessions      int
	OverflowDebounce time.Duration
	SuggestTimeout   time.Duration
	RateLimit        *ratelimit.Config // nil disables rate limiting
}

// Deps are the collaborators behind the optional features. A nil dependency
// turns its endpoints into 503 responses.
type Deps struct {
	Suggest      suggest.Service
	Applications *applications.Service
	Measurer     validation.Measurer
	Metrics      *observability.Metrics
	PrintPDF     PDFPrinter
	RenderPage   fetch.Renderer
	FetchOptions *fetch.Options
	HealthChecks map[string]HealthCheck
}

// ConfigFrom maps loaded settings onto the server config
func ConfigFrom(c *config.Config) Config {
	cfg := Config{
		Port:             c.Server.Port,
		ReadTimeout:      c.Server.ReadTimeout,
		WriteTimeout:     c.Server.WriteTimeout,
		CORSOrigin:       c.Server.CORSOrigin,
		SessionIdleTTL:   c.Sessions.IdleTTL,
		MaxSessions:      c.Sessions.MaxSessions,
		OverflowDebounce: c.Overflow.Debounce,
		SuggestTimeout:   c.Suggest.Timeout,
	}
	if c.RateLimit.Enabled {
		cfg.RateLimit = ratelimit.FromSettings(c.RateLimit)
	}
	return cfg
}

// New creates a new server instance
func New(cfg Config, deps Deps) *Server {
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "*"
	}
	if deps.Metrics == nil {
		deps.Metrics = observability.NewMetrics()
	}
	if deps.Measurer == nil {
		deps.Measurer = validation.EstimateMeasurer{}
	}
	if deps.FetchOptions == nil {
		deps.FetchOptions = fetch.DefaultOptions()
	}

	s := &Server{
		cfg:      cfg,
		deps:     deps,
		validate: validator.New(),
		metrics:  deps.Metrics,
	}

	s.sessions = NewSessionRegistry(SessionConfig{
		IdleTTL:     cfg.SessionIdleTTL,
		MaxSessions: cfg.MaxSessions,
		Debounce:    cfg.OverflowDebounce,
		Measurer:    deps.Measurer,
		OnReport: func(r validation.OverflowReport) {
			s.metrics.ObserveOverflow(r.Source, r.Overflow, r.Pages)
		},
		OnCount: s.metrics.SetActiveSessions,
	})

	if deps.Suggest != nil {
		opts := []assistant.Option{assistant.WithObserver(s.metrics.ObserveSuggestion)}
		if cfg.SuggestTimeout > 0 {
			opts = append(opts, assistant.WithTimeout(cfg.SuggestTimeout))
		}
		s.assistant = assistant.New(deps.Suggest, opts...)
	}

	if cfg.RateLimit != nil {
		s.rateLimiter = ratelimit.NewLimiter(cfg.RateLimit)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())
	mux.HandleFunc("GET /templates", s.handleTemplates)

	// Stateless rendering
	mux.HandleFunc("POST /render", s.handleRender)
	mux.HandleFunc("POST /render/html", s.handleRenderHTML)
	mux.HandleFunc("POST /render/gallery", s.handleGallery)
	mux.HandleFunc("POST /portable/import", s.handlePortableImport)
	mux.HandleFunc("POST /portable/export", s.handlePortableExport)

	// Suggestion service and job descriptions
	mux.HandleFunc("POST /api/suggestions", s.handleSuggestions)
	mux.HandleFunc("POST /api/extract", s.handleExtract)
	mux.HandleFunc("POST /job-description/fetch", s.handleFetchJobDescription)

	// Saved applications
	mux.HandleFunc("POST /applications", s.handleSaveApplication)
	mux.HandleFunc("GET /applications", s.handleListApplications)
	mux.HandleFunc("GET /applications/skills", s.handleSkillDemand)
	mux.HandleFunc("GET /applications/{id}", s.handleGetApplication)
	mux.HandleFunc("DELETE /applications/{id}", s.handleDeleteApplication)

	// Editing sessions
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("GET /sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("PATCH /sessions/{id}/personal-info", s.handlePersonalInfo)
	mux.HandleFunc("PUT /sessions/{id}/fields/{field}", s.handleUpdateField)
	mux.HandleFunc("POST /sessions/{id}/reset", s.handleReset)
	mux.HandleFunc("POST /sessions/{id}/import", s.handleSessionImport)
	mux.HandleFunc("GET /sessions/{id}/export", s.handleSessionExport)
	mux.HandleFunc("POST /sessions/{id}/chat", s.handleChat)
	mux.HandleFunc("POST /sessions/{id}/messages/{message_id}/suggestions/{suggestion_id}/{action}", s.handleResolveSuggestion)
	mux.HandleFunc("GET /sessions/{id}/tree", s.handleSessionTree)
	mux.HandleFunc("GET /sessions/{id}/preview", s.handleSessionPreview)
	mux.HandleFunc("GET /sessions/{id}/layout", s.handleSessionLayout)
	mux.HandleFunc("GET /sessions/{id}/pdf", s.handleSessionPDF)
	mux.HandleFunc("GET /sessions/{id}/events", s.handleSessionEvents)
	mux.HandleFunc("POST /sessions/{id}/save", s.handleSessionSave)
	mux.HandleFunc("POST /sessions/{id}/load/{application_id}", s.handleSessionLoad)

	// The mux sets r.Pattern on the request it is handed, which the metrics
	// middleware reads afterwards; nothing in front of it may swap the request.
	var h http.Handler = s.withCORS(mux)
	h = s.withLogging(h)
	if s.rateLimiter != nil {
		h = s.withRateLimit(h)
	}
	s.handler = s.metrics.Middleware(h)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the full middleware chain, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Sessions exposes the session registry
func (s *Server) Sessions() *SessionRegistry {
	return s.sessions
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.Close()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	log.Println("[server] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Event streams end when their sessions close, so close sessions first.
	s.sessions.Close()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.Close()
	log.Println("[server] stopped")
	return nil
}

// Close releases sessions and background goroutines
func (s *Server) Close() {
	s.sessions.Close()
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.CORSOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth reports server health and the state of each configured dependency
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ok"
	checks := make(map[string]string, len(s.deps.HealthChecks))
	for name, check := range s.deps.HealthChecks {
		if err := check(ctx); err != nil {
			checks[name] = err.Error()
			status = "degraded"
			continue
		}
		checks[name] = "ok"
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":   status,
		"sessions": s.sessions.Len(),
		"checks":   checks,
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[server] error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// fail maps err to its status code and writes it
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[server] request failed: %v", err)
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID extracts the client identifier from the request.
// RemoteAddr is used as is; forwarded headers are not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
