// Package server provides the HTTP API for resume analysis and chat.
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
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-recommender/internal/analysis"
	"github.com/jonathan/resume-recommender/internal/config"
	"github.com/jonathan/resume-recommender/internal/db"
	"github.com/jonathan/resume-recommender/internal/ingestion"
	"github.com/jonathan/resume-recommender/internal/llm"
	"github.com/jonathan/resume-recommender/internal/server/ratelimit"
)

// MaxUploadBytes bounds the multipart body of /api/analyze.
const MaxUploadBytes = ingestion.MaxResumeBytes

// DefaultUploadExtensions are the resume types accepted over HTTP.
var DefaultUploadExtensions = []string{".pdf"}

// Server represents the HTTP server
type Server struct {
	httpServer        *http.Server
	db                *db.DB
	client            llm.Client
	quota             *llm.DailyLimiter
	service           *analysis.Service
	sessions          *SessionService
	rateLimiter       *ratelimit.Limiter
	validate          *validator.Validate
	allowedExtensions []string
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	APIKey      string
	LLM         *llm.Config
	DailyLimit  int
	UseBrowser  bool
	Verbose     bool
	// AllowedExtensions overrides DefaultUploadExtensions.
	AllowedExtensions []string
}

// New creates a new server instance. DATABASE_URL enables persistence and
// SESSION_SECRET enables chat session tokens; both are optional.
func New(cfg Config) (*Server, error) {
	ctx := context.Background()

	client, err := llm.NewClient(ctx, cfg.LLM, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	limited := llm.NewLimitedClient(client, llm.NewDailyLimiter(cfg.DailyLimit))

	s := &Server{
		client:            limited,
		quota:             limited.Limiter(),
		rateLimiter:       ratelimit.NewLimiter(ratelimit.LoadConfig()),
		validate:          validator.New(),
		allowedExtensions: cfg.AllowedExtensions,
	}
	if len(s.allowedExtensions) == 0 {
		s.allowedExtensions = DefaultUploadExtensions
	}

	opts := []analysis.Option{
		analysis.WithJobOptions(&ingestion.JobOptions{UseBrowser: cfg.UseBrowser, Verbose: cfg.Verbose}),
		analysis.WithVerbose(cfg.Verbose),
	}
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			client.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		s.db = database
		opts = append(opts, analysis.WithStore(database))
	} else {
		log.Println("DATABASE_URL not set, analyses will not be stored")
	}
	s.service = analysis.NewService(limited, opts...)

	if sessionConfig, err := config.NewSessionConfig(); err == nil {
		s.sessions = NewSessionService(sessionConfig)
	} else {
		log.Printf("Chat sessions disabled: %v", err)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // model calls and browser fetches are slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes registers every endpoint.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /api/health", s.handleHealth)

	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /api/analyze/stream", s.handleAnalyzeStream)
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/parse", s.handleParse)

	mux.HandleFunc("GET /api/analyses", s.handleListAnalyses)
	mux.HandleFunc("GET /api/analyses/{id}", s.handleGetAnalysis)
	mux.HandleFunc("DELETE /api/analyses/{id}", s.handleDeleteAnalysis)
	return mux
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.db != nil {
		s.db.Close()
	}
	if s.client != nil {
		if err := s.client.Close(); err != nil {
			log.Printf("Error closing LLM client: %v", err)
		}
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients that exceed their token bucket
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.rateLimiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
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

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failResponse maps err to a status and writes it. Server-side failures are
// logged and reported without internal detail.
func (s *Server) failResponse(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("Request failed: %v", err)
	}
	s.errorResponse(w, status, PublicMessage(err))
}

// extractClientID uses the IP from RemoteAddr. X-Forwarded-For is ignored
// because no trusted proxy list is configured.
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
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d", info.Limit, info.Remaining)
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// extensionList renders allowed extensions for error messages, e.g. "PDF".
func extensionList(exts []string) string {
	names := make([]string, len(exts))
	for i, ext := range exts {
		names[i] = strings.ToUpper(strings.TrimPrefix(ext, "."))
	}
	return strings.Join(names, ", ")
}
