// Package api serves the chat widget, the ROI calculator and the
// operational endpoints over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/eumatoliveira/leanhealth-websit/internal/calculator"
	"github.com/eumatoliveira/leanhealth-websit/internal/chat/analytics"
	"github.com/eumatoliveira/leanhealth-websit/internal/chat/intent"
	"github.com/eumatoliveira/leanhealth-websit/internal/chat/ratelimit"
	"github.com/eumatoliveira/leanhealth-websit/internal/chat/widget"
	"github.com/eumatoliveira/leanhealth-websit/internal/common/logger"
	"github.com/eumatoliveira/leanhealth-websit/internal/common/observability"
	"github.com/eumatoliveira/leanhealth-websit/internal/common/validation"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxBodyBytes = 64 << 10

// Checker reports whether one backend is ready.
type Checker interface {
	Ping(ctx context.Context) error
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Ping(ctx context.Context) error { return f(ctx) }

type Config struct {
	AllowedOrigins   []string
	MaxMessageLength int
	CalculatorLimits calculator.Limits
	ReadyTimeout     time.Duration
}

// Dependencies are the collaborators behind the handlers. Limiter,
// Recorder and Observability may be nil.
type Dependencies struct {
	Matcher       *intent.Matcher
	Conversation  *widget.Conversation
	Panel         *widget.Panel
	Limiter       *ratelimit.Limiter
	Recorder      *analytics.Recorder
	Observability *observability.Observability
	Checks        map[string]Checker
}

type Server struct {
	router        *chi.Mux
	config        Config
	deps          Dependencies
	logger        logger.Logger
	messageSchema *validation.Schema
	roiSchema     *validation.Schema
}

func NewServer(cfg Config, deps Dependencies, log logger.Logger) (*Server, error) {
	if cfg.ReadyTimeout == 0 {
		cfg.ReadyTimeout = 2 * time.Second
	}
	if deps.Panel == nil {
		deps.Panel = &widget.Panel{}
	}
	if deps.Observability == nil {
		deps.Observability = &observability.Observability{}
	}

	messageSchema, err := validation.NewSchema(messageRequestSchema())
	if err != nil {
		return nil, fmt.Errorf("message schema: %w", err)
	}
	roiSchema, err := validation.NewSchema(roiRequestSchema())
	if err != nil {
		return nil, fmt.Errorf("roi schema: %w", err)
	}

	s := &Server{
		router:        chi.NewRouter(),
		config:        cfg,
		deps:          deps,
		logger:        log.WithFields(map[string]interface{}{"component": "api"}),
		messageSchema: messageSchema,
		roiSchema:     roiSchema,
	}

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Session-ID"},
		ExposedHeaders: []string{"Retry-After", "X-RateLimit-Remaining"},
		MaxAge:         300,
	}))

	s.router.Get("/health", s.handleHealth)
	s.router.Get("/ready", s.handleReady)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/chat", func(r chi.Router) {
			r.Post("/messages", s.handleSendMessage)
			r.Get("/intents", s.handleListIntents)
			r.Get("/stats", s.handleIntentStats)
			r.Get("/panel", s.handlePanelState)
			r.Post("/panel/toggle", s.handlePanelToggle)
			r.Post("/panel/open", s.handlePanelOpen)
			r.Post("/panel/close", s.handlePanelClose)
		})
		r.Post("/roi", s.handleROI)
	})
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Info("http request", map[string]interface{}{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"durationMs": time.Since(start).Milliseconds(),
			"requestId":  middleware.GetReqID(r.Context()),
		})
	})
}
