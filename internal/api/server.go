// Package api exposes the portfolio backend over HTTP: the chat endpoint,
// contact form relay, visit tracking, and a few diagnostics.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/olukareem/portfolio/internal/analytics"
	"github.com/olukareem/portfolio/internal/mailer"
	"github.com/olukareem/portfolio/internal/rag"
)

// ChatPipeline answers chat questions. *rag.Pipeline satisfies it.
type ChatPipeline interface {
	Chat(ctx context.Context, history []rag.Message, question string, stream rag.StreamFunc) (string, error)
}

// Mailer sends contact relays and reports. *mailer.Mailer satisfies it.
type Mailer interface {
	SendContact(ctx context.Context, msg mailer.ContactMessage) error
	SendReport(ctx context.Context, subject, text, html string) error
}

// Tracker records and reads visit stats. *analytics.Tracker satisfies it.
type Tracker interface {
	RecordView(ctx context.Context, v analytics.Visit) (bool, error)
	Today(ctx context.Context) (analytics.DayStats, error)
	AllDays(ctx context.Context) ([]analytics.DayStats, error)
}

// RedisKV is the slice of the kv client the diagnostics endpoint uses.
type RedisKV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// ServerConfig wires the server's dependencies.
type ServerConfig struct {
	Logger         *slog.Logger
	Pipeline       ChatPipeline
	Mailer         Mailer
	Tracker        Tracker
	KV             RedisKV // optional; nil disables the redis diagnostic
	CORSOrigins    []string
	TrustProxy     bool
	ReportMinViews int64
	// ChatPerMinute limits chat requests per IP. Zero uses the default of 10.
	ChatPerMinute int
}

// Server is the portfolio HTTP API.
type Server struct {
	mux            *http.ServeMux
	logger         *slog.Logger
	pipeline       ChatPipeline
	mailer         Mailer
	tracker        Tracker
	kv             RedisKV
	corsOrigins    []string
	trustProxy     bool
	reportMinViews int64
	chatLimiter    *rateLimiter
}

// NewServer creates the server with all routes registered.
func NewServer(cfg ServerConfig) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	perMinute := cfg.ChatPerMinute
	if perMinute <= 0 {
		perMinute = 10
	}

	s := &Server{
		mux:            http.NewServeMux(),
		logger:         logger,
		pipeline:       cfg.Pipeline,
		mailer:         cfg.Mailer,
		tracker:        cfg.Tracker,
		kv:             cfg.KV,
		corsOrigins:    cfg.CORSOrigins,
		trustProxy:     cfg.TrustProxy,
		reportMinViews: cfg.ReportMinViews,
		chatLimiter:    newRateLimiter(perMinute, 5, cfg.TrustProxy, logger),
	}

	s.mux.Handle("POST /api/chat", s.chatLimiter.middleware(http.HandlerFunc(s.handleChat)))
	s.mux.Handle("POST /api/send-email", s.chatLimiter.middleware(http.HandlerFunc(s.handleSendEmail)))
	s.mux.HandleFunc("POST /api/track-view", s.handleTrackView)
	s.mux.HandleFunc("POST /api/send-daily-report", s.handleSendDailyReport)
	s.mux.HandleFunc("GET /api/test-analytics", s.handleTestAnalytics)
	s.mux.HandleFunc("GET /api/test-redis", s.handleTestRedis)
	s.mux.HandleFunc("GET /api/resume", s.handleResume)
	s.mux.HandleFunc("GET /health", s.handleHealth)

	return s
}

// ServeHTTP applies the middleware stack:
// recovery -> request ID -> logging -> CORS -> routes.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var handler http.Handler = s.mux
	handler = corsMiddleware(s.corsOrigins)(handler)
	handler = loggingMiddleware(s.logger)(handler)
	handler = requestIDMiddleware(handler)
	handler = recoveryMiddleware(s.logger)(handler)
	handler.ServeHTTP(w, r)
}
