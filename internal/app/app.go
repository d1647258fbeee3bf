// Package app provides application initialization and dependency wiring.
//
// App is the container built by Setup: genkit, the chunk store, redis,
// the mailer, the analytics tracker, and the chat pipeline, each constructed
// from config and handed to commands ready to use.
package app

import (
	"log/slog"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/olukareem/portfolio/internal/analytics"
	"github.com/olukareem/portfolio/internal/config"
	"github.com/olukareem/portfolio/internal/knowledge"
	"github.com/olukareem/portfolio/internal/kv"
	"github.com/olukareem/portfolio/internal/llmcache"
	"github.com/olukareem/portfolio/internal/mailer"
	"github.com/olukareem/portfolio/internal/rag"
)

// App is the core application container.
type App struct {
	Config *config.Config
	Logger *slog.Logger

	// Core services
	Genkit   *genkit.Genkit
	Embedder ai.Embedder
	DBPool   *pgxpool.Pool

	// Domain components. Store, KV, Tracker and Pipeline are nil when
	// SkipDBConnections is set.
	Store    *knowledge.Store
	KV       *kv.Client
	Cache    *llmcache.Cache
	Mailer   *mailer.Mailer
	Tracker  *analytics.Tracker
	Pipeline *rag.Pipeline

	// Lifecycle
	otelCleanup func()
	dbCleanup   func()
}

// Close releases all resources. Safe to call after a partial Setup.
func (a *App) Close() error {
	a.logger().Info("shutting down application")

	if a.KV != nil {
		if err := a.KV.Close(); err != nil {
			a.logger().Warn("closing redis client", "error", err)
		}
	}

	if a.dbCleanup != nil {
		a.dbCleanup()
		a.logger().Info("database pool closed")
	}

	if a.otelCleanup != nil {
		a.otelCleanup()
	}

	return nil
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}
