package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/olukareem/portfolio/content"
	"github.com/olukareem/portfolio/internal/app"
	"github.com/olukareem/portfolio/internal/config"
	"github.com/olukareem/portfolio/internal/rag"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the knowledge base from the embedded site content",
	Long:  "Index clears the chunk store and the response cache, then re-embeds\nevery site page and the rendered resume.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIndex()
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

// runIndex rebuilds the vector index from scratch.
func runIndex() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.SkipDBConnections {
		return errors.New("index requires database connections (unset SKIP_DB_CONNECTIONS)")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := newLogger(cfg.IsProduction())

	a, err := app.Setup(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			logger.Warn("shutdown error", "error", closeErr)
		}
	}()

	indexer := rag.NewIndexer(a.Store, a.KV, cfg.SiteURL, cfg.ChunkSize, cfg.ChunkOverlap, logger)

	count, err := indexer.Run(ctx, content.Pages)
	if err != nil {
		return fmt.Errorf("indexing content: %w", err)
	}

	logger.Info("index rebuilt", "chunks", count)
	return nil
}
