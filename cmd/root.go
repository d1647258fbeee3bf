// Package cmd provides the portfolio CLI commands.
//
// Commands:
//   - serve: HTTP API server backing the portfolio site
//   - index: rebuild the knowledge base from the embedded site content
//   - version: show build information
//
// All commands handle SIGINT/SIGTERM via context cancellation.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/olukareem/portfolio/internal/log"
)

var rootCmd = &cobra.Command{
	Use:           "portfolio",
	Short:         "Backend for the olukareem.me portfolio site",
	Long:          "Portfolio serves resume content, relays contact form messages,\ntracks visits, and answers questions about Olu through a retrieval-backed chatbot.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newLogger builds the process logger. DEBUG in the environment enables
// debug level; production output is JSON for log aggregation.
func newLogger(production bool) *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	return log.New(log.Config{Level: level, JSON: production})
}
