package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewWithWriterTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, Config{Level: slog.LevelInfo})

	logger.Info("server started", "port", 8080)

	out := buf.String()
	if !strings.Contains(out, "server started") || !strings.Contains(out, "port=8080") {
		t.Errorf("unexpected text output: %q", out)
	}
}

func TestNewWithWriterJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, Config{Level: slog.LevelInfo, JSON: true})

	logger.Info("server started", "port", 8080)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "server started" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["port"] != float64(8080) {
		t.Errorf("port = %v", entry["port"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, Config{Level: slog.LevelWarn})

	logger.Debug("debug line")
	logger.Info("info line")
	logger.Warn("warn line")

	out := buf.String()
	if strings.Contains(out, "debug line") || strings.Contains(out, "info line") {
		t.Errorf("low-level entries not filtered: %q", out)
	}
	if !strings.Contains(out, "warn line") {
		t.Errorf("warn entry missing: %q", out)
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := NewNop()
	// Must not panic and must accept any level.
	logger.Debug("dropped")
	logger.Error("also dropped")
}
