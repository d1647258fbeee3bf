package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/olukareem/portfolio/internal/rag"
)

// maxChatBodyBytes bounds request bodies; chat histories are small.
const maxChatBodyBytes = 64 << 10

// maxHistoryTurns caps how much history a client can replay into a prompt.
const maxHistoryTurns = 20

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages []chatMessage `json:"messages"`
}

// handleChat streams the chatbot's answer as plain text. The frontend sends
// the full conversation; the last user message is the question and everything
// before it is history. The body is read incrementally and rendered as it
// arrives.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	logger := s.logger

	r.Body = http.MaxBytesReader(w, r.Body, maxChatBodyBytes)
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, logger, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, logger, http.StatusBadRequest, "messages are required")
		return
	}

	last := req.Messages[len(req.Messages)-1]
	question := strings.TrimSpace(last.Content)
	if question == "" || normalizeRole(last.Role) != rag.RoleUser {
		writeError(w, logger, http.StatusBadRequest, "last message must be from the user")
		return
	}

	history := make([]rag.Message, 0, len(req.Messages)-1)
	for _, m := range req.Messages[:len(req.Messages)-1] {
		if m.Content == "" {
			continue
		}
		history = append(history, rag.Message{Role: normalizeRole(m.Role), Text: m.Content})
	}
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}

	flusher, canFlush := w.(http.Flusher)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	started := false
	stream := func(ctx context.Context, text string) error {
		if text == "" {
			return nil
		}
		if !started {
			w.WriteHeader(http.StatusOK)
			started = true
		}
		if _, err := w.Write([]byte(text)); err != nil {
			return err
		}
		if canFlush {
			flusher.Flush()
		}
		return nil
	}

	_, err := s.pipeline.Chat(r.Context(), history, question, stream)
	if err != nil {
		logger.Error("chat failed", "error", err, "request_id", RequestID(r.Context()))
		if started {
			// body is already partially written; nothing sane to send
			return
		}
		writeError(w, logger, http.StatusInternalServerError, "failed to generate response")
	}
}

// normalizeRole maps frontend role names onto the pipeline's user/model pair.
func normalizeRole(role string) string {
	switch role {
	case "assistant", rag.RoleModel:
		return rag.RoleModel
	default:
		return rag.RoleUser
	}
}
