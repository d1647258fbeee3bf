package api

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"

	"github.com/olukareem/portfolio/internal/mailer"
)

const (
	maxContactBodyBytes = 32 << 10
	maxMessageLength    = 10000
)

type contactRequest struct {
	SenderName  string `json:"senderName"`
	SenderEmail string `json:"senderEmail"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
}

type contactResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// handleSendEmail relays a contact form submission to the owner's inbox.
func (s *Server) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	logger := s.logger

	r.Body = http.MaxBytesReader(w, r.Body, maxContactBodyBytes)
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, logger, http.StatusBadRequest, contactResponse{Error: "invalid request body"})
		return
	}

	req.SenderEmail = strings.TrimSpace(req.SenderEmail)
	req.Message = strings.TrimSpace(req.Message)

	if req.Message == "" {
		writeJSON(w, logger, http.StatusBadRequest, contactResponse{Error: "message is required"})
		return
	}
	if len(req.Message) > maxMessageLength {
		writeJSON(w, logger, http.StatusBadRequest, contactResponse{Error: "message too long"})
		return
	}
	if _, err := mail.ParseAddress(req.SenderEmail); err != nil {
		writeJSON(w, logger, http.StatusBadRequest, contactResponse{Error: "valid sender email is required"})
		return
	}

	err := s.mailer.SendContact(r.Context(), mailer.ContactMessage{
		SenderName:  strings.TrimSpace(req.SenderName),
		SenderEmail: req.SenderEmail,
		Subject:     req.Subject,
		Message:     req.Message,
	})
	if err != nil {
		logger.Error("failed to send contact email", "error", err, "request_id", RequestID(r.Context()))
		writeJSON(w, logger, http.StatusInternalServerError, contactResponse{Error: "failed to send message"})
		return
	}

	writeJSON(w, logger, http.StatusOK, contactResponse{Success: true})
}
