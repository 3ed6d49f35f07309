package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"hrassist/internal/contextutil"
	"hrassist/internal/memory"
	"hrassist/internal/query"
	"hrassist/internal/service"
)

// AnswerHandler handles HTTP requests for HR questions.
type AnswerHandler struct {
	answers  service.AnswerService
	sessions *memory.Store
}

// NewAnswerHandler creates a new AnswerHandler. sessions may be nil when
// session memory is disabled.
func NewAnswerHandler(answers service.AnswerService, sessions *memory.Store) *AnswerHandler {
	return &AnswerHandler{
		answers:  answers,
		sessions: sessions,
	}
}

// AnswerRequest represents the HTTP request payload for questions.
type AnswerRequest struct {
	Question  string `json:"question"`
	Platform  string `json:"platform,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP handles HTTP requests for HR questions. The response body is
// the answer contract: {answer, sources, status}.
func (h *AnswerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	svcReq := service.AnswerRequest{
		Question:  req.Question,
		Platform:  req.Platform,
		UserID:    req.UserID,
		SessionID: req.SessionID,
	}
	if h.sessions != nil {
		svcReq.History = h.sessions.History(req.SessionID)
	}

	ans, err := h.answers.Answer(ctx, svcReq)
	if err != nil {
		h.handleServiceError(w, ctx, err, "Failed to answer question")
		return
	}

	if h.sessions != nil && ans.Status == service.StatusSuccess {
		h.sessions.Append(req.SessionID, query.Turn{Question: req.Question, Answer: ans.Answer})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ans); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// handleServiceError maps service errors to appropriate HTTP status codes
// and responses. Raw internal error text never reaches the client.
func (h *AnswerHandler) handleServiceError(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "service error", "error", err)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Validation error: %s", validationErr.Error()))
		return
	}

	writeError(w, http.StatusInternalServerError, defaultMsg)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}
