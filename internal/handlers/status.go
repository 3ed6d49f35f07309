package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"hrassist/internal/contextutil"
)

// IndexCounter is the part of the vector backend the status endpoint
// reads. Both the flat index and the qdrant store implement it.
type IndexCounter interface {
	Count(ctx context.Context) (int, error)
}

// StatusHandler reports operational details: index size, embedding
// dimension, provider, uptime.
type StatusHandler struct {
	index        IndexCounter
	dim          int
	provider     string
	startedAt    time.Time
	countTimeout time.Duration
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(index IndexCounter, dim int, provider string) *StatusHandler {
	return &StatusHandler{
		index:        index,
		dim:          dim,
		provider:     provider,
		startedAt:    time.Now(),
		countTimeout: 5 * time.Second,
	}
}

// StatusResponse represents the status endpoint payload.
type StatusResponse struct {
	Status    string `json:"status"`
	IndexSize int    `json:"index_size"`
	IndexDim  int    `json:"index_dim"`
	Provider  string `json:"provider"`
	StartedAt string `json:"started_at"`
	Uptime    int64  `json:"uptime"` // seconds
}

// ServeHTTP handles HTTP requests for the status endpoint.
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	countCtx, cancel := context.WithTimeout(ctx, h.countTimeout)
	defer cancel()

	status := "ok"
	size, err := h.index.Count(countCtx)
	if err != nil {
		logger.WarnContext(ctx, "failed to count index", "error", err)
		status = "degraded"
		size = 0
	}

	resp := StatusResponse{
		Status:    status,
		IndexSize: size,
		IndexDim:  h.dim,
		Provider:  h.provider,
		StartedAt: h.startedAt.UTC().Format(time.RFC3339),
		Uptime:    int64(time.Since(h.startedAt).Seconds()),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode status response", "error", err)
	}
}
