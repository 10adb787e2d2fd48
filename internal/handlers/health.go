package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Pinger verifies the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service and database health
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthResponse is the health check body
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time,omitempty"`
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		log.Error().Err(err).Msg("DB health check failed")
		respondJSON(w, http.StatusInternalServerError, HealthResponse{Status: "error"})
		return
	}
	respondJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
