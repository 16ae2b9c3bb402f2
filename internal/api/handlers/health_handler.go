package handlers

import (
	"net/http"

	"github.com/wellandwilde/landing-be/internal/notify"
)

// StatsProvider exposes notification counters.
type StatsProvider interface {
	Snapshot() notify.StatsSnapshot
}

// HealthHandler reports liveness and notification counters.
type HealthHandler struct {
	store string
	stats StatsProvider
}

// NewHealthHandler creates a new HealthHandler. stats may be nil.
func NewHealthHandler(store string, stats StatsProvider) *HealthHandler {
	return &HealthHandler{store: store, stats: stats}
}

// HealthResponse is the health body.
type HealthResponse struct {
	Status        string               `json:"status"`
	Store         string               `json:"store"`
	Notifications notify.StatsSnapshot `json:"notifications"`
}

// Get handles the health check.
func (h *HealthHandler) Get(w http.ResponseWriter, _ *http.Request) {
	resp := HealthResponse{Status: "ok", Store: h.store}
	if h.stats != nil {
		resp.Notifications = h.stats.Snapshot()
	}
	writeJSON(w, http.StatusOK, resp)
}
