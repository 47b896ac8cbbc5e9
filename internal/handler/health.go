package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"routedash/internal/store"
)

type HealthHandler struct {
	store *store.Store
}

func NewHealthHandler(s *store.Store) *HealthHandler {
	return &HealthHandler{store: s}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type ReadyResponse struct {
	Ready         bool      `json:"ready"`
	RouteCount    int       `json:"routeCount"`
	LocationCount int       `json:"locationCount"`
	ServerTime    time.Time `json:"serverTime"`
}

func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(ReadyResponse{
		Ready:         true,
		RouteCount:    h.store.RouteCount(),
		LocationCount: h.store.LocationCount(),
		ServerTime:    time.Now(),
	})
}
