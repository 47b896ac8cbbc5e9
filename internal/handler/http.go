package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"routedash/internal/cache"
	"routedash/internal/domain"
	"routedash/internal/hub"
	"routedash/internal/metrics"
	"routedash/internal/store"
)

// RouteHandler serves the route ingestion and read surface. Route documents
// arrive wholesale from the planner; an upsert invalidates the GeoJSON cache
// and notifies websocket subscribers.
type RouteHandler struct {
	store   *store.Store
	hub     *hub.Hub
	cache   *cache.RedisCache
	metrics *metrics.Collector
	logger  *slog.Logger
}

func NewRouteHandler(s *store.Store, h *hub.Hub, c *cache.RedisCache, m *metrics.Collector, logger *slog.Logger) *RouteHandler {
	return &RouteHandler{store: s, hub: h, cache: c, metrics: m, logger: logger}
}

type RoutesResponse struct {
	Routes     []*domain.Route `json:"routes"`
	Count      int             `json:"count"`
	ServerTime time.Time       `json:"serverTime"`
}

func (h *RouteHandler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	routes := h.store.Routes()
	respondJSON(w, http.StatusOK, RoutesResponse{
		Routes:     routes,
		Count:      len(routes),
		ServerTime: time.Now(),
	})
}

func (h *RouteHandler) GetRoute(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "missing route id")
		return
	}

	route, ok := h.store.Route(id)
	if !ok {
		respondError(w, http.StatusNotFound, "route not found")
		return
	}

	respondJSON(w, http.StatusOK, route)
}

func (h *RouteHandler) UpsertRoute(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "missing route id")
		return
	}

	var route domain.Route
	if err := json.NewDecoder(r.Body).Decode(&route); err != nil {
		respondError(w, http.StatusBadRequest, "invalid route document: "+err.Error())
		return
	}
	if route.ID == "" {
		route.ID = id
	}
	if route.ID != id {
		respondError(w, http.StatusBadRequest, "route id in body does not match path")
		return
	}
	if msg, ok := validateRoute(&route); !ok {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	h.store.UpsertRoute(&route)
	if h.metrics != nil {
		h.metrics.RouteUpserts.Inc()
	}

	if h.cache != nil {
		if err := h.cache.Delete(r.Context(), cache.KeyRouteGeoJSON(id)); err != nil {
			h.logger.Warn("cache invalidation failed", "route_id", id, "error", err)
		}
	}

	h.hub.BroadcastRouteUpdated(id, len(route.Stops))
	h.logger.Info("route upserted", "route_id", id, "stops", len(route.Stops))

	respondJSON(w, http.StatusOK, route)
}

func (h *RouteHandler) UpsertLocation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "missing location id")
		return
	}

	var loc domain.Location
	if err := json.NewDecoder(r.Body).Decode(&loc); err != nil {
		respondError(w, http.StatusBadRequest, "invalid location document: "+err.Error())
		return
	}
	if loc.ID == "" {
		loc.ID = id
	}
	if loc.ID != id {
		respondError(w, http.StatusBadRequest, "location id in body does not match path")
		return
	}

	h.store.UpsertLocation(loc)
	respondJSON(w, http.StatusOK, loc)
}

// validateRoute enforces the visualization invariant that every stop carries
// a location id unique within the route.
func validateRoute(route *domain.Route) (string, bool) {
	seen := make(map[string]struct{}, len(route.Stops))
	for _, stop := range route.Stops {
		if stop.LocationID == "" {
			return "stop with empty location_id", false
		}
		if _, dup := seen[stop.LocationID]; dup {
			return "duplicate location_id within route: " + stop.LocationID, false
		}
		seen[stop.LocationID] = struct{}{}
	}
	return "", true
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}
