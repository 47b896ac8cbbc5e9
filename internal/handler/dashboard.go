package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"routedash/internal/cache"
	"routedash/internal/domain"
	"routedash/internal/metrics"
	"routedash/internal/pricing"
	"routedash/internal/store"
)

const defaultTargetMargin = 0.30

// DashboardHandler serves the map controller's data endpoints: route
// GeoJSON, per-stop pricing quotes, and the customer-card partial.
type DashboardHandler struct {
	store    *store.Store
	cache    *cache.RedisCache
	cacheTTL time.Duration
	metrics  *metrics.Collector
	logger   *slog.Logger
	cardTmpl *template.Template
}

func NewDashboardHandler(s *store.Store, c *cache.RedisCache, cacheTTL time.Duration, m *metrics.Collector, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		store:    s,
		cache:    c,
		cacheTTL: cacheTTL,
		metrics:  m,
		logger:   logger,
		cardTmpl: template.Must(template.New("customer-card").Parse(customerCardTmpl)),
	}
}

// RouteGeoJSON returns the visualization collection for one route: depot
// point, profit-annotated stop points in visit order, and the closed route
// line.
func (h *DashboardHandler) RouteGeoJSON(w http.ResponseWriter, r *http.Request) {
	if h.metrics != nil {
		h.metrics.GeoJSONRequests.Inc()
	}

	routeID := r.URL.Query().Get("route_id")
	if routeID == "" {
		respondError(w, http.StatusBadRequest, "route_id is required")
		return
	}

	if h.cache != nil {
		var cached domain.FeatureCollection
		hit, err := h.cache.GetJSONCompressed(r.Context(), cache.KeyRouteGeoJSON(routeID), &cached)
		if err == nil && hit {
			if h.metrics != nil {
				h.metrics.CacheHits.Inc()
			}
			respondJSON(w, http.StatusOK, cached)
			return
		}
		if h.metrics != nil {
			h.metrics.CacheMisses.Inc()
		}
	}

	route, ok := h.store.Route(routeID)
	if !ok {
		respondError(w, http.StatusNotFound, "Route not found")
		return
	}

	fc := pricing.RouteFeatureCollection(route, h.store.Location)

	if h.cache != nil {
		if err := h.cache.SetJSONCompressed(r.Context(), cache.KeyRouteGeoJSON(routeID), fc, h.cacheTTL); err != nil {
			h.logger.Warn("geojson cache write failed", "route_id", routeID, "error", err)
		}
	}

	respondJSON(w, http.StatusOK, fc)
}

// StopPricing returns the price breakdown for a (route, stop) pair. Quotes
// are computed fresh on every request.
func (h *DashboardHandler) StopPricing(w http.ResponseWriter, r *http.Request) {
	if h.metrics != nil {
		h.metrics.QuoteRequests.Inc()
	}

	q := r.URL.Query()
	routeID := q.Get("route_id")
	locationID := q.Get("location_id")
	if routeID == "" || locationID == "" {
		respondError(w, http.StatusBadRequest, "route_id and location_id are required")
		return
	}

	targetMargin := defaultTargetMargin
	if raw := q.Get("target_margin"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 || parsed >= 1 {
			respondError(w, http.StatusBadRequest, "target_margin must be in [0, 1)")
			return
		}
		targetMargin = parsed
	}

	route, ok := h.store.Route(routeID)
	if !ok {
		respondError(w, http.StatusNotFound, "Route not found")
		return
	}

	stop, ok := h.store.FindStop(routeID, locationID)
	if !ok {
		respondError(w, http.StatusNotFound, "Stop not found for this route")
		return
	}

	// An unknown location just contributes zero fallback service minutes.
	loc, _ := h.store.Location(locationID)

	quote := pricing.Quote(pricing.NewCostModel(route.Costs), stop, loc, targetMargin)
	respondJSON(w, http.StatusOK, quote)
}

type customerCardData struct {
	Found    bool
	Address  string
	Customer domain.Customer
}

const customerCardTmpl = `{{if .Found}}<div class="customer-card">
  <h3>{{if .Customer.Name}}{{.Customer.Name}}{{else}}Unknown customer{{end}}</h3>
  <p class="address">{{.Address}}</p>
  {{if .Customer.Email}}<p class="email">{{.Customer.Email}}</p>{{end}}
  {{if .Customer.Phone}}<p class="phone">{{.Customer.Phone}}</p>{{end}}
</div>{{else}}<div class="customer-card empty">No customer on file for this stop.</div>{{end}}`

// CustomerCard renders the detail-card partial. The markup is opaque to the
// map controller; it only triggers the request.
func (h *DashboardHandler) CustomerCard(w http.ResponseWriter, r *http.Request) {
	locationID := r.URL.Query().Get("location_id")
	if locationID == "" {
		respondError(w, http.StatusBadRequest, "location_id is required")
		return
	}

	loc, found := h.store.Location(locationID)
	data := customerCardData{
		Found:    found,
		Address:  loc.Address,
		Customer: loc.Customer,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.cardTmpl.Execute(w, data); err != nil {
		h.logger.Error("customer card render failed", "location_id", locationID, "error", err)
	}
}
