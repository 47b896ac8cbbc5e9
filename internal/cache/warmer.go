package cache

import (
	"context"
	"log/slog"
	"time"

	"routedash/internal/pricing"
	"routedash/internal/store"
)

// CacheWarmer pre-renders GeoJSON for every stored route so the first
// dashboard load after startup hits the cache.
type CacheWarmer struct {
	cache  *RedisCache
	store  *store.Store
	ttl    time.Duration
	logger *slog.Logger
}

func NewCacheWarmer(cache *RedisCache, store *store.Store, ttl time.Duration, logger *slog.Logger) *CacheWarmer {
	return &CacheWarmer{
		cache:  cache,
		store:  store,
		ttl:    ttl,
		logger: logger.With("component", "cache_warmer"),
	}
}

func (w *CacheWarmer) WarmAll(ctx context.Context) error {
	start := time.Now()
	w.logger.Info("starting cache warming")

	routes := w.store.Routes()
	warmed := 0

	for _, r := range routes {
		fc := pricing.RouteFeatureCollection(r, w.store.Location)
		if err := w.cache.SetJSONCompressed(ctx, KeyRouteGeoJSON(r.ID), fc, w.ttl); err != nil {
			w.logger.Debug("failed to warm route geojson", "route_id", r.ID, "error", err)
			continue
		}
		warmed++
	}

	w.logger.Info("cache warming completed",
		"routes_warmed", warmed,
		"total_routes", len(routes),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
