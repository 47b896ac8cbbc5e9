package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"routedash/internal/cache"
	"routedash/internal/config"
	"routedash/internal/handler"
	"routedash/internal/hub"
	"routedash/internal/metrics"
	"routedash/internal/middleware"
	"routedash/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("starting routedash server",
		"log_level", cfg.LogLevel.String(),
		"http_addr", cfg.HTTPAddr,
		"redis_enabled", cfg.RedisEnabled,
	)

	routeStore := store.New()
	if err := store.SeedFromJSON(routeStore, cfg.SeedPath); err != nil {
		logger.Error("failed to seed store", "path", cfg.SeedPath, "error", err)
		os.Exit(1)
	}
	logger.Info("store seeded", "routes", routeStore.RouteCount(), "locations", routeStore.LocationCount())

	var redisCache *cache.RedisCache
	if cfg.RedisEnabled {
		redisCache, err = cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
		if err != nil {
			logger.Warn("redis unavailable, continuing without cache", "error", err)
		}
	}

	collector := metrics.NewCollector()
	wsHub := hub.NewHub(logger)

	routeHandler := handler.NewRouteHandler(routeStore, wsHub, redisCache, collector, logger)
	dashHandler := handler.NewDashboardHandler(routeStore, redisCache, cfg.CacheTTL, collector, logger)
	wsHandler := handler.NewWSHandler(wsHub, collector, logger)
	healthHandler := handler.NewHealthHandler(routeStore)
	statsHandler := handler.NewStatsHandler(routeStore, wsHub)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /dashboard/api/route-geojson", dashHandler.RouteGeoJSON)
	mux.HandleFunc("GET /dashboard/api/stop-pricing", dashHandler.StopPricing)
	mux.HandleFunc("GET /dashboard/partials/customer-card", dashHandler.CustomerCard)

	mux.HandleFunc("GET /v1/routes", routeHandler.ListRoutes)
	mux.HandleFunc("GET /v1/routes/{id}", routeHandler.GetRoute)
	mux.HandleFunc("PUT /v1/routes/{id}", routeHandler.UpsertRoute)
	mux.HandleFunc("PUT /v1/locations/{id}", routeHandler.UpsertLocation)
	mux.HandleFunc("/v1/ws", wsHandler.ServeWS)
	mux.HandleFunc("GET /v1/stats", statsHandler.GetStats)

	mux.Handle("GET /metrics", collector.Handler())
	mux.HandleFunc("GET /healthz", healthHandler.Healthz)
	mux.HandleFunc("GET /readyz", healthHandler.Readyz)

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerWindow, cfg.RateLimitWindow, cfg.RateLimitWhitelist, logger)

	var root http.Handler = mux
	root = handler.MetricsMiddleware(collector, root)
	root = limiter.Middleware(root)
	root = handler.GzipMiddleware(root)
	root = handler.CORSMiddleware(root)
	root = handler.LoggingMiddleware(logger, root)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      root,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go wsHub.Run(ctx)

	if redisCache != nil && cfg.CacheWarmOnStart {
		warmer := cache.NewCacheWarmer(redisCache, routeStore, cfg.CacheTTL, logger)
		go func() {
			if err := warmer.WarmAll(ctx); err != nil {
				logger.Error("cache warming failed", "error", err)
			}
		}()
	}

	go func() {
		logger.Info("starting HTTP server", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	if redisCache != nil {
		redisCache.Close()
	}

	logger.Info("shutdown complete")
}
