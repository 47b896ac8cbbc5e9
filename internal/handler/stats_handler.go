package handler

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"routedash/internal/hub"
	"routedash/internal/store"
)

// StatsHandler exposes a human-browsable operational snapshot. Counter-style
// metrics live on /metrics; this endpoint is for quick inspection.
type StatsHandler struct {
	store     *store.Store
	hub       *hub.Hub
	startTime time.Time
}

func NewStatsHandler(s *store.Store, h *hub.Hub) *StatsHandler {
	return &StatsHandler{store: s, hub: h, startTime: time.Now()}
}

type StatsResponse struct {
	Server    ServerStatsResponse    `json:"server"`
	Data      DataStatsResponse      `json:"data"`
	WebSocket WebSocketStatsResponse `json:"websocket"`
	Go        GoStatsResponse        `json:"go"`
}

type ServerStatsResponse struct {
	Uptime        string    `json:"uptime"`
	UptimeSeconds float64   `json:"uptime_seconds"`
	StartTime     time.Time `json:"start_time"`
}

type DataStatsResponse struct {
	Routes    int `json:"routes"`
	Locations int `json:"locations"`
}

type WebSocketStatsResponse struct {
	Connections int `json:"connections"`
}

type GoStatsResponse struct {
	Goroutines  int     `json:"goroutines"`
	HeapAllocMB float64 `json:"heap_alloc_mb"`
	NumGC       uint32  `json:"num_gc"`
	GoVersion   string  `json:"go_version"`
}

func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(h.startTime)

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	response := StatsResponse{
		Server: ServerStatsResponse{
			Uptime:        uptime.Round(time.Second).String(),
			UptimeSeconds: uptime.Seconds(),
			StartTime:     h.startTime,
		},
		Data: DataStatsResponse{
			Routes:    h.store.RouteCount(),
			Locations: h.store.LocationCount(),
		},
		WebSocket: WebSocketStatsResponse{
			Connections: h.hub.ClientCount(),
		},
		Go: GoStatsResponse{
			Goroutines:  runtime.NumGoroutine(),
			HeapAllocMB: float64(mem.HeapAlloc) / 1024 / 1024,
			NumGC:       mem.NumGC,
			GoVersion:   runtime.Version(),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	json.NewEncoder(w).Encode(response)
}
