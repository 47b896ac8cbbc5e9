package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the server's Prometheus metrics behind its own registry.
type Collector struct {
	reg *prometheus.Registry

	GeoJSONRequests prometheus.Counter
	QuoteRequests   prometheus.Counter
	RouteUpserts    prometheus.Counter

	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	WSClients prometheus.Gauge

	RequestDuration *prometheus.HistogramVec // handler label
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		GeoJSONRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "routedash_geojson_requests_total",
			Help: "Total route-geojson requests served.",
		}),
		QuoteRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "routedash_quote_requests_total",
			Help: "Total stop-pricing requests served.",
		}),
		RouteUpserts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "routedash_route_upserts_total",
			Help: "Total route documents ingested.",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "routedash_cache_hits_total",
			Help: "Total GeoJSON cache hits.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "routedash_cache_misses_total",
			Help: "Total GeoJSON cache misses.",
		}),
		WSClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "routedash_websocket_clients",
			Help: "Currently connected websocket clients.",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "routedash_request_duration_seconds",
			Help:    "Duration of HTTP requests by handler.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}, []string{"handler"}),
	}

	reg.MustRegister(
		c.GeoJSONRequests, c.QuoteRequests, c.RouteUpserts,
		c.CacheHits, c.CacheMisses,
		c.WSClients,
		c.RequestDuration,
	)

	return c
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
