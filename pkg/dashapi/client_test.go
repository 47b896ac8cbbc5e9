package dashapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"routedash/internal/domain"
)

func TestRouteGeoJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dashboard/api/route-geojson" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("route_id"); got != "r1" {
			t.Errorf("route_id = %q, want r1", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"type": "FeatureCollection",
			"features": [
				{
					"type": "Feature",
					"geometry": {"type": "Point", "coordinates": [-112.07, 33.42]},
					"properties": {"kind": "stop", "location_id": "loc-a", "order": 1, "revenue": "45.00", "profit": -5.25}
				},
				{
					"type": "Feature",
					"geometry": {"type": "LineString", "coordinates": [[-112.1, 33.4], [-112.07, 33.42]]},
					"properties": {"kind": "route_line"}
				}
			]
		}`))
	}))
	defer srv.Close()

	fc, err := New(srv.URL).RouteGeoJSON(context.Background(), "r1")
	if err != nil {
		t.Fatalf("RouteGeoJSON: %v", err)
	}
	if n := fc.CountKind(domain.KindStop); n != 1 {
		t.Fatalf("stops = %d, want 1", n)
	}
	stop, _ := fc.FindStop("loc-a")
	if stop.Properties.Profit != -5.25 || stop.Properties.Revenue != "45.00" {
		t.Errorf("stop properties = %+v", stop.Properties)
	}
	line, ok := fc.RouteLine()
	if !ok || len(line.Geometry.Line) != 2 {
		t.Errorf("route line = %+v, %v", line, ok)
	}
}

func TestRouteGeoJSONNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "Route not found"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).RouteGeoJSON(context.Background(), "ghost")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if statusErr.Code != http.StatusNotFound || statusErr.Reason != "Route not found" {
		t.Fatalf("status error = %+v", statusErr)
	}
	if got := statusErr.Error(); got != "status 404: Route not found" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestStatusErrorFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded in a non-JSON way"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).RouteGeoJSON(context.Background(), "r1")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if statusErr.Reason != http.StatusText(http.StatusBadGateway) {
		t.Fatalf("reason = %q, want standard status text", statusErr.Reason)
	}
}

func TestStopPricing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dashboard/api/stop-pricing" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("route_id") != "r1" || q.Get("location_id") != "loc-a" {
			t.Errorf("query = %v", q)
		}
		if got := q.Get("target_margin"); got != "0.3" {
			t.Errorf("target_margin = %q, want 0.3", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"revenue": "50.00", "cost": "10.80", "profit": "39.20", "margin": 78.4, "suggested_price": "15.43"}`))
	}))
	defer srv.Close()

	quote, err := New(srv.URL).StopPricing(context.Background(), "r1", "loc-a", 0.3)
	if err != nil {
		t.Fatalf("StopPricing: %v", err)
	}
	want := domain.PricingQuote{
		Revenue:        "50.00",
		Cost:           "10.80",
		Profit:         "39.20",
		Margin:         78.4,
		SuggestedPrice: "15.43",
	}
	if quote != want {
		t.Fatalf("quote = %+v, want %+v", quote, want)
	}
	if quote.ProfitValue() != 39.2 {
		t.Fatalf("ProfitValue() = %v", quote.ProfitValue())
	}
}

func TestCustomerCard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dashboard/partials/customer-card" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<div class="customer-card"><h3>Ada Lovelace</h3></div>`))
	}))
	defer srv.Close()

	html, err := New(srv.URL).CustomerCard(context.Background(), "loc-a")
	if err != nil {
		t.Fatalf("CustomerCard: %v", err)
	}
	if html != `<div class="customer-card"><h3>Ada Lovelace</h3></div>` {
		t.Fatalf("card = %q", html)
	}
}

func TestBaseURLTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dashboard/api/route-geojson" {
			t.Errorf("path = %q, trailing base slash must not double up", r.URL.Path)
		}
		w.Write([]byte(`{"type": "FeatureCollection", "features": []}`))
	}))
	defer srv.Close()

	if _, err := New(srv.URL + "/").RouteGeoJSON(context.Background(), "r1"); err != nil {
		t.Fatalf("RouteGeoJSON: %v", err)
	}
}
