package pricing

import (
	"testing"

	"routedash/internal/domain"
)

func testLookup(locs map[string]domain.Location) LocationLookup {
	return func(id string) (domain.Location, bool) {
		loc, ok := locs[id]
		return loc, ok
	}
}

func TestRouteFeatureCollection(t *testing.T) {
	route := &domain.Route{
		ID:    "r1",
		Name:  "Monday North Loop",
		Depot: &domain.Depot{Name: "Central Yard", Address: "1 Yard Way", Lat: 33.40, Lng: -112.10},
		Stops: []domain.Stop{
			{LocationID: "loc-a", Order: 1, Revenue: 45, SegmentMiles: 2.0, ServiceMinutes: 30},
			{LocationID: "loc-unknown", Order: 2, Revenue: 80, SegmentMiles: 5.0},
			{LocationID: "loc-nocoords", Order: 3, Revenue: 60, SegmentMiles: 1.0},
			{LocationID: "loc-b", Order: 4, Revenue: 120, SegmentMiles: 3.0},
		},
	}
	locs := map[string]domain.Location{
		"loc-a":        {ID: "loc-a", Lat: 33.42, Lng: -112.07},
		"loc-nocoords": {ID: "loc-nocoords"},
		"loc-b":        {ID: "loc-b", Lat: 33.45, Lng: -112.05, AvgServiceMinutes: 25},
	}

	fc := RouteFeatureCollection(route, testLookup(locs))

	if n := fc.CountKind(domain.KindDepot); n != 1 {
		t.Fatalf("depot features = %d, want 1", n)
	}
	if n := fc.CountKind(domain.KindStop); n != 2 {
		t.Fatalf("stop features = %d, want 2 (unknown and zero-coord skipped)", n)
	}
	if fc.Features[0].Properties.Kind != domain.KindDepot {
		t.Errorf("first feature kind = %q, want depot", fc.Features[0].Properties.Kind)
	}

	stopA, ok := fc.FindStop("loc-a")
	if !ok {
		t.Fatal("loc-a missing from collection")
	}
	// cost = 2*0.4 + 30*(20/60) = 10.80 on default cost params
	if got := stopA.Properties.Profit; got != 34.20 {
		t.Errorf("loc-a profit = %v, want 34.20", got)
	}
	if got := stopA.Properties.Revenue; got != "45.00" {
		t.Errorf("loc-a revenue = %q, want 45.00", got)
	}

	stopB, _ := fc.FindStop("loc-b")
	if got := stopB.Properties.ServiceMinutes; got != 25 {
		t.Errorf("loc-b service minutes = %v, want location average 25", got)
	}

	line, ok := fc.RouteLine()
	if !ok {
		t.Fatal("route line missing")
	}
	coords := line.Geometry.Line
	if len(coords) != 4 {
		t.Fatalf("line coordinates = %d, want depot + 2 stops + depot", len(coords))
	}
	first, last := coords[0], coords[len(coords)-1]
	if first[0] != last[0] || first[1] != last[1] {
		t.Error("route line is not closed back to the depot")
	}
}

func TestRouteFeatureCollectionWithoutDepot(t *testing.T) {
	route := &domain.Route{
		ID: "r2",
		Stops: []domain.Stop{
			{LocationID: "loc-a", Order: 1, Revenue: 45, SegmentMiles: 2.0, ServiceMinutes: 30},
			{LocationID: "loc-b", Order: 2, Revenue: 120, SegmentMiles: 3.0, ServiceMinutes: 15},
		},
	}
	locs := map[string]domain.Location{
		"loc-a": {ID: "loc-a", Lat: 33.42, Lng: -112.07},
		"loc-b": {ID: "loc-b", Lat: 33.45, Lng: -112.05},
	}

	fc := RouteFeatureCollection(route, testLookup(locs))

	if n := fc.CountKind(domain.KindDepot); n != 0 {
		t.Fatalf("depot features = %d, want 0", n)
	}
	line, ok := fc.RouteLine()
	if !ok {
		t.Fatal("route line missing")
	}
	if len(line.Geometry.Line) != 2 {
		t.Fatalf("line coordinates = %d, want 2", len(line.Geometry.Line))
	}
}

func TestRouteFeatureCollectionSinglePointHasNoLine(t *testing.T) {
	route := &domain.Route{
		ID:    "r3",
		Stops: []domain.Stop{{LocationID: "loc-a", Order: 1, Revenue: 45}},
	}
	locs := map[string]domain.Location{
		"loc-a": {ID: "loc-a", Lat: 33.42, Lng: -112.07},
	}

	fc := RouteFeatureCollection(route, testLookup(locs))

	if _, ok := fc.RouteLine(); ok {
		t.Fatal("a single coordinate must not produce a route line")
	}
	if n := fc.CountKind(domain.KindStop); n != 1 {
		t.Fatalf("stop features = %d, want 1", n)
	}
}
