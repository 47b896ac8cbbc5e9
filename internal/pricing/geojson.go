package pricing

import "routedash/internal/domain"

// LocationLookup resolves a stop's location record, if known.
type LocationLookup func(locationID string) (domain.Location, bool)

// RouteFeatureCollection builds the visualization snapshot for one route:
// zero-or-one depot point, the stops in visit order with computed profit, and
// one closed route line (depot, stops, depot) when at least two coordinates
// exist. Stops without a resolvable location are skipped.
func RouteFeatureCollection(r *domain.Route, lookup LocationLookup) domain.FeatureCollection {
	fc := domain.EmptyCollection()
	model := NewCostModel(r.Costs)

	var coords [][]float64

	if r.Depot != nil && (r.Depot.Lat != 0 || r.Depot.Lng != 0) {
		coords = append(coords, []float64{r.Depot.Lng, r.Depot.Lat})
		fc.Features = append(fc.Features, domain.Feature{
			Type:     "Feature",
			Geometry: domain.NewPoint(r.Depot.Lng, r.Depot.Lat),
			Properties: domain.Properties{
				Kind:    domain.KindDepot,
				Name:    r.Depot.Name,
				Address: r.Depot.Address,
			},
		})
	}

	for _, stop := range r.Stops {
		loc, ok := lookup(stop.LocationID)
		if !ok || (loc.Lat == 0 && loc.Lng == 0) {
			continue
		}

		coords = append(coords, []float64{loc.Lng, loc.Lat})
		fc.Features = append(fc.Features, domain.Feature{
			Type:     "Feature",
			Geometry: domain.NewPoint(loc.Lng, loc.Lat),
			Properties: domain.Properties{
				Kind:           domain.KindStop,
				LocationID:     stop.LocationID,
				Order:          stop.Order,
				Revenue:        Quantize(stop.Revenue),
				ServiceMinutes: ServiceMinutes(stop, loc),
				Profit:         StopProfit(model, stop, loc),
			},
		})
	}

	// Close the loop back to the depot.
	if r.Depot != nil && (r.Depot.Lat != 0 || r.Depot.Lng != 0) {
		coords = append(coords, []float64{r.Depot.Lng, r.Depot.Lat})
	}

	if len(coords) >= 2 {
		fc.Features = append(fc.Features, domain.Feature{
			Type:       "Feature",
			Geometry:   domain.NewLineString(coords),
			Properties: domain.Properties{Kind: domain.KindRouteLine},
		})
	}

	return fc
}
