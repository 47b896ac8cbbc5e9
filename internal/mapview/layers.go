package mapview

import "routedash/internal/domain"

const sourceRoute = "route"

const (
	layerRouteCasing   = "route-line-casing"
	layerRouteLine     = "route-line"
	layerSelectionRing = "selection-ring"
	layerStops         = "stops"
	layerDepot         = "depot"
	layerStopLabels    = "stop-labels"
	layerDepotLabel    = "depot-label"
)

type LayerType string

const (
	LayerLine   LayerType = "line"
	LayerCircle LayerType = "circle"
	LayerSymbol LayerType = "symbol"
)

type Paint struct {
	LineColor   string
	LineWidth   float64
	LineOpacity float64

	CircleColor         string
	CircleColorByProfit bool
	CircleRadius        float64
	CircleOpacity       float64
	CircleStrokeColor   string
	CircleStrokeWidth   float64

	// TextProperty renders a feature property as label text; TextLiteral
	// renders a fixed character.
	TextProperty string
	TextLiteral  string
	TextColor    string
	TextSize     float64
}

type LayerSpec struct {
	ID     string
	Type   LayerType
	Source string
	Filter Filter
	Paint  Paint
}

// CircleColorFor resolves the fill color of a circle layer for a feature's
// profit. Profit-banded layers delegate to the shared band policy.
func (s LayerSpec) CircleColorFor(profit float64) string {
	if s.Paint.CircleColorByProfit {
		return domain.BandFor(profit).Color()
	}
	return s.Paint.CircleColor
}

// layerSpecs declares the static visual layers in paint order: route casing
// beneath the route line, selection ring beneath the markers, labels above
// their circle layers.
func layerSpecs() []LayerSpec {
	kind := func(v domain.FeatureKind) Filter {
		return Filter{Key: "kind", Value: string(v)}
	}

	return []LayerSpec{
		{
			ID:     layerRouteCasing,
			Type:   LayerLine,
			Source: sourceRoute,
			Filter: kind(domain.KindRouteLine),
			Paint:  Paint{LineColor: "#000000", LineWidth: 6, LineOpacity: 0.25},
		},
		{
			ID:     layerRouteLine,
			Type:   LayerLine,
			Source: sourceRoute,
			Filter: kind(domain.KindRouteLine),
			Paint:  Paint{LineColor: "#2563eb", LineWidth: 4, LineOpacity: 1},
		},
		{
			ID:     layerSelectionRing,
			Type:   LayerCircle,
			Source: sourceRoute,
			// Empty sentinel: matches no real location id until a stop is
			// selected.
			Filter: Filter{Key: "location_id", Value: ""},
			Paint: Paint{
				CircleRadius:      12,
				CircleOpacity:     0,
				CircleStrokeColor: "#2563eb",
				CircleStrokeWidth: 3,
			},
		},
		{
			ID:     layerStops,
			Type:   LayerCircle,
			Source: sourceRoute,
			Filter: kind(domain.KindStop),
			Paint: Paint{
				CircleColorByProfit: true,
				CircleRadius:        7,
				CircleOpacity:       1,
				CircleStrokeColor:   "#ffffff",
				CircleStrokeWidth:   1.5,
			},
		},
		{
			ID:     layerDepot,
			Type:   LayerCircle,
			Source: sourceRoute,
			Filter: kind(domain.KindDepot),
			Paint: Paint{
				CircleColor:       "#1d4ed8",
				CircleRadius:      9,
				CircleOpacity:     1,
				CircleStrokeColor: "#ffffff",
				CircleStrokeWidth: 2,
			},
		},
		{
			ID:     layerStopLabels,
			Type:   LayerSymbol,
			Source: sourceRoute,
			Filter: kind(domain.KindStop),
			Paint:  Paint{TextProperty: "order", TextColor: "#ffffff", TextSize: 10},
		},
		{
			ID:     layerDepotLabel,
			Type:   LayerSymbol,
			Source: sourceRoute,
			Filter: kind(domain.KindDepot),
			Paint:  Paint{TextLiteral: "D", TextColor: "#ffffff", TextSize: 11},
		},
	}
}
