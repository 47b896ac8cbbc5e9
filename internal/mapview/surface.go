// Package mapview implements the interactive route visualization controller:
// map bootstrap, route loading, stop selection, pricing, and live polling
// against a single mutable geometry source.
package mapview

import (
	"context"
	"time"

	"routedash/internal/domain"
)

// Surface is the rendering engine boundary: declarative layers over one named
// geometry source, camera animation, popups, and feature event dispatch.
type Surface interface {
	// OnReady registers the callback fired once the surface finished its
	// asynchronous initialization.
	OnReady(fn func())

	AddSource(id string, data domain.FeatureCollection)
	SetSourceData(id string, data domain.FeatureCollection)
	AddLayer(spec LayerSpec)
	SetFilter(layerID string, f Filter)

	FitBounds(b domain.BoundingBox, opts CameraOptions)
	EaseTo(lng, lat, zoom float64)
	ShowPopup(lng, lat float64, html string)
	SetCursor(cursor string)

	OnClick(layerID string, fn func(f domain.Feature, lng, lat float64))
	OnHover(layerID string, fn func(entered bool))
}

// SurfaceFactory constructs the rendering surface for an access credential
// and style. Initialization failures are reported as an error, never a panic.
type SurfaceFactory func(accessToken, style string) (Surface, error)

// Filter is a single-property equality filter. An empty value is a sentinel
// matching no real feature.
type Filter struct {
	Key   string
	Value string
}

type CameraOptions struct {
	Padding float64
	MaxZoom float64
}

// RouteService fetches route visualizations and pricing quotes.
// *dashapi.Client implements it.
type RouteService interface {
	RouteGeoJSON(ctx context.Context, routeID string) (domain.FeatureCollection, error)
	StopPricing(ctx context.Context, routeID, locationID string, targetMargin float64) (domain.PricingQuote, error)
}

// CardLoader is the external detail-card collaborator. The controller only
// triggers the request; it never sees the response.
type CardLoader interface {
	LoadCustomerCard(ctx context.Context, locationID string)
}

// TableView highlights the table row for the selected stop, clearing any
// previous mark and scrolling the row into view.
type TableView interface {
	HighlightRow(locationID string)
}

// PricingPanel renders the pricing loader's output.
type PricingPanel interface {
	SetHTML(html string)
}

// Timer is a cancelable pending callback.
type Timer interface {
	Stop() bool
}

// Clock abstracts timer creation so poll and delay behavior is testable.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// SystemClock is the wall-clock Clock used outside tests.
var SystemClock Clock = systemClock{}
