package mapview

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"routedash/internal/domain"
)

const (
	defaultStyle = "mapbox://styles/mapbox/streets-v12"

	boundsPadding = 40.0
	fitMaxZoom    = 15.0
	focusZoom     = 15.0
)

const (
	statusMapUnavailable = "Map unavailable: no access token configured"
	statusMapInitFailed  = "Map failed to initialize"
	statusMapReady       = "Map ready"
	statusNoRouteID      = "No route id provided"
	statusLoadingRoute   = "Loading route..."
	statusSelectRoute    = "Select a route first"
	statusPollingStopped = "Polling stopped"
	statusCleared        = "Cleared"
)

// Config carries the controller's startup inputs. An absent access token
// disables the whole controller; Style defaults to the standard street style.
type Config struct {
	AccessToken string
	Style       string
}

// Deps are the controller's injected collaborators. Surface and Service are
// required; the rest default to no-ops so the controller is constructible in
// any context.
type Deps struct {
	Surface SurfaceFactory
	Service RouteService
	Cards   CardLoader
	Table   TableView
	Pricing PricingPanel
	Status  func(msg string)
	Clock   Clock
	Logger  *slog.Logger
}

// Controller owns the selection state and the last-loaded geometry snapshot.
// All mutation is serialized by mu; network fetches happen outside the lock,
// and generation counters discard completions that lost the race to a newer
// request of the same kind.
type Controller struct {
	cfg        Config
	newSurface SurfaceFactory
	svc        RouteService
	cards      CardLoader
	table      TableView
	panel      PricingPanel
	status     func(string)
	clock      Clock
	logger     *slog.Logger

	mu              sync.Mutex
	surface         Surface
	ready           bool
	selectedRouteID string
	selectedStopID  string
	snapshot        domain.FeatureCollection
	cameraRouteID   string
	geomGen         uint64
	priceGen        uint64
	poll            *pollSession
}

func New(cfg Config, deps Deps) *Controller {
	if cfg.Style == "" {
		cfg.Style = defaultStyle
	}
	c := &Controller{
		cfg:        cfg,
		newSurface: deps.Surface,
		svc:        deps.Service,
		cards:      deps.Cards,
		table:      deps.Table,
		panel:      deps.Pricing,
		status:     deps.Status,
		clock:      deps.Clock,
		logger:     deps.Logger,
		snapshot:   domain.EmptyCollection(),
	}
	if c.status == nil {
		c.status = func(string) {}
	}
	if c.clock == nil {
		c.clock = SystemClock
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.logger = c.logger.With("component", "mapview")
	return c
}

// Bootstrap attempts to construct the rendering surface and declare the
// geometry source, layers, and event handlers. An absent credential leaves
// the controller inert without error; a factory failure is logged and
// surfaced as status text.
func (c *Controller) Bootstrap() {
	if c.cfg.AccessToken == "" {
		c.logger.Warn("no map access token configured, map disabled")
		c.setStatus(statusMapUnavailable)
		return
	}

	surface, err := c.newSurface(c.cfg.AccessToken, c.cfg.Style)
	if err != nil {
		c.logger.Error("map initialization failed", "style", c.cfg.Style, "error", err)
		c.setStatus(statusMapInitFailed)
		return
	}

	c.mu.Lock()
	c.surface = surface
	c.mu.Unlock()

	surface.OnReady(func() {
		surface.AddSource(sourceRoute, domain.EmptyCollection())
		for _, spec := range layerSpecs() {
			surface.AddLayer(spec)
		}
		c.installHandlers(surface)

		c.mu.Lock()
		c.ready = true
		c.mu.Unlock()

		c.setStatus(statusMapReady)
	})
}

// LoadRoute fetches the route's visualization collection and swaps the
// geometry source wholesale. On failure the previous geometry stays in
// place. Every explicit load re-fits the camera to the route line; poll
// refreshes do not, so a tick never disturbs the operator's viewport.
func (c *Controller) LoadRoute(ctx context.Context, routeID string) {
	c.loadRoute(ctx, routeID, false)
}

func (c *Controller) loadRoute(ctx context.Context, routeID string, refresh bool) {
	if routeID == "" {
		c.setStatus(statusNoRouteID)
		return
	}

	c.mu.Lock()
	c.selectedRouteID = routeID
	c.geomGen++
	gen := c.geomGen
	c.mu.Unlock()

	c.setStatus(statusLoadingRoute)

	fc, err := c.svc.RouteGeoJSON(ctx, routeID)

	c.mu.Lock()
	if gen != c.geomGen {
		c.mu.Unlock()
		c.logger.Debug("discarding stale route response", "route_id", routeID)
		return
	}
	if err != nil {
		c.mu.Unlock()
		c.logger.Error("route load failed", "route_id", routeID, "error", err)
		c.setStatus(fmt.Sprintf("Route load failed: %v", err))
		return
	}

	c.snapshot = fc
	surface, ready := c.surface, c.ready

	var fit func()
	if line, ok := fc.RouteLine(); ok {
		if bb, nonEmpty := domain.LineBounds(line.Geometry.Line); nonEmpty && ready && (!refresh || c.cameraRouteID != routeID) {
			c.cameraRouteID = routeID
			fit = func() {
				surface.FitBounds(bb, CameraOptions{Padding: boundsPadding, MaxZoom: fitMaxZoom})
			}
		}
	}
	stops := fc.CountKind(domain.KindStop)
	c.mu.Unlock()

	if ready {
		surface.SetSourceData(sourceRoute, fc)
	}
	if fit != nil {
		fit()
	}

	c.logger.Info("route loaded", "route_id", routeID, "stops", stops)
	c.setStatus(fmt.Sprintf("Route loaded: %d stops", stops))
}

// Clear is the single teardown path: stops polling, empties the geometry
// source, and resets both selection fields. Reachable from any state.
func (c *Controller) Clear() {
	c.stopPollSession()

	c.mu.Lock()
	c.selectedRouteID = ""
	c.selectedStopID = ""
	c.cameraRouteID = ""
	c.snapshot = domain.EmptyCollection()
	// Invalidate any in-flight fetches so late completions cannot
	// repopulate the view.
	c.geomGen++
	c.priceGen++
	surface, ready := c.surface, c.ready
	c.mu.Unlock()

	if ready {
		surface.SetSourceData(sourceRoute, domain.EmptyCollection())
		surface.SetFilter(layerSelectionRing, Filter{Key: "location_id", Value: ""})
	}

	c.setStatus(statusCleared)
}

// SelectedRouteID returns the currently selected route, or "".
func (c *Controller) SelectedRouteID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedRouteID
}

// SelectedStopID returns the currently selected stop, or "". After a poll
// refresh it may reference a feature no longer present in the snapshot.
func (c *Controller) SelectedStopID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedStopID
}

// Snapshot returns the controller's last-loaded geometry collection.
func (c *Controller) Snapshot() domain.FeatureCollection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

func (c *Controller) setStatus(msg string) {
	c.status(msg)
}
