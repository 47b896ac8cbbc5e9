package mapview

import (
	"context"
	"sync"
	"time"

	"routedash/internal/domain"
)

type fakeSurface struct {
	mu sync.Mutex

	sources      map[string]domain.FeatureCollection
	setDataCalls []domain.FeatureCollection
	layers       []LayerSpec
	filters      map[string]Filter
	fits         []fitCall
	eases        []easeCall
	popups       []popupCall
	cursor       string

	clicks map[string]func(f domain.Feature, lng, lat float64)
	hovers map[string]func(entered bool)
}

type fitCall struct {
	bounds domain.BoundingBox
	opts   CameraOptions
}

type easeCall struct {
	lng, lat, zoom float64
}

type popupCall struct {
	lng, lat float64
	html     string
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		sources: make(map[string]domain.FeatureCollection),
		filters: make(map[string]Filter),
		clicks:  make(map[string]func(f domain.Feature, lng, lat float64)),
		hovers:  make(map[string]func(entered bool)),
	}
}

func (s *fakeSurface) OnReady(fn func()) {
	fn()
}

func (s *fakeSurface) AddSource(id string, data domain.FeatureCollection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources[id] = data
}

func (s *fakeSurface) SetSourceData(id string, data domain.FeatureCollection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources[id] = data
	s.setDataCalls = append(s.setDataCalls, data)
}

func (s *fakeSurface) AddLayer(spec LayerSpec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layers = append(s.layers, spec)
	s.filters[spec.ID] = spec.Filter
}

func (s *fakeSurface) SetFilter(layerID string, f Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters[layerID] = f
}

func (s *fakeSurface) FitBounds(b domain.BoundingBox, opts CameraOptions) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fits = append(s.fits, fitCall{bounds: b, opts: opts})
}

func (s *fakeSurface) EaseTo(lng, lat, zoom float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eases = append(s.eases, easeCall{lng: lng, lat: lat, zoom: zoom})
}

func (s *fakeSurface) ShowPopup(lng, lat float64, html string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.popups = append(s.popups, popupCall{lng: lng, lat: lat, html: html})
}

func (s *fakeSurface) SetCursor(cursor string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = cursor
}

func (s *fakeSurface) OnClick(layerID string, fn func(f domain.Feature, lng, lat float64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clicks[layerID] = fn
}

func (s *fakeSurface) OnHover(layerID string, fn func(entered bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hovers[layerID] = fn
}

func (s *fakeSurface) filter(layerID string) Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters[layerID]
}

func (s *fakeSurface) setDataCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.setDataCalls)
}

type priceCall struct {
	routeID    string
	locationID string
	margin     float64
}

type fakeService struct {
	mu         sync.Mutex
	geoCalls   []string
	priceCalls []priceCall

	geoFunc   func(routeID string) (domain.FeatureCollection, error)
	priceFunc func(routeID, locationID string, margin float64) (domain.PricingQuote, error)
}

func (s *fakeService) RouteGeoJSON(ctx context.Context, routeID string) (domain.FeatureCollection, error) {
	s.mu.Lock()
	s.geoCalls = append(s.geoCalls, routeID)
	fn := s.geoFunc
	s.mu.Unlock()
	if fn == nil {
		return domain.EmptyCollection(), nil
	}
	return fn(routeID)
}

func (s *fakeService) StopPricing(ctx context.Context, routeID, locationID string, margin float64) (domain.PricingQuote, error) {
	s.mu.Lock()
	s.priceCalls = append(s.priceCalls, priceCall{routeID: routeID, locationID: locationID, margin: margin})
	fn := s.priceFunc
	s.mu.Unlock()
	if fn == nil {
		return domain.PricingQuote{}, nil
	}
	return fn(routeID, locationID, margin)
}

func (s *fakeService) geoCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.geoCalls)
}

func (s *fakeService) lastGeoCall() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.geoCalls) == 0 {
		return ""
	}
	return s.geoCalls[len(s.geoCalls)-1]
}

func (s *fakeService) priceCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.priceCalls)
}

type fakeCards struct {
	requests chan string
}

func newFakeCards() *fakeCards {
	return &fakeCards{requests: make(chan string, 8)}
}

func (c *fakeCards) LoadCustomerCard(ctx context.Context, locationID string) {
	c.requests <- locationID
}

type fakeTable struct {
	mu   sync.Mutex
	rows []string
}

func (t *fakeTable) HighlightRow(locationID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, locationID)
}

func (t *fakeTable) last() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.rows) == 0 {
		return ""
	}
	return t.rows[len(t.rows)-1]
}

type fakePanel struct {
	mu    sync.Mutex
	htmls []string
}

func (p *fakePanel) SetHTML(html string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.htmls = append(p.htmls, html)
}

func (p *fakePanel) last() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.htmls) == 0 {
		return ""
	}
	return p.htmls[len(p.htmls)-1]
}

func (p *fakePanel) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.htmls)
}

type statusRecorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *statusRecorder) record(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func (r *statusRecorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return ""
	}
	return r.messages[len(r.messages)-1]
}

type fakeTimer struct {
	clock    *fakeClock
	deadline time.Duration
	fn       func()
	stopped  bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	t.stopped = true
	return true
}

// fakeClock fires AfterFunc callbacks synchronously from Advance.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, deadline: c.now + d, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*fakeTimer
	var remaining []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && t.deadline <= c.now {
			due = append(due, t)
		} else {
			remaining = append(remaining, t)
		}
	}
	c.timers = remaining
	c.mu.Unlock()

	for _, t := range due {
		t.fn()
	}
}

func (c *fakeClock) pendingTimers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}
