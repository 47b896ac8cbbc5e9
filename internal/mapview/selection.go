package mapview

import (
	"context"
	"fmt"
	"html"
	"time"

	"routedash/internal/domain"
)

// Soft ordering hint: let the detail card begin loading before the pricing
// fetch fires. Best effort, not a guarantee.
const pricingDelay = 300 * time.Millisecond

func (c *Controller) installHandlers(surface Surface) {
	surface.OnClick(layerStops, c.onStopClick)
	surface.OnClick(layerDepot, c.onDepotClick)

	hover := func(entered bool) {
		if entered {
			surface.SetCursor("pointer")
		} else {
			surface.SetCursor("")
		}
	}
	surface.OnHover(layerStops, hover)
	surface.OnHover(layerDepot, hover)
}

func (c *Controller) onStopClick(f domain.Feature, lng, lat float64) {
	c.mu.Lock()
	surface, ready := c.surface, c.ready
	c.mu.Unlock()

	if ready {
		surface.ShowPopup(lng, lat, stopPopupHTML(f.Properties))
	}
	c.FocusStop(context.Background(), f.Properties.LocationID)
}

// Depot clicks show an informational popup only; they never touch the stop
// selection.
func (c *Controller) onDepotClick(f domain.Feature, lng, lat float64) {
	c.mu.Lock()
	surface, ready := c.surface, c.ready
	c.mu.Unlock()

	if ready {
		surface.ShowPopup(lng, lat, depotPopupHTML(f.Properties))
	}
}

// FocusStop selects a stop and propagates the selection to all three views:
// the map ring, the external customer card, and the table row. The ring
// filter is applied even when the id is absent from the current geometry; it
// then simply renders nothing.
func (c *Controller) FocusStop(ctx context.Context, locationID string) {
	if locationID == "" {
		return
	}

	c.mu.Lock()
	c.selectedStopID = locationID
	surface, ready := c.surface, c.ready
	feature, present := c.snapshot.FindStop(locationID)
	c.mu.Unlock()

	if ready {
		surface.SetFilter(layerSelectionRing, Filter{Key: "location_id", Value: locationID})
		if present && feature.Geometry.Type == domain.GeometryPoint && len(feature.Geometry.Point) >= 2 {
			surface.EaseTo(feature.Geometry.Point[0], feature.Geometry.Point[1], focusZoom)
		}
	}

	if c.cards != nil {
		go c.cards.LoadCustomerCard(ctx, locationID)
	}

	c.clock.AfterFunc(pricingDelay, func() {
		c.LoadStopPricing(ctx, locationID)
	})

	if c.table != nil {
		c.table.HighlightRow(locationID)
	}
}

func stopPopupHTML(p domain.Properties) string {
	band := domain.BandFor(p.Profit)
	return fmt.Sprintf(
		`<div class="map-popup"><strong>Stop %d</strong><br>Revenue: $%s<br>Profit: <span class="%s">$%.2f</span></div>`,
		p.Order, html.EscapeString(p.Revenue), band.Class(), p.Profit,
	)
}

func depotPopupHTML(p domain.Properties) string {
	return fmt.Sprintf(
		`<div class="map-popup"><strong>%s</strong><br>%s</div>`,
		html.EscapeString(p.Name), html.EscapeString(p.Address),
	)
}
