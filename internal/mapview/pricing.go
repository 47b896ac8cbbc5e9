package mapview

import (
	"context"
	"fmt"
	"html"

	"routedash/internal/domain"
)

// TargetMargin is the fixed desired profit margin used for suggested prices.
const TargetMargin = 0.30

// LoadStopPricing fetches a fresh price quote for the selected route and the
// given stop, and renders it into the pricing panel. Quotes are never cached
// across selections; a newer request supersedes any in-flight one.
func (c *Controller) LoadStopPricing(ctx context.Context, locationID string) {
	if locationID == "" {
		return
	}

	c.mu.Lock()
	routeID := c.selectedRouteID
	c.priceGen++
	gen := c.priceGen
	c.mu.Unlock()

	if routeID == "" {
		c.setPanel(`<p class="muted">Select a route first.</p>`)
		return
	}

	c.setPanel(`<p class="muted">Loading pricing...</p>`)

	quote, err := c.svc.StopPricing(ctx, routeID, locationID, TargetMargin)

	c.mu.Lock()
	stale := gen != c.priceGen
	c.mu.Unlock()
	if stale {
		c.logger.Debug("discarding stale pricing response", "location_id", locationID)
		return
	}

	if err != nil {
		c.logger.Error("pricing fetch failed", "route_id", routeID, "location_id", locationID, "error", err)
		c.setPanel(fmt.Sprintf(`<p class="danger">Pricing failed: %s</p>`, html.EscapeString(err.Error())))
		return
	}

	c.setPanel(quoteHTML(quote))
}

func quoteHTML(q domain.PricingQuote) string {
	band := domain.BandFor(q.ProfitValue())
	return fmt.Sprintf(
		`<dl class="pricing">`+
			`<dt>Revenue</dt><dd>$%s</dd>`+
			`<dt>Cost</dt><dd>$%s</dd>`+
			`<dt>Profit</dt><dd class="%s">$%s</dd>`+
			`<dt>Margin</dt><dd>%.1f%%</dd>`+
			`<dt>Suggested price</dt><dd>$%s</dd>`+
			`</dl>`,
		html.EscapeString(q.Revenue),
		html.EscapeString(q.Cost),
		band.Class(), html.EscapeString(q.Profit),
		q.Margin,
		html.EscapeString(q.SuggestedPrice),
	)
}

func (c *Controller) setPanel(html string) {
	if c.panel != nil {
		c.panel.SetHTML(html)
	}
}
