package domain

import "strconv"

// Customer contact details shown on the customer card.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Location is a serviceable address. AvgServiceMinutes is the fallback when a
// route stop carries no snapshot of its own.
type Location struct {
	ID                string   `json:"id"`
	Address           string   `json:"address"`
	Lat               float64  `json:"lat"`
	Lng               float64  `json:"lng"`
	AvgServiceMinutes float64  `json:"avg_service_minutes,omitempty"`
	Customer          Customer `json:"customer"`
}

// Depot is the fixed home base of a route.
type Depot struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// Stop is one visit on a route, in optimized order. SegmentMiles is the
// driving distance of the leg arriving at this stop.
type Stop struct {
	LocationID     string  `json:"location_id"`
	Order          int     `json:"order"`
	Revenue        float64 `json:"revenue"`
	SegmentMiles   float64 `json:"segment_miles"`
	ServiceMinutes float64 `json:"service_minutes,omitempty"`
}

// CostParams are the cost-model snapshot values stored with a route.
// Zero fields fall back to company defaults at pricing time.
type CostParams struct {
	GasPricePerGallon  float64 `json:"gas_price_per_gallon,omitempty"`
	MPG                float64 `json:"mpg,omitempty"`
	MaintenancePerMile float64 `json:"maintenance_cost_per_mile,omitempty"`
	LaborCostPerHour   float64 `json:"labor_cost_per_hour,omitempty"`
}

// Route is one optimized service route as produced by the planner.
type Route struct {
	ID    string     `json:"id"`
	Name  string     `json:"name,omitempty"`
	Depot *Depot     `json:"depot,omitempty"`
	Stops []Stop     `json:"stops"`
	Costs CostParams `json:"costs"`
}

// PricingQuote is the computed price breakdown for one (route, stop) pair.
// Money values are "0.01"-quantized decimal strings; margin is a percentage
// rounded to one decimal place.
type PricingQuote struct {
	Revenue        string  `json:"revenue"`
	Cost           string  `json:"cost"`
	Profit         string  `json:"profit"`
	Margin         float64 `json:"margin"`
	SuggestedPrice string  `json:"suggested_price"`
}

// ProfitValue parses the quoted profit for band classification.
func (q PricingQuote) ProfitValue() float64 {
	v, _ := strconv.ParseFloat(q.Profit, 64)
	return v
}
