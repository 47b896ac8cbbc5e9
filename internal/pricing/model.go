// Package pricing implements the route cost model used for per-stop
// profitability and suggested-price quotes.
package pricing

import "routedash/internal/domain"

// Company-wide fallbacks applied when a route carries no cost snapshot.
const (
	DefaultGasPricePerGallon  = 3.0
	DefaultMPG                = 15.0
	DefaultMaintenancePerMile = 0.20
	DefaultLaborCostPerHour   = 20.0
)

// CostModel converts route cost parameters into per-mile and per-minute rates.
type CostModel struct {
	GasPricePerGallon  float64
	MPG                float64
	MaintenancePerMile float64
	LaborCostPerHour   float64
}

// NewCostModel builds a model from a route's cost snapshot, substituting
// defaults for any zero field.
func NewCostModel(p domain.CostParams) CostModel {
	m := CostModel{
		GasPricePerGallon:  p.GasPricePerGallon,
		MPG:                p.MPG,
		MaintenancePerMile: p.MaintenancePerMile,
		LaborCostPerHour:   p.LaborCostPerHour,
	}
	if m.GasPricePerGallon == 0 {
		m.GasPricePerGallon = DefaultGasPricePerGallon
	}
	if m.MPG <= 0 {
		m.MPG = DefaultMPG
	}
	if m.MaintenancePerMile == 0 {
		m.MaintenancePerMile = DefaultMaintenancePerMile
	}
	if m.LaborCostPerHour == 0 {
		m.LaborCostPerHour = DefaultLaborCostPerHour
	}
	return m
}

// CostPerMile is fuel plus maintenance.
func (m CostModel) CostPerMile() float64 {
	return m.GasPricePerGallon/m.MPG + m.MaintenancePerMile
}

func (m CostModel) LaborCostPerMinute() float64 {
	return m.LaborCostPerHour / 60
}

// StopCost is the fully loaded cost of serving one stop: the driving leg that
// reaches it plus labor for its service time.
func (m CostModel) StopCost(segmentMiles, serviceMinutes float64) float64 {
	return segmentMiles*m.CostPerMile() + serviceMinutes*m.LaborCostPerMinute()
}
