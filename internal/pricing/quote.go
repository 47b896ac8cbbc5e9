package pricing

import (
	"math"
	"strconv"

	"routedash/internal/domain"
)

// ServiceMinutes resolves a stop's service time, falling back to the
// location's running average when the route carries no snapshot.
func ServiceMinutes(stop domain.Stop, loc domain.Location) float64 {
	if stop.ServiceMinutes > 0 {
		return stop.ServiceMinutes
	}
	return loc.AvgServiceMinutes
}

// Quote computes the price breakdown for one stop at the given target margin.
// suggested_price = cost / (1 - target_margin); a margin at or above 1 falls
// back to doubling the cost.
func Quote(model CostModel, stop domain.Stop, loc domain.Location, targetMargin float64) domain.PricingQuote {
	cost := model.StopCost(stop.SegmentMiles, ServiceMinutes(stop, loc))
	profit := stop.Revenue - cost

	var margin float64
	if stop.Revenue > 0 {
		margin = profit / stop.Revenue * 100
	}

	var suggested float64
	if targetMargin < 1 {
		suggested = cost / (1 - targetMargin)
	} else {
		suggested = cost * 2
	}

	return domain.PricingQuote{
		Revenue:        Quantize(stop.Revenue),
		Cost:           Quantize(cost),
		Profit:         Quantize(profit),
		Margin:         Round1(margin),
		SuggestedPrice: Quantize(suggested),
	}
}

// StopProfit is the profit value attached to stop features on the map.
func StopProfit(model CostModel, stop domain.Stop, loc domain.Location) float64 {
	return Round2(stop.Revenue - model.StopCost(stop.SegmentMiles, ServiceMinutes(stop, loc)))
}

// Quantize renders a money value as a "0.01"-quantized decimal string.
func Quantize(v float64) string {
	return strconv.FormatFloat(Round2(v), 'f', 2, 64)
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
