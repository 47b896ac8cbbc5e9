package domain

// ProfitBand classifies a stop's profit into the three-way threshold used
// everywhere profit is rendered: marker fill, popup text, pricing panel.
type ProfitBand int

const (
	BandLoss    ProfitBand = iota // profit < 0
	BandThin                      // 0 <= profit < 10
	BandHealthy                   // profit >= 10
)

func BandFor(profit float64) ProfitBand {
	switch {
	case profit < 0:
		return BandLoss
	case profit < 10:
		return BandThin
	default:
		return BandHealthy
	}
}

// Color returns the marker fill color for map layers.
func (b ProfitBand) Color() string {
	switch b {
	case BandLoss:
		return "#ef4444"
	case BandThin:
		return "#f59e0b"
	default:
		return "#22c55e"
	}
}

// Class returns the text style class used in popups and the pricing panel.
func (b ProfitBand) Class() string {
	switch b {
	case BandLoss:
		return "danger"
	case BandThin:
		return "warning"
	default:
		return "success"
	}
}
