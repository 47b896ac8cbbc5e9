package mapview

import "testing"

func TestStopLayerColorsByProfit(t *testing.T) {
	var stops LayerSpec
	for _, spec := range layerSpecs() {
		if spec.ID == layerStops {
			stops = spec
		}
	}
	if !stops.Paint.CircleColorByProfit {
		t.Fatal("stops layer must color by profit")
	}

	tests := []struct {
		profit float64
		want   string
	}{
		{-5.25, "#ef4444"},
		{0, "#f59e0b"},
		{52.10, "#22c55e"},
	}
	for _, tt := range tests {
		if got := stops.CircleColorFor(tt.profit); got != tt.want {
			t.Errorf("CircleColorFor(%v) = %q, want %q", tt.profit, got, tt.want)
		}
	}
}

func TestDepotLayerHasFixedColor(t *testing.T) {
	for _, spec := range layerSpecs() {
		if spec.ID != layerDepot {
			continue
		}
		if got := spec.CircleColorFor(-100); got != "#1d4ed8" {
			t.Fatalf("depot color = %q, want fixed #1d4ed8", got)
		}
		return
	}
	t.Fatal("depot layer missing")
}
