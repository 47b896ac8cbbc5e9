package main

import (
	"log/slog"

	"routedash/internal/domain"
	"routedash/internal/mapview"
)

// consoleSurface is a headless rendering surface: every draw call is logged
// instead of rendered. It reports ready immediately.
type consoleSurface struct {
	logger *slog.Logger
}

func newConsoleSurface(logger *slog.Logger) mapview.SurfaceFactory {
	return func(accessToken, style string) (mapview.Surface, error) {
		logger.Info("surface created", "style", style)
		return &consoleSurface{logger: logger.With("component", "surface")}, nil
	}
}

func (s *consoleSurface) OnReady(fn func()) { fn() }

func (s *consoleSurface) AddSource(id string, data domain.FeatureCollection) {
	s.logger.Debug("add source", "id", id, "features", len(data.Features))
}

func (s *consoleSurface) SetSourceData(id string, data domain.FeatureCollection) {
	s.logger.Info("source replaced", "id", id, "features", len(data.Features))
}

func (s *consoleSurface) AddLayer(spec mapview.LayerSpec) {
	s.logger.Debug("add layer", "id", spec.ID, "type", string(spec.Type))
}

func (s *consoleSurface) SetFilter(layerID string, f mapview.Filter) {
	s.logger.Info("layer filter", "layer", layerID, "key", f.Key, "value", f.Value)
}

func (s *consoleSurface) FitBounds(b domain.BoundingBox, opts mapview.CameraOptions) {
	s.logger.Info("camera fit bounds",
		"min_lat", b.MinLat, "max_lat", b.MaxLat,
		"min_lon", b.MinLon, "max_lon", b.MaxLon,
		"padding", opts.Padding, "max_zoom", opts.MaxZoom,
	)
}

func (s *consoleSurface) EaseTo(lng, lat, zoom float64) {
	s.logger.Info("camera ease", "lng", lng, "lat", lat, "zoom", zoom)
}

func (s *consoleSurface) ShowPopup(lng, lat float64, html string) {
	s.logger.Info("popup", "lng", lng, "lat", lat, "html", html)
}

func (s *consoleSurface) SetCursor(cursor string) {
	s.logger.Debug("cursor", "value", cursor)
}

func (s *consoleSurface) OnClick(layerID string, fn func(f domain.Feature, lng, lat float64)) {}

func (s *consoleSurface) OnHover(layerID string, fn func(entered bool)) {}
