package domain

import (
	"encoding/json"
	"fmt"
)

// FeatureKind distinguishes the three feature types a route visualization carries
type FeatureKind string

const (
	KindRouteLine FeatureKind = "route_line"
	KindStop      FeatureKind = "stop"
	KindDepot     FeatureKind = "depot"
)

const (
	GeometryPoint      = "Point"
	GeometryLineString = "LineString"
)

// Geometry holds either a single point ([lng, lat]) or a line of points,
// depending on Type. Serialized as standard GeoJSON.
type Geometry struct {
	Type  string
	Point []float64
	Line  [][]float64
}

func NewPoint(lng, lat float64) Geometry {
	return Geometry{Type: GeometryPoint, Point: []float64{lng, lat}}
}

func NewLineString(coords [][]float64) Geometry {
	return Geometry{Type: GeometryLineString, Line: coords}
}

func (g Geometry) MarshalJSON() ([]byte, error) {
	switch g.Type {
	case GeometryPoint:
		return json.Marshal(struct {
			Type        string    `json:"type"`
			Coordinates []float64 `json:"coordinates"`
		}{g.Type, g.Point})
	case GeometryLineString:
		return json.Marshal(struct {
			Type        string      `json:"type"`
			Coordinates [][]float64 `json:"coordinates"`
		}{g.Type, g.Line})
	default:
		return nil, fmt.Errorf("unsupported geometry type: %q", g.Type)
	}
}

func (g *Geometry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	g.Type = raw.Type
	g.Point = nil
	g.Line = nil

	switch raw.Type {
	case GeometryPoint:
		return json.Unmarshal(raw.Coordinates, &g.Point)
	case GeometryLineString:
		return json.Unmarshal(raw.Coordinates, &g.Line)
	default:
		return fmt.Errorf("unsupported geometry type: %q", raw.Type)
	}
}

// Properties carries the per-kind attributes of a feature. Revenue is a
// "0.01"-quantized decimal string on the wire; profit is a rounded float.
type Properties struct {
	Kind           FeatureKind `json:"kind"`
	LocationID     string      `json:"location_id,omitempty"`
	Order          int         `json:"order,omitempty"`
	Revenue        string      `json:"revenue,omitempty"`
	Profit         float64     `json:"profit,omitempty"`
	ServiceMinutes float64     `json:"service_minutes,omitempty"`
	Name           string      `json:"name,omitempty"`
	Address        string      `json:"address,omitempty"`
}

type Feature struct {
	Type       string     `json:"type"`
	Geometry   Geometry   `json:"geometry"`
	Properties Properties `json:"properties"`
}

// FeatureCollection is one route visualization snapshot: zero-or-one
// route_line, zero-or-more stops with unique location ids, zero-or-one depot.
// Snapshots are replaced wholesale, never mutated in place.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

func EmptyCollection() FeatureCollection {
	return FeatureCollection{Type: "FeatureCollection", Features: []Feature{}}
}

func (fc FeatureCollection) CountKind(kind FeatureKind) int {
	n := 0
	for _, f := range fc.Features {
		if f.Properties.Kind == kind {
			n++
		}
	}
	return n
}

func (fc FeatureCollection) RouteLine() (Feature, bool) {
	for _, f := range fc.Features {
		if f.Properties.Kind == KindRouteLine {
			return f, true
		}
	}
	return Feature{}, false
}

// FindStop returns the stop feature with the given location id, if present.
func (fc FeatureCollection) FindStop(locationID string) (Feature, bool) {
	if locationID == "" {
		return Feature{}, false
	}
	for _, f := range fc.Features {
		if f.Properties.Kind == KindStop && f.Properties.LocationID == locationID {
			return f, true
		}
	}
	return Feature{}, false
}

// BoundingBox represents a geographic rectangle
type BoundingBox struct {
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
	MinLon float64 `json:"minLon"`
	MaxLon float64 `json:"maxLon"`
}

// Contains checks if a point is within the bounding box
func (bb *BoundingBox) Contains(lat, lon float64) bool {
	return lat >= bb.MinLat && lat <= bb.MaxLat &&
		lon >= bb.MinLon && lon <= bb.MaxLon
}

// LineBounds computes the bounding box of a [lng, lat] coordinate sequence.
// Returns false for an empty or degenerate sequence.
func LineBounds(coords [][]float64) (BoundingBox, bool) {
	bb := BoundingBox{}
	found := false
	for _, c := range coords {
		if len(c) < 2 {
			continue
		}
		lon, lat := c[0], c[1]
		if !found {
			bb = BoundingBox{MinLat: lat, MaxLat: lat, MinLon: lon, MaxLon: lon}
			found = true
			continue
		}
		if lat < bb.MinLat {
			bb.MinLat = lat
		}
		if lat > bb.MaxLat {
			bb.MaxLat = lat
		}
		if lon < bb.MinLon {
			bb.MinLon = lon
		}
		if lon > bb.MaxLon {
			bb.MaxLon = lon
		}
	}
	return bb, found
}
