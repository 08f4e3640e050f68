// ABOUTME: GeoJSON generation utilities
// ABOUTME: Converts visit events and the office location to FeatureCollections

package geojson

import (
	"encoding/json"
	"time"

	"github.com/harper/officetime/internal/models"
)

// FeatureCollection represents a GeoJSON FeatureCollection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature represents a GeoJSON Feature.
type Feature struct {
	Type       string                 `json:"type"`
	Geometry   Geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// Geometry represents a GeoJSON Geometry.
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

// PointCoordinates represents [longitude, latitude] for a Point.
type PointCoordinates [2]float64

// ToVisitsFeatureCollection converts visit events to a FeatureCollection of
// Points. The office, if given, is included as an extra feature so the
// output renders as a complete map.
func ToVisitsFeatureCollection(events []models.VisitEvent, office *models.Office) *FeatureCollection {
	features := make([]Feature, 0, len(events)+1)

	if office != nil {
		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: PointCoordinates{office.Lng, office.Lat},
			},
			Properties: map[string]interface{}{
				"kind":          "office",
				"name":          office.Name,
				"radius_meters": office.RadiusMeters,
			},
		})
	}

	for _, ev := range events {
		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: PointCoordinates{ev.Coords.Lng, ev.Coords.Lat},
			},
			Properties: map[string]interface{}{
				"kind":            "visit",
				"timestamp":       ev.Timestamp,
				"date":            ev.Date.Format(time.RFC3339),
				"distance_meters": ev.DistanceMeters,
			},
		})
	}

	return &FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}

// ToJSON serializes a FeatureCollection to JSON.
func (fc *FeatureCollection) ToJSON() ([]byte, error) {
	return json.Marshal(fc)
}

// ToJSONIndent serializes a FeatureCollection to indented JSON.
func (fc *FeatureCollection) ToJSONIndent() ([]byte, error) {
	return json.MarshalIndent(fc, "", "  ")
}
