// ABOUTME: Core data models for timeline records, offices, and visit analysis
// ABOUTME: Provides constructors, validators, and duration formatting

package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Source format tags assigned by the timeline parser.
const (
	FormatDirect           = "direct"
	FormatPlaceVisit       = "placeVisit"
	FormatActivitySegment  = "activitySegment"
	FormatSemanticVisit    = "semanticVisit"
	FormatSemanticActivity = "semanticActivity"
	FormatLegacy           = "legacy"
)

// formatKey is the embedded field carrying the source format tag when a
// record round-trips through a merged JSON array.
const formatKey = "_format"

// DefaultRadiusMeters is the office detection radius used when none is configured.
const DefaultRadiusMeters = 100.0

// DefaultVisitDuration is assumed when a record carries no usable start/end pair.
const DefaultVisitDuration = 30 * time.Minute

// LatLng is a coordinate pair in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ValidateCoordinates checks if latitude and longitude are within valid ranges.
func ValidateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return fmt.Errorf("coordinates cannot be NaN")
	}
	if math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return fmt.Errorf("coordinates cannot be infinite")
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	return nil
}

// ValidateName checks if an office name is valid (non-empty, within length limits).
// Note: This validates the raw input - callers should trim whitespace themselves if needed.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("name cannot be empty or whitespace")
	}
	if len(name) > 255 {
		return fmt.Errorf("name too long (max 255 characters)")
	}
	return nil
}

// RawRecord is one timeline entry as delivered by a vendor export. The field
// layout varies per source format, so fields stay an opaque key-value document
// and extraction probes known names in priority order. Records are created once
// by the parser and never mutated.
type RawRecord struct {
	Format string
	Fields map[string]any
}

// Field returns the value at a dotted path into the record, or nil if any
// segment is missing or not an object.
func (r RawRecord) Field(path ...string) any {
	var cur any = r.Fields
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[key]
	}
	return cur
}

// MarshalJSON emits the record's fields with the format tag embedded, so a
// merged dataset re-parses as a direct array without losing provenance.
func (r RawRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Fields)+1)
	for k, v := range r.Fields {
		out[k] = v
	}
	out[formatKey] = r.Format
	return json.Marshal(out)
}

// EmbeddedFormat returns the format tag stored inside the fields themselves,
// if any. Present on records that round-tripped through a merged array.
func (r RawRecord) EmbeddedFormat() (string, bool) {
	s, ok := r.Fields[formatKey].(string)
	return s, ok
}

// VisitEvent is one timeline record that qualified as on-site: extracted
// coordinates within the radius during the target period.
// Invariant: DistanceMeters <= the radius it was analyzed against.
type VisitEvent struct {
	Date           time.Time
	Timestamp      string
	DistanceMeters float64
	Coords         LatLng
	Record         RawRecord
}

// VisitSummary is one output row of an analysis run.
type VisitSummary struct {
	Date       time.Time
	Visits     int
	Duration   time.Duration
	FirstVisit VisitEvent
	LastVisit  VisitEvent
}

// MonthRollup aggregates visit summaries for one calendar month in
// full-year mode.
type MonthRollup struct {
	Month      time.Month
	Visits     int
	UniqueDays int
	Duration   time.Duration
}

// RollupTotals are the grand totals across all months of a full-year run.
type RollupTotals struct {
	Visits     int
	UniqueDays int
	Duration   time.Duration
}

// Office is the configured reference location for proximity matching.
type Office struct {
	Name         string    `json:"name"`
	Address      string    `json:"address,omitempty"`
	Lat          float64   `json:"lat"`
	Lng          float64   `json:"lng"`
	RadiusMeters float64   `json:"radius_meters"`
	SavedAt      time.Time `json:"saved_at"`
}

// NewOffice creates an office with the current timestamp, applying the
// default radius when none is given.
func NewOffice(name, address string, lat, lng, radiusMeters float64) *Office {
	if radiusMeters <= 0 {
		radiusMeters = DefaultRadiusMeters
	}
	return &Office{
		Name:         name,
		Address:      address,
		Lat:          lat,
		Lng:          lng,
		RadiusMeters: radiusMeters,
		SavedAt:      time.Now(),
	}
}

// Location returns the office coordinates as a LatLng.
func (o *Office) Location() LatLng {
	return LatLng{Lat: o.Lat, Lng: o.Lng}
}

// Dataset is the persisted location-history document. Data holds the uploaded
// JSON verbatim; normalization happens at analysis time, on read.
type Dataset struct {
	UploadID    uuid.UUID `json:"upload_id"`
	FileName    string    `json:"file_name"`
	UploadedAt  time.Time `json:"uploaded_at"`
	RecordCount int       `json:"record_count"`
	Data        []byte    `json:"data"`
}

// NewDataset creates a dataset with a fresh upload ID and current timestamp.
func NewDataset(fileName string, recordCount int, data []byte) *Dataset {
	return &Dataset{
		UploadID:    uuid.New(),
		FileName:    fileName,
		UploadedAt:  time.Now(),
		RecordCount: recordCount,
		Data:        data,
	}
}

// SizeMB returns the raw document size in megabytes.
func (d *Dataset) SizeMB() float64 {
	return float64(len(d.Data)) / (1024 * 1024)
}

// FormatDuration renders a duration as "2h 15m" or "45m".
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "0m"
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
