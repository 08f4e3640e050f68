// ABOUTME: Timestamp and coordinate extraction from schema-varying records
// ABOUTME: Ordered fallback probes encode cross-device format priority

package timeline

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/harper/officetime/internal/models"
)

// timestampProbes are checked in order after startTime/endTime. The order is
// load-bearing: it encodes which vendor layout wins when a record carries
// several candidates.
var timestampProbes = [][]string{
	{"timestamp"},
	{"timestampMs"},
	{"duration", "startTimestamp"},
	{"duration", "startTimestampMs"},
	{"visit", "topCandidate", "placeLocation", "timestamp"},
	{"startTimestamp"},
	{"startTimestampMs"},
}

// Timestamp extracts the canonical timestamp string from a record. Strings are
// returned as-is; numeric values are epoch milliseconds rendered as UTC
// ISO-8601. Empty string means no probe matched; such records are excluded
// from merge keys and analysis but stay in the raw stored document.
// Extraction is pure: the same record always yields the same result.
func Timestamp(rec models.RawRecord) string {
	if s := coerceTimestamp(rec.Fields["startTime"]); s != "" {
		return s
	}
	if s := coerceTimestamp(rec.Fields["endTime"]); s != "" {
		return s
	}
	for _, probe := range timestampProbes {
		if s := coerceTimestamp(rec.Field(probe...)); s != "" {
			return s
		}
	}
	return ""
}

func coerceTimestamp(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == 0 {
			return ""
		}
		return time.UnixMilli(int64(t)).UTC().Format("2006-01-02T15:04:05.000Z07:00")
	}
	return ""
}

// Coordinates extracts a latitude/longitude pair from a record, probing the
// known vendor layouts in priority order. Returns nil when no layout matches.
// A matching layout with malformed values yields NaN coordinates instead of
// falling through; the NaN distance then fails the radius check downstream.
func Coordinates(rec models.RawRecord) *models.LatLng {
	// iPhone semantic format: placeLocation as a "geo:lat,lng" string.
	if s, ok := rec.Field("visit", "topCandidate", "placeLocation").(string); ok {
		if ll := parseGeoString(s); ll != nil {
			return ll
		}
	}

	// Android E7 pair at the top level.
	if lat, ok := rec.Fields["latitudeE7"]; ok {
		if lng, ok := rec.Fields["longitudeE7"]; ok {
			return &models.LatLng{Lat: e7(lat), Lng: e7(lng)}
		}
	}

	// E7 pair nested under location (legacy) or startLocation (activity segments).
	for _, key := range []string{"location", "startLocation"} {
		if nested, ok := rec.Fields[key].(map[string]any); ok {
			if lat, ok := nested["latitudeE7"]; ok {
				return &models.LatLng{Lat: e7(lat), Lng: e7(nested["longitudeE7"])}
			}
		}
	}

	// Semantic visit format: topCandidate without the visit wrapper, either as
	// a geo: string or an E7 object.
	if v := rec.Field("topCandidate", "placeLocation"); v != nil {
		if s, ok := v.(string); ok {
			if ll := parseGeoString(s); ll != nil {
				return ll
			}
		}
		if m, ok := v.(map[string]any); ok {
			if lat, ok := m["latitudeE7"]; ok {
				return &models.LatLng{Lat: e7(lat), Lng: e7(m["longitudeE7"])}
			}
		}
	}

	return nil
}

// parseGeoString parses "geo:<lat>,<lng>". Strings without the prefix or
// without two comma-separated parts return nil so the caller keeps probing.
func parseGeoString(s string) *models.LatLng {
	if !strings.HasPrefix(s, "geo:") {
		return nil
	}
	parts := strings.Split(s[4:], ",")
	if len(parts) < 2 {
		return nil
	}
	return &models.LatLng{
		Lat: parseFloatOrNaN(parts[0]),
		Lng: parseFloatOrNaN(parts[1]),
	}
}

// e7 converts an E7-scaled coordinate to degrees. Numeric strings coerce the
// way the exports' loosely-typed producers intended; anything else is NaN.
func e7(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t / 1e7
	case string:
		return parseFloatOrNaN(t) / 1e7
	}
	return math.NaN()
}

func parseFloatOrNaN(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// whenLayouts cover the timestamp spellings seen across export generations:
// RFC3339 with or without sub-second precision, zone-less local stamps, and
// bare dates.
var whenLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// ParseWhen parses an extracted timestamp string into an instant. Zone-less
// stamps are interpreted in local time; bare dates as UTC midnight. The
// second return is false when nothing parses.
func ParseWhen(ts string) (time.Time, bool) {
	if ts == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
		return t, true
	}
	for _, layout := range whenLayouts[1:] {
		if t, err := time.ParseInLocation(layout, ts, time.Local); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse("2006-01-02", ts); err == nil {
		return t, true
	}
	return time.Time{}, false
}
