// ABOUTME: Vendor-format detection for location-history JSON exports
// ABOUTME: Flattens four incompatible schemas into one tagged record sequence

package timeline

import (
	"encoding/json"
	"fmt"

	"github.com/harper/officetime/internal/models"
)

// Parse decodes a raw location-history document and normalizes it into a
// sequence of tagged records. Malformed JSON is a hard error; a document that
// parses but matches none of the known shapes yields an empty sequence, which
// callers surface as "no usable data" rather than a failure.
func Parse(data []byte) ([]models.RawRecord, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse timeline JSON: %w", err)
	}
	return Normalize(doc), nil
}

// Normalize flattens a parsed JSON value into record sequence, detecting the
// vendor schema by its top-level shape. Detection order matters: direct array,
// then timelineObjects, then semanticSegments, then legacy locations. First
// match wins; records keep document order.
func Normalize(doc any) []models.RawRecord {
	switch v := doc.(type) {
	case []any:
		// Semantic timeline export: the document is itself the record array.
		return directRecords(v)
	case map[string]any:
		if raw, ok := v["timelineObjects"]; ok {
			return timelineObjectRecords(raw)
		}
		if raw, ok := v["semanticSegments"]; ok {
			return semanticSegmentRecords(raw)
		}
		if raw, ok := v["locations"]; ok {
			return legacyRecords(raw)
		}
	}
	return nil
}

func directRecords(elems []any) []models.RawRecord {
	records := make([]models.RawRecord, 0, len(elems))
	for _, elem := range elems {
		fields, ok := elem.(map[string]any)
		if !ok {
			// Non-object elements can never yield a timestamp or coordinates.
			continue
		}
		rec := models.RawRecord{Format: models.FormatDirect, Fields: fields}
		// A merged dataset re-parses as a direct array; keep its provenance.
		if tag, ok := rec.EmbeddedFormat(); ok {
			rec.Format = tag
		}
		records = append(records, rec)
	}
	return records
}

// timelineObjectRecords handles the Android Records.json shape. Each element
// may carry a placeVisit, an activitySegment, both, or neither, so one element
// yields zero, one, or two records.
func timelineObjectRecords(raw any) []models.RawRecord {
	elems, ok := raw.([]any)
	if !ok {
		return nil
	}

	var records []models.RawRecord
	for _, elem := range elems {
		obj, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		if pv, ok := obj["placeVisit"].(map[string]any); ok {
			records = append(records, models.RawRecord{Format: models.FormatPlaceVisit, Fields: pv})
		}
		if as, ok := obj["activitySegment"].(map[string]any); ok {
			records = append(records, models.RawRecord{Format: models.FormatActivitySegment, Fields: as})
		}
	}
	return records
}

// semanticSegmentRecords handles the newer semanticSegments shape with the
// same dual visit/activity extraction.
func semanticSegmentRecords(raw any) []models.RawRecord {
	elems, ok := raw.([]any)
	if !ok {
		return nil
	}

	var records []models.RawRecord
	for _, elem := range elems {
		seg, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		if visit, ok := seg["visit"].(map[string]any); ok {
			records = append(records, models.RawRecord{Format: models.FormatSemanticVisit, Fields: visit})
		}
		if activity, ok := seg["activity"].(map[string]any); ok {
			records = append(records, models.RawRecord{Format: models.FormatSemanticActivity, Fields: activity})
		}
	}
	return records
}

func legacyRecords(raw any) []models.RawRecord {
	elems, ok := raw.([]any)
	if !ok {
		return nil
	}

	records := make([]models.RawRecord, 0, len(elems))
	for _, elem := range elems {
		loc, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		records = append(records, models.RawRecord{Format: models.FormatLegacy, Fields: loc})
	}
	return records
}

// CollectionLength reports the top-level record count of a raw document, used
// for dataset metadata without normalizing the whole thing.
func CollectionLength(data []byte) int {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0
	}
	switch v := doc.(type) {
	case []any:
		return len(v)
	case map[string]any:
		for _, key := range []string{"timelineObjects", "semanticSegments", "locations"} {
			if elems, ok := v[key].([]any); ok {
				return len(elems)
			}
		}
	}
	return 0
}
