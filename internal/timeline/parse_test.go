// ABOUTME: Tests for vendor-format detection and normalization
// ABOUTME: Covers all four schemas, dual emission, and unrecognized shapes

package timeline

import (
	"testing"

	"github.com/harper/officetime/internal/models"
)

func TestParseDirectArray(t *testing.T) {
	data := []byte(`[
		{"startTime": "2024-03-15T09:00:00Z"},
		{"startTime": "2024-03-15T17:00:00Z"}
	]`)

	records, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for i, rec := range records {
		if rec.Format != models.FormatDirect {
			t.Errorf("record %d: expected format %q, got %q", i, models.FormatDirect, rec.Format)
		}
	}
}

func TestParseDirectArrayPreservesEmbeddedFormat(t *testing.T) {
	data := []byte(`[{"_format": "legacy", "timestamp": "2024-01-01T00:00:00Z"}]`)

	records, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Format != models.FormatLegacy {
		t.Errorf("expected round-tripped tag %q, got %q", models.FormatLegacy, records[0].Format)
	}
}

func TestParseTimelineObjects(t *testing.T) {
	data := []byte(`{"timelineObjects": [
		{"placeVisit": {"location": {"latitudeE7": 418781000, "longitudeE7": -876298000}}},
		{"activitySegment": {"duration": {"startTimestamp": "2024-02-01T08:00:00Z"}}},
		{"placeVisit": {"duration": {"startTimestamp": "2024-02-02T08:00:00Z"}},
		 "activitySegment": {"duration": {"startTimestamp": "2024-02-02T09:00:00Z"}}},
		{"somethingElse": true}
	]}`)

	records, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Element 3 emits two records, element 4 emits none.
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}

	wantFormats := []string{
		models.FormatPlaceVisit,
		models.FormatActivitySegment,
		models.FormatPlaceVisit,
		models.FormatActivitySegment,
	}
	for i, want := range wantFormats {
		if records[i].Format != want {
			t.Errorf("record %d: expected format %q, got %q", i, want, records[i].Format)
		}
	}
}

func TestParseTimelineObjectsUsesSubObjectContents(t *testing.T) {
	data := []byte(`{"timelineObjects": [
		{"placeVisit": {"duration": {"startTimestamp": "2024-02-01T08:00:00Z"}}}
	]}`)

	records, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	// The record is the placeVisit sub-object, not the wrapper element.
	if records[0].Field("duration", "startTimestamp") != "2024-02-01T08:00:00Z" {
		t.Error("record fields should come from the placeVisit sub-object")
	}
}

func TestParseSemanticSegments(t *testing.T) {
	data := []byte(`{"semanticSegments": [
		{"visit": {"topCandidate": {"placeLocation": "geo:40.7128,-74.0060"}}},
		{"activity": {"start": "x"}},
		{"visit": {"a": 1}, "activity": {"b": 2}}
	]}`)

	records, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}

	wantFormats := []string{
		models.FormatSemanticVisit,
		models.FormatSemanticActivity,
		models.FormatSemanticVisit,
		models.FormatSemanticActivity,
	}
	for i, want := range wantFormats {
		if records[i].Format != want {
			t.Errorf("record %d: expected format %q, got %q", i, want, records[i].Format)
		}
	}
}

func TestParseLegacyLocations(t *testing.T) {
	data := []byte(`{"locations": [
		{"timestampMs": 1389121315470, "latitudeE7": 377749000, "longitudeE7": -1224194000},
		{"timestamp": "2024-01-05T12:00:00Z"}
	]}`)

	records, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for i, rec := range records {
		if rec.Format != models.FormatLegacy {
			t.Errorf("record %d: expected format %q, got %q", i, models.FormatLegacy, rec.Format)
		}
	}
}

func TestParseUnrecognizedShape(t *testing.T) {
	for _, doc := range []string{`{}`, `{"foo": "bar"}`, `42`, `"hello"`, `null`} {
		records, err := Parse([]byte(doc))
		if err != nil {
			t.Errorf("doc %s: unexpected error: %v", doc, err)
		}
		if len(records) != 0 {
			t.Errorf("doc %s: expected empty sequence, got %d records", doc, len(records))
		}
	}
}

func TestParseMalformedJSON(t *testing.T) {
	if _, err := Parse([]byte(`{not json`)); err == nil {
		t.Error("expected hard failure for malformed JSON")
	}
}

func TestParseSkipsNonObjectElements(t *testing.T) {
	data := []byte(`[{"startTime": "2024-03-15T09:00:00Z"}, 42, "junk", null]`)

	records, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected non-object elements dropped, got %d records", len(records))
	}
}

func TestCollectionLength(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want int
	}{
		{"direct", `[{},{},{}]`, 3},
		{"timelineObjects", `{"timelineObjects": [{},{}]}`, 2},
		{"semanticSegments", `{"semanticSegments": [{}]}`, 1},
		{"locations", `{"locations": [{},{},{},{}]}`, 4},
		{"unknown", `{"foo": 1}`, 0},
		{"malformed", `{{{`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CollectionLength([]byte(tt.doc)); got != tt.want {
				t.Errorf("CollectionLength = %d, want %d", got, tt.want)
			}
		})
	}
}
