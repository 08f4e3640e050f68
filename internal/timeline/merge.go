// ABOUTME: Merge and deduplication of timeline record sequences
// ABOUTME: Timestamp-keyed, new-data-wins, old data backfills gaps

package timeline

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/harper/officetime/internal/models"
)

// Merge combines a previously stored record sequence with freshly uploaded
// records. A record's identity is its extracted timestamp string: incoming
// records are taken first so repeated uploads overwrite stale entries, then
// existing records backfill timestamps the upload did not cover. Records with
// no extractable timestamp are dropped entirely. The result is sorted
// ascending by parsed instant; records whose timestamp does not parse sort
// first and their relative order is unspecified.
func Merge(existing, incoming []models.RawRecord) []models.RawRecord {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	merged := make([]models.RawRecord, 0, len(existing)+len(incoming))

	add := func(rec models.RawRecord) {
		ts := Timestamp(rec)
		if ts == "" {
			return
		}
		if _, dup := seen[ts]; dup {
			return
		}
		seen[ts] = struct{}{}
		merged = append(merged, rec)
	}

	for _, rec := range incoming {
		add(rec)
	}
	for _, rec := range existing {
		add(rec)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return sortKey(merged[i]) < sortKey(merged[j])
	})
	return merged
}

// MarshalRecords encodes a record sequence as a plain JSON array, the shape
// Parse detects as the direct format. Format tags embedded by MarshalJSON
// survive the round trip.
func MarshalRecords(records []models.RawRecord) ([]byte, error) {
	return json.Marshal(records)
}

func sortKey(rec models.RawRecord) int64 {
	t, ok := ParseWhen(Timestamp(rec))
	if !ok {
		return math.MinInt64
	}
	return t.UnixMilli()
}
