// ABOUTME: Filtering and ranking of geocoding candidates
// ABOUTME: Keeps complete street addresses and scores likely office matches

package geocode

import (
	"sort"
	"strings"
)

// maxResults caps how many ranked candidates are returned to the caller.
const maxResults = 5

// FilterAndRank drops candidates without a complete street address and
// orders the rest best-first. At most maxResults are returned.
func FilterAndRank(query string, results []Result) []Result {
	complete := make([]Result, 0, len(results))
	for _, r := range results {
		if r.Address.Road == "" || r.Address.Locality() == "" || r.Address.State == "" {
			continue
		}
		complete = append(complete, r)
	}

	sort.SliceStable(complete, func(i, j int) bool {
		return score(query, complete[i]) > score(query, complete[j])
	})

	if len(complete) > maxResults {
		complete = complete[:maxResults]
	}
	return complete
}

// score rates a candidate against the query. Exact-prefix matches and
// building-level results score high; administrative areas score low.
func score(query string, r Result) int {
	s := 0

	if strings.HasPrefix(strings.ToLower(r.DisplayName), strings.ToLower(query)) {
		s += 10
	}
	if r.Address.HouseNumber != "" {
		s += 5
	}
	if r.Type == "commercial" || r.Type == "office" {
		s += 3
	}
	if r.Type == "administrative" {
		s -= 5
	}

	return s
}
