// ABOUTME: Forward geocoding via the Nominatim search API
// ABOUTME: Rate limited to 1 request/second per the Nominatim usage policy

package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// DefaultBaseURL is the public Nominatim endpoint.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// userAgent identifies this tool per the Nominatim usage policy.
const userAgent = "officetime/1.0 (office-presence-analyzer)"

// continental US viewbox used to bound address searches.
const usViewbox = "-125,49,-66,24"

// Result is a single geocoding candidate.
type Result struct {
	DisplayName string  `json:"display_name"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Type        string  `json:"type"`
	Class       string  `json:"class"`
	Address     Address `json:"address"`
}

// Address holds the structured address components Nominatim returns.
type Address struct {
	HouseNumber string `json:"house_number,omitempty"`
	Road        string `json:"road,omitempty"`
	City        string `json:"city,omitempty"`
	Town        string `json:"town,omitempty"`
	Village     string `json:"village,omitempty"`
	State       string `json:"state,omitempty"`
	Postcode    string `json:"postcode,omitempty"`
	Country     string `json:"country,omitempty"`
}

// Locality returns the best available locality name.
func (a Address) Locality() string {
	if a.City != "" {
		return a.City
	}
	if a.Town != "" {
		return a.Town
	}
	return a.Village
}

// Client calls the Nominatim search API.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	cache       *Cache
	lastRequest time.Time
	rateMu      sync.Mutex
}

// NewClient creates a geocoding client. cache may be nil to disable caching.
func NewClient(baseURL string, cache *Cache) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache: cache,
	}
}

// nominatimResult mirrors the wire format; lat/lon arrive as strings.
type nominatimResult struct {
	DisplayName string  `json:"display_name"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	Type        string  `json:"type"`
	Class       string  `json:"class"`
	Address     Address `json:"address"`
}

// Search geocodes a free-form US address and returns the top candidates,
// filtered and ranked by address completeness. Results are cached by query.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	if c.cache != nil {
		if cached, ok := c.cache.Get(query); ok {
			return cached, nil
		}
	}

	raw, err := c.fetch(ctx, query)
	if err != nil {
		return nil, err
	}

	results := FilterAndRank(query, raw)

	if c.cache != nil {
		// cache failures are not fatal
		_ = c.cache.Put(query, results)
	}

	return results, nil
}

func (c *Client) fetch(ctx context.Context, query string) ([]Result, error) {
	// Rate limit: 1 request per second
	c.rateMu.Lock()
	elapsed := time.Since(c.lastRequest)
	if elapsed < time.Second {
		time.Sleep(time.Second - elapsed)
	}
	c.lastRequest = time.Now()
	c.rateMu.Unlock()

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "10")
	params.Set("addressdetails", "1")
	params.Set("countrycodes", "us")
	params.Set("bounded", "1")
	params.Set("viewbox", usViewbox)

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	// Required by Nominatim ToS
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var wire []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("parse nominatim response: %w", err)
	}

	results := make([]Result, 0, len(wire))
	for _, w := range wire {
		lat, latErr := strconv.ParseFloat(w.Lat, 64)
		lng, lngErr := strconv.ParseFloat(w.Lon, 64)
		if latErr != nil || lngErr != nil {
			continue
		}
		results = append(results, Result{
			DisplayName: w.DisplayName,
			Lat:         lat,
			Lng:         lng,
			Type:        w.Type,
			Class:       w.Class,
			Address:     w.Address,
		})
	}

	return results, nil
}
