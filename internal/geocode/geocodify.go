package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"weatherapp/internal/apperr"
)

const (
	defaultBaseURL = "https://api.geocodify.com/v2"

	// suggestionLimit caps how many provider entries are considered per
	// autocomplete response.
	suggestionLimit = 10

	rateLimitedLabel = "Rate-limited: pause typing for a second…"
)

// Suggestion is one autocomplete entry. A disabled suggestion with null
// coordinates is a notice (e.g. provider throttling), not a selectable place.
type Suggestion struct {
	Label    string   `json:"label"`
	Lat      *float64 `json:"lat"`
	Lon      *float64 `json:"lon"`
	Disabled bool     `json:"disabled,omitempty"`
}

// Location is a resolved place: a display label plus coordinates.
type Location struct {
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

// Client talks to the geocodify v2 API.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) HasCredentials() bool {
	return strings.TrimSpace(c.apiKey) != ""
}

// Autocomplete returns suggestions for a partial query. Provider throttling
// is surfaced as a single disabled suggestion rather than an error.
func (c *Client) Autocomplete(ctx context.Context, query string) ([]Suggestion, error) {
	payload, err := c.get(ctx, "autocomplete", query)
	if err != nil {
		if apperr.Is(err, apperr.KindRateLimited) {
			return []Suggestion{{Label: rateLimitedLabel, Disabled: true}}, nil
		}
		return nil, err
	}
	return extractSuggestions(payload, suggestionLimit), nil
}

// Geocode returns the provider's best match for a query. The query text
// itself becomes the location label.
func (c *Client) Geocode(ctx context.Context, query string) (*Location, error) {
	payload, err := c.get(ctx, "geocode", query)
	if err != nil {
		if apperr.Is(err, apperr.KindRateLimited) {
			return nil, apperr.RateLimitedf("geocoding rate limit hit, slow down and retry")
		}
		return nil, err
	}

	// Best match lives at response.features[0].geometry.coordinates,
	// ordered [lon, lat].
	response, _ := payload["response"].(map[string]interface{})
	features, _ := response["features"].([]interface{})
	if len(features) == 0 {
		return nil, apperr.Providerf("geocoding returned no results")
	}
	feature, _ := features[0].(map[string]interface{})
	geometry, _ := feature["geometry"].(map[string]interface{})
	coords, _ := geometry["coordinates"].([]interface{})
	if len(coords) < 2 {
		return nil, apperr.Providerf("geocoding response missing coordinates")
	}

	lon := toFloat(coords[0])
	lat := toFloat(coords[1])
	if lat == nil || lon == nil {
		return nil, apperr.Providerf("geocoding response has malformed coordinates")
	}
	return &Location{Label: query, Lat: *lat, Lon: *lon}, nil
}

func (c *Client) get(ctx context.Context, endpoint, query string) (map[string]interface{}, error) {
	if !c.HasCredentials() {
		return nil, apperr.Configf("missing geocoding API key")
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindProvider, "geocoding request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "weatherapp/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindProvider, "geocoding request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, apperr.RateLimitedf("geocoding provider throttled the request")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperr.Providerf("geocoding bad status: %s", resp.Status)
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperr.Wrap(apperr.KindProvider, "geocoding decode", err)
	}
	return payload, nil
}

// extractSuggestions normalizes the provider's heterogeneous shapes: the
// container may sit under "features", "results" or "data" and may be a single
// object; labels and coordinates appear under several names. Entries missing
// a label or either coordinate are dropped.
func extractSuggestions(payload map[string]interface{}, limit int) []Suggestion {
	out := []Suggestion{}

	var items []interface{}
	for _, key := range []string{"features", "results", "data"} {
		switch v := payload[key].(type) {
		case []interface{}:
			if len(v) > 0 {
				items = v
			}
		case map[string]interface{}:
			if len(v) > 0 {
				items = []interface{}{v}
			}
		}
		if items != nil {
			break
		}
	}

	for i, item := range items {
		if i == limit {
			break
		}
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		props, _ := entry["properties"].(map[string]interface{})
		geometry, _ := entry["geometry"].(map[string]interface{})

		label := firstString(props, "label", "name", "formatted")
		if label == "" {
			label = firstString(entry, "text", "name")
		}

		var lat, lon *float64
		if coords, ok := geometry["coordinates"].([]interface{}); ok && len(coords) >= 2 {
			lon = toFloat(coords[0])
			lat = toFloat(coords[1])
		} else {
			lat = firstFloat(entry, "lat")
			if lat == nil {
				lat = firstFloat(props, "lat", "latitude")
			}
			lon = firstFloat(entry, "lng")
			if lon == nil {
				lon = firstFloat(props, "lon", "longitude")
			}
		}

		if label == "" || lat == nil || lon == nil {
			continue
		}
		out = append(out, Suggestion{Label: label, Lat: lat, Lon: lon})
	}
	return out
}

func firstString(obj map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s, ok := obj[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func firstFloat(obj map[string]interface{}, keys ...string) *float64 {
	for _, key := range keys {
		if v, ok := obj[key]; ok {
			if f := toFloat(v); f != nil {
				return f
			}
		}
	}
	return nil
}

func toFloat(value interface{}) *float64 {
	switch v := value.(type) {
	case float64:
		return &v
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f
		}
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return &f
		}
	}
	return nil
}
