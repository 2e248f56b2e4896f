// Package geocode resolves free-text place names to coordinates via the
// Open-Meteo geocoding API, with a short-TTL cache and match-first ranking.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tablegrape/pkg/cache"
)

const openMeteoGeocodeBase = "https://geocoding-api.open-meteo.com/v1/search"

type Location struct {
	Name        string  `json:"name"`
	Admin1      string  `json:"admin1"` // state/region
	Admin2      string  `json:"admin2"` // district
	Country     string  `json:"country"`
	CountryCode string  `json:"country_code"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Timezone    string  `json:"timezone"`
}

// Query carries the full parameter tuple; it doubles as the cache key input.
type Query struct {
	City     string
	State    string
	Country  string
	District string
	Count    int
}

func (q Query) cacheKey() string {
	return fmt.Sprintf("%s|%s|%s|%s|%d", q.City, q.State, q.Country, q.District, q.Count)
}

type Service struct {
	baseURL string
	httpc   *http.Client
	cache   *cache.TTL[[]Location]
	log     zerolog.Logger
}

func NewService(c *cache.TTL[[]Location], log zerolog.Logger) *Service {
	return &Service{
		baseURL: openMeteoGeocodeBase,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		cache:   c,
		log:     log,
	}
}

// Geocode returns candidate locations, best first. Upstream failures yield
// an empty list, never an error.
func (s *Service) Geocode(ctx context.Context, q Query) []Location {
	key := q.cacheKey()
	if hit, ok := s.cache.Get(key); ok {
		return hit
	}

	results, err := s.fetch(ctx, q)
	if err != nil {
		s.log.Warn().Err(err).Str("city", q.City).Msg("geocode failed")
		return nil
	}

	if q.State != "" || q.District != "" {
		Rank(results, q.State, q.District)
	}

	s.cache.Set(key, results)
	return results
}

func (s *Service) fetch(ctx context.Context, q Query) ([]Location, error) {
	params := url.Values{}
	params.Set("name", strings.TrimSpace(q.City))
	params.Set("count", fmt.Sprintf("%d", q.Count))
	params.Set("language", "en")
	params.Set("format", "json")
	if q.Country != "" {
		if code := NormalizeCountryCode(q.Country); code != "" {
			params.Set("country", code)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("geocode: status %d", resp.StatusCode)
	}

	var body struct {
		Results []Location `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("geocode: decode: %w", err)
	}
	return body.Results, nil
}

// Rank reorders results in place so that entries whose admin1 matches the
// requested state (or admin2 the district) come first. Matching is exact or
// substring in either direction, case-insensitive. Non-matching entries are
// kept, the sort is stable, and ties break alphabetically by name.
func Rank(results []Location, state, district string) {
	stateUpper := strings.ToUpper(strings.TrimSpace(state))
	districtUpper := strings.ToUpper(strings.TrimSpace(district))

	matches := func(field, want string) bool {
		if want == "" {
			return false
		}
		f := strings.ToUpper(field)
		return f == want || strings.Contains(f, want) || strings.Contains(want, f)
	}

	sort.SliceStable(results, func(i, j int) bool {
		im := matches(results[i].Admin1, stateUpper)
		jm := matches(results[j].Admin1, stateUpper)
		if im != jm {
			return im
		}
		id := matches(results[i].Admin2, districtUpper)
		jd := matches(results[j].Admin2, districtUpper)
		if id != jd {
			return id
		}
		return results[i].Name < results[j].Name
	})
}
