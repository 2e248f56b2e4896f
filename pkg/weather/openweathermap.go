package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const openWeatherBase = "https://api.openweathermap.org/data/3.0/onecall"

type openWeatherMap struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// NewOpenWeatherMap returns the secondary forecast provider, consulted only
// when the primary fails. One Call serves at most 8 daily entries, so long
// horizons come back short.
func NewOpenWeatherMap(apiKey string) Provider {
	return &openWeatherMap{
		baseURL: openWeatherBase,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *openWeatherMap) Name() string { return "openweathermap" }

func (p *openWeatherMap) Fetch(ctx context.Context, lat, lon float64, days int) (Forecast, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%v", lat))
	q.Set("lon", fmt.Sprintf("%v", lon))
	q.Set("exclude", "current,minutely,hourly,alerts")
	q.Set("units", "metric")
	q.Set("appid", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Forecast{}, err
	}
	resp, err := p.httpc.Do(req)
	if err != nil {
		return Forecast{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Forecast{}, fmt.Errorf("openweathermap: status %d", resp.StatusCode)
	}

	var body struct {
		Daily []struct {
			Dt   int64 `json:"dt"`
			Temp struct {
				Min *float64 `json:"min"`
				Max *float64 `json:"max"`
			} `json:"temp"`
			Rain *float64 `json:"rain"`
		} `json:"daily"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Forecast{}, fmt.Errorf("openweathermap: decode: %w", err)
	}

	fc := Forecast{Lat: lat, Lon: lon}
	for i, d := range body.Daily {
		if i >= days {
			break
		}
		day := Day{
			Date:    time.Unix(d.Dt, 0).UTC().Format("2006-01-02"),
			TempMin: d.Temp.Min,
			TempMax: d.Temp.Max,
		}
		if d.Rain != nil {
			day.PrecipitationSum = *d.Rain
		}
		fc.Days = append(fc.Days, day)
	}
	return fc, nil
}
