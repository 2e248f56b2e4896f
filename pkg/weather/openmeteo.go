package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const openMeteoBase = "https://api.open-meteo.com/v1/forecast"

type openMeteo struct {
	baseURL string
	httpc   *http.Client
}

// NewOpenMeteo returns the primary forecast provider. Open-Meteo needs no
// API key.
func NewOpenMeteo() Provider {
	return &openMeteo{
		baseURL: openMeteoBase,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *openMeteo) Name() string { return "open-meteo" }

func (p *openMeteo) Fetch(ctx context.Context, lat, lon float64, days int) (Forecast, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%v", lat))
	q.Set("longitude", fmt.Sprintf("%v", lon))
	q.Set("daily", "temperature_2m_min,temperature_2m_max,precipitation_sum")
	q.Set("timezone", "auto")
	q.Set("forecast_days", fmt.Sprintf("%d", days))

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
		return Forecast{}, fmt.Errorf("open-meteo: status %d", resp.StatusCode)
	}

	var body struct {
		Daily struct {
			Time             []string   `json:"time"`
			TemperatureMin   []*float64 `json:"temperature_2m_min"`
			TemperatureMax   []*float64 `json:"temperature_2m_max"`
			PrecipitationSum []*float64 `json:"precipitation_sum"`
		} `json:"daily"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Forecast{}, fmt.Errorf("open-meteo: decode: %w", err)
	}

	fc := Forecast{Lat: lat, Lon: lon}
	for i, date := range body.Daily.Time {
		d := Day{Date: date}
		if i < len(body.Daily.TemperatureMin) {
			d.TempMin = body.Daily.TemperatureMin[i]
		}
		if i < len(body.Daily.TemperatureMax) {
			d.TempMax = body.Daily.TemperatureMax[i]
		}
		if i < len(body.Daily.PrecipitationSum) && body.Daily.PrecipitationSum[i] != nil {
			d.PrecipitationSum = *body.Daily.PrecipitationSum[i]
		}
		fc.Days = append(fc.Days, d)
	}
	return fc, nil
}
