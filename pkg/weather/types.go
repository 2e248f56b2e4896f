package weather

// Day is one normalized forecast day. Temperatures stay nil when a provider
// omits them; precipitation defaults to 0 when absent.
type Day struct {
	Date             string   `json:"date"` // YYYY-MM-DD
	TempMin          *float64 `json:"temp_min"`
	TempMax          *float64 `json:"temp_max"`
	PrecipitationSum float64  `json:"precipitation_sum"`
}

// Forecast is an ordered series of daily forecasts for one coordinate,
// sourced from exactly one provider per call. Zero days means no provider
// could answer; callers treat that the same as any other "no data" case.
type Forecast struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Days []Day   `json:"days"`
}
