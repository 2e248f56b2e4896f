package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tablegrape/entities"
	"tablegrape/pkg/ai"
	"tablegrape/pkg/weather"
)

// FarmContext is the compact farm snapshot attached to farm-specific chat
// prompts. Fields stay nil when the farm has no data for them so the model
// does not hallucinate around empty lists.
type FarmContext struct {
	Farm             farmInfo         `json:"farm"`
	Block            *blockInfo       `json:"block"`
	LatestStatus     *statusInfo      `json:"latest_status"`
	RecentScouting   []scoutingInfo   `json:"recent_scouting"`
	RecentIrrigation []irrigationInfo `json:"recent_irrigation"`
	RecentBrix       []brixInfo       `json:"recent_brix"`
	LastScan         *scanInfo        `json:"last_scan"`
	WeatherForecast  *forecastInfo    `json:"weather_forecast"`
}

type farmInfo struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Country  string `json:"country"`
}

type blockInfo struct {
	Name           string `json:"name"`
	Variety        string `json:"variety"`
	IrrigationType string `json:"irrigation_type"`
}

type statusInfo struct {
	Stage          string   `json:"stage"`
	Brix           *float64 `json:"brix"`
	Issues         []string `json:"issues"`
	LastIrrigation string   `json:"last_irrigation"`
	LastSpray      string   `json:"last_spray"`
	RecordedAt     string   `json:"recorded_at"`
}

type scoutingInfo struct {
	Issue      string `json:"issue"`
	Severity   int    `json:"severity"`
	Notes      string `json:"notes,omitempty"`
	ObservedAt string `json:"observed_at"`
	HasPhoto   bool   `json:"has_photo"`
}

type scanInfo struct {
	Issue      string `json:"issue"`
	Severity   int    `json:"severity"`
	Summary    string `json:"summary,omitempty"`
	ObservedAt string `json:"observed_at"`
}

type irrigationInfo struct {
	AmountMM    *float64 `json:"amount_mm"`
	DurationMin *int     `json:"duration_min"`
	IrrigatedAt string   `json:"irrigated_at"`
}

type brixInfo struct {
	Brix      float64 `json:"brix"`
	SampledAt string  `json:"sampled_at"`
}

type forecastInfo struct {
	Next7Days []forecastDay `json:"next_7_days"`
}

type forecastDay struct {
	Date          string   `json:"date"`
	TempMax       *float64 `json:"temp_max"`
	TempMin       *float64 `json:"temp_min"`
	Precipitation float64  `json:"precipitation"`
}

func (s *Service) buildContext(ctx context.Context, farm *entities.Farm) *FarmContext {
	name := farm.Name
	if name == "" {
		name = "My Farm"
	}
	country := farm.CountryCode
	if country == "" {
		country = "unknown"
	}
	fc := &FarmContext{
		Farm: farmInfo{
			Name:     name,
			Location: fmt.Sprintf("%v, %v", farm.Lat, farm.Lon),
			Country:  country,
		},
	}

	if block, err := s.farms.PrimaryBlock(farm.ID); err == nil && block != nil {
		fc.Block = &blockInfo{
			Name:           block.Name,
			Variety:        block.Variety,
			IrrigationType: block.IrrigationType,
		}
	}

	if st, err := s.statuses.Latest(farm.ID, nil); err == nil && st != nil {
		fc.LatestStatus = &statusInfo{
			Stage:          st.Stage,
			Brix:           st.SweetnessBrix,
			Issues:         st.Issues(),
			LastIrrigation: st.LastIrrigation,
			LastSpray:      st.LastSpray,
			RecordedAt:     st.RecordedAt.Format(time.RFC3339),
		}
	}

	if logs, err := s.logs.LastScouting(farm.ID, 5); err == nil {
		for _, l := range logs {
			fc.RecentScouting = append(fc.RecentScouting, scoutingInfo{
				Issue:      l.IssueType,
				Severity:   l.Severity,
				Notes:      ai.Clamp(l.Notes, 100),
				ObservedAt: l.ObservedAt.Format(time.RFC3339),
				HasPhoto:   l.PhotoPath != nil,
			})
		}
	}

	if scan, err := s.logs.LastPhotoScouting(farm.ID); err == nil && scan != nil {
		fc.LastScan = &scanInfo{
			Issue:      scan.IssueType,
			Severity:   scan.Severity,
			Summary:    ai.Clamp(scan.Notes, 200),
			ObservedAt: scan.ObservedAt.Format(time.RFC3339),
		}
	}

	if logs, err := s.logs.LastIrrigation(farm.ID, 5); err == nil {
		for _, l := range logs {
			fc.RecentIrrigation = append(fc.RecentIrrigation, irrigationInfo{
				AmountMM:    l.AmountMM,
				DurationMin: l.DurationMin,
				IrrigatedAt: l.IrrigatedAt.Format(time.RFC3339),
			})
		}
	}

	if samples, err := s.logs.LastBrix(farm.ID, 3); err == nil {
		for _, b := range samples {
			fc.RecentBrix = append(fc.RecentBrix, brixInfo{
				Brix:      b.Brix,
				SampledAt: b.SampledAt.Format(time.RFC3339),
			})
		}
	}

	fc.WeatherForecast = forecastContext(s.weather.GetForecast(ctx, farm.Lat, farm.Lon, 7))
	return fc
}

func forecastContext(f weather.Forecast) *forecastInfo {
	if len(f.Days) == 0 {
		return nil
	}
	days := f.Days
	if len(days) > 7 {
		days = days[:7]
	}
	info := &forecastInfo{}
	for _, d := range days {
		info.Next7Days = append(info.Next7Days, forecastDay{
			Date:          d.Date,
			TempMax:       d.TempMax,
			TempMin:       d.TempMin,
			Precipitation: d.PrecipitationSum,
		})
	}
	return info
}

func (fc *FarmContext) render() string {
	b, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}
