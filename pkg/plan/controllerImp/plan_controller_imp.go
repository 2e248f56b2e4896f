package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	farmrepo "tablegrape/pkg/farm/repository"
	logrepo "tablegrape/pkg/logbook/repository"
	"tablegrape/pkg/plan"
	statusrepo "tablegrape/pkg/status/repository"
	"tablegrape/pkg/weather"
)

type PlanCtrl struct {
	farms    farmrepo.FarmRepository
	statuses statusrepo.StatusRepository
	logs     logrepo.LogbookRepository
	weather  *weather.Service
}

func New(farms farmrepo.FarmRepository, statuses statusrepo.StatusRepository, logs logrepo.LogbookRepository, w *weather.Service) *PlanCtrl {
	return &PlanCtrl{farms: farms, statuses: statuses, logs: logs, weather: w}
}

type logsSummary struct {
	ScoutingCount   int `json:"scouting_count"`
	IrrigationCount int `json:"irrigation_count"`
	BrixCount       int `json:"brix_count"`
	SprayCount      int `json:"spray_count"`
}

type statusSummary struct {
	Stage      string `json:"stage"`
	RecordedAt string `json:"recorded_at"`
	HasIssues  bool   `json:"has_issues"`
}

type signalsUsed struct {
	WeatherSummary      string         `json:"weather_summary"`
	RecentLogsSummary   logsSummary    `json:"recent_logs_summary"`
	LatestStatusSummary *statusSummary `json:"latest_status_summary"`
}

type todayResponse struct {
	Date              string         `json:"date"`
	Tasks             []plan.Task    `json:"tasks"`
	Next7DaysInsights []plan.Insight `json:"next_7_days_insights"`
	SignalsUsed       signalsUsed    `json:"signals_used"`
}

// Today assembles the engine input from live signals and returns the plan.
func (h *PlanCtrl) Today(c echo.Context) error {
	farmID := c.QueryParam("farm_id")
	if farmID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "farm_id is required"})
	}
	farm, err := h.farms.FindByID(farmID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Farm not found"})
	}

	now := time.Now()
	since := now.AddDate(0, 0, -7)

	forecast := h.weather.GetForecast(c.Request().Context(), farm.Lat, farm.Lon, 7)

	status, err := h.statuses.Latest(farmID, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	scouting, err := h.logs.RecentScouting(farmID, since)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	irrigation, err := h.logs.RecentIrrigation(farmID, since)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	brix, err := h.logs.RecentBrix(farmID, since)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	spray, err := h.logs.RecentSpray(farmID, since)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	tasks, insights := plan.Generate(plan.Input{
		Status:     status,
		Forecast:   forecast,
		Scouting:   scouting,
		Irrigation: irrigation,
		Brix:       brix,
		Spray:      spray,
		Today:      now,
	})

	if tasks == nil {
		tasks = []plan.Task{}
	}
	if insights == nil {
		insights = []plan.Insight{}
	}

	var ss *statusSummary
	if status != nil {
		ss = &statusSummary{
			Stage:      status.Stage,
			RecordedAt: status.RecordedAt.Format(time.RFC3339),
			HasIssues:  len(status.Issues()) > 0,
		}
	}

	return c.JSON(http.StatusOK, todayResponse{
		Date:              now.Format("2006-01-02"),
		Tasks:             tasks,
		Next7DaysInsights: insights,
		SignalsUsed: signalsUsed{
			WeatherSummary: plan.SummarizeWeather(forecast),
			RecentLogsSummary: logsSummary{
				ScoutingCount:   len(scouting),
				IrrigationCount: len(irrigation),
				BrixCount:       len(brix),
				SprayCount:      len(spray),
			},
			LatestStatusSummary: ss,
		},
	})
}
