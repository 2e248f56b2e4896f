package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"tablegrape/pkg/weather"
)

type WeatherCtrl struct{ svc *weather.Service }

func New(svc *weather.Service) *WeatherCtrl { return &WeatherCtrl{svc} }

func (h *WeatherCtrl) Forecast(c echo.Context) error {
	lat, err := strconv.ParseFloat(c.QueryParam("lat"), 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "lat is required"})
	}
	lon, err := strconv.ParseFloat(c.QueryParam("lon"), 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "lon is required"})
	}

	days := 7
	if v := c.QueryParam("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 16 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "days must be between 1 and 16"})
		}
		days = n
	}

	return c.JSON(http.StatusOK, h.svc.GetForecast(c.Request().Context(), lat, lon, days))
}
