package controllerImp

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"tablegrape/pkg/geocode"
)

type GeocodeCtrl struct{ svc *geocode.Service }

func New(svc *geocode.Service) *GeocodeCtrl { return &GeocodeCtrl{svc} }

func (h *GeocodeCtrl) Geocode(c echo.Context) error {
	city := strings.TrimSpace(c.QueryParam("city"))
	if city == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "City/Village/Town is required"})
	}

	count := 5
	if v := c.QueryParam("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 10 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "count must be between 1 and 10"})
		}
		count = n
	}

	results := h.svc.Geocode(c.Request().Context(), geocode.Query{
		City:     city,
		State:    strings.TrimSpace(c.QueryParam("state")),
		Country:  strings.TrimSpace(c.QueryParam("country")),
		District: strings.TrimSpace(c.QueryParam("district")),
		Count:    count,
	})
	if results == nil {
		results = []geocode.Location{}
	}
	return c.JSON(http.StatusOK, map[string]any{"results": results})
}
