package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tablegrape/pkg/advice"
	farmrepo "tablegrape/pkg/farm/repository"
)

type AdviceCtrl struct {
	farms farmrepo.FarmRepository
	svc   *advice.Service
}

func New(farms farmrepo.FarmRepository, svc *advice.Service) *AdviceCtrl {
	return &AdviceCtrl{farms: farms, svc: svc}
}

func (h *AdviceCtrl) WeeklyAdvice(c echo.Context) error {
	farmID := c.QueryParam("farm_id")
	if farmID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "farm_id is required"})
	}
	farm, err := h.farms.FindByID(farmID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Farm not found"})
	}
	a, err := h.svc.GetWeeklyAdvice(c.Request().Context(), farm)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, a)
}
