package controllerImp

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"tablegrape/entities"
	"tablegrape/pkg/farm/repository"
)

type FarmCtrl struct{ repo repository.FarmRepository }

func New(repo repository.FarmRepository) *FarmCtrl { return &FarmCtrl{repo} }

type createFarmReq struct {
	Name              string  `json:"name"`
	Lat               float64 `json:"lat"`
	Lon               float64 `json:"lon"`
	CountryCode       string  `json:"country_code"`
	PreferredLanguage string  `json:"preferred_language"`
}

func (h *FarmCtrl) CreateFarm(c echo.Context) error {
	var req createFarmReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "My Farm"
	}
	f := &entities.Farm{
		Name:              name,
		Lat:               req.Lat,
		Lon:               req.Lon,
		CountryCode:       req.CountryCode,
		PreferredLanguage: req.PreferredLanguage,
	}
	if err := h.repo.Create(f); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, f)
}

func (h *FarmCtrl) GetFarm(c echo.Context) error {
	f, err := h.repo.FindByID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Farm not found"})
	}
	return c.JSON(http.StatusOK, f)
}

type createBlockReq struct {
	FarmID         string `json:"farm_id"`
	Name           string `json:"name"`
	Variety        string `json:"variety"`
	PlantingYear   *int   `json:"planting_year"`
	SoilType       string `json:"soil_type"`
	IrrigationType string `json:"irrigation_type"`
}

func (h *FarmCtrl) CreateBlock(c echo.Context) error {
	var req createBlockReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.FarmID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "farm_id is required"})
	}
	if _, err := h.repo.FindByID(req.FarmID); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Farm not found"})
	}
	b := &entities.Block{
		FarmID:         req.FarmID,
		Name:           req.Name,
		Variety:        req.Variety,
		PlantingYear:   req.PlantingYear,
		SoilType:       req.SoilType,
		IrrigationType: req.IrrigationType,
	}
	if err := h.repo.CreateBlock(b); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *FarmCtrl) ListBlocks(c echo.Context) error {
	blocks, err := h.repo.ListBlocks(c.QueryParam("farm_id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, blocks)
}
